package backups

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/chime/internal/backup"
	"github.com/julianstephens/chime/internal/cli"
	"github.com/julianstephens/chime/internal/models"
	"github.com/julianstephens/chime/internal/storage"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chime.db")
	store, err := storage.Open(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	var out bytes.Buffer
	ctx := cli.NewContext(path, store, nil)
	ctx.Out = &out
	return ctx, &out
}

func withStdin(t *testing.T, input string) {
	t.Helper()
	old := stdin
	t.Cleanup(func() { stdin = old })
	stdin = strings.NewReader(input)
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No backups found") {
		t.Errorf("unexpected output %q", out.String())
	}

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "1 total") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, out := setupTestContext(t)
	dark := models.DefaultSettings()
	dark.DarkMode = true
	ctx.Prefs.SaveSettings(dark)

	backupPath, err := backup.NewManager(ctx.ConfigPath).CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	ctx.Prefs.SaveSettings(models.DefaultSettings())

	withStdin(t, "n\n")
	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(backupPath)}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Restore cancelled") {
		t.Errorf("expected cancellation, got %q", out.String())
	}

	withStdin(t, "yes\n")
	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(backupPath)}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	store, err := storage.Open(ctx.ConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	if got := cli.NewContext(ctx.ConfigPath, store, nil).Prefs.LoadSettings(); !got.DarkMode {
		t.Error("expected restored settings to have dark mode on")
	}
}

func TestBackupRestore_NotFound(t *testing.T) {
	ctx, _ := setupTestContext(t)
	err := (&BackupRestoreCmd{BackupFile: "chime-19990101-000000.db", Yes: true}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}
