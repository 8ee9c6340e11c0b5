package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/chime/internal/constants"
	"github.com/julianstephens/chime/internal/models"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int {
	return m.pid
}

func (m *mockProcess) PPid() int {
	return 0
}

func (m *mockProcess) Executable() string {
	return m.executable
}

func TestNewAlert(t *testing.T) {
	settings := models.DefaultSettings()
	settings.NotificationSound = constants.SoundChime
	settings.NotificationVolume = 40
	settings.Vibration = false

	a := NewAlert("stretch", settings)
	b := NewAlert("stretch", settings)

	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected unique ids, got %q and %q", a.ID, b.ID)
	}
	if a.Sound != constants.SoundChime || a.Volume != 40 || a.Vibrate {
		t.Errorf("alert does not carry settings: %+v", a)
	}
}

func TestGetTrayAppConfigDir(t *testing.T) {
	tempDir := t.TempDir()

	oldUserConfigDirFunc := userConfigDirFunc
	defer func() { userConfigDirFunc = oldUserConfigDirFunc }()
	userConfigDirFunc = func() (string, error) {
		return tempDir, nil
	}

	expectedDefault := filepath.Join(tempDir, constants.TrayAppIdentifier)
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if dir != expectedDefault {
		t.Errorf("expected %s, got %s", expectedDefault, dir)
	}

	if err := os.MkdirAll(expectedDefault, 0755); err != nil {
		t.Fatal(err)
	}
	customDir := "/custom/chime/dir"
	settingsJSON := fmt.Sprintf(`{"settings": {"lockfile_dir": "%s"}}`, customDir)
	if err := os.WriteFile(filepath.Join(expectedDefault, "settings.json"), []byte(settingsJSON), 0644); err != nil {
		t.Fatal(err)
	}

	dir, err = GetTrayAppConfigDir()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if dir != customDir {
		t.Errorf("expected %s, got %s", customDir, dir)
	}
}

func TestFindAndValidateTrayProcess(t *testing.T) {
	oldFindProcessFunc := findProcessFunc
	defer func() { findProcessFunc = oldFindProcessFunc }()
	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "chime-tray"}, nil
	}

	lockfilePath := filepath.Join(t.TempDir(), constants.NotifierLockfileName)

	if _, _, err := findAndValidateTrayProcess(lockfilePath); !errors.Is(err, ErrTrayNotRunning) {
		t.Errorf("expected ErrTrayNotRunning for missing lockfile, got %v", err)
	}

	bad := []struct {
		name    string
		content string
		want    string
	}{
		{"two parts", "8080|12345", "malformed"},
		{"garbage", "invalid", "malformed"},
		{"empty secret", "8080|12345|", "secret"},
		{"empty port", "|12345|s3cret", "port"},
		{"port out of range", "99999|12345|s3cret", "range"},
		{"bad pid", "8080|abc|s3cret", "process ID"},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.WriteFile(lockfilePath, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, _, err := findAndValidateTrayProcess(lockfilePath)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	if err := os.WriteFile(lockfilePath, []byte("8080|12345|s3cret\n"), 0644); err != nil {
		t.Fatal(err)
	}

	findProcessFunc = func(pid int) (ps.Process, error) {
		return nil, nil
	}
	if _, _, err := findAndValidateTrayProcess(lockfilePath); !errors.Is(err, ErrTrayNotRunning) {
		t.Errorf("expected ErrTrayNotRunning for dead pid, got %v", err)
	}

	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "other-app"}, nil
	}
	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for wrong executable")
	}

	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "chime-tray.exe"}, nil
	}
	port, secret, err := findAndValidateTrayProcess(lockfilePath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if port != "8080" || secret != "s3cret" {
		t.Errorf("got port %q secret %q", port, secret)
	}
}

func newTrayServer(t *testing.T, got *WebhookPayload) (string, func()) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("X-Chime-Secret") != "test-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorized"))
			return
		}
		var payload WebhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if payload.Text == "fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if got != nil {
			*got = payload
		}
		w.WriteHeader(http.StatusOK)
	}))

	parts := strings.Split(server.URL, ":")
	return parts[len(parts)-1], server.Close
}

func TestSend(t *testing.T) {
	var got WebhookPayload
	port, stop := newTrayServer(t, &got)
	defer stop()

	n := New()
	ctx := context.Background()

	if err := n.send(ctx, port, "test-secret", WebhookPayload{ID: "abc", Text: "hello", Volume: 80}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if got.ID != "abc" || got.Text != "hello" || got.Volume != 80 {
		t.Errorf("server received %+v", got)
	}

	if err := n.send(ctx, port, "", WebhookPayload{Text: "hello"}); err == nil {
		t.Error("expected error for missing secret")
	}
	if err := n.send(ctx, port, "wrong-secret", WebhookPayload{Text: "hello"}); err == nil {
		t.Error("expected error for wrong secret")
	}
	err := n.send(ctx, port, "test-secret", WebhookPayload{Text: "fail"})
	if err == nil || !strings.Contains(err.Error(), "500") {
		t.Errorf("expected status error, got %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := n.send(cancelled, port, "test-secret", WebhookPayload{Text: "hello"}); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestNotifierPlay(t *testing.T) {
	var got WebhookPayload
	port, stop := newTrayServer(t, &got)
	defer stop()

	configDir := t.TempDir()
	oldUserConfigDirFunc, oldFindProcessFunc := userConfigDirFunc, findProcessFunc
	defer func() {
		userConfigDirFunc = oldUserConfigDirFunc
		findProcessFunc = oldFindProcessFunc
	}()
	userConfigDirFunc = func() (string, error) { return configDir, nil }
	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "chime-tray"}, nil
	}

	n := New()
	alert := NewAlert("Time for a break", models.DefaultSettings())
	if err := n.Play(context.Background(), alert); !errors.Is(err, ErrTrayNotRunning) {
		t.Fatalf("expected ErrTrayNotRunning before lockfile exists, got %v", err)
	}

	trayDir := filepath.Join(configDir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(trayDir, 0755); err != nil {
		t.Fatal(err)
	}
	lock := fmt.Sprintf("%s|%d|test-secret", port, os.Getpid())
	if err := os.WriteFile(filepath.Join(trayDir, constants.NotifierLockfileName), []byte(lock), 0644); err != nil {
		t.Fatal(err)
	}

	if err := n.Play(context.Background(), alert); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != alert.ID || got.Sound != "beep" || got.Volume != 80 || !got.Vibrate {
		t.Errorf("unexpected payload %+v", got)
	}
	if got.DurationMs != constants.NotificationDurationMs {
		t.Errorf("expected duration %d, got %d", constants.NotificationDurationMs, got.DurationMs)
	}
}

type stubPlayer struct {
	err   error
	calls int
}

func (s *stubPlayer) Play(ctx context.Context, alert Alert) error {
	s.calls++
	return s.err
}

func TestBell(t *testing.T) {
	tests := []struct {
		name    string
		alert   Alert
		want    string
		wantErr error
	}{
		{"beep", Alert{Sound: constants.SoundBeep, Volume: 80}, "\a", nil},
		{"bell rings twice", Alert{Sound: constants.SoundBell, Volume: 10}, "\a\a", nil},
		{"muted", Alert{Sound: constants.SoundBeep, Volume: 0}, "", ErrMuted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := NewBell(&buf).Play(context.Background(), tt.alert)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestChain(t *testing.T) {
	alert := Alert{Volume: 50}

	failing := &stubPlayer{err: errors.New("tray down")}
	ok := &stubPlayer{}
	after := &stubPlayer{}
	if err := (Chain{failing, ok, after}).Play(context.Background(), alert); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if failing.calls != 1 || ok.calls != 1 || after.calls != 0 {
		t.Errorf("unexpected calls %d %d %d", failing.calls, ok.calls, after.calls)
	}

	first, second := &stubPlayer{err: errors.New("a")}, &stubPlayer{err: errors.New("b")}
	err := (Chain{first, second}).Play(context.Background(), alert)
	if err == nil || !strings.Contains(err.Error(), "a") || !strings.Contains(err.Error(), "b") {
		t.Errorf("expected joined errors, got %v", err)
	}

	muted := &stubPlayer{err: ErrMuted}
	next := &stubPlayer{}
	if err := (Chain{muted, next}).Play(context.Background(), alert); !errors.Is(err, ErrMuted) || next.calls != 0 {
		t.Errorf("muted alert should stop the chain, got %v after %d calls", err, next.calls)
	}

	if err := (Chain{}).Play(context.Background(), alert); err == nil {
		t.Error("expected error for empty chain")
	}
}
