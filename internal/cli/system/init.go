package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/chime/internal/backup"
	"github.com/julianstephens/chime/internal/cli"
	"github.com/julianstephens/chime/internal/constants"
	apperrors "github.com/julianstephens/chime/internal/errors"
	"github.com/julianstephens/chime/internal/prefs"
	"github.com/julianstephens/chime/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Delete existing storage before initialization."`
	Source string `help:"Existing storage (.db or .json) to copy preferences from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	path := ctx.ConfigPath
	if path == "" {
		return fmt.Errorf("no config path set")
	}

	if _, err := os.Stat(path); err == nil {
		if !c.Force {
			return apperrors.WithHint(fmt.Errorf("storage already exists at %s", path), "use --force to recreate it (a backup is taken first)")
		}
		if c.Source != "" && sameFile(c.Source, path) {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", path)
		}
		backupPath, err := backup.NewManager(path).CreateBackup()
		if err != nil {
			return apperrors.WithHint(
				fmt.Errorf("failed to back up existing storage, nothing was deleted: %w", err),
				"move or delete the file yourself if it cannot be recovered",
			)
		}
		ctx.Printf("Backed up existing storage to: %s\n", backupPath)
		if ctx.Store != nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing storage: %w", err)
			}
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to delete existing storage: %w", err)
		}
		ctx.Printf("Deleted existing storage at: %s\n", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing storage: %w", err)
	}

	store := storage.New(path)
	if err := store.Init(); err != nil {
		return err
	}
	defer store.Close()

	if c.Source != "" {
		ctx.Printf("Copying preferences from: %s\n", c.Source)
		n, err := copyPreferences(c.Source, store)
		if err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		ctx.Printf("  Copied %d records\n", n)
	}

	// first load writes the default settings record
	prefs.New(store).LoadSettings()

	ctx.Printf("Initialized chime storage at: %s\n", path)
	return nil
}

func copyPreferences(source string, dst storage.Provider) (int, error) {
	src := storage.New(source)
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source storage: %w", err)
	}
	defer src.Close()

	copied := 0
	for _, key := range []string{constants.KeyUserSettings, constants.KeyReminderSettings} {
		value, ok, err := src.Get(key)
		if err != nil {
			return copied, fmt.Errorf("failed to read %s from source: %w", key, err)
		}
		if !ok {
			continue
		}
		if err := dst.Set(key, value); err != nil {
			return copied, fmt.Errorf("failed to write %s: %w", key, err)
		}
		copied++
	}
	return copied, nil
}

func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
