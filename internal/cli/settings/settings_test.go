package settings

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/routinely/internal/cli"
	"github.com/julianstephens/routinely/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx := &cli.Context{Store: store}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, cleanup
}

func ptr[T any](v T) *T { return &v }

func TestSettingsCmd_List(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &SettingsCmd{
		List: true,
	}

	err := cmd.Run(ctx)
	if err != nil {
		t.Errorf("settings list failed: %v", err)
	}
}

func TestSettingsCmd_NoChanges(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&SettingsCmd{}).Run(ctx); err != nil {
		t.Errorf("settings without flags failed: %v", err)
	}
}

func TestSettingsCmd_Update(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &SettingsCmd{
		Timezone:             ptr("Europe/Berlin"),
		DefaultCategory:      ptr("Study"),
		NotificationsEnabled: ptr(false),
		SleepTargetHours:     ptr(7.5),
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get updated settings: %v", err)
	}
	if settings.Timezone != "Europe/Berlin" {
		t.Errorf("expected timezone Europe/Berlin, got %s", settings.Timezone)
	}
	if settings.DefaultCategory != "Study" {
		t.Errorf("expected default category Study, got %s", settings.DefaultCategory)
	}
	if settings.NotificationsEnabled {
		t.Error("expected notifications to be disabled")
	}
	if settings.SleepTargetHours != 7.5 {
		t.Errorf("expected sleep target 7.5, got %v", settings.SleepTargetHours)
	}
}

func TestSettingsCmd_Rejects(t *testing.T) {
	tests := []struct {
		name string
		cmd  SettingsCmd
	}{
		{"invalid timezone", SettingsCmd{Timezone: ptr("Mars/Olympus")}},
		{"unknown category", SettingsCmd{DefaultCategory: ptr("Gardening")}},
		{"zero sleep target", SettingsCmd{SleepTargetHours: ptr(0.0)}},
		{"sleep target above a day", SettingsCmd{SleepTargetHours: ptr(30.0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cleanup := setupTestDB(t)
			defer cleanup()

			before, err := ctx.Store.GetSettings()
			if err != nil {
				t.Fatalf("failed to get settings: %v", err)
			}
			if err := tt.cmd.Run(ctx); err == nil {
				t.Fatal("expected settings update to fail")
			}
			after, err := ctx.Store.GetSettings()
			if err != nil {
				t.Fatalf("failed to get settings: %v", err)
			}
			if before != after {
				t.Errorf("settings changed after a rejected update: %+v -> %+v", before, after)
			}
		})
	}
}
