package system

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/routinely/internal/cli"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/storage"
)

func setupValidateContext(t *testing.T) *cli.Context {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "routinely.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	return &cli.Context{Store: store}
}

func TestValidateCmd(t *testing.T) {
	habit := models.Habit{
		ID:             "h1",
		Title:          "Stretch",
		Recurrence:     models.DailyRecurrence(),
		StartDate:      "2025-06-10",
		CompletedDates: []string{"2025-06-01", "2025-06-10"},
	}

	tests := []struct {
		name          string
		fix           bool
		wantCompleted int
	}{
		{"report only", false, 2},
		{"fix prunes completions before start", true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := setupValidateContext(t)
			if err := ctx.Store.SaveHabits([]models.Habit{habit}); err != nil {
				t.Fatalf("failed to save habit: %v", err)
			}

			if err := (&ValidateCmd{Fix: tt.fix}).Run(ctx); err != nil {
				t.Fatalf("validate failed: %v", err)
			}

			habits, err := ctx.Store.LoadHabits()
			if err != nil {
				t.Fatalf("failed to load habits: %v", err)
			}
			if got := len(habits[0].CompletedDates); got != tt.wantCompleted {
				t.Errorf("expected %d completions, got %d", tt.wantCompleted, got)
			}
		})
	}
}

func TestValidateCmd_Clean(t *testing.T) {
	ctx := setupValidateContext(t)
	if err := (&ValidateCmd{Fix: true}).Run(ctx); err != nil {
		t.Errorf("validate on an empty store failed: %v", err)
	}
}
