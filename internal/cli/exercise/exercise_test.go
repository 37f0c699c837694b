package exercise

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/routinely/internal/cli"
	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/storage"
	"github.com/julianstephens/routinely/internal/utils"
)

func setupExerciseContext(t *testing.T) *cli.Context {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "routinely.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	return &cli.Context{
		Store: store,
		Clock: utils.FixedClock{At: time.Date(2025, 6, 11, 18, 0, 0, 0, time.UTC)},
	}
}

func TestExerciseLogCmd(t *testing.T) {
	tests := []struct {
		name    string
		cmd     ExerciseLogCmd
		wantErr bool
	}{
		{"gym", ExerciseLogCmd{Kind: "gym", Minutes: 45, BodyPart: "legs"}, false},
		{"running", ExerciseLogCmd{Kind: "Running", Minutes: 30, Speed: 10.5}, false},
		{"sport", ExerciseLogCmd{Kind: "sport", Notes: "tennis"}, false},
		{"gym without body part", ExerciseLogCmd{Kind: "gym", Minutes: 45}, true},
		{"running without speed", ExerciseLogCmd{Kind: "running", Minutes: 30}, true},
		{"other without notes", ExerciseLogCmd{Kind: "other"}, true},
		{"unknown kind", ExerciseLogCmd{Kind: "yoga", Notes: "flow"}, true},
		{"bad time", ExerciseLogCmd{Kind: "sport", Notes: "golf", Time: "7pm"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := setupExerciseContext(t)
			err := tt.cmd.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			records, err := ctx.Store.LoadExercise()
			if err != nil {
				t.Fatalf("failed to load records: %v", err)
			}
			if len(records) != 1 || records[0].Date != "2025-06-11" || records[0].Time != "18:00" {
				t.Errorf("unexpected records: %+v", records)
			}
		})
	}
}

func TestExerciseViewsAndDelete(t *testing.T) {
	ctx := setupExerciseContext(t)

	logs := []ExerciseLogCmd{
		{Kind: "gym", Minutes: 40, BodyPart: "back"},
		{Kind: "running", Minutes: 20, Speed: 9, Date: "2025-06-10"},
		{Kind: "other", Notes: "stretching"},
	}
	for _, l := range logs {
		if err := l.Run(ctx); err != nil {
			t.Fatalf("log failed: %v", err)
		}
	}

	for name, cmd := range map[string]interface{ Run(*cli.Context) error }{
		"list":  &ExerciseListCmd{},
		"today": &ExerciseTodayCmd{},
		"week":  &ExerciseWeekCmd{},
	} {
		if err := cmd.Run(ctx); err != nil {
			t.Errorf("%s failed: %v", name, err)
		}
	}

	records, _ := ctx.Store.LoadExercise()
	if err := (&ExerciseDeleteCmd{ID: records[0].ID}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	records, _ = ctx.Store.LoadExercise()
	if len(records) != 2 {
		t.Errorf("expected 2 records, got %d", len(records))
	}
}

func TestKindSummary(t *testing.T) {
	tests := []struct {
		counts map[constants.ExerciseKind]int
		want   string
	}{
		{nil, ""},
		{map[constants.ExerciseKind]int{constants.ExerciseOther: 1, constants.ExerciseGym: 2}, "gym 2, other 1"},
		{map[constants.ExerciseKind]int{constants.ExerciseRunning: 1, constants.ExerciseSport: 0}, "running 1"},
	}
	for _, tt := range tests {
		if got := kindSummary(tt.counts); got != tt.want {
			t.Errorf("kindSummary(%v) = %q, want %q", tt.counts, got, tt.want)
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		rec  models.ExerciseRecord
		want string
	}{
		{models.ExerciseRecord{Kind: constants.ExerciseGym, DurationMinutes: 40, BodyPart: "back"}, "gym 40 min (back)"},
		{models.ExerciseRecord{Kind: constants.ExerciseRunning, DurationMinutes: 20, SpeedKmh: 9}, "running 20 min at 9.0 km/h"},
		{models.ExerciseRecord{Kind: constants.ExerciseSport, Notes: "tennis"}, "sport: tennis"},
	}
	for _, tt := range tests {
		if got := describe(tt.rec); !strings.EqualFold(got, tt.want) {
			t.Errorf("describe() = %q, want %q", got, tt.want)
		}
	}
}
