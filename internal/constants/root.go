package constants

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ConflictType represents the type of validation conflict
type ConflictType string

// SessionState represents the current state of the TUI application
type SessionState int

// RecurrenceType represents the kind of a recurrence rule
type RecurrenceType string

// ExerciseKind represents the kind of an exercise record
type ExerciseKind string

// ItemKind distinguishes one-off tasks from recurring habits in mixed lists
type ItemKind string

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName            = "routinely"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/routinely/routinely.db"
	Version            = "v0.1.0"
	EnvPrefix          = "ROUTINELY_"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "routinely-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "routinely-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.routinely"

	// Storage keys shared by the key-value backends
	StorageKeyTasks      = "routine-keeper-data"
	StorageKeyHabits     = "routine-keeper-habits"
	StorageKeyCategories = "routine-keeper-categories"
	StorageKeySleep      = "routine-keeper-sleep"
	StorageKeyExercise   = "routine-keeper-exercise-v2"
	StorageKeySettings   = "routine-keeper-settings"

	// Recurrence constants
	RecurrenceNone     RecurrenceType = "none"
	RecurrenceDaily    RecurrenceType = "daily"
	RecurrenceInterval RecurrenceType = "interval"
	RecurrenceWeekly   RecurrenceType = "weekly"

	// Item kinds
	ItemTask  ItemKind = "task"
	ItemHabit ItemKind = "habit"

	// Exercise kinds
	ExerciseGym     ExerciseKind = "GYM"
	ExerciseRunning ExerciseKind = "RUNNING"
	ExerciseSport   ExerciseKind = "SPORT"
	ExerciseOther   ExerciseKind = "OTHER"

	// Conflict Types
	ConflictMissingID          ConflictType = "missing_id"
	ConflictDuplicateID        ConflictType = "duplicate_id"
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictInvalidRecurrence  ConflictType = "invalid_recurrence"
	ConflictCompletedBeforeRun ConflictType = "completed_before_start"
	ConflictUnknownCategory    ConflictType = "unknown_category"
	ConflictInvalidSleep       ConflictType = "invalid_sleep"
	ConflictInvalidExercise    ConflictType = "invalid_exercise"
)

// Session States
const (
	StateToday SessionState = iota
	StateHabits
	StateSleep
	StateStats
	StateAddTask
	StateAddHabit
	StateLogSleep
	StateConfirmDelete
)

// MainViews are the tabbed views in display order.
var MainViews = []SessionState{StateToday, StateHabits, StateSleep, StateStats}
