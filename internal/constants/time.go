package constants

const (
	// DateFormat is the calendar-day key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the clock format used for bed/wake times (HH:MM)
	TimeFormat = "15:04"

	MinutesPerDay = 24 * 60

	// EveningCutoffHour is the hour from which a bedtime is treated as belonging
	// to the previous evening (negative offset from midnight).
	EveningCutoffHour = 18

	SleepWindowDays   = 30
	HeatmapDays       = 365
	WeeklyChartDays   = 7
	DefaultAvgDays    = 7
	UpcomingTaskLimit = 10
)

const (
	// OptimizeWindowDays is how far back the habit analyzer looks.
	OptimizeWindowDays = 28
	// OptimizeMinDueDays is the fewest due days a habit needs before it is judged.
	OptimizeMinDueDays = 7
	// OptimizeMinWeeks is the fewest full weeks a weekly quota needs before it is judged.
	OptimizeMinWeeks = 2
)
