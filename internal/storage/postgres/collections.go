package postgres

import (
	"database/sql"
	"fmt"

	pq "github.com/lib/pq"

	"github.com/julianstephens/routinely/internal/models"
)

// replace clears table and runs fn in the same transaction.
func (s *Store) replace(table string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM " + pq.QuoteIdentifier(table)); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// copyRows bulk-loads rows with COPY FROM STDIN.
func copyRows(tx *sql.Tx, table string, columns []string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}
	stmt, err := tx.Prepare(pq.CopyIn(table, columns...))
	if err != nil {
		return fmt.Errorf("preparing copy into %s: %w", table, err)
	}
	for _, row := range rows {
		if _, err := stmt.Exec(row...); err != nil {
			stmt.Close()
			return fmt.Errorf("copying into %s: %w", table, err)
		}
	}
	if _, err := stmt.Exec(); err != nil {
		stmt.Close()
		return fmt.Errorf("flushing copy into %s: %w", table, err)
	}
	return stmt.Close()
}

func (s *Store) LoadTasks() ([]models.Task, error) {
	rows, err := s.db.Query(`
		SELECT id, title, category, date, completed, quantity, unit
		FROM tasks ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Category, &t.Date, &t.Completed, &t.Quantity, &t.Unit); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) SaveTasks(tasks []models.Task) error {
	return s.replace("tasks", func(tx *sql.Tx) error {
		rows := make([][]interface{}, 0, len(tasks))
		for i, t := range tasks {
			rows = append(rows, []interface{}{t.ID, t.Title, t.Category, t.Date, t.Completed, t.Quantity, t.Unit, i})
		}
		return copyRows(tx, "tasks",
			[]string{"id", "title", "category", "date", "completed", "quantity", "unit", "position"}, rows)
	})
}

func (s *Store) LoadHabits() ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT h.id, h.title, h.category, h.recurrence_type, h.recurrence_value, h.start_date, h.quantity, h.unit,
			COALESCE(array_agg(c.date ORDER BY c.date) FILTER (WHERE c.date IS NOT NULL), '{}')
		FROM habits h
		LEFT JOIN habit_completions c ON c.habit_id = h.id
		GROUP BY h.id
		ORDER BY h.position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		var (
			h        models.Habit
			recType  string
			recValue int
			dates    pq.StringArray
		)
		if err := rows.Scan(&h.ID, &h.Title, &h.Category, &recType, &recValue, &h.StartDate, &h.Quantity, &h.Unit, &dates); err != nil {
			return nil, err
		}
		rec, err := models.ParseRecurrence(recType, recValue)
		if err != nil {
			return nil, fmt.Errorf("habit %s: %w", h.ID, err)
		}
		h.Recurrence = rec
		h.CompletedDates = []string(dates)
		if h.CompletedDates == nil {
			h.CompletedDates = []string{}
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) SaveHabits(habits []models.Habit) error {
	return s.replace("habits", func(tx *sql.Tx) error {
		var habitRows, doneRows [][]interface{}
		for i, h := range habits {
			habitRows = append(habitRows, []interface{}{
				h.ID, h.Title, h.Category, string(h.Recurrence.Type), h.Recurrence.Value, h.StartDate, h.Quantity, h.Unit, i,
			})
			seen := make(map[string]bool, len(h.CompletedDates))
			for _, d := range h.CompletedDates {
				if seen[d] {
					continue
				}
				seen[d] = true
				doneRows = append(doneRows, []interface{}{h.ID, d})
			}
		}
		if err := copyRows(tx, "habits",
			[]string{"id", "title", "category", "recurrence_type", "recurrence_value", "start_date", "quantity", "unit", "position"}, habitRows); err != nil {
			return err
		}
		return copyRows(tx, "habit_completions", []string{"habit_id", "date"}, doneRows)
	})
}

func (s *Store) LoadSleep() ([]models.SleepSession, error) {
	rows, err := s.db.Query(`
		SELECT id, date, bed_time, wake_time, duration_hours, quality
		FROM sleep_sessions ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []models.SleepSession{}
	for rows.Next() {
		var ss models.SleepSession
		if err := rows.Scan(&ss.ID, &ss.Date, &ss.BedTime, &ss.WakeTime, &ss.DurationHours, &ss.Quality); err != nil {
			return nil, err
		}
		sessions = append(sessions, ss)
	}
	return sessions, rows.Err()
}

func (s *Store) SaveSleep(sessions []models.SleepSession) error {
	return s.replace("sleep_sessions", func(tx *sql.Tx) error {
		rows := make([][]interface{}, 0, len(sessions))
		for i, ss := range sessions {
			rows = append(rows, []interface{}{ss.ID, ss.Date, ss.BedTime, ss.WakeTime, ss.DurationHours, ss.Quality, i})
		}
		return copyRows(tx, "sleep_sessions",
			[]string{"id", "date", "bed_time", "wake_time", "duration_hours", "quality", "position"}, rows)
	})
}

func (s *Store) LoadExercise() ([]models.ExerciseRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, date, time, kind, duration_minutes, body_part, speed_kmh, notes, created_at
		FROM exercise_records ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.ExerciseRecord{}
	for rows.Next() {
		var (
			r    models.ExerciseRecord
			kind string
		)
		if err := rows.Scan(&r.ID, &r.Date, &r.Time, &kind, &r.DurationMinutes, &r.BodyPart, &r.SpeedKmh, &r.Notes, &r.CreatedAt); err != nil {
			return nil, err
		}
		k, ok := models.ParseExerciseKind(kind)
		if !ok {
			return nil, fmt.Errorf("exercise record %s: unknown type %q", r.ID, kind)
		}
		r.Kind = k
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) SaveExercise(records []models.ExerciseRecord) error {
	return s.replace("exercise_records", func(tx *sql.Tx) error {
		rows := make([][]interface{}, 0, len(records))
		for i, r := range records {
			rows = append(rows, []interface{}{
				r.ID, r.Date, r.Time, string(r.Kind), r.DurationMinutes, r.BodyPart, r.SpeedKmh, r.Notes, r.CreatedAt, i,
			})
		}
		return copyRows(tx, "exercise_records",
			[]string{"id", "date", "time", "kind", "duration_minutes", "body_part", "speed_kmh", "notes", "created_at", "position"}, rows)
	})
}

func (s *Store) LoadCategories() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM categories ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		categories = append(categories, name)
	}
	return categories, rows.Err()
}

func (s *Store) SaveCategories(categories []string) error {
	return s.replace("categories", func(tx *sql.Tx) error {
		rows := make([][]interface{}, 0, len(categories))
		for i, name := range categories {
			rows = append(rows, []interface{}{name, i})
		}
		return copyRows(tx, "categories", []string{"name", "position"}, rows)
	})
}
