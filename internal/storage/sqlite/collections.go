package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/julianstephens/routinely/internal/models"
)

// replace runs fn inside a transaction after clearing table.
func (s *Store) replace(table string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM " + table); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
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
		stmt, err := tx.Prepare(`
			INSERT INTO tasks (id, title, category, date, completed, quantity, unit, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, t := range tasks {
			if _, err := stmt.Exec(t.ID, t.Title, t.Category, t.Date, t.Completed, t.Quantity, t.Unit, i); err != nil {
				return fmt.Errorf("saving task %s: %w", t.ID, err)
			}
		}
		return nil
	})
}

func (s *Store) LoadHabits() ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT id, title, category, recurrence_type, recurrence_value, start_date, quantity, unit
		FROM habits ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []models.Habit{}
	index := make(map[string]int)
	for rows.Next() {
		var (
			h        models.Habit
			recType  string
			recValue int
		)
		if err := rows.Scan(&h.ID, &h.Title, &h.Category, &recType, &recValue, &h.StartDate, &h.Quantity, &h.Unit); err != nil {
			return nil, err
		}
		rec, err := models.ParseRecurrence(recType, recValue)
		if err != nil {
			return nil, fmt.Errorf("habit %s: %w", h.ID, err)
		}
		h.Recurrence = rec
		h.CompletedDates = []string{}
		index[h.ID] = len(habits)
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	completions, err := s.db.Query("SELECT habit_id, date FROM habit_completions ORDER BY habit_id, date")
	if err != nil {
		return nil, err
	}
	defer completions.Close()

	for completions.Next() {
		var habitID, date string
		if err := completions.Scan(&habitID, &date); err != nil {
			return nil, err
		}
		if i, ok := index[habitID]; ok {
			habits[i].CompletedDates = append(habits[i].CompletedDates, date)
		}
	}
	return habits, completions.Err()
}

func (s *Store) SaveHabits(habits []models.Habit) error {
	return s.replace("habits", func(tx *sql.Tx) error {
		// completions cascade with their habit, but clear them explicitly in
		// case foreign keys are off for this connection
		if _, err := tx.Exec("DELETE FROM habit_completions"); err != nil {
			return fmt.Errorf("clearing habit_completions: %w", err)
		}

		habitStmt, err := tx.Prepare(`
			INSERT INTO habits (id, title, category, recurrence_type, recurrence_value, start_date, quantity, unit, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer habitStmt.Close()

		doneStmt, err := tx.Prepare("INSERT OR IGNORE INTO habit_completions (habit_id, date) VALUES (?, ?)")
		if err != nil {
			return err
		}
		defer doneStmt.Close()

		for i, h := range habits {
			if _, err := habitStmt.Exec(h.ID, h.Title, h.Category, string(h.Recurrence.Type), h.Recurrence.Value, h.StartDate, h.Quantity, h.Unit, i); err != nil {
				return fmt.Errorf("saving habit %s: %w", h.ID, err)
			}
			for _, d := range h.CompletedDates {
				if _, err := doneStmt.Exec(h.ID, d); err != nil {
					return fmt.Errorf("saving completion %s for habit %s: %w", d, h.ID, err)
				}
			}
		}
		return nil
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
		stmt, err := tx.Prepare(`
			INSERT INTO sleep_sessions (id, date, bed_time, wake_time, duration_hours, quality, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, ss := range sessions {
			if _, err := stmt.Exec(ss.ID, ss.Date, ss.BedTime, ss.WakeTime, ss.DurationHours, ss.Quality, i); err != nil {
				return fmt.Errorf("saving sleep session %s: %w", ss.ID, err)
			}
		}
		return nil
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
		stmt, err := tx.Prepare(`
			INSERT INTO exercise_records (id, date, time, kind, duration_minutes, body_part, speed_kmh, notes, created_at, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, r := range records {
			if _, err := stmt.Exec(r.ID, r.Date, r.Time, string(r.Kind), r.DurationMinutes, r.BodyPart, r.SpeedKmh, r.Notes, r.CreatedAt, i); err != nil {
				return fmt.Errorf("saving exercise record %s: %w", r.ID, err)
			}
		}
		return nil
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
		stmt, err := tx.Prepare("INSERT INTO categories (name, position) VALUES (?, ?)")
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, name := range categories {
			if _, err := stmt.Exec(name, i); err != nil {
				return fmt.Errorf("saving category %s: %w", name, err)
			}
		}
		return nil
	})
}
