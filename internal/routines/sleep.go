package routines

import (
	"slices"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/logger"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/sleep"
)

// SleepReport combines the 30-day score with the weekly averages.
type SleepReport struct {
	Score       sleep.Result   `json:"score"`
	Week        sleep.Averages `json:"week"`
	TargetHours float64        `json:"targetHours"`
}

func (s *Service) SleepSessions() ([]models.SleepSession, error) {
	return s.store.LoadSleep()
}

// LogSleep appends a session for date (today when empty). Sessions on the
// same date are kept side by side.
func (s *Service) LogSleep(date, bed, wake string, quality int) (models.SleepSession, error) {
	date, err := s.ResolveDate(date)
	if err != nil {
		return models.SleepSession{}, err
	}
	session, err := sleep.NewSession(date, bed, wake, quality)
	if err != nil {
		return models.SleepSession{}, err
	}
	sessions, err := s.store.LoadSleep()
	if err != nil {
		return models.SleepSession{}, err
	}
	if err := s.store.SaveSleep(append(sessions, session)); err != nil {
		return models.SleepSession{}, err
	}
	logger.Debug("Sleep logged", "date", date, "hours", session.DurationHours)
	return session, nil
}

func (s *Service) DeleteSleep(id string) error {
	sessions, err := s.store.LoadSleep()
	if err != nil {
		return err
	}
	i := slices.IndexFunc(sessions, func(x models.SleepSession) bool { return x.ID == id })
	if i < 0 {
		return notFound("sleep session", id)
	}
	return s.store.SaveSleep(slices.Delete(sessions, i, i+1))
}

func (s *Service) SleepReport() (SleepReport, error) {
	sessions, err := s.store.LoadSleep()
	if err != nil {
		return SleepReport{}, err
	}
	target := constants.DefaultSleepTargetHours
	if settings, err := s.store.GetSettings(); err == nil && settings.SleepTargetHours > 0 {
		target = settings.SleepTargetHours
	}
	now := s.clock.Now()
	return SleepReport{
		Score:       sleep.Evaluate(sessions, now),
		Week:        sleep.Average(sessions, now, constants.DefaultAvgDays),
		TargetHours: target,
	}, nil
}

func (s *Service) SleepStats(period sleep.Period) ([]sleep.Bucket, error) {
	sessions, err := s.store.LoadSleep()
	if err != nil {
		return nil, err
	}
	return sleep.Stats(sessions, s.clock.Now(), period)
}
