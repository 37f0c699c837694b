package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/routinely/internal/constants"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/routines"
	"github.com/julianstephens/routinely/internal/scheduler"
)

type taskRequest struct {
	Title    string  `json:"title" binding:"required"`
	Category string  `json:"category"`
	Date     string  `json:"date" binding:"omitempty,datekey"`
	Quantity float64 `json:"value" binding:"gte=0"`
	Unit     string  `json:"unit"`
}

type frequencyRequest struct {
	Type  string `json:"type" binding:"required,oneof=daily interval weekly"`
	Value int    `json:"value" binding:"gte=0"`
}

type habitRequest struct {
	Title     string           `json:"title" binding:"required"`
	Category  string           `json:"category"`
	StartDate string           `json:"startDate" binding:"omitempty,datekey"`
	Frequency frequencyRequest `json:"frequency" binding:"required"`
	Quantity  float64          `json:"value" binding:"gte=0"`
	Unit      string           `json:"unit"`
}

type sleepRequest struct {
	Date     string `json:"date" binding:"omitempty,datekey"`
	BedTime  string `json:"bedTime" binding:"required,clock"`
	WakeTime string `json:"wakeTime" binding:"required,clock"`
	Quality  int    `json:"quality" binding:"omitempty,min=1,max=5"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": constants.Version})
}

func (s *Server) today(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan, err := s.svc.Plan(c.Query("date"))
	if err != nil {
		Fail(c, err)
		return
	}
	// completed/total keep counting the whole day
	plan.Items = scheduler.FilterByCategory(plan.Items, c.Query("category"))
	Success(c, http.StatusOK, plan)
}

func (s *Server) completion(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	completion, err := s.svc.Completion(c.Query("date"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, completion)
}

func (s *Server) heatmap(c *gin.Context) {
	days := constants.HeatmapDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > constants.HeatmapDays {
			BadRequest(c, "days must be between 1 and "+strconv.Itoa(constants.HeatmapDays))
			return
		}
		days = n
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cells, err := s.svc.Heatmap(days)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, cells)
}

func (s *Server) stats(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary, err := s.svc.Summary()
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, summary)
}

func (s *Server) listTasks(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.svc.Tasks()
	if err != nil {
		Fail(c, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	Success(c, http.StatusOK, tasks)
}

func (s *Server) createTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.svc.AddTask(routines.TaskInput{
		Title:    req.Title,
		Category: req.Category,
		Date:     req.Date,
		Quantity: req.Quantity,
		Unit:     req.Unit,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusCreated, task)
}

func (s *Server) deleteTask(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.svc.DeleteTask(c.Param("id")); err != nil {
		Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listHabits(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	habits, err := s.svc.Habits()
	if err != nil {
		Fail(c, err)
		return
	}
	if habits == nil {
		habits = []models.Habit{}
	}
	Success(c, http.StatusOK, habits)
}

func (s *Server) createHabit(c *gin.Context) {
	var req habitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	raw := models.Recurrence{Type: constants.RecurrenceType(req.Frequency.Type), Value: req.Frequency.Value}
	if err := raw.Validate(); err != nil {
		BadRequest(c, err.Error())
		return
	}
	rec := raw.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	habit, err := s.svc.AddHabit(routines.HabitInput{
		Title:      req.Title,
		Category:   req.Category,
		StartDate:  req.StartDate,
		Recurrence: rec,
		Quantity:   req.Quantity,
		Unit:       req.Unit,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusCreated, habit)
}

func (s *Server) deleteHabit(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.svc.DeleteHabit(c.Param("id")); err != nil {
		Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) habitQuota(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	progress, err := s.svc.Quota(c.Param("id"), c.Query("date"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, progress)
}

func (s *Server) toggle(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.svc.Toggle(c.Param("id"), c.Query("date"))
	if err != nil {
		Fail(c, err)
		return
	}
	ToggleTotal.WithLabelValues(string(result.Kind), strconv.FormatBool(result.Completed)).Inc()
	Success(c, http.StatusOK, result)
}

func (s *Server) listSleep(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.svc.SleepSessions()
	if err != nil {
		Fail(c, err)
		return
	}
	if sessions == nil {
		sessions = []models.SleepSession{}
	}
	Success(c, http.StatusOK, sessions)
}

func (s *Server) logSleep(c *gin.Context) {
	var req sleepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.svc.LogSleep(req.Date, req.BedTime, req.WakeTime, req.Quality)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusCreated, session)
}

func (s *Server) sleepScore(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := s.svc.SleepReport()
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, http.StatusOK, report)
}
