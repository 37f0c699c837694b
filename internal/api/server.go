// Package api exposes the routines service over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/julianstephens/routinely/internal/logger"
	"github.com/julianstephens/routinely/internal/routines"
	"github.com/julianstephens/routinely/internal/utils"
)

const shutdownTimeout = 5 * time.Second

var registerOnce sync.Once

// Server serializes access to one service. Every handler holds mu for its
// whole load-mutate-save cycle.
type Server struct {
	svc    *routines.Service
	mu     sync.Mutex
	router *gin.Engine
}

func New(svc *routines.Service) *Server {
	registerValidators()

	s := &Server{svc: svc}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(), MetricsMiddleware())
	s.routes(router)
	s.router = router
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("API server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("Shutting down API server")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/healthz", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/today", s.today)
		v1.GET("/completion", s.completion)
		v1.GET("/heatmap", s.heatmap)
		v1.GET("/stats", s.stats)

		v1.GET("/tasks", s.listTasks)
		v1.POST("/tasks", s.createTask)
		v1.DELETE("/tasks/:id", s.deleteTask)

		v1.GET("/habits", s.listHabits)
		v1.POST("/habits", s.createHabit)
		v1.DELETE("/habits/:id", s.deleteHabit)
		v1.GET("/habits/:id/quota", s.habitQuota)

		v1.POST("/items/:id/toggle", s.toggle)

		v1.GET("/sleep", s.listSleep)
		v1.POST("/sleep", s.logSleep)
		v1.GET("/sleep/score", s.sleepScore)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("datekey", func(fl validator.FieldLevel) bool {
			return utils.IsDateKey(fl.Field().String())
		})
		_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			return utils.ValidateTimeFormat(fl.Field().String())
		})
	})
}
