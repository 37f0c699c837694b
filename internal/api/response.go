package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/routinely/internal/logger"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/routines"
)

type errorResponse struct {
	Error string `json:"error"`
}

// clientErrors are the model errors caused by bad input rather than by the
// server or its store.
var clientErrors = []error{
	models.ErrBeforeStart,
	models.ErrInvalidDate,
	models.ErrEmptyTitle,
	models.ErrHabitNeedsRecurring,
	models.ErrDuplicateCategory,
	models.ErrUnknownCategory,
	models.ErrEmptyCategory,
	models.ErrInvalidQuality,
	models.ErrInvalidClock,
	models.ErrInvalidExercise,
}

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: message})
}

func NotFound(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Error: message})
}

func InternalError(c *gin.Context, err error) {
	StoreErrorsTotal.Inc()
	logger.Error("Request failed", "path", c.Request.URL.Path, "err", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

// Fail maps a service error onto a status code.
func Fail(c *gin.Context, err error) {
	if routines.IsNotFound(err) {
		NotFound(c, err.Error())
		return
	}
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			BadRequest(c, err.Error())
			return
		}
	}
	InternalError(c, err)
}
