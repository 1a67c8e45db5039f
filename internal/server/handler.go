package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/prayertime/internal/api"
	"github.com/smokyabdulrahman/prayertime/internal/prayer"
)

// Handler serves the v1 API. Now is the clock used for default dates and
// the sun position; it is time.Now unless a test replaces it.
type Handler struct {
	Now func() time.Time
}

// NewHandler creates a new HTTP handler.
func NewHandler() *Handler {
	return &Handler{Now: time.Now}
}

// GetTimes handles GET /v1/times.
func (h *Handler) GetTimes(c *gin.Context) {
	now := h.Now()
	req, err := api.ParseTimesQuery(c.Request.URL.Query(), now)
	if err != nil {
		writeError(c, err)
		return
	}

	data, err := api.Evaluate(req, now)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.Response{Code: http.StatusOK, Status: "OK", Data: *data})
}

// GetCalendar handles GET /v1/calendar/:year/:month. The query takes the
// same parameters as /v1/times except date.
func (h *Handler) GetCalendar(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 || year > 9999 {
		writeError(c, fmt.Errorf("%w: year %q", prayer.ErrInvalidDate, c.Param("year")))
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		writeError(c, fmt.Errorf("%w: month %q", prayer.ErrInvalidDate, c.Param("month")))
		return
	}

	now := h.Now()
	q := c.Request.URL.Query()
	q.Del("date")
	req, err := api.ParseTimesQuery(q, now)
	if err != nil {
		writeError(c, err)
		return
	}

	days, err := api.EvaluateMonth(year, time.Month(month), req, now)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.CalendarResponse{Code: http.StatusOK, Status: "OK", Data: days})
}

// GetMethods handles GET /v1/methods.
func (h *Handler) GetMethods(c *gin.Context) {
	c.JSON(http.StatusOK, api.MethodsResponse{Code: http.StatusOK, Status: "OK", Data: api.Methods()})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeError maps calculation errors to 400 and anything else to 500.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, prayer.ErrInvalidInput) || errors.Is(err, prayer.ErrInvalidDate) {
		status = http.StatusBadRequest
	} else {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	}
	c.JSON(status, api.ErrorResponse{Error: err.Error()})
}
