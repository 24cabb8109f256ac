// Package handlers contains HTTP request handlers for the greet service.
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/sebasr/greet-service/internal/greeting"
	"github.com/sebasr/greet-service/internal/metrics"
	"github.com/sebasr/greet-service/internal/middleware"
	"github.com/sebasr/greet-service/internal/models"
)

const (
	// GreetByQueryName is the function name of the query greeting endpoint
	GreetByQueryName = "httpget"
	// GreetByBodyName is the function name of the body greeting endpoint
	GreetByBodyName = "httppost"

	// MalformedBodyMessage is returned when the body cannot be decoded into a person
	MalformedBodyMessage = "Request body is not a valid person."
)

// GreetingHandler serves the greeting endpoints.
// It holds only the injected logger, so one instance serves concurrent requests.
type GreetingHandler struct {
	logger logrus.FieldLogger
}

// NewGreetingHandler creates a new greeting handler
func NewGreetingHandler(logger logrus.FieldLogger) *GreetingHandler {
	return &GreetingHandler{
		logger: logger,
	}
}

// GreetByBody greets the person described by the JSON request body
// POST /api/httppost
func (h *GreetingHandler) GreetByBody(c *gin.Context) {
	log := h.requestLogger(c, GreetByBodyName)
	if level, err := middleware.GetAccessLevel(c); err == nil {
		log = log.WithField("access_level", level.String())
	}
	log.WithField("content_length", c.Request.ContentLength).Info("greet-by-body request received")

	person, err := bindPerson(c)
	switch {
	case errors.Is(err, errMissingFields):
		metrics.GreetingsTotal.WithLabelValues(GreetByBodyName, metrics.OutcomeValidationFailed).Inc()
		log.Info("greet-by-body request without name or age")
		c.String(http.StatusBadRequest, greeting.ValidationMessage)
		return
	case err != nil:
		metrics.GreetingsTotal.WithLabelValues(GreetByBodyName, metrics.OutcomeMalformed).Inc()
		log.WithError(err).Warn("request body could not be decoded")
		c.String(http.StatusBadRequest, MalformedBodyMessage)
		return
	}

	metrics.GreetingsTotal.WithLabelValues(GreetByBodyName, metrics.OutcomeSuccess).Inc()
	log.WithFields(logrus.Fields{
		"name": person.Name,
		"age":  person.Age,
	}).Info("greet-by-body request processed")
	c.String(http.StatusOK, greeting.ForPerson(person))
}

var errMissingFields = errors.New("name and age are required")

// bindPerson decodes the whole body as one JSON document and applies the Person binding rules.
// An empty body or a failed binding rule yields errMissingFields; any other failure is a malformed body.
func bindPerson(c *gin.Context) (models.Person, error) {
	var person models.Person

	raw, err := c.GetRawData()
	if err != nil {
		return person, fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return person, errMissingFields
	}
	if !json.Valid(raw) {
		return person, errors.New("body is not a single JSON document")
	}

	if err := binding.JSON.BindBody(raw, &person); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return person, fmt.Errorf("%w: %v", errMissingFields, err)
		}
		return person, err
	}
	return person, nil
}

func (h *GreetingHandler) requestLogger(c *gin.Context, function string) logrus.FieldLogger {
	return h.logger.WithFields(logrus.Fields{
		"function":   function,
		"request_id": c.GetString(middleware.RequestIDKey),
	})
}
