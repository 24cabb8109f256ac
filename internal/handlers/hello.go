package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sebasr/greet-service/internal/greeting"
	"github.com/sebasr/greet-service/internal/metrics"
)

// GreetByQuery greets the name given in the query string, or the world when none is given
// GET /api/httpget?name={name}
func (h *GreetingHandler) GreetByQuery(c *gin.Context) {
	message := greeting.ForName(c.Query("name"))

	metrics.GreetingsTotal.WithLabelValues(GreetByQueryName, metrics.OutcomeSuccess).Inc()
	h.requestLogger(c, GreetByQueryName).
		WithField("greeting", message).
		Info("greet-by-query request processed")

	c.String(http.StatusOK, message)
}
