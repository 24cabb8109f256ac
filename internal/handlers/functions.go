package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sebasr/greet-service/internal/middleware"
)

// FunctionInfo describes one registered route
type FunctionInfo struct {
	Name   string                 `json:"name"`
	Method string                 `json:"method"`
	Path   string                 `json:"path"`
	Access middleware.AccessLevel `json:"access"`
}

// FunctionsResponse lists the registered routes
type FunctionsResponse struct {
	Functions []FunctionInfo `json:"functions"`
	Count     int            `json:"count"`
}

// NewFunctionsHandler returns a handler listing the given routes
// GET /admin/functions
func NewFunctionsHandler(functions []FunctionInfo) gin.HandlerFunc {
	response := FunctionsResponse{
		Functions: append([]FunctionInfo(nil), functions...),
		Count:     len(functions),
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, response)
	}
}
