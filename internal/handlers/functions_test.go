package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebasr/greet-service/internal/middleware"
)

func TestFunctionsHandler(t *testing.T) {
	functions := []FunctionInfo{
		{Name: GreetByQueryName, Method: http.MethodGet, Path: "/api/httpget", Access: middleware.AccessAnonymous},
		{Name: GreetByBodyName, Method: http.MethodPost, Path: "/api/httppost", Access: middleware.AccessFunction},
	}

	router := gin.New()
	router.GET("/admin/functions", NewFunctionsHandler(functions))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/functions", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Functions []map[string]string `json:"functions"`
		Count     int                 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, 2, response.Count)
	require.Len(t, response.Functions, 2)
	assert.Equal(t, map[string]string{
		"name":   "httpget",
		"method": "GET",
		"path":   "/api/httpget",
		"access": "anonymous",
	}, response.Functions[0])
	assert.Equal(t, "function", response.Functions[1]["access"])
}
