// Package middleware contains gin middleware for access control, rate limiting and request logging.
package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sebasr/greet-service/internal/metrics"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// AccessLevelKey is the context key for the access level the presented key granted
	AccessLevelKey ContextKey = "access_level"

	// FunctionKeyHeader carries the access key
	FunctionKeyHeader = "x-functions-key"
	// FunctionKeyQuery carries the access key when the header is absent
	FunctionKeyQuery = "code"
)

// AccessLevel is the authorization a route requires before its handler runs.
type AccessLevel int

const (
	// AccessAnonymous routes need no key
	AccessAnonymous AccessLevel = iota
	// AccessFunction routes need a function key or the master key
	AccessFunction
	// AccessAdmin routes need the master key, which grants admin access on any route
	AccessAdmin
)

var accessLevelNames = map[AccessLevel]string{
	AccessAnonymous: "anonymous",
	AccessFunction:  "function",
	AccessAdmin:     "admin",
}

// String returns the lower-case level name
func (l AccessLevel) String() string {
	if name, ok := accessLevelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("AccessLevel(%d)", int(l))
}

// MarshalText encodes the level by name in JSON output
func (l AccessLevel) MarshalText() ([]byte, error) {
	name, ok := accessLevelNames[l]
	if !ok {
		return nil, fmt.Errorf("unknown access level %d", int(l))
	}
	return []byte(name), nil
}

// KeyVerifier checks presented access keys
type KeyVerifier interface {
	VerifyFunctionKey(key string) bool
	VerifyMasterKey(key string) bool
}

// AccessMiddleware enforces per-route access levels
type AccessMiddleware struct {
	keys   KeyVerifier
	logger logrus.FieldLogger
}

// NewAccessMiddleware creates a new access middleware
func NewAccessMiddleware(keys KeyVerifier, logger logrus.FieldLogger) *AccessMiddleware {
	return &AccessMiddleware{
		keys:   keys,
		logger: logger,
	}
}

// Require returns a middleware enforcing level for the named function.
// Returns 401 Unauthorized with an empty body when the key is missing or not accepted.
// On success the granted level is stored under AccessLevelKey: admin for the master key,
// function for a function key, anonymous when the route needs no key.
func (m *AccessMiddleware) Require(function string, level AccessLevel) gin.HandlerFunc {
	return func(c *gin.Context) {
		granted, err := m.authorize(c, level)
		if err != nil {
			metrics.AccessDenied.WithLabelValues(function, level.String()).Inc()
			m.logger.WithFields(logrus.Fields{
				"function":   function,
				"level":      level.String(),
				"request_id": c.GetString(RequestIDKey),
			}).WithError(err).Warn("access denied")
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(string(AccessLevelKey), granted)
		c.Next()
	}
}

func (m *AccessMiddleware) authorize(c *gin.Context, level AccessLevel) (AccessLevel, error) {
	if level == AccessAnonymous {
		return AccessAnonymous, nil
	}

	key := extractKey(c)
	if key == "" {
		return AccessAnonymous, errors.New("missing access key")
	}

	switch level {
	case AccessFunction, AccessAdmin:
	default:
		return AccessAnonymous, fmt.Errorf("unsupported access level %s", level)
	}

	if m.keys.VerifyMasterKey(key) {
		return AccessAdmin, nil
	}
	if level == AccessFunction && m.keys.VerifyFunctionKey(key) {
		return AccessFunction, nil
	}
	return AccessAnonymous, errors.New("invalid access key")
}

// extractKey reads the key from the x-functions-key header, falling back to the code query parameter
func extractKey(c *gin.Context) string {
	if key := c.GetHeader(FunctionKeyHeader); key != "" {
		return key
	}
	return c.Query(FunctionKeyQuery)
}

// GetAccessLevel retrieves the access level granted to the request
func GetAccessLevel(c *gin.Context) (AccessLevel, error) {
	value, exists := c.Get(string(AccessLevelKey))
	if !exists {
		return AccessAnonymous, errors.New("access level not set")
	}

	level, ok := value.(AccessLevel)
	if !ok {
		return AccessAnonymous, errors.New("invalid access level format")
	}

	return level, nil
}
