package controllers

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"spendly-be/internal/middleware"
	"spendly-be/internal/models"
)

// respondError writes the structured error body used on every error path.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, models.ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      c.Request.URL.Path,
	})
}

// respondInternal hides the underlying error from the client.
func respondInternal(c *gin.Context) {
	respondError(c, http.StatusInternalServerError, "internal server error")
}

// validationMessage flattens field errors into a deterministic message.
func validationMessage(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + fields[name]
	}
	return strings.Join(parts, "; ")
}

// currentUserID pulls the authenticated user's ID set by the auth
// middleware. A missing or mistyped value means the request never passed
// authentication.
func currentUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return "", false
	}
	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
