package api

import (
	"errors"
	"net/http" // HTTP status codes

	"dhanrekha/internal/ledger" // Aggregation core

	"github.com/gin-gonic/gin" // Gin web framework
)

// abortWithError maps a ledger error to its HTTP status. Aggregation
// errors pass through unchanged; anything outside the taxonomy is
// treated as internal.
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, ledger.ErrBadRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

// currentUserID pulls the authenticated user id set by the JWT
// middleware. Zero means the request carries no valid identity.
func currentUserID(c *gin.Context) uint {
	v, exists := c.Get("userID")
	if !exists {
		return 0
	}
	id, ok := v.(uint)
	if !ok {
		return 0
	}
	return id
}
