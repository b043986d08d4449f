package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	firmIDKey  = "firm_id"
	actorIDKey = "actor_id"
)

// ErrMissingFirmContext indicates the firm context was not set on the request.
var ErrMissingFirmContext = errors.New("missing firm context")

// FirmContext resolves the acting firm and user from the X-Firm-ID and
// X-Actor-ID headers set by the edge gateway, which has already
// authenticated the caller. Requests without a firm are rejected.
func FirmContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		firmID, err := uuid.Parse(c.GetHeader("X-Firm-ID"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "MISSING_FIRM", "message": "missing or invalid X-Firm-ID header"},
			})
			return
		}
		c.Set(firmIDKey, firmID)

		// Actor is optional; scheduled jobs and system calls carry none.
		if actorID, err := uuid.Parse(c.GetHeader("X-Actor-ID")); err == nil {
			c.Set(actorIDKey, actorID)
		}

		c.Next()
	}
}

// GetFirmID returns the firm ID set by FirmContext.
func GetFirmID(c *gin.Context) (uuid.UUID, error) {
	v, ok := c.Get(firmIDKey)
	if !ok {
		return uuid.Nil, ErrMissingFirmContext
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil, ErrMissingFirmContext
	}
	return id, nil
}

// GetActorID returns the actor ID set by FirmContext, or uuid.Nil when
// the request carried none.
func GetActorID(c *gin.Context) uuid.UUID {
	v, ok := c.Get(actorIDKey)
	if !ok {
		return uuid.Nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
