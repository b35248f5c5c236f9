package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline-api/libs/go/constants"
)

const (
	workspaceIDKey = "workspaceID"
	actorIDKey     = "actorID"
)

// WorkspaceContextMiddleware reads the workspace and acting user set by the
// session layer. Requests without a valid workspace are rejected; the actor
// is optional here and enforced by the handlers that record decisions.
func WorkspaceContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(constants.WorkspaceIDHeader)
		if raw == "" {
			abortWithFieldError(c, "workspace_id", constants.WorkspaceIDHeader+" header is required")
			return
		}
		workspaceID, err := uuid.Parse(raw)
		if err != nil || workspaceID == uuid.Nil {
			abortWithFieldError(c, "workspace_id", "must be a valid UUID")
			return
		}
		c.Set(workspaceIDKey, workspaceID)

		if rawActor := c.GetHeader(constants.ActorIDHeader); rawActor != "" {
			actorID, err := uuid.Parse(rawActor)
			if err != nil {
				abortWithFieldError(c, "actor_id", "must be a valid UUID")
				return
			}
			c.Set(actorIDKey, actorID)
		}

		c.Next()
	}
}

// GetWorkspaceID returns the workspace set by WorkspaceContextMiddleware
func GetWorkspaceID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(workspaceIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetActorID returns the acting user, if the request carried one
func GetActorID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(actorIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func abortWithFieldError(c *gin.Context, field, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ValidationErrors{
		Errors: []ValidationError{{Field: field, Message: message}},
	})
}
