package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceContextMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	workspaceID := uuid.New()
	actorID := uuid.New()

	tests := []struct {
		name           string
		workspace      string
		actor          string
		expectedStatus int
		expectedField  string
		expectActor    bool
	}{
		{name: "workspace and actor", workspace: workspaceID.String(), actor: actorID.String(), expectedStatus: http.StatusOK, expectActor: true},
		{name: "actor is optional", workspace: workspaceID.String(), expectedStatus: http.StatusOK},
		{name: "missing workspace", expectedStatus: http.StatusBadRequest, expectedField: "workspace_id"},
		{name: "malformed workspace", workspace: "ws-1", expectedStatus: http.StatusBadRequest, expectedField: "workspace_id"},
		{name: "nil workspace", workspace: uuid.Nil.String(), expectedStatus: http.StatusBadRequest, expectedField: "workspace_id"},
		{name: "malformed actor", workspace: workspaceID.String(), actor: "bob", expectedStatus: http.StatusBadRequest, expectedField: "actor_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(WorkspaceContextMiddleware())

			var gotWorkspace, gotActor uuid.UUID
			var hasActor bool
			router.GET("/test", func(c *gin.Context) {
				gotWorkspace, _ = GetWorkspaceID(c)
				gotActor, hasActor = GetActorID(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.workspace != "" {
				req.Header.Set("X-Workspace-ID", tt.workspace)
			}
			if tt.actor != "" {
				req.Header.Set("X-User-ID", tt.actor)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				var body ValidationErrors
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				require.Len(t, body.Errors, 1)
				assert.Equal(t, tt.expectedField, body.Errors[0].Field)
				return
			}
			assert.Equal(t, workspaceID, gotWorkspace)
			assert.Equal(t, tt.expectActor, hasActor)
			if tt.expectActor {
				assert.Equal(t, actorID, gotActor)
			}
		})
	}
}
