package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studyplan-backend/internal/platform/apierr"
)

// Envelope is the shape of every JSON body the API writes.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: payload})
}

func RespondMessage(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: msg})
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	if status >= http.StatusInternalServerError {
		// internal causes stay in the logs
		msg = http.StatusText(status)
	}
	c.JSON(status, Envelope{Success: false, Message: msg, Code: code})
}

// AbortError is RespondError for middleware that must stop the chain.
func AbortError(c *gin.Context, status int, code string, err error) {
	RespondError(c, status, code, err)
	c.Abort()
}

// RespondAPIError maps err through apierr and records it on the gin context for the access log.
func RespondAPIError(c *gin.Context, err error) {
	ae := apierr.From(err)
	if err != nil {
		_ = c.Error(err)
	}
	RespondError(c, ae.Status, ae.Code, ae)
}
