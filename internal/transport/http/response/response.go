package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body is the error payload of every failed request.
type Body struct {
	Error string `json:"error"`
}

func Error(msg string) Body { return Body{Error: msg} }

// FromError returns the status and body for err without leaking detail of
// unexpected failures.
func FromError(err error) (int, Body) {
	status := StatusOf(err)
	if status >= http.StatusInternalServerError {
		return status, Error(MsgInternal)
	}
	return status, Error(err.Error())
}

// Abort writes err as the response and stops the handler chain.
func Abort(c *gin.Context, err error) {
	status, body := FromError(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}

// AbortMsg aborts with a fixed status and message.
func AbortMsg(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Error(msg))
}
