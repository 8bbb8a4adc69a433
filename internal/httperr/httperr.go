package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTTPError is the error envelope of every endpoint.
type HTTPError struct {
	Code      string `json:"error_code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// Write answers with the envelope. The request id is echoed from the
// X-Request-ID response header when the request middleware set one.
func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:      code,
		Message:   message,
		RequestID: c.Writer.Header().Get("X-Request-ID"),
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// Answer is the HTTP status and user message a business code maps to.
type Answer struct {
	Status  int
	Message string
}

// Table maps business codes to their answers.
type Table map[string]Answer

// Respond writes err when it carries a business code. Codes missing from
// the table are answered as 400 with the code as message. It returns false
// for non-business errors and writes nothing.
func (t Table) Respond(c *gin.Context, err error) bool {
	code := BusinessCode(err)
	if code == "" {
		return false
	}

	if a, ok := t[code]; ok {
		Write(c, a.Status, code, a.Message)
		return true
	}

	BadRequest(c, code, code)
	return true
}
