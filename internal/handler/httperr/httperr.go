package httperr

import (
	"strings"

	"therapy-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const detailLines = 40

// Response is the body of every error reply: {"error":{"message":...},"detail":...}.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func New(status int, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Message = msg
	return resp
}

// AbortWithError replies with msg and keeps err on the context for ErrorHandler.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := New(status, msg, detail)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Last returns the most recent public error and the response built for it.
func Last(ginErrs []*gin.Error) (*gin.Error, Response, bool) {
	for i := len(ginErrs) - 1; i >= 0; i-- {
		e := ginErrs[i]
		if !e.IsType(gin.ErrorTypePublic) {
			continue
		}
		if resp, ok := e.Meta.(Response); ok {
			return e, resp, true
		}
	}
	return nil, Response{}, false
}

// Detail renders err with its wrap chain and stack for server-side logs.
func Detail(err error) string {
	return strings.Join(errs.ExtractStackLines(err, detailLines), "\n")
}
