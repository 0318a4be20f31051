package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"therapy-booking/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last public error attached by httperr.AbortWithError
// when nothing has been written yet, and logs the cause of every 5xx.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		cause, resp, found := httperr.Last(c.Errors)
		if found && resp.Status >= http.StatusInternalServerError {
			slog.Error("request failed",
				slog.String("request_id", GetRequestID(c)),
				slog.String("route", c.FullPath()),
				slog.Int("status_code", resp.Status),
				slog.String("error", cause.Err.Error()),
				slog.String("detail", httperr.Detail(cause.Err)))
		}

		if c.Writer.Written() {
			return
		}
		if found {
			c.JSON(resp.Status, resp)
			return
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, httperr.New(http.StatusInternalServerError, "Internal server error", nil))
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("recovered from panic",
					slog.Any("panic", rec),
					slog.String("request_id", GetRequestID(c)),
					slog.String("path", c.Request.URL.Path),
					slog.String("stack", string(debug.Stack())))

				c.AbortWithStatusJSON(http.StatusInternalServerError,
					httperr.New(http.StatusInternalServerError, "Internal server error", nil))
			}
		}()
		c.Next()
	}
}
