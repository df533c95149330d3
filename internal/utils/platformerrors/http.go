package platformerrors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// WriteHTTPError logs err once and writes a flat text/plain response.
// Client-facing errors expose their message; everything else gets fallback.
func WriteHTTPError(c *gin.Context, err *PlatformError, log zerolog.Logger, fallback string) {
	if err == nil {
		c.String(http.StatusInternalServerError, fallback)
		return
	}

	LogError(log, err)

	body := fallback
	if err.ClientFacing() {
		body = err.Message
	}
	c.String(ErrorTypeToHTTPStatus(err.Type), body)
}

// WriteError writes a generic error as a flat HTTP response.
// Errors that are not PlatformErrors are treated as internal.
func WriteError(c *gin.Context, err error, log zerolog.Logger, fallback string) {
	if err == nil {
		c.String(http.StatusInternalServerError, fallback)
		return
	}

	platformErr := GetPlatformError(err)
	if platformErr == nil {
		platformErr = AsError(c.Request.Context(), LayerHandler, err, "unclassified error")
	}
	WriteHTTPError(c, platformErr, log, fallback)
}

// WriteMethodNotAllowed writes the 405 response used for every non-POST verb.
func WriteMethodNotAllowed(c *gin.Context) {
	c.String(http.StatusMethodNotAllowed, "Method Not Allowed")
}
