package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MAKHFIRAT2408/food/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const bodyLogLimit = 8 * 1024

var redactedKeys = map[string]struct{}{
	"password":      {},
	"authorization": {},
	"token":         {},
	"secret":        {},
}

type responseCapture struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *responseCapture) Write(b []byte) (int, error) {
	if remain := bodyLogLimit - w.buf.Len(); remain > 0 {
		if len(b) > remain {
			w.buf.Write(b[:remain])
		} else {
			w.buf.Write(b)
		}
	}
	return w.ResponseWriter.Write(b)
}

// Logging assigns a request id, plants a request-scoped logger into both the
// gin and the request context, and emits one line per request with capped,
// redacted JSON bodies. Handlers always see the original request body.
func Logging(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header("X-Request-Id", reqID)

		l := base.With(
			"req_id", reqID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"remote", c.ClientIP(),
		)
		logging.With(c, l)
		c.Request = c.Request.WithContext(logging.WithCtx(c.Request.Context(), l))

		var reqBody string
		if isJSON(c.GetHeader("Content-Type")) && c.Request.Body != nil {
			raw, _ := io.ReadAll(io.LimitReader(c.Request.Body, bodyLogLimit))
			c.Request.Body.Close()
			// handlers get the untouched bytes back
			c.Request.Body = io.NopCloser(bytes.NewReader(raw))
			reqBody = string(redactJSON(raw))
		}

		rec := &responseCapture{ResponseWriter: c.Writer}
		c.Writer = rec

		c.Next()

		attrs := []any{
			"status", c.Writer.Status(),
			"dur_ms", time.Since(start).Milliseconds(),
			"resp_bytes", c.Writer.Size(),
		}
		if reqBody != "" {
			attrs = append(attrs, "req_body", reqBody)
		}
		if isJSON(c.Writer.Header().Get("Content-Type")) && rec.buf.Len() > 0 {
			attrs = append(attrs, "resp_body", string(redactJSON(rec.buf.Bytes())))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "error", c.Errors.String())
		}

		if c.Writer.Status() >= http.StatusBadRequest {
			l.Error("http_request", attrs...)
			return
		}
		l.Info("http_request", attrs...)
	}
}

func isJSON(contentType string) bool {
	return strings.Contains(contentType, "application/json")
}

// redactJSON blanks well-known credential keys at any nesting depth. Bodies
// that are not valid JSON pass through unchanged.
func redactJSON(raw []byte) []byte {
	if len(raw) == 0 {
		return raw
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return raw
	}
	var scrub func(any) any
	scrub = func(x any) any {
		switch v := x.(type) {
		case map[string]any:
			for k, val := range v {
				if _, hit := redactedKeys[strings.ToLower(k)]; hit {
					v[k] = "***"
					continue
				}
				v[k] = scrub(val)
			}
			return v
		case []any:
			for i := range v {
				v[i] = scrub(v[i])
			}
			return v
		default:
			return v
		}
	}
	out, err := json.Marshal(scrub(parsed))
	if err != nil {
		return raw
	}
	return out
}
