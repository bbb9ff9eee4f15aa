package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marcelokanu/gostock-orders/internal/logging"
)

const reqBodyLimit = 4 * 1024 // bytes of request body kept for logs

func redactJSON(raw []byte) []byte {
	if len(raw) == 0 {
		return raw
	}
	var m any
	if err := json.Unmarshal(raw, &m); err != nil {
		return raw // not JSON, log as-is
	}
	var scrub func(any) any
	scrub = func(x any) any {
		switch v := x.(type) {
		case map[string]any:
			for k, val := range v {
				switch strings.ToLower(k) {
				case "password", "authorization", "token", "secret":
					v[k] = "***redacted***"
				default:
					v[k] = scrub(val)
				}
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
	b, err := json.Marshal(scrub(m))
	if err != nil {
		return raw
	}
	return b
}

// readCapped reads up to n+1 bytes without closing r; the extra byte only
// signals truncation. The caller stitches what was consumed back in front of
// the unread remainder.
func readCapped(r io.Reader, n int) (head []byte, truncated bool) {
	var buf bytes.Buffer
	_, _ = io.CopyN(&buf, r, int64(n+1))
	b := buf.Bytes()
	return b, len(b) > n
}

// Logging injects a request-scoped slog.Logger into the gin context and logs
// one line per request with status, duration, and a capped, redacted copy of
// JSON request bodies.
func Logging(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
			c.Request.Header.Set("X-Request-Id", reqID)
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
		if strings.Contains(c.GetHeader("Content-Type"), "application/json") && c.Request.Body != nil {
			orig := c.Request.Body
			head, truncated := readCapped(orig, reqBodyLimit)
			// Handlers must see the complete body: the consumed head plus
			// whatever is still unread. Only the logged copy is capped.
			c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(head), orig))

			logged := head
			if truncated {
				// copy: appending the marker below must not scribble on
				// the head bytes the handler is about to read
				logged = append([]byte(nil), head[:reqBodyLimit]...)
			}
			logged = redactJSON(logged)
			if truncated {
				logged = append(logged, []byte("...truncated...")...)
			}
			reqBody = string(logged)
		}

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"status", status,
			"dur_ms", time.Since(start).Milliseconds(),
			"resp_bytes", c.Writer.Size(),
		}
		if reqBody != "" {
			attrs = append(attrs, "req_body", reqBody)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "error", c.Errors.String())
		}

		if status >= http.StatusBadRequest {
			l.Error("http_request", attrs...)
			return
		}
		l.Info("http_request", attrs...)
	}
}
