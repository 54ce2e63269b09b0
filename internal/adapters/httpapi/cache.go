package httpapi

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"hostelcore/internal/infra/cache"
)

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// capture tees the response body so it can be stored after the handler ran.
type capture struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *capture) Write(p []byte) (int, error) {
	w.buf.Write(p)
	return w.ResponseWriter.Write(p)
}

func (w *capture) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// responseCache serves GET responses from the cache. Keys embed the router
// epoch and the store revision, so any committed write or restart makes older
// entries unreachable.
func (s *server) responseCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		key := fmt.Sprintf("http:%s:%d:%s", s.epoch, s.svc.Revision(), c.Request.URL.RequestURI())

		var hit cachedResponse
		found, err := cache.GetJSON(ctx, s.cache, key, &hit)
		if err != nil {
			s.logger.WarnContext(ctx, "response cache read failed", "key", key, "error", err)
		}
		if found {
			c.Header("X-Cache", "HIT")
			c.Data(hit.Status, hit.ContentType, hit.Body)
			c.Abort()
			return
		}

		c.Header("X-Cache", "MISS")
		w := &capture{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()
		c.Writer = w.ResponseWriter

		if c.Writer.Status() != http.StatusOK {
			return
		}
		entry := cachedResponse{
			Status:      http.StatusOK,
			ContentType: c.Writer.Header().Get("Content-Type"),
			Body:        w.buf.Bytes(),
		}
		if err := cache.SetJSON(ctx, s.cache, key, entry, s.cacheTTL); err != nil {
			s.logger.WarnContext(ctx, "response cache write failed", "key", key, "error", err)
		}
	}
}
