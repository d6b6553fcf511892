package middleware

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/inkwell/internal/cache"
)

type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	return w.ResponseWriter.Write(p)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CachePage serves GET responses from the page cache and stores fresh
// renders on miss. Cached pages are deliberately served stale within the
// TTL; writes do not invalidate them.
func CachePage(pc *cache.PageCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		key := c.Request.URL.RequestURI()
		if body, ok := pc.Get(c.Request.Context(), key); ok {
			c.Data(http.StatusOK, "text/html; charset=utf-8", body)
			c.Abort()
			return
		}
		w := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()
		if w.Status() == http.StatusOK {
			pc.Set(c.Request.Context(), key, w.buf.Bytes())
		}
	}
}
