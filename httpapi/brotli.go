package httpapi

import (
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// brotliWriter routes the response body through a brotli encoder.
type brotliWriter struct {
	gin.ResponseWriter
	enc *brotli.Writer
}

func (w *brotliWriter) WriteHeader(code int) {
	w.Header().Del("Content-Length")
	w.ResponseWriter.WriteHeader(code)
}

func (w *brotliWriter) Write(p []byte) (int, error) {
	w.Header().Del("Content-Length")
	return w.enc.Write(p)
}

func (w *brotliWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// Brotli compresses response bodies for clients that accept "br".
func Brotli(level int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !acceptsBrotli(c.GetHeader("Accept-Encoding")) {
			c.Next()
			return
		}
		c.Header("Content-Encoding", "br")
		c.Header("Vary", "Accept-Encoding")

		enc := brotli.NewWriterLevel(c.Writer, level)
		c.Writer = &brotliWriter{ResponseWriter: c.Writer, enc: enc}
		defer enc.Close()
		c.Next()
	}
}

// acceptsBrotli reports whether an Accept-Encoding value lists "br" with a
// non-zero quality.
func acceptsBrotli(header string) bool {
	for _, part := range strings.Split(header, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(name), "br") {
			continue
		}
		q, ok := strings.CutPrefix(strings.TrimSpace(params), "q=")
		if !ok {
			return true
		}
		v, err := strconv.ParseFloat(q, 64)
		return err == nil && v > 0
	}
	return false
}
