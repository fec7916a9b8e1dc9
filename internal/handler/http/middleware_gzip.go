package http

import (
	"compress/gzip"
	"net/http"
	"strings"
	"sync"
)

// Writer and reader pools are shared across requests; mobile clients sync
// frequently and the per-request allocation is measurable.
var (
	gzipWriters = sync.Pool{
		New: func() any { return gzip.NewWriter(nil) },
	}
	gzipReaders = sync.Pool{
		New: func() any { return new(gzip.Reader) },
	}
)

// withGZip transparently decompresses gzip request bodies and compresses
// responses for clients that accept gzip.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if strings.Contains(req.Header.Get("Content-Encoding"), "gzip") && req.Body != nil {
			reader := gzipReaders.Get().(*gzip.Reader)
			if err := reader.Reset(req.Body); err != nil {
				gzipReaders.Put(reader)
				http.Error(w, "invalid gzip body", http.StatusBadRequest)
				return
			}

			req.Body = &gzipBody{reader: reader}
			req.Header.Del("Content-Encoding")
		}

		if !strings.Contains(req.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, req)
			return
		}

		writer := gzipWriters.Get().(*gzip.Writer)
		writer.Reset(w)
		// Deferred so a panicking handler still returns the writer to
		// the pool on the way up to the recoverer.
		defer func() {
			writer.Close()
			gzipWriters.Put(writer)
		}()

		// Set before the handler runs so an implicit 200 still carries
		// the encoding header.
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Set("Vary", "Accept-Encoding")
		next.ServeHTTP(&gzipResponseWriter{ResponseWriter: w, writer: writer}, req)
	})
}

// gzipBody returns a pooled gzip reader to its pool on Close.
type gzipBody struct {
	reader *gzip.Reader
}

func (b *gzipBody) Read(p []byte) (int, error) {
	return b.reader.Read(p)
}

func (b *gzipBody) Close() error {
	err := b.reader.Close()
	gzipReaders.Put(b.reader)
	return err
}

type gzipResponseWriter struct {
	http.ResponseWriter
	writer *gzip.Writer
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	return w.writer.Write(data)
}

func (w *gzipResponseWriter) Close() error {
	return w.writer.Close()
}
