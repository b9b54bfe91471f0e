// Package responsewriter wraps http.ResponseWriter to capture the status
// code and body size of a response for logging and metrics.
package responsewriter

import "net/http"

// ResponseWriter records the status code and number of bytes written.
type ResponseWriter struct {
	http.ResponseWriter
	status        int
	bytes         int
	headerWritten bool
}

// Wrap returns a recording wrapper around w. The status defaults to 200
// until WriteHeader is called.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader records the first status code written; later calls are ignored.
func (w *ResponseWriter) WriteHeader(status int) {
	if w.headerWritten {
		return
	}
	w.status = status
	w.headerWritten = true
	w.ResponseWriter.WriteHeader(status)
}

// Write writes the body and accumulates the byte count.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.headerWritten {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Status returns the recorded status code.
func (w *ResponseWriter) Status() int { return w.status }

// BytesWritten returns the number of body bytes written.
func (w *ResponseWriter) BytesWritten() int { return w.bytes }

// Unwrap returns the underlying writer for http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
