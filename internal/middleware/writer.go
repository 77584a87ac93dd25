package middleware

import "net/http"

// statusRecorder remembers what a handler wrote so the request can be
// logged and measured afterwards
type statusRecorder struct {
	http.ResponseWriter
	status    int
	size      int
	committed bool
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (rw *statusRecorder) WriteHeader(status int) {
	if rw.committed {
		return
	}
	rw.status = status
	rw.committed = true
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	rw.committed = true
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

// Committed reports whether headers have already gone to the client
func (rw *statusRecorder) Committed() bool {
	return rw.committed
}

// Unwrap exposes the underlying writer to http.ResponseController
func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// committer is implemented by writers that track whether the response
// has started
type committer interface {
	Committed() bool
}
