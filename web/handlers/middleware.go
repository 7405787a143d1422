// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// AccessLog logs one line per request:
//
//	HTTP 1.1 GET "/notes?tag=x" 200 OK
func (h *Handlers) AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		id := uuid.NewString()
		w.Header().Set(RequestIDHeader, id)

		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sr, r)

		h.logger.Info(fmt.Sprintf("HTTP %d.%d %s %q %d %s",
			r.ProtoMajor, r.ProtoMinor, r.Method, r.URL.RequestURI(), sr.status, http.StatusText(sr.status)),
			"request_id", id,
			"elapsed", time.Since(started))
	})
}
