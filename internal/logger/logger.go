package logger

import (
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RequestIDHeader carries the per-operation correlation id to the backend.
const RequestIDHeader = "X-Request-ID"

// InitLogger initializes the global zerolog logger.
// Format "json" writes raw JSON lines, anything else writes human-readable console output.
func InitLogger(level, format string, w io.Writer) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return err
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	out := w
	if format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    !isTerminal(w),
			TimeFormat: time.TimeOnly,
		}
	}

	log.Logger = zerolog.New(out).
		With().
		Timestamp().
		Logger().
		Level(lvl)

	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// LogResponse is a resty OnAfterResponse hook that logs every backend exchange.
func LogResponse(_ *resty.Client, resp *resty.Response) error {
	req := resp.Request

	event := log.Debug()
	if resp.StatusCode() >= http.StatusInternalServerError {
		event = log.Warn()
	}

	event.
		Str("method", req.Method).
		Str("url", req.URL).
		Str("request_id", req.Header.Get(RequestIDHeader)).
		Int("status", resp.StatusCode()).
		Int64("size", resp.Size()).
		Dur("duration", resp.Time()).
		Msg("Backend call")

	return nil
}

// LogError is a resty OnError hook for calls that produced no response.
func LogError(req *resty.Request, err error) {
	log.Warn().
		Err(err).
		Str("method", req.Method).
		Str("url", req.URL).
		Str("request_id", req.Header.Get(RequestIDHeader)).
		Msg("Backend call failed")
}

// RequestLogger logs basic request/response metadata for each HTTP call served by the stub backend.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := NewResponseWriter(w)

		next.ServeHTTP(ww, r)

		log.Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Str("request_id", r.Header.Get(RequestIDHeader)).
			Int("status", ww.Status()).
			Int("size", ww.Size()).
			Dur("duration", time.Since(start)).
			Msg("Request served")
	})
}

// ResponseWriter wraps http.ResponseWriter to capture status code and size.
type ResponseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

// NewResponseWriter creates a ResponseWriter wrapper.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *ResponseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

// Status returns the captured HTTP status code.
func (rw *ResponseWriter) Status() int {
	return rw.statusCode
}

// Size returns the total number of bytes written to the response.
func (rw *ResponseWriter) Size() int {
	return rw.size
}
