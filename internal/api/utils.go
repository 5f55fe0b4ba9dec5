package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"
)

type codedError struct {
	err  error
	code int
}

func (e *codedError) Error() string {
	return e.err.Error()
}

func (e *codedError) Unwrap() error {
	return e.err
}

func CodedError(code int, err error) error {
	return &codedError{err: err, code: code}
}

func CodedErrorf(code int, format string, args ...any) error {
	return &codedError{err: fmt.Errorf(format, args...), code: code}
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

func ParseRequest[T any](r *http.Request) (T, error) {
	var data T
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		slog.Error("error parsing request body", "error", err)
		return data, CodedErrorf(http.StatusBadRequest, "unable to parse request body")
	}
	return data, nil
}

var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

func ParseRequestQueryParams[T any](r *http.Request) (T, error) {
	var data T
	if err := r.ParseForm(); err != nil {
		slog.Error("error parsing form", "error", err)
		return data, CodedErrorf(http.StatusBadRequest, "unable to parse request query params")
	}

	if err := queryDecoder.Decode(&data, r.Form); err != nil {
		slog.Error("error decoding query params", "error", err)
		return data, CodedErrorf(http.StatusBadRequest, "unable to parse request query params")
	}

	return data, nil
}

func RestHandler(handler func(r *http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := handler(r)
		if err != nil {
			var cerr *codedError
			if errors.As(err, &cerr) {
				if cerr.code >= http.StatusInternalServerError {
					slog.Error("internal server error received in endpoint", "path", r.URL.Path, "error", err)
				}
				writeJSON(w, cerr.code, ErrorResponse{Detail: err.Error()})
			} else {
				slog.Error("received non coded error from endpoint", "path", r.URL.Path, "error", err)
				writeJSON(w, http.StatusInternalServerError, ErrorResponse{Detail: "internal server error"})
			}
			return
		}

		if res == nil {
			res = struct{}{}
		}

		WriteJsonResponse(w, res)
	}
}

func WriteJsonResponse(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, data)
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("error serializing response body", "error", err)
		code = http.StatusInternalServerError
		body = []byte(`{"detail":"error serializing response body"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(append(body, '\n'))
}

func URLParamID(r *http.Request, key string) (uint, error) {
	param := chi.URLParam(r, key)

	if len(param) == 0 {
		return 0, CodedErrorf(http.StatusBadRequest, "missing {%v} url parameter", key)
	}

	id, err := strconv.ParseUint(param, 10, 0)
	if err != nil {
		return 0, CodedErrorf(http.StatusBadRequest, "invalid integer '%v' url parameter provided: %s", key, param)
	}

	return uint(id), nil
}

// FlexibleTime accepts RFC 3339 timestamps as well as ISO 8601 date-times
// without an offset, which are read as UTC.
type FlexibleTime struct {
	time.Time
}

var flexibleLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
}

func (t *FlexibleTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	raw = strings.TrimSpace(raw)

	for _, layout := range flexibleLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", raw)
}
