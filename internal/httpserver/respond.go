package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/brainbuzzer/apps/go-server/internal/numbergame"
)

// maxBodyBytes caps request bodies; game payloads are a few dozen bytes.
const maxBodyBytes = 1 << 20

var (
	errEmptyBody    = errors.New("empty request body")
	errTrailingData = errors.New("unexpected data after JSON value")
)

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON decodes exactly one JSON value from the (size-capped) request
// body into v, keeping numbers as json.Number so integer parsing stays exact.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return err
		}
		return errTrailingData
	}
	return nil
}

// badJSON logs the decode failure and answers 400 (413 for oversized bodies).
func badJSON(w http.ResponseWriter, r *http.Request, err error) {
	hlog.FromRequest(r).Debug().Err(err).Msg("decode request body")
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		writeError(w, http.StatusRequestEntityTooLarge, "body_too_large")
		return
	}
	writeError(w, http.StatusBadRequest, "bad_json")
}

// queryInt parses an integer query parameter.
// Missing or unparsable values yield def; ok reports whether the value was usable.
func queryInt(r *http.Request, key string, def int) (n int, ok bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def, false
	}
	return n, true
}

// intOr converts a decoded JSON value to int, falling back to def when the
// value is absent or not an integer.
func intOr(v any, def int) int {
	if v == nil {
		return def
	}
	n, err := numbergame.ParseNumber(v)
	if err != nil {
		return def
	}
	return n
}
