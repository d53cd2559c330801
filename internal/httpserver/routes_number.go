// internal/httpserver/routes_number.go
//
// HTTP routes for the number-guessing game.
//   - GET  /api/generate?level=N → {correct}: a fresh target for the level.
//   - POST /api/check            → GuessResult for {guess, correct, level}.
//
// The target is not stored server-side; the client keeps it and sends it back
// as "correct" with every guess.

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/brainbuzzer/apps/go-server/internal/numbergame"
)

func (s *Server) mountNumber(r chi.Router) {
	r.Get("/generate", s.handleGenerate)
	r.Post("/check", s.handleCheck)
}

// generateRes is returned by GET /api/generate.
type generateRes struct {
	Correct int `json:"correct"`
}

// handleGenerate returns a random target; level defaults to 1.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	level, _ := queryInt(r, "level", 1)
	target := s.numbers.GenerateTarget(level)
	s.metrics.TargetGenerated(numbergame.LevelLabel(level))
	hlog.FromRequest(r).Debug().Int("level", level).Msg("target generated")
	writeJSON(w, http.StatusOK, generateRes{Correct: target})
}

// checkReq is the payload for POST /api/check.
// Guess and Correct may be JSON numbers or numeric strings; anything
// non-numeric produces a soft {"result":"error"} rather than a 400.
type checkReq struct {
	Guess   any `json:"guess" validate:"required"`
	Correct any `json:"correct" validate:"required"`
	Level   any `json:"level"`
}

// handleCheck evaluates a guess against the client-supplied target.
// Missing guess or correct → 400.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkReq
	if err := decodeJSON(w, r, &req); err != nil {
		badJSON(w, r, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing guess or correct number")
		return
	}

	level := intOr(req.Level, 1)
	res := s.numbers.Check(req.Guess, req.Correct, level)
	s.metrics.GuessChecked(numbergame.LevelLabel(level), string(res.Result))
	writeJSON(w, http.StatusOK, res)
}
