// internal/httpserver/routes_puzzle.go
//
// HTTP routes for the riddle game, mounted under /api/puzzle:
//   - GET  /api/puzzle?round=N              → {id, question, hints, round}
//   - POST /api/puzzle/check                → {result, message}
//   - GET  /api/puzzle/hint?round=N&hint=K  → {hint}
//
// No puzzle instance is kept per client. A check must name the puzzle being
// answered, by id or by exact question text. The hint endpoint accepts the same
// optional id/question; without them it draws a random puzzle of the round.

package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/brainbuzzer/apps/go-server/internal/puzzles"
)

const (
	correctAnswerMessage = "🔥 That’s right! You crushed it!"
	wrongAnswerMessage   = "❌ Nope! Try again or use a hint."
)

func (s *Server) mountPuzzle(r chi.Router) {
	r.Route("/puzzle", func(r chi.Router) {
		r.Get("/", s.handlePuzzle)
		r.Post("/check", s.handlePuzzleCheck)
		r.Get("/hint", s.handlePuzzleHint)
	})
}

// puzzleRes is returned by GET /api/puzzle. The answer is never sent.
type puzzleRes struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Hints    []string `json:"hints"`
	Round    int      `json:"round"`
}

// handlePuzzle returns a random riddle for the round (default 1), or 404.
func (s *Server) handlePuzzle(w http.ResponseWriter, r *http.Request) {
	round, _ := queryInt(r, "round", 1)
	p, err := s.puzzles.Random(round)
	if err != nil {
		s.puzzleError(w, r, round, err)
		return
	}
	hints := p.Hints
	if hints == nil {
		hints = []string{}
	}
	writeJSON(w, http.StatusOK, puzzleRes{ID: p.ID, Question: p.Question, Hints: hints, Round: round})
}

// puzzleCheckReq is the payload for POST /api/puzzle/check.
type puzzleCheckReq struct {
	Round    any    `json:"round"`
	Answer   string `json:"answer"`
	Question string `json:"question" validate:"required_without=ID"`
	ID       string `json:"id" validate:"omitempty,uuid"`
}

// puzzleCheckRes is returned by POST /api/puzzle/check.
type puzzleCheckRes struct {
	Result  string `json:"result"` // "correct" | "wrong"
	Message string `json:"message"`
}

// handlePuzzleCheck resolves the named puzzle and compares the answer.
// - 400 when the body is not JSON or names no puzzle.
// - 404 when the round or the puzzle within it does not exist.
func (s *Server) handlePuzzleCheck(w http.ResponseWriter, r *http.Request) {
	var req puzzleCheckReq
	if err := decodeJSON(w, r, &req); err != nil {
		badJSON(w, r, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing puzzle question or id")
		return
	}

	round := intOr(req.Round, 1)
	p, err := s.puzzles.Find(round, req.ID, req.Question)
	if err != nil {
		s.puzzleError(w, r, round, err)
		return
	}

	correct := puzzles.CheckAnswer(p, req.Answer)
	s.metrics.PuzzleChecked(round, correct)
	if correct {
		writeJSON(w, http.StatusOK, puzzleCheckRes{Result: "correct", Message: correctAnswerMessage})
		return
	}
	writeJSON(w, http.StatusOK, puzzleCheckRes{Result: "wrong", Message: wrongAnswerMessage})
}

// hintRes is returned by GET /api/puzzle/hint.
type hintRes struct {
	Hint string `json:"hint"`
}

// hintQuery holds the optional puzzle selector of GET /api/puzzle/hint.
// It shares the id rule of puzzleCheckReq.
type hintQuery struct {
	ID       string `validate:"omitempty,uuid"`
	Question string
}

// handlePuzzleHint returns hint number `hint` (default 1, 1-indexed).
// - 400 for a non-integer or non-positive hint number, or a malformed id.
// - 404 when the round (or the named puzzle) does not exist.
// Request errors are reported before any catalog lookup.
func (s *Server) handlePuzzleHint(w http.ResponseWriter, r *http.Request) {
	round, _ := queryInt(r, "round", 1)
	n, ok := queryInt(r, "hint", 1)
	if !ok || n < 1 {
		writeError(w, http.StatusBadRequest, puzzles.ErrInvalidHint.Error())
		return
	}
	q := r.URL.Query()
	sel := hintQuery{ID: q.Get("id"), Question: q.Get("question")}
	if err := s.validate.Struct(sel); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid puzzle id")
		return
	}

	var (
		p   puzzles.Puzzle
		err error
	)
	if sel.ID != "" || sel.Question != "" {
		p, err = s.puzzles.Find(round, sel.ID, sel.Question)
	} else {
		p, err = s.puzzles.Random(round)
	}
	if err != nil {
		s.puzzleError(w, r, round, err)
		return
	}

	hint, err := puzzles.Hint(p, n)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.metrics.HintServed(round)
	writeJSON(w, http.StatusOK, hintRes{Hint: hint})
}

// puzzleError maps catalog lookup errors to HTTP statuses.
func (s *Server) puzzleError(w http.ResponseWriter, r *http.Request, round int, err error) {
	switch {
	case errors.Is(err, puzzles.ErrNoPuzzle):
		writeError(w, http.StatusNotFound, "No puzzles available for this round")
	case errors.Is(err, puzzles.ErrPuzzleNotFound):
		writeError(w, http.StatusNotFound, "Puzzle not found for this round")
	default:
		hlog.FromRequest(r).Error().Err(err).Int("round", round).Msg("puzzle lookup")
		writeError(w, http.StatusInternalServerError, "server_error")
	}
}
