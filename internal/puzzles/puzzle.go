// internal/puzzles/puzzle.go
//
// Riddle records and the per-puzzle operations of the quiz game:
// answer checking and 1-indexed hint lookup.

package puzzles

import (
	"errors"
	"strings"
)

// NoMoreHints is returned by Hint when the puzzle has no hint at that index.
const NoMoreHints = "No more hints available!"

var (
	// ErrNoPuzzle means the round has no puzzle pool.
	ErrNoPuzzle = errors.New("no puzzles available for this round")
	// ErrPuzzleNotFound means the round exists but no puzzle matched the lookup.
	ErrPuzzleNotFound = errors.New("puzzle not found in this round")
	// ErrInvalidHint is returned for hint numbers below 1.
	ErrInvalidHint = errors.New("hint number must be 1 or greater")
)

// Puzzle is an immutable riddle. ID is derived from Round and Question, see puzzleID.
type Puzzle struct {
	ID       string   `json:"id" yaml:"-"`
	Round    int      `json:"round" yaml:"-"`
	Question string   `json:"question" yaml:"question"`
	Answer   string   `json:"-" yaml:"answer"`
	Hints    []string `json:"hints" yaml:"hints"`
}

// CheckAnswer compares answer to the puzzle's answer ignoring case and surrounding whitespace.
func CheckAnswer(p Puzzle, answer string) bool {
	return normalize(answer) == normalize(p.Answer)
}

// Hint returns the n-th hint (1-indexed).
// n past the last hint yields NoMoreHints; n < 1 is ErrInvalidHint.
func Hint(p Puzzle, n int) (string, error) {
	if n < 1 {
		return "", ErrInvalidHint
	}
	if n > len(p.Hints) {
		return NoMoreHints, nil
	}
	return p.Hints[n-1], nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
