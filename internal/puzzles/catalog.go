// internal/puzzles/catalog.go
//
// Immutable riddle catalog keyed by round.
//
// Invariants (checked by NewCatalog):
//   - Round numbers are contiguous starting at 1.
//   - Every puzzle has a non-empty question and answer.
//   - Questions are unique within a round, so (round, question) identifies a puzzle.
//
// The catalog is built once at startup and only read afterwards, so it is safe
// for concurrent use without locking.

package puzzles

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/robalobadob/brainbuzzer/apps/go-server/internal/random"
)

// ErrEmptyCatalog is returned when a catalog source holds no puzzles.
var ErrEmptyCatalog = errors.New("puzzles: catalog is empty")

// Catalog holds the riddle pools.
type Catalog struct {
	rnd    random.Source
	rounds map[int][]Puzzle
	byID   map[string]Puzzle
}

// NewCatalog groups puzzles by their Round field (keeping input order within a
// round), assigns IDs and validates the catalog invariants.
// A nil src falls back to random.Crypto().
func NewCatalog(src random.Source, puzzles []Puzzle) (*Catalog, error) {
	if src == nil {
		src = random.Crypto()
	}
	if len(puzzles) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		rnd:    src,
		rounds: make(map[int][]Puzzle),
		byID:   make(map[string]Puzzle, len(puzzles)),
	}
	for _, p := range puzzles {
		if strings.TrimSpace(p.Question) == "" || strings.TrimSpace(p.Answer) == "" {
			return nil, fmt.Errorf("puzzles: round %d: question and answer are required", p.Round)
		}
		p.ID = puzzleID(p.Round, p.Question)
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("puzzles: round %d: duplicate question %q", p.Round, p.Question)
		}
		p.Hints = append([]string{}, p.Hints...)
		c.rounds[p.Round] = append(c.rounds[p.Round], p)
		c.byID[p.ID] = p
	}

	for i := 1; i <= len(c.rounds); i++ {
		if _, ok := c.rounds[i]; !ok {
			return nil, fmt.Errorf("puzzles: rounds must be contiguous from 1, missing round %d", i)
		}
	}
	return c, nil
}

// puzzleID is a name-based (SHA-1) UUID, stable across restarts and instances.
func puzzleID(round int, question string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:brainbuzzer:puzzle:"+strconv.Itoa(round)+":"+question)).String()
}

// Random returns a uniformly chosen puzzle of the round.
func (c *Catalog) Random(round int) (Puzzle, error) {
	pool, ok := c.rounds[round]
	if !ok {
		return Puzzle{}, ErrNoPuzzle
	}
	return random.Pick(c.rnd, pool), nil
}

// Find resolves the puzzle a client is answering.
//
// The server keeps no per-client state, so the client must send back either
// the puzzle ID or the exact question text it was shown. ID wins when both
// are given; an ID from another round does not match.
func (c *Catalog) Find(round int, id, question string) (Puzzle, error) {
	pool, ok := c.rounds[round]
	if !ok {
		return Puzzle{}, ErrNoPuzzle
	}
	if id != "" {
		if p, ok := c.Get(id); ok && p.Round == round {
			return p, nil
		}
		return Puzzle{}, ErrPuzzleNotFound
	}
	for _, p := range pool {
		if question != "" && p.Question == question {
			return p, nil
		}
	}
	return Puzzle{}, ErrPuzzleNotFound
}

// Get returns a puzzle by ID regardless of round.
func (c *Catalog) Get(id string) (Puzzle, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Rounds returns the defined round numbers in ascending order.
func (c *Catalog) Rounds() []int {
	out := make([]int, 0, len(c.rounds))
	for r := range c.rounds {
		out = append(out, r)
	}
	sort.Ints(out)
	return out
}

// Len returns the total number of puzzles.
func (c *Catalog) Len() int { return len(c.byID) }

// All returns every puzzle ordered by round, then catalog order.
func (c *Catalog) All() []Puzzle {
	out := make([]Puzzle, 0, len(c.byID))
	for _, r := range c.Rounds() {
		out = append(out, c.rounds[r]...)
	}
	return out
}
