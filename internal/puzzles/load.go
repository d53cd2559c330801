// internal/puzzles/load.go
//
// Catalog loading.
//
// Source selection (Load):
//   1. If DB is set, read the puzzles table from that SQLite file. An empty
//      table is seeded from the embedded default catalog first.
//   2. Else if File is set, parse that YAML file.
//   3. Else use the embedded assets/puzzles.yaml.
//
// YAML format:
//
//	rounds:
//	  1:
//	    - question: "..."
//	      answer: "..."
//	      hints: ["...", "..."]

package puzzles

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/brainbuzzer/apps/go-server/assets"
	"github.com/robalobadob/brainbuzzer/apps/go-server/internal/random"
	"github.com/robalobadob/brainbuzzer/apps/go-server/internal/store"
)

// LoadOptions selects the catalog source. Zero value means the embedded default.
type LoadOptions struct {
	File   string
	DB     string
	Source random.Source
}

type catalogFile struct {
	Rounds map[int][]Puzzle `yaml:"rounds"`
}

// Load builds the catalog from the configured source.
func Load(ctx context.Context, opts LoadOptions) (*Catalog, error) {
	var (
		list   []Puzzle
		err    error
		origin string
	)
	switch {
	case opts.DB != "":
		origin = "sqlite:" + opts.DB
		list, err = loadDB(ctx, opts.DB)
	case opts.File != "":
		origin = "file:" + opts.File
		list, err = loadFile(opts.File)
	default:
		origin = "embedded"
		list, err = loadDefault()
	}
	if err != nil {
		return nil, fmt.Errorf("load puzzles (%s): %w", origin, err)
	}

	c, err := NewCatalog(opts.Source, list)
	if err != nil {
		return nil, fmt.Errorf("load puzzles (%s): %w", origin, err)
	}
	log.Info().Str("source", origin).Int("puzzles", c.Len()).Ints("rounds", c.Rounds()).Msg("puzzle catalog loaded")
	return c, nil
}

// ParseYAML decodes a catalog document into puzzles ordered by round.
func ParseYAML(b []byte) ([]Puzzle, error) {
	var doc catalogFile
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	rounds := make([]int, 0, len(doc.Rounds))
	for r := range doc.Rounds {
		rounds = append(rounds, r)
	}
	sort.Ints(rounds)

	var out []Puzzle
	for _, r := range rounds {
		for _, p := range doc.Rounds[r] {
			p.Round = r
			out = append(out, p)
		}
	}
	return out, nil
}

func loadDefault() ([]Puzzle, error) {
	b, err := assets.DefaultPuzzles()
	if err != nil {
		return nil, err
	}
	return ParseYAML(b)
}

func loadFile(path string) ([]Puzzle, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseYAML(b)
}

func loadDB(ctx context.Context, dsn string) ([]Puzzle, error) {
	db, err := store.Open(dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := store.Migrate(ctx, db); err != nil {
		return nil, err
	}
	ps := store.NewPuzzleStore(db)

	n, err := ps.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		def, err := loadDefault()
		if err != nil {
			return nil, err
		}
		if err := ps.Seed(ctx, ToRows(def)); err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
		log.Info().Str("db", dsn).Int("puzzles", len(def)).Msg("seeded empty puzzle db with default catalog")
	}

	rows, err := ps.Puzzles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Puzzle, 0, len(rows))
	for _, r := range rows {
		out = append(out, Puzzle{Round: r.Round, Question: r.Question, Answer: r.Answer, Hints: r.Hints})
	}
	return out, nil
}

// ToRows converts puzzles to store rows, numbering positions within each round.
func ToRows(list []Puzzle) []store.Row {
	pos := make(map[int]int)
	out := make([]store.Row, 0, len(list))
	for _, p := range list {
		out = append(out, store.Row{
			Round:    p.Round,
			Position: pos[p.Round],
			Question: p.Question,
			Answer:   p.Answer,
			Hints:    p.Hints,
		})
		pos[p.Round]++
	}
	return out
}
