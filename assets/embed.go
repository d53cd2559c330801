package assets

import "embed"

//go:embed puzzles.yaml
var FS embed.FS

// DefaultPuzzles returns the embedded riddle catalog (YAML).
func DefaultPuzzles() ([]byte, error) {
	return FS.ReadFile("puzzles.yaml")
}
