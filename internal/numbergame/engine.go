// internal/numbergame/engine.go
//
// Core engine for the number-guessing game.
// Responsibilities:
//   - Generate a target in a level-dependent range (1–10, 1–50, 1–100).
//   - Parse client-supplied guess/target values into integers.
//   - Classify a guess as correct/low/high and bucket its distance into a tier.
//   - Pick a random feedback line for the (direction, tier) pair.
//
// Notes:
//   - The engine is stateless; the client echoes the target back on every check.
//   - Levels other than 1 and 2 use the level-3 range and thresholds.
//   - Randomness comes from an injected random.Source (crypto-backed by default).
package numbergame

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/robalobadob/brainbuzzer/apps/go-server/internal/random"
)

// ErrInvalidNumber is returned by ParseNumber for values that are not integers.
var ErrInvalidNumber = errors.New("invalid number")

// Engine generates targets and evaluates guesses.
type Engine struct {
	rnd random.Source
}

// New constructs an Engine. A nil src falls back to random.Crypto().
func New(src random.Source) *Engine {
	if src == nil {
		src = random.Crypto()
	}
	return &Engine{rnd: src}
}

// Range returns the inclusive upper bound of the target range for level.
func Range(level int) int {
	switch level {
	case 1:
		return 10
	case 2:
		return 50
	default:
		return 100
	}
}

// LevelLabel names the level bucket the engine actually plays: "1", "2" or "3".
// Any other level plays as level 3, so it shares that label.
func LevelLabel(level int) string {
	switch level {
	case 1:
		return "1"
	case 2:
		return "2"
	default:
		return "3"
	}
}

// GenerateTarget returns a uniform integer in [1, Range(level)].
func (e *Engine) GenerateTarget(level int) int {
	return 1 + e.rnd.IntN(Range(level))
}

// thresholdsFor returns the tier cutoffs; smaller levels are less forgiving.
func thresholdsFor(level int) thresholds {
	switch level {
	case 1:
		return thresholds{tiny: 1, small: 3, big: 6}
	case 2:
		return thresholds{tiny: 2, small: 8, big: 20}
	default:
		return thresholds{tiny: 3, small: 12, big: 30}
	}
}

// Classify returns the plain correct/low/high verdict.
func Classify(guess, target int) Result {
	switch {
	case guess == target:
		return ResultCorrect
	case guess < target:
		return ResultLow
	default:
		return ResultHigh
	}
}

// TierFor buckets an absolute distance using the level's inclusive cutoffs.
func TierFor(absDiff, level int) Tier {
	th := thresholdsFor(level)
	switch {
	case absDiff <= th.tiny:
		return TierTiny
	case absDiff <= th.small:
		return TierSmall
	case absDiff <= th.big:
		return TierBig
	default:
		return TierExtreme
	}
}

// Evaluate classifies guess against target and picks a feedback line.
//
// Correct guesses get one of the celebratory lines. Otherwise the signed
// difference selects low/high, its magnitude selects the tier, and one line
// of the (direction, tier) table is chosen uniformly.
func (e *Engine) Evaluate(guess, target, level int) GuessResult {
	res := Classify(guess, target)
	if res == ResultCorrect {
		return GuessResult{Result: res, Message: random.Pick(e.rnd, winMessages)}
	}
	diff := guess - target
	if diff < 0 {
		diff = -diff
	}
	tier := TierFor(diff, level)
	return GuessResult{Result: res, Message: random.Pick(e.rnd, Messages(res, tier))}
}

// Check parses raw client values and evaluates them.
// Unparsable input is a soft failure: {error, "Invalid numbers."}.
func (e *Engine) Check(guess, target any, level int) GuessResult {
	g, err := ParseNumber(guess)
	if err != nil {
		return GuessResult{Result: ResultError, Message: InvalidNumbersMessage}
	}
	t, err := ParseNumber(target)
	if err != nil {
		return GuessResult{Result: ResultError, Message: InvalidNumbersMessage}
	}
	return e.Evaluate(g, t, level)
}

// ParseNumber converts a decoded JSON value into an int.
//
// Accepted inputs:
//   - JSON numbers (float64 or json.Number); fractional values truncate toward zero.
//   - Strings holding a base-10 integer, surrounding whitespace ignored.
//   - Go integer types (for internal callers).
//
// Everything else, including bools, null and values outside the int64 range,
// yields ErrInvalidNumber.
func ParseNumber(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return truncate(n)
	case json.Number:
		if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
			return int(i), nil
		}
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, string(n))
		}
		return truncate(f)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrInvalidNumber, v)
	}
}

func truncate(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("%w: %v out of range", ErrInvalidNumber, f)
	}
	return int(f), nil
}
