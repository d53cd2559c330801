// internal/numbergame/types.go
//
// Core type definitions for the number-guessing engine.
// Defines:
//   - Result: verdict for a guess (correct/low/high/error).
//   - Tier: how far off a wrong guess is (tiny/small/big/extreme).
//   - GuessResult: the JSON payload returned for a checked guess.

package numbergame

// Result is the verdict for a single guess.
type Result string

const (
	ResultCorrect Result = "correct"
	ResultLow     Result = "low"
	ResultHigh    Result = "high"
	ResultError   Result = "error"
)

// Tier buckets the distance between a wrong guess and the target.
// Bounds depend on the level, see thresholdsFor.
type Tier string

const (
	TierTiny    Tier = "tiny"
	TierSmall   Tier = "small"
	TierBig     Tier = "big"
	TierExtreme Tier = "extreme"
)

// GuessResult is created per request and never stored.
type GuessResult struct {
	Result  Result `json:"result"`
	Message string `json:"message"`
}

// thresholds are inclusive upper bounds on |guess - target| for each tier.
type thresholds struct {
	tiny, small, big int
}
