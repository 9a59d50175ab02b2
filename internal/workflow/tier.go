package workflow

// Tier is the display bucket for a similarity score.
type Tier int

const (
	TierLow Tier = iota
	TierPossible
	TierHigh
)

// Tier thresholds. The upper bound is strict: exactly 0.85 is a possible match.
const (
	HighThreshold     = 0.85
	PossibleThreshold = 0.60
)

// Classify buckets a similarity score.
func Classify(score float64) Tier {
	switch {
	case score > HighThreshold:
		return TierHigh
	case score > PossibleThreshold:
		return TierPossible
	default:
		return TierLow
	}
}

func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high confidence"
	case TierPossible:
		return "possible match"
	default:
		return "low similarity"
	}
}
