// Package sentiment rolls individual memory sentiments and rating scores up
// into one overall mood for a visitor.
package sentiment

type Overall string

const (
	VeryPositive Overall = "very_positive"
	Positive     Overall = "positive"
	Neutral      Overall = "neutral"
	Negative     Overall = "negative"
	VeryNegative Overall = "very_negative"
)

type Breakdown struct {
	Positive int
	Neutral  int
	Negative int
}

type Rollup struct {
	Overall Overall
	// Score is normalized to [0, 1]; 0.5 is neutral.
	Score     float64
	Breakdown Breakdown
}

// Analyze tallies memory sentiments ("positive"/"negative"/anything else
// counts neutral) and rating scores (4+ positive, 2 or less negative), then
// maps the balance onto the five-step overall scale.
func Analyze(memorySentiments []string, ratingScores []int) Rollup {
	var b Breakdown

	for _, s := range memorySentiments {
		switch s {
		case "positive":
			b.Positive++
		case "negative":
			b.Negative++
		default:
			b.Neutral++
		}
	}

	for _, score := range ratingScores {
		switch {
		case score >= 4:
			b.Positive++
		case score <= 2:
			b.Negative++
		default:
			b.Neutral++
		}
	}

	total := b.Positive + b.Neutral + b.Negative
	if total == 0 {
		return Rollup{Overall: Neutral, Score: 0.5, Breakdown: b}
	}

	balance := float64(b.Positive-b.Negative) / float64(total)

	var overall Overall
	switch {
	case balance > 0.5:
		overall = VeryPositive
	case balance > 0.2:
		overall = Positive
	case balance > -0.2:
		overall = Neutral
	case balance > -0.5:
		overall = Negative
	default:
		overall = VeryNegative
	}

	return Rollup{
		Overall:   overall,
		Score:     (balance + 1) / 2,
		Breakdown: b,
	}
}
