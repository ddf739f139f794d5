package sentiment

import (
	"math"
	"testing"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name        string
		sentiments  []string
		ratings     []int
		wantOverall Overall
		wantScore   float64
	}{
		{
			name:        "no evidence is neutral",
			wantOverall: Neutral,
			wantScore:   0.5,
		},
		{
			name:        "all positive",
			sentiments:  []string{"positive", "positive", "positive"},
			wantOverall: VeryPositive,
			wantScore:   1.0,
		},
		{
			name:        "all negative",
			sentiments:  []string{"negative", "negative"},
			wantOverall: VeryNegative,
			wantScore:   0.0,
		},
		{
			name:        "mixed leans positive",
			sentiments:  []string{"positive", "positive", "negative", "neutral"},
			wantOverall: Positive,
			wantScore:   0.625, // balance 0.25
		},
		{
			name:        "balanced is neutral",
			sentiments:  []string{"positive", "negative"},
			wantOverall: Neutral,
			wantScore:   0.5,
		},
		{
			name:        "unknown sentiment counts neutral",
			sentiments:  []string{"mixed", "mixed", "mixed"},
			wantOverall: Neutral,
			wantScore:   0.5,
		},
		{
			name:        "high ratings are positive signals",
			ratings:     []int{5, 4, 4},
			wantOverall: VeryPositive,
			wantScore:   1.0,
		},
		{
			name:        "low ratings drag the mood down",
			ratings:     []int{1, 2, 3},
			wantOverall: VeryNegative,
			wantScore:   0.1666666667, // balance -2/3
		},
		{
			name:        "mid rating is neutral",
			ratings:     []int{3},
			wantOverall: Neutral,
			wantScore:   0.5,
		},
		{
			name:        "memories and ratings combine",
			sentiments:  []string{"positive", "positive"},
			ratings:     []int{5, 1, 3},
			wantOverall: Positive, // balance 0.4
			wantScore:   0.7,
		},
		{
			name:        "slightly negative",
			sentiments:  []string{"negative", "neutral", "neutral"},
			wantOverall: Negative, // balance -1/3
			wantScore:   1.0 / 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.sentiments, tt.ratings)
			if got.Overall != tt.wantOverall {
				t.Errorf("Overall = %q, want %q", got.Overall, tt.wantOverall)
			}
			if math.Abs(got.Score-tt.wantScore) > 1e-9 {
				t.Errorf("Score = %f, want %f", got.Score, tt.wantScore)
			}
		})
	}
}

func TestAnalyzeBreakdown(t *testing.T) {
	got := Analyze([]string{"positive", "negative", "whatever"}, []int{5, 2, 3})

	want := Breakdown{Positive: 2, Neutral: 2, Negative: 2}
	if got.Breakdown != want {
		t.Errorf("Breakdown = %+v, want %+v", got.Breakdown, want)
	}
}
