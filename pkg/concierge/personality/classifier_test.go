package personality

import (
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(2, 4)

	tests := []struct {
		name    string
		texts   []string
		ratings []RatingEvidence
		want    []string
	}{
		{
			name: "repeated food mentions make a foodie",
			texts: []string{
				"loved the local food here",
				"best restaurant on the island",
				"can't wait to eat more curry",
			},
			want: []string{"foodie"},
		},
		{
			name:  "single mention stays below threshold",
			texts: []string{"the food was fine"},
			want:  nil,
		},
		{
			name:  "restaurant ratings weigh double",
			texts: []string{"great dish"},
			ratings: []RatingEvidence{
				{Category: "restaurant", ReviewText: ""},
			},
			want: []string{"foodie"},
		},
		{
			name: "beach ratings nudge relaxed",
			texts: []string{
				"so peaceful and quiet here",
			},
			ratings: []RatingEvidence{
				{Category: "beach", ReviewText: "calm water"},
			},
			want: []string{"relaxed"},
		},
		{
			name: "strongest trait first",
			texts: []string{
				"we went hiking to the waterfall, a real adventure",
				"another hiking trail to explore",
				"the food was good",
				"nice restaurant",
				"had to eat twice",
			},
			want: []string{"adventurous", "foodie"},
		},
		{
			name: "review text counts as evidence",
			ratings: []RatingEvidence{
				{Category: "activity", ReviewText: "amazing diving, pure adventure"},
				{Category: "activity", ReviewText: "hiking was great"},
			},
			want: []string{"adventurous"},
		},
		{
			name: "no evidence no tags",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.texts, tt.ratings)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyMaxTags(t *testing.T) {
	c := NewClassifier(0, 2)

	texts := []string{
		"adventure hiking diving",
		"food restaurant eat",
		"relax chill quiet",
		"party nightlife dancing",
	}
	got := c.Classify(texts, nil)
	if len(got) != 2 {
		t.Errorf("Classify() returned %d tags, want capped at 2: %v", len(got), got)
	}
}

func TestClassifyTieBreaksByRegistryOrder(t *testing.T) {
	c := NewClassifier(0, 0)

	// Equal single-hit scores for relaxed and foodie; foodie sits earlier in
	// the registry.
	got := c.Classify([]string{"chill taste"}, nil)
	if len(got) < 2 {
		t.Fatalf("expected at least two tags, got %v", got)
	}
	if got[0] != "foodie" || got[1] != "relaxed" {
		t.Errorf("tie break order = %v, want [foodie relaxed ...]", got)
	}
}

func TestActivitiesFor(t *testing.T) {
	got := ActivitiesFor([]string{"adventurous", "nature-lover"})
	want := []string{
		"Main Ridge hike", "Argyle Waterfall", "diving at Speyside",
		"birding tours", "turtle watching", "rainforest hikes",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ActivitiesFor() = %v, want %v", got, want)
	}
}

func TestActivitiesForUnknownTag(t *testing.T) {
	if got := ActivitiesFor([]string{"astronaut"}); got != nil {
		t.Errorf("ActivitiesFor(unknown) = %v, want nil", got)
	}
}
