// Package personality infers trait tags for a visitor from what they write
// and what they rate. Pure keyword scoring, no model calls.
package personality

import (
	"sort"
	"strings"
)

type Trait struct {
	Name       string
	Indicators []string
	// Activities are concrete suggestions to offer a visitor carrying
	// this trait.
	Activities []string
}

// Registry order breaks score ties, keeping classification deterministic.
var Registry = []Trait{
	{
		Name:       "adventurous",
		Indicators: []string{"adventure", "hiking", "diving", "waterfall", "explore", "zip line", "off the beaten path"},
		Activities: []string{"Main Ridge hike", "Argyle Waterfall", "diving at Speyside"},
	},
	{
		Name:       "foodie",
		Indicators: []string{"food", "restaurant", "eat", "cuisine", "local food", "dish", "taste"},
		Activities: []string{"food tour", "local restaurants", "cooking class"},
	},
	{
		Name:       "relaxed",
		Indicators: []string{"relax", "chill", "quiet", "peaceful", "calm", "slow", "beach"},
		Activities: []string{"quiet beaches", "spa", "sunset watching"},
	},
	{
		Name:       "budget-conscious",
		Indicators: []string{"cheap", "budget", "affordable", "free", "save", "expensive", "cost"},
		Activities: []string{"free beaches", "local food stalls", "self-guided tours"},
	},
	{
		Name:       "luxury-seeker",
		Indicators: []string{"luxury", "best", "premium", "high-end", "exclusive", "upscale", "fancy"},
		Activities: []string{"fine dining", "private tours", "luxury resorts"},
	},
	{
		Name:       "nature-lover",
		Indicators: []string{"nature", "bird", "wildlife", "rainforest", "ecosystem", "turtle", "animal"},
		Activities: []string{"birding tours", "turtle watching", "rainforest hikes"},
	},
	{
		Name:       "culture-enthusiast",
		Indicators: []string{"culture", "history", "local", "traditional", "heritage", "authentic"},
		Activities: []string{"Fort King George", "local villages", "cultural events"},
	},
	{
		Name:       "party-goer",
		Indicators: []string{"party", "nightlife", "dancing", "music", "sunday school", "bar"},
		Activities: []string{"Sunday School", "beach bars", "nightlife spots"},
	},
	{
		Name:       "family-oriented",
		Indicators: []string{"family", "kids", "children", "safe", "family-friendly"},
		Activities: []string{"calm beaches", "glass bottom boats", "family resorts"},
	},
	{
		Name:       "photographer",
		Indicators: []string{"photo", "picture", "instagram", "shot", "view", "scenic", "camera"},
		Activities: []string{"scenic viewpoints", "golden hour spots", "iconic locations"},
	},
}

// RatingEvidence is the slice of a rating the classifier cares about.
type RatingEvidence struct {
	Category   string
	ReviewText string
}

type Classifier struct {
	// Threshold is the minimum score before a trait is reported.
	Threshold int
	// MaxTags caps how many traits come back, strongest first.
	MaxTags int
}

func NewClassifier(threshold, maxTags int) *Classifier {
	return &Classifier{
		Threshold: threshold,
		MaxTags:   maxTags,
	}
}

// Classify scores every trait against memory texts and ratings, then returns
// the traits scoring above the threshold, strongest first. Rating categories
// carry extra weight: a restaurant rating is stronger foodie evidence than a
// passing mention of food.
func (c *Classifier) Classify(memoryTexts []string, ratings []RatingEvidence) []string {
	scores := make(map[string]int)

	for _, text := range memoryTexts {
		scoreText(scores, strings.ToLower(text))
	}

	for _, rating := range ratings {
		switch strings.ToLower(rating.Category) {
		case "restaurant":
			scores["foodie"] += 2
		case "beach":
			scores["relaxed"]++
		case "activity":
			scores["adventurous"]++
		}
		scoreText(scores, strings.ToLower(rating.ReviewText))
	}

	type scored struct {
		name  string
		score int
		order int
	}
	var ranked []scored
	for i, trait := range Registry {
		if s := scores[trait.Name]; s > c.Threshold {
			ranked = append(ranked, scored{name: trait.Name, score: s, order: i})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].order < ranked[j].order
	})

	if len(ranked) == 0 {
		return nil
	}
	limit := c.MaxTags
	if limit <= 0 || limit > len(ranked) {
		limit = len(ranked)
	}
	tags := make([]string, 0, limit)
	for _, r := range ranked[:limit] {
		tags = append(tags, r.name)
	}
	return tags
}

func scoreText(scores map[string]int, lowered string) {
	if lowered == "" {
		return
	}
	for _, trait := range Registry {
		for _, indicator := range trait.Indicators {
			if strings.Contains(lowered, indicator) {
				scores[trait.Name]++
			}
		}
	}
}

// ActivitiesFor collects suggested activities for the given trait tags,
// preserving tag order and dropping duplicates.
func ActivitiesFor(tags []string) []string {
	byName := make(map[string]*Trait, len(Registry))
	for i := range Registry {
		byName[Registry[i].Name] = &Registry[i]
	}

	seen := make(map[string]bool)
	var out []string
	for _, tag := range tags {
		trait, ok := byName[tag]
		if !ok {
			continue
		}
		for _, activity := range trait.Activities {
			if !seen[activity] {
				out = append(out, activity)
				seen[activity] = true
			}
		}
	}
	return out
}
