// Package prompt assembles the visitor context block injected ahead of AI
// calls. The builder is pure: callers fetch the data, the builder only
// formats and budgets it.
package prompt

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

type Profile struct {
	Name             string
	VisitCount       int
	FirstSeenAt      time.Time
	LastSeenAt       time.Time
	ArrivalMethod    string
	PersonalityTags  []string
	PersonalityNotes string
}

type MemoryLine struct {
	Type       string
	Category   string
	Subject    string
	Sentiment  string
	Rating     *int
	RawText    string
	Importance int
}

type RatingLine struct {
	PlaceName      string
	Category       string
	OverallRating  int
	WouldRecommend *bool
	ReviewText     string
}

type History struct {
	TotalConversations int
	LastTopic          string
	LastSummary        string
	KeyTopics          []string
}

// Builder formats a context block under a character budget. The profile
// section is always emitted in full; memory, rating, and history lines are
// appended in priority order until the budget runs out.
type Builder struct {
	CharBudget      int
	ImportanceFloor int
}

func NewBuilder(charBudget, importanceFloor int) *Builder {
	return &Builder{
		CharBudget:      charBudget,
		ImportanceFloor: importanceFloor,
	}
}

const newVisitorBlock = "## Visitor Profile\n- New visitor, nothing known yet\n"

func (b *Builder) Build(profile *Profile, memories []MemoryLine, ratings []RatingLine, history *History) string {
	if profile == nil {
		return newVisitorBlock
	}

	var sb strings.Builder
	sb.WriteString("## Visitor Profile\n")
	fmt.Fprintf(&sb, "- Name: %s\n", profile.Name)
	fmt.Fprintf(&sb, "- Visit count: %d\n", profile.VisitCount)
	fmt.Fprintf(&sb, "- Last seen: %s\n", RelativeTime(profile.LastSeenAt, time.Now()))
	fmt.Fprintf(&sb, "- First visited: %s\n", RelativeTime(profile.FirstSeenAt, time.Now()))
	arrival := profile.ArrivalMethod
	if arrival == "" {
		arrival = "Unknown"
	}
	fmt.Fprintf(&sb, "- Arrived via: %s\n", arrival)
	if len(profile.PersonalityTags) > 0 {
		fmt.Fprintf(&sb, "- Personality: %s\n", strings.Join(profile.PersonalityTags, ", "))
	}
	if profile.PersonalityNotes != "" {
		fmt.Fprintf(&sb, "- Notes: %s\n", profile.PersonalityNotes)
	}

	budget := b.CharBudget
	appendLine := func(header *string, line string) bool {
		if budget > 0 && sb.Len()+len(line) > budget {
			return false
		}
		if header != nil && *header != "" {
			if budget > 0 && sb.Len()+len(*header)+len(line) > budget {
				return false
			}
			sb.WriteString(*header)
			*header = ""
		}
		sb.WriteString(line)
		return true
	}

	b.writeMemories(memories, appendLine)
	b.writeRatings(ratings, appendLine)
	b.writeHistory(history, appendLine)

	return sb.String()
}

type appendFunc func(header *string, line string) bool

func (b *Builder) writeMemories(memories []MemoryLine, appendLine appendFunc) {
	kept := memories[:0:0]
	for _, m := range memories {
		if m.Importance >= b.ImportanceFloor {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		return
	}

	header := "\n## Things I Remember\n"
	byType := func(t string) []MemoryLine {
		var out []MemoryLine
		for _, m := range kept {
			if m.Type == t {
				out = append(out, m)
			}
		}
		return out
	}

	if ratingMems := byType("rating"); len(ratingMems) > 0 {
		sub := "### Ratings given:\n"
		for _, m := range capLines(ratingMems, 5) {
			subject := m.Subject
			if subject == "" {
				subject = m.Category
			}
			line := fmt.Sprintf("- %s: %s%s\n", subject, starsOf(m.Rating), sentimentSuffix(m.Sentiment))
			if !appendLine(&header, prefixed(&sub, line)) {
				return
			}
		}
	}
	if prefs := byType("preference"); len(prefs) > 0 {
		sub := "### Preferences:\n"
		for _, m := range capLines(prefs, 5) {
			text := m.RawText
			if text == "" {
				text = m.Subject
			}
			if !appendLine(&header, prefixed(&sub, fmt.Sprintf("- %s\n", text))) {
				return
			}
		}
	}
	if mentions := byType("mention"); len(mentions) > 0 {
		sub := "### Things they mentioned:\n"
		for _, m := range capLines(mentions, 3) {
			text := truncate(m.RawText, 100)
			if text == "" {
				text = m.Subject
			}
			if !appendLine(&header, prefixed(&sub, fmt.Sprintf("- %q\n", text))) {
				return
			}
		}
	}
	if complaints := byType("complaint"); len(complaints) > 0 {
		sub := "### Issues reported:\n"
		for _, m := range capLines(complaints, 2) {
			detail := truncate(m.RawText, 100)
			if detail == "" {
				detail = "No details"
			}
			if !appendLine(&header, prefixed(&sub, fmt.Sprintf("- %s: %s\n", m.Subject, detail))) {
				return
			}
		}
	}
}

func (b *Builder) writeRatings(ratings []RatingLine, appendLine appendFunc) {
	if len(ratings) == 0 {
		return
	}
	header := "\n## Places Rated\n"
	for _, r := range capLines(ratings, 5) {
		rec := ""
		if r.WouldRecommend != nil {
			if *r.WouldRecommend {
				rec = " (recommended)"
			} else {
				rec = " (not recommended)"
			}
		}
		line := fmt.Sprintf("- %s (%s): %d/5%s\n", r.PlaceName, r.Category, r.OverallRating, rec)
		if r.ReviewText != "" {
			line += fmt.Sprintf("  %q\n", truncate(r.ReviewText, 80))
		}
		if !appendLine(&header, line) {
			return
		}
	}
}

func (b *Builder) writeHistory(history *History, appendLine appendFunc) {
	if history == nil || history.TotalConversations <= 1 {
		return
	}
	header := "\n## Conversation History\n"
	if !appendLine(&header, fmt.Sprintf("- Total conversations: %d\n", history.TotalConversations)) {
		return
	}
	if history.LastSummary != "" {
		if !appendLine(&header, fmt.Sprintf("- Last conversation topic: %s\n", history.LastTopic)) {
			return
		}
		if !appendLine(&header, fmt.Sprintf("- Summary: %s\n", history.LastSummary)) {
			return
		}
	}
	if len(history.KeyTopics) > 0 {
		appendLine(&header, fmt.Sprintf("- Topics discussed: %s\n", strings.Join(history.KeyTopics, ", ")))
	}
}

// RelativeTime renders an approximate human phrase for how long ago a moment
// was, matching the granularity a visitor would use in conversation.
func RelativeTime(at, now time.Time) string {
	diff := now.Sub(at)
	hours := int(diff.Hours())
	days := hours / 24

	switch {
	case hours < 1:
		return "just now"
	case hours < 24:
		return fmt.Sprintf("%d hours ago", hours)
	case days == 1:
		return "yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return fmt.Sprintf("%d weeks ago", days/7)
	default:
		return fmt.Sprintf("%d months ago", days/30)
	}
}

func capLines[T any](in []T, max int) []T {
	if len(in) > max {
		return in[:max]
	}
	return in
}

func prefixed(sub *string, line string) string {
	out := *sub + line
	*sub = ""
	return out
}

func starsOf(rating *int) string {
	if rating == nil {
		return "unrated"
	}
	return fmt.Sprintf("%d/5", *rating)
}

func sentimentSuffix(sentiment string) string {
	if sentiment == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", sentiment)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Back off to a rune boundary so a multi-byte character is never split.
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
