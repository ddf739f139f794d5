package qcache

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     string
	}{
		{
			name:     "lowercases",
			question: "Where Is Pigeon Point",
			want:     "where is pigeon point",
		},
		{
			name:     "strips punctuation",
			question: "Where is Pigeon Point?!",
			want:     "where is pigeon point",
		},
		{
			name:     "apostrophe collapses possessive",
			question: "What are the THA's powers?",
			want:     "what are the thas powers",
		},
		{
			name:     "curly apostrophes too",
			question: "Englishman’s Bay",
			want:     "englishmans bay",
		},
		{
			name:     "punctuation becomes single boundary",
			question: "beach -- bar",
			want:     "beach bar",
		},
		{
			name:     "collapses whitespace",
			question: "  where   to \t eat  ",
			want:     "where to eat",
		},
		{
			name:     "keeps digits and underscores",
			question: "room_12 at 9pm",
			want:     "room_12 at 9pm",
		},
		{
			name:     "equivalent phrasings share a key",
			question: "WHERE can I eat, tonight???",
			want:     Normalize("where can i eat tonight"),
		},
		{
			name:     "empty input",
			question: "",
			want:     "",
		},
		{
			name:     "punctuation only",
			question: "?!...",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.question); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.question, got, tt.want)
			}
		})
	}
}
