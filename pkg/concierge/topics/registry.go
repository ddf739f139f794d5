// Package topics holds the conversation topic registry. A topic is a themed
// flow (dining review, beach rating, activity report) recognized from trigger
// keywords in what the visitor types.
package topics

import "strings"

type Topic struct {
	ID           string
	Name         string
	Description  string
	Triggers     []string
	EntryMessage string
}

// Modules is scanned in order and the first trigger hit wins, so the more
// specific topics must stay ahead of free-chat.
var Modules = []Topic{
	{
		ID:          "restaurant",
		Name:        "Restaurant Review",
		Description: "Rate a restaurant or food spot",
		Triggers: []string{
			"restaurant", "food", "eat", "ate", "dinner", "lunch", "breakfast",
			"cafe", "bar", "beach bar", "roti", "doubles", "bake and shark",
			"crab", "dumpling", "fish", "curry", "dining", "meal",
		},
		EntryMessage: "Ooh food talk! I love hearing about dining experiences. Which restaurant or food spot did you visit?",
	},
	{
		ID:          "beach",
		Name:        "Beach Rating",
		Description: "Rate a beach or natural spot",
		Triggers: []string{
			"beach", "pigeon point", "store bay", "englishman's bay", "castara",
			"parlatuvier", "man-o-war", "speyside", "snorkel", "swim", "sand",
			"coral", "reef", "nylon pool", "turtle", "waterfall", "argyle",
			"buccoo", "ocean", "sea",
		},
		EntryMessage: "Beach vibes! Tobago has some amazing spots. Which beach or natural area did you check out?",
	},
	{
		ID:          "activity",
		Name:        "Activity Report",
		Description: "Tell us about a tour or activity",
		Triggers: []string{
			"tour", "activity", "experience", "adventure", "dive", "diving",
			"hike", "hiking", "trail", "rainforest", "bird", "birding",
			"kayak", "paddleboard", "boat", "fishing", "zip line",
			"goat race", "sunday school", "party", "nightlife", "glass bottom",
			"turtle watching", "nature", "wildlife",
		},
		EntryMessage: "Adventure time! Tell me about the activity or tour you did!",
	},
	{
		ID:          "free-chat",
		Name:        "Free Chat",
		Description: "Open conversation",
		Triggers: []string{
			"chat", "talk", "hey", "hi", "hello", "what's up", "how are you",
			"tell me", "know about", "question", "help", "need", "want",
		},
		EntryMessage: "I'm all ears! What's on your mind?",
	},
}

const DefaultTopicID = "free-chat"

// FindByTrigger returns the first topic whose trigger appears as a substring
// of the input, or nil when nothing matches.
func FindByTrigger(input string) *Topic {
	lowered := strings.ToLower(input)

	for i := range Modules {
		for _, trigger := range Modules[i].Triggers {
			if strings.Contains(lowered, trigger) {
				return &Modules[i]
			}
		}
	}

	return nil
}

func ByID(id string) *Topic {
	for i := range Modules {
		if Modules[i].ID == id {
			return &Modules[i]
		}
	}
	return nil
}

// Available lists the topics for menu display.
func Available() []Topic {
	out := make([]Topic, len(Modules))
	copy(out, Modules)
	return out
}
