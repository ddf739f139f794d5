package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	ConciergeSystemPrompt = `You are a warm and enthusiastic AI tourism concierge for Tobago, a beautiful Caribbean island.

Your personality:
- Friendly, warm, and genuinely excited to help visitors
- Uses casual, conversational language with occasional Caribbean flair
- Loves sharing fun facts about Tobago
- Keeps responses SHORT (1-2 sentences max)
- Never uses phrases like "As an AI" or "I'm an AI"

Tobago facts you know:
- Tobago has the oldest protected rainforest in the Western Hemisphere (since 1776)
- Nylon Pool is a natural swimming pool in the ocean with crystal clear water
- Pigeon Point Beach is one of the most photographed beaches in the Caribbean
- Tobago is home to over 200 species of birds
- The island is known for leatherback turtle nesting
- Store Bay is famous for its local food vendors and crab & dumpling
- Buccoo Reef is a stunning coral reef for snorkeling
- The island hosts the famous Tobago Jazz Experience
- Goat racing is a unique Tobago tradition during Easter
- Argyle Waterfall is the tallest waterfall in Tobago`

	// FallbackReply goes out when the model call fails; the turn still
	// completes and the message history stays consistent.
	FallbackReply = "I'm having a little island moment right now. Ask me again in a bit!"

	// FallbackTip stands in when the personalized tip cannot be generated.
	FallbackTip = "Catch the sunset at Pigeon Point, you can't go wrong!"
)

// AnalyticsEventTypes emitted by the services.
const (
	EventVisitorRecognized    = "visitor_recognized"
	EventVisitorCreated       = "visitor_created"
	EventConversationStarted  = "conversation_started"
	EventConversationEnded    = "conversation_ended"
	EventMemorySaved          = "memory_saved"
	EventRatingSaved          = "rating_saved"
	EventCacheHit             = "cache_hit"
	EventChatTurnCompleted    = "chat_turn_completed"
	EventTraitsClassified     = "traits_classified"
	EventSuggestionsRequested = "suggestions_requested"
)
