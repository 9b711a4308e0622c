package chat

// Mode identifies a guided conversation style.
type Mode string

const (
	ModeDailyReflection Mode = "daily_reflection"
	ModeGratitude       Mode = "gratitude"
	ModeGoalTracking    Mode = "goal_tracking"
	ModeFreeForm        Mode = "free_form"
)

// NormalizeMode accepts hyphenated aliases from older clients.
func NormalizeMode(raw string) Mode {
	switch raw {
	case "daily_reflection", "daily-reflection":
		return ModeDailyReflection
	case "gratitude", "gratitude_practice", "gratitude-practice":
		return ModeGratitude
	case "goal_tracking", "goal-tracking":
		return ModeGoalTracking
	default:
		return ModeFreeForm
	}
}

var firstResponses = map[Mode][]string{
	ModeDailyReflection: {
		"That's really interesting! I can sense there's more to explore there. What emotions came up for you during that experience?",
		"I love how you described that. Can you tell me more about what made that moment particularly meaningful for you?",
		"That sounds like it had quite an impact on you. What thoughts have been staying with you since then?",
	},
	ModeGratitude: {
		"That's beautiful - I can feel the appreciation in your words. What is it about that experience that touches your heart most?",
		"I love hearing about what you're grateful for. How does focusing on that gratitude change how you feel?",
		"That's wonderful. Can you share what made you pause and really notice that moment of gratitude?",
	},
	ModeGoalTracking: {
		"That sounds like meaningful progress! What do you think made the difference in moving forward today?",
		"I love hearing about your achievements. How does this progress connect to your bigger goals?",
		"That's fantastic! What did you learn about yourself through that experience?",
	},
	ModeFreeForm: {
		"Thank you for sharing that with me. I'm curious - what part of that experience is still on your mind?",
		"That sounds really significant. Can you tell me more about how that made you feel?",
		"I can tell this means something important to you. What would you like to explore more deeply?",
	},
}

var followUpResponses = []string{
	"That's really insightful. I'm getting a clearer picture of your day. Is there anything else that stands out to you?",
	"I appreciate how thoughtfully you're sharing this. What other moments from today feel worth exploring?",
	"You're painting such a vivid picture of your experience. What else would you like to capture about today?",
	"This is really meaningful. Are there other aspects of your day that you'd like to reflect on?",
}

var deeperResponses = []string{
	"I feel like I'm really understanding your day now. You've shared such rich details about your experiences.",
	"This conversation has given me a wonderful sense of who you are and how you experience life.",
	"Thank you for being so open and thoughtful in sharing these experiences with me.",
	"I'm really enjoying this conversation. You have such interesting perspectives on your daily life.",
}

var modeSuggestions = map[Mode][]string{
	ModeDailyReflection: {
		"Tell me about a challenge you faced today",
		"What was the highlight of your day?",
		"How are you feeling right now?",
		"What did you learn about yourself today?",
	},
	ModeGratitude: {
		"What small moment brought you joy?",
		"Who made a positive impact on your day?",
		"What are you most thankful for?",
		"How has gratitude changed your perspective?",
	},
	ModeGoalTracking: {
		"What progress did you make today?",
		"What motivated you to keep going?",
		"What obstacles did you overcome?",
		"How will you build on today's progress?",
	},
	ModeFreeForm: {
		"What else is on your mind?",
		"How are you feeling about everything?",
		"What would you like to remember about today?",
		"Is there anything else you'd like to explore?",
	},
}

var entryTitles = map[Mode]string{
	ModeDailyReflection: "Daily Reflection",
	ModeGratitude:       "Gratitude Journal",
	ModeGoalTracking:    "Progress Update",
	ModeFreeForm:        "Today's Thoughts",
}

var entryBodies = map[Mode]struct {
	lead string
	tail string
}{
	ModeDailyReflection: {
		lead: "Today was a day worth reflecting on. ",
		tail: "\n\nLooking back on these experiences, I'm struck by how much growth happens in the small moments. Each interaction, each challenge, each moment of joy contributes to who I'm becoming.\n\nI'm grateful for the opportunity to pause and reflect on these experiences. They remind me that life is happening right now, in these everyday moments that might seem ordinary but are actually quite extraordinary.",
	},
	ModeGratitude: {
		lead: "I'm taking a moment today to focus on gratitude. ",
		tail: "\n\nThere's something powerful about intentionally noticing what I'm thankful for. It shifts my perspective and reminds me of the abundance that's already present in my life.\n\nThese moments of gratitude don't just make me feel better in the moment - they're slowly changing how I see the world. I'm learning to notice beauty and kindness more readily, and that's a gift that keeps giving.",
	},
	ModeGoalTracking: {
		lead: "Today I made progress on what matters to me. ",
		tail: "\n\nEvery step forward, no matter how small, is worth celebrating. I'm learning that consistency matters more than perfection, and that progress isn't always linear.\n\nLooking at where I am now compared to where I started, I can see the growth happening. It motivates me to keep moving forward, one day at a time.",
	},
	ModeFreeForm: {
		lead: "Today brought its own unique mix of experiences. ",
		tail: "\n\nI'm constantly amazed by how much can happen in a single day - the thoughts, feelings, interactions, and moments that make up the fabric of life. Writing about it helps me process and appreciate it all.\n\nThese ordinary days are actually quite extraordinary when I take the time to really notice them.",
	},
}

// tagKeywords maps conversation tags to trigger words. This set differs
// from the journal auto-tag classes; conversations surface gratitude and
// creativity that rarely appear in finished entries.
var tagKeywords = []struct {
	tag      string
	keywords []string
}{
	{"work", []string{"work", "job", "career", "office", "meeting", "project"}},
	{"family", []string{"family", "mom", "dad", "sister", "brother", "parent", "child"}},
	{"friends", []string{"friend", "friends", "social", "hang out", "party"}},
	{"health", []string{"exercise", "workout", "health", "doctor", "medical", "fitness"}},
	{"gratitude", []string{"grateful", "thankful", "appreciate", "blessed"}},
	{"reflection", []string{"reflect", "think", "realize", "understand", "learn"}},
	{"goals", []string{"goal", "achievement", "accomplish", "progress", "success"}},
	{"creativity", []string{"create", "art", "music", "write", "design", "creative"}},
	{"travel", []string{"travel", "trip", "vacation", "journey", "visit"}},
	{"food", []string{"food", "eat", "cook", "restaurant", "meal", "dinner"}},
}
