package chatbot

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	greetingPattern = regexp.MustCompile(`\b(hi|hello|hey|good morning|good evening)\b`)
	thanksPattern   = regexp.MustCompile(`\b(thank(s| you)?|thx|ty)\b`)
	farewellPattern = regexp.MustCompile(`\b(bye|goodbye|see you|farewell)\b`)
	positivePattern = regexp.MustCompile(`\b(happy|excited|great|awesome|good|glad|amazing)\b`)
	negativePattern = regexp.MustCompile(`\b(sad|upset|angry|hurt|frustrat|bad|terrible|depress)\b`)
	questionPattern = regexp.MustCompile(`\b(how|what|why|when|where|can you|could you|should i)\b`)
)

var (
	greetingResponses = []string{
		"Hi! How are you feeling today?",
		"Hello! What’s on your mind?",
		"Hey there! How can I help you today?",
	}
	positiveResponses = []string{
		"That's wonderful to hear! What made you feel that way?",
		"I'm glad to hear something positive happened. Want to share more?",
		"Sounds great! Tell me more about the good part.",
	}
	negativeResponses = []string{
		"I'm really sorry you're going through that. Want to talk more?",
		"That sounds tough… I'm here to listen.",
		"I'm sorry you feel this way. What do you think caused it?",
	}
	neutralResponses = []string{
		"I get you. Would you like to explain a bit more?",
		"Interesting—tell me more so I can understand better.",
		"Okay, I’m listening. What else happened?",
	}
	followupQuestions = []string{
		"What happened next?",
		"How did that make you feel overall?",
		"Do you want to talk more about it?",
		"I'm listening — go on.",
	}
)

type Category string

const (
	CategoryGreeting Category = "greeting"
	CategoryThanks   Category = "thanks"
	CategoryFarewell Category = "farewell"
	CategoryPositive Category = "positive"
	CategoryNegative Category = "negative"
	CategoryQuestion Category = "question"
	CategoryShort    Category = "short"
	CategoryNeutral  Category = "neutral"
)

// message is a user utterance prepared for matching.
type message struct {
	text  string
	lower string
}

type rule struct {
	category Category
	match    func(m message) bool
	reply    func(b *Bot, m message) string
}

// rules are evaluated in order; the first match wins.
var rules = []rule{
	{
		category: CategoryGreeting,
		match:    func(m message) bool { return greetingPattern.MatchString(m.lower) },
		reply:    func(b *Bot, _ message) string { return b.pick(greetingResponses) },
	},
	{
		category: CategoryThanks,
		match:    func(m message) bool { return thanksPattern.MatchString(m.lower) },
		reply:    func(*Bot, message) string { return "You're welcome! I’m glad I could help." },
	},
	{
		category: CategoryFarewell,
		match:    func(m message) bool { return farewellPattern.MatchString(m.lower) },
		reply:    func(*Bot, message) string { return "Goodbye! If you'd like to talk again, I’ll be here." },
	},
	{
		category: CategoryPositive,
		match:    func(m message) bool { return positivePattern.MatchString(m.lower) },
		reply:    func(b *Bot, _ message) string { return b.pick(positiveResponses) },
	},
	{
		category: CategoryNegative,
		match:    func(m message) bool { return negativePattern.MatchString(m.lower) },
		reply:    func(b *Bot, _ message) string { return b.pick(negativeResponses) },
	},
	{
		category: CategoryQuestion,
		match: func(m message) bool {
			return strings.Contains(m.text, "?") || questionPattern.MatchString(m.lower)
		},
		reply: func(*Bot, message) string {
			return "That's an interesting question. " +
				"Could you tell me more so I can understand the situation better?"
		},
	},
	{
		category: CategoryShort,
		match:    func(m message) bool { return len(strings.Fields(m.text)) <= 2 },
		reply: func(_ *Bot, m message) string {
			return fmt.Sprintf("I hear you: '%s'. Could you explain a bit more?", m.text)
		},
	},
	{
		category: CategoryNeutral,
		match:    func(message) bool { return true },
		reply: func(b *Bot, _ message) string {
			return b.pick(neutralResponses) + " " + b.pick(followupQuestions)
		},
	},
}

// Categorize reports which rule a user utterance falls under.
func Categorize(text string) Category {
	r, _ := matchRule(text)
	return r.category
}

func matchRule(text string) (rule, message) {
	txt := strings.TrimSpace(text)
	m := message{text: txt, lower: strings.ToLower(txt)}
	for _, r := range rules {
		if r.match(m) {
			return r, m
		}
	}
	return rules[len(rules)-1], m
}
