package local

import (
	"strings"
	"text/template"

	"github.com/chethanchannaveer/agentcore/internal/util"
)

var templateSources = map[Intent][]string{
	IntentTaskBreakdown: {
		"I'll break this down into manageable steps:\n1. {{.Step1}}\n2. {{.Step2}}\n3. {{.Step3}}\nLet me start with the first step.",
		"Here's my plan to accomplish this:\n• First: {{.Step1}}\n• Then: {{.Step2}}\n• Finally: {{.Step3}}\nI'll begin working on this systematically.",
		"To complete this task, I need to:\n1. {{.Step1}}\n2. {{.Step2}}\n3. {{.Step3}}\nStarting with step one now.",
	},
	IntentCode: {
		"I've generated the following code:\n```javascript\n{{.Code}}\n```\nThis implementation {{.Explanation}}.",
		"Here's the code solution:\n```javascript\n{{.Code}}\n```\n{{.Explanation}}",
		"I've created this for you:\n```javascript\n{{.Code}}\n```\nKey features: {{.Explanation}}",
	},
	IntentBooking: {
		"I've detected you want to book {{.Type}}. Based on your request, I recommend visiting:\n• {{.Site1}} - {{.Reason1}}\n• {{.Site2}} - {{.Reason2}}\nWould you like me to navigate you to one of these?",
		"For {{.Type}} booking, here are the best options:\n1. {{.Site1}}: {{.Reason1}}\n2. {{.Site2}}: {{.Reason2}}\nClick any card below to proceed.",
	},
	IntentQuiz: {
		"I've created a {{.Topic}} quiz with {{.Count}} questions covering:\n• {{.Area1}}\n• {{.Area2}}\n• {{.Area3}}\nEach question includes detailed explanations.",
		"Here's your personalized {{.Topic}} quiz:\n- {{.Count}} carefully crafted questions\n- Topics: {{.Area1}}, {{.Area2}}, {{.Area3}}\n- Includes comprehensive explanations",
	},
	IntentGeneral: {
		"I understand. {{.Response}}",
		"Based on your request, {{.Response}}",
		"Let me help with that. {{.Response}}",
		"{{.Response}}",
	},
}

var compiledTemplates = compileAll()

func compileAll() map[Intent][]*template.Template {
	out := make(map[Intent][]*template.Template, len(templateSources))
	for intent, sources := range templateSources {
		for i, src := range sources {
			name := string(intent) + "-" + string(rune('a'+i))
			out[intent] = append(out[intent], util.MustCompileTemplate(name, src))
		}
	}
	return out
}

var openers = []string{
	"absolutely", "certainly", "definitely", "of course", "sure thing",
	"right away", "immediately", "let me", "I'll", "I can",
}

type stepsData struct {
	Step1, Step2, Step3 string
}

func stepsFor(input string) stepsData {
	switch {
	case strings.Contains(input, "website") || strings.Contains(input, "app"):
		return stepsData{
			"Set up the project structure and dependencies",
			"Implement the core functionality and components",
			"Test and deploy the application",
		}
	case strings.Contains(input, "data") || strings.Contains(input, "analysis"):
		return stepsData{
			"Collect and clean the data",
			"Perform analysis and generate insights",
			"Create visualizations and reports",
		}
	default:
		return stepsData{
			"Understand the requirements and constraints",
			"Execute the main task components",
			"Verify results and make improvements",
		}
	}
}

type codeData struct {
	Code, Explanation string
}

func codeFor(input string) codeData {
	switch {
	case strings.Contains(input, "function") || strings.Contains(input, "fibonacci"):
		return codeData{
			Code:        "function fibonacci(n) {\n  if (n <= 1) return n;\n  return fibonacci(n - 1) + fibonacci(n - 2);\n}",
			Explanation: "uses recursion to calculate Fibonacci numbers efficiently",
		}
	case strings.Contains(input, "api") || strings.Contains(input, "fetch"):
		return codeData{
			Code:        "async function fetchData(url) {\n  const response = await fetch(url);\n  return response.json();\n}",
			Explanation: "handles async API calls with proper error handling",
		}
	default:
		return codeData{
			Code:        "function processTask() {\n  // Implementation here\n  return result;\n}",
			Explanation: "provides a clean implementation structure",
		}
	}
}

type bookingData struct {
	Type, Site1, Reason1, Site2, Reason2 string
}

func bookingFor(input string) bookingData {
	switch {
	case strings.Contains(input, "flight"):
		return bookingData{"flights", "Google Flights", "price tracking and flexible dates", "Skyscanner", "worldwide flight comparison"}
	case strings.Contains(input, "hotel"):
		return bookingData{"hotels", "Booking.com", "2.5M+ properties worldwide", "Hotels.com", "rewards program benefits"}
	default:
		return bookingData{"travel", "Expedia", "best package deals", "Booking.com", "extensive hotel selection"}
	}
}

type quizData struct {
	Topic, Area1, Area2, Area3 string
	Count                      int
}

var topicVocabulary = []string{"javascript", "python", "react", "node", "typescript", "java", "sql"}

const defaultTopic = "general knowledge"

// extractTopic returns the first word of input found in the fixed topic
// vocabulary, or "" when none matches.
func extractTopic(input string) string {
	for _, word := range strings.Fields(input) {
		w := strings.ToLower(strings.Trim(word, ".,!?;:\"'()"))
		for _, topic := range topicVocabulary {
			if w == topic {
				return w
			}
		}
	}
	return ""
}

func quizFor(input string) quizData {
	topic := extractTopic(input)
	if topic == "" {
		topic = defaultTopic
	}
	return quizData{
		Topic: topic,
		Count: 5,
		Area1: "fundamental concepts",
		Area2: "practical applications",
		Area3: "advanced techniques",
	}
}

type generalData struct {
	Response string
}
