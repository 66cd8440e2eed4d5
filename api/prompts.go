package api

import (
	"text/template"

	"github.com/chethanchannaveer/agentcore/internal/util"
)

const (
	quizInstruction    = "You are a quiz generator. Create educational quiz questions with multiple choice options and explanations."
	bookingInstruction = "You are a travel booking assistant. Analyze user requests and determine what they want to book."
)

var quizPrompt = util.MustCompileTemplate("quiz", `Generate 3 multiple-choice quiz questions about {{ .Topic | trim }}. {{ with .Goals | trim }}Focus on: {{ . }}{{ end }}

Format each question as:
Q: [question]
A) [option]
B) [option]
C) [option]
D) [option]
Correct: [letter]
Explanation: [explanation]`)

var bookingPrompt = util.MustCompileTemplate("booking", `Analyze this booking request:
{{ .Query | trim }}
{{ with .Budget | trim }}Budget: {{ . }}{{ end }}
{{ with .Destination | trim }}Destination: {{ . }}{{ end }}
{{ with .Dates | trim }}Dates: {{ . }}{{ end }}

What is the user trying to book? (flights, hotels, packages, restaurants, events)`)

func renderPrompt(tmpl *template.Template, data any) (string, error) {
	return util.Execute(tmpl, data)
}
