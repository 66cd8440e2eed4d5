// Package local implements the offline response simulator: a model.Model
// that answers without network access by classifying the latest message into
// an intent and filling a canned template. It never fails and performs no
// I/O, which makes it the fallback backend of the llm router.
package local

import (
	"context"
	"strings"
	"text/template"

	"github.com/chethanchannaveer/agentcore/internal/util"
	"github.com/chethanchannaveer/agentcore/model"
)

// Intent is the coarse category of an inbound message.
type Intent string

const (
	IntentTaskBreakdown Intent = "task_breakdown"
	IntentCode          Intent = "code"
	IntentBooking       Intent = "booking"
	IntentQuiz          Intent = "quiz"
	IntentGeneral       Intent = "general"
)

// intentRule pairs an intent with the keywords that trigger it. Rules are
// evaluated in slice order; the first hit wins.
type intentRule struct {
	intent   Intent
	keywords []string
}

var intentRules = []intentRule{
	{IntentTaskBreakdown, []string{"plan", "break", "steps", "how to"}},
	{IntentCode, []string{"code", "function", "implement", "create a"}},
	{IntentBooking, []string{"book", "flight", "hotel", "restaurant"}},
	{IntentQuiz, []string{"quiz", "test", "questions", "learn"}},
}

// Classify returns the intent for input by keyword containment.
func Classify(input string) Intent {
	lower := strings.ToLower(input)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.intent
			}
		}
	}
	return IntentGeneral
}

// Options configures the Simulator.
type Options struct {
	// Picker selects among templates; defaults to ClockPicker.
	Picker Picker
}

// Simulator is the offline backend.
type Simulator struct {
	picker    Picker
	templates map[Intent][]*template.Template
}

// New creates a Simulator.
func New(optFns ...func(o *Options)) *Simulator {
	opts := Options{Picker: ClockPicker{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Picker == nil {
		opts.Picker = ClockPicker{}
	}
	return &Simulator{picker: opts.Picker, templates: compiledTemplates}
}

// Reply produces the simulated assistant text for the conversation.
func (s *Simulator) Reply(messages []model.Message) string {
	var input string
	if len(messages) > 0 {
		input = strings.ToLower(messages[len(messages)-1].Content)
	}

	intent := Classify(input)
	var data any
	switch intent {
	case IntentTaskBreakdown:
		data = stepsFor(input)
	case IntentCode:
		data = codeFor(input)
	case IntentBooking:
		data = bookingFor(input)
	case IntentQuiz:
		data = quizFor(input)
	default:
		data = generalData{Response: s.generalResponse()}
	}
	return s.render(intent, data)
}

// Generate implements model.Model by emitting Reply as a single final chunk.
func (s *Simulator) Generate(_ context.Context, req model.Request) (<-chan model.Response, <-chan error) {
	out := make(chan model.Response, 1)
	errCh := make(chan error)
	out <- model.Response{Text: s.Reply(req.Messages), FinishReason: "stop"}
	close(out)
	close(errCh)
	return out, errCh
}

// Info implements model.Model.
func (s *Simulator) Info() model.Info {
	return model.Info{Name: "local-simulator", Provider: model.ProviderLocal}
}

func (s *Simulator) render(intent Intent, data any) string {
	choices := s.templates[intent]
	tmpl := choices[s.picker.Pick(len(choices))]
	out, err := util.Execute(tmpl, data)
	if err != nil {
		// Templates are static and data is typed; reaching this means a bug
		// in the template table, not in the input.
		return "I can help with that."
	}
	return out
}

func (s *Simulator) generalResponse() string {
	opener := openers[s.picker.Pick(len(openers))]
	return opener + ", I can help with that. Based on your request, I'll work on implementing the solution using best practices and proven patterns."
}
