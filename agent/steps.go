package agent

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/chethanchannaveer/agentcore/core"
)

const (
	// MaxSteps caps the plan length.
	MaxSteps = 5
	// minStepLength is the shortest description kept, in runes.
	minStepLength = 6
)

var (
	stepLine   = regexp.MustCompile(`(?i)^(?:[\d•\-*]|step\s*\d)`)
	stepMarker = regexp.MustCompile(`(?i)^(?:[\d•\-*.\s)]+|step\s*\d+:?\s*)`)
)

// GenericSteps are substituted when a plan yields no usable step.
var GenericSteps = []string{"Analyze requirements", "Execute main task", "Verify results"}

// ParseSteps turns a free-text plan into at most MaxSteps pending steps.
//
// A line counts as a step when it begins with a digit, "•", "-", "*" or
// "step <n>". The leading marker is stripped and descriptions shorter than
// six characters are dropped. When nothing survives, GenericSteps is used.
func ParseSteps(text string) []core.Step {
	steps := make([]core.Step, 0, MaxSteps)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !stepLine.MatchString(line) {
			continue
		}
		desc := strings.TrimSpace(stepMarker.ReplaceAllString(line, ""))
		if utf8.RuneCountInString(desc) < minStepLength {
			continue
		}
		steps = append(steps, core.Step{Description: desc, Status: core.StepStatusPending})
		if len(steps) == MaxSteps {
			break
		}
	}
	if len(steps) == 0 {
		for _, d := range GenericSteps {
			steps = append(steps, core.Step{Description: d, Status: core.StepStatusPending})
		}
	}
	return steps
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
