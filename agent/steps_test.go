package agent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chethanchannaveer/agentcore/core"
)

func descriptions(steps []core.Step) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.Description
	}
	return out
}

func TestParseSteps(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty input", "", GenericSteps},
		{"whitespace only", "  \n\t\n", GenericSteps},
		{"prose without markers", "Sure, I can help.\nLet me think about it.", GenericSteps},
		{"single line", "1. Research destinations", []string{"Research destinations"}},
		{
			"numbered with parens and dots",
			"1) Gather the requirements\n2. Draft the proposal\n3 - Review with the team",
			[]string{"Gather the requirements", "Draft the proposal", "Review with the team"},
		},
		{
			"mixed bullet styles",
			"Here is the plan:\n• Book the flights\n- Reserve a hotel\n* Pack the luggage\nStep 4: Confirm the itinerary\nGood luck!",
			[]string{"Book the flights", "Reserve a hotel", "Pack the luggage", "Confirm the itinerary"},
		},
		{
			"step prefix is case insensitive",
			"STEP 1 Collect the data\nstep2: Clean the data",
			[]string{"Collect the data", "Clean the data"},
		},
		{
			"short descriptions discarded",
			"1. Go\n2. Plan\n3. Pack bags\n4. Travel",
			[]string{"Pack bags", "Travel"},
		},
		{"bare markers discarded", "1.\n2.\n-\n•", GenericSteps},
		{
			"indented lines",
			"   1. Outline the chapters\n\t2. Write the first draft",
			[]string{"Outline the chapters", "Write the first draft"},
		},
		{
			"over-long list keeps first five",
			"1. Step number one\n2. Step number two\n3. Step number three\n4. Step number four\n5. Step number five\n6. Step number six\n7. Step number seven",
			[]string{"Step number one", "Step number two", "Step number three", "Step number four", "Step number five"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			steps := ParseSteps(tc.input)
			assert.Equal(t, tc.want, descriptions(steps))
			for _, s := range steps {
				assert.Equal(t, core.StepStatusPending, s.Status)
				assert.Empty(t, s.Result)
			}
		})
	}
}

func TestParseSteps_MarkerNotAtLineStartIsProse(t *testing.T) {
	steps := ParseSteps("Then do step 2 carefully\nAfter that - relax")
	assert.Equal(t, GenericSteps, descriptions(steps))
}

func TestParseSteps_LengthCountsRunes(t *testing.T) {
	// Five multi-byte runes are still too short; six are enough.
	steps := ParseSteps("1. ééééé\n2. éééééé")
	assert.Equal(t, []string{"éééééé"}, descriptions(steps))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 200))
	assert.Len(t, []rune(truncate(strings.Repeat("ü", 250), 200)), 200)
	assert.Equal(t, "ab", truncate("abc", 2))
}
