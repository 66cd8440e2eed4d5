package agent

import "github.com/chethanchannaveer/agentcore/internal/util"

// InstructionData is the value instruction templates and providers see.
type InstructionData struct {
	ID            string
	Name          string
	MemorySummary string
}

// InstructionProvider supplies instruction text at runtime.
type InstructionProvider interface {
	Instruction(InstructionData) (string, error)
}

// InstructionFunc adapts an ordinary function to InstructionProvider.
type InstructionFunc func(InstructionData) (string, error)

// Instruction implements InstructionProvider.
func (f InstructionFunc) Instruction(d InstructionData) (string, error) { return f(d) }

// Instruction is either template text or a dynamic provider.
type Instruction struct {
	text     string
	provider InstructionProvider
}

// NewInstructionFromText creates an Instruction from template text. Fields of
// InstructionData are available as {{.Name}} etc., along with sprig functions.
func NewInstructionFromText(text string) Instruction { return Instruction{text: text} }

// NewInstructionFromProvider creates an Instruction from a dynamic provider.
func NewInstructionFromProvider(p InstructionProvider) Instruction { return Instruction{provider: p} }

// NewInstructionFromFunc creates an Instruction from a function.
func NewInstructionFromFunc(f func(InstructionData) (string, error)) Instruction {
	return Instruction{provider: InstructionFunc(f)}
}

// IsStatic returns true if the instruction is backed by template text.
func (i Instruction) IsStatic() bool { return i.provider == nil }

// IsZero reports whether the instruction was never set.
func (i Instruction) IsZero() bool { return i.provider == nil && i.text == "" }

// Resolve returns the instruction text for d.
func (i Instruction) Resolve(d InstructionData) (string, error) {
	if i.provider != nil {
		return i.provider.Instruction(d)
	}
	return util.RenderTemplate(i.text, d)
}
