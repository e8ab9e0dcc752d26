package importmodel

import "strings"

// Conditional-compilation markers that separate Swift Package Manager code
// from CocoaPods code.
const (
	ConditionalBegin = "#if SWIFT_PACKAGE"
	ConditionalElse  = "#else"
	ConditionalEnd   = "#endif"
)

// State is the per-file conditional-compilation state.
type State int

const (
	// StateNormal is outside any SWIFT_PACKAGE block.
	StateNormal State = iota
	// StateConditional is inside the `#if SWIFT_PACKAGE` branch.
	StateConditional
	// StateConditionalElse is inside the `#else` branch of a SWIFT_PACKAGE block.
	StateConditionalElse
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateConditional:
		return "conditional"
	case StateConditionalElse:
		return "conditional-else"
	default:
		return "normal"
	}
}

// Action tells the scanner what the state machine decided about a line.
type Action int

const (
	// ActionNone means the line continues to the include check.
	ActionNone Action = iota
	// ActionSkip means the line is inside the SWIFT_PACKAGE branch and is ignored.
	ActionSkip
	// ActionModuleImport means the line is a whole-module import outside any block.
	ActionModuleImport
)

// ParseState tracks a single, non-nested SWIFT_PACKAGE block across the
// lines of one file. A nested `#if SWIFT_PACKAGE` is not tracked.
type ParseState struct {
	state State
}

// State returns the current state.
func (p *ParseState) State() State {
	return p.state
}

// Advance feeds one trimmed line into the state machine. The first matching
// branch wins.
func (p *ParseState) Advance(line string) Action {
	switch {
	case p.state != StateConditional && strings.HasPrefix(line, ConditionalBegin):
		p.state = StateConditional
	case p.state == StateConditional && strings.HasPrefix(line, ConditionalElse):
		p.state = StateConditionalElse
	case p.state == StateConditionalElse && strings.HasPrefix(line, ConditionalEnd):
		p.state = StateNormal
	case p.state == StateConditional:
		return ActionSkip
	case p.state == StateNormal && IsModuleImportLine(line):
		return ActionModuleImport
	}

	return ActionNone
}
