// Package conversation holds the ordered turn history that is replayed
// as context on every model invocation.
package conversation

// Role identifies who produced a turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
	RoleTool  Role = "tool"
)

// ToolCall is a structured tool invocation requested by the model.
type ToolCall struct {
	Name string
	Args map[string]any
}

// ToolResult is the outcome of one tool invocation, fed back to the model.
type ToolResult struct {
	Name    string
	Content string
}

// Turn is a single entry in the transcript. Exactly one of Text,
// ToolCalls or ToolResult carries the content.
type Turn struct {
	Role       Role
	Text       string
	ToolCalls  []ToolCall
	ToolResult *ToolResult
}

// State is the session-owned transcript. It is append-only except for
// RollbackLast, which discards incomplete turns after a mid-turn failure
// so the history stays replayable. Not safe for concurrent use; each
// session owns exactly one State.
type State struct {
	turns []Turn
}

// NewState returns an empty transcript.
func NewState() *State {
	return &State{turns: make([]Turn, 0)}
}

// Append adds a turn to the end of the transcript.
func (s *State) Append(t Turn) {
	s.turns = append(s.turns, t)
}

// RollbackLast removes the n most recently appended turns. Rolling back
// more turns than exist clears the transcript.
func (s *State) RollbackLast(n int) {
	if n <= 0 {
		return
	}
	if n >= len(s.turns) {
		s.turns = s.turns[:0]
		return
	}
	s.turns = s.turns[:len(s.turns)-n]
}

// Last returns the most recent turn, or false if the transcript is empty.
func (s *State) Last() (Turn, bool) {
	if len(s.turns) == 0 {
		return Turn{}, false
	}
	return s.turns[len(s.turns)-1], true
}

// Len returns the number of turns in the transcript.
func (s *State) Len() int {
	return len(s.turns)
}

// Snapshot returns a copy of the transcript in order. Mutating the
// returned slice does not affect the transcript.
func (s *State) Snapshot() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}
