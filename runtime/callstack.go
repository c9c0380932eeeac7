package runtime

import (
	"fmt"
	"strings"
)

// Frame is one diagnostic entry: where execution currently is.
type Frame struct {
	File string
	Line int
	Name string
}

func (f Frame) String() string {
	return fmt.Sprintf("at %s (%s:%d)", f.Name, f.File, f.Line)
}

// CallStack is the shared diagnostic stack for one program evaluation.
// Push and Pop must balance on every exit path, including error
// propagation.
type CallStack struct {
	frames []Frame
}

func NewCallStack() *CallStack {
	return &CallStack{}
}

func (cs *CallStack) Push(f Frame) {
	cs.frames = append(cs.frames, f)
}

func (cs *CallStack) Pop() {
	if len(cs.frames) == 0 {
		return
	}
	cs.frames = cs.frames[:len(cs.frames)-1]
}

func (cs *CallStack) Depth() int {
	return len(cs.frames)
}

// Trace returns a copy of the frames, innermost last.
func (cs *CallStack) Trace() []Frame {
	out := make([]Frame, len(cs.frames))
	copy(out, cs.frames)
	return out
}

// ErrorKind tags a runtime error.
type ErrorKind int

const (
	ErrReference ErrorKind = iota
	ErrType
	ErrUnsupported
	ErrInternal
)

func (k ErrorKind) String() string {
	switch k {
	case ErrReference:
		return "ReferenceError"
	case ErrType:
		return "TypeError"
	case ErrUnsupported:
		return "UnsupportedError"
	case ErrInternal:
		return "InternalError"
	default:
		return "Error"
	}
}

// Error is a runtime error carrying the frame trace captured at the
// moment of the throw.
type Error struct {
	Kind    ErrorKind
	Message string
	Trace   []Frame
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Message
}

// FormatTrace renders the message plus one indented line per frame,
// innermost first.
func (e *Error) FormatTrace() string {
	var b strings.Builder
	b.WriteString(e.Error())
	for i := len(e.Trace) - 1; i >= 0; i-- {
		b.WriteString("\n    ")
		b.WriteString(e.Trace[i].String())
	}
	return b.String()
}

// Error constructs a runtime error annotated with the current trace.
// This is the sole way evaluation raises Reference, Type, and
// Unsupported errors.
func (cs *CallStack) Error(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message, Trace: cs.Trace()}
}
