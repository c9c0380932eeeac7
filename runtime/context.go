package runtime

// Context pairs the current scope with the shared call stack. The stack
// reference is never copied across the evaluation tree of a program.
type Context struct {
	Scope *Scope
	Stack *CallStack
}

func NewContext(scope *Scope, stack *CallStack) *Context {
	return &Context{Scope: scope, Stack: stack}
}

// WithScope derives a context over a different scope, sharing the stack.
func (c *Context) WithScope(scope *Scope) *Context {
	return &Context{Scope: scope, Stack: c.Stack}
}
