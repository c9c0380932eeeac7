package interpreter

import (
	"github.com/fadilhim/dartJSEngine/ast"
	"github.com/fadilhim/dartJSEngine/runtime"
)

// evalFunctionNode creates a function value from a declaration or
// expression. A named function binds its own name as a constant in the
// defining scope before the closure is captured, so the body can call
// itself even when the surrounding expression never exposes the name.
func (i *Interpreter) evalFunctionNode(node *ast.FunctionLiteral, ctx *runtime.Context) (*runtime.Value, *runtime.Error) {
	data := &runtime.FunctionData{
		Name:      node.Name,
		File:      node.Loc.File,
		Line:      node.Loc.Line,
		Declared:  true,
		Params:    node.Params,
		Anonymous: node.Name == "",
	}
	fn := runtime.NewFunction(data)

	if node.Name != "" {
		// Ignore a clash: the surrounding declarator keeps its binding.
		_ = ctx.Scope.Create(node.Name, fn, true)
	}
	data.Closure = ctx.Scope.Fork()

	body := node.Body
	data.Call = func(this *runtime.Value, args []*runtime.Value, callCtx *runtime.Context) (*runtime.Value, *runtime.Error) {
		frameName := data.Name
		if frameName == "" {
			frameName = "<anonymous>"
		}
		return i.evalBlock(body, callCtx, frameName)
	}

	return fn, nil
}

// evalCall evaluates a call expression. A member-access callee stamps
// the receiving object as the call's this-context.
func (i *Interpreter) evalCall(node *ast.CallExpression, ctx *runtime.Context) (*runtime.Value, *runtime.Error) {
	var fn, this *runtime.Value

	switch callee := node.Callee.(type) {
	case *ast.MemberExpression:
		obj, err := i.evalExpression(callee.Object, ctx)
		if err != nil {
			return nil, err
		}
		f, gerr := obj.GetProperty(callee.Property, i, ctx)
		if gerr != nil {
			return nil, gerr
		}
		fn, this = f, obj
	case *ast.IndexExpression:
		obj, err := i.evalExpression(callee.Object, ctx)
		if err != nil {
			return nil, err
		}
		index, err := i.evalExpression(callee.Index, ctx)
		if err != nil {
			return nil, err
		}
		f, gerr := obj.GetIndex(index, i, ctx)
		if gerr != nil {
			return nil, gerr
		}
		fn, this = f, obj
	default:
		f, err := i.evalExpression(node.Callee, ctx)
		if err != nil {
			return nil, err
		}
		fn = f
	}

	if fn.Type != runtime.TypeFunction {
		return nil, ctx.Stack.Error(runtime.ErrType, calleeName(node.Callee, fn)+" is not a function")
	}

	args, err := i.evalArguments(node.Arguments, ctx)
	if err != nil {
		return nil, err
	}
	return i.call(fn, this, args, ctx, false)
}

// evalNew evaluates a constructor call.
func (i *Interpreter) evalNew(node *ast.NewExpression, ctx *runtime.Context) (*runtime.Value, *runtime.Error) {
	fn, err := i.evalExpression(node.Callee, ctx)
	if err != nil {
		return nil, err
	}
	if fn.Type != runtime.TypeFunction {
		return nil, ctx.Stack.Error(runtime.ErrType, calleeName(node.Callee, fn)+" is not a constructor")
	}
	args, err := i.evalArguments(node.Arguments, ctx)
	if err != nil {
		return nil, err
	}
	return i.call(fn, nil, args, ctx, true)
}

// evalArguments evaluates call arguments left to right in the caller's
// context.
func (i *Interpreter) evalArguments(exprs []ast.Expression, ctx *runtime.Context) ([]*runtime.Value, *runtime.Error) {
	args := make([]*runtime.Value, 0, len(exprs))
	for _, expr := range exprs {
		v, err := i.evalExpression(expr, ctx)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

// Invoke is the re-entrant external entry point for calling a function
// value. It is also how native accessors call back into evaluation.
func (i *Interpreter) Invoke(fn *runtime.Value, this *runtime.Value, args []*runtime.Value, ctx *runtime.Context) (*runtime.Value, *runtime.Error) {
	if ctx == nil {
		ctx = runtime.NewContext(i.globalScope, runtime.NewCallStack())
	}
	if fn.Type != runtime.TypeFunction {
		return nil, ctx.Stack.Error(runtime.ErrType, fn.ToString()+" is not a function")
	}
	return i.call(fn, this, args, ctx, false)
}

// call is the shared invocation protocol. The body runs in a child of
// the callee's closure scope (or the caller's scope for natives). Under
// new, a callee not already marked as a constructor gets a fresh object
// as this, and that object is the result regardless of what the body
// returns.
func (i *Interpreter) call(fn *runtime.Value, this *runtime.Value, args []*runtime.Value, ctx *runtime.Context, construct bool) (*runtime.Value, *runtime.Error) {
	data := fn.Fn

	var callScope *runtime.Scope
	if data.Closure != nil {
		callScope = data.Closure.Child()
	} else {
		callScope = ctx.Scope.Child()
	}

	switch {
	case data.This != nil:
		callScope.SetThis(data.This)
	case this != nil:
		callScope.SetThis(this)
	default:
		callScope.SetThis(ctx.Scope.This())
	}

	var instance *runtime.Value
	if construct && !data.IsConstructor {
		instance = runtime.NewObject()
		callScope.SetThis(instance)
	}

	for idx, param := range data.Params {
		v := runtime.Null
		if idx < len(args) {
			v = args[idx]
		}
		callScope.Create(param, v, false)
	}
	callScope.Create("arguments", runtime.NewArguments(fn, args), false)

	if data.Declared {
		ctx.Stack.Push(runtime.Frame{File: data.File, Line: data.Line, Name: frameNameFor(data)})
		defer ctx.Stack.Pop()
	}

	result, err := data.Call(callScope.This(), args, ctx.WithScope(callScope))
	if err != nil {
		return nil, err
	}
	if instance != nil {
		return instance, nil
	}
	if result == nil {
		return runtime.Null, nil
	}
	return result, nil
}

func frameNameFor(data *runtime.FunctionData) string {
	if data.Name != "" {
		return data.Name
	}
	return "<anonymous>"
}

// calleeName prefers the source-level name of the callee for error
// messages, falling back to the value's display form.
func calleeName(callee ast.Expression, v *runtime.Value) string {
	switch node := callee.(type) {
	case *ast.Identifier:
		return node.Name
	case *ast.MemberExpression:
		return node.Property
	default:
		return v.ToString()
	}
}
