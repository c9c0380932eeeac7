package interpreter

import (
	"fmt"
	"io"
	"os"

	"github.com/fadilhim/dartJSEngine/ast"
	"github.com/fadilhim/dartJSEngine/parser"
	"github.com/fadilhim/dartJSEngine/runtime"
)

// RegisterFunc populates the global scope with intrinsics. It runs once
// at construction, receiving the fresh interpreter.
type RegisterFunc func(*Interpreter)

// Interpreter is the evaluation core: a recursive tree walker over the
// parsed AST.
type Interpreter struct {
	globalScope  *runtime.Scope
	globalObject *runtime.Value

	Stdout io.Writer
	Stderr io.Writer
}

// New builds an interpreter with a fresh global scope and global
// object, binds the name "global" to the global object, and invokes the
// registration hook.
func New(register RegisterFunc) *Interpreter {
	globalObject := runtime.NewObject()
	globalObject.Builtin = true

	i := &Interpreter{
		globalScope:  runtime.NewScope(globalObject),
		globalObject: globalObject,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
	}
	i.globalScope.Create("global", globalObject, false)
	if register != nil {
		register(i)
	}
	return i
}

// GlobalObject returns the global object.
func (i *Interpreter) GlobalObject() *runtime.Value {
	return i.globalObject
}

// GlobalScope returns the root scope.
func (i *Interpreter) GlobalScope() *runtime.Scope {
	return i.globalScope
}

// DefineGlobal registers an intrinsic as a property of the global
// object, marking it built-in.
func (i *Interpreter) DefineGlobal(name string, v *runtime.Value) {
	v.Builtin = true
	i.globalObject.SetProperty(name, v)
}

// Eval parses source and evaluates the resulting program. name is the
// source identifier stamped into diagnostics.
func (i *Interpreter) Eval(name, source string) (*runtime.Value, error) {
	p := parser.New(name, source)
	program, errs := p.ParseProgram()
	if len(errs) > 0 {
		return nil, errs[0]
	}
	result, rerr := i.EvaluateProgram(program, nil)
	if rerr != nil {
		return nil, rerr
	}
	return result, nil
}

// EvaluateProgram runs every top-level statement in sequence and
// returns the value of the last expression statement. With a nil
// context, evaluation roots at the global scope with a fresh call
// stack.
func (i *Interpreter) EvaluateProgram(program *ast.Program, ctx *runtime.Context) (*runtime.Value, *runtime.Error) {
	if ctx == nil {
		ctx = runtime.NewContext(i.globalScope, runtime.NewCallStack())
	}
	frameName := program.File
	if frameName == "" {
		frameName = "<entry>"
	}

	result := runtime.Null
	for _, stmt := range program.Statements {
		v, err := i.evalStatement(stmt, ctx, frameName)
		if err != nil {
			return nil, err
		}
		if _, ok := stmt.(*ast.ExpressionStatement); ok {
			result = v
		}
	}
	return result, nil
}

// evalStatement executes one statement. A frame is pushed around every
// statement and popped on every exit path.
func (i *Interpreter) evalStatement(stmt ast.Statement, ctx *runtime.Context, frameName string) (*runtime.Value, *runtime.Error) {
	pos := stmt.Pos()
	ctx.Stack.Push(runtime.Frame{File: pos.File, Line: pos.Line, Name: frameName})
	defer ctx.Stack.Pop()

	switch node := stmt.(type) {
	case *ast.ExpressionStatement:
		return i.evalExpression(node.Expression, ctx)

	case *ast.ReturnStatement:
		if node.Argument == nil {
			return runtime.Null, nil
		}
		return i.evalExpression(node.Argument, ctx)

	case *ast.BlockStatement:
		return i.evalBlock(node, ctx, frameName)

	case *ast.VariableDeclaration:
		for _, decl := range node.Declarations {
			if err := i.evalDeclarator(decl, ctx); err != nil {
				return nil, err
			}
		}
		return runtime.Null, nil

	case *ast.FunctionDeclaration:
		return i.evalFunctionNode(node.Fn, ctx)

	default:
		return nil, ctx.Stack.Error(runtime.ErrUnsupported, fmt.Sprintf("unsupported statement: %T", stmt))
	}
}

// evalBlock runs each contained statement against a freshly derived
// child scope per statement, so a later sibling sees earlier
// declarations through increasingly nested parents. The block stops and
// yields a value only when the statement it encounters is itself a
// return statement; a return inside a nested block ends that nested
// block alone.
func (i *Interpreter) evalBlock(block *ast.BlockStatement, ctx *runtime.Context, frameName string) (*runtime.Value, *runtime.Error) {
	scope := ctx.Scope
	for _, stmt := range block.Statements {
		scope = scope.Child()
		v, err := i.evalStatement(stmt, ctx.WithScope(scope), frameName)
		if err != nil {
			return nil, err
		}
		if _, ok := stmt.(*ast.ReturnStatement); ok {
			return v, nil
		}
	}
	return runtime.Null, nil
}

// evalDeclarator evaluates the initializer in the current scope and
// binds it. Re-declaring an existing name in the same scope assigns
// over the existing binding instead of failing.
func (i *Interpreter) evalDeclarator(decl *ast.VariableDeclarator, ctx *runtime.Context) *runtime.Error {
	value := runtime.Null
	if decl.Init != nil {
		v, err := i.evalExpression(decl.Init, ctx)
		if err != nil {
			return err
		}
		value = v
	}

	// Anonymous-function naming inference.
	if value.Type == runtime.TypeFunction && value.Fn.Anonymous {
		value.Fn.Name = decl.Name
		value.Fn.Anonymous = false
		value.SetProperty("name", runtime.NewString(decl.Name))
	}

	if cerr := ctx.Scope.Create(decl.Name, value, false); cerr != nil {
		if aerr := ctx.Scope.Assign(decl.Name, value); aerr == runtime.ErrConstant {
			return ctx.Stack.Error(runtime.ErrType, "Assignment to constant variable '"+decl.Name+"'")
		}
	}
	return nil
}
