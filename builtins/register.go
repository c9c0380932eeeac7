// Package builtins populates an interpreter's global scope with the
// intrinsic objects and functions scripts expect.
package builtins

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/fadilhim/dartJSEngine/interpreter"
	"github.com/fadilhim/dartJSEngine/runtime"
)

// Register is the canonical registration hook passed to
// interpreter.New.
func Register(i *interpreter.Interpreter) {
	i.DefineGlobal("console", console(i))
	i.DefineGlobal("Math", mathObject())
	i.DefineGlobal("JSON", jsonObject())
	i.DefineGlobal("isNaN", native("isNaN", func(this *runtime.Value, args []*runtime.Value, ctx *runtime.Context) (*runtime.Value, *runtime.Error) {
		n, ok := arg(args, 0).ToNumber()
		return runtime.NewBool(!ok || math.IsNaN(n)), nil
	}))
	i.DefineGlobal("parseInt", native("parseInt", builtinParseInt))
	i.DefineGlobal("parseFloat", native("parseFloat", builtinParseFloat))
	i.DefineGlobal("String", native("String", func(this *runtime.Value, args []*runtime.Value, ctx *runtime.Context) (*runtime.Value, *runtime.Error) {
		return runtime.NewString(arg(args, 0).ToString()), nil
	}))
	i.DefineGlobal("Number", native("Number", func(this *runtime.Value, args []*runtime.Value, ctx *runtime.Context) (*runtime.Value, *runtime.Error) {
		n, ok := arg(args, 0).ToNumber()
		if !ok {
			return runtime.NewNumber(math.NaN()), nil
		}
		return runtime.NewNumber(n), nil
	}))
	i.DefineGlobal("Boolean", native("Boolean", func(this *runtime.Value, args []*runtime.Value, ctx *runtime.Context) (*runtime.Value, *runtime.Error) {
		return runtime.NewBool(arg(args, 0).ToBoolean()), nil
	}))
	i.DefineGlobal("Error", errorConstructor())
}

// native wraps a Go function as a built-in function value. Natives have
// no closure scope, no declaration site, and do not push call-stack
// frames.
func native(name string, fn runtime.NativeFunc) *runtime.Value {
	v := runtime.NewFunction(&runtime.FunctionData{Name: name, Call: fn})
	v.Builtin = true
	return v
}

func arg(args []*runtime.Value, idx int) *runtime.Value {
	if idx < len(args) {
		return args[idx]
	}
	return runtime.Null
}

func console(i *interpreter.Interpreter) *runtime.Value {
	obj := runtime.NewObject()
	obj.Builtin = true
	obj.SetProperty("log", native("log", func(this *runtime.Value, args []*runtime.Value, ctx *runtime.Context) (*runtime.Value, *runtime.Error) {
		fmt.Fprintln(i.Stdout, joinArgs(args))
		return runtime.Null, nil
	}))
	obj.SetProperty("error", native("error", func(this *runtime.Value, args []*runtime.Value, ctx *runtime.Context) (*runtime.Value, *runtime.Error) {
		fmt.Fprintln(i.Stderr, joinArgs(args))
		return runtime.Null, nil
	}))
	return obj
}

func joinArgs(args []*runtime.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.ToString()
	}
	return strings.Join(parts, " ")
}

func mathObject() *runtime.Value {
	obj := runtime.NewObject()
	obj.Builtin = true
	obj.SetProperty("PI", runtime.NewNumber(math.Pi))
	obj.SetProperty("E", runtime.NewNumber(math.E))

	unary := func(name string, fn func(float64) float64) {
		obj.SetProperty(name, native(name, func(this *runtime.Value, args []*runtime.Value, ctx *runtime.Context) (*runtime.Value, *runtime.Error) {
			n, ok := arg(args, 0).ToNumber()
			if !ok {
				return runtime.NewNumber(math.NaN()), nil
			}
			return runtime.NewNumber(fn(n)), nil
		}))
	}
	unary("abs", math.Abs)
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)
	unary("sqrt", math.Sqrt)

	obj.SetProperty("pow", native("pow", func(this *runtime.Value, args []*runtime.Value, ctx *runtime.Context) (*runtime.Value, *runtime.Error) {
		x, xok := arg(args, 0).ToNumber()
		y, yok := arg(args, 1).ToNumber()
		if !xok || !yok {
			return runtime.NewNumber(math.NaN()), nil
		}
		return runtime.NewNumber(math.Pow(x, y)), nil
	}))
	obj.SetProperty("max", native("max", reduceNumbers(math.Inf(-1), math.Max)))
	obj.SetProperty("min", native("min", reduceNumbers(math.Inf(1), math.Min)))
	obj.SetProperty("random", native("random", func(this *runtime.Value, args []*runtime.Value, ctx *runtime.Context) (*runtime.Value, *runtime.Error) {
		return runtime.NewNumber(rand.Float64()), nil
	}))
	return obj
}

func reduceNumbers(identity float64, fn func(a, b float64) float64) runtime.NativeFunc {
	return func(this *runtime.Value, args []*runtime.Value, ctx *runtime.Context) (*runtime.Value, *runtime.Error) {
		acc := identity
		for _, a := range args {
			n, ok := a.ToNumber()
			if !ok || math.IsNaN(n) {
				return runtime.NewNumber(math.NaN()), nil
			}
			acc = fn(acc, n)
		}
		return runtime.NewNumber(acc), nil
	}
}

// errorConstructor builds the native Error function. It is marked as a
// constructor, so new Error(...) lets it allocate its own instance and
// honors its return value.
func errorConstructor() *runtime.Value {
	v := native("Error", func(this *runtime.Value, args []*runtime.Value, ctx *runtime.Context) (*runtime.Value, *runtime.Error) {
		obj := runtime.NewObject()
		obj.SetProperty("name", runtime.NewString("Error"))
		message := ""
		if len(args) > 0 && args[0].Type != runtime.TypeNull {
			message = args[0].ToString()
		}
		obj.SetProperty("message", runtime.NewString(message))
		return obj, nil
	})
	v.Fn.IsConstructor = true
	return v
}
