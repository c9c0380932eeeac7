package interpreter

import (
	"fmt"
	"math"

	"github.com/fadilhim/dartJSEngine/ast"
	"github.com/fadilhim/dartJSEngine/runtime"
)

func (i *Interpreter) evalExpression(expr ast.Expression, ctx *runtime.Context) (*runtime.Value, *runtime.Error) {
	switch node := expr.(type) {
	case *ast.Identifier:
		return i.resolveName(node.Name, ctx)

	case *ast.NumberLiteral:
		return runtime.NewNumber(node.Value), nil

	case *ast.StringLiteral:
		return runtime.NewString(node.Value), nil

	case *ast.BooleanLiteral:
		return runtime.NewBool(node.Value), nil

	case *ast.NullLiteral:
		return runtime.Null, nil

	case *ast.ThisExpression:
		return ctx.Scope.This(), nil

	case *ast.ArrayLiteral:
		elements := make([]*runtime.Value, 0, len(node.Elements))
		for _, el := range node.Elements {
			v, err := i.evalExpression(el, ctx)
			if err != nil {
				return nil, err
			}
			elements = append(elements, v)
		}
		return runtime.NewArray(elements), nil

	case *ast.ObjectLiteral:
		obj := runtime.NewObject()
		for _, prop := range node.Properties {
			v, err := i.evalExpression(prop.Value, ctx)
			if err != nil {
				return nil, err
			}
			obj.SetProperty(prop.Key, v)
		}
		return obj, nil

	case *ast.FunctionLiteral:
		return i.evalFunctionNode(node, ctx)

	case *ast.ConditionalExpression:
		test, err := i.evalExpression(node.Test, ctx)
		if err != nil {
			return nil, err
		}
		if test.ToBoolean() {
			return i.evalExpression(node.Consequent, ctx)
		}
		return i.evalExpression(node.Alternate, ctx)

	case *ast.MemberExpression:
		obj, err := i.evalExpression(node.Object, ctx)
		if err != nil {
			return nil, err
		}
		return obj.GetProperty(node.Property, i, ctx)

	case *ast.IndexExpression:
		obj, err := i.evalExpression(node.Object, ctx)
		if err != nil {
			return nil, err
		}
		index, err := i.evalExpression(node.Index, ctx)
		if err != nil {
			return nil, err
		}
		return obj.GetIndex(index, i, ctx)

	case *ast.CallExpression:
		return i.evalCall(node, ctx)

	case *ast.NewExpression:
		return i.evalNew(node, ctx)

	case *ast.BinaryExpression:
		left, err := i.evalExpression(node.Left, ctx)
		if err != nil {
			return nil, err
		}
		right, err := i.evalExpression(node.Right, ctx)
		if err != nil {
			return nil, err
		}
		return i.applyBinary(node.Operator, left, right, ctx)

	case *ast.AssignmentExpression:
		return i.evalAssignment(node, ctx)

	case *ast.SequenceExpression:
		result := runtime.Null
		for _, sub := range node.Expressions {
			v, err := i.evalExpression(sub, ctx)
			if err != nil {
				return nil, err
			}
			result = v
		}
		return result, nil

	case *ast.UnaryExpression:
		return i.evalUnary(node, ctx)

	default:
		return nil, ctx.Stack.Error(runtime.ErrUnsupported, fmt.Sprintf("unsupported expression: %T", expr))
	}
}

// resolveName walks the scope chain, then falls back to the global
// object's own properties before failing.
func (i *Interpreter) resolveName(name string, ctx *runtime.Context) (*runtime.Value, *runtime.Error) {
	if name == "undefined" {
		return runtime.Null, nil
	}
	if v, ok := ctx.Scope.Resolve(name); ok {
		return v, nil
	}
	if v, ok := i.globalObject.Properties[name]; ok {
		return v, nil
	}
	return nil, ctx.Stack.Error(runtime.ErrReference, name+" is not defined")
}

// evalAssignment handles = and the compound forms. Valid targets are a
// name reference or a member access; a bracket-index target is not
// supported.
func (i *Interpreter) evalAssignment(node *ast.AssignmentExpression, ctx *runtime.Context) (*runtime.Value, *runtime.Error) {
	switch target := node.Left.(type) {
	case *ast.Identifier:
		var value *runtime.Value
		if node.Operator == "=" {
			v, err := i.evalExpression(node.Right, ctx)
			if err != nil {
				return nil, err
			}
			value = v
		} else {
			current, err := i.resolveName(target.Name, ctx)
			if err != nil {
				return nil, err
			}
			right, rerr := i.evalExpression(node.Right, ctx)
			if rerr != nil {
				return nil, rerr
			}
			v, berr := i.applyBinary(compoundOp(node.Operator), current, right, ctx)
			if berr != nil {
				return nil, berr
			}
			value = v
		}
		switch ctx.Scope.Assign(target.Name, value) {
		case nil:
			return value, nil
		case runtime.ErrConstant:
			return nil, ctx.Stack.Error(runtime.ErrType, "Assignment to constant variable '"+target.Name+"'")
		default:
			// An unresolved name assigns through to the global object.
			i.globalObject.SetProperty(target.Name, value)
			return value, nil
		}

	case *ast.MemberExpression:
		obj, err := i.evalExpression(target.Object, ctx)
		if err != nil {
			return nil, err
		}
		var value *runtime.Value
		if node.Operator == "=" {
			v, verr := i.evalExpression(node.Right, ctx)
			if verr != nil {
				return nil, verr
			}
			value = v
		} else {
			current, gerr := obj.GetProperty(target.Property, i, ctx)
			if gerr != nil {
				return nil, gerr
			}
			right, rerr := i.evalExpression(node.Right, ctx)
			if rerr != nil {
				return nil, rerr
			}
			v, berr := i.applyBinary(compoundOp(node.Operator), current, right, ctx)
			if berr != nil {
				return nil, berr
			}
			value = v
		}
		obj.SetProperty(target.Property, value)
		return value, nil

	default:
		return nil, ctx.Stack.Error(runtime.ErrReference, "Invalid left-hand side in assignment")
	}
}

// compoundOp strips the trailing = from a compound assignment operator.
func compoundOp(op string) string {
	return op[:len(op)-1]
}

func (i *Interpreter) evalUnary(node *ast.UnaryExpression, ctx *runtime.Context) (*runtime.Value, *runtime.Error) {
	if node.Operator == "delete" {
		return i.evalDelete(node.Operand, ctx)
	}
	if node.Operator == "typeof" {
		// typeof never throws on an unresolved name.
		if ident, ok := node.Operand.(*ast.Identifier); ok {
			if _, resolved := ctx.Scope.Resolve(ident.Name); !resolved {
				if _, global := i.globalObject.Properties[ident.Name]; !global {
					return runtime.NewString("undefined"), nil
				}
			}
		}
	}

	operand, err := i.evalExpression(node.Operand, ctx)
	if err != nil {
		return nil, err
	}

	switch node.Operator {
	case "!":
		return runtime.NewBool(!operand.ToBoolean()), nil
	case "+":
		n, ok := operand.ToNumber()
		if !ok {
			return runtime.NewNumber(math.NaN()), nil
		}
		return runtime.NewNumber(n), nil
	case "-":
		n, ok := operand.ToNumber()
		if !ok {
			return runtime.NewNumber(math.NaN()), nil
		}
		return runtime.NewNumber(-n), nil
	case "~":
		n, ok := operand.ToNumber()
		if !ok {
			return runtime.NewNumber(math.NaN()), nil
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return runtime.NewNumber(n), nil
		}
		return runtime.NewNumber(float64(^int64(n))), nil
	case "typeof":
		return runtime.NewString(operand.Type.TypeTag()), nil
	case "void":
		return runtime.Null, nil
	default:
		return nil, ctx.Stack.Error(runtime.ErrUnsupported, "unsupported unary operator: "+node.Operator)
	}
}

// evalDelete removes an array slot or a property. It always yields true
// whether or not a removal happened.
func (i *Interpreter) evalDelete(operand ast.Expression, ctx *runtime.Context) (*runtime.Value, *runtime.Error) {
	switch target := operand.(type) {
	case *ast.IndexExpression:
		obj, err := i.evalExpression(target.Object, ctx)
		if err != nil {
			return nil, err
		}
		index, err := i.evalExpression(target.Index, ctx)
		if err != nil {
			return nil, err
		}
		if !obj.RemoveIndex(index) {
			obj.RemoveProperty(index.ToString())
		}
		return runtime.True, nil

	case *ast.MemberExpression:
		obj, err := i.evalExpression(target.Object, ctx)
		if err != nil {
			return nil, err
		}
		obj.RemoveProperty(target.Property)
		return runtime.True, nil

	default:
		if _, err := i.evalExpression(operand, ctx); err != nil {
			return nil, err
		}
		return runtime.True, nil
	}
}
