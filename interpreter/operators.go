package interpreter

import (
	"math"

	"github.com/fadilhim/dartJSEngine/runtime"
)

// applyBinary dispatches a binary operator over two already-evaluated
// operands. Logical operators here implement value selection only; the
// caller has already evaluated both sides.
func (i *Interpreter) applyBinary(op string, left, right *runtime.Value, ctx *runtime.Context) (*runtime.Value, *runtime.Error) {
	switch op {
	case "==":
		return nil, ctx.Stack.Error(runtime.ErrUnsupported, "loose equality (==) is not supported, use ===")
	case "===":
		return runtime.NewBool(runtime.StrictEquals(left, right)), nil
	case "&&":
		if !left.ToBoolean() {
			return left, nil
		}
		return right, nil
	case "||":
		if left.ToBoolean() {
			return left, nil
		}
		return right, nil
	case "<", "<=", ">", ">=":
		ln, lok := left.ToNumber()
		rn, rok := right.ToNumber()
		if !lok || !rok || math.IsNaN(ln) || math.IsNaN(rn) {
			return runtime.False, nil
		}
		switch op {
		case "<":
			return runtime.NewBool(ln < rn), nil
		case "<=":
			return runtime.NewBool(ln <= rn), nil
		case ">":
			return runtime.NewBool(ln > rn), nil
		default:
			return runtime.NewBool(ln >= rn), nil
		}
	default:
		return i.applyNumericBinary(op, left, right, ctx)
	}
}

// applyNumericBinary implements the arithmetic, bitwise, and string
// concatenation operators. + concatenates when either operand is not
// numerically coercible; every other operator propagates NaN instead of
// failing.
func (i *Interpreter) applyNumericBinary(op string, left, right *runtime.Value, ctx *runtime.Context) (*runtime.Value, *runtime.Error) {
	ln, lok := left.ToNumber()
	rn, rok := right.ToNumber()

	if op == "+" {
		if !lok || !rok {
			return runtime.NewString(left.ToString() + right.ToString()), nil
		}
		return runtime.NewNumber(ln + rn), nil
	}

	if !lok || !rok {
		return runtime.NewNumber(math.NaN()), nil
	}

	switch op {
	case "-":
		return runtime.NewNumber(ln - rn), nil
	case "*":
		return runtime.NewNumber(ln * rn), nil
	case "/":
		return runtime.NewNumber(ln / rn), nil
	case "%":
		return runtime.NewNumber(math.Mod(ln, rn)), nil
	case "<<", ">>", ">>>", "&", "|", "^":
		// >>> currently behaves as >>, not a zero-fill shift.
		if math.IsNaN(ln) || math.IsInf(ln, 0) || math.IsNaN(rn) || math.IsInf(rn, 0) {
			return runtime.NewNumber(math.NaN()), nil
		}
		li, ri := int64(ln), int64(rn)
		switch op {
		case "<<":
			return runtime.NewNumber(float64(li << (uint64(ri) & 31))), nil
		case ">>", ">>>":
			return runtime.NewNumber(float64(li >> (uint64(ri) & 31))), nil
		case "&":
			return runtime.NewNumber(float64(li & ri)), nil
		case "|":
			return runtime.NewNumber(float64(li | ri)), nil
		default:
			return runtime.NewNumber(float64(li ^ ri)), nil
		}
	default:
		return nil, ctx.Stack.Error(runtime.ErrInternal, "unknown binary operator: "+op)
	}
}
