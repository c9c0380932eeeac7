package runtime

import (
	"math"
	"strconv"
	"strings"
)

// ValueType represents the type of a runtime value.
type ValueType int

const (
	// TypeNull doubles as the undefined value: the engine has a single
	// "no value" variant and typeof reports it as "undefined".
	TypeNull ValueType = iota
	TypeBoolean
	TypeNumber
	TypeString
	TypeArray
	TypeObject
	TypeFunction
	TypeArguments
	// TypeEmptySlot marks a deleted sparse-array index. It only ever
	// appears inside an array's element list, never as an evaluation
	// result.
	TypeEmptySlot
)

// TypeTag returns the typeof tag for the type.
func (t ValueType) TypeTag() string {
	switch t {
	case TypeNull:
		return "undefined"
	case TypeBoolean:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeArray, TypeObject, TypeArguments:
		return "object"
	case TypeFunction:
		return "function"
	default:
		return "undefined"
	}
}

func (t ValueType) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBoolean:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	case TypeFunction:
		return "function"
	case TypeArguments:
		return "arguments"
	case TypeEmptySlot:
		return "empty"
	default:
		return "unknown"
	}
}

// Caller lets native property accessors and functions re-enter
// evaluation. The interpreter implements it.
type Caller interface {
	Invoke(fn *Value, this *Value, args []*Value, ctx *Context) (*Value, *Error)
}

// NativeFunc is the Go signature for a callable body. User-defined
// functions get one built by the evaluator; intrinsics supply their own.
type NativeFunc func(this *Value, args []*Value, ctx *Context) (*Value, *Error)

// FunctionData holds the callable part of a function value.
type FunctionData struct {
	Name string
	File string
	Line int
	// Declared is set for functions with a source declaration site.
	// Only declared functions contribute call-stack frames.
	Declared  bool
	Params    []string
	Closure   *Scope
	This      *Value
	Call      NativeFunc
	Anonymous bool
	// IsConstructor marks callables that manage their own instance
	// allocation under new.
	IsConstructor bool
}

// Value is the single tagged representation of every runtime value.
type Value struct {
	Type       ValueType
	Bool       bool
	Number     float64
	Str        string
	Elements   []*Value
	Properties map[string]*Value
	Fn         *FunctionData
	Callee     *Value
	// Builtin marks intrinsic values; delete over them is a no-op.
	Builtin bool
}

var (
	Null      = &Value{Type: TypeNull}
	True      = &Value{Type: TypeBoolean, Bool: true}
	False     = &Value{Type: TypeBoolean, Bool: false}
	EmptySlot = &Value{Type: TypeEmptySlot}
)

func NewNumber(n float64) *Value {
	return &Value{Type: TypeNumber, Number: n}
}

func NewString(s string) *Value {
	return &Value{Type: TypeString, Str: s}
}

func NewBool(b bool) *Value {
	if b {
		return True
	}
	return False
}

func NewArray(elements []*Value) *Value {
	return &Value{Type: TypeArray, Elements: elements, Properties: map[string]*Value{}}
}

func NewObject() *Value {
	return &Value{Type: TypeObject, Properties: map[string]*Value{}}
}

func NewFunction(fn *FunctionData) *Value {
	v := &Value{Type: TypeFunction, Fn: fn, Properties: map[string]*Value{}}
	v.Properties["name"] = NewString(fn.Name)
	v.Properties["length"] = NewNumber(float64(len(fn.Params)))
	return v
}

// NewArguments builds the per-call arguments pseudo-array tagged with
// the invoked function.
func NewArguments(callee *Value, args []*Value) *Value {
	return &Value{Type: TypeArguments, Elements: args, Callee: callee, Properties: map[string]*Value{}}
}

// ToBoolean reports the value's truthiness.
func (v *Value) ToBoolean() bool {
	switch v.Type {
	case TypeNull, TypeEmptySlot:
		return false
	case TypeBoolean:
		return v.Bool
	case TypeNumber:
		return v.Number != 0 && !math.IsNaN(v.Number)
	case TypeString:
		return len(v.Str) > 0
	default:
		return true
	}
}

// ToNumber attempts numeric coercion. The second result reports whether
// the value was coercible; non-coercible operands route + to string
// concatenation.
func (v *Value) ToNumber() (float64, bool) {
	switch v.Type {
	case TypeNumber:
		return v.Number, true
	case TypeBoolean:
		if v.Bool {
			return 1, true
		}
		return 0, true
	case TypeString:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return 0, true
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN(), false
		}
		return n, true
	case TypeNull:
		return 0, true
	default:
		return math.NaN(), false
	}
}

// ToString renders the value's string representation.
func (v *Value) ToString() string {
	switch v.Type {
	case TypeNull:
		return "null"
	case TypeEmptySlot:
		return ""
	case TypeBoolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case TypeNumber:
		return FormatNumber(v.Number)
	case TypeString:
		return v.Str
	case TypeArray, TypeArguments:
		parts := make([]string, len(v.Elements))
		for i, el := range v.Elements {
			if el == nil || el.Type == TypeEmptySlot || el.Type == TypeNull {
				parts[i] = ""
				continue
			}
			parts[i] = el.ToString()
		}
		return strings.Join(parts, ",")
	case TypeObject:
		return "[object Object]"
	case TypeFunction:
		name := ""
		if v.Fn != nil {
			name = v.Fn.Name
		}
		return "function " + name + "()"
	default:
		return "undefined"
	}
}

// FormatNumber renders a float the way script output expects.
func FormatNumber(n float64) string {
	if math.IsNaN(n) {
		return "NaN"
	}
	if math.IsInf(n, 1) {
		return "Infinity"
	}
	if math.IsInf(n, -1) {
		return "-Infinity"
	}
	if n == 0 {
		return "0"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// StrictEquals implements === : value identity for primitives, reference
// identity for arrays, objects, and functions. NaN is not equal to NaN.
func StrictEquals(a, b *Value) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case TypeNull, TypeEmptySlot:
		return true
	case TypeBoolean:
		return a.Bool == b.Bool
	case TypeNumber:
		return a.Number == b.Number
	case TypeString:
		return a.Str == b.Str
	default:
		return a == b
	}
}

// GetProperty is the property-get capability. caller lets a native
// accessor re-enter evaluation; the current variants do not need it but
// the surface keeps it so value internals stay free to change.
func (v *Value) GetProperty(name string, caller Caller, ctx *Context) (*Value, *Error) {
	switch v.Type {
	case TypeNull:
		return nil, ctx.Stack.Error(ErrType, "Cannot read property '"+name+"' of null")
	case TypeString:
		if name == "length" {
			return NewNumber(float64(len(v.Str))), nil
		}
		return Null, nil
	case TypeArray, TypeArguments:
		if name == "length" {
			return NewNumber(float64(len(v.Elements))), nil
		}
		if v.Type == TypeArguments && name == "callee" {
			if v.Callee != nil {
				return v.Callee, nil
			}
			return Null, nil
		}
		if idx, ok := parseIndex(name); ok {
			return v.element(idx), nil
		}
		if p, ok := v.Properties[name]; ok {
			return p, nil
		}
		return Null, nil
	case TypeObject, TypeFunction:
		if p, ok := v.Properties[name]; ok {
			return p, nil
		}
		return Null, nil
	default:
		return Null, nil
	}
}

// GetIndex is the bracket-access lookup: numeric indices read array
// elements, everything else falls back to direct property lookup.
func (v *Value) GetIndex(index *Value, caller Caller, ctx *Context) (*Value, *Error) {
	if index.Type == TypeNumber && (v.Type == TypeArray || v.Type == TypeArguments) {
		idx := int(index.Number)
		if float64(idx) == index.Number && idx >= 0 {
			return v.element(idx), nil
		}
		return Null, nil
	}
	return v.GetProperty(index.ToString(), caller, ctx)
}

func (v *Value) element(idx int) *Value {
	if idx < 0 || idx >= len(v.Elements) {
		return Null
	}
	el := v.Elements[idx]
	if el == nil || el.Type == TypeEmptySlot {
		return Null
	}
	return el
}

// SetProperty is the property-set capability. Setting on primitives is
// a silent no-op.
func (v *Value) SetProperty(name string, value *Value) {
	switch v.Type {
	case TypeArray, TypeArguments:
		if idx, ok := parseIndex(name); ok {
			v.setElement(idx, value)
			return
		}
		v.ensureProperties()
		v.Properties[name] = value
	case TypeObject, TypeFunction:
		v.ensureProperties()
		v.Properties[name] = value
	}
}

func (v *Value) setElement(idx int, value *Value) {
	for len(v.Elements) <= idx {
		v.Elements = append(v.Elements, EmptySlot)
	}
	v.Elements[idx] = value
}

// RemoveProperty is the property-removal capability used by delete.
// Builtin values refuse removal.
func (v *Value) RemoveProperty(name string) {
	if v.Builtin {
		return
	}
	switch v.Type {
	case TypeArray, TypeArguments:
		if idx, ok := parseIndex(name); ok {
			if idx < len(v.Elements) {
				v.Elements[idx] = EmptySlot
			}
			return
		}
		delete(v.Properties, name)
	case TypeObject, TypeFunction:
		delete(v.Properties, name)
	}
}

// RemoveIndex deletes an array index in place: the slot becomes empty
// and length is unchanged. Reports whether the index was handled as an
// array element.
func (v *Value) RemoveIndex(index *Value) bool {
	if (v.Type == TypeArray || v.Type == TypeArguments) && index.Type == TypeNumber {
		idx := int(index.Number)
		if float64(idx) == index.Number && idx >= 0 && idx < len(v.Elements) {
			v.Elements[idx] = EmptySlot
			return true
		}
	}
	return false
}

func (v *Value) ensureProperties() {
	if v.Properties == nil {
		v.Properties = map[string]*Value{}
	}
}

func parseIndex(name string) (int, bool) {
	if name == "" {
		return 0, false
	}
	for i := 0; i < len(name); i++ {
		if name[i] < '0' || name[i] > '9' {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(name)
	if err != nil {
		return 0, false
	}
	return idx, true
}
