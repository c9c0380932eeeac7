package interpreter

import (
	"math"
	"strings"
	"testing"

	"github.com/fadilhim/dartJSEngine/parser"
	"github.com/fadilhim/dartJSEngine/runtime"
)

func evalExpect(t *testing.T, source string) *runtime.Value {
	t.Helper()
	interp := New(nil)
	val, err := interp.Eval("test.js", source)
	if err != nil {
		t.Fatalf("Eval error for %q: %v", source, err)
	}
	return val
}

func evalExpectError(t *testing.T, source string, kind runtime.ErrorKind) *runtime.Error {
	t.Helper()
	interp := New(nil)
	_, err := interp.Eval("test.js", source)
	if err == nil {
		t.Fatalf("expected error for %q but got none", source)
	}
	rerr, ok := err.(*runtime.Error)
	if !ok {
		t.Fatalf("expected runtime error for %q, got %v", source, err)
	}
	if rerr.Kind != kind {
		t.Fatalf("expected %v for %q, got %v: %s", kind, source, rerr.Kind, rerr.Message)
	}
	return rerr
}

func expectNumber(t *testing.T, source string, expected float64) {
	t.Helper()
	val := evalExpect(t, source)
	if val.Type != runtime.TypeNumber {
		t.Fatalf("expected number for %q, got type=%v", source, val.Type)
	}
	if math.IsNaN(expected) {
		if !math.IsNaN(val.Number) {
			t.Fatalf("expected NaN for %q, got %v", source, val.Number)
		}
		return
	}
	if val.Number != expected {
		t.Fatalf("expected %v for %q, got %v", expected, source, val.Number)
	}
}

func expectString(t *testing.T, source string, expected string) {
	t.Helper()
	val := evalExpect(t, source)
	if val.Type != runtime.TypeString {
		t.Fatalf("expected string for %q, got type=%v", source, val.Type)
	}
	if val.Str != expected {
		t.Fatalf("expected %q for %q, got %q", expected, source, val.Str)
	}
}

func expectBool(t *testing.T, source string, expected bool) {
	t.Helper()
	val := evalExpect(t, source)
	if val.Type != runtime.TypeBoolean {
		t.Fatalf("expected boolean for %q, got type=%v", source, val.Type)
	}
	if val.Bool != expected {
		t.Fatalf("expected %v for %q, got %v", expected, source, val.Bool)
	}
}

func expectNull(t *testing.T, source string) {
	t.Helper()
	val := evalExpect(t, source)
	if val.Type != runtime.TypeNull {
		t.Fatalf("expected null for %q, got type=%v", source, val.Type)
	}
}

func TestArithmetic(t *testing.T) {
	expectNumber(t, "1 + 2;", 3)
	expectNumber(t, "7 - 10;", -3)
	expectNumber(t, "3 * 4;", 12)
	expectNumber(t, "10 / 4;", 2.5)
	expectNumber(t, "10 % 3;", 1)
	expectNumber(t, "1 + 2 * 3;", 7)
	expectNumber(t, "(1 + 2) * 3;", 9)
	// Two rounded IEEE additions, not one exactly-computed constant.
	expectNumber(t, "0.1 + 0.2;", 0.30000000000000004)
	expectNumber(t, "1 / 0;", math.Inf(1))
	expectNumber(t, "-1 / 0;", math.Inf(-1))
}

func TestNaNPropagation(t *testing.T) {
	expectNumber(t, "\"x\" - 1;", math.NaN())
	expectNumber(t, "1 * {};", math.NaN())
	expectNumber(t, "[1, 2] / 2;", math.NaN())
	expectNumber(t, "0 / 0;", math.NaN())
}

func TestStringConcatenation(t *testing.T) {
	expectString(t, "\"x\" + 1;", "x1")
	expectString(t, "1 + \"x\";", "1x")
	expectString(t, "\"a\" + \"b\";", "ab")
	// Numeric strings coerce, so + adds.
	expectNumber(t, "\"5\" + 1;", 6)
}

func TestBitwiseOperators(t *testing.T) {
	expectNumber(t, "6 & 3;", 2)
	expectNumber(t, "6 | 3;", 7)
	expectNumber(t, "6 ^ 3;", 5)
	expectNumber(t, "1 << 4;", 16)
	expectNumber(t, "16 >> 2;", 4)
	expectNumber(t, "~5;", -6)
}

func TestUnsignedShiftBehavesAsSignedShift(t *testing.T) {
	expectNumber(t, "-8 >>> 1;", -4)
	expectBool(t, "(-8 >>> 1) === (-8 >> 1);", true)
}

func TestRelationalOperators(t *testing.T) {
	expectBool(t, "1 < 2;", true)
	expectBool(t, "2 <= 2;", true)
	expectBool(t, "3 > 4;", false)
	expectBool(t, "4 >= 5;", false)
	expectBool(t, "\"10\" > 9;", true)
	// A NaN participant always compares false.
	expectBool(t, "\"x\" < 1;", false)
	expectBool(t, "1 >= \"x\";", false)
}

func TestStrictEquality(t *testing.T) {
	expectBool(t, "1 === 1;", true)
	expectBool(t, "1 === 2;", false)
	expectBool(t, "\"a\" === \"a\";", true)
	expectBool(t, "1 === \"1\";", false)
	expectBool(t, "null === null;", true)
	expectBool(t, "(0 / 0) === (0 / 0);", false)
	expectBool(t, "var a = {}; var b = {}; a === b;", false)
	expectBool(t, "var a = {}; var b = a; a === b;", true)
}

func TestLooseEqualityUnsupported(t *testing.T) {
	evalExpectError(t, "1 == 1;", runtime.ErrUnsupported)
}

func TestLogicalOperators(t *testing.T) {
	expectNumber(t, "1 && 2;", 2)
	expectNumber(t, "0 && 2;", 0)
	expectNumber(t, "1 || 2;", 1)
	expectNumber(t, "0 || 2;", 2)
	expectString(t, "\"\" || \"fallback\";", "fallback")
}

func TestConditionalShortCircuit(t *testing.T) {
	// Only the taken branch runs: the untaken branch would throw.
	expectNumber(t, "true ? 1 : missing();", 1)
	expectNumber(t, "false ? missing() : 2;", 2)
}

func TestUnaryOperators(t *testing.T) {
	expectBool(t, "!0;", true)
	expectBool(t, "!\"text\";", false)
	expectNumber(t, "+\"12\";", 12)
	expectNumber(t, "+{};", math.NaN())
	expectNumber(t, "-\"3\";", -3)
	expectNull(t, "void 0;")
	expectNull(t, "void \"anything\";")
}

func TestTypeof(t *testing.T) {
	expectString(t, "typeof 1;", "number")
	expectString(t, "typeof \"s\";", "string")
	expectString(t, "typeof true;", "boolean")
	expectString(t, "typeof {};", "object")
	expectString(t, "typeof [];", "object")
	expectString(t, "typeof function () {};", "function")
	expectString(t, "typeof null;", "undefined")
	expectString(t, "typeof undefined;", "undefined")
	// typeof never throws on an unresolved name.
	expectString(t, "typeof missing;", "undefined")
}

func TestVariableDeclarations(t *testing.T) {
	expectNumber(t, "var a = 1; a;", 1)
	expectNumber(t, "var a = 1, b = 2; a + b;", 3)
	expectNull(t, "var a; a;")
	expectNumber(t, "var a = 1; var a = 2; a;", 2)
}

func TestAssignment(t *testing.T) {
	expectNumber(t, "var a = 1; a = 5; a;", 5)
	expectNumber(t, "var a = 1; a += 2; a;", 3)
	expectNumber(t, "var a = 10; a -= 4; a;", 6)
	expectNumber(t, "var a = 3; a *= 3; a;", 9)
	expectNumber(t, "var a = 8; a <<= 1; a;", 16)
	expectString(t, "var s = \"a\"; s += \"b\"; s;", "ab")
	// Assignment is an expression yielding the assigned value.
	expectNumber(t, "var a; var b = (a = 4); b;", 4)
}

func TestAssignmentToUnresolvedNameGoesToGlobal(t *testing.T) {
	expectNumber(t, "fresh = 3; global.fresh;", 3)
	expectNumber(t, "fresh = 3; fresh;", 3)
}

func TestIndexAssignmentUnsupported(t *testing.T) {
	rerr := evalExpectError(t, "var a = [1]; a[0] = 2;", runtime.ErrReference)
	if !strings.Contains(rerr.Message, "Invalid left-hand side") {
		t.Fatalf("unexpected message: %s", rerr.Message)
	}
	evalExpectError(t, "1 = 2;", runtime.ErrReference)
}

func TestMemberAccess(t *testing.T) {
	expectNumber(t, "var o = {a: 1, b: 2}; o.a + o.b;", 3)
	expectNumber(t, "var o = {}; o.x = 7; o.x;", 7)
	expectNumber(t, "var o = {n: 1}; o.n += 4; o.n;", 5)
	expectNull(t, "var o = {}; o.missing;")
	expectNumber(t, "var o = {inner: {v: 9}}; o.inner.v;", 9)
}

func TestIndexAccess(t *testing.T) {
	expectNumber(t, "var a = [10, 20, 30]; a[1];", 20)
	expectNull(t, "var a = [10]; a[5];")
	expectNumber(t, "var a = [1, 2, 3]; a.length;", 3)
	expectNumber(t, "var o = {key: 4}; o[\"key\"];", 4)
	expectNumber(t, "\"hello\".length;", 5)
}

func TestDelete(t *testing.T) {
	expectBool(t, "var a = [1, 2, 3]; delete a[1];", true)
	expectNumber(t, "var a = [1, 2, 3]; delete a[1]; a.length;", 3)
	expectNull(t, "var a = [1, 2, 3]; delete a[1]; a[1];")
	expectNumber(t, "var a = [1, 2, 3]; delete a[1]; a[2];", 3)
	expectBool(t, "var o = {x: 1}; delete o.x;", true)
	expectNull(t, "var o = {x: 1}; delete o.x; o.x;")
	// Out-of-range index removal is still true.
	expectBool(t, "var a = [1]; delete a[10];", true)
	// Delete on a builtin is a no-op but still true.
	expectBool(t, "delete global.anything;", true)
}

func TestSequenceExpression(t *testing.T) {
	expectNumber(t, "var a = 0; (a = 1, a + 1);", 2)
	expectNumber(t, "(1, 2, 3);", 3)
}

func TestProgramResultIsLastExpressionStatement(t *testing.T) {
	expectNumber(t, "var a = 1; a + 1; var b = 9;", 2)
	expectNull(t, "var a = 1;")
}

func TestFunctionCalls(t *testing.T) {
	expectNumber(t, "var add = function (a, b) { return a + b; }; add(2, 3);", 5)
	expectNumber(t, "function add(a, b) { return a + b; } add(2, 3);", 5)
	expectNull(t, "var f = function () {}; f();")
	// Missing arguments bind to null.
	expectNull(t, "var f = function (a) { return a; }; f();")
	expectNumber(t, "(function (n) { return n * 2; })(21);", 42)
}

func TestArgumentsObject(t *testing.T) {
	expectNumber(t, "var f = function () { return arguments.length; }; f(1, 2, 3);", 3)
	expectNumber(t, "var f = function () { return arguments[1]; }; f(4, 5);", 5)
	// The closure is captured before the var binding exists, so the
	// body reaches the function through its own constant name.
	expectBool(t, "var f = function self() { return arguments.callee === self; }; f();", true)
}

func TestClosures(t *testing.T) {
	expectNumber(t, `
		var make = function (n) { return function () { return n; }; };
		var two = make(2);
		var nine = make(9);
		two() + nine();
	`, 11)
	expectNumber(t, `
		var makeCounter = function () {
			var count = 0;
			return function () { count = count + 1; return count; };
		};
		var tick = makeCounter();
		tick();
		tick();
		tick();
	`, 3)
}

func TestClosuresAreIndependent(t *testing.T) {
	expectNumber(t, `
		var makeCounter = function () {
			var count = 0;
			return function () { count += 1; return count; };
		};
		var a = makeCounter();
		var b = makeCounter();
		a();
		a();
		b();
	`, 1)
}

func TestRecursiveNamedFunctionExpression(t *testing.T) {
	expectNumber(t, `
		var f = function fact(n) { return n <= 1 ? 1 : n * fact(n - 1); };
		f(5);
	`, 120)
}

func TestNamedFunctionNameIsConstant(t *testing.T) {
	evalExpectError(t, "function g() {} g = 2;", runtime.ErrType)
}

func TestAnonymousFunctionNamingInference(t *testing.T) {
	expectString(t, "var handler = function () {}; handler.name;", "handler")
}

func TestThisBinding(t *testing.T) {
	expectNumber(t, "var o = {x: 7, f: function () { return this.x; }}; o.f();", 7)
	// A plain call inherits the caller's this (the global object).
	expectBool(t, "var f = function () { return this === global; }; f();", true)
	expectBool(t, "this === global;", true)
}

func TestNewExpression(t *testing.T) {
	expectString(t, `
		var Point = function (x) { this.x = x; };
		var p = new Point("here");
		typeof p;
	`, "object")
	expectNumber(t, `
		var Point = function (x) { this.x = x; };
		var p = new Point(3);
		p.x;
	`, 3)
	// The fresh instance wins over the body's explicit return.
	expectNumber(t, `
		var C = function () { this.v = 1; return 42; };
		var c = new C();
		c.v;
	`, 1)
	expectBool(t, `
		var a = new (function () {})();
		var b = new (function () {})();
		a === b;
	`, false)
}

func TestReturnExitsOnlyItsOwnBlock(t *testing.T) {
	// A return nested in an inner block ends that block, not the
	// function body.
	expectNumber(t, `
		var f = function () {
			{ return 1; }
			return 2;
		};
		f();
	`, 2)
	expectNull(t, `
		var f = function () {
			{ return 1; }
		};
		f();
	`)
}

func TestBlockSiblingStatementsSeeEarlierDeclarations(t *testing.T) {
	expectNumber(t, `
		var f = function () {
			var a = 1;
			var b = a + 1;
			return b;
		};
		f();
	`, 2)
}

func TestReferenceErrors(t *testing.T) {
	rerr := evalExpectError(t, "missing;", runtime.ErrReference)
	if !strings.Contains(rerr.Message, "missing is not defined") {
		t.Fatalf("unexpected message: %s", rerr.Message)
	}
}

func TestTypeErrors(t *testing.T) {
	rerr := evalExpectError(t, "var x = 1; x();", runtime.ErrType)
	if !strings.Contains(rerr.Message, "x is not a function") {
		t.Fatalf("unexpected message: %s", rerr.Message)
	}
	rerr = evalExpectError(t, "var x = 1; new x();", runtime.ErrType)
	if !strings.Contains(rerr.Message, "x is not a constructor") {
		t.Fatalf("unexpected message: %s", rerr.Message)
	}
	evalExpectError(t, "null.prop;", runtime.ErrType)
}

func TestErrorTraceReflectsThrowSite(t *testing.T) {
	rerr := evalExpectError(t, `
		var inner = function () { missing; };
		var outer = function () { return inner(); };
		outer();
	`, runtime.ErrReference)
	var names []string
	for _, f := range rerr.Trace {
		names = append(names, f.Name)
	}
	joined := strings.Join(names, " ")
	if !strings.Contains(joined, "outer") || !strings.Contains(joined, "inner") {
		t.Fatalf("trace missing call frames: %v", names)
	}
}

func TestCallStackBalancedAfterError(t *testing.T) {
	interp := New(nil)
	p := parser.New("test.js", "var f = function () { var g = function () { missing; }; return g(); }; f();")
	program, errs := p.ParseProgram()
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}

	stack := runtime.NewCallStack()
	ctx := runtime.NewContext(interp.GlobalScope(), stack)
	_, rerr := interp.EvaluateProgram(program, ctx)
	if rerr == nil {
		t.Fatal("expected error")
	}
	// Every frame pushed on the way down was popped on the way out,
	// even though the error unwound through two call levels.
	if stack.Depth() != 0 {
		t.Fatalf("stack depth = %d after error", stack.Depth())
	}
	if len(rerr.Trace) == 0 {
		t.Fatal("error should carry the trace captured at the throw")
	}

	// The same context can evaluate again cleanly.
	p = parser.New("test.js", "1 + 1;")
	program, errs = p.ParseProgram()
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	val, rerr := interp.EvaluateProgram(program, ctx)
	if rerr != nil {
		t.Fatalf("second eval failed: %v", rerr)
	}
	if val.Number != 2 {
		t.Fatalf("expected 2, got %v", val.Number)
	}
}

func TestInvoke(t *testing.T) {
	interp := New(nil)
	fn, err := interp.Eval("test.js", "var double = function (n) { return n * 2; }; double;")
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	result, rerr := interp.Invoke(fn, nil, []*runtime.Value{runtime.NewNumber(21)}, nil)
	if rerr != nil {
		t.Fatalf("Invoke error: %v", rerr)
	}
	if result.Type != runtime.TypeNumber || result.Number != 42 {
		t.Fatalf("expected 42, got %v", result)
	}

	if _, rerr = interp.Invoke(runtime.NewNumber(1), nil, nil, nil); rerr == nil {
		t.Fatal("expected type error invoking a number")
	}
}

func TestGlobalBinding(t *testing.T) {
	expectBool(t, "global === global;", true)
	expectNumber(t, "global.answer = 42; answer;", 42)
}

func TestStatePersistsAcrossEvals(t *testing.T) {
	interp := New(nil)
	if _, err := interp.Eval("a.js", "var shared = 10;"); err != nil {
		t.Fatalf("first eval: %v", err)
	}
	val, err := interp.Eval("b.js", "shared + 1;")
	if err != nil {
		t.Fatalf("second eval: %v", err)
	}
	if val.Number != 11 {
		t.Fatalf("expected 11, got %v", val.Number)
	}
}
