package builtins

import (
	"math"
	"strconv"
	"strings"

	"github.com/fadilhim/dartJSEngine/runtime"
)

func builtinParseInt(this *runtime.Value, args []*runtime.Value, ctx *runtime.Context) (*runtime.Value, *runtime.Error) {
	s := strings.TrimSpace(arg(args, 0).ToString())
	radix := 0
	if len(args) > 1 {
		if r, ok := args[1].ToNumber(); ok && r != 0 {
			radix = int(r)
		}
	}
	if radix != 0 && (radix < 2 || radix > 36) {
		return runtime.NewNumber(math.NaN()), nil
	}

	sign := 1.0
	if strings.HasPrefix(s, "-") {
		sign = -1
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	// A 0x prefix selects hex when the radix is 16 or unspecified.
	if (radix == 0 || radix == 16) && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
		s = s[2:]
		radix = 16
	}
	if radix == 0 {
		radix = 10
	}

	end := 0
	for end < len(s) && digitValue(s[end]) < radix {
		end++
	}
	if end == 0 {
		return runtime.NewNumber(math.NaN()), nil
	}
	n, err := strconv.ParseInt(s[:end], radix, 64)
	if err != nil {
		return runtime.NewNumber(math.NaN()), nil
	}
	return runtime.NewNumber(sign * float64(n)), nil
}

func builtinParseFloat(this *runtime.Value, args []*runtime.Value, ctx *runtime.Context) (*runtime.Value, *runtime.Error) {
	s := strings.TrimSpace(arg(args, 0).ToString())
	end := len(s)
	for end > 0 {
		if _, err := strconv.ParseFloat(s[:end], 64); err == nil {
			break
		}
		end--
	}
	if end == 0 {
		return runtime.NewNumber(math.NaN()), nil
	}
	n, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return runtime.NewNumber(math.NaN()), nil
	}
	return runtime.NewNumber(n), nil
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	default:
		return 99
	}
}
