package builtins

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/fadilhim/dartJSEngine/runtime"
)

func jsonObject() *runtime.Value {
	obj := runtime.NewObject()
	obj.Builtin = true
	obj.SetProperty("stringify", native("stringify", func(this *runtime.Value, args []*runtime.Value, ctx *runtime.Context) (*runtime.Value, *runtime.Error) {
		s, ok := stringify(arg(args, 0))
		if !ok {
			return runtime.Null, nil
		}
		return runtime.NewString(s), nil
	}))
	return obj
}

// stringify serialises a value; ok is false for values JSON omits
// (functions).
func stringify(v *runtime.Value) (string, bool) {
	switch v.Type {
	case runtime.TypeNull, runtime.TypeEmptySlot:
		return "null", true
	case runtime.TypeBoolean:
		if v.Bool {
			return "true", true
		}
		return "false", true
	case runtime.TypeNumber:
		if math.IsNaN(v.Number) || math.IsInf(v.Number, 0) {
			return "null", true
		}
		return runtime.FormatNumber(v.Number), true
	case runtime.TypeString:
		return strconv.Quote(v.Str), true
	case runtime.TypeArray, runtime.TypeArguments:
		parts := make([]string, len(v.Elements))
		for i, el := range v.Elements {
			s, ok := stringify(el)
			if !ok {
				s = "null"
			}
			parts[i] = s
		}
		return "[" + strings.Join(parts, ",") + "]", true
	case runtime.TypeObject:
		keys := make([]string, 0, len(v.Properties))
		for k := range v.Properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			s, ok := stringify(v.Properties[k])
			if !ok {
				continue
			}
			parts = append(parts, strconv.Quote(k)+":"+s)
		}
		return "{" + strings.Join(parts, ",") + "}", true
	default:
		return "", false
	}
}
