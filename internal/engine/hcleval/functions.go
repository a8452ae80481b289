package hcleval

import (
	"fmt"

	"github.com/vk/pysgo/internal/errs"
	"github.com/vk/pysgo/internal/record"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Library is a named set of functions. A module imported in namespaced mode
// is bound as a Library and its functions are called as "module::name".
type Library map[string]function.Function

// baseFunctions is the fixed environment available without any import.
// Imported symbols shadow these names.
func baseFunctions() map[string]function.Function {
	return map[string]function.Function{
		"get":      GetFunc,
		"len":      stdlib.LengthFunc,
		"length":   stdlib.LengthFunc,
		"tostring": stdlib.MakeToFunc(cty.String),
		"tonumber": stdlib.MakeToFunc(cty.Number),
		"format":   stdlib.FormatFunc,
		"join":     stdlib.JoinFunc,
		"split":    stdlib.SplitFunc,
	}
}

// GetFunc indexes a list or tuple with the same rules as the python dialect's
// args subscript: a number (negative counts from the end), an object with
// optional start, stop and step attributes for a span, or a list of keys
// resolved in key order.
var GetFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "collection", Type: cty.DynamicPseudoType},
		{Name: "key", Type: cty.DynamicPseudoType},
	},
	Type: function.StaticReturnType(cty.DynamicPseudoType),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		coll, keyVal := args[0], args[1]
		ty := coll.Type()
		if !(ty.IsListType() || ty.IsTupleType() || ty.IsSetType()) {
			return cty.NilVal, function.NewArgErrorf(0, "collection must be a list or tuple, not %s", ty.FriendlyName())
		}
		key, err := ctyKey(keyVal)
		if err != nil {
			return cty.NilVal, err
		}
		picked, err := record.Pick(coll.AsValueSlice(), key)
		if err != nil {
			return cty.NilVal, err
		}
		return fromPicked(picked), nil
	},
})

func ctyKey(v cty.Value) (record.Key, error) {
	if v.IsNull() {
		return nil, errs.Wrapf(errs.ErrEvaluation, "index key must not be null")
	}
	ty := v.Type()
	switch {
	case ty == cty.Number:
		var i int
		if err := gocty.FromCtyValue(v, &i); err != nil {
			return nil, errs.Wrapf(errs.ErrEvaluation, "index key must be a whole number: %v", err)
		}
		return record.Index(i), nil
	case ty.IsObjectType():
		var span record.Span
		for name, dst := range map[string]**int{"start": &span.Start, "stop": &span.Stop, "step": &span.Step} {
			if !ty.HasAttribute(name) {
				continue
			}
			attr := v.GetAttr(name)
			if attr.IsNull() {
				continue
			}
			var i int
			if err := gocty.FromCtyValue(attr, &i); err != nil {
				return nil, errs.Wrapf(errs.ErrEvaluation, "span %s must be a whole number: %v", name, err)
			}
			*dst = &i
		}
		return span, nil
	case ty.IsListType() || ty.IsTupleType():
		var keys record.Keys
		for _, item := range v.AsValueSlice() {
			k, err := ctyKey(item)
			if err != nil {
				return nil, err
			}
			keys = append(keys, k)
		}
		return keys, nil
	default:
		return nil, errs.Wrapf(errs.ErrEvaluation, "unsupported index key of type %s", ty.FriendlyName())
	}
}

// fromPicked converts a record.Pick result over []cty.Value back to a value.
func fromPicked(v any) cty.Value {
	switch v := v.(type) {
	case cty.Value:
		return v
	case []cty.Value:
		if len(v) == 0 {
			return cty.EmptyTupleVal
		}
		return cty.TupleVal(v)
	case []any:
		vals := make([]cty.Value, len(v))
		for i, item := range v {
			vals[i] = fromPicked(item)
		}
		if len(vals) == 0 {
			return cty.EmptyTupleVal
		}
		return cty.TupleVal(vals)
	default:
		panic(fmt.Sprintf("hcleval: unexpected pick result %T", v))
	}
}
