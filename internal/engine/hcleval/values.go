package hcleval

import (
	"github.com/vk/pysgo/internal/errs"
	"github.com/vk/pysgo/internal/record"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// toCty converts a resolved binding into a variable value.
func toCty(name string, v any) (cty.Value, error) {
	switch v := v.(type) {
	case cty.Value:
		return v, nil
	case string:
		return cty.StringVal(v), nil
	case record.TokenSequence:
		return tokensVal(v), nil
	case function.Function:
		return cty.NilVal, errs.Wrapf(errs.ErrEvaluation, "%q is a function; call it as %s(...)", name, name)
	case Library:
		return cty.NilVal, errs.Wrapf(errs.ErrEvaluation, "%q is a module; call its functions as %s::name(...)", name, name)
	default:
		return cty.NilVal, errs.Wrapf(errs.ErrEvaluation, "%q has unsupported type %T", name, v)
	}
}

func tokensVal(seq record.TokenSequence) cty.Value {
	toks := seq.Tokens()
	if len(toks) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(toks))
	for i, tok := range toks {
		vals[i] = cty.StringVal(tok)
	}
	return cty.ListVal(vals)
}

func asValue(v any) (cty.Value, error) {
	val, ok := v.(cty.Value)
	if !ok {
		return cty.NilVal, errs.Wrapf(errs.ErrEvaluation, "not an HCL value: %T", v)
	}
	if !val.IsWhollyKnown() {
		return cty.NilVal, errs.Wrapf(errs.ErrEvaluation, "value is not known")
	}
	return val, nil
}

// format renders strings raw, numbers in their shortest decimal form and
// anything structured as JSON.
func format(val cty.Value) (string, error) {
	if val.IsNull() {
		return "null", nil
	}
	switch val.Type() {
	case cty.String:
		return val.AsString(), nil
	case cty.Number:
		return val.AsBigFloat().Text('f', -1), nil
	case cty.Bool:
		if val.True() {
			return "true", nil
		}
		return "false", nil
	}
	b, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		return "", errs.Wrap(errs.ErrEvaluation, err)
	}
	return string(b), nil
}

// elements returns the items of a sequence, or the keys of a map or object.
func elements(val cty.Value) ([]cty.Value, error) {
	ty := val.Type()
	if val.IsNull() || !val.CanIterateElements() {
		return nil, errs.Wrapf(errs.ErrEvaluation, "cannot spread a value of type %s", ty.FriendlyName())
	}
	var out []cty.Value
	it := val.ElementIterator()
	for it.Next() {
		k, v := it.Element()
		if ty.IsMapType() || ty.IsObjectType() {
			out = append(out, k)
			continue
		}
		out = append(out, v)
	}
	return out, nil
}
