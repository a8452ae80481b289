package record

import "github.com/vk/pysgo/internal/errs"

// Key selects elements of a sequence. It is one of Index, Span or Keys.
type Key interface {
	isKey()
}

// Index selects a single element. Negative values count from the end.
type Index int

// Span selects a contiguous (or strided) run of elements with the same
// normalization rules as a Python slice. Nil bounds mean "from the start" and
// "to the end"; a nil Step means 1.
type Span struct {
	Start, Stop, Step *int
}

// Keys selects each contained key in order. Keys may repeat and need not be
// monotonic.
type Keys []Key

func (Index) isKey() {}
func (Span) isKey()  {}
func (Keys) isKey()  {}

// Bound is a convenience for building Span bounds from literals.
func Bound(i int) *int { return &i }

// TokenSequence is the ordered, 0-indexed token list of one record. It is
// never mutated after construction.
type TokenSequence struct {
	tokens []string
}

// NewTokenSequence copies tokens into a new sequence.
func NewTokenSequence(tokens []string) TokenSequence {
	cp := make([]string, len(tokens))
	copy(cp, tokens)
	return TokenSequence{tokens: cp}
}

// Len returns the number of tokens.
func (s TokenSequence) Len() int { return len(s.tokens) }

// Tokens returns a copy of the tokens.
func (s TokenSequence) Tokens() []string {
	cp := make([]string, len(s.tokens))
	copy(cp, s.tokens)
	return cp
}

// At returns the token at i, counting from the end when i is negative.
func (s TokenSequence) At(i int) (string, error) {
	v, err := Pick(s.tokens, Index(i))
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Get resolves key against the sequence. An Index yields a string, a Span
// yields a TokenSequence and Keys yields a []any holding the result of each
// key in key order.
func (s TokenSequence) Get(key Key) (any, error) {
	v, err := Pick(s.tokens, key)
	if err != nil {
		return nil, err
	}
	if span, ok := v.([]string); ok {
		return TokenSequence{tokens: span}, nil
	}
	if list, ok := v.([]any); ok {
		return retag(list), nil
	}
	return v, nil
}

// retag turns nested []string spans produced by Pick into TokenSequences.
func retag(list []any) []any {
	for i, v := range list {
		switch v := v.(type) {
		case []string:
			list[i] = TokenSequence{tokens: v}
		case []any:
			list[i] = retag(v)
		}
	}
	return list
}

// Pick applies key to items. An Index yields a T, a Span yields a fresh []T,
// and Keys yields a []any with one entry per key, resolved recursively.
func Pick[T any](items []T, key Key) (any, error) {
	switch k := key.(type) {
	case Index:
		i := int(k)
		if i < 0 {
			i += len(items)
		}
		if i < 0 || i >= len(items) {
			return nil, errs.Wrapf(errs.ErrIndexOutOfRange, "index %d outside sequence of length %d", int(k), len(items))
		}
		return items[i], nil
	case Span:
		start, stop, step, err := k.Indices(len(items))
		if err != nil {
			return nil, err
		}
		out := []T{}
		if step > 0 {
			for i := start; i < stop; i += step {
				out = append(out, items[i])
			}
		} else {
			for i := start; i > stop; i += step {
				out = append(out, items[i])
			}
		}
		return out, nil
	case Keys:
		out := make([]any, 0, len(k))
		for _, sub := range k {
			v, err := Pick(items, sub)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case nil:
		return nil, errs.Wrapf(errs.ErrEvaluation, "missing index key")
	default:
		return nil, errs.Wrapf(errs.ErrEvaluation, "unsupported index key %T", key)
	}
}

// Indices normalizes the span against a sequence of the given length and
// returns clamped start, stop and step values ready for iteration.
func (sp Span) Indices(length int) (start, stop, step int, err error) {
	step = 1
	if sp.Step != nil {
		step = *sp.Step
	}
	if step == 0 {
		return 0, 0, 0, errs.Wrapf(errs.ErrEvaluation, "slice step cannot be zero")
	}

	lower, upper := 0, length
	if step < 0 {
		lower, upper = -1, length-1
	}
	clamp := func(p *int, def int) int {
		if p == nil {
			return def
		}
		v := *p
		if v < 0 {
			v += length
			if v < lower {
				v = lower
			}
		} else if v > upper {
			v = upper
		}
		return v
	}

	if step > 0 {
		start, stop = clamp(sp.Start, lower), clamp(sp.Stop, upper)
	} else {
		start, stop = clamp(sp.Start, upper), clamp(sp.Stop, lower)
	}
	return start, stop, step, nil
}
