package pyeval

import (
	"errors"

	"github.com/go-python/gpython/py"
	"github.com/vk/pysgo/internal/errs"
	"github.com/vk/pysgo/internal/record"
)

// SequenceType is the Python type of the "args" binding.
var SequenceType = py.NewType("args", "Read-only token sequence of the current record.")

func init() {
	if SequenceType.Dict == nil {
		SequenceType.Dict = py.StringDict{}
	}
	SequenceType.Dict["index"] = py.MustNewMethod("index", func(self py.Object, args py.Tuple) (py.Object, error) {
		var value py.Object
		if err := py.UnpackTuple(args, nil, "index", 1, 1, &value); err != nil {
			return nil, err
		}
		needle, ok := value.(py.String)
		if ok {
			for i, tok := range self.(*Sequence).seq.Tokens() {
				if tok == string(needle) {
					return py.Int(i), nil
				}
			}
		}
		repr, err := py.Repr(value)
		if err != nil {
			return nil, err
		}
		return nil, py.ExceptionNewf(py.ValueError, "%s is not in list", repr)
	}, 0, "index(value) -> integer -- return first index of value.")

	SequenceType.Dict["count"] = py.MustNewMethod("count", func(self py.Object, args py.Tuple) (py.Object, error) {
		var value py.Object
		if err := py.UnpackTuple(args, nil, "count", 1, 1, &value); err != nil {
			return nil, err
		}
		n := 0
		if needle, ok := value.(py.String); ok {
			for _, tok := range self.(*Sequence).seq.Tokens() {
				if tok == string(needle) {
					n++
				}
			}
		}
		return py.Int(n), nil
	}, 0, "count(value) -> integer -- return number of occurrences of value.")

	SequenceType.Dict["copy"] = py.MustNewMethod("copy", func(self py.Object, args py.Tuple) (py.Object, error) {
		if err := py.UnpackTuple(args, nil, "copy", 0, 0); err != nil {
			return nil, err
		}
		return self.(*Sequence).list(), nil
	}, 0, "copy() -> list -- a shallow copy as a plain list.")
}

// Sequence exposes a record.TokenSequence to Python. It reads like a list of
// str: operators and comparisons work on a list of its tokens, and integer
// and slice subscripts return str and list. It also accepts any iterable of
// keys, e.g. args[[2, 0, 0]], returning a list of the selected tokens in key
// order.
type Sequence struct {
	seq record.TokenSequence
}

// NewSequence wraps seq.
func NewSequence(seq record.TokenSequence) *Sequence {
	return &Sequence{seq: seq}
}

// Type of this object.
func (s *Sequence) Type() *py.Type {
	return SequenceType
}

func (s *Sequence) M__len__() (py.Object, error) {
	return py.Int(s.seq.Len()), nil
}

func (s *Sequence) M__getitem__(key py.Object) (py.Object, error) {
	k, err := toKey(key)
	if err != nil {
		return nil, err
	}
	v, err := s.seq.Get(k)
	if err != nil {
		if errors.Is(err, errs.ErrIndexOutOfRange) {
			return nil, py.ExceptionNewf(py.IndexError, "args index out of range")
		}
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return toPyList(v)
}

func (s *Sequence) M__iter__() (py.Object, error) {
	return s.tuple().M__iter__()
}

func (s *Sequence) M__contains__(item py.Object) (py.Object, error) {
	needle, ok := item.(py.String)
	if !ok {
		return py.False, nil
	}
	for _, tok := range s.seq.Tokens() {
		if tok == string(needle) {
			return py.True, nil
		}
	}
	return py.False, nil
}

func (s *Sequence) M__str__() (py.Object, error) {
	return s.M__repr__()
}

func (s *Sequence) M__repr__() (py.Object, error) {
	return py.Repr(s.list())
}

func (s *Sequence) M__add__(other py.Object) (py.Object, error) {
	return py.Add(s.list(), asList(other))
}

func (s *Sequence) M__radd__(other py.Object) (py.Object, error) {
	return py.Add(asList(other), s.list())
}

func (s *Sequence) M__mul__(other py.Object) (py.Object, error) {
	return py.Mul(s.list(), other)
}

func (s *Sequence) M__rmul__(other py.Object) (py.Object, error) {
	return py.Mul(other, s.list())
}

func (s *Sequence) M__eq__(other py.Object) (py.Object, error) {
	return py.Eq(s.list(), asList(other))
}

func (s *Sequence) M__ne__(other py.Object) (py.Object, error) {
	return py.Ne(s.list(), asList(other))
}

// list returns a fresh list of the tokens.
func (s *Sequence) list() *py.List {
	return py.NewListFromItems(s.tuple())
}

// asList unwraps another Sequence so list operators accept it.
func asList(obj py.Object) py.Object {
	if other, ok := obj.(*Sequence); ok {
		return other.list()
	}
	return obj
}

func (s *Sequence) tuple() py.Tuple {
	toks := s.seq.Tokens()
	t := make(py.Tuple, len(toks))
	for i, tok := range toks {
		t[i] = py.String(tok)
	}
	return t
}

// toKey converts a Python subscript into a record.Key. Strings are rejected
// even though they are iterable.
func toKey(key py.Object) (record.Key, error) {
	switch k := key.(type) {
	case *py.Slice:
		start, err := optionalIndex(k.Start)
		if err != nil {
			return nil, err
		}
		stop, err := optionalIndex(k.Stop)
		if err != nil {
			return nil, err
		}
		step, err := optionalIndex(k.Step)
		if err != nil {
			return nil, err
		}
		return record.Span{Start: start, Stop: stop, Step: step}, nil
	case py.String:
		return nil, py.ExceptionNewf(py.TypeError, "args indices must be integers, slices or collections of integers, not str")
	}

	if i, err := py.Index(key); err == nil {
		return record.Index(int(i)), nil
	}

	var keys record.Keys
	var inner error
	err := py.Iterate(key, func(item py.Object) bool {
		sub, err := toKey(item)
		if err != nil {
			inner = err
			return true
		}
		keys = append(keys, sub)
		return false
	})
	if err != nil {
		return nil, py.ExceptionNewf(py.TypeError, "args indices must be integers, slices or collections of integers, not %s", key.Type().Name)
	}
	if inner != nil {
		return nil, inner
	}
	return keys, nil
}

func optionalIndex(obj py.Object) (*int, error) {
	if obj == nil || obj == py.None {
		return nil, nil
	}
	i, err := py.Index(obj)
	if err != nil {
		return nil, err
	}
	v := int(i)
	return &v, nil
}

// toPyList converts a subscript result. Spans become plain lists, the same
// as slicing a list.
func toPyList(v any) (py.Object, error) {
	switch v := v.(type) {
	case record.TokenSequence:
		return NewSequence(v).list(), nil
	case []any:
		items := make([]py.Object, 0, len(v))
		for _, item := range v {
			obj, err := toPyList(item)
			if err != nil {
				return nil, err
			}
			items = append(items, obj)
		}
		return py.NewListFromItems(items), nil
	default:
		return toPy(v)
	}
}

// toPy converts a resolved binding into a Python object.
func toPy(v any) (py.Object, error) {
	switch v := v.(type) {
	case py.Object:
		return v, nil
	case string:
		return py.String(v), nil
	case record.TokenSequence:
		return NewSequence(v), nil
	case []any:
		items := make([]py.Object, 0, len(v))
		for _, item := range v {
			obj, err := toPy(item)
			if err != nil {
				return nil, err
			}
			items = append(items, obj)
		}
		return py.NewListFromItems(items), nil
	default:
		return nil, py.ExceptionNewf(py.TypeError, "cannot bind Go value of type %T", v)
	}
}
