package types

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// attribute binds a declared attribute name to the typed field that holds it.
type attribute struct {
	name string
	ptr  any // *string, *int, *float64 or *[]string
}

// assign coerces v to the field's type. The field is left untouched on error.
func (a attribute) assign(v any) error {
	switch p := a.ptr.(type) {
	case *string:
		s, err := cast.ToStringE(v)
		if err != nil {
			return err
		}
		*p = s
	case *int:
		n, err := toInt(v)
		if err != nil {
			return err
		}
		*p = n
	case *float64:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%v is not a finite number", v)
		}
		*p = f
	case *[]string:
		ss, err := toStringSlice(v)
		if err != nil {
			return err
		}
		*p = ss
	default:
		return fmt.Errorf("unsupported attribute type %T", a.ptr)
	}
	return nil
}

func (a attribute) value() any {
	switch p := a.ptr.(type) {
	case *string:
		return *p
	case *int:
		return *p
	case *float64:
		return *p
	case *[]string:
		return append([]string{}, *p...)
	}
	return nil
}

// toInt reads text as a base 10 integer. Other inputs go through cast.
func toInt(v any) (int, error) {
	s, ok := v.(string)
	if !ok {
		return cast.ToIntE(v)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 0)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// toStringSlice always returns a freshly allocated slice. A string is read
// as a JSON array when it starts with '[' and as a comma list otherwise.
func toStringSlice(v any) ([]string, error) {
	switch s := v.(type) {
	case nil:
		return []string{}, nil
	case string:
		s = strings.TrimSpace(s)
		if strings.HasPrefix(s, "[") {
			var out []string
			if err := json.Unmarshal([]byte(s), &out); err != nil {
				return nil, err
			}
			if out == nil {
				out = []string{}
			}
			return out, nil
		}
		out := []string{}
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	}
	ss, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil, err
	}
	return append([]string{}, ss...), nil
}

func declaredAttributes(e Entity) map[string]attribute {
	attrs := e.attributes()
	m := make(map[string]attribute, len(attrs))
	for _, a := range attrs {
		m[a.name] = a
	}
	return m
}

// SetAttribute assigns a textual value to the named attribute and refreshes
// UpdatedAt. Declared attributes are converted to their schema type; other
// names are stored as strings in Extra. Returns ErrNotSettable for the
// identity and timestamp attributes and for values that do not convert.
func SetAttribute(e Entity, name, value string) error {
	if isReserved(name) {
		return ErrNotSettable
	}
	if a, ok := declaredAttributes(e)[name]; ok {
		if err := a.assign(value); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrNotSettable, name, err)
		}
	} else {
		e.Base().setExtra(name, value)
	}
	e.Base().Touch()
	return nil
}

// Attribute returns the current value of the named attribute as it appears
// in the flat representation.
func Attribute(e Entity, name string) (any, bool) {
	v, ok := Flatten(e)[name]
	return v, ok
}

// Flatten returns the flat attribute dictionary of e: kind, id, timestamps,
// every declared attribute and every extra attribute. The result shares no
// mutable state with e.
func Flatten(e Entity) map[string]any {
	b := e.Base()
	attrs := e.attributes()
	m := make(map[string]any, len(attrs)+len(b.Extra)+4)
	for k, v := range b.Extra {
		m[k] = v
	}
	for _, a := range attrs {
		m[a.name] = a.value()
	}
	m[AttrClass] = e.Kind()
	m[AttrID] = b.ID
	m[AttrCreatedAt] = b.CreatedAt.Format(TimeFormat)
	m[AttrUpdatedAt] = b.UpdatedAt.Format(TimeFormat)
	return m
}
