package oauth

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"
)

// Params is a set of request parameters.
//
// A nil value, typed or not, means "absent": the key is dropped when the set
// is encoded, so it is never serialized as a literal "null" or "<nil>".
// Values may be strings, numbers, booleans, fmt.Stringer, pointers to those,
// or slices and arrays of them; lists expand to one key=value pair per element.
type Params map[string]any

// Clone returns a shallow copy of p. A nil receiver yields an empty set.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge returns a new set with the entries of p overwritten by other.
func (p Params) Merge(other Params) Params {
	out := p.Clone()
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Compact returns a copy of p without absent entries.
func (p Params) Compact() Params {
	out := make(Params, len(p))
	for k, v := range p {
		if !isAbsent(v) {
			out[k] = v
		}
	}
	return out
}

// Values converts p into url.Values, dropping absent entries and expanding lists.
func (p Params) Values() url.Values {
	vals := make(url.Values, len(p))
	for k, v := range p {
		for _, s := range flatten(v) {
			vals.Add(k, s)
		}
	}
	return vals
}

// Encode renders p as a URL-encoded query string with keys in sorted order.
// List elements keep their order as repeated keys.
func (p Params) Encode() string {
	keys := make([]string, 0, len(p))
	for k, v := range p {
		if !isAbsent(v) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		for _, s := range flatten(p[k]) {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(s))
		}
	}
	return b.String()
}

// isAbsent reports nil, including typed nil pointers, maps, slices and interfaces.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

func flatten(v any) []string {
	if isAbsent(v) {
		return nil
	}
	switch t := v.(type) {
	case string:
		return []string{t}
	case []string:
		return t
	case []byte:
		return []string{string(t)}
	case fmt.Stringer:
		return []string{t.String()}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]string, 0, rv.Len())
		for i := range rv.Len() {
			out = append(out, flatten(rv.Index(i).Interface())...)
		}
		return out
	case reflect.Pointer:
		return flatten(rv.Elem().Interface())
	default:
		return []string{fmt.Sprint(v)}
	}
}
