package oauth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
)

// ArrayKey holds the elements of a response whose top-level JSON value is an array.
const ArrayKey = "items"

// Values is a decoded provider response.
// JSON numbers are kept as json.Number; query-string values are always strings.
type Values map[string]any

// Has reports whether key is present.
func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// String returns the value under key rendered as a string, or "" if absent.
func (v Values) String(key string) string {
	val, ok := v[key]
	if !ok || val == nil {
		return ""
	}
	return stringify(val)
}

// Int64 returns the value under key as an integer.
// String values are parsed; the second result is false when the key is
// absent or the value is not an integer.
func (v Values) Int64(key string) (int64, bool) {
	switch t := v[key].(type) {
	case json.Number:
		n, err := t.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		return n, err == nil
	case int:
		return int64(t), true
	case int64:
		return t, true
	case float64:
		return int64(t), t == float64(int64(t))
	default:
		return 0, false
	}
}

// Decode parses a provider response body into Values.
//
// Three shapes are accepted, tried in order: a JSON object or array, a JSONP
// envelope such as `callback({...});`, and a URL-encoded query string.
// Only the first value of a repeated query-string key is kept.
// An unrecognized body, or one that decodes to nothing, yields ErrDecode.
func Decode(raw string) (Values, error) {
	vals, err := decodeJSON(raw)
	if err != nil {
		vals = decodeQuery(raw)
	}
	if len(vals) == 0 {
		return nil, errors.Join(ErrDecode, fmt.Errorf("%q is not json, jsonp or query string", truncate(raw, 256)))
	}
	return vals, nil
}

// CheckError maps the error conventions of the supported providers onto *APIError.
// Markers are checked in order: "error", a non-zero "ret", then "errcode".
// requestURL is attached to the error for diagnostics.
func CheckError(vals Values, raw, requestURL string) error {
	if vals.Has("error") {
		return &APIError{Code: vals.String("error"), Message: raw, Request: requestURL}
	}
	if vals.Has("ret") && !isNumericZero(vals["ret"]) {
		return &APIError{Code: vals.String("ret"), Message: vals.String("msg"), Request: requestURL}
	}
	if vals.Has("errcode") {
		return &APIError{Code: vals.String("errcode"), Message: vals.String("errmsg"), Request: requestURL}
	}
	return nil
}

// DecodeResponse decodes raw and applies CheckError.
// It never returns partial data alongside an error.
func DecodeResponse(raw, requestURL string) (Values, error) {
	vals, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	if err := CheckError(vals, raw, requestURL); err != nil {
		return nil, err
	}
	return vals, nil
}

func decodeJSON(raw string) (Values, error) {
	s := raw
	if !strings.HasPrefix(s, "[") && !strings.HasPrefix(s, "{") {
		_, inner, found := strings.Cut(s, "(")
		if !found {
			return nil, errors.New("no json payload")
		}
		s = strings.Trim(inner, " \t\r\n);")
	}

	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after json payload")
	}

	switch t := payload.(type) {
	case map[string]any:
		return Values(t), nil
	case []any:
		if len(t) == 0 {
			return Values{}, nil
		}
		return Values{ArrayKey: t}, nil
	default:
		return nil, errors.New("json payload is not an object or array")
	}
}

// decodeQuery parses k=v pairs leniently. Pairs without '=' or with an empty
// value are skipped, and undecodable escapes are kept verbatim.
func decodeQuery(raw string) Values {
	vals := make(Values)
	for _, pair := range strings.Split(raw, "&") {
		k, v, found := strings.Cut(pair, "=")
		if !found || v == "" {
			continue
		}
		key := unescape(k)
		if _, seen := vals[key]; seen {
			continue
		}
		vals[key] = unescape(v)
	}
	return vals
}

func unescape(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}

func isNumericZero(v any) bool {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	case int:
		return t == 0
	case int64:
		return t == 0
	case float64:
		return t == 0
	default:
		return false
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case map[string]any, []any:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(t); err != nil {
			return fmt.Sprint(t)
		}
		return strings.TrimSpace(buf.String())
	default:
		return fmt.Sprint(t)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
