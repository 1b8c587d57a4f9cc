// Package types provides type definitions for structured data used throughout the CV parsing service.
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Profile is a loosely-typed bag of candidate fields as stored by the profile page.
// Keys vary between sources (camelCase from the extension, snake_case from the database),
// so lookups go through alias lists.
type Profile map[string]any

// String returns the first non-empty string value among the given alias keys.
// Numbers and booleans are rendered with their default formatting.
func (p Profile) String(keys ...string) string {
	for _, key := range keys {
		v, ok := p[key]
		if !ok || v == nil {
			continue
		}
		if s := strings.TrimSpace(stringify(v)); s != "" {
			return s
		}
	}
	return ""
}

// List returns the first non-empty list value among the given alias keys.
// A string holding a JSON array is decoded, which is how jsonb columns arrive from some drivers.
func (p Profile) List(keys ...string) []any {
	for _, key := range keys {
		v, ok := p[key]
		if !ok || v == nil {
			continue
		}
		if list := asList(v); len(list) > 0 {
			return list
		}
	}
	return nil
}

// FirstList returns the list held by the first alias key that is present,
// even when that list is empty. A present key that does not hold a list yields nil.
func (p Profile) FirstList(keys ...string) []any {
	for _, key := range keys {
		if v, ok := p[key]; ok && v != nil {
			return asList(v)
		}
	}
	return nil
}

// Strings returns the first non-empty list among the alias keys as trimmed strings.
// Nested objects are skipped.
func (p Profile) Strings(keys ...string) []string {
	list := p.List(keys...)
	out := make([]string, 0, len(list))
	for _, item := range list {
		switch item.(type) {
		case map[string]any, []any:
			continue
		}
		if s := strings.TrimSpace(stringify(item)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Records returns the object entries of the first non-empty list among the alias keys.
func (p Profile) Records(keys ...string) []Profile {
	return records(p.List(keys...))
}

// FirstRecords returns the object entries of the list under the first present alias key.
func (p Profile) FirstRecords(keys ...string) []Profile {
	return records(p.FirstList(keys...))
}

func records(list []any) []Profile {
	out := make([]Profile, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Profile(m))
		}
	}
	return out
}

// Has reports whether any of the keys is present with a non-nil value.
func (p Profile) Has(keys ...string) bool {
	for _, key := range keys {
		if v, ok := p[key]; ok && v != nil {
			return true
		}
	}
	return false
}

func asList(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = m
		}
		return out
	case []Profile:
		out := make([]any, len(t))
		for i, m := range t {
			out[i] = map[string]any(m)
		}
		return out
	case json.RawMessage:
		return decodeList([]byte(t))
	case []byte:
		return decodeList(t)
	case string:
		trimmed := strings.TrimSpace(t)
		if strings.HasPrefix(trimmed, "[") {
			return decodeList([]byte(trimmed))
		}
	}
	return nil
}

func decodeList(raw []byte) []any {
	var out []any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
