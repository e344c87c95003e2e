package helpers

import "reflect"

// StrPanic panics with panicMessage when p is empty and returns p otherwise. Only p == "" is checked, whitespace is
// accepted as a value.
//
// Used for fail-fast validation of required constructor strings (registry base URL, service name of a producer,
// route prefixes built in code).
func StrPanic(p string, panicMessage string) string {
	if p == "" {
		panic(panicMessage)
	}
	return p
}

// NilPanic panics with panicMessage when v is nil (nil interface, pointer, slice, map, chan or func) and returns v
// unchanged otherwise, so constructors can guard and assign a dependency in one expression.
//
// Called from every New* constructor in service, adapters and handlers for their required collaborators.
func NilPanic[T any](v T, panicMessage string) T {
	if isNil(v) {
		panic(panicMessage)
	}
	return v
}

// isNil reports whether v is nil or a typed nil hidden behind an interface. Used only by NilPanic.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
