package beans

import (
	"reflect"
	"unicode"
	"unicode/utf8"
)

// DefaultName returns the bean name derived from a type: the simple type name
// with its first character lower-cased. Pointer types are named after their
// element, so *FirstBean and FirstBean both yield "firstBean". Unnamed types
// yield the empty string.
func DefaultName(t reflect.Type) string {
	if t == nil {
		return ""
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	name := t.Name()
	if name == "" {
		return ""
	}

	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToLower(r)) + name[size:]
}

// NameOf returns the default bean name for T.
func NameOf[T any]() string {
	return DefaultName(reflect.TypeFor[T]())
}
