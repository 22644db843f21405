// Package assert holds a few fatal assertions for packages that only need
// to compare a handful of values.
package assert

import (
	"bytes"
	"reflect"
)

// Tester is the part of testing.TB these helpers use.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil stops the test unless value is nil or a typed nil.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// %+v prints the stack of wrapped errors.
		t.Fatalf("want nil, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

// Equal stops the test when want and got differ. Byte slices are printed as
// hex since keys and addresses are rarely readable.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	wb, wok := want.([]byte)
	gb, gok := got.([]byte)
	if wok && gok {
		if !bytes.Equal(wb, gb) {
			t.Fatalf("bytes differ\nwant %X\n got %X", wb, gb)
		}
		return
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values differ\nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics stops the test if fn returns normally.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("want panic")
		}
	}()
	fn()
}

// IsErr stops the test unless got matches want. A registered error matches
// any error wrapping it.
func IsErr(t Tester, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if m, ok := want.(interface{ Is(error) bool }); ok && m.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}
