package assert

import (
	"fmt"
	"testing"

	"github.com/iov-one/custody/errors"
)

type recorder struct {
	failed bool
}

func (r *recorder) Helper()                       {}
func (r *recorder) Fatal(...interface{})          { r.failed = true }
func (r *recorder) Fatalf(string, ...interface{}) { r.failed = true }

func TestAssertions(t *testing.T) {
	cases := map[string]struct {
		run      func(Tester)
		wantFail bool
	}{
		"nil value":         {run: func(t Tester) { Nil(t, nil) }},
		"nil typed pointer": {run: func(t Tester) { Nil(t, (*int)(nil)) }},
		"non nil value":     {run: func(t Tester) { Nil(t, 1) }, wantFail: true},
		"equal":             {run: func(t Tester) { Equal(t, []int{1}, []int{1}) }},
		"not equal":         {run: func(t Tester) { Equal(t, 1, 2) }, wantFail: true},
		"equal bytes":       {run: func(t Tester) { Equal(t, []byte("esc"), []byte("esc")) }},
		"different bytes":   {run: func(t Tester) { Equal(t, []byte("esc"), []byte("vlt")) }, wantFail: true},
		"nil and empty":     {run: func(t Tester) { Equal(t, []byte(nil), []byte{}) }},
		"zero struct":       {run: func(t Tester) { Nil(t, struct{}{}) }, wantFail: true},
		"panics":            {run: func(t Tester) { Panics(t, func() { panic("x") }) }},
		"does not panic":    {run: func(t Tester) { Panics(t, func() {}) }, wantFail: true},
		"wrapped error":     {run: func(t Tester) { IsErr(t, errors.ErrNotFound, errors.Wrap(errors.ErrNotFound, "x")) }},
		"different error":   {run: func(t Tester) { IsErr(t, errors.ErrNotFound, fmt.Errorf("x")) }, wantFail: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var r recorder
			tc.run(&r)
			if r.failed != tc.wantFail {
				t.Fatalf("want fail %v, got %v", tc.wantFail, r.failed)
			}
		})
	}
}
