package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "Some helpful text"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatalf("unexpected root %v", got)
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrModel,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"pkg errors wrapping is unpacked": {
			a:      ErrAccountInUse,
			b:      errors.Wrap(ErrAccountInUse, "escrow"),
			wantIs: true,
		},
		"multi error containing the kind": {
			a:      ErrAmount,
			b:      Append(ErrInput, Wrap(ErrAmount, "zero")),
			wantIs: true,
		},
		"multi error not containing the kind": {
			a:      ErrExpired,
			b:      Append(ErrInput, ErrAmount),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is not an error": {
			a:      nil,
			b:      ErrHuman,
			wantIs: false,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.wantIs, tc.a.Is(tc.b))
		})
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		Register(ErrNotFound.ABCICode(), "again")
	})
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := run()
	assert.True(t, ErrPanic.Is(err))
	assert.Contains(t, err.Error(), "boom")
}

func TestAppend(t *testing.T) {
	assert.Nil(t, Append(nil, nil))
	assert.Equal(t, ErrInput, Append(nil, ErrInput))

	err := Append(ErrInput, nil, Append(ErrAmount, ErrExpired))
	m, ok := err.(*multiErr)
	if !ok {
		t.Fatalf("want multi error, got %T", err)
	}
	assert.Len(t, m.Unpack(), 3)
	assert.Equal(t, ErrInput.ABCICode(), abciCode(err))
}

func TestField(t *testing.T) {
	assert.Nil(t, Field("Amount", nil, "ignored"))

	err := Field("Amount", ErrAmount, "must be %s", "positive")
	assert.True(t, ErrAmount.Is(err))
	assert.Equal(t, `field "Amount": must be positive: invalid amount`, err.Error())

	err = AppendField(nil, "Seed", ErrEmpty)
	assert.True(t, ErrEmpty.Is(err))
}

func TestStackTrace(t *testing.T) {
	cases := map[string]struct {
		err       error
		wantError string
	}{
		"New gives us a stacktrace": {
			err:       Wrap(ErrDuplicate, "name"),
			wantError: "name: duplicate",
		},
		"Wrapping stderr gives us a stacktrace": {
			err:       Wrap(fmt.Errorf("foo"), "standard"),
			wantError: "standard: foo",
		},
	}

	const thisTestSrc = "errors/errors_test.go"

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.wantError, tc.err.Error())
			assert.NotNil(t, stackTrace(tc.err))

			fullStack := fmt.Sprintf("%+v", tc.err)
			if !strings.Contains(fullStack, thisTestSrc) {
				t.Logf("Stack trace below\n----%s\n----", fullStack)
				t.Error("full stack trace should contain this test source code information")
			}
		})
	}
}
