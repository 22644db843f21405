package orm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixRange(t *testing.T) {
	cases := map[string]struct {
		prefix    []byte
		wantStart []byte
		wantEnd   []byte
	}{
		"empty prefix is the whole store": {},
		"bucket prefix": {
			prefix:    []byte("esc:"),
			wantStart: []byte("esc:"),
			wantEnd:   []byte("esc;"),
		},
		"trailing ff carries over": {
			prefix:    []byte{0x01, 0xFF, 0xFF},
			wantStart: []byte{0x01, 0xFF, 0xFF},
			wantEnd:   []byte{0x02},
		},
		"all ff has no end": {
			prefix:    []byte{0xFF, 0xFF},
			wantStart: []byte{0xFF, 0xFF},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			start, end := prefixRange(tc.prefix)
			assert.Equal(t, tc.wantStart, start)
			assert.Equal(t, tc.wantEnd, end)
		})
	}
}

func TestDBKeyDoesNotAlias(t *testing.T) {
	b := NewBucket("escrow")
	first := b.DBKey([]byte("a"))
	second := b.DBKey([]byte("b"))
	assert.Equal(t, []byte("escrow:a"), first)
	assert.Equal(t, []byte("escrow:b"), second)
	assert.Panics(t, func() { NewBucket("Escrow!") })
}
