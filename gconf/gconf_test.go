package gconf

import (
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()
	owner := custody.NewAddress([]byte("owner"))

	var empty limitsConfig
	err := Load(db, "limits", &empty)
	assert.True(t, errors.ErrNotFound.Is(err))

	err = Save(db, "limits", &limitsConfig{Limit: -1})
	assert.True(t, errors.ErrInput.Is(err), "invalid configuration must not be stored")

	conf := limitsConfig{Owner: owner, Limit: 42, Label: "first"}
	require.NoError(t, Save(db, "limits", &conf))
	assert.True(t, db.Has([]byte("_c:limits")))

	var got limitsConfig
	require.NoError(t, Load(db, "limits", &got))
	assert.Equal(t, conf, got)
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		Genesis string
		WantErr *errors.Error
		Want    limitsConfig
	}{
		"valid": {
			Genesis: `{"conf": {"limits": {"limit": 7, "label": "seven"}}}`,
			Want:    limitsConfig{Limit: 7, Label: "seven"},
		},
		"missing package": {
			Genesis: `{"conf": {"other": {}}}`,
			WantErr: errors.ErrNotFound,
		},
		"missing conf": {
			Genesis: `{}`,
			WantErr: errors.ErrNotFound,
		},
		"malformed": {
			Genesis: `{"conf": {"limits": {"limit": "seven"}}}`,
			WantErr: errors.ErrInput,
		},
		"invalid": {
			Genesis: `{"conf": {"limits": {"limit": -3}}}`,
			WantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts custody.Options
			require.NoError(t, json.Unmarshal([]byte(tc.Genesis), &opts))

			db := store.MemStore()
			var conf limitsConfig
			err := InitConfig(db, opts, "limits", &conf)
			if tc.WantErr != nil {
				assert.True(t, tc.WantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)

			var got limitsConfig
			require.NoError(t, Load(db, "limits", &got))
			assert.Equal(t, tc.Want, got)
		})
	}
}

// limitsConfig is a minimal owned configuration.
type limitsConfig struct {
	Owner custody.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner"`
	Limit int64           `protobuf:"varint,2,opt,name=limit,proto3" json:"limit"`
	Label string          `protobuf:"bytes,3,opt,name=label,proto3" json:"label"`
}

func (c *limitsConfig) Reset()         { *c = limitsConfig{} }
func (c *limitsConfig) String() string { return proto.CompactTextString(c) }
func (*limitsConfig) ProtoMessage()    {}

func (c *limitsConfig) GetOwner() custody.Address {
	return c.Owner
}

func (c *limitsConfig) Validate() error {
	if c.Limit < 0 {
		return errors.Wrap(errors.ErrInput, "negative limit")
	}
	return nil
}
