package gconf

import (
	"testing"
	"time"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateConfigurationHandler(t *testing.T) {
	owner := custodytest.NewCondition()
	stranger := custodytest.NewCondition()

	initial := limitsConfig{Owner: owner.Address(), Limit: 10, Label: "ten"}

	cases := map[string]struct {
		Initial *limitsConfig
		Signer  custody.Condition
		Msg     custody.Msg
		WantErr *errors.Error
		Want    limitsConfig
	}{
		"owner can patch": {
			Initial: &initial,
			Signer:  owner,
			Msg:     &patchMsg{Patch: &limitsConfig{Limit: 20}},
			Want:    limitsConfig{Owner: owner.Address(), Limit: 20, Label: "ten"},
		},
		"owner can hand over ownership": {
			Initial: &initial,
			Signer:  owner,
			Msg:     &patchMsg{Patch: &limitsConfig{Owner: stranger.Address()}},
			Want:    limitsConfig{Owner: stranger.Address(), Limit: 10, Label: "ten"},
		},
		"stranger cannot patch": {
			Initial: &initial,
			Signer:  stranger,
			Msg:     &patchMsg{Patch: &limitsConfig{Limit: 20}},
			WantErr: errors.ErrUnauthorized,
		},
		"missing configuration": {
			Signer:  owner,
			Msg:     &patchMsg{Patch: &limitsConfig{Limit: 20}},
			WantErr: errors.ErrNotFound,
		},
		"missing patch": {
			Initial: &initial,
			Signer:  owner,
			Msg:     &patchMsg{},
			WantErr: errors.ErrEmpty,
		},
		"not a patch message": {
			Initial: &initial,
			Signer:  owner,
			Msg:     &custodytest.Msg{RoutePath: "limits/update_configuration"},
			WantErr: errors.ErrType,
		},
		"invalid result is rejected": {
			Initial: &initial,
			Signer:  owner,
			Msg:     &patchMsg{Patch: &limitsConfig{Limit: -1}},
			WantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if tc.Initial != nil {
				require.NoError(t, Save(db, "limits", tc.Initial))
			}
			auth := &custodytest.Auth{Signer: tc.Signer}
			h := NewUpdateConfigurationHandler("limits", &limitsConfig{}, auth)
			ctx := custodytest.Context(time.Now())
			tx := &custodytest.Tx{Msg: tc.Msg}

			cache := db.CacheWrap()
			_, err := h.Check(ctx, cache, tx)
			cache.Discard()
			if tc.WantErr != nil {
				assert.True(t, tc.WantErr.Is(err), "check: %+v", err)
				return
			}
			require.NoError(t, err)

			_, err = h.Deliver(ctx, db, tx)
			require.NoError(t, err)

			var got limitsConfig
			require.NoError(t, Load(db, "limits", &got))
			assert.Equal(t, tc.Want, got)
		})
	}
}

type patchMsg struct {
	Patch *limitsConfig
}

func (*patchMsg) Path() string    { return "limits/update_configuration" }
func (*patchMsg) Validate() error { return nil }
func (m *patchMsg) Reset()        { *m = patchMsg{} }
func (*patchMsg) String() string  { return "limits patch" }
func (*patchMsg) ProtoMessage()   {}

func (m *patchMsg) GetPatch() OwnedConfig {
	if m.Patch == nil {
		return nil
	}
	return m.Patch
}
