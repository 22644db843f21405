package escrow

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	cases := map[string]struct {
		Genesis     string
		WantErr     *errors.Error
		WantHorizon int64
	}{
		"default configuration": {
			Genesis:     `{}`,
			WantHorizon: DefaultMaxExpiryHorizon,
		},
		"configured horizon": {
			Genesis:     `{"conf": {"escrow": {"max_expiry_horizon": 60}}}`,
			WantHorizon: 60,
		},
		"invalid horizon": {
			Genesis: `{"conf": {"escrow": {"max_expiry_horizon": -5}}}`,
			WantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts custody.Options
			require.NoError(t, json.Unmarshal([]byte(tc.Genesis), &opts))

			db := store.MemStore()
			err := Initializer{}.FromGenesis(opts, db)
			if tc.WantErr != nil {
				assert.True(t, tc.WantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)

			var conf Configuration
			require.NoError(t, gconf.Load(db, pkg, &conf))
			assert.Equal(t, tc.WantHorizon, conf.MaxExpiryHorizon)
		})
	}
}

func TestDefaultConfigurationWithoutGenesis(t *testing.T) {
	conf, err := loadConf(store.MemStore())
	require.NoError(t, err)
	assert.Equal(t, int64(DefaultMaxExpiryHorizon), conf.MaxExpiryHorizon)
}
