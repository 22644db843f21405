package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

// setupHome creates a home directory with a genesis file as left by
// tendermint init.
func setupHome(t *testing.T, genesis string) (string, func()) {
	t.Helper()
	home, err := ioutil.TempDir("", "escrowd-home")
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(home, "config"), 0755))
	require.NoError(t, ioutil.WriteFile(GenesisPath(home), []byte(genesis), 0600))
	return home, func() { os.RemoveAll(home) }
}

func staticOptions(state string) GenOptions {
	return func([]string) (json.RawMessage, error) {
		return json.RawMessage(state), nil
	}
}

func TestInitCmd(t *testing.T) {
	cases := map[string]struct {
		Genesis   string
		Args      []string
		WantErr   *errors.Error
		WantState string
	}{
		"fresh genesis": {
			Genesis:   `{"chain_id": "test-chain-AbCdEf"}`,
			WantState: `{"cash":[]}`,
		},
		"null app state": {
			Genesis:   `{"chain_id": "test-chain-AbCdEf", "app_state": null}`,
			WantState: `{"cash":[]}`,
		},
		"existing app state": {
			Genesis:   `{"chain_id": "test-chain-AbCdEf", "app_state": {"token": []}}`,
			WantErr:   errors.ErrState,
			WantState: `{"token":[]}`,
		},
		"forced overwrite": {
			Genesis:   `{"chain_id": "test-chain-AbCdEf", "app_state": {"token": []}}`,
			Args:      []string{"-f"},
			WantState: `{"cash":[]}`,
		},
		"broken genesis": {
			Genesis: `{"chain_id": `,
			WantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			home, cleanup := setupHome(t, tc.Genesis)
			defer cleanup()

			err := InitCmd(staticOptions(`{"cash":[]}`), log.NewNopLogger(), home, tc.Args)
			if tc.WantErr != nil {
				assert.True(t, tc.WantErr.Is(err), "got %+v", err)
			} else {
				require.NoError(t, err)
			}
			if tc.WantState == "" {
				return
			}

			doc, err := readGenesis(GenesisPath(home))
			require.NoError(t, err)
			assert.JSONEq(t, tc.WantState, string(doc[appStateKey]))
			assert.JSONEq(t, `"test-chain-AbCdEf"`, string(doc["chain_id"]))
		})
	}
}

func TestInitCmdRequiresTendermintInit(t *testing.T) {
	home, err := ioutil.TempDir("", "escrowd-home")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	err = InitCmd(staticOptions(`{}`), log.NewNopLogger(), home, nil)
	assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)
}

func TestGenerateCoinKey(t *testing.T) {
	addr, raw, err := GenerateCoinKey()
	require.NoError(t, err)
	assert.NoError(t, addr.Validate())
	assert.NotEmpty(t, raw)
}

type requireKey struct{ key string }

func (r requireKey) FromGenesis(opts custody.Options, db custody.KVStore) error {
	var v string
	if err := opts.ReadOptions(r.key, &v); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if v == "" {
		return errors.Wrapf(errors.ErrEmpty, "%q", r.key)
	}
	db.Set([]byte(r.key), []byte(v))
	return nil
}

func TestValidateGenesisCmd(t *testing.T) {
	good, cleanGood := setupHome(t, `{"app_state": {"name": "escrow"}}`)
	defer cleanGood()
	bad, cleanBad := setupHome(t, `{"app_state": {}}`)
	defer cleanBad()

	ini := requireKey{key: "name"}
	assert.NoError(t, ValidateGenesisCmd(ini, []string{GenesisPath(good)}))

	err := ValidateGenesisCmd(ini, []string{GenesisPath(good), GenesisPath(bad)})
	assert.True(t, errors.ErrEmpty.Is(err), "got %+v", err)

	err = ValidateGenesisCmd(ini, nil)
	assert.True(t, errors.ErrInput.Is(err), "got %+v", err)
}
