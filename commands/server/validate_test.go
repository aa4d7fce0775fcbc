package server

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireKey fails initialization unless the app_state contains the key.
type requireKey string

func (k requireKey) FromGenesis(opts stake.Options, db stake.KVStore) error {
	if _, ok := opts[string(k)]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "missing %q", string(k))
	}
	return nil
}

func TestValidateGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "betd-validate")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	good := filepath.Join(dir, "good.json")
	require.NoError(t, ioutil.WriteFile(good, []byte(`{"app_state": {"cash": []}}`), 0600))
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, ioutil.WriteFile(bad, []byte(`{"app_state": {}}`), 0600))
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, ioutil.WriteFile(broken, []byte(`{"app_state": `), 0600))

	ini := requireKey("cash")
	assert.NoError(t, ValidateGenesis(ini, []string{good}))
	assert.True(t, errors.ErrNotFound.Is(ValidateGenesis(ini, []string{good, bad})))
	assert.True(t, errors.ErrInput.Is(ValidateGenesis(ini, []string{broken})))
	assert.Error(t, ValidateGenesis(ini, []string{filepath.Join(dir, "missing.json")}))
}
