package app

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/iov-one/stake"
	"github.com/iov-one/stake/commands/server"
	"github.com/iov-one/stake/crypto"
	"github.com/iov-one/stake/errors"
	"github.com/iov-one/stake/x/cash"
	abci "github.com/tendermint/tendermint/abci/types"
)

// devBalance is the balance of the single account in a generated genesis.
const devBalance = 1000000

type genesisState struct {
	Cash []cash.GenesisAccount `json:"cash"`
	Conf map[string]interface{} `json:"conf"`
}

// GenInitOptions returns an app_state for a development chain holding one
// funded account.
//
// args[0] is the account address. Without it a fresh key pair is created
// and printed. args[1] optionally sets the bet record collateral.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var owner stake.Address
	if len(args) > 0 {
		addr, err := stake.ParseAddress(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "genesis account")
		}
		owner = addr
	} else {
		addr, printed, err := newDevKey()
		if err != nil {
			return nil, err
		}
		owner = addr
		fmt.Println(printed)
	}

	var collateral uint64
	if len(args) > 1 {
		n, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "record collateral %q", args[1])
		}
		collateral = n
	}

	raw, err := json.MarshalIndent(genesisState{
		Cash: []cash.GenesisAccount{{Address: owner, Balance: devBalance}},
		Conf: map[string]interface{}{
			"bet": map[string]uint64{"record_collateral": collateral},
		},
	}, "", "  ")
	return raw, errors.Wrap(err, "app state")
}

// GenerateApp opens the store under the home directory and builds the
// application for the start command. An empty home keeps state in memory.
func GenerateApp(opts *server.Options) (abci.Application, error) {
	var dbPath string
	if opts.Home != "" {
		dbPath = filepath.Join(opts.Home, "bet.db")
	}
	kv, err := CommitKVStore(dbPath, opts.DBBackend)
	if err != nil {
		return nil, err
	}
	a := Application("betd", Stack(), TxDecoder, kv, opts.Debug)
	a.WithLogger(opts.Logger)
	return a, nil
}

// newDevKey creates a random key and returns its address together with a
// JSON dump that includes the secret.
func newDevKey() (stake.Address, string, error) {
	priv := crypto.GenPrivKeyEd25519()
	pub := priv.PublicKey()
	dump, err := json.MarshalIndent(struct {
		Address stake.Address     `json:"address"`
		Pubkey  *crypto.PublicKey `json:"pub_key"`
		Secret  string            `json:"secret"`
	}{pub.Address(), pub, hex.EncodeToString(priv.Ed25519)}, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(err, "dump key")
	}
	return pub.Address(), string(dump), nil
}
