package main

import (
	"encoding/hex"
	"encoding/json"

	"github.com/iov-one/stake"
	"github.com/iov-one/stake/crypto"
	"github.com/iov-one/stake/errors"
	"github.com/spf13/cobra"
)

// defaultDerivationPath follows SLIP-10 with the IOV coin type.
const defaultDerivationPath = "m/44'/234'/0'"

type keyOutput struct {
	Address stake.Address     `json:"address"`
	Bech32  string            `json:"bech32"`
	Pubkey  *crypto.PublicKey `json:"pub_key"`
	Secret  string            `json:"secret"`
}

func keysCmd() *cobra.Command {
	var seed, path string
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Create an ed25519 key",
		Long: `Create an ed25519 key.

Without a seed a random key is generated. With a hex encoded seed the key
is derived deterministically using the SLIP-10 path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := newKey(seed, path)
			if err != nil {
				return err
			}
			out, err := describeKey(key)
			if err != nil {
				return err
			}
			raw, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return errors.Wrap(err, "cannot serialize")
			}
			_, err = cmd.OutOrStdout().Write(append(raw, '\n'))
			return err
		},
	}
	cmd.Flags().StringVar(&seed, "seed", "", "hex encoded master seed")
	cmd.Flags().StringVar(&path, "path", defaultDerivationPath, "derivation path, used with a seed")
	return cmd
}

func newKey(seed, path string) (*crypto.PrivateKey, error) {
	if seed == "" {
		return crypto.GenPrivKeyEd25519(), nil
	}
	raw, err := hex.DecodeString(seed)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "seed is not hex encoded")
	}
	return crypto.DeriveKey(raw, path)
}

func describeKey(key *crypto.PrivateKey) (*keyOutput, error) {
	pub := key.PublicKey()
	human, err := pub.Address().Bech32()
	if err != nil {
		return nil, err
	}
	return &keyOutput{
		Address: pub.Address(),
		Bech32:  human,
		Pubkey:  pub,
		Secret:  hex.EncodeToString(key.Ed25519),
	}, nil
}
