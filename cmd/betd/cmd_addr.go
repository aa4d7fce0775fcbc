package main

import (
	"encoding/json"

	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
	"github.com/iov-one/stake/x/bet"
	"github.com/spf13/cobra"
)

type addrOutput struct {
	Bet        stake.Address `json:"bet"`
	BetBech32  string        `json:"bet_bech32"`
	RecordSalt uint32        `json:"record_salt"`
	Vault      stake.Address `json:"vault"`
	VaultSalt  uint32        `json:"vault_salt"`
}

func addrCmd() *cobra.Command {
	var maker, opponent, judge, description string
	cmd := &cobra.Command{
		Use:   "addr",
		Short: "Compute the bet record and vault addresses of a set of terms",
		Long: `Compute the bet record and vault addresses of a set of terms.

The result depends only on the terms, so it can be verified by anyone
before funds are sent.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := deriveAddresses(maker, opponent, judge, description)
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
	fl := cmd.Flags()
	fl.StringVar(&maker, "maker", "", "address of the maker")
	fl.StringVar(&opponent, "opponent", "", "address of the opponent")
	fl.StringVar(&judge, "judge", "", "address of the judge")
	fl.StringVar(&description, "description", "", "description of the bet")
	return cmd
}

func deriveAddresses(maker, opponent, judge, description string) (*addrOutput, error) {
	terms := []struct{ name, raw string }{
		{"maker", maker},
		{"opponent", opponent},
		{"judge", judge},
	}
	parties := make([]stake.Address, 0, len(terms))
	for _, t := range terms {
		if t.raw == "" {
			return nil, errors.Wrapf(errors.ErrEmpty, "%s address", t.name)
		}
		addr, err := stake.ParseAddress(t.raw)
		if err != nil {
			return nil, errors.Wrapf(err, "%s address", t.name)
		}
		parties = append(parties, addr)
	}

	betID, recordSalt, err := bet.DeriveBetAddress(parties[0], parties[1], parties[2], description)
	if err != nil {
		return nil, err
	}
	vault, vaultSalt, err := bet.DeriveVaultAddress(betID)
	if err != nil {
		return nil, err
	}
	human, err := betID.Bech32()
	if err != nil {
		return nil, err
	}
	return &addrOutput{
		Bet:        betID,
		BetBech32:  human,
		RecordSalt: recordSalt,
		Vault:      vault,
		VaultSalt:  vaultSalt,
	}, nil
}
