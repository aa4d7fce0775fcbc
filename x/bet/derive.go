package bet

import (
	"crypto/sha256"
	"encoding/binary"

	"filippo.io/edwards25519"
	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
)

const (
	conditionExt = "bet"
	termsType    = "terms"
	vaultType    = "vault"

	maxSalt              = 255
	maxDescriptionLength = 32
)

// CanonicalTerms returns the byte representation of the bet terms that
// the record address is derived from. Every field is prefixed with its
// uvarint encoded length.
func CanonicalTerms(maker, opponent, judge stake.Address, description string) []byte {
	fields := [][]byte{maker, opponent, judge, []byte(description)}
	var out []byte
	var n [binary.MaxVarintLen64]byte
	for _, f := range fields {
		size := binary.PutUvarint(n[:], uint64(len(f)))
		out = append(out, n[:size]...)
		out = append(out, f...)
	}
	return out
}

// BetCondition returns the condition owning the bet record created from
// given canonical terms.
func BetCondition(terms []byte, salt uint32) stake.Condition {
	return stake.NewCondition(conditionExt, termsType, salted(terms, salt))
}

// VaultCondition returns the condition owning the vault of the bet record
// stored under given address.
func VaultCondition(bet stake.Address, salt uint32) stake.Condition {
	return stake.NewCondition(conditionExt, vaultType, salted(bet, salt))
}

func salted(data []byte, salt uint32) []byte {
	out := make([]byte, len(data)+1)
	copy(out, data)
	out[len(data)] = byte(salt)
	return out
}

// DeriveBetAddress returns the address of the bet record for given terms
// together with the salt that reproduces it.
func DeriveBetAddress(maker, opponent, judge stake.Address, description string) (stake.Address, uint32, error) {
	if len(description) > maxDescriptionLength {
		return nil, 0, errors.Wrapf(errors.ErrInput, "description longer than %d bytes", maxDescriptionLength)
	}
	terms := CanonicalTerms(maker, opponent, judge, description)
	return findSalt(func(salt uint32) stake.Condition {
		return BetCondition(terms, salt)
	})
}

// DeriveVaultAddress returns the address of the vault that belongs to the
// bet record stored under given address, together with the salt that
// reproduces it.
func DeriveVaultAddress(bet stake.Address) (stake.Address, uint32, error) {
	if err := bet.Validate(); err != nil {
		return nil, 0, errors.Wrap(err, "bet address")
	}
	return findSalt(func(salt uint32) stake.Condition {
		return VaultCondition(bet, salt)
	})
}

// findSalt picks the salt of a derived address deterministically: it
// searches from the greatest salt down for the first condition whose digest
// does not decode as an ed25519 point. The salt is stored with the bet so a
// verifier checks one candidate instead of repeating the search. The
// condition prefix, not the curve check, is what keeps derived addresses
// apart from signer addresses.
func findSalt(cond func(uint32) stake.Condition) (stake.Address, uint32, error) {
	for salt := uint32(maxSalt); ; salt-- {
		if c := cond(salt); !onCurve(c) {
			return c.Address(), salt, nil
		}
		if salt == 0 {
			return nil, 0, errors.Wrap(errors.ErrInput, "no salt produces an off curve address")
		}
	}
}

// verifySalt returns true if given salt is a valid derivation proof of the
// address.
func verifySalt(cond func(uint32) stake.Condition, salt uint32, addr stake.Address) bool {
	if salt > maxSalt {
		return false
	}
	c := cond(salt)
	return !onCurve(c) && c.Address().Equals(addr)
}

// onCurve returns true if the digest of the condition decodes as an
// ed25519 point.
func onCurve(c stake.Condition) bool {
	digest := sha256.Sum256(c)
	_, err := new(edwards25519.Point).SetBytes(digest[:])
	return err == nil
}
