package sigs

import (
	"crypto/sha512"
	"encoding/binary"
	"io"

	"github.com/iov-one/stake"
	"github.com/iov-one/stake/crypto"
	"github.com/iov-one/stake/errors"
)

// SignCodeV1 prefixes the signed bytes of the current signature format.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures verifies every signature of the transaction and
// increments the sequence of each signer. It returns the signer
// conditions in signature order. A key may sign a transaction only once.
func VerifyTxSignatures(db stake.KVStore, tx SignedTx, chainID string) ([]stake.Condition, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	sigs := tx.GetSignatures()
	if err := uniqueSigners(sigs); err != nil {
		return nil, err
	}
	signers := make([]stake.Condition, 0, len(sigs))
	for i, sig := range sigs {
		signer, err := VerifySignature(db, sig, signBytes, chainID)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers = append(signers, signer)
	}
	return signers, nil
}

// uniqueSigners fails if two signatures share a public key. It runs before
// any sequence is consumed.
func uniqueSigners(sigs []*StdSignature) error {
	seen := make(map[string]int, len(sigs))
	for i, sig := range sigs {
		if sig == nil || sig.Pubkey == nil {
			continue
		}
		addr := sig.Pubkey.Address().String()
		if j, ok := seen[addr]; ok {
			return errors.Wrapf(errors.ErrDuplicate, "signatures %d and %d by %s", j, i, addr)
		}
		seen[addr] = i
	}
	return nil
}

// VerifySignature verifies a single signature and, if valid, stores the
// incremented sequence of its signer.
func VerifySignature(db stake.KVStore, sig *StdSignature, signBytes []byte, chainID string) (stake.Condition, error) {
	if sig == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	bucket := NewBucket()
	user, err := getOrCreate(db, bucket, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !user.Pubkey.Verify(digest, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := bucket.Put(db, user.Pubkey.Address(), user); err != nil {
		return nil, err
	}
	return user.Pubkey.Condition(), nil
}

/*
BuildSignBytes returns the digest a signer signs.

The digest is the sha512 hash of

  version | len(chainID) | chainID      | sequence          | signBytes
  4 bytes | uint8        | ascii string | int64 (bigendian) | serialized transaction
*/
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !stake.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	h := sha512.New()
	h.Write(SignCodeV1)
	h.Write([]byte{uint8(len(chainID))})
	io.WriteString(h, chainID)
	binary.Write(h, binary.BigEndian, seq)
	h.Write(signBytes)
	return h.Sum(nil), nil
}

// BuildSignBytesTx returns the digest of the transaction.
func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(signBytes, chainID, seq)
}

// SignTx signs the transaction with given sequence.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	digest, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		Pubkey:    signer.PublicKey(),
		Signature: sig,
		Sequence:  seq,
	}, nil
}

// NextSequence returns the sequence the owner of the public key must use
// for the next transaction.
func NextSequence(db stake.ReadOnlyKVStore, pubkey *crypto.PublicKey) (int64, error) {
	user, err := getOrCreate(db, NewBucket(), pubkey)
	if err != nil {
		return 0, err
	}
	return user.Sequence, nil
}
