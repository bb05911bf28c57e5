package dkg

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// hashFunctionName is the cSHAKE function name shared by every hash in
// the protocol. Per-use domain labels go into the customization string
// so two different uses can never produce related digests.
const hashFunctionName = "keymesh/dkg/v1"

// domainSchnorrChallenge labels the Fiat-Shamir challenge derivation.
const domainSchnorrChallenge = "schnorr-challenge"

// HashToScalar absorbs the given transcript items into a cSHAKE256 XOF
// customized with the domain label and the curve name, then reduces the
// output to a uniformly distributed scalar. Each item is length-prefixed
// before absorption so distinct transcripts can never collide through
// concatenation ambiguity.
func HashToScalar(curve Curve, domain string, items ...[]byte) (Scalar, error) {
	shake := sha3.NewCShake256(
		[]byte(hashFunctionName),
		[]byte(domain+"/"+curve.Name()),
	)

	var prefix [4]byte
	for _, item := range items {
		binary.BigEndian.PutUint32(prefix[:], uint32(len(item)))
		shake.Write(prefix[:])
		shake.Write(item)
	}

	// 64 bytes of XOF output keeps the reduction bias negligible for
	// every 256-bit group order in use here.
	out := make([]byte, 64)
	if _, err := shake.Read(out); err != nil {
		return nil, ErrRandomness.WithCause(err)
	}

	return curve.ScalarFromUniformBytes(out)
}
