package dkg

// SchnorrProof is a non-interactive proof of knowledge of the discrete
// logarithm of a witness point, bound to caller-supplied transcript
// bytes through the Fiat-Shamir challenge. The transcript is not stored
// in the proof; verifiers must supply the same bytes.
type SchnorrProof struct {
	Sigma     Scalar
	Challenge Scalar
}

// ProveKnowledge proves knowledge of secret for the witness secret*G.
//
// The nonce is drawn fresh from the secure source on every call and
// wiped before returning. Nonce reuse across two proofs leaks the
// secret algebraically, so the nonce never leaves this function.
func ProveKnowledge(curve Curve, secret Scalar, transcript ...[]byte) (*SchnorrProof, error) {
	if secret == nil {
		return nil, errorf(KindInvalidArgument, "secret scalar is nil")
	}

	nonce, err := curve.ScalarRandom()
	if err != nil {
		return nil, ErrRandomness.WithCause(err)
	}
	defer nonce.Zeroize()

	witness := curve.BasePoint().Mul(secret)
	nonceCommitment := curve.BasePoint().Mul(nonce)

	challenge, err := schnorrChallenge(curve, transcript, witness, nonceCommitment)
	if err != nil {
		return nil, err
	}

	// sigma = k + secret*c
	sigma := nonce.Add(secret.Mul(challenge))

	return &SchnorrProof{Sigma: sigma, Challenge: challenge}, nil
}

// Verify checks the proof against a witness point and the transcript it
// was produced under. It recomputes the nonce commitment as
// sigma*G - c*witness and compares the rederived challenge. A mismatch
// is terminal for this proof; retrying the same bytes cannot succeed.
func (p *SchnorrProof) Verify(curve Curve, witness Point, transcript ...[]byte) error {
	if witness == nil {
		return errorf(KindInvalidArgument, "witness point is nil")
	}

	nonceCommitment := curve.BasePoint().Mul(p.Sigma).Sub(witness.Mul(p.Challenge))

	expected, err := schnorrChallenge(curve, transcript, witness, nonceCommitment)
	if err != nil {
		return err
	}

	if !p.Challenge.Equal(expected) {
		return ErrProofInvalid
	}
	return nil
}

// schnorrChallenge derives the public-coin challenge over the
// transcript items followed by the witness and nonce commitments, the
// same framing on the prover and verifier sides.
func schnorrChallenge(curve Curve, transcript [][]byte, witness, nonceCommitment Point) (Scalar, error) {
	items := make([][]byte, 0, len(transcript)+2)
	items = append(items, transcript...)
	items = append(items, witness.Bytes(), nonceCommitment.Bytes())
	return HashToScalar(curve, domainSchnorrChallenge, items...)
}

// Bytes returns sigma followed by the challenge, each in the scalar
// field's fixed-width encoding.
func (p *SchnorrProof) Bytes() []byte {
	out := make([]byte, 0, 2*len(p.Sigma.Bytes()))
	out = append(out, p.Sigma.Bytes()...)
	out = append(out, p.Challenge.Bytes()...)
	return out
}

// ParseSchnorrProof decodes a proof from exactly two scalar widths.
func ParseSchnorrProof(curve Curve, data []byte) (*SchnorrProof, error) {
	width := curve.ScalarSize()
	if len(data) != 2*width {
		return nil, ErrMalformedInput.
			WithContext("len", len(data)).
			WithContext("want", 2*width)
	}

	sigma, err := curve.ScalarFromBytes(data[:width])
	if err != nil {
		return nil, ErrMalformedInput.WithCause(err)
	}
	challenge, err := curve.ScalarFromBytes(data[width:])
	if err != nil {
		return nil, ErrMalformedInput.WithCause(err)
	}

	return &SchnorrProof{Sigma: sigma, Challenge: challenge}, nil
}
