package dkg

// Share is one participant's evaluation of a dealer's secret polynomial:
// Value = f(Index). Each share is tied to exactly one recipient.
type Share struct {
	Value Scalar
	Index Scalar
}

// NewShare creates a share from an existing value and index.
func NewShare(value, index Scalar) *Share {
	return &Share{Value: value, Index: index}
}

// Verify checks the share against the dealer's commitment polynomial by
// comparing Value*G with the commitment evaluated at Index. A mismatch
// signals a faulty or malicious dealer, or corruption in transit, and is
// terminal for this share: the recipient must abort its participation
// rather than retry verification of the same bytes.
func (s *Share) Verify(commitment *Polynomial) error {
	if s.Value == nil || s.Index == nil {
		return errorf(KindInvalidArgument, "share has nil components")
	}

	expected, err := commitment.EvaluateCommitment(s.Index)
	if err != nil {
		return err
	}

	actual := commitment.curve.BasePoint().Mul(s.Value)
	if !actual.Equal(expected) {
		return ErrCommitmentMismatch
	}
	return nil
}

// Bytes returns the value followed by the index, each in the scalar
// field's fixed-width encoding.
func (s *Share) Bytes() []byte {
	out := make([]byte, 0, 2*len(s.Value.Bytes()))
	out = append(out, s.Value.Bytes()...)
	out = append(out, s.Index.Bytes()...)
	return out
}

// ParseShare decodes a share from exactly two scalar widths.
func ParseShare(curve Curve, data []byte) (*Share, error) {
	width := curve.ScalarSize()
	if len(data) != 2*width {
		return nil, ErrMalformedInput.
			WithContext("len", len(data)).
			WithContext("want", 2*width)
	}

	value, err := curve.ScalarFromBytes(data[:width])
	if err != nil {
		return nil, ErrMalformedInput.WithCause(err)
	}
	index, err := curve.ScalarFromBytes(data[width:])
	if err != nil {
		return nil, ErrMalformedInput.WithCause(err)
	}

	return &Share{Value: value, Index: index}, nil
}

// Zeroize wipes the share value. The index is not secret.
func (s *Share) Zeroize() {
	if s.Value != nil {
		s.Value.Zeroize()
	}
}
