package dkg

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// TwoPartyElement is one half of a two-of-two secret split. The scheme
// is a degree-one Shamir split Z = S + R*x, modified so the dealer can
// fix one party's share value and index directly by solving for the
// coefficient: R = (Z - S) / x.
//
// Two complementary elements over the same secret reassemble it by
// Lagrange interpolation at x = 0. The scheme carries no integrity
// check: reassembling mismatched elements silently yields an incorrect
// value. Binding elements to the right session is the caller's job.
type TwoPartyElement struct {
	Share Scalar
	Index Scalar
}

// NewTwoPartyElement wraps an existing share and index.
func NewTwoPartyElement(share, index Scalar) *TwoPartyElement {
	return &TwoPartyElement{Share: share, Index: index}
}

// Split fixes one party's element at (chosenShare, chosenIndex), solves
// the line through it and the secret, and returns the complementary
// element evaluated at a fresh random index.
//
// chosenShare must come from a secure uniform distribution; this
// function cannot check randomness quality, and a predictable chosen
// share breaks secrecy of the split. chosenIndex must be nonzero.
func Split(curve Curve, secret, chosenShare, chosenIndex Scalar) (*TwoPartyElement, error) {
	if secret == nil || chosenShare == nil || chosenIndex == nil {
		return nil, errorf(KindInvalidArgument, "split requires non-nil secret, share and index")
	}
	if chosenIndex.IsZero() {
		return nil, errorf(KindInvalidArgument, "chosen index must be nonzero")
	}

	// R = (Z - S) / x
	indexInv, err := chosenIndex.Invert()
	if err != nil {
		return nil, errorf(KindInvalidArgument, "chosen index has no inverse").WithCause(err)
	}
	coeff := chosenShare.Sub(secret).Mul(indexInv)

	// Z' = S + R*x' for a fresh random x'.
	randIndex, err := curve.ScalarRandom()
	if err != nil {
		return nil, ErrRandomness.WithCause(err)
	}

	return &TwoPartyElement{
		Share: secret.Add(coeff.Mul(randIndex)),
		Index: randIndex,
	}, nil
}

// FromSharedSecret derives an element deterministically: the share from
// a Diffie-Hellman combination of privateKey with sharePoint, the index
// from the combination with indexPoint. Two parties holding matching
// key material arrive at the same element with no interaction.
func FromSharedSecret(curve Curve, privateKey Scalar, sharePoint, indexPoint Point) (*TwoPartyElement, error) {
	if privateKey == nil || privateKey.IsZero() {
		return nil, errorf(KindInvalidArgument, "private key must be a nonzero scalar")
	}
	if sharePoint == nil || sharePoint.IsIdentity() {
		return nil, errorf(KindInvalidArgument, "share point must not be the identity")
	}
	if indexPoint == nil || indexPoint.IsIdentity() {
		return nil, errorf(KindInvalidArgument, "index point must not be the identity")
	}

	share, err := deriveSharedScalar(curve, privateKey, sharePoint, "share")
	if err != nil {
		return nil, err
	}
	index, err := deriveSharedScalar(curve, privateKey, indexPoint, "index")
	if err != nil {
		return nil, err
	}
	if index.IsZero() {
		// Deterministic derivation cannot resample; reject outright.
		return nil, errorf(KindInvalidArgument, "derived index is zero")
	}

	return &TwoPartyElement{Share: share, Index: index}, nil
}

// ReassembleWith recombines this element with its complement and
// returns the underlying secret. Correctness of the result is only as
// good as the inputs; wrong or stale elements produce a wrong value
// with no error.
func (e *TwoPartyElement) ReassembleWith(other *TwoPartyElement) (Scalar, error) {
	lambda1, lambda2, err := lagrangePair(e.Index, other.Index)
	if err != nil {
		return nil, err
	}
	return e.Share.Mul(lambda1).Add(other.Share.Mul(lambda2)), nil
}

// Commitment lifts the element into the point variant: the share moves
// through the base point while the index stays in the clear, so a
// group-element secret reassembles with the same interpolation.
func (e *TwoPartyElement) Commitment(curve Curve) *TwoPartyPointElement {
	return &TwoPartyPointElement{
		Share: curve.BasePoint().Mul(e.Share),
		Index: e.Index,
	}
}

// Bytes returns the share followed by the index, each in the scalar
// field's fixed-width encoding.
func (e *TwoPartyElement) Bytes() []byte {
	out := make([]byte, 0, 2*len(e.Share.Bytes()))
	out = append(out, e.Share.Bytes()...)
	out = append(out, e.Index.Bytes()...)
	return out
}

// ParseTwoPartyElement decodes an element from exactly two scalar
// widths.
func ParseTwoPartyElement(curve Curve, data []byte) (*TwoPartyElement, error) {
	width := curve.ScalarSize()
	if len(data) != 2*width {
		return nil, ErrMalformedInput.
			WithContext("len", len(data)).
			WithContext("want", 2*width)
	}

	share, err := curve.ScalarFromBytes(data[:width])
	if err != nil {
		return nil, ErrMalformedInput.WithCause(err)
	}
	index, err := curve.ScalarFromBytes(data[width:])
	if err != nil {
		return nil, ErrMalformedInput.WithCause(err)
	}

	return &TwoPartyElement{Share: share, Index: index}, nil
}

// Zeroize wipes the share value. The index is not secret.
func (e *TwoPartyElement) Zeroize() {
	if e.Share != nil {
		e.Share.Zeroize()
	}
}

// TwoPartyPointElement is the group-element variant of a two-party
// split: the share lives in the curve group instead of the scalar
// field. Interpolation weights still come from the scalar indices.
type TwoPartyPointElement struct {
	Share Point
	Index Scalar
}

// NewTwoPartyPointElement wraps an existing point share and index.
func NewTwoPartyPointElement(share Point, index Scalar) *TwoPartyPointElement {
	return &TwoPartyPointElement{Share: share, Index: index}
}

// ReassembleWith recombines two point elements into the underlying
// group element.
func (e *TwoPartyPointElement) ReassembleWith(other *TwoPartyPointElement) (Point, error) {
	lambda1, lambda2, err := lagrangePair(e.Index, other.Index)
	if err != nil {
		return nil, err
	}
	return e.Share.Mul(lambda1).Add(other.Share.Mul(lambda2)), nil
}

// lagrangePair computes the Lagrange coefficients for evaluation points
// {x1, x2} at x = 0: lambda1 = x2/(x2-x1), lambda2 = x1/(x1-x2).
// Zero or colliding indices make the interpolation degenerate and are
// rejected.
func lagrangePair(x1, x2 Scalar) (Scalar, Scalar, error) {
	if x1 == nil || x2 == nil {
		return nil, nil, errorf(KindInvalidArgument, "interpolation index is nil")
	}
	if x1.IsZero() || x2.IsZero() {
		return nil, nil, errorf(KindInvalidArgument, "interpolation index is zero")
	}
	if x1.Equal(x2) {
		return nil, nil, errorf(KindInvalidArgument, "interpolation indices collide")
	}

	diff := x2.Sub(x1)
	diffInv, err := diff.Invert()
	if err != nil {
		return nil, nil, errorf(KindInvalidArgument, "degenerate interpolation").WithCause(err)
	}

	lambda1 := x2.Mul(diffInv)
	lambda2 := x1.Mul(diffInv.Negate())
	return lambda1, lambda2, nil
}

// deriveSharedScalar hashes the DH combination privateKey*point into a
// uniform scalar through HKDF, with the use label and curve name fixed
// into the info string.
func deriveSharedScalar(curve Curve, privateKey Scalar, point Point, use string) (Scalar, error) {
	shared := point.Mul(privateKey)

	info := []byte(hashFunctionName + "/two-party/" + use + "/" + curve.Name())
	reader := hkdf.New(sha256.New, shared.Bytes(), nil, info)

	wide := make([]byte, 64)
	if _, err := io.ReadFull(reader, wide); err != nil {
		return nil, ErrRandomness.WithCause(err)
	}

	return curve.ScalarFromUniformBytes(wide)
}
