package dkg

import (
	"encoding/binary"
)

// PolynomialKind discriminates the two coefficient variants. The kind is
// fixed at construction and carried through the wire encoding, so a
// decoded polynomial can never be mistaken for the other variant.
type PolynomialKind uint8

const (
	// PolySecret marks scalar coefficients: the dealer's secret
	// sharing polynomial.
	PolySecret PolynomialKind = 0x01
	// PolyCommitment marks point coefficients: the public image of a
	// secret polynomial under the base point.
	PolyCommitment PolynomialKind = 0x02
)

func (k PolynomialKind) String() string {
	switch k {
	case PolySecret:
		return "secret"
	case PolyCommitment:
		return "commitment"
	default:
		return "unknown"
	}
}

// Polynomial is an ordered coefficient list over the curve group, either
// secret (scalars) or a public commitment (points). Coefficient order is
// ascending: index 0 is the constant term.
type Polynomial struct {
	curve   Curve
	kind    PolynomialKind
	scalars []Scalar
	points  []Point
}

// NewRandomPolynomial samples count uniformly random scalar coefficients
// and returns the secret polynomial they form.
func NewRandomPolynomial(curve Curve, count int) (*Polynomial, error) {
	if count < 1 {
		return nil, errorf(KindInvalidArgument, "coefficient count must be positive, got %d", count)
	}

	scalars := make([]Scalar, count)
	for i := range scalars {
		coeff, err := curve.ScalarRandom()
		if err != nil {
			return nil, ErrRandomness.WithCause(err)
		}
		scalars[i] = coeff
	}

	return &Polynomial{curve: curve, kind: PolySecret, scalars: scalars}, nil
}

// NewSecretPolynomial wraps existing scalar coefficients.
func NewSecretPolynomial(curve Curve, coefficients []Scalar) (*Polynomial, error) {
	if len(coefficients) == 0 {
		return nil, errorf(KindInvalidArgument, "polynomial needs at least one coefficient")
	}
	return &Polynomial{curve: curve, kind: PolySecret, scalars: coefficients}, nil
}

// NewCommitmentPolynomial wraps existing point coefficients.
func NewCommitmentPolynomial(curve Curve, coefficients []Point) (*Polynomial, error) {
	if len(coefficients) == 0 {
		return nil, errorf(KindInvalidArgument, "polynomial needs at least one coefficient")
	}
	return &Polynomial{curve: curve, kind: PolyCommitment, points: coefficients}, nil
}

// Kind returns the coefficient variant.
func (p *Polynomial) Kind() PolynomialKind {
	return p.kind
}

// Len returns the coefficient count.
func (p *Polynomial) Len() int {
	if p.kind == PolySecret {
		return len(p.scalars)
	}
	return len(p.points)
}

// Degree returns the polynomial degree.
func (p *Polynomial) Degree() int {
	return p.Len() - 1
}

// Commitment maps every scalar coefficient through the base point and
// returns the resulting public polynomial. The mapping is one-way; a
// commitment cannot be committed again.
func (p *Polynomial) Commitment() (*Polynomial, error) {
	if p.kind != PolySecret {
		return nil, ErrInvalidState.
			WithContext("op", "commitment").
			WithContext("kind", p.kind.String())
	}

	g := p.curve.BasePoint()
	points := make([]Point, len(p.scalars))
	for i, coeff := range p.scalars {
		points[i] = g.Mul(coeff)
	}

	return &Polynomial{curve: p.curve, kind: PolyCommitment, points: points}, nil
}

// ConstantPoint returns the commitment to the constant term, the witness
// for the dealer's proof of knowledge.
func (p *Polynomial) ConstantPoint() (Point, error) {
	if p.kind != PolyCommitment {
		return nil, ErrInvalidState.
			WithContext("op", "constant_point").
			WithContext("kind", p.kind.String())
	}
	return p.points[0], nil
}

// Evaluate evaluates a secret polynomial at the given index with
// Horner's method and returns the resulting share. A nil index draws a
// fresh random nonzero one.
func (p *Polynomial) Evaluate(index Scalar) (*Share, error) {
	if p.kind != PolySecret {
		return nil, ErrInvalidState.
			WithContext("op", "evaluate").
			WithContext("kind", p.kind.String())
	}

	if index == nil {
		var err error
		if index, err = p.curve.ScalarRandom(); err != nil {
			return nil, ErrRandomness.WithCause(err)
		}
	}

	// Horner from the top coefficient down. Starting from zero keeps
	// the returned value a fresh scalar rather than an alias into the
	// coefficient slice, so zeroizing a share never damages the
	// polynomial and vice versa.
	value := p.curve.ScalarZero()
	for i := len(p.scalars) - 1; i >= 0; i-- {
		value = value.Mul(index).Add(p.scalars[i])
	}

	return &Share{Value: value, Index: index}, nil
}

// EvaluateCommitment evaluates a commitment polynomial at the given
// index, Horner's method with mixed scalar-point arithmetic. The result
// is a verification point, never usable as a share.
func (p *Polynomial) EvaluateCommitment(index Scalar) (Point, error) {
	if p.kind != PolyCommitment {
		return nil, ErrInvalidState.
			WithContext("op", "evaluate_commitment").
			WithContext("kind", p.kind.String())
	}
	if index == nil {
		return nil, errorf(KindInvalidArgument, "commitment evaluation requires an explicit index")
	}

	result := p.curve.PointIdentity()
	for i := len(p.points) - 1; i >= 0; i-- {
		result = result.Mul(index).Add(p.points[i])
	}

	return result, nil
}

// Equal reports coefficient-wise equality of two polynomials of the
// same kind.
func (p *Polynomial) Equal(other *Polynomial) bool {
	if p.kind != other.kind || p.Len() != other.Len() {
		return false
	}
	if p.kind == PolySecret {
		for i := range p.scalars {
			if !p.scalars[i].Equal(other.scalars[i]) {
				return false
			}
		}
		return true
	}
	for i := range p.points {
		if !p.points[i].Equal(other.points[i]) {
			return false
		}
	}
	return true
}

// Bytes returns the self-describing encoding: one kind byte, a 4-byte
// big-endian coefficient count, then the fixed-width coefficients.
func (p *Polynomial) Bytes() []byte {
	var width int
	if p.kind == PolySecret {
		width = p.curve.ScalarSize()
	} else {
		width = p.curve.PointSize()
	}

	out := make([]byte, 0, 5+p.Len()*width)
	out = append(out, byte(p.kind))
	out = binary.BigEndian.AppendUint32(out, uint32(p.Len()))

	if p.kind == PolySecret {
		for _, coeff := range p.scalars {
			out = append(out, coeff.Bytes()...)
		}
	} else {
		for _, coeff := range p.points {
			out = append(out, coeff.Bytes()...)
		}
	}
	return out
}

// ParsePolynomial decodes a polynomial produced by Bytes. The kind byte
// in the encoding decides the coefficient variant; no out-of-band state
// is consulted.
func ParsePolynomial(curve Curve, data []byte) (*Polynomial, error) {
	if len(data) < 5 {
		return nil, ErrMalformedInput.WithContext("len", len(data))
	}

	kind := PolynomialKind(data[0])
	count := int(binary.BigEndian.Uint32(data[1:5]))
	body := data[5:]

	var width int
	switch kind {
	case PolySecret:
		width = curve.ScalarSize()
	case PolyCommitment:
		width = curve.PointSize()
	default:
		return nil, ErrMalformedInput.WithContext("kind", int(data[0]))
	}

	if count < 1 || len(body) != count*width {
		return nil, ErrMalformedInput.
			WithContext("len", len(body)).
			WithContext("want", count*width)
	}

	poly := &Polynomial{curve: curve, kind: kind}
	if kind == PolySecret {
		poly.scalars = make([]Scalar, count)
		for i := 0; i < count; i++ {
			coeff, err := curve.ScalarFromBytes(body[i*width : (i+1)*width])
			if err != nil {
				return nil, ErrMalformedInput.WithCause(err).WithContext("coefficient", i)
			}
			poly.scalars[i] = coeff
		}
	} else {
		poly.points = make([]Point, count)
		for i := 0; i < count; i++ {
			coeff, err := curve.PointFromBytes(body[i*width : (i+1)*width])
			if err != nil {
				return nil, ErrMalformedInput.WithCause(err).WithContext("coefficient", i)
			}
			poly.points[i] = coeff
		}
	}
	return poly, nil
}

// Zeroize wipes the scalar coefficients of a secret polynomial.
// Commitment polynomials hold no sensitive material.
func (p *Polynomial) Zeroize() {
	for i, coeff := range p.scalars {
		if coeff != nil {
			coeff.Zeroize()
		}
		p.scalars[i] = nil
	}
	p.scalars = nil
}
