package dkg

import (
	"crypto/rand"
	"encoding/hex"

	"filippo.io/edwards25519"
)

// Ed25519Curve implements the Curve interface for the edwards25519
// prime-order subgroup.
type Ed25519Curve struct{}

// NewEd25519Curve creates a new ed25519 curve instance.
func NewEd25519Curve() *Ed25519Curve {
	return &Ed25519Curve{}
}

func (c *Ed25519Curve) Name() string    { return "ed25519" }
func (c *Ed25519Curve) ScalarSize() int { return 32 }
func (c *Ed25519Curve) PointSize() int  { return 32 }

func (c *Ed25519Curve) ScalarFromBytes(data []byte) (Scalar, error) {
	if len(data) != 32 {
		return nil, ErrInvalidScalarLength
	}

	// The canonical wire encoding of this package is big-endian across
	// all backends; edwards25519 expects little-endian.
	scalar, err := new(edwards25519.Scalar).SetCanonicalBytes(reverse32(data))
	if err != nil {
		return nil, ErrInvalidScalarBytes
	}

	return &Ed25519Scalar{inner: scalar}, nil
}

func (c *Ed25519Curve) ScalarFromUniformBytes(data []byte) (Scalar, error) {
	if len(data) < 32 {
		return nil, ErrInvalidScalarLength
	}

	wide := make([]byte, 64)
	copy(wide, data)

	scalar, err := edwards25519.NewScalar().SetUniformBytes(wide)
	if err != nil {
		return nil, ErrInvalidScalarBytes
	}
	return &Ed25519Scalar{inner: scalar}, nil
}

func (c *Ed25519Curve) ScalarRandom() (Scalar, error) {
	for {
		wide := make([]byte, 64)
		if _, err := rand.Read(wide); err != nil {
			return nil, err
		}

		scalar, err := edwards25519.NewScalar().SetUniformBytes(wide)
		if err != nil {
			return nil, err
		}
		s := &Ed25519Scalar{inner: scalar}
		if !s.IsZero() {
			return s, nil
		}
	}
}

func (c *Ed25519Curve) ScalarZero() Scalar {
	return &Ed25519Scalar{inner: edwards25519.NewScalar()}
}

func (c *Ed25519Curve) ScalarOne() Scalar {
	one := make([]byte, 32)
	one[0] = 1
	scalar, _ := edwards25519.NewScalar().SetCanonicalBytes(one)
	return &Ed25519Scalar{inner: scalar}
}

func (c *Ed25519Curve) PointFromBytes(data []byte) (Point, error) {
	if len(data) != 32 {
		return nil, ErrInvalidPointLength
	}

	point, err := new(edwards25519.Point).SetBytes(data)
	if err != nil {
		return nil, ErrInvalidPointBytes
	}

	return &Ed25519Point{inner: point}, nil
}

func (c *Ed25519Curve) BasePoint() Point {
	return &Ed25519Point{inner: edwards25519.NewGeneratorPoint()}
}

func (c *Ed25519Curve) PointIdentity() Point {
	return &Ed25519Point{inner: edwards25519.NewIdentityPoint()}
}

// Ed25519Scalar implements the Scalar interface.
type Ed25519Scalar struct {
	inner *edwards25519.Scalar
}

func (s *Ed25519Scalar) Bytes() []byte {
	return reverse32(s.inner.Bytes())
}

func (s *Ed25519Scalar) String() string {
	return hex.EncodeToString(s.Bytes())
}

func (s *Ed25519Scalar) Add(other Scalar) Scalar {
	result := edwards25519.NewScalar()
	result.Add(s.inner, other.(*Ed25519Scalar).inner)
	return &Ed25519Scalar{inner: result}
}

func (s *Ed25519Scalar) Sub(other Scalar) Scalar {
	result := edwards25519.NewScalar()
	result.Subtract(s.inner, other.(*Ed25519Scalar).inner)
	return &Ed25519Scalar{inner: result}
}

func (s *Ed25519Scalar) Mul(other Scalar) Scalar {
	result := edwards25519.NewScalar()
	result.Multiply(s.inner, other.(*Ed25519Scalar).inner)
	return &Ed25519Scalar{inner: result}
}

func (s *Ed25519Scalar) Negate() Scalar {
	result := edwards25519.NewScalar()
	result.Negate(s.inner)
	return &Ed25519Scalar{inner: result}
}

func (s *Ed25519Scalar) Invert() (Scalar, error) {
	if s.IsZero() {
		return nil, ErrScalarZero
	}

	result := edwards25519.NewScalar()
	result.Invert(s.inner)
	return &Ed25519Scalar{inner: result}, nil
}

func (s *Ed25519Scalar) Equal(other Scalar) bool {
	return s.inner.Equal(other.(*Ed25519Scalar).inner) == 1
}

func (s *Ed25519Scalar) IsZero() bool {
	return s.inner.Equal(edwards25519.NewScalar()) == 1
}

func (s *Ed25519Scalar) Zeroize() {
	// Replacing the inner scalar drops the secret value from this
	// wrapper; edwards25519 scalars are copied by value internally so
	// no other alias survives through the receiver.
	s.inner = edwards25519.NewScalar()
}

// Ed25519Point implements the Point interface.
type Ed25519Point struct {
	inner *edwards25519.Point
}

func (p *Ed25519Point) Bytes() []byte {
	return p.inner.Bytes()
}

func (p *Ed25519Point) String() string {
	return hex.EncodeToString(p.Bytes())
}

func (p *Ed25519Point) Add(other Point) Point {
	result := edwards25519.NewIdentityPoint()
	result.Add(p.inner, other.(*Ed25519Point).inner)
	return &Ed25519Point{inner: result}
}

func (p *Ed25519Point) Sub(other Point) Point {
	result := edwards25519.NewIdentityPoint()
	result.Subtract(p.inner, other.(*Ed25519Point).inner)
	return &Ed25519Point{inner: result}
}

func (p *Ed25519Point) Mul(scalar Scalar) Point {
	result := edwards25519.NewIdentityPoint()
	result.ScalarMult(scalar.(*Ed25519Scalar).inner, p.inner)
	return &Ed25519Point{inner: result}
}

func (p *Ed25519Point) Negate() Point {
	result := edwards25519.NewIdentityPoint()
	result.Negate(p.inner)
	return &Ed25519Point{inner: result}
}

func (p *Ed25519Point) Equal(other Point) bool {
	return p.inner.Equal(other.(*Ed25519Point).inner) == 1
}

func (p *Ed25519Point) IsIdentity() bool {
	return p.inner.Equal(edwards25519.NewIdentityPoint()) == 1
}

// reverse32 returns a fresh 32-byte slice with the byte order flipped.
func reverse32(data []byte) []byte {
	out := make([]byte, 32)
	for i := 0; i < 32; i++ {
		out[i] = data[31-i]
	}
	return out
}
