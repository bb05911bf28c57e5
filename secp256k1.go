package dkg

import (
	"crypto/rand"
	"encoding/hex"
	"runtime"

	"github.com/btcsuite/btcd/btcec/v2"
)

// Secp256k1Curve implements the Curve interface for secp256k1.
type Secp256k1Curve struct{}

// NewSecp256k1Curve creates a new secp256k1 curve instance.
func NewSecp256k1Curve() *Secp256k1Curve {
	return &Secp256k1Curve{}
}

func (c *Secp256k1Curve) Name() string    { return "secp256k1" }
func (c *Secp256k1Curve) ScalarSize() int { return 32 }
func (c *Secp256k1Curve) PointSize() int  { return 33 } // compressed

func (c *Secp256k1Curve) ScalarFromBytes(data []byte) (Scalar, error) {
	if len(data) != 32 {
		return nil, ErrInvalidScalarLength
	}

	scalar := new(btcec.ModNScalar)
	scalar.SetBytes((*[32]byte)(data)) // reduces mod n, overflow ignored

	return &Secp256k1Scalar{inner: scalar}, nil
}

func (c *Secp256k1Curve) ScalarFromUniformBytes(data []byte) (Scalar, error) {
	if len(data) < 32 {
		return nil, ErrInvalidScalarLength
	}

	// Reduce the leading 32 bytes modulo the group order. The bias this
	// introduces is on the order of 2^-128 and cryptographically
	// irrelevant for a 256-bit order.
	scalar := new(btcec.ModNScalar)
	scalar.SetBytes((*[32]byte)(data[:32]))
	return &Secp256k1Scalar{inner: scalar}, nil
}

func (c *Secp256k1Curve) ScalarRandom() (Scalar, error) {
	for {
		var buf [32]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return nil, err
		}

		scalar := new(btcec.ModNScalar)
		overflow := scalar.SetBytes(&buf)
		if overflow == 0 && !scalar.IsZero() {
			return &Secp256k1Scalar{inner: scalar}, nil
		}
		// Overflow or zero: resample.
	}
}

func (c *Secp256k1Curve) ScalarZero() Scalar {
	return &Secp256k1Scalar{inner: new(btcec.ModNScalar)}
}

func (c *Secp256k1Curve) ScalarOne() Scalar {
	scalar := new(btcec.ModNScalar)
	scalar.SetInt(1)
	return &Secp256k1Scalar{inner: scalar}
}

func (c *Secp256k1Curve) PointFromBytes(data []byte) (Point, error) {
	if len(data) != 33 {
		return nil, ErrInvalidPointLength
	}

	pubKey, err := btcec.ParsePubKey(data)
	if err != nil {
		return nil, ErrInvalidPointBytes
	}

	return &Secp256k1Point{inner: pubKey}, nil
}

func (c *Secp256k1Curve) BasePoint() Point {
	return &Secp256k1Point{inner: btcec.Generator()}
}

func (c *Secp256k1Curve) PointIdentity() Point {
	// Point at infinity.
	return &Secp256k1Point{inner: nil}
}

// Secp256k1Scalar implements the Scalar interface.
type Secp256k1Scalar struct {
	inner *btcec.ModNScalar
}

func (s *Secp256k1Scalar) Bytes() []byte {
	var buf [32]byte
	s.inner.PutBytes(&buf)
	return buf[:]
}

func (s *Secp256k1Scalar) String() string {
	return hex.EncodeToString(s.Bytes())
}

func (s *Secp256k1Scalar) Add(other Scalar) Scalar {
	result := new(btcec.ModNScalar)
	result.Add(s.inner).Add(other.(*Secp256k1Scalar).inner)
	return &Secp256k1Scalar{inner: result}
}

func (s *Secp256k1Scalar) Sub(other Scalar) Scalar {
	neg := new(btcec.ModNScalar)
	neg.Set(other.(*Secp256k1Scalar).inner).Negate()
	result := new(btcec.ModNScalar)
	result.Add(s.inner).Add(neg)
	return &Secp256k1Scalar{inner: result}
}

func (s *Secp256k1Scalar) Mul(other Scalar) Scalar {
	result := new(btcec.ModNScalar)
	result.Set(s.inner).Mul(other.(*Secp256k1Scalar).inner)
	return &Secp256k1Scalar{inner: result}
}

func (s *Secp256k1Scalar) Negate() Scalar {
	result := new(btcec.ModNScalar)
	result.Set(s.inner).Negate()
	return &Secp256k1Scalar{inner: result}
}

func (s *Secp256k1Scalar) Invert() (Scalar, error) {
	if s.IsZero() {
		return nil, ErrScalarZero
	}

	// btcec exposes only the variable-time inversion. Acceptable here:
	// inversions in this package run on indices, never on secrets.
	result := new(btcec.ModNScalar)
	result.Set(s.inner).InverseNonConst()
	return &Secp256k1Scalar{inner: result}, nil
}

func (s *Secp256k1Scalar) Equal(other Scalar) bool {
	return s.inner.Equals(other.(*Secp256k1Scalar).inner)
}

func (s *Secp256k1Scalar) IsZero() bool {
	return s.inner.IsZero()
}

func (s *Secp256k1Scalar) Zeroize() {
	s.inner.Zero()
	runtime.KeepAlive(s)
}

// Secp256k1Point implements the Point interface.
type Secp256k1Point struct {
	inner *btcec.PublicKey
}

func (p *Secp256k1Point) Bytes() []byte {
	if p.inner == nil {
		return make([]byte, 33) // point at infinity
	}
	return p.inner.SerializeCompressed()
}

func (p *Secp256k1Point) String() string {
	return hex.EncodeToString(p.Bytes())
}

func (p *Secp256k1Point) Add(other Point) Point {
	o := other.(*Secp256k1Point)
	if p.inner == nil {
		return o
	}
	if o.inner == nil {
		return p
	}

	var a, b btcec.JacobianPoint
	p.inner.AsJacobian(&a)
	o.inner.AsJacobian(&b)

	var result btcec.JacobianPoint
	btcec.AddNonConst(&a, &b, &result)

	if result.Z.Normalize().IsZero() {
		return &Secp256k1Point{inner: nil} // P + (-P)
	}

	result.ToAffine()
	return &Secp256k1Point{inner: btcec.NewPublicKey(&result.X, &result.Y)}
}

func (p *Secp256k1Point) Sub(other Point) Point {
	return p.Add(other.Negate())
}

func (p *Secp256k1Point) Mul(scalar Scalar) Point {
	if p.inner == nil || scalar.IsZero() {
		return &Secp256k1Point{inner: nil}
	}

	var k btcec.ModNScalar
	k.Set(scalar.(*Secp256k1Scalar).inner)

	var point btcec.JacobianPoint
	p.inner.AsJacobian(&point)

	var result btcec.JacobianPoint
	btcec.ScalarMultNonConst(&k, &point, &result)

	result.ToAffine()
	return &Secp256k1Point{inner: btcec.NewPublicKey(&result.X, &result.Y)}
}

func (p *Secp256k1Point) Negate() Point {
	if p.inner == nil {
		return p
	}

	var jac btcec.JacobianPoint
	p.inner.AsJacobian(&jac)
	jac.Y.Negate(1)
	jac.ToAffine()

	return &Secp256k1Point{inner: btcec.NewPublicKey(&jac.X, &jac.Y)}
}

func (p *Secp256k1Point) Equal(other Point) bool {
	o := other.(*Secp256k1Point)
	if p.inner == nil || o.inner == nil {
		return p.inner == nil && o.inner == nil
	}
	return p.inner.IsEqual(o.inner)
}

func (p *Secp256k1Point) IsIdentity() bool {
	return p.inner == nil
}
