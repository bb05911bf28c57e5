package dkg

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
)

// babyJubjubOrder is the order of the Baby Jubjub prime-order subgroup,
// distinct from the BN254 scalar field order.
var babyJubjubOrder *big.Int

func init() {
	curve := twistededwards.GetEdwardsCurve()
	babyJubjubOrder = new(big.Int).Set(&curve.Order)
}

// BabyJubjubCurve implements the Curve interface for the Baby Jubjub
// twisted Edwards curve embedded in the BN254 scalar field. Useful when
// shares feed zero-knowledge circuits natively.
type BabyJubjubCurve struct{}

// NewBabyJubjubCurve creates a new Baby Jubjub curve instance.
func NewBabyJubjubCurve() *BabyJubjubCurve {
	return &BabyJubjubCurve{}
}

func (c *BabyJubjubCurve) Name() string    { return "babyjubjub" }
func (c *BabyJubjubCurve) ScalarSize() int { return 32 }
func (c *BabyJubjubCurve) PointSize() int  { return 32 }

func (c *BabyJubjubCurve) ScalarFromBytes(data []byte) (Scalar, error) {
	if len(data) != 32 {
		return nil, ErrInvalidScalarLength
	}

	v := new(big.Int).SetBytes(data)
	if v.Cmp(babyJubjubOrder) >= 0 {
		return nil, ErrInvalidScalarBytes
	}
	return &BabyJubjubScalar{inner: v}, nil
}

func (c *BabyJubjubCurve) ScalarFromUniformBytes(data []byte) (Scalar, error) {
	if len(data) < 32 {
		return nil, ErrInvalidScalarLength
	}

	// Wide reduction: interpreting up to 64 bytes keeps the mod-order
	// bias negligible against the ~251-bit subgroup order.
	v := new(big.Int).SetBytes(data)
	v.Mod(v, babyJubjubOrder)
	return &BabyJubjubScalar{inner: v}, nil
}

func (c *BabyJubjubCurve) ScalarRandom() (Scalar, error) {
	for {
		v, err := rand.Int(rand.Reader, babyJubjubOrder)
		if err != nil {
			return nil, err
		}
		if v.Sign() != 0 {
			return &BabyJubjubScalar{inner: v}, nil
		}
	}
}

func (c *BabyJubjubCurve) ScalarZero() Scalar {
	return &BabyJubjubScalar{inner: new(big.Int)}
}

func (c *BabyJubjubCurve) ScalarOne() Scalar {
	return &BabyJubjubScalar{inner: big.NewInt(1)}
}

func (c *BabyJubjubCurve) PointFromBytes(data []byte) (Point, error) {
	if len(data) != 32 {
		return nil, ErrInvalidPointLength
	}

	var point twistededwards.PointAffine
	if err := point.Unmarshal(data); err != nil {
		return nil, ErrInvalidPointBytes
	}
	return &BabyJubjubPoint{inner: point}, nil
}

func (c *BabyJubjubCurve) BasePoint() Point {
	return &BabyJubjubPoint{inner: twistededwards.GetEdwardsCurve().Base}
}

func (c *BabyJubjubCurve) PointIdentity() Point {
	var point twistededwards.PointAffine
	point.X.SetZero()
	point.Y.SetOne()
	return &BabyJubjubPoint{inner: point}
}

// BabyJubjubScalar implements the Scalar interface over big.Int with
// modular arithmetic on the subgroup order.
type BabyJubjubScalar struct {
	inner *big.Int
}

func (s *BabyJubjubScalar) Bytes() []byte {
	out := make([]byte, 32)
	s.inner.FillBytes(out)
	return out
}

func (s *BabyJubjubScalar) String() string {
	return hex.EncodeToString(s.Bytes())
}

func (s *BabyJubjubScalar) Add(other Scalar) Scalar {
	result := new(big.Int).Add(s.inner, other.(*BabyJubjubScalar).inner)
	result.Mod(result, babyJubjubOrder)
	return &BabyJubjubScalar{inner: result}
}

func (s *BabyJubjubScalar) Sub(other Scalar) Scalar {
	result := new(big.Int).Sub(s.inner, other.(*BabyJubjubScalar).inner)
	result.Mod(result, babyJubjubOrder)
	return &BabyJubjubScalar{inner: result}
}

func (s *BabyJubjubScalar) Mul(other Scalar) Scalar {
	result := new(big.Int).Mul(s.inner, other.(*BabyJubjubScalar).inner)
	result.Mod(result, babyJubjubOrder)
	return &BabyJubjubScalar{inner: result}
}

func (s *BabyJubjubScalar) Negate() Scalar {
	result := new(big.Int).Neg(s.inner)
	result.Mod(result, babyJubjubOrder)
	return &BabyJubjubScalar{inner: result}
}

func (s *BabyJubjubScalar) Invert() (Scalar, error) {
	if s.IsZero() {
		return nil, ErrScalarZero
	}

	result := new(big.Int).ModInverse(s.inner, babyJubjubOrder)
	return &BabyJubjubScalar{inner: result}, nil
}

func (s *BabyJubjubScalar) Equal(other Scalar) bool {
	return s.inner.Cmp(other.(*BabyJubjubScalar).inner) == 0
}

func (s *BabyJubjubScalar) IsZero() bool {
	return s.inner.Sign() == 0
}

func (s *BabyJubjubScalar) Zeroize() {
	// big.Int has no wipe primitive; overwrite the limbs before
	// dropping the value.
	bits := s.inner.Bits()
	for i := range bits {
		bits[i] = 0
	}
	s.inner.SetInt64(0)
}

// BabyJubjubPoint implements the Point interface by wrapping
// gnark-crypto's affine twisted Edwards point.
type BabyJubjubPoint struct {
	inner twistededwards.PointAffine
}

func (p *BabyJubjubPoint) Bytes() []byte {
	buf := p.inner.Bytes()
	return buf[:]
}

func (p *BabyJubjubPoint) String() string {
	return hex.EncodeToString(p.Bytes())
}

func (p *BabyJubjubPoint) Add(other Point) Point {
	var result BabyJubjubPoint
	result.inner.Add(&p.inner, &other.(*BabyJubjubPoint).inner)
	return &result
}

func (p *BabyJubjubPoint) Sub(other Point) Point {
	var neg twistededwards.PointAffine
	neg.Neg(&other.(*BabyJubjubPoint).inner)

	var result BabyJubjubPoint
	result.inner.Add(&p.inner, &neg)
	return &result
}

func (p *BabyJubjubPoint) Mul(scalar Scalar) Point {
	var result BabyJubjubPoint
	result.inner.ScalarMultiplication(&p.inner, scalar.(*BabyJubjubScalar).inner)
	return &result
}

func (p *BabyJubjubPoint) Negate() Point {
	var result BabyJubjubPoint
	result.inner.Neg(&p.inner)
	return &result
}

func (p *BabyJubjubPoint) Equal(other Point) bool {
	return p.inner.Equal(&other.(*BabyJubjubPoint).inner)
}

func (p *BabyJubjubPoint) IsIdentity() bool {
	return p.inner.IsZero()
}
