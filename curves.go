package dkg

import (
	"crypto/rand"
	"errors"
	"fmt"
)

// Curve defines the interface for the elliptic curve group the protocol
// runs over. Implementations wrap an external curve library and expose
// constant-width canonical encodings for scalars and points.
type Curve interface {
	// Metadata
	Name() string
	ScalarSize() int
	PointSize() int

	// Scalar operations
	ScalarFromBytes([]byte) (Scalar, error)
	ScalarFromUniformBytes([]byte) (Scalar, error)
	ScalarRandom() (Scalar, error)
	ScalarZero() Scalar
	ScalarOne() Scalar

	// Point operations
	PointFromBytes([]byte) (Point, error)
	BasePoint() Point
	PointIdentity() Point
}

// Scalar represents an integer modulo the group order. Values are
// immutable: arithmetic returns fresh scalars and never mutates the
// receiver. Zeroize is the one exception and exists so secret material
// can be wiped when it leaves scope.
type Scalar interface {
	// Bytes returns the canonical fixed-width big-endian encoding.
	Bytes() []byte
	String() string

	Add(Scalar) Scalar
	Sub(Scalar) Scalar
	Mul(Scalar) Scalar
	Negate() Scalar
	// Invert returns the multiplicative inverse. Zero has none.
	Invert() (Scalar, error)

	Equal(Scalar) bool
	IsZero() bool

	Zeroize()
}

// Point represents an element of the curve group.
type Point interface {
	// Bytes returns the compressed fixed-width encoding.
	Bytes() []byte
	String() string

	Add(Point) Point
	Sub(Point) Point
	Mul(Scalar) Point
	Negate() Point

	Equal(Point) bool
	IsIdentity() bool
}

// CurveType identifies a supported curve backend.
type CurveType string

const (
	Secp256k1  CurveType = "secp256k1"
	Ed25519    CurveType = "ed25519"
	BabyJubjub CurveType = "babyjubjub"
)

// NewCurve creates a curve instance for the given type.
func NewCurve(curveType CurveType) (Curve, error) {
	switch curveType {
	case Secp256k1:
		return NewSecp256k1Curve(), nil
	case Ed25519:
		return NewEd25519Curve(), nil
	case BabyJubjub:
		return NewBabyJubjubCurve(), nil
	default:
		return nil, fmt.Errorf("unsupported curve type: %s", curveType)
	}
}

// Low-level curve errors. Backends return these directly; the protocol
// layer wraps them into *Error values with the appropriate kind.
var (
	ErrInvalidScalarLength = errors.New("invalid scalar length")
	ErrInvalidPointLength  = errors.New("invalid point length")
	ErrInvalidScalarBytes  = errors.New("invalid scalar value")
	ErrInvalidPointBytes   = errors.New("invalid point")
	ErrScalarZero          = errors.New("scalar is zero")
)

// SecureRandom generates cryptographically secure random bytes.
func SecureRandom(size int) ([]byte, error) {
	bytes := make([]byte, size)
	_, err := rand.Read(bytes)
	return bytes, err
}
