package dkg

import (
	"errors"
	"testing"
)

func TestRandomPolynomial(t *testing.T) {
	curve := NewSecp256k1Curve()

	poly, err := NewRandomPolynomial(curve, 4)
	if err != nil {
		t.Fatalf("failed to sample polynomial: %v", err)
	}
	if poly.Kind() != PolySecret {
		t.Fatalf("expected secret kind, got %s", poly.Kind())
	}
	if poly.Len() != 4 || poly.Degree() != 3 {
		t.Fatalf("expected 4 coefficients of degree 3, got %d/%d", poly.Len(), poly.Degree())
	}

	if _, err := NewRandomPolynomial(curve, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for zero count, got %v", err)
	}
}

func TestPolynomialCommitment(t *testing.T) {
	for _, curve := range allCurves() {
		t.Run(curve.Name(), func(t *testing.T) {
			poly, err := NewRandomPolynomial(curve, 3)
			if err != nil {
				t.Fatalf("failed to sample polynomial: %v", err)
			}

			commitment, err := poly.Commitment()
			if err != nil {
				t.Fatalf("failed to commit: %v", err)
			}
			if commitment.Kind() != PolyCommitment {
				t.Fatalf("expected commitment kind, got %s", commitment.Kind())
			}
			if commitment.Len() != poly.Len() {
				t.Fatalf("commitment has %d coefficients, polynomial %d", commitment.Len(), poly.Len())
			}

			// Coefficient-wise: C_i == a_i * G.
			g := curve.BasePoint()
			for i, coeff := range poly.scalars {
				if !commitment.points[i].Equal(g.Mul(coeff)) {
					t.Fatalf("commitment coefficient %d mismatch", i)
				}
			}

			// Committing a commitment is an invalid state.
			if _, err := commitment.Commitment(); !errors.Is(err, ErrInvalidState) {
				t.Fatalf("expected ErrInvalidState, got %v", err)
			}
		})
	}
}

func TestPolynomialEvaluate(t *testing.T) {
	curve := NewEd25519Curve()

	poly, err := NewRandomPolynomial(curve, 3)
	if err != nil {
		t.Fatalf("failed to sample polynomial: %v", err)
	}

	index, err := curve.ScalarRandom()
	if err != nil {
		t.Fatalf("failed to generate index: %v", err)
	}

	share, err := poly.Evaluate(index)
	if err != nil {
		t.Fatalf("failed to evaluate: %v", err)
	}
	if !share.Index.Equal(index) {
		t.Fatal("share carries the wrong index")
	}

	// Horner against the naive sum a0 + a1*x + a2*x^2.
	expected := curve.ScalarZero()
	power := curve.ScalarOne()
	for _, coeff := range poly.scalars {
		expected = expected.Add(coeff.Mul(power))
		power = power.Mul(index)
	}
	if !share.Value.Equal(expected) {
		t.Fatal("Horner evaluation disagrees with naive evaluation")
	}

	// Nil index draws a random one.
	s1, err := poly.Evaluate(nil)
	if err != nil {
		t.Fatalf("failed to evaluate at random index: %v", err)
	}
	s2, err := poly.Evaluate(nil)
	if err != nil {
		t.Fatalf("failed to evaluate at random index: %v", err)
	}
	if s1.Index.Equal(s2.Index) {
		t.Fatal("random indices collided")
	}

	// Evaluating the commitment variant through Evaluate is rejected.
	commitment, err := poly.Commitment()
	if err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
	if _, err := commitment.Evaluate(index); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if _, err := poly.EvaluateCommitment(index); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestCommitmentEvaluationMatchesShare(t *testing.T) {
	for _, curve := range allCurves() {
		t.Run(curve.Name(), func(t *testing.T) {
			poly, err := NewRandomPolynomial(curve, 3)
			if err != nil {
				t.Fatalf("failed to sample polynomial: %v", err)
			}
			commitment, err := poly.Commitment()
			if err != nil {
				t.Fatalf("failed to commit: %v", err)
			}

			share, err := poly.Evaluate(nil)
			if err != nil {
				t.Fatalf("failed to evaluate: %v", err)
			}

			// f(x)*G == commitment evaluated at x.
			expected, err := commitment.EvaluateCommitment(share.Index)
			if err != nil {
				t.Fatalf("failed to evaluate commitment: %v", err)
			}
			if !curve.BasePoint().Mul(share.Value).Equal(expected) {
				t.Fatal("commitment evaluation does not match the share")
			}
		})
	}
}

func TestPolynomialSerialization(t *testing.T) {
	for _, curve := range allCurves() {
		t.Run(curve.Name(), func(t *testing.T) {
			poly, err := NewRandomPolynomial(curve, 3)
			if err != nil {
				t.Fatalf("failed to sample polynomial: %v", err)
			}
			commitment, err := poly.Commitment()
			if err != nil {
				t.Fatalf("failed to commit: %v", err)
			}

			for _, p := range []*Polynomial{poly, commitment} {
				encoded := p.Bytes()
				decoded, err := ParsePolynomial(curve, encoded)
				if err != nil {
					t.Fatalf("failed to parse %s polynomial: %v", p.Kind(), err)
				}
				if decoded.Kind() != p.Kind() {
					t.Fatalf("kind not preserved: want %s, got %s", p.Kind(), decoded.Kind())
				}
				if !decoded.Equal(p) {
					t.Fatalf("%s polynomial roundtrip failed", p.Kind())
				}
			}
		})
	}
}

func TestParsePolynomialRejectsMalformedInput(t *testing.T) {
	curve := NewSecp256k1Curve()

	poly, err := NewRandomPolynomial(curve, 2)
	if err != nil {
		t.Fatalf("failed to sample polynomial: %v", err)
	}
	encoded := poly.Bytes()

	cases := map[string][]byte{
		"empty":        {},
		"header only":  encoded[:5],
		"truncated":    encoded[:len(encoded)-1],
		"trailing":     append(append([]byte{}, encoded...), 0x00),
		"unknown kind": append([]byte{0x7f}, encoded[1:]...),
	}
	for name, data := range cases {
		if _, err := ParsePolynomial(curve, data); !errors.Is(err, ErrMalformedInput) {
			t.Fatalf("%s: expected ErrMalformedInput, got %v", name, err)
		}
	}
}

func TestPolynomialZeroize(t *testing.T) {
	curve := NewSecp256k1Curve()

	poly, err := NewRandomPolynomial(curve, 3)
	if err != nil {
		t.Fatalf("failed to sample polynomial: %v", err)
	}

	coeffs := make([]Scalar, len(poly.scalars))
	copy(coeffs, poly.scalars)

	poly.Zeroize()
	if poly.scalars != nil {
		t.Fatal("coefficient slice not dropped")
	}
	for i, coeff := range coeffs {
		if !coeff.IsZero() {
			t.Fatalf("coefficient %d not wiped", i)
		}
	}
}
