package dkg

import (
	"errors"
	"testing"
)

func TestTwoPartySplitAndReassemble(t *testing.T) {
	for _, curve := range allCurves() {
		t.Run(curve.Name(), func(t *testing.T) {
			secret, err := curve.ScalarRandom()
			if err != nil {
				t.Fatalf("failed to generate secret: %v", err)
			}
			chosenShare, err := curve.ScalarRandom()
			if err != nil {
				t.Fatalf("failed to generate share: %v", err)
			}
			chosenIndex, err := curve.ScalarRandom()
			if err != nil {
				t.Fatalf("failed to generate index: %v", err)
			}

			complement, err := Split(curve, secret, chosenShare, chosenIndex)
			if err != nil {
				t.Fatalf("split failed: %v", err)
			}

			// The complementary element reveals neither the secret nor
			// the chosen half.
			if complement.Share.Equal(secret) {
				t.Fatal("complementary share equals the secret")
			}
			if complement.Share.Equal(chosenShare) || complement.Index.Equal(chosenIndex) {
				t.Fatal("complementary element repeats the chosen element")
			}

			chosen := NewTwoPartyElement(chosenShare, chosenIndex)

			// Reassembly works in both argument orders.
			got, err := complement.ReassembleWith(chosen)
			if err != nil {
				t.Fatalf("reassembly failed: %v", err)
			}
			if !got.Equal(secret) {
				t.Fatal("reassembled value is not the secret")
			}

			got, err = chosen.ReassembleWith(complement)
			if err != nil {
				t.Fatalf("reassembly failed: %v", err)
			}
			if !got.Equal(secret) {
				t.Fatal("reassembly is not symmetric")
			}

			// A mismatched element reassembles into garbage, silently.
			strayShare, _ := curve.ScalarRandom()
			strayIndex, _ := curve.ScalarRandom()
			stray := NewTwoPartyElement(strayShare, strayIndex)
			got, err = stray.ReassembleWith(chosen)
			if err != nil {
				t.Fatalf("reassembly failed: %v", err)
			}
			if got.Equal(secret) {
				t.Fatal("mismatched element still produced the secret")
			}
		})
	}
}

func TestTwoPartySplitRejectsZeroIndex(t *testing.T) {
	curve := NewSecp256k1Curve()

	secret, _ := curve.ScalarRandom()
	share, _ := curve.ScalarRandom()

	_, err := Split(curve, secret, share, curve.ScalarZero())
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for zero index, got %v", err)
	}
}

func TestTwoPartyReassembleRejectsDegenerateIndices(t *testing.T) {
	curve := NewSecp256k1Curve()

	share1, _ := curve.ScalarRandom()
	share2, _ := curve.ScalarRandom()
	index, _ := curve.ScalarRandom()

	a := NewTwoPartyElement(share1, index)
	b := NewTwoPartyElement(share2, index)
	if _, err := a.ReassembleWith(b); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for colliding indices, got %v", err)
	}

	c := NewTwoPartyElement(share2, curve.ScalarZero())
	if _, err := a.ReassembleWith(c); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for zero index, got %v", err)
	}
}

func TestFromSharedSecretDeterministic(t *testing.T) {
	for _, curve := range allCurves() {
		t.Run(curve.Name(), func(t *testing.T) {
			privateKey, err := curve.ScalarRandom()
			if err != nil {
				t.Fatalf("failed to generate key: %v", err)
			}
			r1, _ := curve.ScalarRandom()
			r2, _ := curve.ScalarRandom()
			sharePoint := curve.BasePoint().Mul(r1)
			indexPoint := curve.BasePoint().Mul(r2)

			e1, err := FromSharedSecret(curve, privateKey, sharePoint, indexPoint)
			if err != nil {
				t.Fatalf("derivation failed: %v", err)
			}
			e2, err := FromSharedSecret(curve, privateKey, sharePoint, indexPoint)
			if err != nil {
				t.Fatalf("derivation failed: %v", err)
			}

			if !e1.Share.Equal(e2.Share) || !e1.Index.Equal(e2.Index) {
				t.Fatal("derivation is not deterministic")
			}

			// Share and index derive from independent points and must
			// differ.
			if e1.Share.Equal(e1.Index) {
				t.Fatal("share and index collapsed to the same scalar")
			}

			// Swapping the points changes the element.
			e3, err := FromSharedSecret(curve, privateKey, indexPoint, sharePoint)
			if err != nil {
				t.Fatalf("derivation failed: %v", err)
			}
			if e3.Share.Equal(e1.Share) {
				t.Fatal("derivation ignores which point is which")
			}
		})
	}
}

func TestFromSharedSecretFeedsSplit(t *testing.T) {
	curve := NewSecp256k1Curve()

	secret, _ := curve.ScalarRandom()
	privateKey, _ := curve.ScalarRandom()
	r1, _ := curve.ScalarRandom()
	r2, _ := curve.ScalarRandom()
	sharePoint := curve.BasePoint().Mul(r1)
	indexPoint := curve.BasePoint().Mul(r2)

	deterministic, err := FromSharedSecret(curve, privateKey, sharePoint, indexPoint)
	if err != nil {
		t.Fatalf("derivation failed: %v", err)
	}

	complement, err := Split(curve, secret, deterministic.Share, deterministic.Index)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}

	got, err := complement.ReassembleWith(deterministic)
	if err != nil {
		t.Fatalf("reassembly failed: %v", err)
	}
	if !got.Equal(secret) {
		t.Fatal("deterministic element did not reassemble the secret")
	}
}

func TestFromSharedSecretRejectsDegenerateInputs(t *testing.T) {
	curve := NewSecp256k1Curve()

	privateKey, _ := curve.ScalarRandom()
	r, _ := curve.ScalarRandom()
	point := curve.BasePoint().Mul(r)

	if _, err := FromSharedSecret(curve, curve.ScalarZero(), point, point); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for zero key, got %v", err)
	}
	if _, err := FromSharedSecret(curve, privateKey, curve.PointIdentity(), point); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for identity share point, got %v", err)
	}
	if _, err := FromSharedSecret(curve, privateKey, point, curve.PointIdentity()); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for identity index point, got %v", err)
	}
}

// Both parties multiply their share by a common scalar; reassembling the
// adjusted elements yields the secret under the same multiplication.
func TestTwoPartyComputation(t *testing.T) {
	curve := NewSecp256k1Curve()

	secret, _ := curve.ScalarRandom()
	chosenShare, _ := curve.ScalarRandom()
	chosenIndex, _ := curve.ScalarRandom()

	complement, err := Split(curve, secret, chosenShare, chosenIndex)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	chosen := NewTwoPartyElement(chosenShare, chosenIndex)

	multiplier, _ := curve.ScalarRandom()
	adjusted1 := NewTwoPartyElement(complement.Share.Mul(multiplier), complement.Index)
	adjusted2 := NewTwoPartyElement(chosen.Share.Mul(multiplier), chosen.Index)

	got, err := adjusted1.ReassembleWith(adjusted2)
	if err != nil {
		t.Fatalf("reassembly failed: %v", err)
	}
	if !got.Equal(secret.Mul(multiplier)) {
		t.Fatal("two-party computation did not track the multiplier")
	}

	// Mixing an adjusted element with an unadjusted one breaks the
	// relation.
	got, err = adjusted1.ReassembleWith(chosen)
	if err != nil {
		t.Fatalf("reassembly failed: %v", err)
	}
	if got.Equal(secret.Mul(multiplier)) {
		t.Fatal("unadjusted element still tracked the computation")
	}
}

func TestTwoPartyPointElements(t *testing.T) {
	for _, curve := range allCurves() {
		t.Run(curve.Name(), func(t *testing.T) {
			secret, _ := curve.ScalarRandom()
			chosenShare, _ := curve.ScalarRandom()
			chosenIndex, _ := curve.ScalarRandom()

			complement, err := Split(curve, secret, chosenShare, chosenIndex)
			if err != nil {
				t.Fatalf("split failed: %v", err)
			}
			chosen := NewTwoPartyElement(chosenShare, chosenIndex)

			// Lifting both halves through the base point reassembles
			// the secret's public image.
			got, err := complement.Commitment(curve).ReassembleWith(chosen.Commitment(curve))
			if err != nil {
				t.Fatalf("point reassembly failed: %v", err)
			}
			if !got.Equal(curve.BasePoint().Mul(secret)) {
				t.Fatal("point reassembly does not match the secret's image")
			}
		})
	}
}

func TestTwoPartyElementSerialization(t *testing.T) {
	curve := NewEd25519Curve()

	share, _ := curve.ScalarRandom()
	index, _ := curve.ScalarRandom()
	element := NewTwoPartyElement(share, index)

	encoded := element.Bytes()
	decoded, err := ParseTwoPartyElement(curve, encoded)
	if err != nil {
		t.Fatalf("failed to parse element: %v", err)
	}
	if !decoded.Share.Equal(share) || !decoded.Index.Equal(index) {
		t.Fatal("element serialization roundtrip failed")
	}

	if _, err := ParseTwoPartyElement(curve, encoded[:len(encoded)-2]); !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}
