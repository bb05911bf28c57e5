package dkg

import (
	"bytes"
	"errors"
)

// CeremonyState tracks a participant's progress through one DKG run.
type CeremonyState uint8

const (
	StateUnstarted CeremonyState = iota
	StateSharesGenerated
	StateCommitmentVerified
	StateSharesVerified
	StateAborted
)

func (s CeremonyState) String() string {
	switch s {
	case StateUnstarted:
		return "unstarted"
	case StateSharesGenerated:
		return "shares_generated"
	case StateCommitmentVerified:
		return "commitment_verified"
	case StateSharesVerified:
		return "shares_verified"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Deal is a dealer's round 1 output: the public commitment polynomial,
// the proof of knowledge of its constant term, and the shares to
// distribute to the participants. Distribution is external to this
// package.
type Deal struct {
	Commitment *Polynomial
	Proof      *SchnorrProof
	Shares     []*Share
}

// GenerateShares runs Round 1 of Pedersen's DKG: sample a secret
// polynomial with threshold coefficients, commit to it, prove knowledge
// of the constant term bound to ceremonyID, and evaluate
// participantCount shares at independently random indices.
//
// Threshold convention: exactly threshold coefficients are sampled
// (degree threshold-1), so threshold shares reconstruct the secret.
//
// Binding the proof to ceremonyID is the rogue-key countermeasure: a
// proof transplanted from another ceremony fails verification, so a
// participant cannot contribute a commitment derived from someone
// else's without knowing its discrete log.
func GenerateShares(curve Curve, threshold, participantCount int, ceremonyID []byte) (*Deal, error) {
	if err := checkCeremonyParams(threshold, participantCount, ceremonyID); err != nil {
		return nil, err
	}

	poly, err := NewRandomPolynomial(curve, threshold)
	if err != nil {
		return nil, err
	}
	defer poly.Zeroize()

	commitment, err := poly.Commitment()
	if err != nil {
		return nil, err
	}

	proof, err := ProveKnowledge(curve, poly.scalars[0], ceremonyID)
	if err != nil {
		return nil, err
	}

	shares := make([]*Share, participantCount)
	for i := range shares {
		if shares[i], err = poly.Evaluate(nil); err != nil {
			return nil, err
		}
	}

	return &Deal{Commitment: commitment, Proof: proof, Shares: shares}, nil
}

// VerifyCommitment checks the dealer's proof of knowledge against the
// commitment's constant term under the given ceremony id. A recipient
// must obtain a nil error here before accepting any share from the same
// dealer.
func VerifyCommitment(curve Curve, commitment *Polynomial, proof *SchnorrProof, ceremonyID []byte) error {
	if proof == nil {
		return errorf(KindInvalidArgument, "proof is nil")
	}

	witness, err := commitment.ConstantPoint()
	if err != nil {
		return err
	}
	return proof.Verify(curve, witness, ceremonyID)
}

// VerifyShare checks a received share against the dealer's commitment.
func VerifyShare(share *Share, commitment *Polynomial) error {
	if share == nil {
		return errorf(KindInvalidArgument, "share is nil")
	}
	return share.Verify(commitment)
}

// Ceremony is one participant's view of a single DKG run. It enforces
// the protocol order (generate, verify commitment, verify shares) and
// turns any verification failure into a terminal abort: an aborted
// ceremony refuses every further operation, and restarting requires a
// fresh Ceremony under a distinct id chosen by an operator. Blind
// re-running of a failed ceremony opens adaptive-attack windows, which
// is why no retry or reset exists here.
type Ceremony struct {
	curve        Curve
	id           []byte
	threshold    int
	participants int

	state    CeremonyState
	recorder *AuditRecorder
}

// NewCeremony validates the parameters and creates a ceremony in the
// unstarted state. The id must be unique per ceremony network-wide;
// this constructor can only enforce that it is non-empty.
func NewCeremony(curve Curve, threshold, participantCount int, ceremonyID []byte) (*Ceremony, error) {
	if err := checkCeremonyParams(threshold, participantCount, ceremonyID); err != nil {
		return nil, err
	}

	id := make([]byte, len(ceremonyID))
	copy(id, ceremonyID)

	return &Ceremony{
		curve:        curve,
		id:           id,
		threshold:    threshold,
		participants: participantCount,
		state:        StateUnstarted,
		recorder:     NewAuditRecorder(),
	}, nil
}

// ID returns a copy of the ceremony id.
func (c *Ceremony) ID() []byte {
	id := make([]byte, len(c.id))
	copy(id, c.id)
	return id
}

// State returns the current protocol state.
func (c *Ceremony) State() CeremonyState {
	return c.state
}

// Events returns the audit trail recorded so far.
func (c *Ceremony) Events() []CeremonyEvent {
	return c.recorder.Events()
}

// GenerateShares runs Round 1 for the local dealer role.
func (c *Ceremony) GenerateShares() (*Deal, error) {
	if err := c.requireState(StateUnstarted, "generate_shares"); err != nil {
		return nil, err
	}

	deal, err := GenerateShares(c.curve, c.threshold, c.participants, c.id)
	if err != nil {
		return nil, err
	}

	c.state = StateSharesGenerated
	c.record(EventSharesGenerated, nil)
	return deal, nil
}

// VerifyCommitment checks a received dealer commitment and proof. A
// proof failure aborts the ceremony.
func (c *Ceremony) VerifyCommitment(commitment *Polynomial, proof *SchnorrProof) error {
	if err := c.requireState(StateSharesGenerated, "verify_commitment"); err != nil {
		return err
	}

	if err := VerifyCommitment(c.curve, commitment, proof, c.id); err != nil {
		var protoErr *Error
		if errors.As(err, &protoErr) && protoErr.Kind == KindProofInvalid {
			return c.abort(protoErr)
		}
		return err
	}

	c.state = StateCommitmentVerified
	c.record(EventCommitmentVerified, nil)
	return nil
}

// VerifyShare checks a received share against the verified commitment.
// Callable repeatedly, once per received share; the first success moves
// the ceremony to its terminal success state. Any mismatch aborts: there
// is no partial success, the caller must discard all material from an
// aborted ceremony.
func (c *Ceremony) VerifyShare(share *Share, commitment *Polynomial) error {
	if c.state != StateCommitmentVerified && c.state != StateSharesVerified {
		return c.stateError("verify_share")
	}

	if err := VerifyShare(share, commitment); err != nil {
		var protoErr *Error
		if errors.As(err, &protoErr) && protoErr.Kind == KindCommitmentMismatch {
			return c.abort(protoErr)
		}
		return err
	}

	c.state = StateSharesVerified
	c.record(EventShareVerified, nil)
	return nil
}

func (c *Ceremony) requireState(want CeremonyState, op string) error {
	if c.state != want {
		return c.stateError(op)
	}
	return nil
}

func (c *Ceremony) stateError(op string) error {
	if c.state == StateAborted {
		return &AbortError{
			CeremonyID: c.ID(),
			State:      StateAborted,
			Cause: ErrInvalidState.
				WithContext("op", op).
				WithContext("state", c.state.String()),
		}
	}
	return ErrInvalidState.
		WithContext("op", op).
		WithContext("state", c.state.String())
}

func (c *Ceremony) abort(cause *Error) *AbortError {
	prev := c.state
	c.state = StateAborted
	c.record(EventCeremonyAborted, cause)
	return &AbortError{CeremonyID: c.ID(), State: prev, Cause: cause}
}

func (c *Ceremony) record(eventType CeremonyEventType, cause error) {
	c.recorder.record(c, eventType, cause)
}

// checkCeremonyParams applies the hard parameter rules shared by the
// package-level round functions and the session constructor. Softer
// guidance (security levels, Byzantine margins) lives in
// ParameterValidator.
func checkCeremonyParams(threshold, participantCount int, ceremonyID []byte) error {
	if threshold < 1 {
		return errorf(KindInvalidArgument, "threshold must be at least 1, got %d", threshold)
	}
	if participantCount < threshold {
		return errorf(KindInvalidArgument,
			"participant count %d below threshold %d", participantCount, threshold)
	}
	if len(bytes.TrimSpace(ceremonyID)) == 0 {
		return errorf(KindInvalidArgument, "ceremony id must not be empty")
	}
	return nil
}
