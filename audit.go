package dkg

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// CeremonyEventType labels an entry in a ceremony's audit trail.
type CeremonyEventType string

const (
	EventSharesGenerated    CeremonyEventType = "shares_generated"
	EventCommitmentVerified CeremonyEventType = "commitment_verified"
	EventShareVerified      CeremonyEventType = "share_verified"
	EventCeremonyAborted    CeremonyEventType = "ceremony_aborted"
)

// CeremonyEvent is a single audit record. Events carry only public
// protocol metadata, never share or key material, and serialize to JSON
// for whatever sink the embedding process uses.
type CeremonyEvent struct {
	EventID    string            `json:"event_id"`
	Timestamp  time.Time         `json:"timestamp"`
	Type       CeremonyEventType `json:"event_type"`
	CeremonyID string            `json:"ceremony_id"`
	CurveName  string            `json:"curve_name"`
	Threshold  int               `json:"threshold"`
	Dealers    int               `json:"participant_count"`
	State      string            `json:"state"`
	Error      string            `json:"error,omitempty"`
}

// maxAuditEvents bounds the in-memory trail; a ceremony emits a handful
// of events, the cap only matters if a caller loops a recorder across
// many verifications.
const maxAuditEvents = 1024

// AuditRecorder collects ceremony events in memory. Safe for concurrent
// use; purely observational, no I/O.
type AuditRecorder struct {
	mu     sync.Mutex
	events []CeremonyEvent
}

// NewAuditRecorder creates an empty recorder.
func NewAuditRecorder() *AuditRecorder {
	return &AuditRecorder{}
}

// Events returns a copy of the recorded trail.
func (r *AuditRecorder) Events() []CeremonyEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]CeremonyEvent, len(r.events))
	copy(out, r.events)
	return out
}

func (r *AuditRecorder) record(c *Ceremony, eventType CeremonyEventType, cause error) {
	event := CeremonyEvent{
		EventID:    newEventID(),
		Timestamp:  time.Now().UTC(),
		Type:       eventType,
		CeremonyID: hex.EncodeToString(c.id),
		CurveName:  c.curve.Name(),
		Threshold:  c.threshold,
		Dealers:    c.participants,
		State:      c.state.String(),
	}
	if cause != nil {
		event.Error = cause.Error()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) >= maxAuditEvents {
		r.events = r.events[1:]
	}
	r.events = append(r.events, event)
}

// newEventID generates a random 8-byte hex identifier. Falls back to a
// timestamp id if the random source fails; audit ids are not
// security-relevant.
func newEventID() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return fmt.Sprintf("evt-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf[:])
}
