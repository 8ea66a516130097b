package frost

import (
	"time"

	"github.com/rs/zerolog"
)

// AuditEventType classifies the security-relevant actions a Signer can
// take. Hosts that must keep an operator-facing trail subscribe through
// an AuditSink; the trail never contains key material.
type AuditEventType string

const (
	AuditEventProvision        AuditEventType = "provision"
	AuditEventKeysErased       AuditEventType = "keys_erased"
	AuditEventCommit           AuditEventType = "commit"
	AuditEventPartialSignature AuditEventType = "partial_signature"
	AuditEventUserRejection    AuditEventType = "user_rejection"
	AuditEventSessionAbort     AuditEventType = "session_abort"
	AuditEventValidationError  AuditEventType = "validation_error"
)

// AuditEvent is a single entry in the signer's audit trail.
type AuditEvent struct {
	Timestamp    time.Time      `json:"timestamp"`
	Type         AuditEventType `json:"type"`
	Curve        CurveType      `json:"curve,omitempty"`
	Identifier   uint16         `json:"identifier,omitempty"`
	Participants int            `json:"participants,omitempty"`
	Kind         ErrorKind      `json:"kind,omitempty"`
	Error        string         `json:"error,omitempty"`
}

// AuditSink receives audit events as they happen. Implementations must
// not block; the signer calls them while holding its session lock.
type AuditSink interface {
	Record(event AuditEvent)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Record(AuditEvent) {}

// ZerologSink writes audit events as structured log lines.
type ZerologSink struct {
	Logger zerolog.Logger
}

func (s ZerologSink) Record(e AuditEvent) {
	evt := s.Logger.Info().
		Time("timestamp", e.Timestamp).
		Str("event", string(e.Type))
	if e.Curve != "" {
		evt = evt.Str("curve", string(e.Curve))
	}
	if e.Identifier != 0 {
		evt = evt.Uint16("identifier", e.Identifier)
	}
	if e.Participants != 0 {
		evt = evt.Int("participants", e.Participants)
	}
	if e.Kind != "" {
		evt = evt.Str("kind", string(e.Kind))
	}
	if e.Error != "" {
		evt = evt.Str("error", e.Error)
	}
	evt.Msg("audit")
}

// MemorySink appends events to an in-memory slice. Test helper.
type MemorySink struct {
	Events []AuditEvent
}

func (s *MemorySink) Record(e AuditEvent) {
	s.Events = append(s.Events, e)
}
