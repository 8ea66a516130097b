package frost

import (
	"crypto/rand"
	"crypto/sha256"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// SessionState tracks the signing session through its four phases. Any
// error other than a wrong-state or missing-keys condition returns the
// session to StateIdle with all ephemeral material wiped.
type SessionState uint8

const (
	// StateIdle holds no ephemeral material.
	StateIdle SessionState = iota

	// StateCommitted holds freshly generated nonces and their commitments.
	StateCommitted

	// StateMessageSet additionally holds the message hash to sign.
	StateMessageSet

	// StateCommitmentsSet holds the full validated commitment list and is
	// ready to produce a partial signature.
	StateCommitmentsSet
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCommitted:
		return "committed"
	case StateMessageSet:
		return "message_set"
	case StateCommitmentsSet:
		return "commitments_set"
	default:
		return "unknown"
	}
}

// ConfirmOperation names the action presented to the user.
type ConfirmOperation string

const (
	ConfirmProvision ConfirmOperation = "provision"
	ConfirmSign      ConfirmOperation = "sign"
)

// ConfirmRequest carries the display material for a confirmation prompt.
// KeyFingerprint is the first four bytes of the SHA-256 of the group
// public key.
type ConfirmRequest struct {
	Operation      ConfirmOperation
	Identifier     uint16
	KeyFingerprint [4]byte
	MessageHash    [ScalarSize]byte
}

// Confirmer is the user-authorization capability. Signing and
// provisioning proceed only when Confirm returns true.
type Confirmer interface {
	Confirm(req ConfirmRequest) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(req ConfirmRequest) bool

func (f ConfirmerFunc) Confirm(req ConfirmRequest) bool { return f(req) }

// AutoApprove approves every request. It is the default for hosts that
// gate authorization elsewhere.
var AutoApprove Confirmer = ConfirmerFunc(func(ConfirmRequest) bool { return true })

// SignerConfig configures a Signer. Zero-value fields take defaults:
// an in-memory key store, the standard Blake2b hasher, the system
// random source, auto-approval and a disabled logger.
type SignerConfig struct {
	Store     KeyStore
	Confirmer Confirmer
	Hasher    Hasher
	Rand      io.Reader
	Logger    zerolog.Logger
	Audit     AuditSink
}

// Signer is one participant's signing core. It owns the provisioned key
// share, the ephemeral nonce pair and the session state machine, and it
// never reveals the secret share or nonces through its API.
//
// A Signer runs at most one session at a time; all methods are safe for
// concurrent use and serialize on an internal lock.
type Signer struct {
	mu        sync.Mutex
	store     KeyStore
	confirmer Confirmer
	hasher    Hasher
	rand      io.Reader
	log       zerolog.Logger
	audit     AuditSink

	curve Curve
	share *KeyShare

	state           SessionState
	hidingNonce     [ScalarSize]byte
	bindingNonce    [ScalarSize]byte
	hidingCommit    [PointSize]byte
	bindingCommit   [PointSize]byte
	msgHash         [ScalarSize]byte
	numParticipants int
	commitmentBuf   []byte
	commitmentRecv  int
	entries         []CommitmentEntry
}

// NewSigner builds a Signer and loads any share already present in the
// store. A corrupt stored record is an error; an empty store is not.
func NewSigner(cfg SignerConfig) (*Signer, error) {
	s := &Signer{
		store:     cfg.Store,
		confirmer: cfg.Confirmer,
		hasher:    cfg.Hasher,
		rand:      cfg.Rand,
		log:       cfg.Logger,
		audit:     cfg.Audit,
		state:     StateIdle,
	}
	if s.store == nil {
		s.store = NewMemoryKeyStore()
	}
	if s.confirmer == nil {
		s.confirmer = AutoApprove
	}
	if s.hasher == nil {
		s.hasher = NewBlake2bHasher()
	}
	if s.rand == nil {
		s.rand = rand.Reader
	}
	if s.audit == nil {
		s.audit = NopSink{}
	}

	rec, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	ks, err := DecodeKeyShare(rec)
	if err == nil {
		c, err := ks.Validate()
		if err != nil {
			return nil, err
		}
		s.share = ks
		s.curve = c
	}
	return s, nil
}

// ProvisionKeyShare validates and persists a key share after user
// confirmation. Any running session is discarded, except that a share
// for a different curve is rejected while a session is open; the host
// must Reset first.
func (s *Signer) ProvisionKeyShare(ks *KeyShare) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := ks.Validate()
	if err != nil {
		return err
	}
	if s.curve != nil && s.state != StateIdle && c.ID() != s.curve.ID() {
		return ErrCurveMismatch
	}

	req := ConfirmRequest{
		Operation:      ConfirmProvision,
		Identifier:     ks.Identifier,
		KeyFingerprint: keyFingerprint(ks.GroupPublicKey),
	}
	if !s.confirmer.Confirm(req) {
		return ErrUserRejected
	}

	if err := s.store.Store(ks.Encode()); err != nil {
		return err
	}

	stored := *ks
	s.share = &stored
	s.curve = c
	s.reset()

	s.log.Info().
		Str("curve", string(c.Name())).
		Uint16("identifier", ks.Identifier).
		Msg("key share provisioned")
	s.audit.Record(AuditEvent{
		Timestamp:  time.Now(),
		Type:       AuditEventProvision,
		Curve:      c.Name(),
		Identifier: ks.Identifier,
	})
	return nil
}

// ClearKeys erases the stored share and wipes all session state.
func (s *Signer) ClearKeys() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Erase(); err != nil {
		return err
	}
	if s.share != nil {
		s.share.Zeroize()
		s.share = nil
	}
	s.curve = nil
	s.reset()
	s.log.Info().Msg("key share erased")
	s.audit.Record(AuditEvent{Timestamp: time.Now(), Type: AuditEventKeysErased})
	return nil
}

// HasKeys reports whether a share is provisioned.
func (s *Signer) HasKeys() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.share != nil
}

// Identifier returns the provisioned participant identifier.
func (s *Signer) Identifier() (uint16, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.share == nil {
		return 0, ErrNoKeys
	}
	return s.share.Identifier, nil
}

// GroupPublicKey returns the provisioned group public key.
func (s *Signer) GroupPublicKey() ([PointSize]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.share == nil {
		return [PointSize]byte{}, ErrNoKeys
	}
	return s.share.GroupPublicKey, nil
}

// State returns the current session state.
func (s *Signer) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Commit starts a signing session: it draws the hiding and binding
// nonces, computes their commitments and moves to StateCommitted. The
// returned pair is safe to publish; the nonces never leave the Signer.
func (s *Signer) Commit() (hiding, binding [PointSize]byte, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.share == nil {
		return hiding, binding, ErrNoKeys
	}
	if s.state != StateIdle {
		return hiding, binding, ErrWrongState
	}

	s.hidingNonce, err = RandomScalar(s.curve, s.rand)
	if err != nil {
		s.reset()
		return hiding, binding, err
	}
	s.bindingNonce, err = RandomScalar(s.curve, s.rand)
	if err != nil {
		s.reset()
		return hiding, binding, err
	}

	s.hidingCommit, err = s.curve.BaseMult(s.hidingNonce)
	if err != nil {
		s.reset()
		return hiding, binding, err
	}
	s.bindingCommit, err = s.curve.BaseMult(s.bindingNonce)
	if err != nil {
		s.reset()
		return hiding, binding, err
	}

	s.state = StateCommitted
	s.log.Debug().Str("state", s.state.String()).Msg("nonce commitments generated")
	s.audit.Record(AuditEvent{
		Timestamp:  time.Now(),
		Type:       AuditEventCommit,
		Curve:      s.curve.Name(),
		Identifier: s.share.Identifier,
	})
	return s.hidingCommit, s.bindingCommit, nil
}

// OwnCommitmentEntry returns this signer's 96-byte commitment list
// entry, for the host to splice into the list it distributes to the
// signing set. Valid from the moment Commit succeeds until the session
// resets.
func (s *Signer) OwnCommitmentEntry() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.share == nil {
		return nil, ErrNoKeys
	}
	if s.state == StateIdle {
		return nil, ErrWrongState
	}
	return EncodeCommitmentList([]CommitmentEntry{{
		ID:      s.share.Identifier,
		Hiding:  s.hidingCommit,
		Binding: s.bindingCommit,
	}}), nil
}

// SetMessage stores the 32-byte message hash to sign and moves to
// StateMessageSet.
func (s *Signer) SetMessage(msgHash [ScalarSize]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.share == nil {
		return ErrNoKeys
	}
	if s.state != StateCommitted {
		return ErrWrongState
	}

	s.msgHash = msgHash
	s.state = StateMessageSet
	s.log.Debug().Str("state", s.state.String()).Msg("message hash set")
	return nil
}

// InjectCommitments starts receiving a commitment list of count entries
// and consumes the first chunk. It returns the total bytes received so
// far; once the full list has arrived it is validated and the session
// moves to StateCommitmentsSet. A validation failure wipes the session.
func (s *Signer) InjectCommitments(count int, chunk []byte) (uint16, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.share == nil {
		return 0, ErrNoKeys
	}
	if s.state != StateMessageSet {
		return 0, ErrWrongState
	}
	if count < MinParticipants || count > s.curve.MaxParticipants() {
		s.reset()
		return 0, ErrParticipantCount
	}

	s.numParticipants = count
	s.commitmentBuf = make([]byte, count*CommitmentEntrySize)
	s.commitmentRecv = 0
	return s.appendChunk(chunk)
}

// AppendCommitments consumes a continuation chunk of the commitment
// list started by InjectCommitments.
func (s *Signer) AppendCommitments(chunk []byte) (uint16, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.share == nil {
		return 0, ErrNoKeys
	}
	if s.state != StateMessageSet || s.commitmentBuf == nil {
		return 0, ErrWrongState
	}
	return s.appendChunk(chunk)
}

func (s *Signer) appendChunk(chunk []byte) (uint16, error) {
	remaining := len(s.commitmentBuf) - s.commitmentRecv
	if len(chunk) > remaining {
		s.reset()
		return 0, ErrInvalidLength
	}
	copy(s.commitmentBuf[s.commitmentRecv:], chunk)
	s.commitmentRecv += len(chunk)

	if s.commitmentRecv == len(s.commitmentBuf) {
		entries, err := ParseCommitmentList(s.curve, s.commitmentBuf, s.numParticipants)
		if err != nil {
			s.reset()
			s.audit.Record(AuditEvent{
				Timestamp: time.Now(),
				Type:      AuditEventValidationError,
				Kind:      KindOf(err),
				Error:     err.Error(),
			})
			return 0, err
		}
		s.entries = entries
		s.state = StateCommitmentsSet
		s.log.Debug().
			Str("state", s.state.String()).
			Int("participants", s.numParticipants).
			Msg("commitment list validated")
	}
	return uint16(s.commitmentRecv), nil
}

// PartialSign produces this participant's signature share after user
// confirmation. Whatever the outcome, the session returns to StateIdle
// with the nonces destroyed; a second call cannot reuse them.
func (s *Signer) PartialSign() ([ScalarSize]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.share == nil {
		return [ScalarSize]byte{}, ErrNoKeys
	}
	if s.state != StateCommitmentsSet {
		return [ScalarSize]byte{}, ErrWrongState
	}
	defer s.reset()

	req := ConfirmRequest{
		Operation:      ConfirmSign,
		Identifier:     s.share.Identifier,
		KeyFingerprint: keyFingerprint(s.share.GroupPublicKey),
		MessageHash:    s.msgHash,
	}
	if !s.confirmer.Confirm(req) {
		s.log.Info().Msg("signing rejected by user")
		s.audit.Record(AuditEvent{
			Timestamp:  time.Now(),
			Type:       AuditEventUserRejection,
			Identifier: s.share.Identifier,
		})
		return [ScalarSize]byte{}, ErrUserRejected
	}

	selfIdx := FindParticipant(s.entries, s.share.Identifier)
	if selfIdx < 0 {
		return [ScalarSize]byte{}, ErrSelfNotInList
	}

	// The host-supplied list must carry the commitments this session
	// actually generated; signing over substituted ones would bind the
	// nonces to an attacker-chosen transcript.
	self := s.entries[selfIdx]
	if !SecureCompare(self.Hiding[:], s.hidingCommit[:]) ||
		!SecureCompare(self.Binding[:], s.bindingCommit[:]) {
		s.audit.Record(AuditEvent{
			Timestamp:  time.Now(),
			Type:       AuditEventValidationError,
			Kind:       KindOf(ErrCommitmentMismatch),
			Identifier: s.share.Identifier,
			Error:      ErrCommitmentMismatch.Error(),
		})
		return [ScalarSize]byte{}, ErrCommitmentMismatch
	}

	ids := make([]uint16, len(s.entries))
	for i, e := range s.entries {
		ids[i] = e.ID
	}

	factors := ComputeBindingFactors(s.curve, s.hasher, s.msgHash[:], s.entries)
	groupCommit, err := ComputeGroupCommitment(s.curve, s.entries, factors)
	if err != nil {
		return [ScalarSize]byte{}, err
	}
	challenge := ComputeChallenge(s.curve, s.hasher, groupCommit, s.share.GroupPublicKey, s.msgHash[:])

	z, err := ComputePartialSignature(
		s.curve,
		s.hidingNonce, s.bindingNonce, factors[selfIdx],
		s.share.SecretShare, challenge,
		s.share.Identifier, ids,
	)

	for i := range factors {
		ZeroizeBytes(factors[i][:])
	}
	ZeroizeBytes(challenge[:])
	if err != nil {
		return [ScalarSize]byte{}, err
	}

	s.log.Info().
		Uint16("identifier", s.share.Identifier).
		Int("participants", len(ids)).
		Msg("partial signature produced")
	s.audit.Record(AuditEvent{
		Timestamp:    time.Now(),
		Type:         AuditEventPartialSignature,
		Curve:        s.curve.Name(),
		Identifier:   s.share.Identifier,
		Participants: len(ids),
	})
	return z, nil
}

// Reset aborts any session in progress and wipes all ephemeral state.
func (s *Signer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		s.audit.Record(AuditEvent{Timestamp: time.Now(), Type: AuditEventSessionAbort})
	}
	s.reset()
}

// reset wipes every ephemeral field and returns to StateIdle. Callers
// hold the lock.
func (s *Signer) reset() {
	ZeroizeBytes(s.hidingNonce[:])
	ZeroizeBytes(s.bindingNonce[:])
	ZeroizeBytes(s.hidingCommit[:])
	ZeroizeBytes(s.bindingCommit[:])
	ZeroizeBytes(s.msgHash[:])
	if s.commitmentBuf != nil {
		ZeroizeBytes(s.commitmentBuf)
		s.commitmentBuf = nil
	}
	s.commitmentRecv = 0
	s.numParticipants = 0
	s.entries = nil
	s.state = StateIdle
}

// keyFingerprint derives the four-byte display fingerprint of a group
// public key.
func keyFingerprint(groupKey [PointSize]byte) [4]byte {
	sum := sha256.Sum256(groupKey[:])
	var fp [4]byte
	copy(fp[:], sum[:4])
	return fp
}
