package frost

// Key share records as persisted by the host-facing provisioning flow.
// The record layout is fixed at 96 bytes so a store can treat it as an
// opaque block:
//
//	offset  size  field
//	0       1     initialized marker (0x01)
//	1       1     curve id
//	2       2     participant identifier, big-endian
//	4       1     threshold
//	5       1     max signers
//	6       26    reserved, zero
//	32      32    group public key, compressed
//	64      32    secret share, big-endian scalar

// KeyShareRecordSize is the persisted record size in bytes.
const KeyShareRecordSize = 96

const (
	recOffInitialized = 0
	recOffCurveID     = 1
	recOffIdentifier  = 2
	recOffThreshold   = 4
	recOffMaxSigners  = 5
	recOffGroupKey    = 32
	recOffSecretShare = 64
)

const recInitializedMarker = 0x01

// KeyShare is one participant's provisioned signing material.
type KeyShare struct {
	CurveID        byte
	Identifier     uint16
	Threshold      uint8
	MaxSigners     uint8
	GroupPublicKey [PointSize]byte
	SecretShare    [ScalarSize]byte
}

// Encode renders the share as a storage record.
func (ks *KeyShare) Encode() [KeyShareRecordSize]byte {
	var rec [KeyShareRecordSize]byte
	rec[recOffInitialized] = recInitializedMarker
	rec[recOffCurveID] = ks.CurveID
	rec[recOffIdentifier] = byte(ks.Identifier >> 8)
	rec[recOffIdentifier+1] = byte(ks.Identifier)
	rec[recOffThreshold] = ks.Threshold
	rec[recOffMaxSigners] = ks.MaxSigners
	copy(rec[recOffGroupKey:recOffGroupKey+PointSize], ks.GroupPublicKey[:])
	copy(rec[recOffSecretShare:recOffSecretShare+ScalarSize], ks.SecretShare[:])
	return rec
}

// DecodeKeyShare parses a storage record. A record without the
// initialized marker decodes to ErrNoKeys.
func DecodeKeyShare(rec [KeyShareRecordSize]byte) (*KeyShare, error) {
	if rec[recOffInitialized] != recInitializedMarker {
		return nil, ErrNoKeys
	}
	ks := &KeyShare{
		CurveID:    rec[recOffCurveID],
		Identifier: uint16(rec[recOffIdentifier])<<8 | uint16(rec[recOffIdentifier+1]),
		Threshold:  rec[recOffThreshold],
		MaxSigners: rec[recOffMaxSigners],
	}
	copy(ks.GroupPublicKey[:], rec[recOffGroupKey:recOffGroupKey+PointSize])
	copy(ks.SecretShare[:], rec[recOffSecretShare:recOffSecretShare+ScalarSize])
	return ks, nil
}

// Validate checks the share against the curve it claims to belong to
// and returns the curve backend on success.
func (ks *KeyShare) Validate() (Curve, error) {
	c, err := CurveByID(ks.CurveID)
	if err != nil {
		return nil, err
	}
	if ks.Identifier == 0 {
		return nil, ErrZeroIdentifier
	}
	if int(ks.MaxSigners) < MinParticipants || int(ks.MaxSigners) > c.MaxParticipants() {
		return nil, ErrParticipantCount
	}
	if int(ks.Threshold) < MinParticipants || ks.Threshold > ks.MaxSigners {
		return nil, ErrParticipantCount
	}
	if err := c.ValidatePoint(ks.GroupPublicKey); err != nil {
		return nil, err
	}
	if _, err := c.ScalarFromBytes(ks.SecretShare); err != nil {
		return nil, err
	}
	if c.ScalarIsZero(ks.SecretShare) {
		return nil, ErrScalarEncoding
	}
	return c, nil
}

// Zeroize wipes the secret share in place.
func (ks *KeyShare) Zeroize() {
	ZeroizeBytes(ks.SecretShare[:])
}

// KeyStore is the persistence capability for the key share record. The
// signer treats it as opaque storage; implementations decide where the
// record lives and how it survives restarts.
type KeyStore interface {
	// Load returns the current record. A store with no provisioned share
	// returns a zeroed record, not an error.
	Load() ([KeyShareRecordSize]byte, error)

	// Store replaces the record.
	Store(rec [KeyShareRecordSize]byte) error

	// Erase overwrites the record with zeros.
	Erase() error
}

// MemoryKeyStore keeps the record in process memory. It is the default
// store for hosts that manage persistence elsewhere, and the test
// double everywhere else.
type MemoryKeyStore struct {
	rec [KeyShareRecordSize]byte
}

// NewMemoryKeyStore returns an empty in-memory store.
func NewMemoryKeyStore() *MemoryKeyStore {
	return &MemoryKeyStore{}
}

func (m *MemoryKeyStore) Load() ([KeyShareRecordSize]byte, error) {
	return m.rec, nil
}

func (m *MemoryKeyStore) Store(rec [KeyShareRecordSize]byte) error {
	m.rec = rec
	return nil
}

func (m *MemoryKeyStore) Erase() error {
	ZeroizeBytes(m.rec[:])
	return nil
}
