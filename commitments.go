package frost

// Signing-commitment lists as exchanged with the coordinator. Each entry
// is 96 bytes on the wire: a 32-byte participant identifier followed by
// the compressed hiding and binding commitment points. Entry order is
// significant and preserved exactly, since the binding factor hashes the
// encoded list.

// CommitmentEntrySize is the wire size of a single commitment entry.
const CommitmentEntrySize = ScalarSize + 2*PointSize

// MinParticipants is the smallest meaningful signing set.
const MinParticipants = 2

// CommitmentEntry is one participant's round-one commitment pair.
type CommitmentEntry struct {
	ID      uint16
	Hiding  [PointSize]byte
	Binding [PointSize]byte
}

// EncodeIdentifier renders a participant identifier as its 32-byte
// big-endian scalar encoding.
func EncodeIdentifier(id uint16) [ScalarSize]byte {
	var out [ScalarSize]byte
	out[ScalarSize-2] = byte(id >> 8)
	out[ScalarSize-1] = byte(id)
	return out
}

// ParseIdentifier recovers a participant identifier from its 32-byte
// scalar encoding. The identifier must be non-zero and the leading 30
// bytes must be zero; anything else is rejected rather than silently
// truncated.
func ParseIdentifier(b [ScalarSize]byte) (uint16, error) {
	for i := 0; i < ScalarSize-2; i++ {
		if b[i] != 0 {
			return 0, ErrIdentifierEncoding
		}
	}
	id := uint16(b[ScalarSize-2])<<8 | uint16(b[ScalarSize-1])
	if id == 0 {
		return 0, ErrZeroIdentifier
	}
	return id, nil
}

// ParseCommitmentList decodes and validates a commitment list of exactly
// count entries. Every identifier must be canonical and unique, and
// every point must decompress to a curve point. Entry order is kept as
// received.
func ParseCommitmentList(c Curve, buf []byte, count int) ([]CommitmentEntry, error) {
	if count < MinParticipants || count > c.MaxParticipants() {
		return nil, ErrParticipantCount
	}
	if len(buf) != count*CommitmentEntrySize {
		return nil, ErrInvalidLength
	}

	entries := make([]CommitmentEntry, 0, count)
	seen := make(map[uint16]struct{}, count)
	for i := 0; i < count; i++ {
		off := i * CommitmentEntrySize

		var idBytes [ScalarSize]byte
		copy(idBytes[:], buf[off:off+ScalarSize])
		id, err := ParseIdentifier(idBytes)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[id]; dup {
			return nil, ErrDuplicateIdentifier
		}
		seen[id] = struct{}{}

		var entry CommitmentEntry
		entry.ID = id
		copy(entry.Hiding[:], buf[off+ScalarSize:off+ScalarSize+PointSize])
		copy(entry.Binding[:], buf[off+ScalarSize+PointSize:off+CommitmentEntrySize])
		if err := c.ValidatePoint(entry.Hiding); err != nil {
			return nil, err
		}
		if err := c.ValidatePoint(entry.Binding); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// EncodeCommitmentList renders entries back into wire form. Because
// parsing only admits canonical encodings, the output is byte-identical
// to the buffer the entries were parsed from.
func EncodeCommitmentList(entries []CommitmentEntry) []byte {
	out := make([]byte, 0, len(entries)*CommitmentEntrySize)
	for _, e := range entries {
		id := EncodeIdentifier(e.ID)
		out = append(out, id[:]...)
		out = append(out, e.Hiding[:]...)
		out = append(out, e.Binding[:]...)
	}
	return out
}

// FindParticipant returns the index of id within entries, or -1.
func FindParticipant(entries []CommitmentEntry, id uint16) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
