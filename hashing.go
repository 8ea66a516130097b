package frost

import (
	"golang.org/x/crypto/blake2b"
)

// DomainPrefix is the domain separation prefix mixed into every protocol
// hash. It pins interoperability with iden3-style aggregators using the
// same little-endian Blake2b convention.
const DomainPrefix = "FROST-EDBABYJUJUB-BLAKE512-v1"

// Hasher derives the two protocol scalars. Implementations must keep the
// derivation stable across participants, otherwise partial signatures
// will not aggregate.
type Hasher interface {
	// H1 computes a participant's binding factor from the message hash,
	// the encoded commitment list and the participant's 32-byte identifier.
	H1(c Curve, msgHash, encCommitList, signerID []byte) [ScalarSize]byte

	// H2 computes the Schnorr challenge from the group commitment R, the
	// group public key and the message hash.
	H2(c Curve, r, groupKey, msgHash []byte) [ScalarSize]byte
}

// Blake2bHasher implements Hasher with Blake2b-512 and domain separation
// of the form prefix || tag || data. The 64-byte digest is interpreted as
// a little-endian integer before reduction modulo the subgroup order;
// the interpretation is part of the wire contract.
type Blake2bHasher struct {
	Prefix string
}

// NewBlake2bHasher returns a hasher carrying the standard prefix.
func NewBlake2bHasher() *Blake2bHasher {
	return &Blake2bHasher{Prefix: DomainPrefix}
}

func (h *Blake2bHasher) hashToScalar(c Curve, tag string, data ...[]byte) [ScalarSize]byte {
	hasher, _ := blake2b.New512(nil)
	hasher.Write([]byte(h.Prefix))
	hasher.Write([]byte(tag))
	for _, d := range data {
		hasher.Write(d)
	}
	var wide [WideSize]byte
	copy(wide[:], hasher.Sum(nil))
	return c.ScalarReduceWide(wide)
}

// H1 implements Hasher.H1 with tag "rho".
func (h *Blake2bHasher) H1(c Curve, msgHash, encCommitList, signerID []byte) [ScalarSize]byte {
	return h.hashToScalar(c, "rho", msgHash, encCommitList, signerID)
}

// H2 implements Hasher.H2 with tag "chal".
func (h *Blake2bHasher) H2(c Curve, r, groupKey, msgHash []byte) [ScalarSize]byte {
	return h.hashToScalar(c, "chal", r, groupKey, msgHash)
}
