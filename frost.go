// Package frost implements one participant's side of the FROST
// (Flexible Round-Optimized Schnorr Threshold) signing protocol over
// Baby Jubjub, with an alternate Ed25519 backend.
//
// The package is the signing core of a hardware-wallet style device: it
// holds a provisioned secret share, runs the two-round commitment and
// signing flow against host-supplied input it treats as adversarial,
// and emits a single partial signature per nonce pair. Aggregation and
// verification of the combined signature belong to an external
// coordinator; distributed key generation happens off-device.
//
// The entry point is Signer. A signing round walks the session through
// Commit, SetMessage, InjectCommitments/AppendCommitments and
// PartialSign, and every exit path destroys the nonces before control
// returns to the host.
package frost

// Protocol revision implemented by this package. The major version
// matches the v1 domain separation prefix.
const (
	VersionMajor uint8 = 1
	VersionMinor uint8 = 0
	VersionPatch uint8 = 0
)

// Version reports the implementation revision as a semantic triple, in
// the form a host queries before driving a session.
func Version() (major, minor, patch uint8) {
	return VersionMajor, VersionMinor, VersionPatch
}
