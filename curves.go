package frost

// ScalarSize is the byte length of an encoded scalar on every supported
// curve.
const ScalarSize = 32

// PointSize is the byte length of a compressed point on every supported
// curve.
const PointSize = 32

// WideSize is the byte length of a wide hash output reduced into a scalar.
const WideSize = 64

// CurveType identifies a supported curve backend.
type CurveType string

const (
	// CurveBabyJubjub is the twisted Edwards curve defined over the BN254
	// scalar field, with scalars taken modulo its prime subgroup order.
	CurveBabyJubjub CurveType = "babyjubjub"

	// CurveEd25519 is the RFC 8032 Edwards curve.
	CurveEd25519 CurveType = "ed25519"
)

// Curve IDs as stored in persisted key share records.
const (
	CurveIDBabyJubjub byte = 0x00
	CurveIDEd25519    byte = 0x01
)

// Curve abstracts the group and scalar arithmetic a signing session needs.
// All scalars are 32-byte big-endian canonical encodings modulo the prime
// subgroup order; all points are 32-byte compressed encodings in the
// curve's native compressed format.
//
// Implementations must reject invalid or off-curve compressed points.
// Scalar inputs to the arithmetic and multiplication operations are
// reduced modulo the subgroup order; ScalarFromBytes is the strict
// canonicality check for encodings crossing a trust boundary. Points
// and scalars produced by implementations are always canonical.
type Curve interface {
	// Name returns the curve's registered name.
	Name() CurveType

	// ID returns the single-byte curve identifier used in key share records.
	ID() byte

	// MaxParticipants returns the largest supported signing set size.
	MaxParticipants() int

	// Order returns the big-endian encoding of the prime subgroup order.
	Order() [ScalarSize]byte

	// Generator returns the compressed base point.
	Generator() [PointSize]byte

	// ScalarFromBytes parses a big-endian canonical scalar encoding.
	// Values greater than or equal to the subgroup order are rejected.
	ScalarFromBytes(b [ScalarSize]byte) ([ScalarSize]byte, error)

	// ScalarAdd returns a + b mod the subgroup order. Non-canonical
	// inputs are reduced first.
	ScalarAdd(a, b [ScalarSize]byte) [ScalarSize]byte

	// ScalarSub returns a - b mod the subgroup order.
	ScalarSub(a, b [ScalarSize]byte) [ScalarSize]byte

	// ScalarMul returns a * b mod the subgroup order.
	ScalarMul(a, b [ScalarSize]byte) [ScalarSize]byte

	// ScalarInvert returns a^-1 mod the subgroup order, or ErrZeroInverse
	// when a is zero.
	ScalarInvert(a [ScalarSize]byte) ([ScalarSize]byte, error)

	// ScalarReduceWide reduces a 64-byte little-endian value modulo the
	// subgroup order, returning the big-endian canonical encoding.
	ScalarReduceWide(wide [WideSize]byte) [ScalarSize]byte

	// ScalarIsZero reports whether a encodes zero.
	ScalarIsZero(a [ScalarSize]byte) bool

	// ValidatePoint checks that b is a valid compressed point encoding
	// without returning the decompressed coordinates.
	ValidatePoint(b [PointSize]byte) error

	// PointAdd returns the compressed sum of two compressed points.
	PointAdd(a, b [PointSize]byte) ([PointSize]byte, error)

	// ScalarMult returns the compressed product k * P for a compressed
	// point P and a canonical scalar k.
	ScalarMult(k [ScalarSize]byte, p [PointSize]byte) ([PointSize]byte, error)

	// BaseMult returns the compressed product k * G.
	BaseMult(k [ScalarSize]byte) ([PointSize]byte, error)
}

// NewCurve constructs the backend for the given curve type.
func NewCurve(t CurveType) (Curve, error) {
	switch t {
	case CurveBabyJubjub:
		return newBabyJubjubCurve(), nil
	case CurveEd25519:
		return newEd25519Curve(), nil
	default:
		return nil, ErrUnsupportedCurve
	}
}

// CurveByID maps a persisted curve identifier byte back to a backend.
func CurveByID(id byte) (Curve, error) {
	switch id {
	case CurveIDBabyJubjub:
		return newBabyJubjubCurve(), nil
	case CurveIDEd25519:
		return newEd25519Curve(), nil
	default:
		return nil, ErrUnsupportedCurve
	}
}
