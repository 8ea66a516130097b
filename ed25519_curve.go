package frost

import (
	"filippo.io/edwards25519"
)

// Ed25519 backend over filippo.io/edwards25519. The library works in
// RFC 8032 little-endian encodings; this package's scalar surface is
// big-endian, so encodings are reversed at the boundary.

const ed25519MaxParticipants = 15

// ed25519OrderBytes is the big-endian encoding of the prime subgroup
// order l = 2^252 + 27742317777372353535851937790883648493.
var ed25519OrderBytes = [ScalarSize]byte{
	0x10, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x14, 0xde, 0xf9, 0xde, 0xa2, 0xf7, 0x9c, 0xd6,
	0x58, 0x12, 0x63, 0x1a, 0x5c, 0xf5, 0xd3, 0xed,
}

type ed25519Curve struct{}

func newEd25519Curve() *ed25519Curve {
	return &ed25519Curve{}
}

func (c *ed25519Curve) Name() CurveType { return CurveEd25519 }

func (c *ed25519Curve) ID() byte { return CurveIDEd25519 }

func (c *ed25519Curve) MaxParticipants() int { return ed25519MaxParticipants }

func (c *ed25519Curve) Order() [ScalarSize]byte { return ed25519OrderBytes }

func (c *ed25519Curve) Generator() [PointSize]byte {
	var out [PointSize]byte
	copy(out[:], edwards25519.NewGeneratorPoint().Bytes())
	return out
}

// ed25519ScalarFromBE parses a big-endian canonical scalar.
func ed25519ScalarFromBE(b [ScalarSize]byte) (*edwards25519.Scalar, error) {
	le := reverse32(b)
	s, err := edwards25519.NewScalar().SetCanonicalBytes(le[:])
	if err != nil {
		return nil, ErrScalarEncoding.WithCause(err)
	}
	return s, nil
}

// ed25519ScalarReduceBE loads a big-endian scalar encoding, reducing it
// modulo the subgroup order when it is not canonical.
func ed25519ScalarReduceBE(b [ScalarSize]byte) *edwards25519.Scalar {
	le := reverse32(b)
	if s, err := edwards25519.NewScalar().SetCanonicalBytes(le[:]); err == nil {
		return s
	}
	var wide [WideSize]byte
	copy(wide[:], le[:])
	s, _ := edwards25519.NewScalar().SetUniformBytes(wide[:])
	return s
}

func ed25519ScalarToBE(s *edwards25519.Scalar) [ScalarSize]byte {
	var le [ScalarSize]byte
	copy(le[:], s.Bytes())
	return reverse32(le)
}

func (c *ed25519Curve) ScalarFromBytes(b [ScalarSize]byte) ([ScalarSize]byte, error) {
	if _, err := ed25519ScalarFromBE(b); err != nil {
		return [ScalarSize]byte{}, err
	}
	return b, nil
}

func (c *ed25519Curve) ScalarAdd(a, b [ScalarSize]byte) [ScalarSize]byte {
	x := ed25519ScalarReduceBE(a)
	y := ed25519ScalarReduceBE(b)
	return ed25519ScalarToBE(x.Add(x, y))
}

func (c *ed25519Curve) ScalarSub(a, b [ScalarSize]byte) [ScalarSize]byte {
	x := ed25519ScalarReduceBE(a)
	y := ed25519ScalarReduceBE(b)
	return ed25519ScalarToBE(x.Subtract(x, y))
}

func (c *ed25519Curve) ScalarMul(a, b [ScalarSize]byte) [ScalarSize]byte {
	x := ed25519ScalarReduceBE(a)
	y := ed25519ScalarReduceBE(b)
	return ed25519ScalarToBE(x.Multiply(x, y))
}

func (c *ed25519Curve) ScalarInvert(a [ScalarSize]byte) ([ScalarSize]byte, error) {
	if c.ScalarIsZero(a) {
		return [ScalarSize]byte{}, ErrZeroInverse
	}
	x := ed25519ScalarReduceBE(a)
	return ed25519ScalarToBE(x.Invert(x)), nil
}

func (c *ed25519Curve) ScalarReduceWide(wide [WideSize]byte) [ScalarSize]byte {
	s, _ := edwards25519.NewScalar().SetUniformBytes(wide[:])
	return ed25519ScalarToBE(s)
}

func (c *ed25519Curve) ScalarIsZero(a [ScalarSize]byte) bool {
	var zero [ScalarSize]byte
	return a == zero
}

func (c *ed25519Curve) ValidatePoint(b [PointSize]byte) error {
	if _, err := new(edwards25519.Point).SetBytes(b[:]); err != nil {
		return ErrInvalidPoint.WithCause(err)
	}
	return nil
}

func (c *ed25519Curve) PointAdd(a, b [PointSize]byte) ([PointSize]byte, error) {
	p, err := new(edwards25519.Point).SetBytes(a[:])
	if err != nil {
		return [PointSize]byte{}, ErrInvalidPoint.WithCause(err)
	}
	q, err := new(edwards25519.Point).SetBytes(b[:])
	if err != nil {
		return [PointSize]byte{}, ErrInvalidPoint.WithCause(err)
	}
	var out [PointSize]byte
	copy(out[:], p.Add(p, q).Bytes())
	return out, nil
}

func (c *ed25519Curve) ScalarMult(k [ScalarSize]byte, pb [PointSize]byte) ([PointSize]byte, error) {
	s := ed25519ScalarReduceBE(k)
	p, err := new(edwards25519.Point).SetBytes(pb[:])
	if err != nil {
		return [PointSize]byte{}, ErrInvalidPoint.WithCause(err)
	}
	var out [PointSize]byte
	copy(out[:], p.ScalarMult(s, p).Bytes())
	return out, nil
}

func (c *ed25519Curve) BaseMult(k [ScalarSize]byte) ([PointSize]byte, error) {
	var out [PointSize]byte
	copy(out[:], new(edwards25519.Point).ScalarBaseMult(ed25519ScalarReduceBE(k)).Bytes())
	return out, nil
}

// reverse32 flips a 32-byte array between big- and little-endian.
func reverse32(b [ScalarSize]byte) [ScalarSize]byte {
	var out [ScalarSize]byte
	for i := 0; i < ScalarSize; i++ {
		out[i] = b[ScalarSize-1-i]
	}
	return out
}
