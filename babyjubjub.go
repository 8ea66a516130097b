package frost

import (
	"bytes"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/cronokirby/saferith"
)

// Baby Jubjub in its reduced twisted Edwards form over the BN254 scalar
// field: a*x^2 + y^2 = 1 + d*x^2*y^2. Curve parameters, base point and
// subgroup order come from gnark-crypto so the encodings stay
// interoperable with circuit tooling built on the same curve.
//
// Compressed points are the 32-byte little-endian y coordinate with bit
// 0x80 of the final byte set when x is lexicographically largest.

const bjjMaxParticipants = 16

var (
	bjjA, bjjD         fr.Element
	bjjBaseX, bjjBaseY fr.Element
	bjjOrder           *saferith.Modulus
	bjjOrderBytes      [ScalarSize]byte
	bjjGenerator       [PointSize]byte
)

func init() {
	params := twistededwards.GetEdwardsCurve()
	bjjA.Set(&params.A)
	bjjD.Set(&params.D)
	bjjBaseX.Set(&params.Base.X)
	bjjBaseY.Set(&params.Base.Y)
	params.Order.FillBytes(bjjOrderBytes[:])
	bjjOrder = saferith.ModulusFromBytes(bjjOrderBytes[:])
	bjjGenerator = bjjCompress(bjjPoint{x: bjjBaseX, y: bjjBaseY})
}

// bjjPoint is an affine point on the curve. The identity is (0, 1).
type bjjPoint struct {
	x, y fr.Element
}

func bjjIdentity() bjjPoint {
	var p bjjPoint
	p.y.SetOne()
	return p
}

// bjjCompress encodes a point as little-endian y with the sign of x
// folded into the top bit of the final byte.
func bjjCompress(p bjjPoint) [PointSize]byte {
	var out [PointSize]byte
	yb := p.y.Bytes()
	for i := 0; i < PointSize; i++ {
		out[i] = yb[PointSize-1-i]
	}
	if p.x.LexicographicallyLargest() {
		out[PointSize-1] |= 0x80
	}
	return out
}

// bjjDecompress recovers the affine point from a compressed encoding.
// It rejects non-canonical y encodings, y values giving a non-residue
// for x^2, and a sign bit that names the zero x coordinate.
func bjjDecompress(b [PointSize]byte) (bjjPoint, error) {
	var p bjjPoint

	xLargest := b[PointSize-1]&0x80 != 0
	var yBE [PointSize]byte
	for i := 0; i < PointSize; i++ {
		yBE[i] = b[PointSize-1-i]
	}
	yBE[0] &= 0x7f

	if err := p.y.SetBytesCanonical(yBE[:]); err != nil {
		return bjjPoint{}, ErrInvalidPoint.WithCause(err)
	}

	// x^2 = (1 - y^2) / (a - d*y^2)
	var y2, num, den, x2 fr.Element
	y2.Square(&p.y)
	num.SetOne()
	num.Sub(&num, &y2)
	den.Mul(&bjjD, &y2)
	den.Sub(&bjjA, &den)
	if den.IsZero() {
		return bjjPoint{}, ErrInvalidPoint
	}
	den.Inverse(&den)
	x2.Mul(&num, &den)

	if p.x.Sqrt(&x2) == nil {
		return bjjPoint{}, ErrInvalidPoint.WithCause(ErrNotSquare)
	}
	if p.x.IsZero() && xLargest {
		return bjjPoint{}, ErrInvalidPoint
	}
	if p.x.LexicographicallyLargest() != xLargest {
		p.x.Neg(&p.x)
	}
	if !bjjOnCurve(p) {
		return bjjPoint{}, ErrNotOnCurve
	}
	return p, nil
}

// bjjOnCurve checks a*x^2 + y^2 == 1 + d*x^2*y^2.
func bjjOnCurve(p bjjPoint) bool {
	var x2, y2, lhs, rhs, t fr.Element
	x2.Square(&p.x)
	y2.Square(&p.y)
	lhs.Mul(&bjjA, &x2)
	lhs.Add(&lhs, &y2)
	rhs.Mul(&x2, &y2)
	rhs.Mul(&rhs, &bjjD)
	t.SetOne()
	rhs.Add(&rhs, &t)
	return lhs.Equal(&rhs)
}

// bjjAdd computes the unified Edwards sum of two points. The formulas
// are complete for points in the prime-order subgroup, so the zero
// denominator branch is unreachable for valid inputs.
func bjjAdd(p, q bjjPoint) (bjjPoint, error) {
	var lambda, xNum, xDen, yNum, yDen, t fr.Element

	lambda.Mul(&p.x, &q.x)
	t.Mul(&p.y, &q.y)
	lambda.Mul(&lambda, &t)
	lambda.Mul(&lambda, &bjjD)

	// x3 = (x1*y2 + y1*x2) / (1 + lambda)
	xNum.Mul(&p.x, &q.y)
	t.Mul(&p.y, &q.x)
	xNum.Add(&xNum, &t)
	xDen.SetOne()
	xDen.Add(&xDen, &lambda)

	// y3 = (y1*y2 - a*x1*x2) / (1 - lambda)
	yNum.Mul(&p.y, &q.y)
	t.Mul(&p.x, &q.x)
	t.Mul(&t, &bjjA)
	yNum.Sub(&yNum, &t)
	yDen.SetOne()
	yDen.Sub(&yDen, &lambda)

	if xDen.IsZero() || yDen.IsZero() {
		return bjjPoint{}, ErrZeroInverse
	}
	xDen.Inverse(&xDen)
	yDen.Inverse(&yDen)

	var r bjjPoint
	r.x.Mul(&xNum, &xDen)
	r.y.Mul(&yNum, &yDen)
	return r, nil
}

// bjjScalarMult computes k*P with a fixed-shape double-and-add walk over
// all 256 bits of the big-endian scalar. The addition is evaluated on
// every iteration and the result assigned only when the bit is set, so
// the sequence of field operations does not depend on the scalar.
func bjjScalarMult(k [ScalarSize]byte, p bjjPoint) (bjjPoint, error) {
	acc := bjjIdentity()
	addend := p
	for i := 0; i < 8*ScalarSize; i++ {
		sum, err := bjjAdd(acc, addend)
		if err != nil {
			return bjjPoint{}, err
		}
		if (k[ScalarSize-1-i/8]>>(i%8))&1 == 1 {
			acc = sum
		}
		addend, err = bjjAdd(addend, addend)
		if err != nil {
			return bjjPoint{}, err
		}
	}
	return acc, nil
}

// babyJubjubCurve implements Curve over gnark-crypto field arithmetic
// with subgroup-order scalar arithmetic on saferith naturals.
type babyJubjubCurve struct{}

func newBabyJubjubCurve() *babyJubjubCurve {
	return &babyJubjubCurve{}
}

func (c *babyJubjubCurve) Name() CurveType { return CurveBabyJubjub }

func (c *babyJubjubCurve) ID() byte { return CurveIDBabyJubjub }

func (c *babyJubjubCurve) MaxParticipants() int { return bjjMaxParticipants }

func (c *babyJubjubCurve) Order() [ScalarSize]byte { return bjjOrderBytes }

func (c *babyJubjubCurve) Generator() [PointSize]byte { return bjjGenerator }

func (c *babyJubjubCurve) ScalarFromBytes(b [ScalarSize]byte) ([ScalarSize]byte, error) {
	if bytes.Compare(b[:], bjjOrderBytes[:]) >= 0 {
		return [ScalarSize]byte{}, ErrScalarEncoding
	}
	return b, nil
}

func (c *babyJubjubCurve) ScalarAdd(a, b [ScalarSize]byte) [ScalarSize]byte {
	x := new(saferith.Nat).SetBytes(a[:])
	y := new(saferith.Nat).SetBytes(b[:])
	x.ModAdd(x, y, bjjOrder)
	return natBytes(x)
}

func (c *babyJubjubCurve) ScalarSub(a, b [ScalarSize]byte) [ScalarSize]byte {
	x := new(saferith.Nat).SetBytes(a[:])
	y := new(saferith.Nat).SetBytes(b[:])
	y.ModNeg(y, bjjOrder)
	x.ModAdd(x, y, bjjOrder)
	return natBytes(x)
}

func (c *babyJubjubCurve) ScalarMul(a, b [ScalarSize]byte) [ScalarSize]byte {
	x := new(saferith.Nat).SetBytes(a[:])
	y := new(saferith.Nat).SetBytes(b[:])
	x.ModMul(x, y, bjjOrder)
	return natBytes(x)
}

func (c *babyJubjubCurve) ScalarInvert(a [ScalarSize]byte) ([ScalarSize]byte, error) {
	if c.ScalarIsZero(a) {
		return [ScalarSize]byte{}, ErrZeroInverse
	}
	x := new(saferith.Nat).SetBytes(a[:])
	x.ModInverse(x, bjjOrder)
	return natBytes(x), nil
}

func (c *babyJubjubCurve) ScalarReduceWide(wide [WideSize]byte) [ScalarSize]byte {
	var be [WideSize]byte
	for i := 0; i < WideSize; i++ {
		be[i] = wide[WideSize-1-i]
	}
	x := new(saferith.Nat).SetBytes(be[:])
	x.Mod(x, bjjOrder)
	return natBytes(x)
}

func (c *babyJubjubCurve) ScalarIsZero(a [ScalarSize]byte) bool {
	var zero [ScalarSize]byte
	return a == zero
}

func (c *babyJubjubCurve) ValidatePoint(b [PointSize]byte) error {
	_, err := bjjDecompress(b)
	return err
}

func (c *babyJubjubCurve) PointAdd(a, b [PointSize]byte) ([PointSize]byte, error) {
	p, err := bjjDecompress(a)
	if err != nil {
		return [PointSize]byte{}, err
	}
	q, err := bjjDecompress(b)
	if err != nil {
		return [PointSize]byte{}, err
	}
	r, err := bjjAdd(p, q)
	if err != nil {
		return [PointSize]byte{}, err
	}
	return bjjCompress(r), nil
}

func (c *babyJubjubCurve) ScalarMult(k [ScalarSize]byte, pb [PointSize]byte) ([PointSize]byte, error) {
	p, err := bjjDecompress(pb)
	if err != nil {
		return [PointSize]byte{}, err
	}
	r, err := bjjScalarMult(k, p)
	if err != nil {
		return [PointSize]byte{}, err
	}
	return bjjCompress(r), nil
}

func (c *babyJubjubCurve) BaseMult(k [ScalarSize]byte) ([PointSize]byte, error) {
	r, err := bjjScalarMult(k, bjjPoint{x: bjjBaseX, y: bjjBaseY})
	if err != nil {
		return [PointSize]byte{}, err
	}
	return bjjCompress(r), nil
}

// natBytes renders a reduced natural as a 32-byte big-endian scalar.
func natBytes(x *saferith.Nat) [ScalarSize]byte {
	var out [ScalarSize]byte
	x.FillBytes(out[:])
	return out
}
