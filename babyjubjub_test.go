package frost

import (
	"crypto/sha512"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/stretchr/testify/require"
)

// Compressed generator as produced by gnark-crypto's point marshalling.
// Interop with circuit tooling hangs off this exact encoding.
const bjjGeneratorHex = "8b7d2d877a253c4b7733e1b91f05e0fcedf96bd11c2e572549b2a0f703727925"

func bjjTestCurve(t *testing.T) Curve {
	t.Helper()
	c, err := NewCurve(CurveBabyJubjub)
	require.NoError(t, err)
	return c
}

func scalarFromUint64(v uint64) [ScalarSize]byte {
	var s [ScalarSize]byte
	for i := 0; i < 8; i++ {
		s[ScalarSize-1-i] = byte(v >> (8 * i))
	}
	return s
}

func TestBabyJubjubGeneratorVector(t *testing.T) {
	c := bjjTestCurve(t)

	want, err := hex.DecodeString(bjjGeneratorHex)
	require.NoError(t, err)

	gen := c.Generator()
	require.Equal(t, want, gen[:])
	require.NoError(t, c.ValidatePoint(gen))
}

func TestBabyJubjubBaseMultMatchesReference(t *testing.T) {
	c := bjjTestCurve(t)
	params := twistededwards.GetEdwardsCurve()

	for _, k := range []uint64{1, 2, 3, 7, 1000, 65537} {
		got, err := c.BaseMult(scalarFromUint64(k))
		require.NoError(t, err)

		var ref twistededwards.PointAffine
		ref.ScalarMultiplication(&params.Base, new(big.Int).SetUint64(k))
		want := ref.Bytes()
		require.Equal(t, want[:], got[:], "k=%d", k)
	}
}

func TestBabyJubjubScalarMultEdgeCases(t *testing.T) {
	c := bjjTestCurve(t)

	// 0*G is the identity (0, 1): y=1 little-endian, no sign bit.
	var identity [PointSize]byte
	identity[0] = 1

	got, err := c.BaseMult([ScalarSize]byte{})
	require.NoError(t, err)
	require.Equal(t, identity, got)

	// 1*G is the generator.
	got, err = c.BaseMult(scalarFromUint64(1))
	require.NoError(t, err)
	require.Equal(t, c.Generator(), got)

	// n*G wraps back to the identity.
	got, err = c.BaseMult(c.Order())
	require.NoError(t, err)
	require.Equal(t, identity, got)
}

func TestBabyJubjubPointAdd(t *testing.T) {
	c := bjjTestCurve(t)

	g := c.Generator()
	sum, err := c.PointAdd(g, g)
	require.NoError(t, err)

	twoG, err := c.BaseMult(scalarFromUint64(2))
	require.NoError(t, err)
	require.Equal(t, twoG, sum)

	// Adding the identity is a no-op.
	var identity [PointSize]byte
	identity[0] = 1
	same, err := c.PointAdd(g, identity)
	require.NoError(t, err)
	require.Equal(t, g, same)
}

func TestBabyJubjubCompressRoundtrip(t *testing.T) {
	c := bjjTestCurve(t)

	seed := sha512.Sum512([]byte("babyjubjub roundtrip"))
	var wide [WideSize]byte
	copy(wide[:], seed[:])

	k := c.ScalarReduceWide(wide)
	pb, err := c.BaseMult(k)
	require.NoError(t, err)

	p, err := bjjDecompress(pb)
	require.NoError(t, err)
	require.True(t, bjjOnCurve(p))
	require.Equal(t, pb, bjjCompress(p))
}

func TestBabyJubjubRejectInvalidPoints(t *testing.T) {
	c := bjjTestCurve(t)

	// y >= field modulus is non-canonical.
	var tooBig [PointSize]byte
	for i := range tooBig {
		tooBig[i] = 0xff
	}
	tooBig[PointSize-1] = 0x7f
	require.Error(t, c.ValidatePoint(tooBig))

	// The identity has x=0; claiming the lexicographically largest x
	// for it names a point that does not exist.
	var zeroXFlagged [PointSize]byte
	zeroXFlagged[0] = 1
	zeroXFlagged[PointSize-1] |= 0x80
	require.Error(t, c.ValidatePoint(zeroXFlagged))

	// A run of small y values must contain quadratic non-residues for
	// x^2; every one of those encodings has to be rejected.
	rejected := 0
	for y := byte(2); y < 40; y++ {
		var b [PointSize]byte
		b[0] = y
		if c.ValidatePoint(b) != nil {
			rejected++
		}
	}
	require.Positive(t, rejected)
}

func TestBabyJubjubScalarArithmetic(t *testing.T) {
	c := bjjTestCurve(t)
	order := new(big.Int).SetBytes(bjjOrderBytes[:])

	a := scalarFromUint64(0xdeadbeef)
	b := scalarFromUint64(0x1234567890abcdef)

	check := func(got [ScalarSize]byte, want *big.Int) {
		t.Helper()
		require.Equal(t, want.Bytes(), new(big.Int).SetBytes(got[:]).Bytes())
	}

	ab := new(big.Int).SetBytes(a[:])
	bb := new(big.Int).SetBytes(b[:])

	check(c.ScalarAdd(a, b), new(big.Int).Mod(new(big.Int).Add(ab, bb), order))
	check(c.ScalarMul(a, b), new(big.Int).Mod(new(big.Int).Mul(ab, bb), order))
	check(c.ScalarSub(a, b), new(big.Int).Mod(new(big.Int).Sub(ab, bb), order))

	inv, err := c.ScalarInvert(a)
	require.NoError(t, err)
	check(inv, new(big.Int).ModInverse(ab, order))

	// a - b wraps below zero; a small minus large must land in range.
	diff := c.ScalarSub(b, a)
	require.True(t, new(big.Int).SetBytes(diff[:]).Cmp(order) < 0)

	_, err = c.ScalarInvert([ScalarSize]byte{})
	require.ErrorIs(t, err, ErrZeroInverse)
}

func TestBabyJubjubScalarReduceWide(t *testing.T) {
	c := bjjTestCurve(t)
	order := new(big.Int).SetBytes(bjjOrderBytes[:])

	digest := sha512.Sum512([]byte("wide reduction vector"))
	var wide [WideSize]byte
	copy(wide[:], digest[:])

	// The wide input is little-endian; the independent computation
	// reverses it before interpreting as a big-endian integer.
	var be [WideSize]byte
	for i := range be {
		be[i] = wide[WideSize-1-i]
	}
	want := new(big.Int).Mod(new(big.Int).SetBytes(be[:]), order)

	got := c.ScalarReduceWide(wide)
	require.Equal(t, want.Bytes(), new(big.Int).SetBytes(got[:]).Bytes())
}

func TestBabyJubjubScalarCanonical(t *testing.T) {
	c := bjjTestCurve(t)

	_, err := c.ScalarFromBytes(c.Order())
	require.ErrorIs(t, err, ErrScalarEncoding)

	orderMinusOne := c.ScalarSub(c.Order(), scalarFromUint64(1))
	_, err = c.ScalarFromBytes(orderMinusOne)
	require.NoError(t, err)
}

func TestBabyJubjubScalarArithmeticReducesInputs(t *testing.T) {
	c := bjjTestCurve(t)
	order := new(big.Int).SetBytes(bjjOrderBytes[:])

	// order+1 is not canonical; the arithmetic surface treats it as 1.
	var orderPlusOne [ScalarSize]byte
	new(big.Int).Add(order, big.NewInt(1)).FillBytes(orderPlusOne[:])
	two := scalarFromUint64(2)

	require.Equal(t, scalarFromUint64(3), c.ScalarAdd(orderPlusOne, two))
	require.Equal(t, two, c.ScalarMul(orderPlusOne, two))

	got, err := c.BaseMult(orderPlusOne)
	require.NoError(t, err)
	want, err := c.BaseMult(scalarFromUint64(1))
	require.NoError(t, err)
	require.Equal(t, want, got)
}
