package leopard16

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFieldTablesAreInverses(t *testing.T) {
	initTables()

	// Zero has no logarithm (Log[0] holds q-1, and Exp[q-1] equals
	// Exp[0] = 1), so only nonzero elements round-trip.
	for _, v := range []GfElement{modulus, 1, 2, 12345, modulus - 1} {
		log := logLUT[v]
		require.Equal(t, v, expLUT[log], "exp(log(%d)) should round-trip", v)
	}
}

func TestMulLogMatchesDirectMultiply(t *testing.T) {
	initTables()

	a := GfElement(513)
	logB := logLUT[777]
	got := mulLog(a, logB)

	// a * b via the table should equal exp(log(a) + log(b)).
	want := expLUT[addMod(logLUT[a], logB)]
	require.Equal(t, want, got)

	require.Equal(t, GfElement(0), mulLog(0, logB), "zero is absorbing")
}

func TestAddSubModAreInverses(t *testing.T) {
	for _, pair := range [][2]GfElement{{0, 0}, {1, 2}, {modulus - 1, 5}, {40000, 9000}} {
		a, b := pair[0], pair[1]
		sum := addMod(a, b)
		require.Equal(t, a, subMod(sum, b))
	}
}

func TestCeilPow2(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 1000: 1024, 65536: 65536}
	for n, want := range cases {
		require.Equal(t, want, ceilPow2(n), "ceilPow2(%d)", n)
	}
}

func TestSkewTableBuiltOnce(t *testing.T) {
	initTables()
	first := *skewLUT
	initTables()
	require.Equal(t, first, *skewLUT, "initTables must be idempotent")
}
