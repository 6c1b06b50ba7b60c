package leopard16

// Field arithmetic and lookup tables for GF(2^16), ported from the
// additive-FFT construction in https://github.com/catid/leopard and its
// Go translation in klauspost/reedsolomon's leopard.go.
//
// Addition in GF(2^16) is plain XOR. Multiplication is performed in
// log-space through the Exp/Log tables built below.

import (
	"math/bits"
	"sync"

	"github.com/klauspost/cpuid/v2"
)

// GfElement is a single element of GF(2^16).
type GfElement = uint16

const (
	fieldBits  = 16
	order      = 1 << fieldBits // q = 65536
	modulus    = order - 1      // q-1 = 65535
	polynomial = 0x1002D
)

// cantorBasis is the fixed change-of-basis vector used to convert the
// standard Log table into a Cantor basis, which is what makes the
// additive FFT below efficient. These constants are part of the wire
// semantics: any reimplementation must reproduce them verbatim rather
// than attempt to re-derive them.
var cantorBasis = [fieldBits]GfElement{
	0x0001, 0xACCA, 0x3C0E, 0x163E,
	0xC582, 0xED2E, 0x914C, 0x4012,
	0x6C98, 0x10D8, 0x6A72, 0xB900,
	0xFDB8, 0xFB34, 0xFF38, 0x991E,
}

var (
	expLUT    *[order]GfElement
	logLUT    *[order]GfElement
	skewLUT   *[modulus]GfElement
	logWalsh  *[order]GfElement
	mul16LUTs *[order]mul16LUT

	initOnce sync.Once
)

// mul16LUT holds, for one log-coefficient, two 256-entry tables used by
// the optimized scalar multiply: Lo maps every byte of the low lane (the
// low 32 bytes of a 64-byte block) to its product, Hi every byte of the
// high lane. Each entry is the XOR of two 16-entry nibble products, which
// are merged at build time and not kept as four separate tables; one
// element multiply is two lookups. The whole table (one mul16LUT per
// coefficient) takes 64 MiB.
type mul16LUT struct {
	Lo [256]GfElement
	Hi [256]GfElement
}

// initTables builds the five global tables exactly once, in a
// thread-safe manner; concurrent callers block on the same sync.Once
// and all observe the fully built tables once any one returns.
func initTables() {
	initOnce.Do(func() {
		log := logger.With("component", "gf16")
		log.Debugw("building field tables")

		initExpLog()
		initSkewAndWalsh()
		initMul16()

		if cpuid.CPU.Has(cpuid.AVX2) || cpuid.CPU.Has(cpuid.SSSE3) {
			log.Debugw("SIMD-capable CPU detected; engine remains portable scalar per design",
				"avx2", cpuid.CPU.Has(cpuid.AVX2), "ssse3", cpuid.CPU.Has(cpuid.SSSE3))
		}
	})
}

// initExpLog builds Exp and Log: first a plain LFSR-based log table over
// the field polynomial, then a change of basis into the Cantor basis.
func initExpLog() {
	expLUT = &[order]GfElement{}
	logLUT = &[order]GfElement{}

	state := 1
	for i := GfElement(0); i < modulus; i++ {
		expLUT[state] = i
		state <<= 1
		if state >= order {
			state ^= polynomial
		}
	}
	expLUT[0] = modulus

	// Convert to the Cantor basis.
	logLUT[0] = 0
	for i := 0; i < fieldBits; i++ {
		basis := cantorBasis[i]
		width := 1 << i
		for j := 0; j < width; j++ {
			logLUT[j+width] = logLUT[j] ^ basis
		}
	}

	for i := 0; i < order; i++ {
		logLUT[i] = expLUT[logLUT[i]]
	}
	for i := 0; i < order; i++ {
		expLUT[logLUT[i]] = GfElement(i)
	}
	expLUT[modulus] = expLUT[0]
}

// addMod is the Mersenne-like modular add used throughout: both
// operands widened, summed, and partially reduced by folding the
// carry bit back in. Produces values in [0, q-1].
func addMod(a, b GfElement) GfElement {
	sum := uint(a) + uint(b)
	return GfElement(sum + sum>>fieldBits)
}

// subMod mirrors addMod for subtraction, using wraparound subtraction
// before the same partial-reduction fold.
func subMod(a, b GfElement) GfElement {
	dif := uint(a) - uint(b)
	return GfElement(dif + dif>>fieldBits)
}

// mulLog returns a * Exp(logB), i.e. treats the second argument as
// already being in log-space. It is used to build the Skew and Mul16
// tables, and by naiveEngine.Mul once per field element.
func mulLog(a, logB GfElement) GfElement {
	if a == 0 {
		return 0
	}
	return expLUT[addMod(logLUT[a], logB)]
}

// initSkewAndWalsh builds Skew via its nested recurrence over a scratch
// array, then builds LogWalsh as the FWHT of Log with position 0 zeroed.
//
// The recurrence below must run in exactly this order: temp[m] is
// consumed to propagate into Skew before it is itself updated, and
// every temp[i>m] update depends on the just-updated temp[m].
func initSkewAndWalsh() {
	var temp [fieldBits - 1]GfElement
	for i := 1; i < fieldBits; i++ {
		temp[i-1] = GfElement(1 << i)
	}

	skewLUT = &[modulus]GfElement{}
	logWalsh = &[order]GfElement{}

	for m := 0; m < fieldBits-1; m++ {
		step := 1 << (m + 1)
		skewLUT[1<<m-1] = 0

		for i := m; i < fieldBits-1; i++ {
			s := 1 << (i + 1)
			for j := 1<<m - 1; j < s; j += step {
				skewLUT[j+s] = skewLUT[j] ^ temp[i]
			}
		}

		temp[m] = modulus - logLUT[mulLog(temp[m], logLUT[temp[m]^1])]

		for i := m + 1; i < fieldBits-1; i++ {
			sum := addMod(logLUT[temp[i]^1], temp[m])
			temp[i] = mulLog(temp[i], sum)
		}
	}

	for i := 0; i < modulus; i++ {
		skewLUT[i] = logLUT[skewLUT[i]]
	}

	for i := 0; i < order; i++ {
		logWalsh[i] = logLUT[i]
	}
	logWalsh[0] = 0
	fwhtRef(logWalsh, order)
}

// initMul16 builds the nibble-sliced multiply table used by the
// nosimd (default) engine. Each 16-bit field element is split into a
// low byte and a high byte, each split again into two nibbles, giving
// four independent 16-entry lookups; these are merged pairwise into the
// 256-entry Lo and Hi tables of each mul16LUT.
func initMul16() {
	mul16LUTs = &[order]mul16LUT{}

	for logM := 0; logM < order; logM++ {
		var tmp [64]GfElement
		for nibble, shift := 0, 0; nibble < 4; nibble, shift = nibble+1, shift+4 {
			nibbleLUT := tmp[nibble*16:]
			for x := 0; x < 16; x++ {
				nibbleLUT[x] = mulLog(GfElement(x<<shift), GfElement(logM))
			}
		}
		lut := &mul16LUTs[logM]
		for i := range lut.Lo {
			lut.Lo[i] = tmp[i&15] ^ tmp[(i>>4)+16]
			lut.Hi[i] = tmp[(i&15)+32] ^ tmp[(i>>4)+48]
		}
	}
}

// ceilPow2 returns the smallest power of two >= n, for n >= 1.
func ceilPow2(n int) int {
	return 1 << (bits.UintSize - bits.LeadingZeros(uint(n-1)))
}
