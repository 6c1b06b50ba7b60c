package leopard16

// Engine is the capability set consumed uniformly by the HighRate and
// LowRate pipelines: additive FFT/IFFT butterflies, FWHT, and the two
// primitives (Xor, Mul) the butterflies are built from. Every
// implementation of Engine must be observationally identical — for any
// inputs, two engines must leave a ShardBuffer in byte-identical state
// (see engine_test.go).
//
// Butterfly kernels are free functions taking an Engine, not methods
// with dynamic dispatch inside the loops; Mul/Xor are the only
// per-element dispatch points.
type Engine interface {
	// Xor performs x ^= y in place.
	Xor(x, y []byte)
	// Mul multiplies every field element of shard in place by the
	// element whose log is logM.
	Mul(shard []byte, logM GfElement)
}

// DefaultEngine is the process default: the nibble-table optimized
// scalar engine. It is safe for concurrent use by independent sessions
// (it holds no mutable state of its own; all its tables are the
// process-wide singletons from gf16.go).
var DefaultEngine Engine = nosimdEngine{}

// NaiveEngine is the plain Exp/Log scalar reference implementation.
// Slower than DefaultEngine, kept for clarity and as the anchor for the
// engine-equivalence test.
var NaiveEngine Engine = naiveEngine{}

// mulAddInto computes dst ^= src * logM using only the two Engine
// primitives: it multiplies a scratch copy of src, then XORs that into
// dst, leaving src untouched. scratch must be at least len(dst) bytes;
// callers reuse one scratch buffer across an entire FFT/IFFT pass.
func mulAddInto(e Engine, dst, src []byte, logM GfElement, scratch []byte) {
	scratch = scratch[:len(src)]
	copy(scratch, src)
	e.Mul(scratch, logM)
	e.Xor(dst, scratch)
}

// fftDIT2 is the single FFT butterfly: if logM is the "no multiplier"
// sentinel (modulus), it degrades to a plain XOR; otherwise a ^= b*logM
// followed by b ^= a.
func fftDIT2(e Engine, a, b []byte, logM GfElement, scratch []byte) {
	if logM == modulus {
		e.Xor(b, a)
		return
	}
	mulAddInto(e, a, b, logM, scratch)
	e.Xor(b, a)
}

// ifftDIT2 is the single IFFT butterfly: b ^= a, then a ^= b*logM.
func ifftDIT2(e Engine, a, b []byte, logM GfElement, scratch []byte) {
	if logM == modulus {
		e.Xor(b, a)
		return
	}
	e.Xor(b, a)
	mulAddInto(e, a, b, logM, scratch)
}

// fftDIT4 is the 4-way FFT butterfly: combine the (s0,s2) and (s1,s3)
// pairs using log_m02 first, then (s0,s1) and (s2,s3) using log_m01 and
// log_m23 respectively.
func fftDIT4(e Engine, buf *ShardBuffer, pos, dist int, logM01, logM23, logM02 GfElement, scratch []byte) {
	s0, s1, s2, s3 := buf.dist4Mut(pos, dist)
	fftDIT2(e, s0, s2, logM02, scratch)
	fftDIT2(e, s1, s3, logM02, scratch)
	fftDIT2(e, s0, s1, logM01, scratch)
	fftDIT2(e, s2, s3, logM23, scratch)
}

// ifftDIT4 is the 4-way IFFT butterfly: (s0,s1) and (s2,s3) first, then
// (s0,s2) and (s1,s3).
func ifftDIT4(e Engine, buf *ShardBuffer, pos, dist int, logM01, logM23, logM02 GfElement, scratch []byte) {
	s0, s1, s2, s3 := buf.dist4Mut(pos, dist)
	ifftDIT2(e, s0, s1, logM01, scratch)
	ifftDIT2(e, s2, s3, logM23, scratch)
	ifftDIT2(e, s0, s2, logM02, scratch)
	ifftDIT2(e, s1, s3, logM02, scratch)
}

// FFT runs an in-place decimation-in-time additive FFT on
// buf[pos:pos+size]. size must be a power of two. truncatedSize <= size
// selects how many output positions must carry correct values; the
// remaining positions may hold garbage unless their inputs were all
// zero (in which case they stay zero). skewDelta offsets the lookup
// into the Skew table.
func FFT(e Engine, buf *ShardBuffer, pos, size, truncatedSize, skewDelta int) {
	scratch := make([]byte, buf.shardBytes)
	dist4 := size
	dist := size >> 2
	for dist != 0 {
		for r := 0; r < truncatedSize; r += dist4 {
			iEnd := r + dist
			base := iEnd + skewDelta - 1
			logM01 := skewLUT[base]
			logM02 := skewLUT[base+dist]
			logM23 := skewLUT[base+2*dist]

			for i := r; i < iEnd; i++ {
				fftDIT4(e, buf, pos+i, dist, logM01, logM23, logM02, scratch)
			}
		}
		dist4 = dist
		dist >>= 2
	}

	if dist4 == 2 {
		for r := 0; r < truncatedSize; r += 2 {
			logM := skewLUT[r+skewDelta]
			a, b := buf.dist2Mut(pos+r, 1)
			if logM == modulus {
				e.Xor(b, a)
			} else {
				fftDIT2(e, a, b, logM, scratch)
			}
		}
	}
}

// IFFT is the inverse of FFT: same layer structure, reversed butterfly
// order within each 4-way block, same truncation/skew contract.
func IFFT(e Engine, buf *ShardBuffer, pos, size, truncatedSize, skewDelta int) {
	scratch := make([]byte, buf.shardBytes)
	dist := 1
	dist4 := 4
	for dist4 <= size {
		for r := 0; r < truncatedSize; r += dist4 {
			iEnd := r + dist
			base := iEnd + skewDelta - 1
			logM01 := skewLUT[base]
			logM02 := skewLUT[base+dist]
			logM23 := skewLUT[base+2*dist]

			for i := r; i < iEnd; i++ {
				ifftDIT4(e, buf, pos+i, dist, logM01, logM23, logM02, scratch)
			}
		}
		dist = dist4
		dist4 <<= 2
	}

	if dist < size {
		if dist*2 != size {
			panic("leopard16: internal error, dist*2 != size in IFFT tail layer")
		}
		logM := skewLUT[dist+skewDelta-1]
		if logM == modulus {
			a, b := buf.flat2Mut(pos, pos+dist, dist)
			e.Xor(b, a)
		} else {
			for i := 0; i < dist; i++ {
				x, y := buf.dist2Mut(pos+i, dist)
				ifftDIT2(e, x, y, logM, scratch)
			}
		}
	}
}

// FFTSkewEnd runs FFT with skewDelta = pos+size, the "skew anchored at
// the end of the range" variant the rate pipelines use throughout.
func FFTSkewEnd(e Engine, buf *ShardBuffer, pos, size, truncatedSize int) {
	FFT(e, buf, pos, size, truncatedSize, pos+size)
}

// IFFTSkewEnd is IFFT's counterpart to FFTSkewEnd.
func IFFTSkewEnd(e Engine, buf *ShardBuffer, pos, size, truncatedSize int) {
	IFFT(e, buf, pos, size, truncatedSize, pos+size)
}

// FormalDerivative XORs the width-shard range starting at i into the
// width-shard range starting at i-width, for every i>=1 in the
// buffer's first n shards, where width = ((i^(i-1))+1)/2.
func FormalDerivative(e Engine, buf *ShardBuffer, n int) {
	for i := 1; i < n; i++ {
		width := ((i ^ (i - 1)) + 1) >> 1
		xorWithin(buf, i-width, i, width)
	}
}

// fwhtRef is the length-`order` Fast Walsh-Hadamard Transform over
// GfElement, used both by table initialization (building LogWalsh) and
// by the decoder's EvalPoly. It has no Engine dependency: the butterfly
// here is addMod/subMod on scalars, not shard bytes.
func fwhtRef(data *[order]GfElement, truncatedSize int) {
	dist := 1
	dist4 := 4
	for dist4 <= order {
		for r := 0; r < truncatedSize; r += dist4 {
			d := uint16(dist)
			off := uint16(r)
			for i := uint16(0); i < d; i++ {
				t0 := data[off]
				t1 := data[off+d]
				t2 := data[off+d*2]
				t3 := data[off+d*3]

				t0, t1 = addMod(t0, t1), subMod(t0, t1)
				t2, t3 = addMod(t2, t3), subMod(t2, t3)
				t0, t2 = addMod(t0, t2), subMod(t0, t2)
				t1, t3 = addMod(t1, t3), subMod(t1, t3)

				data[off] = t0
				data[off+d] = t1
				data[off+d*2] = t2
				data[off+d*3] = t3
				off++
			}
		}
		dist = dist4
		dist4 <<= 2
	}
}

// FWHT runs the Fast Walsh-Hadamard Transform in place on a length-q
// erasure-locator vector.
func FWHT(vec *[order]GfElement, truncatedSize int) {
	fwhtRef(vec, truncatedSize)
}

// EvalPoly evaluates the erasure-locator polynomial: FWHT, pointwise
// multiply by LogWalsh mod (q-1), FWHT again. Decode-only.
func EvalPoly(erasures *[order]GfElement, truncatedSize int) {
	FWHT(erasures, truncatedSize)
	for i := 0; i < order; i++ {
		erasures[i] = GfElement((uint(erasures[i]) * uint(logWalsh[i])) % modulus)
	}
	FWHT(erasures, order)
}
