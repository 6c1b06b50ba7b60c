package leopard16

// HighRate is the rate pipeline used when originals outnumber
// recoveries (k/(k+m) close to 1): chunks of size C = ceil_pow2(m) are
// IFFT'd and folded by XOR into chunk zero, which is then FFT'd back
// to produce the m recovery shards. See spec §4.5-4.7 for the full
// derivation; this file is a direct transcription of that algorithm
// over a ShardBuffer, reusing the teacher's butterfly kernels from
// engine.go.

// highRateWorkCount returns the HighRate encoder arena size W for k
// originals and m recoveries: ceil(k/C)*C where C = ceil_pow2(m).
func highRateWorkCount(k, m int) int {
	c := ceilPow2(m)
	chunks := (k + c - 1) / c
	if chunks == 0 {
		chunks = 1
	}
	return chunks * c
}

// highRateEncode runs the HighRate encoder over buf, which must already
// hold the k originals at positions [0,k) and zeros at [k,W). On
// return, positions [0,m) hold the recovery shards.
func highRateEncode(e Engine, buf *ShardBuffer, k, m int) {
	c := ceilPow2(m)

	first := k
	if c < first {
		first = c
	}
	buf.zero(first, c-first)
	IFFTSkewEnd(e, buf, 0, c, first)

	if c < k {
		chunkStart := c
		for chunkStart+c <= k {
			IFFTSkewEnd(e, buf, chunkStart, c, c)
			xorWithin(buf, 0, chunkStart, c)
			chunkStart += c
		}

		if lastCount := k % c; lastCount != 0 {
			buf.zero(chunkStart+lastCount, c-lastCount)
			IFFTSkewEnd(e, buf, chunkStart, c, lastCount)
			xorWithin(buf, 0, chunkStart, c)
		}
	}

	FFT(e, buf, 0, c, m, 0)
}

// highRateDecode runs the HighRate decoder over buf, laid out per spec
// §4.7: recoveries at [0,m), originals at [C, C+k), zeros elsewhere up
// to W = ceil_pow2(C+k). present reports, for each arena position in
// [0,C+k), whether that position's shard was supplied by the caller.
// On return, every missing original position holds its restored value.
func highRateDecode(e Engine, buf *ShardBuffer, k, m int, present func(pos int) bool) {
	c := ceilPow2(m)
	originalEnd := c + k
	w := ceilPow2(originalEnd)

	var erasures [order]GfElement
	for i := 0; i < m; i++ {
		if !present(i) {
			erasures[i] = 1
		}
	}
	for i := m; i < c; i++ {
		erasures[i] = 1
	}
	for j := 0; j < k; j++ {
		if !present(c + j) {
			erasures[c+j] = 1
		}
	}

	EvalPoly(&erasures, originalEnd)

	for i := 0; i < m; i++ {
		if present(i) {
			e.Mul(buf.shard(i), erasures[i])
		} else {
			buf.zero(i, 1)
		}
	}
	buf.zero(m, c-m)
	for j := 0; j < k; j++ {
		pos := c + j
		if present(pos) {
			e.Mul(buf.shard(pos), erasures[pos])
		} else {
			buf.zero(pos, 1)
		}
	}
	buf.zero(originalEnd, w-originalEnd)

	IFFT(e, buf, 0, w, originalEnd, 0)
	FormalDerivative(e, buf, w)
	FFT(e, buf, 0, w, originalEnd, 0)

	for j := 0; j < k; j++ {
		pos := c + j
		if !present(pos) {
			e.Mul(buf.shard(pos), modulus-erasures[pos])
		}
	}
}
