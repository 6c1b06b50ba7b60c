package leopard16

// LowRate is the rate pipeline used when recoveries outnumber
// originals (k/(k+m) close to 0): the one IFFT of the k originals is
// replicated across every chunk of size C = ceil_pow2(k), and each
// chunk is independently FFT'd with its own absolute skew to produce
// its slice of the m recovery shards. See spec §4.6/§4.8.

// lowRateWorkCount returns the LowRate encoder arena size W for k
// originals and m recoveries: ceil(m/C)*C where C = ceil_pow2(k).
func lowRateWorkCount(k, m int) int {
	c := ceilPow2(k)
	chunks := (m + c - 1) / c
	if chunks == 0 {
		chunks = 1
	}
	return chunks * c
}

// lowRateEncode runs the LowRate encoder over buf, which must already
// hold the k originals at positions [0,k). On return, positions [0,m)
// hold the recovery shards.
func lowRateEncode(e Engine, buf *ShardBuffer, k, m int) {
	c := ceilPow2(k)
	w := buf.count()

	buf.zero(k, c-k)
	IFFT(e, buf, 0, c, k, 0)

	for chunkStart := c; chunkStart < w; chunkStart += c {
		buf.copyWithin(0, chunkStart, c)
	}

	chunkStart := 0
	for chunkStart+c <= m {
		FFTSkewEnd(e, buf, chunkStart, c, c)
		chunkStart += c
	}
	if last := m % c; last != 0 {
		FFTSkewEnd(e, buf, chunkStart, c, last)
	}
}

// lowRateDecode runs the LowRate decoder over buf, laid out per spec
// §4.8: originals at [0,k), recoveries at [C, C+m), zeros elsewhere up
// to W = ceil_pow2(C+m). present reports, for each arena position in
// [0,C+m), whether that position's shard was supplied by the caller.
// On return, every missing original position holds its restored value.
func lowRateDecode(e Engine, buf *ShardBuffer, k, m int, present func(pos int) bool) {
	c := ceilPow2(k)
	recoveryEnd := c + m
	w := ceilPow2(recoveryEnd)

	var erasures [order]GfElement
	for i := 0; i < k; i++ {
		if !present(i) {
			erasures[i] = 1
		}
	}
	for j := 0; j < m; j++ {
		if !present(c + j) {
			erasures[c+j] = 1
		}
	}
	for i := recoveryEnd; i < order; i++ {
		erasures[i] = 1
	}

	EvalPoly(&erasures, order)

	for i := 0; i < k; i++ {
		if present(i) {
			e.Mul(buf.shard(i), erasures[i])
		} else {
			buf.zero(i, 1)
		}
	}
	buf.zero(k, c-k)
	for j := 0; j < m; j++ {
		pos := c + j
		if present(pos) {
			e.Mul(buf.shard(pos), erasures[pos])
		} else {
			buf.zero(pos, 1)
		}
	}
	buf.zero(recoveryEnd, w-recoveryEnd)

	IFFT(e, buf, 0, w, recoveryEnd, 0)
	FormalDerivative(e, buf, w)
	FFT(e, buf, 0, w, recoveryEnd, 0)

	for j := 0; j < k; j++ {
		if !present(j) {
			e.Mul(buf.shard(j), modulus-erasures[j])
		}
	}
}
