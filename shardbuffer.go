package leopard16

import "github.com/templexxx/xorsimd"

// ShardBuffer is a flat byte arena interpreted as a fixed number of
// equal-length shards. Encoders and decoders each own exactly one
// ShardBuffer for the lifetime of their working space; it is resized
// (not reallocated from scratch) on Reset when possible.
type ShardBuffer struct {
	data       []byte
	shardBytes int
}

// newShardBuffer allocates an arena for count shards of shardBytes
// bytes each, all zeroed.
func newShardBuffer(count, shardBytes int) *ShardBuffer {
	return &ShardBuffer{
		data:       make([]byte, count*shardBytes),
		shardBytes: shardBytes,
	}
}

// resize grows or shrinks the arena to hold count shards of shardBytes
// bytes, reusing the backing array when it is already large enough.
func (b *ShardBuffer) resize(count, shardBytes int) {
	need := count * shardBytes
	if cap(b.data) >= need {
		b.data = b.data[:need]
	} else {
		b.data = make([]byte, need)
	}
	b.shardBytes = shardBytes
}

// count reports how many shards the arena currently holds.
func (b *ShardBuffer) count() int {
	if b.shardBytes == 0 {
		return 0
	}
	return len(b.data) / b.shardBytes
}

// shard returns the byte range for shard i. The returned slice aliases
// the arena; callers must respect the disjointness contracts documented
// on dist2Mut/dist4Mut/flat2Mut when taking more than one at a time.
func (b *ShardBuffer) shard(i int) []byte {
	o := i * b.shardBytes
	return b.data[o : o+b.shardBytes : o+b.shardBytes]
}

// dist2Mut returns two disjoint mutable shard slices at indices pos and
// pos+dist. Panics if dist is 0, since that would alias a single shard
// under two names.
func (b *ShardBuffer) dist2Mut(pos, dist int) (a, c []byte) {
	if dist == 0 {
		panic("leopard16: dist2Mut called with dist=0")
	}
	return b.shard(pos), b.shard(pos + dist)
}

// dist4Mut returns four disjoint mutable shard slices at pos, pos+dist,
// pos+2*dist, pos+3*dist.
func (b *ShardBuffer) dist4Mut(pos, dist int) (s0, s1, s2, s3 []byte) {
	if dist == 0 {
		panic("leopard16: dist4Mut called with dist=0")
	}
	return b.shard(pos), b.shard(pos + dist), b.shard(pos + 2*dist), b.shard(pos + 3*dist)
}

// flat2Mut returns two disjoint contiguous byte ranges, each covering
// count consecutive shards, starting at shard index x and y
// respectively. The caller must ensure the two ranges do not overlap.
func (b *ShardBuffer) flat2Mut(x, y, count int) (a, c []byte) {
	xo := x * b.shardBytes
	yo := y * b.shardBytes
	n := count * b.shardBytes
	return b.data[xo : xo+n], b.data[yo : yo+n]
}

// splitAtMut splits the arena into two disjoint byte ranges at shard
// index mid: shards [0,mid) and [mid,count). Provided for parity with
// the primitive set every rate pipeline is built from; none of
// HighRate/LowRate's own chunk loops need it since they already address
// the arena through flat2Mut/dist2Mut/dist4Mut at the specific strides
// their algorithm calls for.
func (b *ShardBuffer) splitAtMut(mid int) (lo, hi []byte) {
	o := mid * b.shardBytes
	return b.data[:o], b.data[o:]
}

// zero clears count shards starting at pos.
func (b *ShardBuffer) zero(pos, count int) {
	o := pos * b.shardBytes
	n := count * b.shardBytes
	clear(b.data[o : o+n])
}

// copyWithin copies count shards starting at src to dest; the ranges
// must not overlap (Go's copy would silently handle overlap, but the
// pipelines never rely on that, matching the spec's contract).
func (b *ShardBuffer) copyWithin(src, dest, count int) {
	so := src * b.shardBytes
	do := dest * b.shardBytes
	n := count * b.shardBytes
	copy(b.data[do:do+n], b.data[so:so+n])
}

// xor performs dst ^= src over two equal-length byte ranges, both a
// multiple of 64 bytes, via the SIMD-tuned xorsimd package.
func xor(dst, src []byte) {
	xorsimd.Bytes(dst, dst, src)
}

// xorWithin XORs shard range [y, y+count) into [x, x+count) within buf.
// The two ranges must be disjoint.
func xorWithin(buf *ShardBuffer, x, y, count int) {
	a, c := buf.flat2Mut(x, y, count)
	xor(a, c)
}
