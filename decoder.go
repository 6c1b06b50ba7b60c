package leopard16

import "github.com/bits-and-blooms/bitset"

// Decoder holds the state of one decode session: a fixed original and
// recovery shard count, a shard size, and whichever original and
// recovery shards have been submitted so far. It is not safe for
// concurrent use.
type Decoder struct {
	cfg sessionConfig

	originalCount int
	recoveryCount int
	shardBytes    int

	rate Rate
	buf  *ShardBuffer
	w    int
	c    int

	received *bitset.BitSet
	haveOrig []bool
	haveRec  []bool

	originalReceived int
	recoveryReceived int
}

// NewDecoder creates a Decoder for originalCount original shards and
// recoveryCount recovery shards, each shardBytes bytes long.
func NewDecoder(originalCount, recoveryCount, shardBytes int, opts ...EngineOption) (*Decoder, error) {
	initTables()

	if shardBytes <= 0 || shardBytes%64 != 0 {
		return nil, &InvalidShardSizeError{ShardBytes: shardBytes}
	}
	rate, err := selectRate(originalCount, recoveryCount)
	if err != nil {
		return nil, err
	}

	dec := &Decoder{
		cfg:           newSessionConfig(opts),
		originalCount: originalCount,
		recoveryCount: recoveryCount,
		shardBytes:    shardBytes,
		rate:          rate,
		haveOrig:      make([]bool, originalCount),
		haveRec:       make([]bool, recoveryCount),
	}
	dec.allocate()
	if dec.cfg.debug {
		logger.With("component", "decoder").Debugw("session created",
			"original", originalCount, "recovery", recoveryCount, "shardBytes", shardBytes, "rate", rate)
	}
	return dec, nil
}

func (d *Decoder) allocate() {
	if d.rate == RateHigh {
		d.c = ceilPow2(d.recoveryCount)
		originalEnd := d.c + d.originalCount
		d.w = ceilPow2(originalEnd)
	} else {
		d.c = ceilPow2(d.originalCount)
		recoveryEnd := d.c + d.recoveryCount
		d.w = ceilPow2(recoveryEnd)
	}
	if d.buf == nil {
		d.buf = newShardBuffer(d.w, d.shardBytes)
	} else {
		d.buf.resize(d.w, d.shardBytes)
	}
	d.buf.zero(0, d.buf.count())
	d.received = bitset.New(uint(d.w))
}

// originalPos maps an original shard's logical index to its absolute
// arena position.
func (d *Decoder) originalPos(index int) int {
	if d.rate == RateHigh {
		return d.c + index
	}
	return index
}

// recoveryPos maps a recovery shard's logical index to its absolute
// arena position.
func (d *Decoder) recoveryPos(index int) int {
	if d.rate == RateHigh {
		return index
	}
	return d.c + index
}

// AddOriginalShard submits the original shard at index.
func (d *Decoder) AddOriginalShard(index int, shard []byte) error {
	if index < 0 || index >= d.originalCount {
		return &InvalidOriginalShardIndexError{OriginalCount: d.originalCount, Index: index}
	}
	if len(shard) != d.shardBytes {
		return &DifferentShardSizeError{Expected: d.shardBytes, Got: len(shard)}
	}
	if d.haveOrig[index] {
		return &DuplicateOriginalShardIndexError{Index: index}
	}

	pos := d.originalPos(index)
	copy(d.buf.shard(pos), shard)
	d.received.Set(uint(pos))
	d.haveOrig[index] = true
	d.originalReceived++
	return nil
}

// AddRecoveryShard submits the recovery shard at index.
func (d *Decoder) AddRecoveryShard(index int, shard []byte) error {
	if index < 0 || index >= d.recoveryCount {
		return &InvalidRecoveryShardIndexError{RecoveryCount: d.recoveryCount, Index: index}
	}
	if len(shard) != d.shardBytes {
		return &DifferentShardSizeError{Expected: d.shardBytes, Got: len(shard)}
	}
	if d.haveRec[index] {
		return &DuplicateRecoveryShardIndexError{Index: index}
	}

	pos := d.recoveryPos(index)
	copy(d.buf.shard(pos), shard)
	d.received.Set(uint(pos))
	d.haveRec[index] = true
	d.recoveryReceived++
	return nil
}

// Decode reconstructs every missing original shard from the submitted
// originals and recoveries. At least originalCount distinct shards
// (original or recovery, combined) must have been submitted.
func (d *Decoder) Decode() (*DecoderResult, error) {
	if d.originalReceived+d.recoveryReceived < d.originalCount {
		return nil, &NotEnoughShardsError{
			OriginalCount:    d.originalCount,
			OriginalReceived: d.originalReceived,
			RecoveryReceived: d.recoveryReceived,
		}
	}

	present := func(pos int) bool { return d.received.Test(uint(pos)) }

	if d.originalReceived < d.originalCount {
		if d.rate == RateHigh {
			highRateDecode(d.cfg.engine, d.buf, d.originalCount, d.recoveryCount, present)
		} else {
			lowRateDecode(d.cfg.engine, d.buf, d.originalCount, d.recoveryCount, present)
		}
	}

	return &DecoderResult{dec: d}, nil
}

// Reset reconfigures the session for a new originalCount/recoveryCount/
// shardBytes combination, reusing the arena's backing array when large
// enough.
func (d *Decoder) Reset(originalCount, recoveryCount, shardBytes int) error {
	if shardBytes <= 0 || shardBytes%64 != 0 {
		return &InvalidShardSizeError{ShardBytes: shardBytes}
	}
	rate, err := selectRate(originalCount, recoveryCount)
	if err != nil {
		return err
	}
	d.originalCount = originalCount
	d.recoveryCount = recoveryCount
	d.shardBytes = shardBytes
	d.rate = rate
	d.haveOrig = make([]bool, originalCount)
	d.haveRec = make([]bool, recoveryCount)
	d.originalReceived = 0
	d.recoveryReceived = 0
	d.allocate()
	return nil
}

// DecoderResult holds the restored original shards produced by Decode.
// It borrows the Decoder's working arena; call Release before reusing
// the Decoder for another session.
type DecoderResult struct {
	dec *Decoder
}

// RestoredOriginal returns the reconstructed shard at index, or false
// if index is out of range or that original was not actually missing
// (the caller already held it, so the arena position was never run
// through the decode transform and does not hold a meaningful value).
func (r *DecoderResult) RestoredOriginal(index int) ([]byte, bool) {
	if index < 0 || index >= r.dec.originalCount || r.dec.haveOrig[index] {
		return nil, false
	}
	return r.dec.buf.shard(r.dec.originalPos(index)), true
}

// RestoredOriginals calls yield once per reconstructed original shard,
// in index order, skipping indices that were not actually missing;
// stops early if yield returns false.
func (r *DecoderResult) RestoredOriginals(yield func(index int, shard []byte) bool) {
	for i := 0; i < r.dec.originalCount; i++ {
		if r.dec.haveOrig[i] {
			continue
		}
		if !yield(i, r.dec.buf.shard(r.dec.originalPos(i))) {
			return
		}
	}
}

// Release invalidates the result's view onto the Decoder's arena and
// clears the Decoder's record of submitted shards, keeping its
// configuration and arena. After Release, the Decoder may be fed again
// or Reset.
func (r *DecoderResult) Release() {
	if d := r.dec; d != nil {
		clear(d.haveOrig)
		clear(d.haveRec)
		d.received.ClearAll()
		d.originalReceived = 0
		d.recoveryReceived = 0
	}
	r.dec = nil
}
