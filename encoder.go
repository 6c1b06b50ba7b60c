package leopard16

// EngineOption configures an Encoder or Decoder at construction time.
type EngineOption func(*sessionConfig)

type sessionConfig struct {
	engine  Engine
	debug   bool
}

// WithEngine overrides the Engine used for all field arithmetic. The
// default is DefaultEngine (the nibble-table optimized scalar engine).
func WithEngine(e Engine) EngineOption {
	return func(c *sessionConfig) { c.engine = e }
}

// WithDebugLogging enables verbose per-session debug logging.
func WithDebugLogging(on bool) EngineOption {
	return func(c *sessionConfig) { c.debug = on }
}

func newSessionConfig(opts []EngineOption) sessionConfig {
	c := sessionConfig{engine: DefaultEngine}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Encoder holds the state of one encode session: a fixed original and
// recovery shard count, a shard size, and the original shards submitted
// so far. It is not safe for concurrent use.
type Encoder struct {
	cfg sessionConfig

	originalCount int
	recoveryCount int
	shardBytes    int

	rate Rate
	buf  *ShardBuffer

	have     []bool
	received int
}

// NewEncoder creates an Encoder for originalCount original shards and
// recoveryCount recovery shards, each shardBytes bytes long. shardBytes
// must be a positive multiple of 64.
func NewEncoder(originalCount, recoveryCount, shardBytes int, opts ...EngineOption) (*Encoder, error) {
	initTables()

	if shardBytes <= 0 || shardBytes%64 != 0 {
		return nil, &InvalidShardSizeError{ShardBytes: shardBytes}
	}
	rate, err := selectRate(originalCount, recoveryCount)
	if err != nil {
		return nil, err
	}

	enc := &Encoder{
		cfg:           newSessionConfig(opts),
		originalCount: originalCount,
		recoveryCount: recoveryCount,
		shardBytes:    shardBytes,
		rate:          rate,
		have:          make([]bool, originalCount),
	}
	enc.allocate()
	if enc.cfg.debug {
		logger.With("component", "encoder").Debugw("session created",
			"original", originalCount, "recovery", recoveryCount, "shardBytes", shardBytes, "rate", rate)
	}
	return enc, nil
}

func (e *Encoder) allocate() {
	var work int
	if e.rate == RateHigh {
		work = highRateWorkCount(e.originalCount, e.recoveryCount)
	} else {
		work = lowRateWorkCount(e.originalCount, e.recoveryCount)
	}
	if e.buf == nil {
		e.buf = newShardBuffer(work, e.shardBytes)
	} else {
		e.buf.resize(work, e.shardBytes)
	}
	e.buf.zero(0, e.buf.count())
}

// AddOriginalShard submits the original shard at index. Every original
// shard must be submitted exactly once before Encode is called.
func (e *Encoder) AddOriginalShard(index int, shard []byte) error {
	if index < 0 || index >= e.originalCount {
		return &InvalidOriginalShardIndexError{OriginalCount: e.originalCount, Index: index}
	}
	if len(shard) != e.shardBytes {
		return &DifferentShardSizeError{Expected: e.shardBytes, Got: len(shard)}
	}
	if e.have[index] {
		return &DuplicateOriginalShardIndexError{Index: index}
	}

	pos := e.originalPos(index)
	copy(e.buf.shard(pos), shard)
	e.have[index] = true
	e.received++
	return nil
}

// originalPos maps an original shard's logical index to its absolute
// position in the working arena. Both encoder pipelines keep the
// originals at [0,k): HighRate folds later chunks into [0,C), LowRate
// IFFTs [0,C) and then replicates it.
func (e *Encoder) originalPos(index int) int {
	return index
}

// Encode computes the recovery shards from the previously submitted
// original shards. Every original shard must have been submitted.
func (e *Encoder) Encode() (*EncoderResult, error) {
	if e.received != e.originalCount {
		return nil, &TooFewOriginalShardsError{OriginalCount: e.originalCount, Received: e.received}
	}

	if e.rate == RateHigh {
		highRateEncode(e.cfg.engine, e.buf, e.originalCount, e.recoveryCount)
	} else {
		lowRateEncode(e.cfg.engine, e.buf, e.originalCount, e.recoveryCount)
	}

	return &EncoderResult{enc: e}, nil
}

// Reset reconfigures the session for a new originalCount/recoveryCount/
// shardBytes combination, reusing the arena's backing array when large
// enough.
func (e *Encoder) Reset(originalCount, recoveryCount, shardBytes int) error {
	if shardBytes <= 0 || shardBytes%64 != 0 {
		return &InvalidShardSizeError{ShardBytes: shardBytes}
	}
	rate, err := selectRate(originalCount, recoveryCount)
	if err != nil {
		return err
	}
	e.originalCount = originalCount
	e.recoveryCount = recoveryCount
	e.shardBytes = shardBytes
	e.rate = rate
	e.have = make([]bool, originalCount)
	e.received = 0
	e.allocate()
	return nil
}

// EncoderResult holds the recovery shards produced by Encode. It
// borrows the Encoder's working arena; call Release before reusing the
// Encoder for another session, or simply let the Encoder (and result)
// be garbage collected.
type EncoderResult struct {
	enc *Encoder
}

// Recovery returns the recovery shard at index, or false if index is
// out of range.
func (r *EncoderResult) Recovery(index int) ([]byte, bool) {
	if index < 0 || index >= r.enc.recoveryCount {
		return nil, false
	}
	return r.enc.buf.shard(index), true
}

// Recoveries calls yield once per recovery shard in index order,
// stopping early if yield returns false.
func (r *EncoderResult) Recoveries(yield func(index int, shard []byte) bool) {
	for i := 0; i < r.enc.recoveryCount; i++ {
		if !yield(i, r.enc.buf.shard(i)) {
			return
		}
	}
}

// Release invalidates the result's view onto the Encoder's arena and
// clears the Encoder's record of submitted originals, keeping its
// configuration and arena. After Release, the Encoder may be fed again
// or Reset; the slices previously returned by Recovery/Recoveries must
// not be read again.
func (r *EncoderResult) Release() {
	if e := r.enc; e != nil {
		clear(e.have)
		e.received = 0
	}
	r.enc = nil
}
