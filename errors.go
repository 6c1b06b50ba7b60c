package leopard16

import "fmt"

// UnsupportedShardCountError reports that no rate pipeline can encode or
// decode the given combination of original and recovery shard counts.
type UnsupportedShardCountError struct {
	Original int
	Recovery int
}

func (e *UnsupportedShardCountError) Error() string {
	return fmt.Sprintf("leopard16: unsupported shard counts: %d original, %d recovery", e.Original, e.Recovery)
}

// InvalidShardSizeError reports a shard byte length that cannot be used:
// it must be a positive multiple of 64.
type InvalidShardSizeError struct {
	ShardBytes int
}

func (e *InvalidShardSizeError) Error() string {
	return fmt.Sprintf("leopard16: invalid shard size %d: must be a positive multiple of 64", e.ShardBytes)
}

// DifferentShardSizeError reports that a shard passed to AddOriginalShard
// or AddRecoveryShard does not match the session's configured shard size.
type DifferentShardSizeError struct {
	Expected int
	Got      int
}

func (e *DifferentShardSizeError) Error() string {
	return fmt.Sprintf("leopard16: shard size mismatch: expected %d bytes, got %d", e.Expected, e.Got)
}

// InvalidOriginalShardIndexError reports an out-of-range original shard
// index.
type InvalidOriginalShardIndexError struct {
	OriginalCount int
	Index         int
}

func (e *InvalidOriginalShardIndexError) Error() string {
	return fmt.Sprintf("leopard16: invalid original shard index %d: must be in [0,%d)", e.Index, e.OriginalCount)
}

// InvalidRecoveryShardIndexError reports an out-of-range recovery shard
// index.
type InvalidRecoveryShardIndexError struct {
	RecoveryCount int
	Index         int
}

func (e *InvalidRecoveryShardIndexError) Error() string {
	return fmt.Sprintf("leopard16: invalid recovery shard index %d: must be in [0,%d)", e.Index, e.RecoveryCount)
}

// DuplicateOriginalShardIndexError reports that an original shard index
// was submitted more than once in the same session.
type DuplicateOriginalShardIndexError struct {
	Index int
}

func (e *DuplicateOriginalShardIndexError) Error() string {
	return fmt.Sprintf("leopard16: duplicate original shard index %d", e.Index)
}

// DuplicateRecoveryShardIndexError reports that a recovery shard index
// was submitted more than once in the same session.
type DuplicateRecoveryShardIndexError struct {
	Index int
}

func (e *DuplicateRecoveryShardIndexError) Error() string {
	return fmt.Sprintf("leopard16: duplicate recovery shard index %d", e.Index)
}

// TooFewOriginalShardsError reports that Encode was called before every
// original shard was submitted.
type TooFewOriginalShardsError struct {
	OriginalCount int
	Received      int
}

func (e *TooFewOriginalShardsError) Error() string {
	return fmt.Sprintf("leopard16: too few original shards: received %d of %d", e.Received, e.OriginalCount)
}

// TooManyOriginalShardsError reports that more original shards were
// submitted than the session was configured for.
type TooManyOriginalShardsError struct {
	OriginalCount int
}

func (e *TooManyOriginalShardsError) Error() string {
	return fmt.Sprintf("leopard16: too many original shards: session holds only %d", e.OriginalCount)
}

// NotEnoughShardsError reports that Decode was called without enough
// distinct shards to reconstruct every missing original.
type NotEnoughShardsError struct {
	OriginalCount    int
	OriginalReceived int
	RecoveryReceived int
}

func (e *NotEnoughShardsError) Error() string {
	return fmt.Sprintf(
		"leopard16: not enough shards: received %d original and %d recovery, need %d total",
		e.OriginalReceived, e.RecoveryReceived, e.OriginalCount,
	)
}
