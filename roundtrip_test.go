package leopard16

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// encodeAll drives an Encoder end to end and returns the original and
// recovery shards.
func encodeAll(t *testing.T, k, m, shardBytes int, seed byte) (originals, recoveries [][]byte) {
	t.Helper()
	originals = genShards(seed, k, shardBytes)

	enc, err := NewEncoder(k, m, shardBytes)
	require.NoError(t, err)
	for i, s := range originals {
		require.NoError(t, enc.AddOriginalShard(i, s))
	}
	result, err := enc.Encode()
	require.NoError(t, err)

	recoveries = make([][]byte, m)
	for i := range recoveries {
		shard, ok := result.Recovery(i)
		require.True(t, ok)
		recoveries[i] = append([]byte(nil), shard...)
	}
	result.Release()
	return originals, recoveries
}

func TestRoundTripDropOriginalsOnly(t *testing.T) {
	for _, kv := range []struct{ k, m int }{{3, 2}, {2, 3}, {5, 2}, {1, 1}} {
		k, m := kv.k, kv.m
		shardBytes := 1024
		originals, recoveries := encodeAll(t, k, m, shardBytes, 99)

		missing := m
		if missing > k {
			missing = k
		}

		dec, err := NewDecoder(k, m, shardBytes)
		require.NoError(t, err)
		for i := missing; i < k; i++ {
			require.NoError(t, dec.AddOriginalShard(i, originals[i]))
		}
		for i := 0; i < missing; i++ {
			require.NoError(t, dec.AddRecoveryShard(i, recoveries[i]))
		}
		result, err := dec.Decode()
		require.NoError(t, err)
		for i := 0; i < missing; i++ {
			shard, ok := result.RestoredOriginal(i)
			require.True(t, ok)
			require.Equal(t, originals[i], shard, "k=%d m=%d index=%d", k, m, i)
		}
		result.Release()
	}
}

func TestRoundTripAllOriginalsPresentNoRecovery(t *testing.T) {
	k, m, shardBytes := 4, 3, 128
	originals, _ := encodeAll(t, k, m, shardBytes, 21)

	dec, err := NewDecoder(k, m, shardBytes)
	require.NoError(t, err)
	for i, s := range originals {
		require.NoError(t, dec.AddOriginalShard(i, s))
	}
	result, err := dec.Decode()
	require.NoError(t, err)
	// Every original was supplied, so the restored set is empty.
	for i := 0; i < k; i++ {
		shard, ok := result.RestoredOriginal(i)
		require.False(t, ok)
		require.Nil(t, shard)
	}
	result.Release()
}

func TestRoundTripRateCrossCheck(t *testing.T) {
	// k, m chosen so both HighRate and LowRate support the pair.
	k, m, shardBytes := 8, 8, 128
	require.True(t, highRateSupported(k, m))
	require.True(t, lowRateSupported(k, m))

	originals := genShards(44, k, shardBytes)

	encodeWith := func(rate Rate) [][]byte {
		buf := newShardBuffer(0, shardBytes)
		var w int
		if rate == RateHigh {
			w = highRateWorkCount(k, m)
		} else {
			w = lowRateWorkCount(k, m)
		}
		buf.resize(w, shardBytes)
		for i, s := range originals {
			copy(buf.shard(i), s)
		}
		if rate == RateHigh {
			highRateEncode(DefaultEngine, buf, k, m)
		} else {
			lowRateEncode(DefaultEngine, buf, k, m)
		}
		out := make([][]byte, m)
		for i := range out {
			out[i] = append([]byte(nil), buf.shard(i)...)
		}
		return out
	}

	highRecoveries := encodeWith(RateHigh)
	lowRecoveries := encodeWith(RateLow)

	decodeWith := func(rate Rate, recoveries [][]byte) [][]byte {
		var w, c int
		if rate == RateHigh {
			c = ceilPow2(m)
			w = ceilPow2(c + k)
		} else {
			c = ceilPow2(k)
			w = ceilPow2(c + m)
		}
		buf := newShardBuffer(w, shardBytes)
		present := make([]bool, w)
		for i := 0; i < m; i++ {
			var pos int
			if rate == RateHigh {
				pos = i
			} else {
				pos = c + i
			}
			copy(buf.shard(pos), recoveries[i])
			present[pos] = true
		}
		if rate == RateHigh {
			highRateDecode(DefaultEngine, buf, k, m, func(pos int) bool { return present[pos] })
		} else {
			lowRateDecode(DefaultEngine, buf, k, m, func(pos int) bool { return present[pos] })
		}
		out := make([][]byte, k)
		for i := range out {
			var pos int
			if rate == RateHigh {
				pos = c + i
			} else {
				pos = i
			}
			out[i] = append([]byte(nil), buf.shard(pos)...)
		}
		return out
	}

	restoredFromHigh := decodeWith(RateHigh, highRecoveries)
	restoredFromLow := decodeWith(RateLow, lowRecoveries)

	require.Equal(t, originals, restoredFromHigh)
	require.Equal(t, originals, restoredFromLow)
}

func TestResetAcrossRates(t *testing.T) {
	enc, err := NewEncoder(3, 2, 128)
	require.NoError(t, err)
	require.Equal(t, RateHigh, enc.rate)

	require.NoError(t, enc.Reset(2, 3, 256))
	require.Equal(t, RateLow, enc.rate)

	originals, recoveries := encodeAll(t, 2, 3, 256, 61)

	dec, err := NewDecoder(2, 3, 256)
	require.NoError(t, err)
	require.NoError(t, dec.AddRecoveryShard(0, recoveries[0]))
	require.NoError(t, dec.AddRecoveryShard(1, recoveries[1]))
	require.NoError(t, dec.AddOriginalShard(1, originals[1]))
	result, err := dec.Decode()
	require.NoError(t, err)
	shard, ok := result.RestoredOriginal(0)
	require.True(t, ok)
	require.Equal(t, originals[0], shard)
}

func TestBoundaryErrors(t *testing.T) {
	_, err := NewEncoder(0, 1, 64)
	require.Error(t, err)

	_, err = NewEncoder(3, 2, 63)
	var sizeErr *InvalidShardSizeError
	require.ErrorAs(t, err, &sizeErr)

	enc, err := NewEncoder(2, 2, 64)
	require.NoError(t, err)
	require.NoError(t, enc.AddOriginalShard(0, make([]byte, 64)))
	var dupErr *DuplicateOriginalShardIndexError
	require.ErrorAs(t, enc.AddOriginalShard(0, make([]byte, 64)), &dupErr)

	var idxErr *InvalidOriginalShardIndexError
	require.ErrorAs(t, enc.AddOriginalShard(5, make([]byte, 64)), &idxErr)

	var sizeMismatch *DifferentShardSizeError
	require.ErrorAs(t, enc.AddOriginalShard(1, make([]byte, 32)), &sizeMismatch)

	_, err = enc.Encode()
	var tooFew *TooFewOriginalShardsError
	require.ErrorAs(t, err, &tooFew)
}

func TestConvenienceEncodeDecode(t *testing.T) {
	k, m, shardBytes := 3, 2, 1024
	originals := genShards(132, k, shardBytes)

	recoveries, err := Encode(k, m, originals)
	require.NoError(t, err)

	missing := map[int][]byte{1: originals[1], 2: originals[2]}
	recvMap := map[int][]byte{0: recoveries[0], 1: recoveries[1]}

	restored, err := Decode(k, m, missing, recvMap)
	require.NoError(t, err)
	require.Equal(t, originals[0], restored[0])
}
