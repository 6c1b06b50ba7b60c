package leopard16

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

// recoveryHash encodes k ChaCha8-seeded originals into m recoveries and
// returns the SHA-256 of their concatenation, hex-encoded.
func recoveryHash(t *testing.T, k, m, shardBytes int, seed byte) string {
	t.Helper()
	originals := genShards(seed, k, shardBytes)

	recoveries, err := Encode(k, m, originals)
	require.NoError(t, err)

	h := sha256.New()
	for _, r := range recoveries {
		h.Write(r)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func TestRecoveryShardAnchors(t *testing.T) {
	cases := []struct {
		k, m       int
		seed       byte
		shardBytes int
		want       string
	}{
		{2, 3, 123, 1024, "f682a6c87c2bcd3e0feddbeff5c34f9d14026b78c44e5fdb5cf3cf71ec15e1f4"},
		{3, 2, 132, 1024, "afd47751b63fb0a62671e0e4a124a8ba51eb6d4b55f79c3dd54a60c28583634f"},
		{3, 3, 133, 1024, "9502b325f6f50a25e6816144603f1b0cda09e00b4949965babbaf8266ff81e84"},
		{5, 2, 152, 1024, "5387208d6756e3e79558a9b9ddebe0439eb3b08eec2393d4acafce6fc5332683"},
		{5, 3, 153, 1024, "6f53d5175900d70b4821d1d0c947d0c47a802add0d620bfa72d57dd983dfc156"},
	}

	for _, c := range cases {
		got := recoveryHash(t, c.k, c.m, c.shardBytes, c.seed)
		require.Equal(t, c.want, got, "k=%d m=%d seed=%d", c.k, c.m, c.seed)
	}
}

func TestEndToEndScenario1(t *testing.T) {
	k, m, shardBytes := 3, 2, 1024
	originals, recoveries := encodeAll(t, k, m, shardBytes, 132)

	dec, err := NewDecoder(k, m, shardBytes)
	require.NoError(t, err)
	require.NoError(t, dec.AddOriginalShard(1, originals[1]))
	require.NoError(t, dec.AddOriginalShard(2, originals[2]))
	require.NoError(t, dec.AddRecoveryShard(0, recoveries[0]))

	result, err := dec.Decode()
	require.NoError(t, err)
	shard, ok := result.RestoredOriginal(0)
	require.True(t, ok)
	require.Equal(t, originals[0], shard)
}

func TestEndToEndScenario3DropAllOriginals(t *testing.T) {
	k, m, shardBytes := 3, 3, 1024
	originals, recoveries := encodeAll(t, k, m, shardBytes, 133)

	dec, err := NewDecoder(k, m, shardBytes)
	require.NoError(t, err)
	for i, r := range recoveries {
		require.NoError(t, dec.AddRecoveryShard(i, r))
	}
	result, err := dec.Decode()
	require.NoError(t, err)
	for i := 0; i < k; i++ {
		shard, ok := result.RestoredOriginal(i)
		require.True(t, ok)
		require.Equal(t, originals[i], shard)
	}
}

func TestEndToEndScenario5NoMissing(t *testing.T) {
	k, m, shardBytes := 4, 2, 128
	originals, _ := encodeAll(t, k, m, shardBytes, 8)

	dec, err := NewDecoder(k, m, shardBytes)
	require.NoError(t, err)
	for i, s := range originals {
		require.NoError(t, dec.AddOriginalShard(i, s))
	}
	result, err := dec.Decode()
	require.NoError(t, err)
	for i := range originals {
		_, ok := result.RestoredOriginal(i)
		require.False(t, ok, "index=%d was supplied, so nothing is restored for it", i)
	}
}

func TestEndToEndScenario4MaximalShardCount(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping k+m=65536 round trip in -short mode")
	}
	k, m, shardBytes := 32768, 32768, 64

	originals, recoveries := encodeAll(t, k, m, shardBytes, 11)

	dec, err := NewDecoder(k, m, shardBytes)
	require.NoError(t, err)
	for i, r := range recoveries {
		require.NoError(t, dec.AddRecoveryShard(i, r))
	}
	result, err := dec.Decode()
	require.NoError(t, err)

	h := sha256.New()
	for i := 0; i < k; i++ {
		shard, ok := result.RestoredOriginal(i)
		require.True(t, ok)
		require.Equal(t, originals[i], shard, "index=%d", i)
		h.Write(shard)
	}
	require.Equal(t, "432025ead0e3f432f74e30500076a8c2b5554f5dfb7767b62fc3a8126eef7389", hex.EncodeToString(h.Sum(nil)))
}

func TestEndToEndScenario6TooManyOriginals(t *testing.T) {
	k, m, shardBytes := 2, 2, 64
	originals := genShards(9, k+1, shardBytes)

	_, err := Encode(k, m, originals)
	var tooMany *TooManyOriginalShardsError
	require.ErrorAs(t, err, &tooMany)
}
