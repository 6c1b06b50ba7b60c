package leopard16

// Encode is a one-shot convenience wrapper around Encoder: it takes
// exactly originalCount original shards, all the same size, and returns
// the recoveryCount recovery shards.
func Encode(originalCount, recoveryCount int, originals [][]byte, opts ...EngineOption) ([][]byte, error) {
	if len(originals) > originalCount {
		return nil, &TooManyOriginalShardsError{OriginalCount: originalCount}
	}
	if originalCount <= 0 {
		return nil, &UnsupportedShardCountError{Original: originalCount, Recovery: recoveryCount}
	}
	if len(originals) < originalCount {
		return nil, &TooFewOriginalShardsError{OriginalCount: originalCount, Received: len(originals)}
	}
	shardBytes := len(originals[0])

	enc, err := NewEncoder(originalCount, recoveryCount, shardBytes, opts...)
	if err != nil {
		return nil, err
	}
	for i, shard := range originals {
		if err := enc.AddOriginalShard(i, shard); err != nil {
			return nil, err
		}
	}
	result, err := enc.Encode()
	if err != nil {
		return nil, err
	}

	recoveries := make([][]byte, recoveryCount)
	for i := range recoveries {
		shard, _ := result.Recovery(i)
		recoveries[i] = append([]byte(nil), shard...)
	}
	result.Release()
	return recoveries, nil
}

// Decode is a one-shot convenience wrapper around Decoder: it takes
// whichever original and recovery shards are available, keyed by
// index, and returns the restored original shards keyed by index.
// Only indices missing from originals are included in the result.
func Decode(originalCount, recoveryCount int, originals, recoveries map[int][]byte) (map[int][]byte, error) {
	var shardBytes int
	for _, s := range originals {
		shardBytes = len(s)
		break
	}
	if shardBytes == 0 {
		for _, s := range recoveries {
			shardBytes = len(s)
			break
		}
	}
	if shardBytes == 0 {
		return nil, &InvalidShardSizeError{ShardBytes: 0}
	}

	dec, err := NewDecoder(originalCount, recoveryCount, shardBytes)
	if err != nil {
		return nil, err
	}
	for i, shard := range originals {
		if err := dec.AddOriginalShard(i, shard); err != nil {
			return nil, err
		}
	}
	for i, shard := range recoveries {
		if err := dec.AddRecoveryShard(i, shard); err != nil {
			return nil, err
		}
	}
	result, err := dec.Decode()
	if err != nil {
		return nil, err
	}

	restored := make(map[int][]byte)
	for i := 0; i < originalCount; i++ {
		if _, present := originals[i]; present {
			continue
		}
		shard, _ := result.RestoredOriginal(i)
		restored[i] = append([]byte(nil), shard...)
	}
	result.Release()
	return restored, nil
}
