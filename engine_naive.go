package leopard16

// naiveEngine is the plain Exp/Log scalar reference implementation: one
// field multiply per 16-bit element, looked up through Log/Exp. It is
// the simplest possible correct Engine and the anchor every other
// Engine is checked against in engine_test.go.
type naiveEngine struct{}

// Xor performs x ^= y in place.
func (naiveEngine) Xor(x, y []byte) {
	xor(x, y)
}

// Mul multiplies every field element of shard by the element whose log
// is logM. Each element is formed from two interleaved 32-byte lanes
// per 64-byte block: the low byte lane and the high byte lane.
func (naiveEngine) Mul(shard []byte, logM GfElement) {
	if logM == modulus {
		return
	}
	for off := 0; off < len(shard); off += 64 {
		lo := shard[off : off+32]
		hi := shard[off+32 : off+64]
		for i := range lo {
			elem := GfElement(lo[i]) | GfElement(hi[i])<<8
			prod := mulLog(elem, logM)
			lo[i] = byte(prod)
			hi[i] = byte(prod >> 8)
		}
	}
}
