package semantic

import "hash/fnv"

// PairID combines two entity ids into a correlation key that does not depend
// on argument order. The ids are hashed to 32 bits and packed smaller-first.
func PairID(a, b string) uint64 {
	ha, hb := hash32(a), hash32(b)
	if ha > hb {
		ha, hb = hb, ha
	}
	return uint64(ha)<<32 | uint64(hb)
}

func hash32(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
