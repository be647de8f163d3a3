// Package hashtree computes content hashes for files and folded hashes
// for directories, and diffs two such trees (spec §4.1).
package hashtree

import (
	"encoding/binary"

	"github.com/minio/highwayhash"
)

// key is a fixed 32-byte HighwayHash key. Collision resistance, not
// secrecy, is what the hash tracker needs, so a constant key (identical
// to the teacher's inspector/graph/hash.go) is appropriate: it makes
// hashes reproducible across runs and machines, which determinism
// (spec invariant 4) requires.
var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Hash returns a 64-bit content hash of data.
func Hash(data []byte) (uint64, error) {
	h, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	if _, err := h.Write(data); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

// MustHash is Hash without an error return, for call sites that already
// know the key is well-formed (it always is; highwayhash.New64 only
// fails on a wrong-length key).
func MustHash(data []byte) uint64 {
	h, err := Hash(data)
	if err != nil {
		panic(err)
	}
	return h
}

// Child is one (name, hash) pair folded into a directory's hash.
type Child struct {
	Name string
	Hash uint64
}

// FoldChildren computes a directory's content hash as the digest of the
// concatenation of its children's (name, hash) pairs, in the given
// order (spec §4.1). The order must be the order the builder established
// (insertion/walk order), not sorted, so two directories with the same
// children in different orders hash differently — this is intentional:
// order is part of what CompareTrees can observe as "modified".
func FoldChildren(children []Child) uint64 {
	buf := make([]byte, 0, 16*len(children))
	for _, c := range children {
		buf = append(buf, []byte(c.Name)...)
		buf = append(buf, 0) // name/hash separator, avoids "ab"+1 == "a"+"b1" collisions
		var hb [8]byte
		binary.LittleEndian.PutUint64(hb[:], c.Hash)
		buf = append(buf, hb[:]...)
	}
	return MustHash(buf)
}
