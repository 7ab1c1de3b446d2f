package types

import (
	"cmp"
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Key identifies a row. Keys are totally ordered by their unsigned integer value.
type Key uint64

// KeyFor derives a Key from the binary encoding of values
func KeyFor(values ...Value) Key {
	hasher := xxhash.New()
	for _, v := range values {
		v.Hash(hasher)
	}
	return Key(hasher.Sum64())
}

// SaltedWith produces a pseudo-random, reproducible projection of this Key.
// Keys which are close together in the natural order are scattered by the salt.
func (k Key) SaltedWith(salt uint64) Key {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(k))
	binary.LittleEndian.PutUint64(buf[8:], salt)
	return Key(xxhash.Sum64(buf[:]))
}

// Compare returns -1, 0 or 1 as k is less than, equal to or greater than o
func (k Key) Compare(o Key) int {
	return cmp.Compare(k, o)
}

// String produces a string representation of this Key
func (k Key) String() string {
	return fmt.Sprintf("^%016X", uint64(k))
}
