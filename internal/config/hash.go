package config

import (
	"encoding/hex"
	"encoding/json"

	"lukechampine.com/blake3"
)

// Hash returns a BLAKE3 digest over the canonical JSON encoding of the
// tuning table. The JSON field order follows struct declaration order, so
// the digest is stable across runs and platforms; it is the compatibility
// key between saves and the constants they were recorded under.
func (t *Tuning) Hash() string {
	data, err := json.Marshal(t)
	if err != nil {
		// Tuning is a plain value struct; marshal cannot fail.
		panic("config: tuning marshal: " + err.Error())
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
