package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey joins prefix and the SHA-256 of the JSON encoding of parts, so
// keys stay a fixed length however large the layout is. Parts must be JSON
// encodable; the keyer only passes strings and option structs.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data. The engine hashes canonical layout
// JSON with it, and [FileCache] uses it for file names.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
