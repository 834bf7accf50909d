package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// maxPlainKeyLength is the longest key stored without hashing. Longer keys
// (deep paths with many query params) are hashed for a bounded keyspace.
const maxPlainKeyLength = 200

// ResolveKey builds the cache key for a resolved moniker from its canonical
// string form. Short keys stay readable for debugging; long ones are hashed.
func ResolveKey(canonical string) string {
	return buildKey("resolve", canonical)
}

// DescribeKey builds the cache key for a describe result.
func DescribeKey(canonical string) string {
	return buildKey("describe", canonical)
}

func buildKey(kind, canonical string) string {
	key := kind + ":" + canonical
	if len(key) <= maxPlainKeyLength {
		return key
	}
	hash := sha256.Sum256([]byte(canonical))
	return kind + ":" + hex.EncodeToString(hash[:16])
}
