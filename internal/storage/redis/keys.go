package redis

import (
	"crypto/sha256"
	"encoding/hex"
)

// sessionKey returns the Redis key for a session token. Only a digest of
// the token is stored, so reading the keyspace does not yield usable
// session cookies.
func sessionKey(prefix, token string) string {
	sum := sha256.Sum256([]byte(token))
	return prefix + ":session:" + hex.EncodeToString(sum[:])
}
