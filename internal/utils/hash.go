package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// hasherPool holds HMAC-SHA256 hashers keyed with the HashSHA256 key
// shared by the relay and its devices. InitHasherPool must run before Hash.
var hasherPool sync.Pool

func InitHasherPool(hashKey string) {
	key := []byte(hashKey)
	hasherPool = sync.Pool{
		New: func() any {
			return hmac.New(sha256.New, key)
		},
	}
}

// Hash returns the HMAC of a query payload.
func Hash(data []byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	defer hasherPool.Put(h)

	h.Reset()
	h.Write(data)
	return h.Sum(nil)
}

// HashHex is Hash in the form carried by the HashSHA256 header.
func HashHex(data []byte) string {
	return hex.EncodeToString(Hash(data))
}

// HashString signs data with hashKey without touching the pool.
func HashString(data string, hashKey string) string {
	h := hmac.New(sha256.New, []byte(hashKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
