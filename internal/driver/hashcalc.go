package driver

import (
	"crypto/sha256"
	"encoding/binary"
)

// Digest identifies a cache entry.
type Digest [32]byte

// CacheKey combines everything a file's diagnostics depend on:
// H(content || registry fingerprint || options || schema).
func CacheKey(content [32]byte, fingerprint string, allComments bool, maxDiagnostics int) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	_, _ = h.Write([]byte(fingerprint))
	if allComments {
		_, _ = h.Write([]byte{1})
	} else {
		_, _ = h.Write([]byte{0})
	}
	// усечённый лог нельзя отдавать при другом лимите
	_, _ = h.Write(binary.BigEndian.AppendUint64(nil, uint64(max(maxDiagnostics, 0))))
	_, _ = h.Write([]byte{byte(diskCacheSchemaVersion >> 8), byte(diskCacheSchemaVersion)})
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
