package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"hash"
)

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashValue hashes the JSON encoding of v. encoding/json sorts map keys,
// so two equal sentences hash equally whatever order their maps were
// built in.
func HashValue(v any) (string, error) {
	h := sha256.New()
	if err := json.NewEncoder(h).Encode(v); err != nil {
		return "", err
	}
	return digest(h), nil
}

// kindKey builds "<kind>:<sha256 of parts>". The parts are known to encode.
func kindKey(kind string, parts ...any) string {
	h := sha256.New()
	_ = json.NewEncoder(h).Encode(parts)
	return kind + ":" + digest(h)
}

func digest(h hash.Hash) string { return hex.EncodeToString(h.Sum(nil)) }
