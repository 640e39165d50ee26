package crypto

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// HashManifest computes the crypto hash that binds a ciphertext election
// context to a manifest. The raw JSON is compacted first so semantically
// identical documents hash identically regardless of whitespace.
func HashManifest(manifest []byte) (string, error) {
	var compact bytes.Buffer
	if err := json.Compact(&compact, manifest); err != nil {
		return "", fmt.Errorf("compact manifest: %w", err)
	}
	digest := sha256.Sum256(compact.Bytes())
	return hex.EncodeToString(digest[:]), nil
}
