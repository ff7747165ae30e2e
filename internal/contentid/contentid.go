// Package contentid computes stable content hashes for source files.
// The hash is the dedup key for the entire pipeline: a file is "new" exactly
// when its digest is absent from the persisted seen set.
package contentid

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

const chunkSize = 1 << 20

// Hash streams the file at path through SHA-256 in fixed-size chunks and
// returns the lowercase hex digest. Memory use is bounded regardless of file
// size.
func Hash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
