// Package hash signs persisted data
package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
)

// Hash makes a hex sha256 HMAC of src with key
func Hash(src, key string) string {
	h := hmac.New(sha256.New, []byte(key))
	h.Write([]byte(src))
	return fmt.Sprintf("%x", h.Sum(nil))
}
