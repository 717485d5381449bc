// Package ids generates record identifiers. IDs are 12 random bytes hex
// encoded, giving the 24-hexadecimal-character format the API validates
// against.
package ids

import (
	"crypto/rand"
	"encoding/hex"
)

func New() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(b)
}
