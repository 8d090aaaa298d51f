package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecureTokenUnique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		token := SecureToken(32)
		assert.NotEmpty(t, token)
		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate token generated: %s", token)
		}
		seen[token] = struct{}{}
	}
}

func TestSecureTokenDefaultLength(t *testing.T) {
	// 32 random bytes in raw url-safe base64
	assert.Len(t, SecureToken(0), 43)
}
