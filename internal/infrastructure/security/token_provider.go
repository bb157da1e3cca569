package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"github.com/oksasatya/identity-service/internal/domain/service"
)

// RandomTokenProvider mints URL-safe random secrets and digests them with
// SHA-256 for storage. 32 bytes of entropy per secret.
type RandomTokenProvider struct {
	Bytes int
}

func NewRandomTokenProvider() *RandomTokenProvider {
	return &RandomTokenProvider{Bytes: 32}
}

func (p *RandomTokenProvider) Generate() (string, error) {
	n := p.Bytes
	if n <= 0 {
		n = 32
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (p *RandomTokenProvider) Hash(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

var _ service.TokenProvider = (*RandomTokenProvider)(nil)
