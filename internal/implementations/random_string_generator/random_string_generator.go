package randomstringgenerator

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	passwordreset "recovery/internal/core/domain/password_reset"
)

const DefaultByteLength = 32

// Generator produces URL-safe tokens from crypto/rand.
type Generator struct {
	byteLength int
}

func NewGenerator(byteLength int) *Generator {
	if byteLength < 16 {
		byteLength = DefaultByteLength
	}
	return &Generator{byteLength: byteLength}
}

// GenerateToken panics when the system entropy source is unavailable.
func (g *Generator) GenerateToken() passwordreset.Token {
	return passwordreset.Token(g.generate())
}

func (g *Generator) generate() string {
	b := make([]byte, g.byteLength)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("could not read random bytes: %v", err))
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
