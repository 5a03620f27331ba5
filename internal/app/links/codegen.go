package links

import (
	"crypto/rand"
	"fmt"
)

const (
	generatedCodeLen = 6

	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// CodeGenerator returns a candidate code for a new link.
type CodeGenerator func() (string, error)

// GenerateCode draws generatedCodeLen symbols uniformly from codeAlphabet.
func GenerateCode() (string, error) {
	alphaLen := len(codeAlphabet)
	// bytes at or above cutoff are rejected so every symbol is equally likely
	cutoff := (256 / alphaLen) * alphaLen

	out := make([]byte, generatedCodeLen)
	filled := 0

	var buf [16]byte
	for filled < generatedCodeLen {
		if _, err := rand.Read(buf[:]); err != nil {
			return "", fmt.Errorf("rand read: %w", err)
		}

		for _, b := range buf {
			if filled >= generatedCodeLen {
				break
			}

			if int(b) >= cutoff {
				continue
			}

			out[filled] = codeAlphabet[int(b)%alphaLen]
			filled++
		}
	}

	return string(out), nil
}
