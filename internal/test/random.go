package test

import (
	"math/rand/v2"
	"strings"
)

const credentialAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// RandomASCIIString returns a random credential-like string of minLen to
// maxLen characters. Lengths below one are raised to one.
func RandomASCIIString(minLen, maxLen int) string {
	minLen = max(minLen, 1)
	maxLen = max(maxLen, minLen)

	var b strings.Builder
	n := minLen + rand.IntN(maxLen-minLen+1)
	b.Grow(n)
	for range n {
		b.WriteByte(credentialAlphabet[rand.IntN(len(credentialAlphabet))])
	}
	return b.String()
}
