package utils

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

// NewCaptchaToken returns the short opaque token a captcha challenge is
// issued under.
func NewCaptchaToken() string {
	return uuid.NewString()[:8]
}

// NewSessionToken returns an opaque 64-hex-char session token.
func NewSessionToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return fmt.Sprintf("%x", b)
}

// NumericCode returns an n-digit verification code.
func NumericCode(n int) string {
	digits := make([]byte, n)
	for i := range digits {
		digits[i] = byte('0' + rand.Intn(10))
	}
	return string(digits)
}

// CaptchaChallenge returns a simple arithmetic question and its answer.
func CaptchaChallenge() (question, answer string) {
	a := rand.Intn(10) + 1
	b := rand.Intn(10) + 1
	return fmt.Sprintf("%d + %d = ?", a, b), fmt.Sprintf("%d", a+b)
}
