package utils

import (
	"crypto/rand"
	"time"
)

// codeAlphabet excludes nothing on purpose: codes are short-lived and
// typed from an email, so plain uppercase letters and digits keep them
// easy to read aloud.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeTTL is how long an email-verification or password-reset code stays
// valid after issue.
const CodeTTL = 15 * time.Minute

// NewVerificationCode returns a 6-character uppercase alphanumeric code
// and its expiration time.  Codes are single use: the repository clears
// the stored code when it is consumed.
func NewVerificationCode() (string, time.Time, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", time.Time{}, err
	}
	for i := range buf {
		buf[i] = codeAlphabet[int(buf[i])%len(codeAlphabet)]
	}
	return string(buf), time.Now().UTC().Add(CodeTTL), nil
}
