package utils

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"strconv"
)

// GenerateSecureToken returns a hex-encoded random string of nBytes entropy,
// used for email verification and password reset tokens.
func GenerateSecureToken(nBytes int) (string, error) {
	buf := make([]byte, nBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// GenerateNumericCode returns a 6-digit code drawn uniformly from
// 100000-999999, used for phone verification and 2FA.
func GenerateNumericCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
