package util

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// GenerateOrderID returns "ORD-" followed by the base-36 millisecond
// timestamp and 8 random hex characters, upper-cased.
func GenerateOrderID(now time.Time) (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	id := "ORD-" + strconv.FormatInt(now.UnixMilli(), 36) + "-" + hex.EncodeToString(b)
	return strings.ToUpper(id), nil
}
