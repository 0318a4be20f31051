package payment

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"strings"
	"time"
)

var orderIDPattern = regexp.MustCompile(`^ORD-\d{8}-[0-9A-F]{8}$`)

// NewOrderID returns ORD-<yyyymmdd>-<8 upper hex>.
func NewOrderID(now time.Time) (string, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return "ORD-" + now.UTC().Format("20060102") + "-" + strings.ToUpper(hex.EncodeToString(buf[:])), nil
}

func ValidOrderID(s string) bool {
	return orderIDPattern.MatchString(s)
}
