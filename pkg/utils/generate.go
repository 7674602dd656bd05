package utils

import (
	"strings"

	"github.com/google/uuid"
)

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// GenerateTransactionID formats a mock gateway reference: TXN-1a2b3c4d
func GenerateTransactionID() string {
	return "TXN-" + uuid.NewString()[:8]
}

// GeneratePaymentID formats an internal payment reference: PAY-1A2B3C4D5E6F
func GeneratePaymentID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "PAY-" + strings.ToUpper(raw[:12])
}

// ShortRef is the last eight characters of an id, upper-cased, as printed on tickets.
func ShortRef(id string) string {
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return strings.ToUpper(id)
}
