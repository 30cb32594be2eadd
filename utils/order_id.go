package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateOrderID builds a booking order id in the form
// ORDER-<unix ms>-<0..999>. The timestamp keeps ids roughly sortable; the
// random suffix separates bookings created within the same millisecond.
// Uniqueness is still enforced by the order_id unique index, with the
// create path regenerating on collision.
func GenerateOrderID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		return "", fmt.Errorf("failed to generate order id: %w", err)
	}
	return fmt.Sprintf("ORDER-%d-%d", time.Now().UnixMilli(), n.Int64()), nil
}
