package service

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateOrderNumber derives a human-quotable, globally unique order number:
// millisecond timestamp plus a random 3-digit pad. A collision is
// statistically negligible and surfaces as a retryable uniqueness violation
// rather than silent corruption.
func GenerateOrderNumber(at time.Time) string {
	return fmt.Sprintf("ORD-%d%03d", at.UnixMilli(), rand.Intn(1000))
}
