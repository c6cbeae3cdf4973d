package model

import "strings"

// PaymentStatus is the lifecycle state of a wallet payment as reported
// by the backend. The backend sends uppercase variants; everything on
// this side works with the normalized lowercase form.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
	PaymentFailed    PaymentStatus = "failed"
)

// ParsePaymentStatus maps a backend status string to a PaymentStatus.
// The mapping is total: unrecognized values fall back to pending so a
// new backend variant can never be mistaken for a terminal state.
func ParsePaymentStatus(raw string) PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "paid", "completed", "success":
		return PaymentPaid
	case "cancelled", "canceled":
		return PaymentCancelled
	case "failed", "expired":
		return PaymentFailed
	case "pending", "processing":
		return PaymentPending
	default:
		return PaymentPending
	}
}

// Terminal reports whether no further transitions are expected.
func (s PaymentStatus) Terminal() bool {
	switch s {
	case PaymentPaid, PaymentCancelled, PaymentFailed:
		return true
	}
	return false
}
