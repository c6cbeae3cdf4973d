package client

import "errors"

// Sentinel errors for the backend responses the order flow must tell
// apart. Everything else surfaces as a wrapped generic error.
var (
	ErrInsufficientBalance = errors.New("wallet balance is insufficient")
	ErrValidation          = errors.New("request rejected by backend validation")
	ErrUnauthorized        = errors.New("not authorized")
	ErrNotFound            = errors.New("resource not found")
)
