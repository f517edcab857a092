package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrPaymentFailed means the chain reported a terminal non-success status
	// for the submission fee transaction.
	ErrPaymentFailed = errors.New("payment failed")
	// ErrPaymentNotConfirmed means the transaction never reached a terminal
	// status inside the polling window. The submission is rejected but the
	// transaction may still land later.
	ErrPaymentNotConfirmed = errors.New("payment not confirmed in time")
	// ErrPaymentMismatch means the transaction is confirmed but does not pay
	// the expected receiver or amount.
	ErrPaymentMismatch = errors.New("payment does not match quote")
	// ErrInsufficientFunds means the wallet balance cannot cover fee plus the
	// gas reserve for the proposed submission.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
