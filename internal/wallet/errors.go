package wallet

import "errors"

var (
	ErrProviderUnavailable  = errors.New("wallet provider unavailable")
	ErrConnectionRejected   = errors.New("wallet connection rejected")
	ErrIdentityUnavailable  = errors.New("wallet identity unavailable")
	ErrNoIdentity           = errors.New("no wallet identity to copy")
	ErrClipboardWriteFailed = errors.New("clipboard write failed")
)
