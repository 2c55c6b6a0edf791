package wallet

import (
	"strings"

	"github.com/skip2/go-qrcode"
)

const (
	truncateHead = 8
	truncateTail = 5
)

// TruncateIdentity shortens an identity for display as the first 8 runes, an
// ellipsis and the last 5. Short identities are returned whole.
func TruncateIdentity(id string) string {
	r := []rune(id)
	if len(r) <= truncateHead+truncateTail {
		return id
	}
	return string(r[:truncateHead]) + "..." + string(r[len(r)-truncateTail:])
}

// QRCode renders the identity as a half-block QR code for terminals.
func QRCode(id string) (string, error) {
	qr, err := qrcode.New(id, qrcode.Medium)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(qr.ToSmallString(false), "\n"), nil
}
