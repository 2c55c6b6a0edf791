package wallet

import (
	"fmt"
	"strings"
)

type identityKind uint8

const (
	identityNone identityKind = iota
	identityRaw
	identityConvertible
)

// Identity is what a provider reports for the connected principal: either a
// plain string or a value that renders itself as text.
type Identity struct {
	kind identityKind
	raw  string
	conv fmt.Stringer
}

func Raw(s string) Identity { return Identity{kind: identityRaw, raw: s} }

func Convertible(s fmt.Stringer) Identity { return Identity{kind: identityConvertible, conv: s} }

// Normalize reduces the identity to a non-empty string.
func (id Identity) Normalize() (text string, err error) {
	switch id.kind {
	case identityRaw:
		text = id.raw
	case identityConvertible:
		if id.conv == nil {
			return "", ErrIdentityUnavailable
		}
		defer func() {
			if r := recover(); r != nil {
				text, err = "", fmt.Errorf("%w: %v", ErrIdentityUnavailable, r)
			}
		}()
		text = id.conv.String()
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrIdentityUnavailable
	}
	return text, nil
}
