// Package solanakey provides a wallet backed by a Solana CLI keygen file
// (a JSON array of 64 secret key bytes).
package solanakey

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/gagliardetto/solana-go"

	"github.com/jask/tokenestate/internal/wallet"
)

var ErrNotConnected = errors.New("keyfile wallet not connected")

// Provider reads the keypair on Connect and reports its public key.
type Provider struct {
	path string

	mu  sync.Mutex
	key solana.PrivateKey
}

func New(path string) *Provider {
	return &Provider{path: path}
}

// IsAvailable reports whether the keyfile exists.
func (p *Provider) IsAvailable() bool {
	if p == nil || p.path == "" {
		return false
	}
	st, err := os.Stat(p.path)
	return err == nil && st.Mode().IsRegular()
}

func (p *Provider) Connect(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	key, err := solana.PrivateKeyFromSolanaKeygenFile(p.path)
	if err != nil {
		return false, fmt.Errorf("read keyfile: %w", err)
	}
	if len(key) != 64 {
		return false, fmt.Errorf("read keyfile: expected 64 key bytes, got %d", len(key))
	}
	p.mu.Lock()
	p.key = key
	p.mu.Unlock()
	return true, nil
}

// Identity returns the public key, which renders as base58.
func (p *Provider) Identity(ctx context.Context) (wallet.Identity, error) {
	if err := ctx.Err(); err != nil {
		return wallet.Identity{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.key) == 0 {
		return wallet.Identity{}, ErrNotConnected
	}
	return wallet.Convertible(p.key.PublicKey()), nil
}
