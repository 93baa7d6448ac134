package bootstrap

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/findy-network/findy-backchannel/agent/ledger"
	"github.com/golang/glog"
)

const (
	// DefaultSeed is the well-known trustee seed of the local test pools.
	DefaultSeed = "000000000000000000000000Trustee1"

	seedPrefix = "my_seed_000000000000000000"
	suffixMin  = 100000
	suffixMax  = 1000000 // exclusive
)

// NewSeed builds a seed request value: a fixed prefix and a random six
// digit suffix, 32 characters in total.
func NewSeed() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(suffixMax-suffixMin))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", seedPrefix, suffixMin+n.Int64()), nil
}

// ResolveSeed returns the trust anchor seed for the agent. Without a ledger
// client the DefaultSeed is used. With it a new seed is registered and the
// one the ledger returns is used. A registration failure is never replaced
// with the default.
func ResolveSeed(ctx context.Context, c *ledger.Client) (string, error) {
	if c == nil {
		glog.V(1).Infoln("no ledger, using the default seed")
		return DefaultSeed, nil
	}
	requested, err := NewSeed()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrLedgerRegistration, err)
	}
	glog.V(1).Infoln("registering trust anchor seed at", c.BaseURL())
	seed, err := c.Register(ctx, ledger.RoleTrustAnchor, requested)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrLedgerRegistration, err)
	}
	return seed, nil
}
