/*
Package runtime is the boundary to the agent runtime which owns the wallet,
the DIDs and the DIDComm protocol state. The backchannel starts the runtime
once with InitConfig and reads the issuer DID through the returned Handle.
*/
package runtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// ErrInvalidConfig is returned when InitConfig doesn't pass the fail fast
// checks of Validate.
var ErrInvalidConfig = errors.New("invalid runtime config")

const (
	SeedLength      = 32
	didKeyLength    = 16
	verkeyKeyLength = 32
)

// KDF is the key derivation method of the wallet key.
type KDF int

const (
	KDFRaw KDF = iota
	KDFArgon2iMod
	KDFArgon2iInt
)

func (k KDF) String() string {
	switch k {
	case KDFRaw:
		return "RAW"
	case KDFArgon2iMod:
		return "ARGON2I_MOD"
	case KDFArgon2iInt:
		return "ARGON2I_INT"
	}
	return fmt.Sprintf("KDF(%d)", int(k))
}

// ParseKDF maps a key derivation method name to KDF.
func ParseKDF(s string) (KDF, error) {
	for _, k := range []KDF{KDFRaw, KDFArgon2iMod, KDFArgon2iInt} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown wallet kdf %q", ErrInvalidConfig, s)
}

// InitConfig carries everything the runtime needs to start. EnterpriseSeed
// and WalletKey are secrets, String() leaves them out.
type InitConfig struct {
	EnterpriseSeed string
	GenesisPath    string
	PoolName       string
	AgencyEndpoint string
	AgencyDID      string
	AgencyVerkey   string
	WalletName     string
	WalletKey      string
	WalletKDF      KDF
}

// Validate checks that every field is set and well formed.
func (c InitConfig) Validate() error {
	required := []struct {
		name, value string
	}{
		{"enterprise seed", c.EnterpriseSeed},
		{"genesis path", c.GenesisPath},
		{"pool name", c.PoolName},
		{"agency endpoint", c.AgencyEndpoint},
		{"agency DID", c.AgencyDID},
		{"agency verkey", c.AgencyVerkey},
		{"wallet name", c.WalletName},
		{"wallet key", c.WalletKey},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s cannot be empty", ErrInvalidConfig, r.name)
		}
	}
	if len(c.EnterpriseSeed) != SeedLength {
		return fmt.Errorf("%w: seed must be length of %d", ErrInvalidConfig, SeedLength)
	}
	if err := checkBase58(c.AgencyDID, didKeyLength); err != nil {
		return fmt.Errorf("%w: agency DID: %v", ErrInvalidConfig, err)
	}
	if err := checkBase58(c.AgencyVerkey, verkeyKeyLength); err != nil {
		return fmt.Errorf("%w: agency verkey: %v", ErrInvalidConfig, err)
	}
	if c.WalletKDF < KDFRaw || c.WalletKDF > KDFArgon2iInt {
		return fmt.Errorf("%w: unknown wallet kdf %v", ErrInvalidConfig, c.WalletKDF)
	}
	return nil
}

func checkBase58(s string, length int) error {
	b, err := base58.Decode(s)
	if err != nil {
		return err
	}
	if len(b) != length {
		return fmt.Errorf("decoded length %d, want %d", len(b), length)
	}
	return nil
}

// String prints the non-secret fields only.
func (c InitConfig) String() string {
	return fmt.Sprintf("pool: %s, genesis: %s, agency: %s, wallet: %s (%s)",
		c.PoolName, c.GenesisPath, c.AgencyEndpoint, c.WalletName, c.WalletKDF)
}

// GoString keeps %#v from dumping the secrets.
func (c InitConfig) GoString() string {
	return "runtime.InitConfig{" + c.String() + "}"
}

// Runtime starts the agent. Initialize is called exactly once per process.
type Runtime interface {
	Initialize(ctx context.Context, cfg InitConfig) (Handle, error)
}

// Handle is the running agent.
type Handle interface {
	IssuerDID() string
	Close() error
}
