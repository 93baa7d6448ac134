/*
Package bootstrap provisions the agent before the backchannel serves any
command. It resolves the trust anchor seed and the ledger genesis file,
assembles the runtime config from them and starts the agent runtime once.

Seed and genesis resolution are independent and run concurrently. Any
failure is fatal and reported with the stage it happened in: seed, genesis
or agent init. There are no retries.
*/
package bootstrap

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/findy-network/findy-backchannel/agent/ledger"
	"github.com/findy-network/findy-backchannel/agent/runtime"
	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"
)

// Environment variables the interop harness configures the backchannel with.
const (
	EnvLedgerURL   = "LEDGER_URL"
	EnvGenesisFile = "GENESIS_FILE"
	EnvAgencyURL   = "CLOUD_AGENCY_URL"
)

// Well-known values of the test setup. They keep the agent identity
// reproducible between test runs.
const (
	DefaultAgencyURL = "http://localhost:8080"
	DefaultPoolName  = "pool_name"

	AgencyDID    = "VsKV7grR1BUE29mG2Fm2kX"
	AgencyVerkey = "Hezce2UWMZ3wUhVkh2LfKSs8nDzWwzs2Win7EzNN3YaR"
	WalletName   = "wallet_name"
	WalletKey    = "8dvfYSt5d1taSd6yJdpjq4emkwsPDDLYxkNFysFD2cZY"
)

type Options struct {
	LedgerURL   string
	GenesisFile string
	AgencyURL   string
	PoolName    string
	WorkDir     string

	// WalletKDF is the derivation method of WalletKey, KDFRaw by default.
	WalletKDF runtime.KDF

	// Timeout bounds each ledger service call.
	Timeout time.Duration
}

type Orchestrator struct {
	opts Options
	rt   runtime.Runtime

	mu      sync.Mutex
	handle  runtime.Handle
	started bool
}

func New(opts Options, rt runtime.Runtime) *Orchestrator {
	if opts.AgencyURL == "" {
		opts.AgencyURL = DefaultAgencyURL
	}
	if opts.PoolName == "" {
		opts.PoolName = DefaultPoolName
	}
	if opts.Timeout == 0 {
		opts.Timeout = ledger.DefaultTimeout
	}
	return &Orchestrator{opts: opts, rt: rt}
}

// Initialize builds the runtime config and starts the agent with it. It can
// succeed only once per Orchestrator, there is no restart after Shutdown.
func (o *Orchestrator) Initialize(ctx context.Context) (h runtime.Handle, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.started {
		return nil, ErrAlreadyInitialized
	}

	cfg, err := o.BuildConfig(ctx)
	if err != nil {
		return nil, err
	}

	glog.V(1).Infoln("starting agent runtime:", cfg)
	h, err = o.rt.Initialize(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", StageAgentInit, ErrAgentInitialization, err)
	}
	o.handle = h
	o.started = true
	glog.V(1).Infoln("agent ready, issuer DID:", h.IssuerDID())
	return h, nil
}

// BuildConfig resolves the seed and the genesis path concurrently and
// assembles the runtime config when both are ready.
func (o *Orchestrator) BuildConfig(ctx context.Context) (cfg runtime.InitConfig, err error) {
	lc, err := o.ledgerClient()
	if err != nil {
		return cfg, fmt.Errorf("%s: %w: %w", StageSeed, ErrLedgerRegistration, err)
	}

	var seed, genesisPath string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if seed, err = ResolveSeed(gctx, lc); err != nil {
			return fmt.Errorf("%s: %w", StageSeed, err)
		}
		return nil
	})
	g.Go(func() (err error) {
		r := &GenesisResolver{
			File:    o.opts.GenesisFile,
			Ledger:  lc,
			WorkDir: o.opts.WorkDir,
		}
		if genesisPath, err = r.ResolveGenesisPath(gctx); err != nil {
			return fmt.Errorf("%s: %w", StageGenesis, err)
		}
		return nil
	})
	if err = g.Wait(); err != nil {
		return cfg, err
	}

	return runtime.InitConfig{
		EnterpriseSeed: seed,
		GenesisPath:    genesisPath,
		PoolName:       o.opts.PoolName,
		AgencyEndpoint: o.opts.AgencyURL,
		AgencyDID:      AgencyDID,
		AgencyVerkey:   AgencyVerkey,
		WalletName:     WalletName,
		WalletKey:      WalletKey,
		WalletKDF:      o.opts.WalletKDF,
	}, nil
}

func (o *Orchestrator) ledgerClient() (*ledger.Client, error) {
	if o.opts.LedgerURL == "" {
		return nil, nil
	}
	return ledger.New(o.opts.LedgerURL, o.opts.Timeout)
}

// Shutdown closes the agent if Initialize has started it.
func (o *Orchestrator) Shutdown() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.handle == nil {
		return
	}
	if err := o.handle.Close(); err != nil {
		glog.Warningln("agent close:", err)
	}
	o.handle = nil
}
