/*
Package indy is the agent runtime on top of the Indy SDK wrapper. It creates
and opens the ledger pool and the wallet, and stores the trust anchor DID of
the enterprise seed. The package needs libindy.
*/
package indy

import (
	"context"
	"sync"

	"github.com/findy-network/findy-backchannel/agent/async"
	"github.com/findy-network/findy-backchannel/agent/pool"
	"github.com/findy-network/findy-backchannel/agent/runtime"
	"github.com/findy-network/findy-backchannel/agent/ssi"
	_ "github.com/findy-network/findy-wrapper-go/addons" // Install ledger plugins
	"github.com/findy-network/findy-wrapper-go/did"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// The wrapper calls are variables to be replaced in the tests.
var (
	createPoolConfig = pool.CreateConfig
	openPool         = pool.Open
	closePool        = pool.Close

	createWallet = func(w *ssi.Wallet) (bool, error) { return w.Create() }
	openWallet   = func(w *ssi.Wallet) (int, error) { return w.Open().Int() }
	closeWallet  = func(w *ssi.Wallet, h int) error {
		_, err := w.Close(h).Int()
		return err
	}

	createDID = func(wallet int, seed string) (string, error) {
		return async.NewFuture(did.CreateAndStore(wallet, did.Did{Seed: seed})).Str1()
	}
)

// Runtime implements runtime.Runtime.
type Runtime struct{}

type handle struct {
	wallet       *ssi.Wallet
	walletHandle int
	issuerDID    string

	closeOnce sync.Once
	closeErr  error
}

// Initialize opens the ledger pool, the wallet and stores the trust anchor
// DID derived from the enterprise seed. What was opened before a failure is
// closed.
func (Runtime) Initialize(ctx context.Context, cfg runtime.InitConfig) (h runtime.Handle, err error) {
	var opened []func() error
	defer err2.Handle(&err, func(err error) error {
		for i := len(opened) - 1; i >= 0; i-- {
			if cerr := opened[i](); cerr != nil {
				glog.Warningln("agent runtime cleanup:", cerr)
			}
		}
		return err
	})

	try.To(cfg.Validate())
	glog.V(1).Infoln("initializing agent runtime:", cfg)

	try.To(createPoolConfig(cfg.PoolName, cfg.GenesisPath))
	try.To(ctx.Err())
	ph := try.To1(openPool(cfg.PoolName))
	opened = append(opened, closePool)
	glog.V(2).Infoln("pool open, handle:", ph)

	w := ssi.NewWalletCfg(cfg.WalletName, cfg.WalletKey, cfg.WalletKDF.String())
	exist := try.To1(createWallet(w))
	glog.V(2).Infoln("wallet", w.ID(), "existed already:", exist)
	try.To(ctx.Err())
	wh := try.To1(openWallet(w))
	opened = append(opened, func() error { return closeWallet(w, wh) })

	ourDID := try.To1(createDID(wh, cfg.EnterpriseSeed))
	glog.V(1).Infoln("issuer DID:", ourDID)

	return &handle{
		wallet:       w,
		walletHandle: wh,
		issuerDID:    ourDID,
	}, nil
}

func (h *handle) IssuerDID() string {
	return h.issuerDID
}

func (h *handle) Close() error {
	h.closeOnce.Do(func() {
		defer err2.Handle(&h.closeErr)

		try.To(closeWallet(h.wallet, h.walletHandle))
		try.To(closePool())
	})
	return h.closeErr
}
