package ssi

import (
	"github.com/findy-network/findy-backchannel/agent/async"
	"github.com/findy-network/findy-wrapper-go/wallet"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

type Wallet struct {
	Config      wallet.Config
	Credentials wallet.Credentials
}

const WalletAlreadyExistsError = 203

// NewWalletCfg builds a wallet config where kdf is the key derivation method
// of the wallet key: RAW, ARGON2I_MOD or ARGON2I_INT.
func NewWalletCfg(name, key, kdf string) (w *Wallet) {
	return &Wallet{
		Config: wallet.Config{ID: name},
		Credentials: wallet.Credentials{
			Key:                 key,
			KeyDerivationMethod: kdf,
		},
	}
}

// Create creates the wallet. Existing wallet isn't an error, exist tells it.
func (w *Wallet) Create() (exist bool, err error) {
	defer err2.Handle(&err, "create wallet %s", w.Config.ID)

	r := <-wallet.Create(w.Config, w.Credentials)
	if r.Err() != nil {
		if WalletAlreadyExistsError != r.ErrCode() {
			try.To(r.Err())
		}
		return true, nil
	}
	return false, nil
}

func (w *Wallet) Open() (f *async.Future) {
	if glog.V(3) {
		glog.Info("opening wallet: ", w.Config.ID)
	}
	f = new(async.Future)
	f.SetChan(wallet.Open(w.Config, w.Credentials))
	return f
}

func (w *Wallet) Close(handle int) (f *async.Future) {
	if glog.V(3) {
		glog.Infof("closing wallet(%d): %s", handle, w.Config.ID)
	}
	f = new(async.Future)
	f.SetChan(wallet.Close(handle))
	return f
}

func (w *Wallet) ID() string {
	return w.Config.ID
}
