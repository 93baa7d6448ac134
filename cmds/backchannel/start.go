/*
Package backchannel implements the commands of the test-harness backchannel:
start the agent and serve the command API, resolve the genesis file and ping
a running backchannel.
*/
package backchannel

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/findy-network/findy-backchannel/agent/bootstrap"
	"github.com/findy-network/findy-backchannel/agent/harness"
	"github.com/findy-network/findy-backchannel/agent/runtime"
	"github.com/findy-network/findy-backchannel/agent/utils"
	"github.com/findy-network/findy-backchannel/cmds"
	"github.com/findy-network/findy-backchannel/server"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const shutdownTimeout = 5 * time.Second

type StartCmd struct {
	LedgerURL   string
	GenesisFile string
	AgencyURL   string
	PoolName    string
	WorkDir     string
	ServerPort  uint
	Timeout     time.Duration
	LockTimeout time.Duration
	VersionInfo string

	// WalletKDF is the wallet key derivation method name, RAW when empty.
	WalletKDF string

	// Runtime starts the agent.
	Runtime runtime.Runtime

	kdf runtime.KDF
}

func (c *StartCmd) Validate() error {
	if c.ServerPort == 0 {
		return errors.New("server port cannot be zero")
	}
	if err := cmds.ValidateURL("ledger URL", c.LedgerURL, true); err != nil {
		return err
	}
	if err := cmds.ValidateURL("agency URL", c.AgencyURL, true); err != nil {
		return err
	}
	if c.Timeout < 0 || c.LockTimeout < 0 {
		return errors.New("timeouts cannot be negative")
	}
	if c.Runtime == nil {
		return errors.New("agent runtime cannot be nil")
	}
	kdf := runtime.KDFRaw.String()
	if c.WalletKDF != "" {
		kdf = c.WalletKDF
	}
	var err error
	c.kdf, err = runtime.ParseKDF(kdf)
	return err
}

// Exec bootstraps the agent and serves the command API until the process is
// interrupted.
func (c *StartCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return nil, c.Run(ctx, w)
}

// Run is Exec with a caller given lifetime. The listener is opened only after
// the agent is initialized. Validate must be called first.
func (c *StartCmd) Run(ctx context.Context, w io.Writer) (err error) {
	defer err2.Handle(&err)

	c.setRuntimeSettings()
	c.printStartupArgs(w)

	h := harness.New(utils.Settings.LockTimeout())
	try.To(h.SetStatus(ctx, harness.Initializing))

	o := bootstrap.New(c.options(), c.Runtime)
	handle, err := o.Initialize(ctx)
	if err != nil {
		_ = h.SetStatus(context.Background(), harness.Failed)
		return err
	}
	defer o.Shutdown()
	try.To(h.Attach(ctx, handle))
	cmds.Fprintln(w, "agent ready, DID:", handle.IssuerDID())

	srv := server.NewHTTPServer(h, utils.Settings.ServerPort())
	ln := try.To1(net.Listen("tcp", srv.Addr))
	cmds.Fprintln(w, "listening:", ln.Addr())

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	select {
	case err = <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		glog.V(1).Infoln("shutting down:", ctx.Err())
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		try.To(srv.Shutdown(sctx))
	}
	_, _ = h.Detach(context.Background())
	cmds.Fprintln(w, "stopped")
	return nil
}

func (c *StartCmd) options() bootstrap.Options {
	return bootstrap.Options{
		LedgerURL:   c.LedgerURL,
		GenesisFile: c.GenesisFile,
		AgencyURL:   c.AgencyURL,
		PoolName:    c.PoolName,
		WorkDir:     utils.Settings.WorkDir(),
		WalletKDF:   c.kdf,
		Timeout:     utils.Settings.Timeout(),
	}
}

func (c *StartCmd) setRuntimeSettings() {
	if c.VersionInfo != "" {
		utils.Settings.SetVersionInfo(c.VersionInfo)
	}
	utils.Settings.SetServerPort(c.ServerPort)
	utils.Settings.SetTimeout(c.Timeout)
	utils.Settings.SetLockTimeout(c.LockTimeout)
	utils.Settings.SetWorkDir(c.WorkDir)
}

func (c *StartCmd) printStartupArgs(w io.Writer) {
	ledgerURL := c.LedgerURL
	if ledgerURL == "" {
		ledgerURL = "-"
	}
	genesisFile := c.GenesisFile
	if genesisFile == "" {
		genesisFile = "-"
	}
	cmds.Fprintln(w,
		"Ledger URL:", ledgerURL,
		"\nGenesis file:", genesisFile,
		"\nServer port:", c.ServerPort)
}
