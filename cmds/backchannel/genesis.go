package backchannel

import (
	"context"
	"io"
	"time"

	"github.com/findy-network/findy-backchannel/agent/bootstrap"
	"github.com/findy-network/findy-backchannel/agent/ledger"
	"github.com/findy-network/findy-backchannel/cmds"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// GenesisCmd resolves the genesis file the way the start command does and
// prints its path. The agent isn't started.
type GenesisCmd struct {
	LedgerURL   string
	GenesisFile string
	WorkDir     string
	Timeout     time.Duration
}

func (c *GenesisCmd) Validate() error {
	return cmds.ValidateURL("ledger URL", c.LedgerURL, true)
}

func (c *GenesisCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err)

	resolver := &bootstrap.GenesisResolver{
		File:    c.GenesisFile,
		WorkDir: c.WorkDir,
	}
	if c.LedgerURL != "" {
		resolver.Ledger = try.To1(ledger.New(c.LedgerURL, c.Timeout))
	}
	path := try.To1(resolver.ResolveGenesisPath(context.Background()))
	cmds.Fprintln(w, path)
	return nil, nil
}
