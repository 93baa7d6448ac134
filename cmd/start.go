package cmd

import (
	"log"
	"os"

	"github.com/findy-network/findy-backchannel/agent/bootstrap"
	"github.com/findy-network/findy-backchannel/agent/harness"
	"github.com/findy-network/findy-backchannel/agent/ledger"
	"github.com/findy-network/findy-backchannel/agent/runtime"
	"github.com/findy-network/findy-backchannel/agent/runtime/indy"
	"github.com/findy-network/findy-backchannel/agent/utils"
	"github.com/findy-network/findy-backchannel/cmds/backchannel"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

// startEnvs are set by the interop harness as is, without the prefix.
var startEnvs = map[string]string{
	"ledger-url":   bootstrap.EnvLedgerURL,
	"genesis-file": bootstrap.EnvGenesisFile,
	"agency-url":   bootstrap.EnvAgencyURL,
}

var startPrefixedEnvs = map[string]string{
	"port":         "PORT",
	"pool-name":    "POOL_NAME",
	"timeout":      "TIMEOUT",
	"lock-timeout": "LOCK_TIMEOUT",
	"work-dir":     "WORK_DIR",
	"wallet-kdf":   "WALLET_KDF",
}

var startDoc = `
Bootstraps the agent and serves the harness command API.

The enterprise seed is registered from the ledger service when LEDGER_URL is
set. The genesis file is GENESIS_FILE if set, otherwise it's downloaded from
the ledger service, otherwise the bundled resource/indypool.txn is used. The
command API is started only after the agent is ready.

Example
	findy-backchannel start \
		--ledger-url http://localhost:9000 \
		--port 9020
`

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Command for starting the backchannel",
	Long:  startDoc,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)
		try.To(BindRawEnvs(startEnvs))
		return BindEnvs(startPrefixedEnvs, "")
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		try.To(sCmd.Validate())
		if !rootFlags.dryRun {
			cmd.SilenceUsage = true
			try.To1(sCmd.Exec(os.Stdout))
		}
		return nil
	},
}

var sCmd = backchannel.StartCmd{Runtime: indy.Runtime{}}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	sCmd.VersionInfo = "findy-backchannel v. " + utils.Version

	flags := startCmd.Flags()
	flags.StringVar(&sCmd.LedgerURL, "ledger-url", "", rawFlagInfo("ledger bootstrap service URL", startEnvs["ledger-url"]))
	flags.StringVar(&sCmd.GenesisFile, "genesis-file", "", rawFlagInfo("genesis transaction file", startEnvs["genesis-file"]))
	flags.StringVar(&sCmd.AgencyURL, "agency-url", bootstrap.DefaultAgencyURL, rawFlagInfo("cloud agency endpoint", startEnvs["agency-url"]))
	flags.UintVar(&sCmd.ServerPort, "port", 9020, flagInfo("command API port", "", startPrefixedEnvs["port"]))
	flags.StringVar(&sCmd.PoolName, "pool-name", bootstrap.DefaultPoolName, flagInfo("pool name", "", startPrefixedEnvs["pool-name"]))
	flags.DurationVar(&sCmd.Timeout, "timeout", ledger.DefaultTimeout, flagInfo("ledger service request timeout", "", startPrefixedEnvs["timeout"]))
	flags.DurationVar(&sCmd.LockTimeout, "lock-timeout", harness.DefaultLockTimeout, flagInfo("max wait for harness access", "", startPrefixedEnvs["lock-timeout"]))
	flags.StringVar(&sCmd.WalletKDF, "wallet-kdf", runtime.KDFRaw.String(), flagInfo("wallet key derivation method: RAW, ARGON2I_MOD or ARGON2I_INT", "", startPrefixedEnvs["wallet-kdf"]))
	flags.StringVar(&sCmd.WorkDir, "work-dir", "", flagInfo("base of the resource directory, current dir by default", "", startPrefixedEnvs["work-dir"]))

	rootCmd.AddCommand(startCmd)
}
