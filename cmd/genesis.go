package cmd

import (
	"log"
	"os"

	"github.com/findy-network/findy-backchannel/agent/ledger"
	"github.com/findy-network/findy-backchannel/cmds/backchannel"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var genesisDoc = `
Resolves the genesis transaction file like start does and prints its path.
The agent isn't started. A ledger service configured means the file is
downloaded.

Example
	findy-backchannel genesis --ledger-url http://localhost:9000
`

var genesisCmd = &cobra.Command{
	Use:   "genesis",
	Short: "Command for resolving the genesis file",
	Long:  genesisDoc,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)
		try.To(BindRawEnvs(map[string]string{
			"ledger-url":   startEnvs["ledger-url"],
			"genesis-file": startEnvs["genesis-file"],
		}))
		return BindEnvs(map[string]string{"work-dir": "WORK_DIR"}, "")
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		try.To(gCmd.Validate())
		if !rootFlags.dryRun {
			cmd.SilenceUsage = true
			try.To1(gCmd.Exec(os.Stdout))
		}
		return nil
	},
}

var gCmd = backchannel.GenesisCmd{Timeout: ledger.DefaultTimeout}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	flags := genesisCmd.Flags()
	flags.StringVar(&gCmd.LedgerURL, "ledger-url", "", rawFlagInfo("ledger bootstrap service URL", startEnvs["ledger-url"]))
	flags.StringVar(&gCmd.GenesisFile, "genesis-file", "", rawFlagInfo("genesis transaction file", startEnvs["genesis-file"]))
	flags.StringVar(&gCmd.WorkDir, "work-dir", "", flagInfo("base of the resource directory, current dir by default", "", "WORK_DIR"))

	rootCmd.AddCommand(genesisCmd)
}
