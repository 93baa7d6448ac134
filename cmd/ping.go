package cmd

import (
	"log"
	"os"

	"github.com/findy-network/findy-backchannel/cmds/backchannel"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/spf13/cobra"
)

var pingEnvs = map[string]string{
	"base-address": "BASE_ADDRESS",
}

var pingDoc = `
Pings a running backchannel. If it works fine, ping ok with the version and
the harness status is printed.

Example
	findy-backchannel ping \
		--base-address http://localhost:9020
`

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Command for pinging the backchannel",
	Long:  pingDoc,
	PreRunE: func(cmd *cobra.Command, args []string) (err error) {
		return BindEnvs(pingEnvs, cmd.Name())
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer err2.Handle(&err)

		try.To(pCmd.Validate())
		if !rootFlags.dryRun {
			// if error occurs in the execution, we don't show usage, only
			// the error message.
			cmd.SilenceUsage = true
			try.To1(pCmd.Exec(os.Stdout))
		}
		return nil
	},
}

var pCmd = backchannel.PingCmd{}

func init() {
	defer err2.Catch(err2.Err(func(err error) {
		log.Println(err)
	}))

	pingCmd.Flags().StringVar(&pCmd.BaseAddr, "base-address", "http://localhost:9020", flagInfo("base address of the backchannel", pingCmd.Name(), pingEnvs["base-address"]))

	rootCmd.AddCommand(pingCmd)
}
