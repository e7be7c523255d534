// Package cmd provides the chainctl command tree.
package cmd

import (
	"github.com/mfulz/actionchain/internal/configcli"
	"github.com/mfulz/actionchain/internal/configloader"
	"github.com/mfulz/actionchain/internal/controlcli"
	"github.com/mfulz/actionchain/internal/logging"
	"github.com/spf13/cobra"
)

var (
	daemonName    string
	controlUser   string
	overrideAddr  string
	overrideToken string
)

// RootCmd is the chainctl root command.
var RootCmd = &cobra.Command{
	Use:           "chainctl",
	Short:         "Control interface for the chaind daemon",
	Long:          `chainctl sends actions into responder chains hosted by chaind and inspects them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree and logs any error.
func Execute() error {
	err := RootCmd.Execute()
	if err != nil {
		logging.Log.Errorf("[chainctl] error: %v", err)
	}
	return err
}

// remoteTarget loads the client config unless the daemon is addressed
// directly and returns the config plus target for controlcli.
func remoteTarget() (*configcli.Config, controlcli.Target, error) {
	t := controlcli.Target{
		Daemon: daemonName,
		User:   controlUser,
		Addr:   overrideAddr,
		Token:  overrideToken,
	}
	if cfg, ok := configloader.TryGetConfig[*configcli.Config](); ok {
		return cfg, t, nil
	}
	if err := configcli.LoadConfig(); err != nil {
		if overrideAddr != "" {
			return nil, t, nil
		}
		return nil, t, err
	}
	return configloader.MustGetConfig[*configcli.Config](), t, nil
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&daemonName, "daemon", "d", "", "Daemon name from chainctl config")
	RootCmd.PersistentFlags().StringVarP(&controlUser, "user", "u", "admin", "Control user to authenticate as")
	RootCmd.PersistentFlags().StringVar(&overrideAddr, "addr", "", "Direct override address for daemon (unix socket or host:port)")
	RootCmd.PersistentFlags().StringVar(&overrideToken, "token", "", "Auth token for manually specified daemon")

	RootCmd.AddCommand(sendCmd)
	RootCmd.AddCommand(sendActionCmd)
	RootCmd.AddCommand(pingCmd)
	RootCmd.AddCommand(ChainCmd)
	RootCmd.AddCommand(runCmd)
}
