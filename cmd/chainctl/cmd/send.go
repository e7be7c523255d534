package cmd

import (
	"fmt"

	"github.com/mfulz/actionchain/internal/controlcli"
	"github.com/spf13/cobra"
)

var actionKey string

// sendCmd delivers a named action into the chain.
var sendCmd = &cobra.Command{
	Use:   "send <responder> <action> [args...]",
	Short: "Send a named action into the chain at a responder",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, t, err := remoteTarget()
		if err != nil {
			return err
		}
		if err := controlcli.Send(cfg, t, args[0], args[1], parseArgs(args[2:])); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "sent %s to %s\n", args[1], args[0])
		return nil
	},
}

// sendActionCmd runs the action bound on a responder.
var sendActionCmd = &cobra.Command{
	Use:   "send-action <responder> [args...]",
	Short: "Run the action bound to a key on a responder",
	Long: `Resolves the action bound under --key (default "action") on the responder
and runs it with the given arguments.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, t, err := remoteTarget()
		if err != nil {
			return err
		}
		if err := controlcli.SendAction(cfg, t, args[0], actionKey, parseArgs(args[1:])); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "action sent from %s\n", args[0])
		return nil
	},
}

// pingCmd checks the daemon is reachable.
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the daemon answers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, t, err := remoteTarget()
		if err != nil {
			return err
		}
		if err := controlcli.Ping(cfg, t); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "pong")
		return nil
	},
}

func init() {
	sendActionCmd.Flags().StringVarP(&actionKey, "key", "k", "", "Key the action is bound under")
}
