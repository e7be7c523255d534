package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/mfulz/actionchain/internal/chain"
	"github.com/mfulz/actionchain/internal/chainconfig"
	"github.com/mfulz/actionchain/internal/controlcli"
	"github.com/mfulz/actionchain/internal/logging"
	"github.com/mfulz/actionchain/protocol"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	chainFile    string
	journalLimit int
)

// ChainCmd groups chain inspection commands.
var ChainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Inspect responder chains",
}

// chainListCmd lists the responders of the daemon's chain.
var chainListCmd = &cobra.Command{
	Use:   "list",
	Short: "List responders hosted by the daemon",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, t, err := remoteTarget()
		if err != nil {
			return err
		}
		list, err := controlcli.List(cfg, t)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RESPONDER\tTARGET\tACTIONS")
		for _, r := range list.Responders {
			fmt.Fprintf(w, "%s\t%s\t%v\n", r.Name, r.Target, r.Actions)
		}
		return w.Flush()
	},
}

// chainJournalCmd prints the daemon's journal of handled actions.
var chainJournalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show recently handled actions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, t, err := remoteTarget()
		if err != nil {
			return err
		}
		journal, err := controlcli.Journal(cfg, t, journalLimit)
		if err != nil {
			return err
		}
		return printJournal(cmd, journal.Entries)
	},
}

// chainShowCmd validates a chain file and prints it as resolved.
var chainShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Validate a chain definition file and print it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := chainconfig.Load(chainFile)
		if err != nil {
			return err
		}
		out, err := chainconfig.Encode(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

// runCmd builds a chain from a file and sends one action through it locally.
var runCmd = &cobra.Command{
	Use:   "run <responder> <action> [args...]",
	Short: "Send an action through a chain file without a daemon",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := chainconfig.Load(chainFile)
		if err != nil {
			return err
		}
		c, err := chain.Build(cfg, logging.Named("chain"))
		if err != nil {
			return err
		}
		if err := c.Send(args[0], args[1], parseArgs(args[2:])...); err != nil {
			return err
		}
		return printJournal(cmd, c.Journal().Entries(0))
	},
}

func printJournal(cmd *cobra.Command, entries []protocol.JournalEntry) error {
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no actions handled")
		return nil
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return err
	}
	return enc.Close()
}

func init() {
	chainJournalCmd.Flags().IntVarP(&journalLimit, "limit", "n", 0, "Only show the last n entries")

	for _, c := range []*cobra.Command{chainShowCmd, runCmd} {
		c.Flags().StringVarP(&chainFile, "file", "f", "", "Chain definition file")
		_ = c.MarkFlagRequired("file")
	}

	ChainCmd.AddCommand(chainListCmd)
	ChainCmd.AddCommand(chainJournalCmd)
	ChainCmd.AddCommand(chainShowCmd)
}
