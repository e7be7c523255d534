// Command chaind is the main entry point for the actionchain daemon.
// It loads configuration, builds the responder chain, initializes the
// control interfaces (unix/tcp) and serves actions until it receives a
// termination signal.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/mfulz/actionchain/internal/acl"
	"github.com/mfulz/actionchain/internal/chain"
	"github.com/mfulz/actionchain/internal/chainconfig"
	"github.com/mfulz/actionchain/internal/control"
	"github.com/mfulz/actionchain/internal/logging"
)

func main() {
	cfg, err := chainconfig.LoadDefault()
	if err != nil {
		logging.Log.Fatalf("[chaind] Failed to load config: %v", err)
	}

	if err := logging.Init(cfg.Logger); err != nil {
		logging.Log.Fatalf("[chaind] Failed to init logger: %v", err)
	}
	defer func() { _ = logging.Log.Sync() }()

	logging.Log.Info("[chaind] Configuration loaded successfully")

	c, err := chain.Build(cfg, logging.Named("chain"))
	if err != nil {
		logging.Log.Fatalf("[chaind] Failed to build chain: %v", err)
	}

	engine, err := acl.New(cfg.ACL, acl.AllPermissions, logging.Named("acl"))
	if err != nil {
		logging.Log.Fatalf("[chaind] Invalid ACL config: %v", err)
	}

	server := control.NewServer(c, engine, logging.Named("control"))
	if err := server.StartAll(cfg.Control.Instances); err != nil {
		logging.Log.Fatalf("[chaind] Failed to start control interface: %v", err)
	}

	logging.Log.Infof("[chaind] Serving %d responders. Waiting for actions...", len(c.Names()))

	// Handle termination signals to shut down cleanly
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan // wait for signal

	logging.Log.Info("[chaind] Termination signal received. Closing control interfaces...")
	if err := server.Close(); err != nil {
		logging.Log.Warnf("[chaind] Error while closing: %v", err)
	}
	logging.Log.Info("[chaind] Shutdown complete. Exiting.")
}
