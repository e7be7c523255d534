// Package controlcli provides shared client-side IPC wrappers for interacting with chaind.
// This module unifies command execution and abstracts the SendCommandWithAuth layer.
package controlcli

import (
	"fmt"

	"github.com/mfulz/actionchain/internal/configcli"
	"github.com/mfulz/actionchain/internal/logging"
	"github.com/mfulz/actionchain/protocol"
)

// Target selects the daemon and identity a command is sent with.
// Addr and Token bypass the client config when Addr is set.
type Target struct {
	Daemon string
	User   string
	Addr   string
	Token  string
}

// execWithAuth dispatches a command to a daemon using configured or overridden settings.
func execWithAuth(cfg *configcli.Config, t Target, cmd string, payload any) (*protocol.Response, error) {
	var resp *protocol.Response
	var err error

	if t.Addr != "" {
		resp, err = SendDirectCommand(t.Addr, t.Token, t.User, cmd, payload)
	} else {
		if cfg == nil {
			return nil, fmt.Errorf("no client config and no --addr given")
		}
		daemon := t.Daemon
		if daemon == "" {
			daemon = GuessDefaultDaemon(cfg)
		}
		resp, err = SendCommandWithAuth(cfg, daemon, t.User, cmd, payload)
	}

	if err != nil {
		return nil, err
	}
	if resp.Status != protocol.StatusOK {
		logging.Log.Debugf("[chainctl] %s failed (dispatch %s): %s", cmd, resp.ID, resp.Error)
		return resp, fmt.Errorf("%s", resp.Error)
	}
	return resp, nil
}

// Send delivers action into the daemon's chain at responderName.
func Send(cfg *configcli.Config, t Target, responderName, action string, args []any) error {
	_, err := execWithAuth(cfg, t, protocol.CmdActionSend, protocol.SendRequest{
		Responder: responderName,
		Action:    action,
		Args:      args,
	})
	return err
}

// SendAction runs the action bound to key on responderName.
func SendAction(cfg *configcli.Config, t Target, responderName, key string, args []any) error {
	_, err := execWithAuth(cfg, t, protocol.CmdActionSendAction, protocol.SendActionRequest{
		Responder: responderName,
		Key:       key,
		Args:      args,
	})
	return err
}

// List returns the responders hosted by the daemon.
func List(cfg *configcli.Config, t Target) (*protocol.ListResponse, error) {
	resp, err := execWithAuth(cfg, t, protocol.CmdChainList, nil)
	if err != nil {
		return nil, err
	}
	var list protocol.ListResponse
	if err := protocol.DecodePayload(resp.Data, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Journal returns the last limit journal entries of the daemon.
func Journal(cfg *configcli.Config, t Target, limit int) (*protocol.JournalResponse, error) {
	resp, err := execWithAuth(cfg, t, protocol.CmdChainJournal, protocol.JournalRequest{Limit: limit})
	if err != nil {
		return nil, err
	}
	var journal protocol.JournalResponse
	if err := protocol.DecodePayload(resp.Data, &journal); err != nil {
		return nil, err
	}
	return &journal, nil
}

// Ping checks that the daemon answers.
func Ping(cfg *configcli.Config, t Target) error {
	_, err := execWithAuth(cfg, t, protocol.CmdPing, nil)
	return err
}
