// Package controlcli handles daemon communication and request encoding from chainctl.
package controlcli

import (
	"fmt"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/mfulz/actionchain/internal/configcli"
	"github.com/mfulz/actionchain/protocol"
)

const dialTimeout = 2 * time.Second

// SendCommandWithAuth connects to a selected daemon and sends a request with authentication.
func SendCommandWithAuth(cfg *configcli.Config, daemonName, userName, command string, data any) (*protocol.Response, error) {
	daemon, ok := cfg.Daemons[daemonName]
	if !ok {
		return nil, fmt.Errorf("daemon '%s' not found", daemonName)
	}

	user, ok := cfg.Users[userName]
	if !ok {
		return nil, fmt.Errorf("user '%s' not found", userName)
	}

	var network, addr string
	switch {
	case daemon.Socket != "":
		network, addr = "unix", daemon.Socket
	case daemon.TCP != "":
		network, addr = "tcp", daemon.TCP
	default:
		return nil, fmt.Errorf("invalid daemon config: no socket or tcp defined")
	}

	return roundTrip(network, addr, &protocol.Request{
		Type: command,
		Data: data,
		Auth: &protocol.Auth{User: userName, Token: user.Token},
	})
}

// SendDirectCommand sends a request to addr without consulting the client
// config. Addresses containing a slash are unix sockets, anything else is
// host:port.
func SendDirectCommand(addr, token, userName, command string, data any) (*protocol.Response, error) {
	network := "tcp"
	if strings.Contains(addr, "/") {
		network = "unix"
	}
	req := &protocol.Request{Type: command, Data: data}
	if userName != "" || token != "" {
		req.Auth = &protocol.Auth{User: userName, Token: token}
	}
	return roundTrip(network, addr, req)
}

func roundTrip(network, addr string, req *protocol.Request) (*protocol.Response, error) {
	conn, err := net.DialTimeout(network, addr, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon at %s: %w", addr, err)
	}
	defer conn.Close()

	if err := protocol.WriteRequest(conn, req); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	resp, err := protocol.ReadResponse(conn)
	if err != nil {
		return nil, fmt.Errorf("invalid response: %w", err)
	}
	return resp, nil
}

// ListAvailableDaemons returns the configured daemon names, sorted.
func ListAvailableDaemons(cfg *configcli.Config) []string {
	list := make([]string, 0, len(cfg.Daemons))
	for name := range cfg.Daemons {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

// GuessDefaultDaemon returns the first daemon name or empty string if none configured.
func GuessDefaultDaemon(cfg *configcli.Config) string {
	if list := ListAvailableDaemons(cfg); len(list) > 0 {
		return list[0]
	}
	return ""
}
