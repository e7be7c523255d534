// Package protocol defines the message structures and types used for communication
// between chainctl and the chaind daemon. It can be used externally to build
// additional tooling or integrations.
package protocol

// Command types for Request.Type
const (
	CmdActionSend       = "action.send"
	CmdActionSendAction = "action.sendaction"
	CmdChainList        = "chain.list"
	CmdChainJournal     = "chain.journal"
	CmdPing             = "system.ping"
)

// Response statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Request represents a message sent from a client to the daemon.
type Request struct {
	Type string `json:"type"`           // e.g. "action.send", "chain.list"
	Auth *Auth  `json:"auth,omitempty"` // Optional auth block
	Data any    `json:"data,omitempty"` // Optional payload
}

// Response represents a message sent from the daemon to a client.
type Response struct {
	ID     string `json:"id,omitempty"`    // Dispatch id assigned by the daemon
	Status string `json:"status"`          // "ok" or "error"
	Data   any    `json:"data,omitempty"`  // Optional result
	Error  string `json:"error,omitempty"` // Optional error message
}

// Auth holds authentication information for a client.
type Auth struct {
	User  string `json:"user"`
	Token string `json:"token"`
}

// ErrorResponse builds an error response with the given message.
func ErrorResponse(msg string) *Response {
	return &Response{Status: StatusError, Error: msg}
}

// --- Payload Types ---

// SendRequest delivers Action into the chain at Responder.
type SendRequest struct {
	Responder string `json:"responder"`
	Action    string `json:"action"`
	Args      []any  `json:"args,omitempty"`
}

// SendActionRequest resolves Key on Responder and runs it with Args.
// An empty Key means "action".
type SendActionRequest struct {
	Responder string `json:"responder"`
	Key       string `json:"key,omitempty"`
	Args      []any  `json:"args,omitempty"`
}

// ListResponse lists the responders hosted by the daemon.
type ListResponse struct {
	Responders []ResponderInfo `json:"responders"`
}

// ResponderInfo describes one responder.
type ResponderInfo struct {
	Name    string   `json:"name"`
	Target  string   `json:"target,omitempty"`
	Actions []string `json:"actions,omitempty"`
}

// JournalRequest asks for the last Limit journal entries (all if zero).
type JournalRequest struct {
	Limit int `json:"limit,omitempty"`
}

// JournalEntry records one handled action.
type JournalEntry struct {
	Responder string `json:"responder" yaml:"responder"`
	Action    string `json:"action" yaml:"action"`
	Args      []any  `json:"args,omitempty" yaml:"args,omitempty"`
	Bubbled   bool   `json:"bubbled" yaml:"bubbled"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

// JournalResponse carries journal entries, oldest first.
type JournalResponse struct {
	Entries []JournalEntry `json:"entries"`
}
