// Package responder implements a responder chain for named actions.
//
// A Responder owns a table of local action handlers and an optional target,
// the next Sender in the chain. Send delivers an action to the local handler
// and forwards it to the target when no handler exists or when the handler
// asks for the action to bubble by returning exactly true.
//
// SendAction resolves an action reference stored on the responder itself
// (an attribute, falling back to a property) and either calls it directly or
// hands the action name to a Trigger.
//
// Example:
//
//	route := responder.New("route")
//	route.On("save", func(args ...any) (any, error) {
//		return nil, store(args...)
//	})
//
//	view := responder.New("view", responder.WithTarget(route))
//	view.SetProp("action", "save")
//	_ = view.SendAction("", doc)
//
// Dispatch is synchronous. Target cycles are not detected and recurse until
// the stack is exhausted; building an acyclic chain is up to the caller.
package responder
