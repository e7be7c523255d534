// Package behavior provides the built-in action behaviors. Importing it
// registers them with the interfaces registry.
package behavior

import (
	"errors"
	"fmt"

	"github.com/mfulz/actionchain/interfaces"
	"github.com/mfulz/actionchain/internal/chainconfig"
	"github.com/mfulz/actionchain/responder"
	"go.uber.org/zap"
)

// Names of the built-in behaviors.
const (
	Noop = "noop"
	Log  = "log"
	Fail = "fail"
)

func init() {
	interfaces.RegisterBehavior(Noop, interfaces.BehaviorFunc(noop))
	interfaces.RegisterBehavior(Log, interfaces.BehaviorFunc(logArgs))
	interfaces.RegisterBehavior(Fail, interfaces.BehaviorFunc(fail))
}

func noop(*responder.Responder, chainconfig.Action, *zap.Logger) (responder.HandlerFunc, error) {
	return func(args ...any) (any, error) {
		return nil, nil
	}, nil
}

// logArgs logs the action with its arguments, using Message as the log line
// when set.
func logArgs(owner *responder.Responder, spec chainconfig.Action, log *zap.Logger) (responder.HandlerFunc, error) {
	msg := spec.Message
	if msg == "" {
		msg = "action handled"
	}
	log = log.With(zap.String("responder", owner.Name()), zap.String("action", spec.Name))
	return func(args ...any) (any, error) {
		log.Info(msg, zap.Any("args", args))
		return nil, nil
	}, nil
}

// fail returns an error carrying Message.
func fail(owner *responder.Responder, spec chainconfig.Action, _ *zap.Logger) (responder.HandlerFunc, error) {
	if spec.Bubble {
		return nil, fmt.Errorf("action '%s': a failing action cannot bubble", spec.Name)
	}
	msg := spec.Message
	if msg == "" {
		msg = fmt.Sprintf("%s failed to handle %s", owner, spec.Name)
	}
	err := errors.New(msg)
	return func(args ...any) (any, error) {
		return nil, err
	}, nil
}
