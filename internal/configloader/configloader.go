// Package configloader provides a generic runtime registry for configuration
// instances in actionchain. It allows both the daemon and CLI to register and
// retrieve their specific configuration types in a type-safe, singleton manner.
//
// Typical usage:
//
//	type Config struct { ... }
//	configloader.RegisterConfig(&Config{...})
//	cfg := configloader.MustGetConfig[*Config]()
package configloader

import (
	"fmt"
	"reflect"
	"sync"
)

var registry sync.Map // key = reflect.Type of the config type, value = registered config instance

// RegisterConfig registers a config instance of type T for global access.
//
// It panics if a config of the same type is already registered.
func RegisterConfig[T any](cfg T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if _, loaded := registry.LoadOrStore(t, cfg); loaded {
		panic(fmt.Sprintf("config already registered for type %v", t))
	}
}

// ReplaceConfig registers cfg, overwriting any instance of the same type.
func ReplaceConfig[T any](cfg T) {
	registry.Store(reflect.TypeOf((*T)(nil)).Elem(), cfg)
}

// MustGetConfig retrieves the registered config instance of type T.
//
// It panics if no config of type T has been registered.
func MustGetConfig[T any]() T {
	cfg, ok := TryGetConfig[T]()
	if !ok {
		panic(fmt.Sprintf("no config registered for type %v", reflect.TypeOf((*T)(nil)).Elem()))
	}
	return cfg
}

// TryGetConfig retrieves the registered config instance of type T.
//
// It returns (zero-value, false) if the config was not found.
func TryGetConfig[T any]() (T, bool) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if val, ok := registry.Load(t); ok {
		return val.(T), true
	}
	var zero T
	return zero, false
}

// unregister drops the instance of type T. Only used by tests.
func unregister[T any]() {
	registry.Delete(reflect.TypeOf((*T)(nil)).Elem())
}
