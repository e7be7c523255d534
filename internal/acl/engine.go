// Package acl provides a simple role- and group-based access control layer
// for remote senders. It supports global permission checks plus
// responder-specific allow/deny rules.
//
// Example usage:
//
//	engine, err := acl.New(cfg, acl.AllPermissions)
//	if !engine.Can("userx", acl.PermActionSend, responderRules) {
//		return errors.New("permission denied")
//	}
package acl

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mfulz/actionchain/protocol"
	"go.uber.org/zap"
)

// Permission defines a named right or capability.
type Permission string

// Permissions checked by the control server.
const (
	PermActionSend   Permission = "action_send"
	PermChainList    Permission = "chain_list"
	PermChainJournal Permission = "chain_journal"
)

// AllPermissions is the set of permission names accepted in role definitions.
var AllPermissions = []Permission{PermActionSend, PermChainList, PermChainJournal}

// RuleSet defines a set of rules attached to a responder.
type RuleSet struct {
	Rules []Rule `mapstructure:"rules" yaml:"rules,omitempty"`
}

// Rule allows or denies permissions to subjects (users or groups).
// A rule without permissions matches every permission.
type Rule struct {
	Description string       `mapstructure:"description" yaml:"description,omitempty"`
	Subjects    []string     `mapstructure:"subjects" yaml:"subjects"`
	Permissions []Permission `mapstructure:"permissions,omitempty" yaml:"permissions,omitempty"`
	Deny        bool         `mapstructure:"deny" yaml:"deny,omitempty"`
}

// User defines a named user (e.g. login name).
type User struct {
	Name   string   `mapstructure:"name"`
	Roles  []string `mapstructure:"roles"`
	Token  string   `mapstructure:"token"`
	groups []string
}

// Group defines a named group of users.
type Group struct {
	Name    string   `mapstructure:"name"`
	Members []string `mapstructure:"members"`
	Roles   []string `mapstructure:"roles"`
}

// Role defines a named role, grouping one or more permissions.
type Role struct {
	Name        string       `mapstructure:"name"`
	Permissions []Permission `mapstructure:"permissions"`
}

// Config defines the global ACL structure loaded from config.
type Config struct {
	Enabled bool             `mapstructure:"enabled"`
	Users   map[string]User  `mapstructure:"users"`
	Groups  map[string]Group `mapstructure:"groups"`
	Roles   map[string]Role  `mapstructure:"roles"`
}

// Engine evaluates permissions. A nil *Engine rejects everything.
type Engine struct {
	enabled bool
	users   map[string]User
	groups  map[string]Group
	roles   map[string]Role
	log     *zap.Logger
}

// New validates cfg against the accepted permission names and builds an Engine.
func New(cfg Config, perms []Permission, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}

	users := make(map[string]User, len(cfg.Users))
	for name, user := range cfg.Users {
		name = fold(name)
		if user.Name == "" {
			user.Name = name
		}
		user.Roles = foldAll(user.Roles)
		user.groups = nil
		users[name] = user
	}

	roles := make(map[string]Role, len(cfg.Roles))
	for roleName, role := range cfg.Roles {
		roleName = fold(roleName)
		for _, perm := range role.Permissions {
			if !slices.Contains(perms, perm) {
				return nil, fmt.Errorf("invalid permission '%s' in role '%s'", perm, roleName)
			}
		}
		if role.Name == "" {
			role.Name = roleName
		}
		roles[roleName] = role
	}

	groups := make(map[string]Group, len(cfg.Groups))
	for name, group := range cfg.Groups {
		name = fold(name)
		if group.Name == "" {
			group.Name = name
		}
		group.Roles = foldAll(group.Roles)
		for _, member := range group.Members {
			u, ok := users[fold(member)]
			if !ok {
				return nil, fmt.Errorf("invalid user '%s' in group '%s'", member, group.Name)
			}
			u.groups = append(u.groups, name)
			users[fold(member)] = u
		}
		groups[name] = group
	}

	return &Engine{
		enabled: cfg.Enabled,
		users:   users,
		groups:  groups,
		roles:   roles,
		log:     log,
	}, nil
}

// Enabled reports whether checks are enforced.
func (e *Engine) Enabled() bool {
	return e != nil && e.enabled
}

// Can checks whether user holds perm and is not denied by rules.
func (e *Engine) Can(user string, perm Permission, rules RuleSet) bool {
	if e == nil {
		return false
	}
	if !e.enabled {
		return true
	}

	if !e.userHasPermission(user, perm) {
		e.log.Debug("permission not granted by any role", zap.String("user", user), zap.String("perm", string(perm)))
		return false
	}

	if len(rules.Rules) == 0 {
		// all roles, groups are allowed just permission needs to be checked
		return true
	}

	matches := false
	for _, rule := range rules.Rules {
		if !rule.hasPerm(perm) {
			continue
		}
		if !e.ruleMatches(rule, user) {
			continue
		}
		if rule.Deny {
			return false
		}
		matches = true
	}
	return matches
}

// Authenticate checks the user's token. A disabled engine accepts anyone.
func (e *Engine) Authenticate(auth *protocol.Auth) bool {
	if e == nil {
		return false
	}
	if !e.enabled {
		return true
	}
	if auth == nil {
		return false
	}
	u, ok := e.users[fold(auth.User)]
	if !ok {
		return false
	}
	return u.Token != "" && u.Token == auth.Token
}

// hasPerm checks if the rule has the permission. If perms are empty it matches all.
func (r Rule) hasPerm(perm Permission) bool {
	if len(r.Permissions) == 0 {
		return true
	}
	return slices.Contains(r.Permissions, perm)
}

func (e *Engine) ruleMatches(r Rule, user string) bool {
	for _, s := range r.Subjects {
		if e.userMatches(user, s) {
			return true
		}
	}
	return false
}

// userRoles collects the user's own roles plus those of their groups.
func (e *Engine) userRoles(user User) []string {
	ret := append([]string(nil), user.Roles...)
	for _, groupName := range user.groups {
		if group, ok := e.groups[groupName]; ok {
			ret = append(ret, group.Roles...)
		}
	}
	return ret
}

func (e *Engine) userHasPermission(user string, perm Permission) bool {
	u, ok := e.users[fold(user)]
	if !ok {
		return false
	}
	for _, roleName := range e.userRoles(u) {
		if role, ok := e.roles[roleName]; ok && slices.Contains(role.Permissions, perm) {
			return true
		}
	}
	return false
}

// userMatches returns true if the subject matches the user or one of their groups.
func (e *Engine) userMatches(user string, subject string) bool {
	user, subject = fold(user), fold(subject)
	if subject == user {
		return true
	}
	u, ok := e.users[user]
	if !ok {
		return false
	}
	return slices.Contains(u.groups, subject)
}

// fold normalises user, group and role names. Config map keys arrive
// lower-cased from viper, so every name is compared in lower case.
func fold(name string) string {
	return strings.ToLower(name)
}

func foldAll(names []string) []string {
	if names == nil {
		return nil
	}
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = fold(n)
	}
	return out
}
