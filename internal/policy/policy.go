package policy

import (
	"strings"
)

type Action string

const (
	ViewAny Action = "viewAny"
	View    Action = "view"
	Create  Action = "create"
	Update  Action = "update"
	Delete  Action = "delete"
)

const wildcard = "*"

type Actor struct {
	ID   string
	Role string
}

// Policy answers whether actor may perform action on subject. Subject is
// either a loaded record or nil for class level checks (viewAny, create).
type Policy interface {
	Can(actor Actor, action Action, subject any) bool
}

type RolePolicy struct {
	grants map[string]map[Action]bool
}

func DefaultGrants() map[string][]string {
	return map[string][]string{
		"admin":   {wildcard},
		"manager": {string(ViewAny), string(View), string(Create), string(Update)},
		"viewer":  {string(ViewAny), string(View)},
	}
}

func NewRolePolicy(grants map[string][]string) *RolePolicy {
	p := &RolePolicy{grants: make(map[string]map[Action]bool, len(grants))}
	for role, actions := range grants {
		set := make(map[Action]bool, len(actions))
		for _, action := range actions {
			set[Action(strings.TrimSpace(action))] = true
		}
		p.grants[strings.ToLower(role)] = set
	}
	return p
}

func (p *RolePolicy) Can(actor Actor, action Action, _ any) bool {
	actions, ok := p.grants[strings.ToLower(actor.Role)]
	if !ok {
		return false
	}
	return actions[wildcard] || actions[action]
}

// ParseGrants reads "role:action|action" pairs as produced by the
// SHOP_GRANTS setting.
func ParseGrants(raw map[string]string) map[string][]string {
	grants := make(map[string][]string, len(raw))
	for role, actions := range raw {
		for _, action := range strings.Split(actions, "|") {
			if action = strings.TrimSpace(action); action != "" {
				grants[role] = append(grants[role], action)
			}
		}
	}
	return grants
}
