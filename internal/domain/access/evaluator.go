package access

import "strings"

// Evaluator answers module access questions for one user. It fails closed:
// with no role table loaded, or no matching role, every check is false.
type Evaluator struct {
	roles []string
	table RoleTable
}

func NewEvaluator(userRoles []string, table RoleTable) *Evaluator {
	return &Evaluator{roles: userRoles, table: table}
}

// Loaded reports whether a role table is available.
func (e *Evaluator) Loaded() bool {
	return e != nil && e.table != nil
}

// lookup finds module in def by exact key, then lower-cased key, then aliases.
func lookup(def RoleDefinition, module string) (ModulePermission, bool) {
	if p, ok := def.Modules[module]; ok {
		return p, true
	}
	lower := strings.ToLower(module)
	if p, ok := def.Modules[lower]; ok {
		return p, true
	}
	for _, alias := range moduleAliases[lower] {
		if p, ok := def.Modules[alias]; ok {
			return p, true
		}
	}
	return ModulePermission{}, false
}

// matching returns the role definitions of the user's roles.
func (e *Evaluator) matching() []RoleDefinition {
	if !e.Loaded() {
		return nil
	}
	var defs []RoleDefinition
	for _, name := range e.roles {
		if def, ok := e.table.Find(name); ok {
			defs = append(defs, def)
		}
	}
	return defs
}

func (e *Evaluator) HasModuleAccess(module string) bool {
	return e.CanPerformModuleAction(module, ActionView)
}

// CanPerformModuleAction reports whether any of the user's roles grants action on module.
func (e *Evaluator) CanPerformModuleAction(module string, action Action) bool {
	for _, def := range e.matching() {
		if p, ok := lookup(def, module); ok && p.Allows(action) {
			return true
		}
	}
	return false
}

// Snapshot merges the flags of every module granted by any of the user's
// roles. Keys are as they appear in the role table.
func (e *Evaluator) Snapshot() map[string]ModulePermission {
	out := make(map[string]ModulePermission)
	for _, def := range e.matching() {
		for module, p := range def.Modules {
			out[module] = out[module].merge(p)
		}
	}
	return out
}
