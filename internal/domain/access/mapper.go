package access

import (
	"encoding/json"
	"fmt"

	"github.com/cmlabs-hris/hrms-portal/internal/pkg/payload"
)

// MapRoleTable maps the /role response. Modules arrive either as an object
// keyed by module name or as an array of {module, view, create, edit, approve}.
func MapRoleTable(data []byte) (RoleTable, error) {
	roles, err := payload.MapList("role", data, MapRole)
	if err != nil {
		return nil, err
	}
	return RoleTable(roles), nil
}

func MapRole(data []byte) (RoleDefinition, error) {
	o, err := payload.Decode("role", data)
	if err != nil {
		return RoleDefinition{}, err
	}
	o.Ignore("id", "_id", "created_at", "updated_at", "createdAt", "updatedAt", "__v")

	def := RoleDefinition{
		Name:        o.RequiredString("name", "role_name", "role"),
		Description: o.String("description", "role_description"),
		Modules:     map[string]ModulePermission{},
	}

	if raw, ok := o.Raw("modules", "permissions", "module_permissions"); ok {
		modules, err := mapModules(raw)
		if err != nil {
			return RoleDefinition{}, fmt.Errorf("role %q: %w", def.Name, err)
		}
		def.Modules = modules
	}
	return def, o.Err()
}

func mapModules(raw json.RawMessage) (map[string]ModulePermission, error) {
	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keyed); err == nil {
		out := make(map[string]ModulePermission, len(keyed))
		for module, v := range keyed {
			o, err := payload.Decode("module_permission", v)
			if err != nil {
				return nil, err
			}
			p := mapFlags(o)
			if err := o.Err(); err != nil {
				return nil, fmt.Errorf("module %q: %w", module, err)
			}
			out[module] = p
		}
		return out, nil
	}

	items, err := payload.DecodeList("module_permission", raw)
	if err != nil {
		return nil, err
	}
	out := make(map[string]ModulePermission, len(items))
	for i, item := range items {
		o, err := payload.Decode("module_permission", item)
		if err != nil {
			return nil, err
		}
		o.Ignore("id", "_id")
		module := o.RequiredString("module", "name", "module_name")
		p := mapFlags(o)
		if err := o.Err(); err != nil {
			return nil, fmt.Errorf("module_permission[%d]: %w", i, err)
		}
		out[module] = out[module].merge(p)
	}
	return out, nil
}

func mapFlags(o *payload.Object) ModulePermission {
	return ModulePermission{
		View:    o.Bool("view", "can_view", "read"),
		Create:  o.Bool("create", "can_create", "add"),
		Edit:    o.Bool("edit", "can_edit", "update", "can_update"),
		Approve: o.Bool("approve", "can_approve"),
	}
}
