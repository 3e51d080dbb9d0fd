package upstream

import (
	"context"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/access"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/apiclient"
)

type roleRepository struct {
	client *apiclient.Client
}

func NewRoleRepository(client *apiclient.Client) access.RoleRepository {
	return &roleRepository{client: client}
}

func (r *roleRepository) List(ctx context.Context, token string) (access.RoleTable, error) {
	body, err := r.client.Get(ctx, token, "/role", nil)
	if err != nil {
		return nil, err
	}
	table, err := access.MapRoleTable(unwrapList(body, "roles"))
	if err != nil {
		return nil, err
	}
	if table == nil {
		table = access.RoleTable{}
	}
	return table, nil
}
