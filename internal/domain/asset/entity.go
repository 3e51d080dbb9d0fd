package asset

import (
	"time"

	"github.com/cmlabs-hris/hrms-portal/internal/pkg/payload"
	"github.com/shopspring/decimal"
)

const (
	StatusAvailable   = "available"
	StatusAssigned    = "assigned"
	StatusMaintenance = "maintenance"
	StatusRetired     = "retired"
)

var statuses = map[string]string{
	"available":         StatusAvailable,
	"in_stock":          StatusAvailable,
	"assigned":          StatusAssigned,
	"in_use":            StatusAssigned,
	"allocated":         StatusAssigned,
	"maintenance":       StatusMaintenance,
	"under_maintenance": StatusMaintenance,
	"repair":            StatusMaintenance,
	"retired":           StatusRetired,
	"disposed":          StatusRetired,
}

var Filters = []string{"search", "category", "status", "assigned_employee", "page", "limit"}

type Asset struct {
	ID               string          `json:"id"`
	AssetTag         string          `json:"assetTag"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	SerialNumber     string          `json:"serialNumber"`
	Status           string          `json:"status"`
	AssignedEmployee string          `json:"assignedEmployee"`
	PurchaseDate     string          `json:"purchaseDate"`
	PurchaseCost     decimal.Decimal `json:"purchaseCost"`
	CreatedAt        *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt        *time.Time      `json:"updatedAt,omitempty"`
}

// Map reads an upstream asset. assignedEmployee may be an id or an embedded employee.
func Map(data []byte) (Asset, error) {
	o, err := payload.Decode("asset", data)
	if err != nil {
		return Asset{}, err
	}
	o.Ignore("__v", "company_id", "image", "image_url", "notes")

	a := Asset{
		ID:               o.ID("id", "_id", "asset_id"),
		AssetTag:         o.String("assetTag", "asset_tag", "tag", "asset_code"),
		Name:             o.RequiredString("name", "asset_name"),
		Category:         o.Ref([]string{"name", "category_name"}, "category", "asset_category", "asset_type"),
		SerialNumber:     o.String("serialNumber", "serial_number", "serial_no"),
		Status:           o.EnumWith(statuses, StatusAvailable, "status", "asset_status"),
		AssignedEmployee: o.Ref([]string{"id", "_id", "employee_id"}, "assignedEmployee", "assigned_employee", "assigned_to", "employee_id", "employee"),
		PurchaseDate:     o.Date("purchaseDate", "purchase_date"),
		PurchaseCost:     o.Decimal("purchaseCost", "purchase_cost", "cost", "price"),
		CreatedAt:        o.Time("createdAt", "created_at"),
		UpdatedAt:        o.Time("updatedAt", "updated_at"),
	}
	return a, o.Err()
}
