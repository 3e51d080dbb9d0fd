package asset

import (
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type AssetRequest struct {
	AssetTag         string          `json:"asset_tag" validate:"required,max=50"`
	Name             string          `json:"name" validate:"required,max=150"`
	Category         string          `json:"category" validate:"required"`
	SerialNumber     string          `json:"serial_number,omitempty" validate:"max=100"`
	Status           string          `json:"status" validate:"required,oneof=available assigned maintenance retired"`
	AssignedEmployee string          `json:"assigned_employee,omitempty"`
	PurchaseDate     string          `json:"purchase_date,omitempty" validate:"omitempty,date"`
	PurchaseCost     decimal.Decimal `json:"purchase_cost"`
}

func (r AssetRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		if !validator.As(err, &errs) {
			return err
		}
	}

	if r.PurchaseCost.IsNegative() {
		errs.Add("purchase_cost", "purchase_cost must not be negative")
	}
	switch {
	case r.Status == StatusAssigned && validator.IsEmpty(r.AssignedEmployee):
		errs.Add("assigned_employee", "assigned_employee is required when status is assigned")
	case r.Status != StatusAssigned && !validator.IsEmpty(r.AssignedEmployee):
		errs.Add("assigned_employee", "assigned_employee is only allowed when status is assigned")
	}
	return errs.Err()
}
