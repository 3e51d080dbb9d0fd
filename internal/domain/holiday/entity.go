package holiday

import "github.com/cmlabs-hris/hrms-portal/internal/pkg/payload"

const (
	TypePublic     = "public"
	TypeOptional   = "optional"
	TypeRestricted = "restricted"
)

var types = map[string]string{
	"public":     TypePublic,
	"national":   TypePublic,
	"gazetted":   TypePublic,
	"optional":   TypeOptional,
	"floating":   TypeOptional,
	"restricted": TypeRestricted,
}

var Filters = []string{"year", "type"}

type Holiday struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

func Map(data []byte) (Holiday, error) {
	o, err := payload.Decode("holiday", data)
	if err != nil {
		return Holiday{}, err
	}
	o.Ignore("__v", "company_id", "created_at", "updated_at", "createdAt", "updatedAt", "day")

	h := Holiday{
		ID:          o.ID("id", "_id", "holiday_id"),
		Name:        o.RequiredString("name", "holiday_name", "title"),
		Date:        o.RequiredDate("date", "holiday_date"),
		Type:        o.EnumWith(types, TypePublic, "type", "holiday_type"),
		Description: o.String("description", "desc", "remarks"),
	}
	return h, o.Err()
}
