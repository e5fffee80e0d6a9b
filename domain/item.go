package domain

// The three categories the entry form accepts. The store itself does
// not enforce this list; filters work off whatever categories exist.
const (
	CategoryMedicalDrugs      = "Medical Drugs"
	CategoryMedicalEquipments = "Medical Equipments"
	CategoryPharmaceuticals   = "Pharmaceuticals"
)

// Categories lists the fixed item categories in dashboard order.
func Categories() []string {
	return []string{CategoryMedicalDrugs, CategoryMedicalEquipments, CategoryPharmaceuticals}
}

// Item is one unit of tracked stock. ExpiryDate is an ISO calendar
// date (YYYY-MM-DD); stored as TEXT so date comparison in SQL works
// lexicographically.
type Item struct {
	ID         int64  `json:"id" db:"id"`
	Category   string `json:"category" db:"category"`
	Name       string `json:"name" db:"name"`
	Quantity   int64  `json:"quantity" db:"quantity"`
	ExpiryDate string `json:"expiry_date" db:"expiry_date"`
	Used       bool   `json:"used" db:"used"`
	CreatedAt  string `json:"created_at,omitempty" db:"created_at"`
}

// Status derives the display status from the used flag.
func (it Item) Status() string {
	if it.Used {
		return "Used"
	}
	return "Active"
}

// Expired reports whether the item expired before the given ISO date.
func (it Item) Expired(today string) bool {
	return it.ExpiryDate < today
}
