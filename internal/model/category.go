package model

// Category is one of the six fixed policy/economic domains tracked by the
// service. The set is closed: everything that switches on Category handles
// all six values.
type Category string

const (
	Defense       Category = "defense"
	Manufacturing Category = "manufacturing"
	Energy        Category = "energy"
	Workforce     Category = "workforce"
	TechPolicy    Category = "techPolicy"
	SupplyChain   Category = "supplyChain"
)

// AllCategories returns the six categories in canonical order.
func AllCategories() []Category {
	return []Category{Defense, Manufacturing, Energy, Workforce, TechPolicy, SupplyChain}
}

// ParseCategory maps a request path segment to a Category.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case Defense, Manufacturing, Energy, Workforce, TechPolicy, SupplyChain:
		return Category(s), true
	}
	return "", false
}

// DisplayName returns the human-readable name used in prompts and responses.
func (c Category) DisplayName() string {
	switch c {
	case Defense:
		return "Defense Technology"
	case Manufacturing:
		return "Manufacturing Reshoring"
	case Energy:
		return "Energy Infrastructure"
	case Workforce:
		return "Workforce Development"
	case TechPolicy:
		return "Technology Policy"
	case SupplyChain:
		return "Supply Chain Resilience"
	}
	return string(c)
}
