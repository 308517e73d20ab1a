package entity

type NavItem struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

const (
	PathDashboard = "/dashboard"
	PathProducts  = "/dashboard/products"
	PathOrders    = "/dashboard/orders"
	PathMessages  = "/dashboard/messages"
	PathProfile   = "/dashboard/profile"
	PathLogin     = "/login"
)

// Navigation builds the sidebar for role, marking the entry matching path.
func Navigation(role Role, path string) []NavItem {
	items := []NavItem{{Label: "Tableau de bord", Href: PathDashboard}}
	if role.CanManageListings() {
		items = append(items, NavItem{Label: "Produits", Href: PathProducts})
	}
	items = append(items,
		NavItem{Label: "Commandes", Href: PathOrders},
		NavItem{Label: "Messages", Href: PathMessages},
		NavItem{Label: "Profil", Href: PathProfile},
	)
	for i := range items {
		items[i].Active = items[i].Href == path
	}
	return items
}
