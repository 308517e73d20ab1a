package entity

// Regions of Côte d'Ivoire offered by the profile form.
var Regions = []string{
	"Lagunes",
	"Haut-Sassandra",
	"Savanes",
	"Vallée du Bandama",
	"Moyen-Comoé",
	"18 Montagnes",
	"Lacs",
	"Zanzan",
	"Bas-Sassandra",
	"Denguélé",
	"N'zi-Comoé",
	"Marahoué",
	"Sud-Comoé",
	"Worodougou",
	"Sud-Bandama",
	"Agnéby-Tiassa",
	"Bafing",
	"Fromager",
	"Moyen-Cavally",
}

// Cultures is the catalog of crops a producer can declare.
var Cultures = []string{
	"Riz",
	"Maïs",
	"Manioc",
	"Igname",
	"Banane plantain",
	"Cacao",
	"Café",
	"Coton",
	"Anacarde",
	"Mangue",
	"Ananas",
	"Légumes",
}

func IsRegion(s string) bool {
	return contains(Regions, s)
}

func IsCulture(s string) bool {
	return contains(Cultures, s)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Profile is the extended profile draft persisted with PUT /api/user/profile.
type Profile struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Region   string   `json:"region"`
	Address  string   `json:"address"`
	Cultures []string `json:"cultures"`
	Bio      string   `json:"bio"`
	PhotoURL string   `json:"photoUrl"`
}

// Clone returns a copy whose culture list does not alias p's.
func (p Profile) Clone() Profile {
	out := p
	out.Cultures = append([]string(nil), p.Cultures...)
	if out.Cultures == nil {
		out.Cultures = []string{}
	}
	return out
}

// ProfileFields carries a partial edit of the draft; nil fields are left alone.
type ProfileFields struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Region  *string `json:"region"`
	Address *string `json:"address"`
	Bio     *string `json:"bio"`
}

// Apply copies the set fields of f onto p.
func (f ProfileFields) Apply(p *Profile) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.Name, f.Name)
	set(&p.Email, f.Email)
	set(&p.Phone, f.Phone)
	set(&p.Region, f.Region)
	set(&p.Address, f.Address)
	set(&p.Bio, f.Bio)
}
