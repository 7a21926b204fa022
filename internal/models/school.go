package models

// SchoolInfo is the driving school managed from the dashboard.
type SchoolInfo struct {
	ID           ID      `json:"id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	State        string  `json:"state"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Rating       float64 `json:"rating"`
	TotalReviews int     `json:"total_reviews"`
}

// States are the 48 Algerian wilayas accepted as a school's state.
var States = []string{
	"Adrar", "Chlef", "Laghouat", "Oum El Bouaghi", "Batna", "Béjaïa", "Biskra",
	"Béchar", "Blida", "Bouira", "Tamanrasset", "Tébessa", "Tlemcen", "Tiaret",
	"Tizi Ouzou", "Alger", "Djelfa", "Jijel", "Sétif", "Saïda", "Skikda",
	"Sidi Bel Abbès", "Annaba", "Guelma", "Constantine", "Médéa", "Mostaganem",
	"M'Sila", "Mascara", "Ouargla", "Oran", "El Bayadh", "Illizi",
	"Bordj Bou Arréridj", "Boumerdès", "El Tarf", "Tindouf", "Tissemsilt",
	"El Oued", "Khenchela", "Souk Ahras", "Tipaza", "Mila", "Aïn Defla",
	"Naâma", "Aïn Témouchent", "Ghardaïa", "Relizane",
}

var stateSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(States))
	for _, s := range States {
		set[s] = struct{}{}
	}
	return set
}()

// IsKnownState reports whether name is one of States.
func IsKnownState(name string) bool {
	_, ok := stateSet[name]
	return ok
}
