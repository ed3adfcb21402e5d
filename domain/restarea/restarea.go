// Package restarea holds the published rest-area record and the pure
// derivation rules that build it from upstream listings.
package restarea

// DefaultType is the rest-area kind assigned to every published record.
// Upstream does not distinguish truck stops or minor rest areas.
const DefaultType = "일반휴게소"

// MaxFoods caps the menu items published per rest area.
const MaxFoods = 30

// Food is one menu item sold at a rest area.
type Food struct {
	Name        string `json:"name"`
	Price       int    `json:"price"`
	Desc        string `json:"desc"`
	IsBest      bool   `json:"isBest"`
	IsRecommend bool   `json:"isRecommend"`
}

// Brand is a franchise store operating inside a rest area.
type Brand struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Amenity is a convenience facility with its operating hours.
type Amenity struct {
	Name      string `json:"name"`
	Desc      string `json:"desc"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// RestArea is the canonical published record for one rest area.
type RestArea struct {
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Highway        string    `json:"highway"`
	HighwaySlug    string    `json:"highwaySlug"`
	Direction      string    `json:"direction"`
	Address        string    `json:"address"`
	Lat            float64   `json:"lat"`
	Lng            float64   `json:"lng"`
	Tel            string    `json:"tel"`
	Type           string    `json:"type"`
	OpenTime       string    `json:"openTime"`
	CloseTime      string    `json:"closeTime"`
	BestFood       string    `json:"bestFood"`
	ParkingCount   int       `json:"parkingCount"`
	HasGasStation  bool      `json:"hasGasStation"`
	HasLPG         bool      `json:"hasLpg"`
	HasEVCharger   bool      `json:"hasEvCharger"`
	HasNursingRoom bool      `json:"hasNursingRoom"`
	HasPharmacy    bool      `json:"hasPharmacy"`
	HasShower      bool      `json:"hasShower"`
	HasRestroom    bool      `json:"hasRestroom"`
	HasStore       bool      `json:"hasStore"`
	HasRestaurant  bool      `json:"hasRestaurant"`
	Brands         []Brand   `json:"brands"`
	Foods          []Food    `json:"foods"`
	Facilities     []Amenity `json:"facilities"`
}

// Popular is the compact record used for "popular" listings.
type Popular struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Highway   string `json:"highway"`
	Direction string `json:"direction"`
	BestFood  string `json:"bestFood"`
}

// Searchable is the compact record shipped to client-side search.
type Searchable struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Highway     string `json:"highway"`
	HighwaySlug string `json:"highwaySlug"`
	Direction   string `json:"direction"`
	BestFood    string `json:"bestFood"`
	Address     string `json:"address"`
}

// ToPopular returns the popular-listing view of r.
func (r RestArea) ToPopular() Popular {
	return Popular{
		Name:      r.Name,
		Slug:      r.Slug,
		Highway:   r.Highway,
		Direction: r.Direction,
		BestFood:  r.BestFood,
	}
}

// ToSearchable returns the search view of r.
func (r RestArea) ToSearchable() Searchable {
	return Searchable{
		Name:        r.Name,
		Slug:        r.Slug,
		Highway:     r.Highway,
		HighwaySlug: r.HighwaySlug,
		Direction:   r.Direction,
		BestFood:    r.BestFood,
		Address:     r.Address,
	}
}
