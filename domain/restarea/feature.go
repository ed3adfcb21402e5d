package restarea

import (
	"fmt"
	"slices"
)

// Amenity labels reported by the convenience listing.
const (
	LabelNursingRoom = "수유실"
	LabelPharmacy    = "약국"
	LabelShower      = "샤워실"
	LabelStore       = "편의점"
	LabelLocalGoods  = "내고장특산물"
	LabelMainLounge  = "쉼터"
)

// Operating hours used when no amenity reports them: open all day.
const (
	defaultOpenTime  = "00:00"
	defaultCloseTime = "24:00"
)

// Feature identifies a yes/no amenity a rest area may offer.
type Feature string

// Feature values.
const (
	FeatureGasStation  Feature = "gas-station"
	FeatureLPG         Feature = "lpg"
	FeatureEVCharger   Feature = "ev-charger"
	FeatureNursingRoom Feature = "nursing-room"
	FeaturePharmacy    Feature = "pharmacy"
	FeatureShower      Feature = "shower"
	FeatureRestroom    Feature = "restroom"
	FeatureStore       Feature = "store"
	FeatureRestaurant  Feature = "restaurant"
)

var features = []Feature{
	FeatureGasStation, FeatureLPG, FeatureEVCharger, FeatureNursingRoom,
	FeaturePharmacy, FeatureShower, FeatureRestroom, FeatureStore, FeatureRestaurant,
}

// Features returns every known Feature.
func Features() []Feature {
	return slices.Clone(features)
}

// ParseFeature validates a feature name.
func ParseFeature(s string) (Feature, error) {
	f := Feature(s)
	if !slices.Contains(features, f) {
		return "", fmt.Errorf("unknown feature %q", s)
	}
	return f, nil
}

// Has reports whether r offers the feature.
func (r RestArea) Has(f Feature) bool {
	switch f {
	case FeatureGasStation:
		return r.HasGasStation
	case FeatureLPG:
		return r.HasLPG
	case FeatureEVCharger:
		return r.HasEVCharger
	case FeatureNursingRoom:
		return r.HasNursingRoom
	case FeaturePharmacy:
		return r.HasPharmacy
	case FeatureShower:
		return r.HasShower
	case FeatureRestroom:
		return r.HasRestroom
	case FeatureStore:
		return r.HasStore
	case FeatureRestaurant:
		return r.HasRestaurant
	default:
		return false
	}
}

// Flags is the set of amenity booleans derived for one rest area.
type Flags struct {
	GasStation  bool
	LPG         bool
	EVCharger   bool
	NursingRoom bool
	Pharmacy    bool
	Shower      bool
	Restroom    bool
	Store       bool
	Restaurant  bool
}

// DeriveFlags computes amenity flags by exact label membership.
//
// Restrooms are not reported upstream and are assumed everywhere. Fuel,
// LPG and EV charging are not derivable from the current listings and
// stay false.
func DeriveFlags(amenities []Amenity, foods []Food) Flags {
	names := make(map[string]struct{}, len(amenities))
	for _, a := range amenities {
		names[a.Name] = struct{}{}
	}
	has := func(label string) bool {
		_, ok := names[label]
		return ok
	}
	return Flags{
		NursingRoom: has(LabelNursingRoom),
		Pharmacy:    has(LabelPharmacy),
		Shower:      has(LabelShower),
		Store:       has(LabelStore) || has(LabelLocalGoods),
		Restroom:    true,
		Restaurant:  len(foods) > 0,
	}
}

// Apply copies the flags onto r.
func (f Flags) Apply(r *RestArea) {
	r.HasGasStation = f.GasStation
	r.HasLPG = f.LPG
	r.HasEVCharger = f.EVCharger
	r.HasNursingRoom = f.NursingRoom
	r.HasPharmacy = f.Pharmacy
	r.HasShower = f.Shower
	r.HasRestroom = f.Restroom
	r.HasStore = f.Store
	r.HasRestaurant = f.Restaurant
}
