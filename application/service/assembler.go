package service

import (
	"strings"
	"time"

	"github.com/hwrest/restarea/domain/dataset"
	"github.com/hwrest/restarea/domain/highway"
	"github.com/hwrest/restarea/domain/restarea"
	"github.com/hwrest/restarea/infrastructure/exapi"
)

// Flag value used by the menu listing for yes.
const flagYes = "Y"

// defaultHighwayName labels rest areas with no route name.
const defaultHighwayName = "기타"

// RawDataset holds the four upstream listings for one run.
type RawDataset struct {
	Locations    []exapi.RawLocation
	BestFoods    []exapi.RawBestFood
	Brands       []exapi.RawBrand
	Conveniences []exapi.RawConvenience
}

// Assembler turns raw listings into the published dataset. It is pure
// apart from the clock used to stamp metadata.
type Assembler struct {
	now          func() time.Time
	popularLimit int
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithClock sets the clock used for metadata.lastUpdated.
func WithClock(now func() time.Time) AssemblerOption {
	return func(a *Assembler) { a.now = now }
}

// WithPopularLimit sets the size of the popular listing.
func WithPopularLimit(n int) AssemblerOption {
	return func(a *Assembler) {
		if n > 0 {
			a.popularLimit = n
		}
	}
}

// NewAssembler creates an Assembler.
func NewAssembler(opts ...AssemblerOption) *Assembler {
	a := &Assembler{
		now:          time.Now,
		popularLimit: dataset.DefaultPopularLimit,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble joins the secondary listings onto the locations and derives
// every published artifact. Locations are processed in input order.
func (a *Assembler) Assemble(raw RawDataset) dataset.Dataset {
	foods := restarea.GroupBy(raw.BestFoods, func(f exapi.RawBestFood) string { return f.StdRestCd.String() })
	brands := restarea.GroupBy(raw.Brands, func(b exapi.RawBrand) string { return b.StdRestCd.String() })
	convs := restarea.GroupBy(raw.Conveniences, func(c exapi.RawConvenience) string { return c.StdRestCd.String() })

	slugs := restarea.NewSlugRegistry()
	highways := highway.NewCollection()
	areas := make([]restarea.RestArea, 0, len(raw.Locations))

	for _, loc := range raw.Locations {
		unitName := loc.UnitName.String()
		if restarea.IsFuelStation(unitName) {
			continue
		}
		key := loc.StdRestCd.String()
		area := a.derive(loc, foods.Get(key), brands.Get(key), convs.Get(key), slugs)
		areas = append(areas, area)

		highways.Add(area.Highway, area.HighwaySlug, highway.Member{
			Name:      area.Name,
			Slug:      area.Slug,
			Direction: area.Direction,
			BestFood:  area.BestFood,
			Type:      area.Type,
		})
	}

	sorted := highways.Sorted()
	popular := dataset.PopularOf(areas, a.popularLimit)

	ds := dataset.Dataset{
		RestAreas: areas,
		Highways:  sorted,
		Metadata: dataset.Metadata{
			LastUpdated:     dataset.Timestamp(a.now().UTC()),
			RestAreaCount:   len(areas),
			HighwayCount:    len(sorted),
			TotalFoods:      len(raw.BestFoods),
			TotalBrands:     len(raw.Brands),
			TotalFacilities: len(raw.Conveniences),
			APISource:       dataset.Source,
		},
		Popular: make([]restarea.Popular, len(popular)),
		Search:  make([]restarea.Searchable, len(areas)),
	}
	for i, p := range popular {
		ds.Popular[i] = p.ToPopular()
	}
	for i, r := range areas {
		ds.Search[i] = r.ToSearchable()
	}
	return ds
}

func (a *Assembler) derive(
	loc exapi.RawLocation,
	rawFoods []exapi.RawBestFood,
	rawBrands []exapi.RawBrand,
	rawConvs []exapi.RawConvenience,
	slugs *restarea.SlugRegistry,
) restarea.RestArea {
	unitName := loc.UnitName.String()
	direction := restarea.ParseDirection(unitName)
	name := restarea.CleanName(unitName)
	highwayName := restarea.FirstNonEmpty(loc.RouteName.String(), defaultHighwayName)

	menu := make([]restarea.Food, len(rawFoods))
	for i, f := range rawFoods {
		menu[i] = restarea.Food{
			Name:        f.FoodNm.String(),
			Price:       restarea.ParseLeadingInt(f.FoodCost.String()),
			Desc:        strings.TrimSpace(f.Etc.String()),
			IsBest:      f.BestFoodYN.String() == flagYes,
			IsRecommend: f.RecommendYN.String() == flagYes,
		}
	}

	brandList := make([]restarea.Brand, len(rawBrands))
	for i, b := range rawBrands {
		brandList[i] = restarea.Brand{Name: b.BrdName.String(), Category: b.BrdDesc.String()}
	}

	amenities := make([]restarea.Amenity, len(rawConvs))
	for i, c := range rawConvs {
		amenities[i] = restarea.Amenity{
			Name:      c.PsName.String(),
			Desc:      strings.TrimSpace(c.PsDesc.String()),
			OpenTime:  c.Stime.String(),
			CloseTime: c.Etime.String(),
		}
	}

	var address string
	if len(rawFoods) > 0 {
		address = rawFoods[0].SvarAddr.String()
	}
	if address == "" && len(rawBrands) > 0 {
		address = rawBrands[0].SvarAddr.String()
	}
	if address == "" && len(rawConvs) > 0 {
		address = rawConvs[0].SvarAddr.String()
	}

	openTime, closeTime := restarea.OperatingHours(amenities)

	area := restarea.RestArea{
		Code:        loc.StdRestCd.String(),
		Name:        name,
		Slug:        slugs.Assign(name, direction, loc.UnitCode.String()),
		Highway:     highwayName,
		HighwaySlug: restarea.Slugify(highway.TrimRouteSuffix(highwayName)),
		Direction:   direction,
		Address:     address,
		Lat:         restarea.ParseLeadingFloat(loc.YValue.String()),
		Lng:         restarea.ParseLeadingFloat(loc.XValue.String()),
		Type:        restarea.DefaultType,
		OpenTime:    openTime,
		CloseTime:   closeTime,
		BestFood:    restarea.SelectBestFood(menu),
		Brands:      brandList,
		Foods:       menu[:min(len(menu), restarea.MaxFoods)],
		Facilities:  amenities,
	}
	restarea.DeriveFlags(amenities, menu).Apply(&area)
	return area
}
