package jsonapi

import (
	"github.com/hwrest/restarea/application/service"
	"github.com/hwrest/restarea/domain/dataset"
	"github.com/hwrest/restarea/domain/highway"
	"github.com/hwrest/restarea/domain/restarea"
)

// Resource type names.
const (
	TypeRestArea     = "rest-area"
	TypeRestAreaCard = "rest-area-summary"
	TypeHighway      = "highway"
	TypeHighwayGroup = "highway-group"
	TypeRegion       = "region"
	TypeMetadata     = "metadata"
)

// HighwayAttributes is a highway with its type spelled out for clients.
type HighwayAttributes struct {
	highway.Highway
	TypeKey         string `json:"typeKey"`
	TypeDescription string `json:"typeDescription"`
	RestAreaCount   int    `json:"restAreaCount"`
}

// HighwayGroupAttributes describes one classification group.
type HighwayGroupAttributes struct {
	Type         highway.Type `json:"type"`
	Description  string       `json:"description"`
	HighwaySlugs []string     `json:"highwaySlugs"`
}

// Serializer converts domain objects to JSON:API resources.
type Serializer struct{}

// NewSerializer creates a new Serializer.
func NewSerializer() *Serializer {
	return &Serializer{}
}

// RestAreaResource converts a rest area to a resource linked to its highway.
func (s *Serializer) RestAreaResource(r restarea.RestArea) *Resource {
	res := NewResource(TypeRestArea, r.Slug, r)
	res.Relationships = Relationships{
		"highway": {Data: ResourceIdentifier{Type: TypeHighway, ID: r.HighwaySlug}},
	}
	return res
}

// RestAreaResources converts multiple rest areas.
func (s *Serializer) RestAreaResources(areas []restarea.RestArea) []*Resource {
	out := make([]*Resource, len(areas))
	for i, r := range areas {
		out[i] = s.RestAreaResource(r)
	}
	return out
}

// PopularResources converts popular listing entries.
func (s *Serializer) PopularResources(entries []restarea.Popular) []*Resource {
	out := make([]*Resource, len(entries))
	for i, p := range entries {
		out[i] = NewResource(TypeRestAreaCard, p.Slug, p)
	}
	return out
}

// HighwayResource converts a highway.
func (s *Serializer) HighwayResource(h highway.Highway) *Resource {
	return NewResource(TypeHighway, h.Slug, HighwayAttributes{
		Highway:         h,
		TypeKey:         h.HighwayType.Key(),
		TypeDescription: h.HighwayType.Description(),
		RestAreaCount:   h.MemberCount(),
	})
}

// HighwayResources converts multiple highways.
func (s *Serializer) HighwayResources(highways []highway.Highway) []*Resource {
	out := make([]*Resource, len(highways))
	for i, h := range highways {
		out[i] = s.HighwayResource(h)
	}
	return out
}

// HighwayGroupResource converts a classification group. The highways of
// the group are referenced through a relationship.
func (s *Serializer) HighwayGroupResource(g service.HighwayGroup) *Resource {
	slugs := make([]string, len(g.Highways))
	ids := make([]ResourceIdentifier, len(g.Highways))
	for i, h := range g.Highways {
		slugs[i] = h.Highway.Slug
		ids[i] = ResourceIdentifier{Type: TypeHighway, ID: h.Highway.Slug}
	}
	res := NewResource(TypeHighwayGroup, g.Type.Key(), HighwayGroupAttributes{
		Type:         g.Type,
		Description:  g.Type.Description(),
		HighwaySlugs: slugs,
	})
	res.Relationships = Relationships{"highways": {Data: ids}}
	return res
}

// RegionResource converts a region with its rest-area count.
func (s *Serializer) RegionResource(rc service.RegionCount) *Resource {
	return NewResource(TypeRegion, rc.Slug, rc)
}

// RegionResources converts multiple regions.
func (s *Serializer) RegionResources(regions []service.RegionCount) []*Resource {
	out := make([]*Resource, len(regions))
	for i, rc := range regions {
		out[i] = s.RegionResource(rc)
	}
	return out
}

// MetadataResource converts the run summary.
func (s *Serializer) MetadataResource(m dataset.Metadata) *Resource {
	return NewResource(TypeMetadata, "current", m)
}
