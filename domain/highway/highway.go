package highway

import "sort"

// Member is the lightweight summary of a rest area listed under a highway.
type Member struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Direction string `json:"direction"`
	BestFood  string `json:"bestFood"`
	Type      string `json:"type"`
}

// Highway aggregates the rest areas that share a highway slug.
type Highway struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	HighwayType Type     `json:"highwayType"`
	RestAreas   []Member `json:"restAreas"`
}

// MemberCount returns the number of rest areas on the highway.
func (h Highway) MemberCount() int { return len(h.RestAreas) }

// Collection accumulates highways in discovery order.
type Collection struct {
	index    map[string]int
	highways []Highway
}

// NewCollection creates an empty Collection.
func NewCollection() *Collection {
	return &Collection{index: make(map[string]int)}
}

// Add appends member to the highway identified by slug, creating the
// highway on first sight. The classification is computed once, from the
// name the highway was first seen with.
func (c *Collection) Add(name, slug string, member Member) {
	i, ok := c.index[slug]
	if !ok {
		i = len(c.highways)
		c.index[slug] = i
		c.highways = append(c.highways, Highway{
			Name:        name,
			Slug:        slug,
			HighwayType: Classify(name),
			RestAreas:   []Member{},
		})
	}
	c.highways[i].RestAreas = append(c.highways[i].RestAreas, member)
}

// Len returns the number of distinct highways.
func (c *Collection) Len() int { return len(c.highways) }

// Sorted returns the highways ordered by member count, largest first.
// Highways with equal counts keep their discovery order.
func (c *Collection) Sorted() []Highway {
	out := make([]Highway, len(c.highways))
	copy(out, c.highways)
	SortByMemberCount(out)
	return out
}

// SortByMemberCount stable-sorts highways by descending member count.
func SortByMemberCount(highways []Highway) {
	sort.SliceStable(highways, func(i, j int) bool {
		return highways[i].MemberCount() > highways[j].MemberCount()
	})
}
