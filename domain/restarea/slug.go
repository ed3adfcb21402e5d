package restarea

import (
	"strconv"
	"strings"

	"github.com/gosimple/slug"
)

const fallbackSlug = "rest-area"

// Slugify transliterates s to a lowercase, hyphen-separated URL token.
func Slugify(s string) string {
	out := slug.Make(s)
	out = strings.NewReplacer("(", "", ")", "", ".", "").Replace(out)
	for strings.Contains(out, "--") {
		out = strings.ReplaceAll(out, "--", "-")
	}
	return strings.Trim(out, "-")
}

// SlugRegistry hands out slugs that are unique within one dataset build.
//
// The first rest area to claim a base slug keeps it, so results depend on
// the order of the location listing.
type SlugRegistry struct {
	used map[string]struct{}
}

// NewSlugRegistry creates an empty SlugRegistry.
func NewSlugRegistry() *SlugRegistry {
	return &SlugRegistry{used: make(map[string]struct{})}
}

// Assign returns the slug for a rest area and marks it used. A collision
// on the name/direction slug is resolved by appending the unit code; a
// further collision gets a numeric suffix.
func (r *SlugRegistry) Assign(name, direction, code string) string {
	base := name
	if direction != "" {
		base = name + "-" + direction
	}
	candidate := Slugify(base)
	if candidate == "" {
		candidate = FirstNonEmpty(Slugify(code), fallbackSlug)
	}
	if r.taken(candidate) {
		candidate = FirstNonEmpty(Slugify(name+"-"+direction+"-"+code), candidate)
	}
	if r.taken(candidate) {
		stem := candidate
		for n := 2; r.taken(candidate); n++ {
			candidate = stem + "-" + strconv.Itoa(n)
		}
	}
	r.used[candidate] = struct{}{}
	return candidate
}

// Len returns the number of assigned slugs.
func (r *SlugRegistry) Len() int { return len(r.used) }

func (r *SlugRegistry) taken(s string) bool {
	_, ok := r.used[s]
	return ok
}
