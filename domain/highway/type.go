// Package highway classifies expressway routes and aggregates their rest areas.
package highway

import (
	"fmt"
	"strings"
)

// Type is the route classification of an expressway.
type Type int

// Type values, in display order.
const (
	TypeMain Type = iota
	TypeLoop
	TypeBranch
	TypeOther
)

var typeLabels = [...]string{
	TypeMain:   "간선고속도로",
	TypeLoop:   "순환고속도로",
	TypeBranch: "지선고속도로",
	TypeOther:  "기타고속도로",
}

var typeKeys = [...]string{
	TypeMain:   "main",
	TypeLoop:   "loop",
	TypeBranch: "branch",
	TypeOther:  "other",
}

var typeDescriptions = [...]string{
	TypeMain:   "주요 도시를 연결하는 기간 노선",
	TypeLoop:   "수도권 및 도시 외곽을 순환하는 노선",
	TypeBranch: "간선에서 분기하여 연결하는 노선",
	TypeOther:  "기타 고속도로 노선",
}

// Types returns every Type in display order.
func Types() []Type {
	return []Type{TypeMain, TypeLoop, TypeBranch, TypeOther}
}

// Label returns the Korean label used in the published dataset.
func (t Type) Label() string {
	if !t.valid() {
		return typeLabels[TypeOther]
	}
	return typeLabels[t]
}

// Key returns the ASCII identifier used in URLs.
func (t Type) Key() string {
	if !t.valid() {
		return typeKeys[TypeOther]
	}
	return typeKeys[t]
}

// Description returns a one-line explanation of the route category.
func (t Type) Description() string {
	if !t.valid() {
		return typeDescriptions[TypeOther]
	}
	return typeDescriptions[t]
}

// String implements fmt.Stringer.
func (t Type) String() string { return t.Label() }

// MarshalText encodes the type as its label.
func (t Type) MarshalText() ([]byte, error) {
	if !t.valid() {
		return nil, fmt.Errorf("invalid highway type %d", int(t))
	}
	return []byte(typeLabels[t]), nil
}

// UnmarshalText decodes a label produced by MarshalText.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseType maps a label or key back to its Type.
func ParseType(label string) (Type, error) {
	for i := range typeLabels {
		if typeLabels[i] == label || typeKeys[i] == label {
			return Type(i), nil
		}
	}
	return TypeOther, fmt.Errorf("unknown highway type %q", label)
}

func (t Type) valid() bool {
	return t >= TypeMain && t <= TypeOther
}

const (
	loopKeyword   = "순환"
	branchKeyword = "지선"
	routeSuffix   = "선"
)

// mainRoutes lists the trunk expressways. Matching strips the first route
// suffix from each entry and tests substring containment.
var mainRoutes = []string{
	"경부선", "서해안선", "영동선", "호남선", "중앙선", "중부선",
	"중부내륙선", "남해선", "통영대전선", "동해선", "순천완주선",
}

// Classify derives the route category from a route display name.
//
// Loop and branch keywords win over the trunk allowlist. The allowlist
// test is substring based, so a route whose name happens to contain a
// trunk stem is classified as main.
func Classify(name string) Type {
	if strings.Contains(name, loopKeyword) {
		return TypeLoop
	}
	if strings.Contains(name, branchKeyword) {
		return TypeBranch
	}
	for _, main := range mainRoutes {
		if strings.Contains(name, strings.Replace(main, routeSuffix, "", 1)) {
			return TypeMain
		}
	}
	return TypeOther
}

// TrimRouteSuffix removes a single trailing route suffix from a route name.
func TrimRouteSuffix(name string) string {
	return strings.TrimSuffix(name, routeSuffix)
}
