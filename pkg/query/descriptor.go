package query

// MatchKind selects how a filter value is compared against a column.
type MatchKind int

// Match kinds.
const (
	MatchEquals MatchKind = iota
	MatchContains
)

// Match pairs a filter value with its comparison semantics.
type Match struct {
	Kind  MatchKind
	Value string
}

// Equals creates an exact-equality match.
func Equals(value string) Match {
	return Match{Kind: MatchEquals, Value: value}
}

// Contains creates a case-insensitive substring match.
func Contains(value string) Match {
	return Match{Kind: MatchContains, Value: value}
}

// Order specifies the sort field and direction for a query.
type Order struct {
	Field      string
	Descending bool
}

// Descriptor is the backend-neutral description of a list query:
// filter conditions, eagerly loaded relations, pagination window, and
// ordering. Built fresh per request and owned by that request.
type Descriptor struct {
	Where     map[string]Match
	Relations []string
	Skip      int
	Take      int
	Order     Order
}

// NewDescriptor creates a descriptor with the given pagination window
// and order and no conditions.
func NewDescriptor(skip, take int, order Order) Descriptor {
	return Descriptor{
		Where: make(map[string]Match),
		Skip:  skip,
		Take:  take,
		Order: order,
	}
}

// Filter adds a condition for field. Empty values are dropped so absent
// filters are never evaluated.
func (d *Descriptor) Filter(field string, m Match) *Descriptor {
	if m.Value == "" {
		return d
	}
	d.Where[field] = m
	return d
}

// Relate marks a relation for eager loading.
func (d *Descriptor) Relate(relations ...string) *Descriptor {
	d.Relations = append(d.Relations, relations...)
	return d
}
