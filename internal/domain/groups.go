package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// GroupCount is an employee's purchase-group tally for one day.
type GroupCount struct {
	Standard    int
	Jewelry     int
	Recoverable int
}

// DailyGroups is the stored GroupCount of one employee on one date.
type DailyGroups struct {
	EmployeeID string
	Date       string
	Counts     GroupCount
	UpdatedAt  time.Time
}

// GroupKey is the storage key of an employee's counts on a date.
func GroupKey(employeeID, date string) string {
	return employeeID + "-" + date
}

func (g GroupCount) Total() int {
	return g.Standard + g.Jewelry + g.Recoverable
}

func (g GroupCount) IsZero() bool {
	return g == GroupCount{}
}

// Plus returns the field-wise sum of g and o.
func (g GroupCount) Plus(o GroupCount) GroupCount {
	return GroupCount{
		Standard:    g.Standard + o.Standard,
		Jewelry:     g.Jewelry + o.Jewelry,
		Recoverable: g.Recoverable + o.Recoverable,
	}
}

// Get returns the count of a single category.
func (g GroupCount) Get(c GroupCategory) int {
	switch c {
	case GroupJewelry:
		return g.Jewelry
	case GroupRecoverable:
		return g.Recoverable
	default:
		return g.Standard
	}
}

func (g GroupCount) Validate() error {
	for _, c := range GroupCategories {
		if v := g.Get(c); v < 0 {
			return NewValidationError("%s count must not be negative, got %d", c, v)
		}
	}
	return nil
}

// GroupPatch is a partial update. Nil fields keep the stored value.
type GroupPatch struct {
	Standard    *int
	Jewelry     *int
	Recoverable *int
}

func (p GroupPatch) IsEmpty() bool {
	return p.Standard == nil && p.Jewelry == nil && p.Recoverable == nil
}

func (p GroupPatch) Validate() error {
	fields := []struct {
		name string
		v    *int
	}{
		{string(GroupStandard), p.Standard},
		{string(GroupJewelry), p.Jewelry},
		{string(GroupRecoverable), p.Recoverable},
	}
	for _, f := range fields {
		if f.v != nil && *f.v < 0 {
			return NewValidationError("%s count must not be negative, got %d", f.name, *f.v)
		}
	}
	return nil
}

// Merge applies p to g with replace-per-field semantics.
func (g GroupCount) Merge(p GroupPatch) (GroupCount, error) {
	if err := p.Validate(); err != nil {
		return g, err
	}
	return GroupCount{
		Standard:    deref(p.Standard, g.Standard),
		Jewelry:     deref(p.Jewelry, g.Jewelry),
		Recoverable: deref(p.Recoverable, g.Recoverable),
	}, nil
}

// AddPatch turns an additive delta into the full replacement patch for g:
// every field becomes g[f] + delta[f] (a missing delta field adds zero).
func (g GroupCount) AddPatch(delta GroupPatch) (GroupPatch, error) {
	if err := delta.Validate(); err != nil {
		return GroupPatch{}, err
	}
	std := g.Standard + deref(delta.Standard, 0)
	jew := g.Jewelry + deref(delta.Jewelry, 0)
	rec := g.Recoverable + deref(delta.Recoverable, 0)
	return GroupPatch{Standard: &std, Jewelry: &jew, Recoverable: &rec}, nil
}

// FullPatch returns a patch that replaces every field with g's values.
func (g GroupCount) FullPatch() GroupPatch {
	std, jew, rec := g.Standard, g.Jewelry, g.Recoverable
	return GroupPatch{Standard: &std, Jewelry: &jew, Recoverable: &rec}
}

// groupObject is the structured wire shape. Fields are pointers so a partial
// object can be told apart from explicit zeros.
type groupObject struct {
	Standard    *json.Number `json:"standard,omitempty"`
	Jewelry     *json.Number `json:"jewelry,omitempty"`
	Recoverable *json.Number `json:"recoverable,omitempty"`
}

// ParseGroupPatch decodes either stored or submitted counts. A bare number is
// the legacy scalar form and sets all three fields ({n, 0, 0}); an object sets
// only the fields it names. null or empty input yields an empty patch.
func ParseGroupPatch(raw []byte) (GroupPatch, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return GroupPatch{}, nil
	}

	if raw[0] != '{' {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return GroupPatch{}, NewValidationError("group count must be a number or an object")
		}
		v, err := countFromNumber(string(GroupStandard), n)
		if err != nil {
			return GroupPatch{}, err
		}
		return GroupCount{Standard: v}.FullPatch(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var obj groupObject
	if err := dec.Decode(&obj); err != nil {
		return GroupPatch{}, NewValidationError("malformed group count object: %v", err)
	}

	var p GroupPatch
	for _, f := range []struct {
		name string
		src  *json.Number
		dst  **int
	}{
		{string(GroupStandard), obj.Standard, &p.Standard},
		{string(GroupJewelry), obj.Jewelry, &p.Jewelry},
		{string(GroupRecoverable), obj.Recoverable, &p.Recoverable},
	} {
		if f.src == nil {
			continue
		}
		v, err := countFromNumber(f.name, *f.src)
		if err != nil {
			return GroupPatch{}, err
		}
		*f.dst = &v
	}
	return p, nil
}

// NormalizeGroups parses raw counts into a full GroupCount; missing fields
// default to zero. NormalizeGroups([]byte("7")) equals
// NormalizeGroups([]byte(`{"standard":7,"jewelry":0,"recoverable":0}`)).
func NormalizeGroups(raw []byte) (GroupCount, error) {
	p, err := ParseGroupPatch(raw)
	if err != nil {
		return GroupCount{}, err
	}
	return GroupCount{}.Merge(p)
}

func countFromNumber(field string, n json.Number) (int, error) {
	f, err := n.Float64()
	if err != nil {
		return 0, NewValidationError("%s count %q is not a number", field, n.String())
	}
	if f < 0 {
		return 0, NewValidationError("%s count must not be negative, got %v", field, f)
	}
	if f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, NewValidationError("%s count must be a whole number, got %v", field, f)
	}
	return int(f), nil
}

func (g GroupCount) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"standard":%d,"jewelry":%d,"recoverable":%d}`,
		g.Standard, g.Jewelry, g.Recoverable)), nil
}

func (g *GroupCount) UnmarshalJSON(data []byte) error {
	parsed, err := NormalizeGroups(data)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// deref returns *p, or fallback when the field was omitted.
func deref(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}
