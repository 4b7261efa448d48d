package enums

import (
	"fmt"
	"strings"
)

// SortOrder is the direction of a list sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// String implements fmt.Stringer.
func (o SortOrder) String() string {
	return string(o)
}

// IsValid reports whether the value is asc or desc.
func (o SortOrder) IsValid() bool {
	return o == SortAsc || o == SortDesc
}

// Flip returns the opposite direction.
func (o SortOrder) Flip() SortOrder {
	if o == SortDesc {
		return SortAsc
	}
	return SortDesc
}

// ParseSortOrder converts raw input into a SortOrder. Empty input means ascending.
func ParseSortOrder(value string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(SortAsc):
		return SortAsc, nil
	case string(SortDesc):
		return SortDesc, nil
	}
	return "", fmt.Errorf("invalid sort order %q", value)
}
