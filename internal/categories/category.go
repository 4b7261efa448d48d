// Package categories serves the read-only active category list, optionally through a Redis cache.
package categories

import (
	"bytes"
	"encoding/json"
	"strings"
)

const Resource = "categories"

// Category is reference data for the product form.
type Category struct {
	CategoryID   ID     `json:"categoryID"`
	CategoryName string `json:"categoryName"`
}

// ID accepts either a JSON number or a JSON string.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}
