package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Product represents one catalog entry.
type Product struct {
	ID        ProductID `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProductID identifies a product. Stored catalogs may carry numeric or
// string ids; the JSON kind is kept so a load/persist cycle writes back
// exactly what was read.
type ProductID struct {
	value   string
	numeric bool
}

// NumericID builds a numeric product id.
func NumericID(n int64) ProductID {
	return ProductID{value: strconv.FormatInt(n, 10), numeric: true}
}

// StringID builds a string product id.
func StringID(s string) ProductID {
	return ProductID{value: s}
}

// ParseID reads an id coming from a URL or a command line argument.
// Integers become numeric ids, anything else a string id.
func ParseID(s string) ProductID {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NumericID(n)
	}
	return StringID(s)
}

func (id ProductID) String() string {
	return id.value
}

// IsZero reports whether the id was never set.
func (id ProductID) IsZero() bool {
	return id.value == ""
}

// Numeric reports whether the id is serialized as a JSON number.
func (id ProductID) Numeric() bool {
	return id.numeric
}

// Int64 returns the integer value of a numeric id.
func (id ProductID) Int64() (int64, bool) {
	if !id.numeric {
		return 0, false
	}
	n, err := strconv.ParseInt(id.value, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Equal compares ids by their textual value, whatever their JSON kind.
func (id ProductID) Equal(other ProductID) bool {
	return id.value == other.value
}

func (id ProductID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}

	if bytes.Equal(data, []byte("null")) {
		return errors.New("product id must be a number or a string, got null")
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("product id must be a number or a string: %w", err)
	}
	*id = ProductID{value: n.String(), numeric: true}
	return nil
}
