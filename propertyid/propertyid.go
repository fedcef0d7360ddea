// Package propertyid validates property identifiers and derives the DynamoDB
// keys that address property records.
//
// A property identifier has four slash-separated segments:
//
//	country/city/street/number
//
// e.g. "us/new-york/main-st/12-14". Every handler that reads or writes a
// property-scoped record derives its key through this package, so the same
// identifier always maps to the same partition and sort key.
package propertyid

import (
	"regexp"
	"strings"
)

// Pattern is the grammar a property identifier must match in full.
// City and street may contain single spaces between words.
const Pattern = `([a-z-]+)/([a-z][a-z-]*(?: [a-z-]+)*)/([a-z][a-z0-9-]*(?: [a-z0-9-]+)*)/([0-9-]+)`

// PartitionPrefix marks partition keys of property records.
const PartitionPrefix = "PROPERTY#"

var grammar = regexp.MustCompile(`^` + Pattern + `$`)

// ID is a property identifier that has passed validation.
type ID struct {
	Country string
	City    string
	Street  string
	Number  string
}

// Key is the partition/sort key pair of a property record.
type Key struct {
	PK string
	SK string
}

// Parse validates raw against Pattern and splits it into its segments.
// The segments are returned exactly as they appear in raw.
func Parse(raw string) (ID, error) {
	m := grammar.FindStringSubmatch(raw)
	if m == nil {
		return ID{}, &InvalidIDError{ID: raw, Pattern: Pattern}
	}
	return ID{Country: m[1], City: m[2], Street: m[3], Number: m[4]}, nil
}

// Key derives the composite key for id. It does not validate; an ID that
// did not come from Parse yields an undefined key.
func (id ID) Key() Key {
	return Key{
		PK: PartitionPrefix + normalize(id.Country+"#"+id.City),
		SK: normalize(id.Street + "#" + id.Number),
	}
}

// String joins the segments back into identifier form.
func (id ID) String() string {
	return id.Country + "/" + id.City + "/" + id.Street + "/" + id.Number
}

// KeyFor validates raw and derives its composite key.
func KeyFor(raw string) (Key, error) {
	id, err := Parse(raw)
	if err != nil {
		return Key{}, err
	}
	return id.Key(), nil
}

func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}
