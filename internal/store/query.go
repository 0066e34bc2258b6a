package store

import "encoding/json"

// Query is a single list-documents constraint in the store's wire
// format: {"method":"equal","attribute":"userId","values":["..."]}.
type Query struct {
	Method    string        `json:"method"`
	Attribute string        `json:"attribute,omitempty"`
	Values    []interface{} `json:"values,omitempty"`
}

// Equal filters documents whose attribute equals value.
func Equal(attribute string, value interface{}) Query {
	return Query{Method: "equal", Attribute: attribute, Values: []interface{}{value}}
}

// OrderDesc orders results by attribute, descending.
func OrderDesc(attribute string) Query {
	return Query{Method: "orderDesc", Attribute: attribute}
}

// OrderAsc orders results by attribute, ascending.
func OrderAsc(attribute string) Query {
	return Query{Method: "orderAsc", Attribute: attribute}
}

// Limit caps the number of returned documents.
func Limit(n int) Query {
	return Query{Method: "limit", Values: []interface{}{n}}
}

// Encode renders the query to its wire form.
func (q Query) Encode() (string, error) {
	b, err := json.Marshal(q)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
