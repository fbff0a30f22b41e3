package model

import (
	"fmt"
	"strings"
)

// Filterable metadata fields of the vector index.
const (
	FieldCIK        = "cik"
	FieldReportYear = "report_year"
	FieldSection    = "section"
)

// Filter is a metadata filter expression for vector index queries.
// Implementations form a small expression tree (comparisons combined
// with And/Or) that the storage layer renders into its native query form.
type Filter interface {
	// String returns a human-readable rendering for debug logs.
	String() string
	filterNode()
}

// Eq matches rows whose field equals the value.
type Eq struct {
	Field string
	Value interface{}
}

// In matches rows whose field equals any of the values.
type In struct {
	Field  string
	Values []interface{}
}

// Gte matches rows whose field is greater than or equal to the value.
type Gte struct {
	Field string
	Value interface{}
}

// And matches rows satisfying all conditions.
type And struct {
	Conditions []Filter
}

// Or matches rows satisfying at least one condition.
type Or struct {
	Conditions []Filter
}

func (Eq) filterNode()  {}
func (In) filterNode()  {}
func (Gte) filterNode() {}
func (And) filterNode() {}
func (Or) filterNode()  {}

func (f Eq) String() string {
	return fmt.Sprintf("%s = %v", f.Field, f.Value)
}

func (f In) String() string {
	parts := make([]string, len(f.Values))
	for i, v := range f.Values {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("%s in [%s]", f.Field, strings.Join(parts, ", "))
}

func (f Gte) String() string {
	return fmt.Sprintf("%s >= %v", f.Field, f.Value)
}

func (f And) String() string {
	parts := make([]string, len(f.Conditions))
	for i, c := range f.Conditions {
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, " and ") + ")"
}

func (f Or) String() string {
	parts := make([]string, len(f.Conditions))
	for i, c := range f.Conditions {
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, " or ") + ")"
}

// IntValues converts a slice of ints into filter values.
func IntValues(values []int) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// StringValues converts a slice of strings into filter values.
func StringValues(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
