package catalog

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Department is a top-level category with its subcategories
type Department struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Image         string        `json:"image,omitempty"`
	Subcategories []Subcategory `json:"subcategories"`
}

// Subcategory is a second-level category. Its ID is the slug used in the
// category query parameter.
type Subcategory struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Parent string `json:"parent"`
}

// Taxonomy is the ordered category tree of the storefront
type Taxonomy struct {
	Departments []Department
}

// Department looks up a top-level category by its ID
func (t Taxonomy) Department(id string) (Department, bool) {
	for _, d := range t.Departments {
		if d.ID == id {
			return d, true
		}
	}
	return Department{}, false
}

// Subcategory looks up a subcategory by its ID across all departments
func (t Taxonomy) Subcategory(id string) (Subcategory, bool) {
	for _, d := range t.Departments {
		for _, s := range d.Subcategories {
			if s.ID == id {
				return s, true
			}
		}
	}
	return Subcategory{}, false
}

// DisplayName resolves a category parameter to a heading.
// Subcategories win over departments; unknown values are capitalized as-is.
func (t Taxonomy) DisplayName(param string) string {
	param = strings.ToLower(param)
	if s, ok := t.Subcategory(param); ok {
		return s.Name
	}
	if d, ok := t.Department(param); ok {
		return d.Name
	}
	return capitalize(param)
}

// CategorySummary is a department tile with its product count
type CategorySummary struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image"`
	Count int    `json:"count"`
}

// Collection is a curated, named subset of the catalog
type Collection struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Products    []Product `json:"products"`
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
