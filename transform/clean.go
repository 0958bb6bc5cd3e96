// Package transform cleans messy product listings into sorted, grouped sections.
package transform

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DateLayout is the layout of Product.Date
const DateLayout = "2006-01-02"

//go:embed sample.json
var sampleJSON []byte

// Product is a single raw listing
type Product struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Date     string `json:"date"`
}

// Section is one category worth of products, newest first
type Section struct {
	Title string    `json:"title"`
	Items []Product `json:"items"`
}

// Decode reads a JSON array of products
func Decode(r io.Reader) ([]Product, error) {
	var products []Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// Sample returns the bundled messy data set
func Sample() []Product {
	var products []Product
	if err := json.Unmarshal(sampleJSON, &products); err != nil {
		panic(fmt.Sprintf("transform: bad embedded sample: %v", err))
	}
	return products
}

// Dedupe keeps the first product seen for each ID
func Dedupe(products []Product) []Product {
	seen := make(map[int]struct{}, len(products))
	unique := make([]Product, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		unique = append(unique, p)
	}
	return unique
}

// Normalize lower-cases and trims every category
func Normalize(products []Product) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		p.Category = strings.ToLower(strings.TrimSpace(p.Category))
		out[i] = p
	}
	return out
}

// Group buckets products by category, preserving input order within a bucket
func Group(products []Product) map[string][]Product {
	grouped := make(map[string][]Product)
	for _, p := range products {
		grouped[p.Category] = append(grouped[p.Category], p)
	}
	return grouped
}

// SortByDateDesc orders products newest first. Unparseable dates go last.
func SortByDateDesc(products []Product) {
	sort.SliceStable(products, func(i, j int) bool {
		ti, errI := time.Parse(DateLayout, products[i].Date)
		tj, errJ := time.Parse(DateLayout, products[j].Date)
		switch {
		case errI != nil:
			return false
		case errJ != nil:
			return true
		}
		return ti.After(tj)
	})
}

// Clean runs the whole pipeline: dedupe, normalize, group, sort, then
// sections ordered alphabetically by category.
func Clean(raw []Product) []Section {
	grouped := Group(Normalize(Dedupe(raw)))

	categories := make([]string, 0, len(grouped))
	for category := range grouped {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	caser := cases.Title(language.English)
	sections := make([]Section, 0, len(categories))
	for _, category := range categories {
		items := grouped[category]
		SortByDateDesc(items)
		title := caser.String(category)
		if category == "" {
			title = "Uncategorized"
		}
		sections = append(sections, Section{Title: title, Items: items})
	}
	return sections
}
