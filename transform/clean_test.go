package transform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(products []Product) []int {
	out := []int{}
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestCleanSample(t *testing.T) {
	raw := Sample()
	require.Len(t, raw, 6)

	sections := Clean(raw)
	require.Len(t, sections, 2)

	assert.Equal(t, "Clothing", sections[0].Title)
	assert.Equal(t, []int{4, 3}, ids(sections[0].Items))

	assert.Equal(t, "Electronics", sections[1].Title)
	assert.Equal(t, []int{5, 2, 1}, ids(sections[1].Items))

	for _, s := range sections {
		for _, p := range s.Items {
			assert.Equal(t, strings.ToLower(s.Title), p.Category)
		}
	}
}

func TestDedupeKeepsFirst(t *testing.T) {
	got := Dedupe([]Product{
		{ID: 1, Name: "first"},
		{ID: 2},
		{ID: 1, Name: "second"},
	})
	assert.Equal(t, []int{1, 2}, ids(got))
	assert.Equal(t, "first", got[0].Name)
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	in := []Product{{ID: 1, Category: " CLOTHING "}}
	out := Normalize(in)
	assert.Equal(t, "clothing", out[0].Category)
	assert.Equal(t, " CLOTHING ", in[0].Category)
}

func TestSortByDateDescBadDatesLast(t *testing.T) {
	products := []Product{
		{ID: 1, Date: "not a date"},
		{ID: 2, Date: "2024-01-01"},
		{ID: 3, Date: "2024-06-01"},
	}
	SortByDateDesc(products)
	assert.Equal(t, []int{3, 2, 1}, ids(products))
}

func TestDecode(t *testing.T) {
	products, err := Decode(strings.NewReader(`[{"id":9,"name":"Z","category":"Toys","date":"2024-05-05"}]`))
	require.NoError(t, err)
	assert.Equal(t, []Product{{ID: 9, Name: "Z", Category: "Toys", Date: "2024-05-05"}}, products)

	_, err = Decode(strings.NewReader(`{`))
	assert.Error(t, err)
}

func TestEmptyCategory(t *testing.T) {
	sections := Clean([]Product{{ID: 1, Category: "   "}})
	require.Len(t, sections, 1)
	assert.Equal(t, "Uncategorized", sections[0].Title)
}
