package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParseEquality(t *testing.T) {
	opts := Parse(url.Values{"housing": {"true"}, "name": {"Devworks"}})

	assert.Equal(t, true, opts.Filter["housing"])
	assert.Equal(t, "Devworks", opts.Filter["name"])
	assert.Equal(t, int64(1), opts.Page)
	assert.Equal(t, int64(DefaultLimit), opts.Limit)
}

func TestParseOperators(t *testing.T) {
	opts := Parse(url.Values{
		"averageCost[lte]": {"10000"},
		"averageCost[gt]":  {"500"},
		"careers[in]":      {"Business,Data Science"},
	})

	cost, ok := opts.Filter["averageCost"].(bson.M)
	assert.True(t, ok)
	assert.Equal(t, int64(10000), cost["$lte"])
	assert.Equal(t, int64(500), cost["$gt"])

	careers, ok := opts.Filter["careers"].(bson.M)
	assert.True(t, ok)
	assert.Equal(t, []interface{}{"Business", "Data Science"}, careers["$in"])
}

func TestParseReservedKeysAreNotFilters(t *testing.T) {
	opts := Parse(url.Values{
		"select": {"name,description"},
		"sort":   {"-averageCost,name"},
		"page":   {"3"},
		"limit":  {"10"},
	})

	assert.Empty(t, opts.Filter)
	assert.Equal(t, bson.M{"name": 1, "description": 1}, opts.Projection)
	assert.Equal(t, bson.D{{Key: "averageCost", Value: -1}, {Key: "name", Value: 1}}, opts.Sort)
	assert.Equal(t, int64(3), opts.Page)
	assert.Equal(t, int64(10), opts.Limit)
}

func TestParseDefaultSort(t *testing.T) {
	opts := Parse(url.Values{})
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, opts.Sort)
}

func TestParseIgnoresBadPagination(t *testing.T) {
	opts := Parse(url.Values{"page": {"0"}, "limit": {"nope"}})
	assert.Equal(t, int64(1), opts.Page)
	assert.Equal(t, int64(DefaultLimit), opts.Limit)
}

func TestCoerce(t *testing.T) {
	assert.Equal(t, true, coerce("true"))
	assert.Equal(t, false, coerce("false"))
	assert.Equal(t, int64(42), coerce("42"))
	assert.Equal(t, 4.5, coerce("4.5"))
	assert.Equal(t, "beginner", coerce("beginner"))
}

func TestPaginate(t *testing.T) {
	// Middle page has both pointers.
	p := Paginate(2, 10, 35)
	assert.Equal(t, &Page{Page: 3, Limit: 10}, p.Next)
	assert.Equal(t, &Page{Page: 1, Limit: 10}, p.Prev)

	// First page of a small set has neither.
	p = Paginate(1, 25, 20)
	assert.Nil(t, p.Next)
	assert.Nil(t, p.Prev)

	// Last page only points back.
	p = Paginate(4, 10, 35)
	assert.Nil(t, p.Next)
	assert.Equal(t, &Page{Page: 3, Limit: 10}, p.Prev)

	// Exactly full last page.
	p = Paginate(2, 10, 20)
	assert.Nil(t, p.Next)
	assert.NotNil(t, p.Prev)
}
