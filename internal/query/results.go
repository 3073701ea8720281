package query

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Page identifies a neighbouring page in the pagination block.
type Page struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
}

// Pagination carries next/prev pointers; either may be absent.
type Pagination struct {
	Next *Page `json:"next,omitempty"`
	Prev *Page `json:"prev,omitempty"`
}

// Results is the standard list envelope returned by collection endpoints.
type Results struct {
	Success    bool       `json:"success"`
	Count      int        `json:"count"`
	Pagination Pagination `json:"pagination"`
	Data       []bson.M   `json:"data"`
}

// Run executes the parsed options against a collection and wraps the
// decoded documents in a Results envelope.  The total used for the
// next/prev pointers is the count of documents matching the filter, and
// the skip is (page-1)*limit.
func Run(ctx context.Context, coll *mongo.Collection, opts Options) (*Results, error) {
	total, err := coll.CountDocuments(ctx, opts.Filter)
	if err != nil {
		return nil, err
	}

	findOpts := options.Find().
		SetSort(opts.Sort).
		SetSkip((opts.Page - 1) * opts.Limit).
		SetLimit(opts.Limit)
	if len(opts.Projection) > 0 {
		findOpts.SetProjection(opts.Projection)
	}

	cur, err := coll.Find(ctx, opts.Filter, findOpts)
	if err != nil {
		return nil, err
	}
	docs := []bson.M{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	if opts.Expand != nil {
		if err := opts.Expand(ctx, docs); err != nil {
			return nil, err
		}
	}

	return &Results{
		Success:    true,
		Count:      len(docs),
		Pagination: Paginate(opts.Page, opts.Limit, total),
		Data:       docs,
	}, nil
}

// Paginate computes the next/prev pointers for a page of a result set with
// the given total number of matching documents.
func Paginate(page, limit, total int64) Pagination {
	var p Pagination
	if page*limit < total {
		p.Next = &Page{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		p.Prev = &Page{Page: page - 1, Limit: limit}
	}
	return p
}
