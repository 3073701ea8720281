// Package query turns URL query parameters into MongoDB queries and wraps
// the results in the API's standard envelope.  The supported grammar is:
//
//	field=value              equality match
//	field[op]=value          op in {gt, gte, lt, lte, in}
//	select=f1,f2             field projection
//	sort=f1,-f2              sort keys, "-" prefix for descending
//	page=N&limit=N           pagination (defaults 1 and 25)
//
// Handlers call Parse to build Options and Run to execute them, keeping the
// result an explicit value instead of stashing it in shared request state.
package query

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// DefaultLimit is the page size used when the client does not send one.
const DefaultLimit = 25

// Options is a parsed, executable representation of a query string.
type Options struct {
	Filter     bson.M
	Projection bson.M
	Sort       bson.D
	Page       int64
	Limit      int64

	// Expand lets a handler enrich the fetched documents before they are
	// wrapped in the envelope, e.g. attaching each course's bootcamp.  It
	// is set in code, never parsed from the request.
	Expand func(ctx context.Context, docs []bson.M) error
}

// reserved keys are pagination/shaping controls, not filters.
var reserved = map[string]bool{"select": true, "sort": true, "page": true, "limit": true}

// opKey matches filter keys of the form field[op].
var opKey = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_.]*)\[(gt|gte|lt|lte|in)\]$`)

// Parse builds Options from raw query parameters.
func Parse(values url.Values) Options {
	opts := Options{
		Filter: bson.M{},
		Page:   1,
		Limit:  DefaultLimit,
	}

	for key, vals := range values {
		if reserved[key] || len(vals) == 0 {
			continue
		}
		raw := vals[0]
		if m := opKey.FindStringSubmatch(key); m != nil {
			field, op := m[1], m[2]
			cond, ok := opts.Filter[field].(bson.M)
			if !ok {
				cond = bson.M{}
				opts.Filter[field] = cond
			}
			if op == "in" {
				parts := strings.Split(raw, ",")
				list := make([]interface{}, 0, len(parts))
				for _, p := range parts {
					list = append(list, coerce(p))
				}
				cond["$in"] = list
			} else {
				cond["$"+op] = coerce(raw)
			}
			continue
		}
		opts.Filter[key] = coerce(raw)
	}

	if sel := values.Get("select"); sel != "" {
		opts.Projection = bson.M{}
		for _, f := range strings.Split(sel, ",") {
			if f = strings.TrimSpace(f); f != "" {
				opts.Projection[f] = 1
			}
		}
	}

	if sort := values.Get("sort"); sort != "" {
		for _, f := range strings.Split(sort, ",") {
			if f = strings.TrimSpace(f); f == "" {
				continue
			}
			dir := 1
			if strings.HasPrefix(f, "-") {
				dir = -1
				f = f[1:]
			}
			opts.Sort = append(opts.Sort, bson.E{Key: f, Value: dir})
		}
	}
	if len(opts.Sort) == 0 {
		// Newest first when the client does not choose.
		opts.Sort = bson.D{{Key: "createdAt", Value: -1}}
	}

	if n, err := strconv.ParseInt(values.Get("page"), 10, 64); err == nil && n > 0 {
		opts.Page = n
	}
	if n, err := strconv.ParseInt(values.Get("limit"), 10, 64); err == nil && n > 0 {
		opts.Limit = n
	}
	return opts
}

// coerce converts a query-string literal into the value type it most likely
// represents so comparisons against typed BSON fields behave as expected:
// booleans, then integers, then floats, falling back to the raw string.
func coerce(s string) interface{} {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
