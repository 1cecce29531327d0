package repository

import (
	"net/url"
	"strconv"
	"time"

	"github.com/essamaboelmgd/sanabel-elkhair/pkg/pagination"
	"github.com/shopspring/decimal"
)

// Scope adds one filter to a backend list query.
type Scope func(q url.Values)

// query applies scopes to a fresh set of query parameters.
func query(scopes ...Scope) url.Values {
	q := url.Values{}
	for _, scope := range scopes {
		scope(q)
	}
	return q
}

// Paginate sets page and page_size.
func Paginate(p *pagination.PaginationParams) Scope {
	return func(q url.Values) {
		p.Apply(q)
	}
}

// Eq sets key when value is non-empty.
func Eq(key, value string) Scope {
	return func(q url.Values) {
		if value != "" {
			q.Set(key, value)
		}
	}
}

// Int sets key to an integer value.
func Int(key string, value int) Scope {
	return func(q url.Values) {
		q.Set(key, strconv.Itoa(value))
	}
}

// Bool sets key when value is non-nil.
func Bool(key string, value *bool) Scope {
	return func(q url.Values) {
		if value != nil {
			q.Set(key, strconv.FormatBool(*value))
		}
	}
}

// Decimal sets key when value is non-nil.
func Decimal(key string, value *decimal.Decimal) Scope {
	return func(q url.Values) {
		if value != nil {
			q.Set(key, value.String())
		}
	}
}

// Date sets key as an ISO timestamp when value is non-nil.
func Date(key string, value *time.Time) Scope {
	return func(q url.Values) {
		if value != nil {
			q.Set(key, value.UTC().Format("2006-01-02T15:04:05"))
		}
	}
}
