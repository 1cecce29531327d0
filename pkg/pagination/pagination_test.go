package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateClampsPageSize(t *testing.T) {
	p := &PaginationParams{Page: 0, PageSize: 500}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPageSize, p.PageSize)
}

func TestApply(t *testing.T) {
	q := url.Values{}
	(&PaginationParams{Page: 3, PageSize: 25}).Apply(q)
	assert.Equal(t, "3", q.Get("page"))
	assert.Equal(t, "25", q.Get("page_size"))

	var nilParams *PaginationParams
	empty := url.Values{}
	nilParams.Apply(empty)
	assert.Empty(t, empty)
}

func TestNewPaginationDerivesTotalPages(t *testing.T) {
	p := NewPagination(2, 10, 25, 0)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	last := NewPagination(3, 10, 25, 3)
	assert.False(t, last.HasNext)
}
