package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageRequestClamps(t *testing.T) {
	req := NewPageRequest(-3, 0, "", "")
	assert.Equal(t, 0, req.Page)
	assert.Equal(t, 12, req.Size)

	req = NewPageRequest(2, 500, "", "")
	assert.Equal(t, 100, req.Size)
	assert.Equal(t, 200, req.Offset())
}

func TestOrderClauseWhitelistsColumns(t *testing.T) {
	columns := map[string]string{"name": "venues.name"}

	req := NewPageRequest(0, 12, "name", "desc")
	assert.Equal(t, "venues.name DESC", req.OrderClause(columns, "venues.id ASC"))

	req = NewPageRequest(0, 12, "name", "bogus")
	assert.Equal(t, "venues.name ASC", req.OrderClause(columns, "venues.id ASC"))

	// Unknown sort fields fall back instead of reaching the database
	req = NewPageRequest(0, 12, "password; DROP TABLE venues", "asc")
	assert.Equal(t, "venues.id ASC", req.OrderClause(columns, "venues.id ASC"))
}

func TestNewPage(t *testing.T) {
	req := NewPageRequest(1, 10, "", "")

	page := NewPage([]int{1, 2, 3}, req, 23)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Size)
	assert.Equal(t, int64(23), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)

	empty := NewPage[int](nil, req, 0)
	assert.NotNil(t, empty.Content)
	assert.Empty(t, empty.Content)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestNewPageZeroSize(t *testing.T) {
	// PageRequest built by hand, bypassing NewPageRequest's clamping
	page := NewPage([]int{1, 2}, PageRequest{Page: 0, Size: 0}, 2)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, int64(2), page.TotalElements)
}
