package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	t.Run("Middle page", func(t *testing.T) {
		data := []string{"a", "b", "c"}
		page := NewPage(data, 2, 3, 3, 10)

		assert.Equal(t, 2, page.CurrentPage)
		assert.Equal(t, 4, page.LastPage)
		assert.Equal(t, 3, page.PerPage)
		assert.Equal(t, 10, page.Total)
		assert.Equal(t, 4, page.From)
		assert.Equal(t, 6, page.To)
	})

	t.Run("Last partial page", func(t *testing.T) {
		page := NewPage([]string{"j"}, 4, 3, 1, 10)

		assert.Equal(t, 4, page.LastPage)
		assert.Equal(t, 10, page.From)
		assert.Equal(t, 10, page.To)
	})

	t.Run("Empty result set", func(t *testing.T) {
		page := NewPage([]string{}, 1, 15, 0, 0)

		assert.Equal(t, 1, page.CurrentPage)
		assert.Equal(t, 1, page.LastPage)
		assert.Equal(t, 0, page.From)
		assert.Equal(t, 0, page.To)
	})

	t.Run("Page and per_page clamped to minimum", func(t *testing.T) {
		page := NewPage(nil, 0, 0, 0, 5)

		assert.Equal(t, 1, page.CurrentPage)
		assert.Equal(t, 1, page.PerPage)
		assert.Equal(t, 5, page.LastPage)
	})
}
