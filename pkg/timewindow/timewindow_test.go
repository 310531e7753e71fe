package timewindow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Run("Plain window", func(t *testing.T) {
		w := Parse("10:30")
		assert.False(t, w.Fallback)
		assert.False(t, w.Wraps)
		assert.Equal(t, TimeOfDay{Hour: 9, Minute: 30}, w.Lower)
		assert.Equal(t, TimeOfDay{Hour: 11, Minute: 30}, w.Upper)
	})

	t.Run("Midnight request wraps", func(t *testing.T) {
		w := Parse("00:00")
		assert.True(t, w.Wraps)
		assert.Equal(t, TimeOfDay{Hour: 23, Minute: 0}, w.Lower)
		assert.Equal(t, TimeOfDay{Hour: 1, Minute: 0}, w.Upper)
	})

	t.Run("Late evening wraps", func(t *testing.T) {
		w := Parse("23:30")
		assert.True(t, w.Wraps)
		assert.Equal(t, TimeOfDay{Hour: 22, Minute: 30}, w.Lower)
		assert.Equal(t, TimeOfDay{Hour: 0, Minute: 30}, w.Upper)
	})

	t.Run("Unparseable input falls back", func(t *testing.T) {
		for _, input := range []string{"", "1030", "10:30:00", "ab:cd", "25:00", "10:75"} {
			w := Parse(input)
			assert.True(t, w.Fallback, "input %q should fall back", input)
			assert.Equal(t, input, w.Raw)
		}
	})
}

func TestWindowMatches(t *testing.T) {
	t.Run("Requested time itself always matches", func(t *testing.T) {
		for hour := 2; hour <= 21; hour++ {
			w := Parse(TimeOfDay{Hour: hour, Minute: 15}.String())
			assert.True(t, w.Matches(TimeOfDay{Hour: hour, Minute: 15}))
		}
	})

	t.Run("Edges inclusive, just past edge excluded", func(t *testing.T) {
		w := Parse("10:30")
		assert.True(t, w.Matches(TimeOfDay{Hour: 9, Minute: 30}))
		assert.True(t, w.Matches(TimeOfDay{Hour: 11, Minute: 30}))
		assert.False(t, w.Matches(TimeOfDay{Hour: 9, Minute: 29}))
		assert.False(t, w.Matches(TimeOfDay{Hour: 11, Minute: 31}))
	})

	t.Run("Midnight wraparound", func(t *testing.T) {
		w := Parse("00:00")
		assert.True(t, w.Matches(TimeOfDay{Hour: 23, Minute: 0}))
		assert.True(t, w.Matches(TimeOfDay{Hour: 1, Minute: 0}))
		assert.True(t, w.Matches(TimeOfDay{Hour: 0, Minute: 30}))
		assert.False(t, w.Matches(TimeOfDay{Hour: 12, Minute: 0}))
	})

	t.Run("Late evening wraparound", func(t *testing.T) {
		w := Parse("23:30")
		assert.True(t, w.Matches(TimeOfDay{Hour: 0, Minute: 15}))
		assert.True(t, w.Matches(TimeOfDay{Hour: 23, Minute: 45}))
		assert.False(t, w.Matches(TimeOfDay{Hour: 12, Minute: 0}))
		assert.False(t, w.Matches(TimeOfDay{Hour: 0, Minute: 31}))
	})

	t.Run("Fallback matches at or after requested", func(t *testing.T) {
		w := Window{Fallback: true, Raw: "10:30"}
		assert.True(t, w.Matches(TimeOfDay{Hour: 10, Minute: 30}))
		assert.True(t, w.Matches(TimeOfDay{Hour: 22, Minute: 0}))
		assert.False(t, w.Matches(TimeOfDay{Hour: 9, Minute: 0}))
	})
}
