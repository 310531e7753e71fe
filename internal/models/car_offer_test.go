package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarOfferIsActiveAt(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	before := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	after := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Open-ended offer is always active", func(t *testing.T) {
		offer := &CarOffer{IsActive: true}
		assert.True(t, offer.IsActiveAt(now))
	})

	t.Run("Inactive flag disables regardless of dates", func(t *testing.T) {
		offer := &CarOffer{IsActive: false}
		assert.False(t, offer.IsActiveAt(now))
	})

	t.Run("Within window", func(t *testing.T) {
		offer := &CarOffer{IsActive: true, StartDate: &before, EndDate: &after}
		assert.True(t, offer.IsActiveAt(now))
	})

	t.Run("Before window starts", func(t *testing.T) {
		offer := &CarOffer{IsActive: true, StartDate: &after}
		assert.False(t, offer.IsActiveAt(now))
	})

	t.Run("After window ends", func(t *testing.T) {
		offer := &CarOffer{IsActive: true, EndDate: &before}
		assert.False(t, offer.IsActiveAt(now))
	})

	t.Run("Window boundaries are inclusive", func(t *testing.T) {
		offer := &CarOffer{IsActive: true, StartDate: &now, EndDate: &now}
		assert.True(t, offer.IsActiveAt(now))
	})
}

func TestBestOffer(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Highest discount wins", func(t *testing.T) {
		offers := []CarOffer{
			{ID: "a", DiscountPercentage: 10, IsActive: true},
			{ID: "b", DiscountPercentage: 30, IsActive: true},
			{ID: "c", DiscountPercentage: 20, IsActive: true},
		}

		best := BestOffer(offers, now)
		require.NotNil(t, best)
		assert.Equal(t, "b", best.ID)
	})

	t.Run("Inactive and expired offers are skipped", func(t *testing.T) {
		offers := []CarOffer{
			{ID: "a", DiscountPercentage: 50, IsActive: false},
			{ID: "b", DiscountPercentage: 40, IsActive: true, EndDate: &past},
			{ID: "c", DiscountPercentage: 5, IsActive: true},
		}

		best := BestOffer(offers, now)
		require.NotNil(t, best)
		assert.Equal(t, "c", best.ID)
	})

	t.Run("No active offers", func(t *testing.T) {
		offers := []CarOffer{
			{ID: "a", DiscountPercentage: 50, IsActive: false},
		}
		assert.Nil(t, BestOffer(offers, now))
	})

	t.Run("Empty slice", func(t *testing.T) {
		assert.Nil(t, BestOffer(nil, now))
	})
}

func TestCreateCarOfferRequestValidate(t *testing.T) {
	t.Run("Defaults currency", func(t *testing.T) {
		req := &CreateCarOfferRequest{CarID: "car-1", PriceWithoutDriver: 100, PriceWithDriver: 150}
		require.NoError(t, req.Validate())
		assert.Equal(t, "USD", req.Currency)
	})

	t.Run("Discount out of range", func(t *testing.T) {
		req := &CreateCarOfferRequest{CarID: "car-1", DiscountPercentage: 120}
		assert.Error(t, req.Validate())
	})

	t.Run("Dates must come together", func(t *testing.T) {
		start := "2026-03-01"
		req := &CreateCarOfferRequest{CarID: "car-1", StartDate: &start}
		assert.Error(t, req.Validate())
	})
}
