package balance

import (
	"context"
	"testing"

	"github.com/rvasanth/distributor-console/pkg/ledger"
	"github.com/rvasanth/distributor-console/pkg/ledger/mocks"
	"github.com/rvasanth/distributor-console/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestFetch(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockAPI := new(mocks.API)
		mockAPI.On("WalletBalance", mock.Anything, models.RoleDistributor, "dist-1").
			Return(decimal.RequireFromString("4321.09"), nil)

		cache := New(mockAPI)

		// Act
		snapshot := cache.Fetch(context.Background(), "dist-1", models.RoleDistributor)

		// Assert
		assert.Equal(t, "dist-1", snapshot.OwnerID)
		assert.True(t, snapshot.Amount.Equal(decimal.RequireFromString("4321.09")))
		assert.False(t, snapshot.FetchedAt.IsZero())
		assert.True(t, cache.Current().Amount.Equal(snapshot.Amount))
		mockAPI.AssertExpectations(t)
	})

	t.Run("Failure Resolves To Zero", func(t *testing.T) {
		// Arrange: an unknown balance blocks spending instead of enabling it.
		mockAPI := new(mocks.API)
		mockAPI.On("WalletBalance", mock.Anything, models.RoleDistributor, "dist-1").
			Return(decimal.Zero, &ledger.NetworkError{Op: "wallet balance"})

		cache := New(mockAPI)

		// Act
		snapshot := cache.Fetch(context.Background(), "dist-1", models.RoleDistributor)

		// Assert
		assert.True(t, snapshot.Amount.IsZero())
		assert.True(t, cache.Current().Amount.IsZero())
	})
}

func TestRefresh(t *testing.T) {
	t.Run("Reuses Last Parameters", func(t *testing.T) {
		// Arrange
		mockAPI := new(mocks.API)
		mockAPI.On("WalletBalance", mock.Anything, models.RoleMaster, "m-1").
			Return(decimal.NewFromInt(100), nil).Once()
		mockAPI.On("WalletBalance", mock.Anything, models.RoleMaster, "m-1").
			Return(decimal.NewFromInt(80), nil).Once()

		cache := New(mockAPI)
		cache.Fetch(context.Background(), "m-1", models.RoleMaster)

		// Act
		snapshot := cache.Refresh(context.Background())

		// Assert
		assert.True(t, snapshot.Amount.Equal(decimal.NewFromInt(80)))
		mockAPI.AssertNumberOfCalls(t, "WalletBalance", 2)
	})

	t.Run("Before Any Fetch", func(t *testing.T) {
		cache := New(new(mocks.API))

		snapshot := cache.Refresh(context.Background())

		assert.True(t, snapshot.Amount.IsZero())
	})
}

func TestAdvisory(t *testing.T) {
	// Arrange
	mockAPI := new(mocks.API)
	mockAPI.On("WalletBalance", mock.Anything, models.RoleDistributor, "dist-1").
		Return(decimal.NewFromInt(500), nil)

	cache := New(mockAPI)
	cache.Fetch(context.Background(), "dist-1", models.RoleDistributor)

	// Act + Assert: display-only arithmetic, floored at zero, and never
	// written back.
	assert.True(t, cache.Advisory(decimal.NewFromInt(200)).Equal(decimal.NewFromInt(300)))
	assert.True(t, cache.Advisory(decimal.NewFromInt(900)).IsZero())
	assert.True(t, cache.Current().Amount.Equal(decimal.NewFromInt(500)))
}

func TestClear(t *testing.T) {
	// Arrange
	mockAPI := new(mocks.API)
	mockAPI.On("WalletBalance", mock.Anything, models.RoleDistributor, "dist-1").
		Return(decimal.NewFromInt(500), nil)

	cache := New(mockAPI)
	cache.Fetch(context.Background(), "dist-1", models.RoleDistributor)

	// Act
	cache.Clear()

	// Assert: no snapshot survives, and a refresh no longer knows an owner.
	assert.True(t, cache.Current().Amount.IsZero())
	snapshot := cache.Refresh(context.Background())
	assert.True(t, snapshot.Amount.IsZero())
	mockAPI.AssertNumberOfCalls(t, "WalletBalance", 1)
}
