package selector

import (
	"context"
	"testing"

	"github.com/rvasanth/distributor-console/pkg/ledger"
	"github.com/rvasanth/distributor-console/pkg/ledger/mocks"
	"github.com/rvasanth/distributor-console/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testRetailers() []models.Entity {
	return []models.Entity{
		{ID: "r1", Role: models.RoleRetailer, Name: "Alpha", Phone: "111"},
		{ID: "r2", Role: models.RoleRetailer, Name: "Beta", Phone: "222"},
	}
}

func TestSearch(t *testing.T) {
	// Arrange
	mockAPI := new(mocks.API)
	mockAPI.On("ListEntities", mock.Anything, models.RoleRetailer, models.RoleDistributor, "d1", mock.Anything, 0).
		Return(testRetailers(), nil)

	s := New(mockAPI, models.RoleRetailer)
	assert.NoError(t, s.Load(context.Background(), models.RoleDistributor, "d1"))

	t.Run("Name Substring Case-Insensitive", func(t *testing.T) {
		visible := s.Search("al")
		assert.Len(t, visible, 1)
		assert.Equal(t, "Alpha", visible[0].Name)
	})

	t.Run("Phone Substring", func(t *testing.T) {
		visible := s.Search("22")
		assert.Len(t, visible, 1)
		assert.Equal(t, "Beta", visible[0].Name)
	})

	t.Run("Empty Query Restores Full List", func(t *testing.T) {
		s.Search("al")
		visible := s.Search("")
		assert.Len(t, visible, 2)
	})

	t.Run("No Match", func(t *testing.T) {
		assert.Empty(t, s.Search("zzz"))
	})

	// The list is fetched once; searching never re-queries.
	mockAPI.AssertNumberOfCalls(t, "ListEntities", 1)
}

func TestSelect(t *testing.T) {
	t.Run("Refetches Detail On Select", func(t *testing.T) {
		// Arrange: the detail record carries a fresher balance than the list.
		mockAPI := new(mocks.API)
		mockAPI.On("ListEntities", mock.Anything, models.RoleRetailer, models.RoleDistributor, "d1", mock.Anything, 0).
			Return(testRetailers(), nil)
		detail := &models.Entity{ID: "r1", Role: models.RoleRetailer, Name: "Alpha", Phone: "111"}
		mockAPI.On("GetEntity", mock.Anything, models.RoleRetailer, "r1").Return(detail, nil)

		s := New(mockAPI, models.RoleRetailer)
		assert.NoError(t, s.Load(context.Background(), models.RoleDistributor, "d1"))

		// Act
		selected, err := s.Select(context.Background(), "r1")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, detail, selected)
		assert.Equal(t, detail, s.Selected())
		mockAPI.AssertExpectations(t)
	})

	t.Run("Unknown Id", func(t *testing.T) {
		// Arrange
		mockAPI := new(mocks.API)
		mockAPI.On("ListEntities", mock.Anything, models.RoleRetailer, models.RoleDistributor, "d1", mock.Anything, 0).
			Return(testRetailers(), nil)

		s := New(mockAPI, models.RoleRetailer)
		assert.NoError(t, s.Load(context.Background(), models.RoleDistributor, "d1"))

		// Act
		_, err := s.Select(context.Background(), "nope")

		// Assert
		assert.ErrorIs(t, err, ErrUnknownEntity)
		mockAPI.AssertNotCalled(t, "GetEntity", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Detail Failure Keeps Previous Selection", func(t *testing.T) {
		// Arrange
		mockAPI := new(mocks.API)
		mockAPI.On("ListEntities", mock.Anything, models.RoleRetailer, models.RoleDistributor, "d1", mock.Anything, 0).
			Return(testRetailers(), nil)
		first := &models.Entity{ID: "r1", Name: "Alpha"}
		mockAPI.On("GetEntity", mock.Anything, models.RoleRetailer, "r1").Return(first, nil)
		mockAPI.On("GetEntity", mock.Anything, models.RoleRetailer, "r2").
			Return(nil, &ledger.NetworkError{Op: "get retailer"})

		s := New(mockAPI, models.RoleRetailer)
		assert.NoError(t, s.Load(context.Background(), models.RoleDistributor, "d1"))
		_, err := s.Select(context.Background(), "r1")
		assert.NoError(t, err)

		// Act
		_, err = s.Select(context.Background(), "r2")

		// Assert
		var netErr *ledger.NetworkError
		assert.ErrorAs(t, err, &netErr)
		assert.Equal(t, "r1", s.Selected().ID)
	})
}

func TestResetCascade(t *testing.T) {
	// Arrange: a parent distributor tier with a retailer tier hanging off
	// its reset hook, the way a master console wires them.
	mockAPI := new(mocks.API)
	mockAPI.On("ListEntities", mock.Anything, models.RoleDistributor, models.RoleMaster, "m1", mock.Anything, 0).
		Return([]models.Entity{{ID: "d1", Name: "North"}}, nil)
	mockAPI.On("ListEntities", mock.Anything, models.RoleRetailer, models.RoleDistributor, "d1", mock.Anything, 0).
		Return(testRetailers(), nil)
	mockAPI.On("GetEntity", mock.Anything, models.RoleRetailer, "r1").
		Return(&models.Entity{ID: "r1", Name: "Alpha"}, nil)

	distributors := New(mockAPI, models.RoleDistributor)
	retailers := New(mockAPI, models.RoleRetailer)
	distributors.OnReset(retailers.Reset)

	var downstreamResets int
	retailers.OnReset(func() { downstreamResets++ })

	assert.NoError(t, distributors.Load(context.Background(), models.RoleMaster, "m1"))
	assert.NoError(t, retailers.Load(context.Background(), models.RoleDistributor, "d1"))
	_, err := retailers.Select(context.Background(), "r1")
	assert.NoError(t, err)
	downstreamResets = 0

	// Act: resetting the parent tier wipes the child list, its selection
	// and everything registered below it.
	distributors.Reset()

	// Assert
	assert.False(t, retailers.Loaded())
	assert.Nil(t, retailers.Selected())
	assert.Empty(t, retailers.Entities())
	assert.Greater(t, downstreamResets, 0)
}
