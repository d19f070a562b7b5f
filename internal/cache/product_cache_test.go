package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductLookup is a mock implementation of the ProductLookup interface
type MockProductLookup struct {
	mock.Mock
}

func (m *MockProductLookup) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductLookup) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestCachedProductLookup_NilClientPassesThrough(t *testing.T) {
	next := new(MockProductLookup)
	next.On("ExistsByName", mock.Anything, "bread").Return(true, nil)
	next.On("ExistsByID", mock.Anything, int64(4)).Return(false, nil)

	cached := NewCachedProductLookup(nil, next, time.Minute)

	exists, err := cached.ExistsByName(context.Background(), "bread")
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = cached.ExistsByID(context.Background(), 4)
	assert.NoError(t, err)
	assert.False(t, exists)

	next.AssertExpectations(t)
}

func TestCachedProductLookup_PropagatesLookupError(t *testing.T) {
	next := new(MockProductLookup)
	next.On("ExistsByName", mock.Anything, "bread").Return(false, assert.AnError)

	cached := NewCachedProductLookup(nil, next, time.Minute)

	_, err := cached.ExistsByName(context.Background(), "bread")
	assert.ErrorIs(t, err, assert.AnError)
}
