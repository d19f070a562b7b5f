package repository

import (
	"testing"

	"storefinder-api/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		direction string
		expected  string
		expectErr bool
	}{
		{
			name:     "default is ascending distance",
			expected: "ORDER BY distance_meters ASC",
		},
		{
			name:      "explicit distance descending",
			sortBy:    "distance",
			direction: "desc",
			expected:  "ORDER BY distance_meters DESC",
		},
		{
			name:     "name sort keeps distance tiebreak",
			sortBy:   "name",
			expected: "ORDER BY s.name ASC, distance_meters ASC",
		},
		{
			name:      "sort field is case-insensitive",
			sortBy:    "City",
			direction: "DESC",
			expected:  "ORDER BY s.city DESC, distance_meters ASC",
		},
		{
			name:      "unknown field rejected",
			sortBy:    "rating",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, err := orderClause(tt.sortBy, tt.direction)
			if tt.expectErr {
				assert.ErrorIs(t, err, models.ErrInvalidArgument)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, clause)
		})
	}
}
