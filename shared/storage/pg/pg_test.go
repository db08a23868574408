package pg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestConstraint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"check violation", &pq.Error{Code: "23514", Constraint: "reviews_rate_check"}, "reviews_rate_check"},
		{"wrapped unique violation", fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Constraint: "cards_pkey"}), "cards_pkey"},
		{"other pg error", &pq.Error{Code: "42P01", Constraint: "x"}, ""},
		{"plain error", errors.New("boom"), ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Constraint(tt.err))
		})
	}
}

func TestDefaultPool(t *testing.T) {
	assert.Positive(t, DefaultPool.MaxOpen)
	assert.LessOrEqual(t, DefaultPool.MaxIdle, DefaultPool.MaxOpen)
	assert.Positive(t, DefaultPool.MaxLifetime)
}
