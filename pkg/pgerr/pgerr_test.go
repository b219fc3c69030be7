package pgerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization failure", &pq.Error{Code: CodeSerializationFailure}, true},
		{"deadlock", &pq.Error{Code: CodeDeadlockDetected}, true},
		{"lock not available", &pq.Error{Code: CodeLockNotAvailable}, true},
		{"wrapped serialization failure", fmt.Errorf("exec: %w", &pq.Error{Code: CodeSerializationFailure}), true},
		{"unique violation", &pq.Error{Code: CodeUniqueViolation}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestUniqueViolationAndConstraint(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pq.Error{Code: CodeUniqueViolation, Constraint: "uq_bookings_user_slot"})

	assert.True(t, IsUniqueViolation(err))
	assert.Equal(t, "uq_bookings_user_slot", Constraint(err))
	assert.Equal(t, "", Constraint(errors.New("other")))
}
