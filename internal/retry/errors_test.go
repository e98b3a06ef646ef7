package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type classifiedError struct{ retryable bool }

func (e classifiedError) Error() string { return "classified" }
func (e classifiedError) Retryable() bool { return e.retryable }

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("network down"), true},
		{"permanent", Permanent(errors.New("bad request")), false},
		{"panicked", fmt.Errorf("%w: boom", ErrPanicked), false},
		{"canceled", fmt.Errorf("call: %w", context.Canceled), false},
		{"deadline", context.DeadlineExceeded, true},
		{"classified retryable", fmt.Errorf("wrap: %w", classifiedError{retryable: true}), true},
		{"classified terminal", fmt.Errorf("wrap: %w", classifiedError{retryable: false}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestPermanent(t *testing.T) {
	assert.NoError(t, Permanent(nil))

	base := errors.New("base")
	err := Permanent(base)
	assert.ErrorIs(t, err, ErrPermanent)
	assert.ErrorIs(t, err, base)
}
