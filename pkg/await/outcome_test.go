package await

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess(t *testing.T) {
	t.Parallel()
	o := Success(5)

	assert.True(t, o.IsSuccess())
	assert.False(t, o.IsFailure())
	assert.False(t, o.IsEmpty())
	assert.Equal(t, 5, o.Result())
	assert.Equal(t, 5, o.ResultOr(7))
	assert.NoError(t, o.Err())
	assert.NotEqual(t, uuid.Nil, o.Id())
	assert.Equal(t, time.UTC, o.CreatedAt().Location())

	v, ok := o.Value()
	assert.True(t, ok)
	assert.Equal(t, 5, v)

	got, err := o.Get()
	require.NoError(t, err)
	assert.Equal(t, 5, got)
}

func TestFailure(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	o := Failure[int](boom)

	assert.False(t, o.IsSuccess())
	assert.True(t, o.IsFailure())
	assert.False(t, o.IsEmpty())
	assert.Zero(t, o.Result())
	assert.Equal(t, 7, o.ResultOr(7))
	assert.Same(t, boom, o.Err())

	v, ok := o.Value()
	assert.False(t, ok)
	assert.Zero(t, v)
}

func TestGet_FailureRaisesInvalidStateWithCause(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")

	_, err := Failure[string](boom).Get()

	require.Error(t, err)
	assert.ErrorIs(t, err, InvalidState)
	assert.ErrorIs(t, err, boom)
}

func TestEmptyOutcome(t *testing.T) {
	t.Parallel()

	assert.True(t, Outcome[int]{}.IsEmpty())
	assert.True(t, Failure[int](nil).IsEmpty())
	assert.True(t, Outcome[int]{}.IsFailure())
}

func TestMapValue_Success(t *testing.T) {
	t.Parallel()
	o := Success(21)

	mapped, err := MapValue(o, func(v int) string { return strconv.Itoa(v * 2) })

	require.NoError(t, err)
	assert.True(t, mapped.IsSuccess())
	assert.Equal(t, "42", mapped.Result())
	assert.NotEqual(t, o.Id(), mapped.Id())
	assert.Equal(t, 21, o.Result())
}

func TestMapValue_FailureIsInvalidState(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	o := Failure[int](boom)
	id := o.Id()

	called := false
	_, err := MapValue(o, func(v int) int {
		called = true
		return v
	})

	assert.ErrorIs(t, err, InvalidState)
	assert.False(t, called)
	assert.True(t, o.IsFailure())
	assert.Same(t, boom, o.Err())
	assert.Equal(t, id, o.Id())
}

func TestMapFailure_Failure(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	wrapped := errors.New("wrapped")

	mapped, err := Failure[int](boom).MapFailure(func(err error) error {
		assert.Same(t, boom, err)
		return wrapped
	})

	require.NoError(t, err)
	assert.True(t, mapped.IsFailure())
	assert.Same(t, wrapped, mapped.Err())
}

func TestMapFailure_SuccessIsInvalidState(t *testing.T) {
	t.Parallel()
	o := Success("ok")

	called := false
	same, err := o.MapFailure(func(err error) error {
		called = true
		return err
	})

	assert.ErrorIs(t, err, InvalidState)
	assert.False(t, called)
	assert.True(t, o.IsSuccess())
	assert.Equal(t, "ok", o.Result())
	assert.Equal(t, o.Id(), same.Id())
}

func TestOutcomeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Outcome{42}", Success(42).String())
	assert.Equal(t, "Outcome{err=boom}", Failure[int](errors.New("boom")).String())
}
