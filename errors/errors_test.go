package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorClassString(t *testing.T) {
	assert.Equal(t, "usage", ErrorUsage.String())
	assert.Equal(t, "init", ErrorInit.String())
	assert.Equal(t, "lifecycle", ErrorLifecycle.String())
	assert.Equal(t, "fatal", ErrorFatal.String())
	assert.Equal(t, "unknown", ErrorClass(99).String())
}

func TestWrapFormat(t *testing.T) {
	base := errors.New("boom")
	err := Wrap(base, "Engine", "Start", "run workers")
	require.Error(t, err)
	assert.Equal(t, "Engine.Start: run workers failed: boom", err.Error())
	assert.True(t, errors.Is(err, base))
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "Engine", "Start", "anything"))
	assert.NoError(t, WrapUsage(nil, "Engine", "Start", "anything"))
	assert.NoError(t, WrapInit(nil, "Engine", "Start", "anything"))
	assert.NoError(t, WrapLifecycle(nil, "Engine", "Start", "anything"))
	assert.NoError(t, WrapFatal(nil, "Engine", "Start", "anything"))
}

func TestClassifiedWrappers(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name  string
		wrap  func(error, string, string, string) error
		check func(error) bool
		class ErrorClass
	}{
		{"usage", WrapUsage, IsUsage, ErrorUsage},
		{"init", WrapInit, IsInit, ErrorInit},
		{"lifecycle", WrapLifecycle, IsLifecycle, ErrorLifecycle},
		{"fatal", WrapFatal, IsFatal, ErrorFatal},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.wrap(base, "CLI", "ParseArgs", "parse producer count")
			require.Error(t, err)
			assert.True(t, tc.check(err))
			assert.Equal(t, tc.class, Classify(err))

			var ce *ClassifiedError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tc.class, ce.Class)
			assert.Equal(t, "CLI", ce.Component)
			assert.Equal(t, "ParseArgs", ce.Operation)
			assert.True(t, errors.Is(err, base))
		})
	}
}

func TestStandardVariableClassification(t *testing.T) {
	assert.True(t, IsUsage(ErrInvalidWorkerCount))
	assert.True(t, IsUsage(fmt.Errorf("context: %w", ErrMissingArguments)))
	assert.True(t, IsInit(ErrInvalidConfig))
	assert.True(t, IsInit(ErrInvalidCapacity))
	assert.True(t, IsLifecycle(ErrAlreadyStarted))
	assert.True(t, IsLifecycle(ErrNotInitialized))
	assert.True(t, IsFatal(ErrConservationViolated))
	assert.True(t, IsFatal(ErrBufferNotDrained))
}

func TestClassifyDefaultsToFatal(t *testing.T) {
	assert.Equal(t, ErrorFatal, Classify(errors.New("something unexpected")))
}

func TestClassificationSurvivesWrapping(t *testing.T) {
	err := WrapLifecycle(ErrAlreadyStarted, "Pool", "Run", "start workers")
	wrapped := fmt.Errorf("outer: %w", err)
	assert.True(t, IsLifecycle(wrapped))
	assert.False(t, IsUsage(wrapped))
}

func TestNilChecks(t *testing.T) {
	assert.False(t, IsUsage(nil))
	assert.False(t, IsInit(nil))
	assert.False(t, IsLifecycle(nil))
	assert.False(t, IsFatal(nil))
}
