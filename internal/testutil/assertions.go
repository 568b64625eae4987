package testutil

import (
	"testing"

	"github.com/junioryono/beans"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertBeanResolvable checks if a bean can be looked up by type
func AssertBeanResolvable[T any](t *testing.T, ctx *beans.Context) T {
	t.Helper()
	bean, err := beans.GetBeanAs[T](ctx)
	require.NoError(t, err, "failed to get bean of type %T", *new(T))
	require.NotNil(t, bean, "bean is nil")
	return bean
}

// AssertBeanNotFound checks if a lookup by name fails with a not found error
func AssertBeanNotFound(t *testing.T, ctx *beans.Context, name string) {
	t.Helper()
	_, err := ctx.GetBean(name)
	assert.Error(t, err)
	assert.True(t, beans.IsNotFound(err), "expected bean not found error, got: %v", err)
}

// AssertNotStarted checks if an error reports a context that is not started
func AssertNotStarted(t *testing.T, err error) {
	t.Helper()
	assert.Error(t, err)
	assert.True(t, beans.IsNotStarted(err), "expected context not started error, got: %v", err)
}

// AssertCycle checks if an error is a dependency cycle naming one of nodes
func AssertCycle(t *testing.T, err error, nodes ...string) *beans.CycleError {
	t.Helper()
	require.Error(t, err)
	require.True(t, beans.IsCycle(err), "expected cycle error, got: %v", err)

	cycle := AssertErrorType[*beans.CycleError](t, err)
	if len(nodes) > 0 {
		assert.Contains(t, nodes, cycle.Node)
	}
	return cycle
}

// AssertErrorType checks if an error is of a specific type
func AssertErrorType[T error](t *testing.T, err error, msgAndArgs ...interface{}) T {
	t.Helper()
	var target T
	assert.ErrorAs(t, err, &target, msgAndArgs...)
	return target
}
