package pulse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommonCreatesFactoryOnce(t *testing.T) {
	calls := 0
	headless := NewHeadlessFactory()

	common := NewCommon(func() (Factory, error) {
		calls++
		return headless, nil
	}, nil)

	assert.False(t, common.Initialized())

	first, err := common.Factory()
	require.NoError(t, err)

	second, err := common.Factory()
	require.NoError(t, err)

	assert.Same(t, headless, first)
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
	assert.True(t, common.Initialized())

	common.Release()
	assert.True(t, headless.Released)
	assert.False(t, common.Initialized())
}

func TestCommonUsesFallback(t *testing.T) {
	fallback := NewHeadlessFactory()

	common := NewCommon(
		func() (Factory, error) { return nil, errors.New("no adapter") },
		fallback.Func(),
	)

	factory, err := common.Factory()
	require.NoError(t, err)
	assert.Same(t, fallback, factory)
}

func TestCommonReportsBothErrors(t *testing.T) {
	errPrimary := errors.New("no adapter")
	errFallback := errors.New("no software adapter")

	common := NewCommon(
		func() (Factory, error) { return nil, errPrimary },
		func() (Factory, error) { return nil, errFallback },
	)

	_, err := common.Factory()
	require.ErrorIs(t, err, errPrimary)
	require.ErrorIs(t, err, errFallback)
	assert.False(t, common.Initialized())
}

func TestCommonWithoutPrimary(t *testing.T) {
	_, err := NewCommon(nil, nil).Factory()
	require.ErrorIs(t, err, ErrNoFactory)
}
