package pulse

import (
	"errors"
	"fmt"
	"log/slog"
)

// Common holds the one Factory of a runtime. The factory is created on first
// use. If the primary constructor fails, the fallback is tried.
type Common struct {
	primary  FactoryFunc
	fallback FactoryFunc

	factory Factory
}

func NewCommon(primary, fallback FactoryFunc) *Common {
	return &Common{primary: primary, fallback: fallback}
}

// Factory returns the factory, creating it if needed.
func (c *Common) Factory() (Factory, error) {
	if c.factory != nil {
		return c.factory, nil
	}

	if c.primary == nil {
		return nil, ErrNoFactory
	}

	factory, err := c.primary()
	if err == nil {
		c.factory = factory
		return factory, nil
	}

	if c.fallback == nil {
		return nil, fmt.Errorf("create gpu factory: %w", err)
	}

	slog.Warn("Primary gpu factory not available, trying fallback", slog.Any("err", err))

	factory, errFallback := c.fallback()
	if errFallback != nil {
		return nil, fmt.Errorf("create gpu factory: %w", errors.Join(err, errFallback))
	}

	c.factory = factory
	return factory, nil
}

// Initialized reports whether the factory was already created.
func (c *Common) Initialized() bool {
	return c.factory != nil
}

func (c *Common) Release() {
	if c.factory != nil {
		c.factory.Release()
		c.factory = nil
	}
}
