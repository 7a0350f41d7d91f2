package coinflip_test

import (
	"github.com/toejough/doubleexamples/coinflip"
	"github.com/toejough/doubleexamples/internal/double"
)

// RngMock is a test double for coinflip.Rng.
type RngMock struct {
	Float64 *double.Method[struct{}, float64]
}

// Interface returns the mock as a coinflip.Rng implementation.
func (m *RngMock) Interface() coinflip.Rng {
	return &rngImpl{mock: m}
}

// MockRng creates a new, unconfigured RngMock.
func MockRng() *RngMock {
	return &RngMock{
		Float64: double.NewMethod[struct{}, float64](),
	}
}

// rngImpl implements coinflip.Rng by forwarding to the mock.
type rngImpl struct {
	mock *RngMock
}

func (impl *rngImpl) Float64() float64 {
	return impl.mock.Float64.Call(struct{}{})
}
