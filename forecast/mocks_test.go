package forecast_test

import (
	"github.com/toejough/doubleexamples/forecast"
	"github.com/toejough/doubleexamples/internal/double"
)

// ProfitForecasterMock is a test double for forecast.ProfitForecaster.
type ProfitForecasterMock struct {
	ProfitAt *double.Method[int32, float64]
}

// Interface returns the mock as a forecast.ProfitForecaster implementation.
func (m *ProfitForecasterMock) Interface() forecast.ProfitForecaster {
	return &profitForecasterImpl{mock: m}
}

// MockProfitForecaster creates a new, unconfigured ProfitForecasterMock.
func MockProfitForecaster() *ProfitForecasterMock {
	return &ProfitForecasterMock{
		ProfitAt: double.NewMethod[int32, float64](),
	}
}

// profitForecasterImpl implements forecast.ProfitForecaster by forwarding to the mock.
type profitForecasterImpl struct {
	mock *ProfitForecasterMock
}

func (impl *profitForecasterImpl) ProfitAt(timestamp int32) float64 {
	return impl.mock.ProfitAt.Call(timestamp)
}
