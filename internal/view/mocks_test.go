package view

import (
	"github.com/jbweber/strata/internal/devices"
	"github.com/jbweber/strata/internal/labels"
)

// mockResolver is a mock implementation of the resolver interface for testing.
// Calls without a configured func go to delegate.
type mockResolver struct {
	delegate resolver

	// Configurable behavior
	usageLabelsFunc func(d devices.Device) ([]string, error)
	labelFunc       func(d devices.Device, form labels.LabelForm) (string, error)

	// Call tracking
	usageLabelsCalls []string
}

func newMockResolver(delegate resolver) *mockResolver {
	return &mockResolver{delegate: delegate}
}

func (m *mockResolver) Annotations(d devices.Device) []string {
	return m.delegate.Annotations(d)
}

func (m *mockResolver) Desc(d devices.Device) (string, error) {
	return m.delegate.Desc(d)
}

func (m *mockResolver) Label(d devices.Device, form labels.LabelForm) (string, error) {
	if m.labelFunc != nil {
		return m.labelFunc(d, form)
	}
	return m.delegate.Label(d, form)
}

func (m *mockResolver) UsageLabels(d devices.Device) ([]string, error) {
	m.usageLabelsCalls = append(m.usageLabelsCalls, d.ID())
	if m.usageLabelsFunc != nil {
		return m.usageLabelsFunc(d)
	}
	return m.delegate.UsageLabels(d)
}

func (m *mockResolver) Effective(p *devices.Partition) labels.Effective {
	return m.delegate.Effective(p)
}

// mockGapAnalyzer returns a fixed child list for every device.
type mockGapAnalyzer struct {
	children []devices.Device
}

func (m *mockGapAnalyzer) PartsAndGaps(d devices.Device) []devices.Device {
	return m.children
}
