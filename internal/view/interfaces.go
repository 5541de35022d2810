package view

import (
	"github.com/jbweber/strata/internal/boot"
	"github.com/jbweber/strata/internal/devices"
	"github.com/jbweber/strata/internal/labels"
)

// deviceGraph defines the device graph queries needed to build snapshots.
//
// In production, this is satisfied by *devices.Model.
type deviceGraph interface {
	Roots() []devices.Device
	ZPools() []*devices.ZPool
	Datasets(pool *devices.ZPool) []*devices.ZFS
	ParentOf(p *devices.Partition) (devices.Device, bool)
	OnRemoteStorage(d devices.Device) bool
	HasInUsePartition(d devices.Device) bool
}

// resolver defines the label operations needed to build snapshots.
//
// In production, this is satisfied by *labels.Resolver.
type resolver interface {
	Annotations(d devices.Device) []string
	Desc(d devices.Device) (string, error)
	Label(d devices.Device, form labels.LabelForm) (string, error)
	UsageLabels(d devices.Device) ([]string, error)
	Effective(p *devices.Partition) labels.Effective
}

// gapAnalyzer interleaves partitions and gaps.
//
// In production, this is satisfied by *gaps.Analyzer.
type gapAnalyzer interface {
	PartsAndGaps(d devices.Device) []devices.Device
}

// bootAnalyzer answers the boot device questions.
//
// In production, this is satisfied by *boot.Analyzer.
type bootAnalyzer interface {
	Bootloader() boot.Bootloader
	IsBootDevice(d devices.Device) bool
	CanBeBootDevice(d devices.Device) bool
}
