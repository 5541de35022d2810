// Package boot answers bootloader questions about devices: which partitions
// are EFI system partitions, which disks are boot devices, and which disks
// could be made into one.
package boot

import (
	"fmt"
	"strings"

	"github.com/jbweber/strata/internal/devices"
)

// Bootloader is the firmware boot mechanism of the target machine.
type Bootloader string

const (
	BootloaderUEFI Bootloader = "UEFI"
	BootloaderBIOS Bootloader = "BIOS"
	BootloaderPReP Bootloader = "PREP"
	BootloaderNone Bootloader = "NONE"
)

// Minimum free space needed to add a bootloader partition.
const (
	ESPMinSize      int64 = 538 << 20
	PRePMinSize     int64 = 8 << 20
	BIOSGrubMinSize int64 = 1 << 20
)

// ParseBootloader converts a string to a Bootloader. Case-insensitive.
func ParseBootloader(s string) (Bootloader, error) {
	switch b := Bootloader(strings.ToUpper(strings.TrimSpace(s))); b {
	case BootloaderUEFI, BootloaderBIOS, BootloaderPReP, BootloaderNone:
		return b, nil
	default:
		return "", fmt.Errorf("invalid bootloader: %s (must be UEFI, BIOS, PREP or NONE)", s)
	}
}

type graph interface {
	ParentOf(p *devices.Partition) (devices.Device, bool)
	Partitions(parent devices.Device) []*devices.Partition
	OnRemoteStorage(d devices.Device) bool
}

type gapFinder interface {
	LargestGap(d devices.Device) *devices.Gap
}

// Analyzer implements the boot predicates for one bootloader.
type Analyzer struct {
	graph      graph
	gaps       gapFinder
	bootloader Bootloader
}

// New returns an Analyzer. An empty bootloader defaults to UEFI.
func New(g graph, gaps gapFinder, bootloader Bootloader) *Analyzer {
	if bootloader == "" {
		bootloader = BootloaderUEFI
	}
	return &Analyzer{graph: g, gaps: gaps, bootloader: bootloader}
}

// Bootloader returns the bootloader the analyzer answers for.
func (a *Analyzer) Bootloader() Bootloader {
	return a.bootloader
}

// IsESP reports whether p is an EFI system partition. On GPT that is the
// boot flag; on msdos the boot flag together with a FAT filesystem.
func (a *Analyzer) IsESP(p *devices.Partition) bool {
	if p.Flag != devices.FlagBoot {
		return false
	}
	parent, ok := a.graph.ParentOf(p)
	if !ok {
		return false
	}
	switch ptableOf(parent) {
	case devices.PtableGPT:
		return true
	case devices.PtableMSDOS:
		switch p.Format() {
		case "vfat", "fat32", "fat16":
			return true
		}
	}
	return false
}

// IsBootDevice reports whether the bootloader will be installed to d.
func (a *Analyzer) IsBootDevice(d devices.Device) bool {
	if disk, ok := d.(*devices.Disk); ok && disk.GrubDevice {
		return true
	}
	for _, p := range a.graph.Partitions(d) {
		if !p.GrubDevice {
			continue
		}
		if p.Flag == devices.FlagPReP || a.IsESP(p) {
			return true
		}
	}
	return false
}

// CanBeBootDevice reports whether d could hold the bootloader, either by
// reusing an existing bootloader partition or by adding one to free space.
func (a *Analyzer) CanBeBootDevice(d devices.Device) bool {
	if a.bootloader == BootloaderNone {
		return false
	}
	ptable := ptableOf(d)
	if ptable == devices.PtableUnsupported || a.graph.OnRemoteStorage(d) {
		return false
	}

	parts := a.graph.Partitions(d)
	switch a.bootloader {
	case BootloaderUEFI:
		for _, p := range parts {
			if a.IsESP(p) {
				return true
			}
		}
		return a.hasGap(d, ESPMinSize)
	case BootloaderPReP:
		for _, p := range parts {
			if p.Flag == devices.FlagPReP {
				return true
			}
		}
		return a.hasGap(d, PRePMinSize)
	case BootloaderBIOS:
		if ptable != devices.PtableGPT {
			return true
		}
		for _, p := range parts {
			if p.Flag == devices.FlagBIOSGrub {
				return true
			}
		}
		return a.hasGap(d, BIOSGrubMinSize)
	}
	return false
}

func (a *Analyzer) hasGap(d devices.Device, size int64) bool {
	g := a.gaps.LargestGap(d)
	return g != nil && g.Size >= size
}

func ptableOf(d devices.Device) string {
	switch d := d.(type) {
	case *devices.Disk:
		return d.Ptable
	case *devices.Raid:
		return d.Ptable
	}
	return ""
}
