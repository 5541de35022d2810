// Package naming provides device naming conventions: generated device ids
// and kernel device paths for partitions.
//
// These rules are shared by the graph loader and the client view builder so
// that ids and paths stay stable between the two.
package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// DiskID returns the id for a disk discovered at devPath.
// Format: disk-{basename}
//
// Example: /dev/nvme0n1 → disk-nvme0n1
func DiskID(devPath string) string {
	base := filepath.Base(strings.TrimSpace(devPath))
	if base == "" || base == "." || base == "/" {
		return GeneratedID("disk")
	}
	return fmt.Sprintf("disk-%s", base)
}

// PartitionID returns the id of partition number on a parent device.
// Format: {parentID}-part{number}
//
// Example: disk-sda, 2 → disk-sda-part2
func PartitionID(parentID string, number int) string {
	return fmt.Sprintf("%s-part%d", parentID, number)
}

// GeneratedID returns a unique id for a device of the given kind when no
// naming convention applies.
// Format: {kind}-{uuid}
func GeneratedID(kind string) string {
	return fmt.Sprintf("%s-%s", kind, uuid.NewString())
}

// PartitionPath returns the kernel device path of partition number on the
// disk at diskPath. A "p" separator is inserted when the disk path ends in a
// digit, matching the kernel's naming for nvme, mmcblk, and md devices.
//
// Examples:
//
//	/dev/sda, 1     → /dev/sda1
//	/dev/nvme0n1, 2 → /dev/nvme0n1p2
func PartitionPath(diskPath string, number int) string {
	if diskPath == "" {
		return ""
	}
	last := rune(diskPath[len(diskPath)-1])
	if unicode.IsDigit(last) {
		return fmt.Sprintf("%sp%d", diskPath, number)
	}
	return fmt.Sprintf("%s%d", diskPath, number)
}

// NamedID returns the id of a named constructed device such as a raid, a
// volume group or a zpool. An empty name falls back to GeneratedID.
// Format: {kind}-{name}
//
// Example: lvm_volgroup, ubuntu-vg → lvm_volgroup-ubuntu-vg
func NamedID(kind, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return GeneratedID(kind)
	}
	return fmt.Sprintf("%s-%s", kind, name)
}
