package labels

import "github.com/jbweber/strata/internal/devices"

// deviceGraph defines the device graph queries needed by the resolvers.
//
// In production, this is satisfied by *devices.Model.
type deviceGraph interface {
	// ParentOf returns the disk or raid a partition belongs to
	ParentOf(p *devices.Partition) (devices.Device, bool)

	// ConstructedDevice returns the device consuming d, or nil
	ConstructedDevice(d devices.Device, mode devices.EncryptionMode) devices.Device

	// Members returns the devices consumed by d in creation order
	Members(d devices.Device) []devices.Device

	// LogicalVolumes returns the logical volumes of a volume group
	LogicalVolumes(vg *devices.VolGroup) []*devices.LogicalVolume

	// Container returns the container a raid belongs to, or nil
	Container(r *devices.Raid) *devices.Raid

	// Subvolumes returns the raids recorded inside a container
	Subvolumes(container *devices.Raid) []*devices.Raid
}

// espDetector decides whether a partition is an EFI system partition.
//
// In production, this is satisfied by *boot.Analyzer.
type espDetector interface {
	IsESP(p *devices.Partition) bool
}
