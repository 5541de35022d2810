// Package labels resolves the human-facing strings shown for storage devices
// and the effective configuration of partitions.
//
// A Resolver answers five questions about a device in a read-only device
// graph:
//
//   - Annotations: short tags such as "existing", "new", "PReP" or "primary ESP"
//   - Desc: the class of thing a device is, e.g. "partition of local disk"
//   - Label: the identifying string, e.g. a disk serial or "partition 2 of vda"
//   - UsageLabels: how a device is consumed, e.g. "PV of LVM volume group vg0"
//   - Effective: the mount point, filesystem type and encryption a partition
//     ends up with once transparent layers are unwrapped
//
// Desc and Label are defined for a fixed subset of the device variants. Asking
// for any other variant returns an *UnsupportedDeviceError.
//
// Effective deliberately resolves only the shapes produced by guided
// partitioning: a partition consumed by a zpool, by a volume group holding
// exactly one logical volume (optionally under dm-crypt), or by dm-crypt
// alone. Anything else reports the partition's own raw values.
//
// Usage:
//
//	m, _ := devices.NewModel(devs...)
//	r := labels.New(m, boot.New(m, gaps.New(m), boot.BootloaderUEFI))
//	desc, err := r.Desc(disk)
package labels
