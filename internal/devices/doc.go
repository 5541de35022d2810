// Package devices provides the in-memory storage device graph consumed by
// the label resolvers and the client view builder.
//
// Device Variants:
//
// The set of device variants is closed. Every variant implements the sealed
// Device interface, so code outside this package can switch over:
//   - Disk: a local, remote, or multipath block device
//   - Partition: a partition of a Disk or a Raid
//   - Raid: an MD RAID array (or an IMSM container)
//   - VolGroup / LogicalVolume: LVM volume groups and their logical volumes
//   - ZPool / ZFS: ZFS pools and their datasets
//   - DMCrypt: a dm-crypt encryption layer
//   - Gap: unallocated space on a Disk or Raid (produced by internal/gaps)
//
// Constructed Devices:
//
// A device may be consumed by at most one higher-level device: a RAID member,
// an LVM physical volume, a zpool vdev, or the backing volume of a dm-crypt
// layer. The Model records these as id-indexed back-references and never as
// ownership pointers:
//
//	partition-1 -> dm_crypt-0 -> lvm_volgroup-0
//
// ConstructedDevice follows one such edge. With SkipEncryption an immediately
// following dm-crypt layer is treated as transparent and its own consumer is
// returned instead:
//
//	cd := model.ConstructedDevice(part, devices.SkipEncryption)   // lvm_volgroup-0
//	cd = model.ConstructedDevice(part, devices.ReportEncryption)  // dm_crypt-0
//
// The Model is read-only once built. Callers that mutate the graph must build
// a new Model and serialize mutation with any reads.
package devices
