package labels

import "github.com/jbweber/strata/internal/devices"

// Effective is the configuration a partition ends up with once transparent
// layers above it are unwrapped.
type Effective struct {
	Mount     string
	Format    string
	Encrypted bool
}

// Effective resolves the user-visible mount, format and encryption of p.
//
// Only the shapes produced by guided partitioning are resolved:
//
//   - p is a zpool vdev: the pool's mountpoint and fstype, encrypted when the
//     pool uses a LUKS keystore
//   - p (or a dm-crypt layer on p) is a PV of a volume group with exactly one
//     logical volume: that volume's mount and format
//   - p is under dm-crypt and nothing else resolved: the dm-crypt mount and
//     format, encrypted
//
// Any other shape, including volume groups with zero or several logical
// volumes, reports p's own mount and format unencrypted.
func (r *Resolver) Effective(p *devices.Partition) Effective {
	switch cd := r.graph.ConstructedDevice(p, devices.SkipEncryption).(type) {
	case *devices.ZPool:
		return Effective{
			Mount:     cd.Mountpoint,
			Format:    cd.FSType,
			Encrypted: cd.EncryptionStyle == devices.EncryptionLUKSKeystore,
		}
	case *devices.VolGroup:
		if lvs := r.graph.LogicalVolumes(cd); len(lvs) == 1 {
			_, encrypted := r.graph.ConstructedDevice(p, devices.ReportEncryption).(*devices.DMCrypt)
			return Effective{Mount: lvs[0].Mount(), Format: lvs[0].Format(), Encrypted: encrypted}
		}
	}

	if crypt, ok := r.graph.ConstructedDevice(p, devices.ReportEncryption).(*devices.DMCrypt); ok {
		return Effective{Mount: crypt.Mount(), Format: crypt.Format(), Encrypted: true}
	}
	return Effective{Mount: p.Mount(), Format: p.Format()}
}
