package devices

import "strings"

// Kind identifies a device variant. Values match the curtin action types.
type Kind string

const (
	KindDisk          Kind = "disk"
	KindPartition     Kind = "partition"
	KindRaid          Kind = "raid"
	KindVolGroup      Kind = "lvm_volgroup"
	KindLogicalVolume Kind = "lvm_partition"
	KindZPool         Kind = "zpool"
	KindZFS           Kind = "zfs"
	KindDMCrypt       Kind = "dm_crypt"
	KindGap           Kind = "gap"
)

// Partition flags with special meaning to the resolvers.
const (
	FlagNone     = ""
	FlagBoot     = "boot"
	FlagPReP     = "prep"
	FlagBIOSGrub = "bios_grub"
	FlagExtended = "extended"
	FlagLogical  = "logical"
	FlagSwap     = "swap"
)

// Partition table kinds.
const (
	PtableGPT         = "gpt"
	PtableMSDOS       = "msdos"
	PtableVTOC        = "vtoc"
	PtableUnsupported = "unsupported"
)

// Metadata formats for RAID arrays.
const (
	MetadataIMSM = "imsm"
)

// Encryption styles for ZFS pools.
const (
	EncryptionLUKSKeystore = "luks_keystore"
	EncryptionNative       = "native"
)

// NVMe transports.
const (
	TransportPCIe = "pcie"
	TransportTCP  = "tcp"
)

// Device is implemented by every device variant. The interface is sealed so
// the variant set stays closed.
type Device interface {
	// ID returns the device id. Gaps have no id and return "".
	ID() string
	// Kind returns the variant.
	Kind() Kind

	device()
}

// Preserver is implemented by variants carrying a preserve flag.
type Preserver interface {
	Preserved() bool
}

// Formattable is implemented by variants that can directly carry a filesystem.
type Formattable interface {
	// Filesystem returns the filesystem on the device, or nil.
	Filesystem() *Filesystem
	// OriginalFSType returns the probed filesystem type of a pre-existing
	// device, or "" when none was recorded.
	OriginalFSType() string
}

// Mount is a mount entry for a filesystem. Path is empty for swap.
type Mount struct {
	Path string `yaml:"path,omitempty"`
}

// Filesystem is a format action attached to a volume.
type Filesystem struct {
	Type     string `yaml:"fstype"`
	Preserve bool   `yaml:"preserve,omitempty"`
	Mount    *Mount `yaml:"mount,omitempty"`
}

// MountPath returns the mount path or "" when the filesystem is unmounted.
func (f *Filesystem) MountPath() string {
	if f == nil || f.Mount == nil {
		return ""
	}
	return f.Mount.Path
}

// FSType returns the filesystem type or "" for a nil filesystem.
func (f *Filesystem) FSType() string {
	if f == nil {
		return ""
	}
	return f.Type
}

// IsMountable reports whether fstype is conventionally mounted at a path.
// Swap and unformatted volumes are not.
func IsMountable(fstype string) bool {
	switch fstype {
	case "", "swap":
		return false
	default:
		return true
	}
}

// NVMeController describes the controller of an NVMe disk.
type NVMeController struct {
	Transport string `yaml:"transport"`
}

// OSInfo is the os-prober result for a partition.
type OSInfo struct {
	Long    string `yaml:"long"`
	Label   string `yaml:"label"`
	Type    string `yaml:"type"`
	Subpath string `yaml:"subpath,omitempty"`
	Version string `yaml:"version,omitempty"`
}

// Disk is a whole block device.
type Disk struct {
	DiskID         string          `yaml:"id"`
	Size           int64           `yaml:"size"`
	Ptable         string          `yaml:"ptable,omitempty"`
	Preserve       bool            `yaml:"preserve,omitempty"`
	Multipath      bool            `yaml:"multipath,omitempty"`
	WWN            string          `yaml:"wwn,omitempty"`
	Serial         string          `yaml:"serial,omitempty"`
	Path           string          `yaml:"path,omitempty"`
	Model          string          `yaml:"model,omitempty"`
	Vendor         string          `yaml:"vendor,omitempty"`
	GrubDevice     bool            `yaml:"grub_device,omitempty"`
	NVMeController *NVMeController `yaml:"nvme_controller,omitempty"`
	FS             *Filesystem     `yaml:"fs,omitempty"`
	OriginalFS     string          `yaml:"original_fstype,omitempty"`
}

func (d *Disk) ID() string              { return d.DiskID }
func (d *Disk) Kind() Kind              { return KindDisk }
func (d *Disk) Preserved() bool         { return d.Preserve }
func (d *Disk) Filesystem() *Filesystem { return d.FS }
func (d *Disk) OriginalFSType() string  { return d.OriginalFS }
func (d *Disk) device()                 {}

// OnRemoteStorage reports whether the disk is reached over a fabric. Only
// NVMe-over-fabrics controllers report as remote.
func (d *Disk) OnRemoteStorage() bool {
	return d.NVMeController != nil && d.NVMeController.Transport != "" &&
		d.NVMeController.Transport != TransportPCIe
}

// Partition is a partition of a Disk or a Raid.
type Partition struct {
	PartitionID      string      `yaml:"id"`
	Device           string      `yaml:"device"`
	Number           int         `yaml:"number"`
	Size             int64       `yaml:"size"`
	Offset           int64       `yaml:"offset,omitempty"`
	Flag             string      `yaml:"flag,omitempty"`
	Preserve         bool        `yaml:"preserve,omitempty"`
	GrubDevice       bool        `yaml:"grub_device,omitempty"`
	Boot             bool        `yaml:"boot,omitempty"`
	Resize           *bool       `yaml:"resize,omitempty"`
	Wipe             string      `yaml:"wipe,omitempty"`
	InUse            bool        `yaml:"in_use,omitempty"`
	EstimatedMinSize *int64      `yaml:"estimated_min_size,omitempty"`
	Name             string      `yaml:"partition_name,omitempty"`
	OS               *OSInfo     `yaml:"os,omitempty"`
	FS               *Filesystem `yaml:"fs,omitempty"`
	OriginalFS       string      `yaml:"original_fstype,omitempty"`
}

func (p *Partition) ID() string              { return p.PartitionID }
func (p *Partition) Kind() Kind              { return KindPartition }
func (p *Partition) Preserved() bool         { return p.Preserve }
func (p *Partition) Filesystem() *Filesystem { return p.FS }
func (p *Partition) OriginalFSType() string  { return p.OriginalFS }
func (p *Partition) device()                 {}

// IsLogical reports whether the partition is a logical partition inside an
// msdos extended partition.
func (p *Partition) IsLogical() bool { return p.Flag == FlagLogical }

// Mount returns the raw mount path of the partition's own filesystem.
func (p *Partition) Mount() string { return p.FS.MountPath() }

// Format returns the raw filesystem type of the partition's own filesystem.
func (p *Partition) Format() string { return p.FS.FSType() }

// Raid is an MD RAID array. An IMSM container is a Raid with sub-volumes.
type Raid struct {
	RaidID     string      `yaml:"id"`
	Name       string      `yaml:"name"`
	RaidLevel  string      `yaml:"raidlevel"`
	Metadata   string      `yaml:"metadata,omitempty"`
	Container  string      `yaml:"container,omitempty"`
	Devices    []string    `yaml:"devices,omitempty"`
	Size       int64       `yaml:"size"`
	Ptable     string      `yaml:"ptable,omitempty"`
	Preserve   bool        `yaml:"preserve,omitempty"`
	Path       string      `yaml:"path,omitempty"`
	FS         *Filesystem `yaml:"fs,omitempty"`
	OriginalFS string      `yaml:"original_fstype,omitempty"`
}

func (r *Raid) ID() string              { return r.RaidID }
func (r *Raid) Kind() Kind              { return KindRaid }
func (r *Raid) Preserved() bool         { return r.Preserve }
func (r *Raid) Filesystem() *Filesystem { return r.FS }
func (r *Raid) OriginalFSType() string  { return r.OriginalFS }
func (r *Raid) device()                 {}

// Level returns the numeric part of the raid level, e.g. "5" for "RAID5".
func (r *Raid) Level() string {
	if len(r.RaidLevel) >= 4 && strings.EqualFold(r.RaidLevel[:4], "raid") {
		return r.RaidLevel[4:]
	}
	return r.RaidLevel
}

// VolGroup is an LVM volume group. Devices are kept in creation order.
type VolGroup struct {
	VolGroupID string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Devices    []string `yaml:"devices"`
	Size       int64    `yaml:"size,omitempty"`
	Preserve   bool     `yaml:"preserve,omitempty"`
}

func (v *VolGroup) ID() string      { return v.VolGroupID }
func (v *VolGroup) Kind() Kind      { return KindVolGroup }
func (v *VolGroup) Preserved() bool { return v.Preserve }
func (v *VolGroup) device()         {}

// LogicalVolume is an LVM logical volume inside a VolGroup.
type LogicalVolume struct {
	LogicalVolumeID string      `yaml:"id"`
	Name            string      `yaml:"name"`
	VolGroup        string      `yaml:"volgroup"`
	Size            int64       `yaml:"size,omitempty"`
	Preserve        bool        `yaml:"preserve,omitempty"`
	FS              *Filesystem `yaml:"fs,omitempty"`
	OriginalFS      string      `yaml:"original_fstype,omitempty"`
}

func (l *LogicalVolume) ID() string              { return l.LogicalVolumeID }
func (l *LogicalVolume) Kind() Kind              { return KindLogicalVolume }
func (l *LogicalVolume) Preserved() bool         { return l.Preserve }
func (l *LogicalVolume) Filesystem() *Filesystem { return l.FS }
func (l *LogicalVolume) OriginalFSType() string  { return l.OriginalFS }
func (l *LogicalVolume) device()                 {}

// Mount returns the mount path of the logical volume's filesystem.
func (l *LogicalVolume) Mount() string { return l.FS.MountPath() }

// Format returns the filesystem type of the logical volume.
func (l *LogicalVolume) Format() string { return l.FS.FSType() }

// ZPool is a ZFS pool built from one or more vdevs.
type ZPool struct {
	ZPoolID         string            `yaml:"id"`
	Pool            string            `yaml:"pool"`
	Mountpoint      string            `yaml:"mountpoint"`
	FSType          string            `yaml:"fstype,omitempty"`
	EncryptionStyle string            `yaml:"encryption_style,omitempty"`
	VDevs           []string          `yaml:"vdevs"`
	PoolProperties  map[string]string `yaml:"pool_properties,omitempty"`
	FSProperties    map[string]string `yaml:"fs_properties,omitempty"`
	DefaultFeatures bool              `yaml:"default_features,omitempty"`
	Preserve        bool              `yaml:"preserve,omitempty"`
}

func (z *ZPool) ID() string      { return z.ZPoolID }
func (z *ZPool) Kind() Kind      { return KindZPool }
func (z *ZPool) Preserved() bool { return z.Preserve }
func (z *ZPool) device()         {}

// ZFS is a dataset in a ZPool.
type ZFS struct {
	ZFSID      string            `yaml:"id"`
	Pool       string            `yaml:"pool"`
	Volume     string            `yaml:"volume"`
	Properties map[string]string `yaml:"properties,omitempty"`
}

func (z *ZFS) ID() string { return z.ZFSID }
func (z *ZFS) Kind() Kind { return KindZFS }
func (z *ZFS) device()    {}

// DMCrypt is a dm-crypt layer on top of another volume.
type DMCrypt struct {
	DMCryptID  string      `yaml:"id"`
	Volume     string      `yaml:"volume"`
	DMName     string      `yaml:"dm_name,omitempty"`
	Preserve   bool        `yaml:"preserve,omitempty"`
	FS         *Filesystem `yaml:"fs,omitempty"`
	OriginalFS string      `yaml:"original_fstype,omitempty"`
}

func (c *DMCrypt) ID() string              { return c.DMCryptID }
func (c *DMCrypt) Kind() Kind              { return KindDMCrypt }
func (c *DMCrypt) Preserved() bool         { return c.Preserve }
func (c *DMCrypt) Filesystem() *Filesystem { return c.FS }
func (c *DMCrypt) OriginalFSType() string  { return c.OriginalFS }
func (c *DMCrypt) device()                 {}

// Mount returns the mount path of the filesystem inside the encryption layer.
func (c *DMCrypt) Mount() string { return c.FS.MountPath() }

// Format returns the filesystem type inside the encryption layer.
func (c *DMCrypt) Format() string { return c.FS.FSType() }

// Gap is a contiguous unallocated region on a Disk or Raid.
type Gap struct {
	Device     string
	Offset     int64
	Size       int64
	Usable     bool
	InExtended bool
}

func (g *Gap) ID() string { return "" }
func (g *Gap) Kind() Kind { return KindGap }
func (g *Gap) device()    {}
