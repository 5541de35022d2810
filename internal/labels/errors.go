package labels

import (
	"errors"
	"fmt"

	"github.com/jbweber/strata/internal/devices"
)

// ErrUnsupportedDevice is matched by every *UnsupportedDeviceError.
var ErrUnsupportedDevice = errors.New("unsupported device")

// UnsupportedDeviceError is returned when an operation has no rule for a
// device variant.
type UnsupportedDeviceError struct {
	Op     string
	Device devices.Device
}

func (e *UnsupportedDeviceError) Error() string {
	return fmt.Sprintf("%s: unsupported device %s %q", e.Op, e.Device.Kind(), e.Device.ID())
}

// Is reports ErrUnsupportedDevice as a match.
func (e *UnsupportedDeviceError) Is(target error) bool {
	return target == ErrUnsupportedDevice
}

func unsupported(op string, d devices.Device) error {
	return &UnsupportedDeviceError{Op: op, Device: d}
}
