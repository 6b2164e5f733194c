// Package tmp102 provides a driver for the TMP102 temperature sensor.
// It exposes a two-phase measurement API in shutdown mode:
//
//	d.OneShot()              // start a single conversion (fast)
//	err := d.Collect(&s)     // fetch when ready; returns ErrNotReady while busy
//
// For convenience, d.Read() performs one-shot + bounded polling until ready.
//
// The driver avoids floating-point on the hot path; readings are signed
// Q8.4 fixed-point sixteenths of a degree Celsius, which is what the
// format engine's %{8.4}k conversion expects.
package tmp102

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

// Default I2C address (ADD0 tied to ground).
const Address = 0x48

// Register pointers.
const (
	regTemperature = 0x00
	regConfig      = 0x01
	regTLow        = 0x02
	regTHigh       = 0x03
)

// Config register bits.
const (
	cfgOneShot  = 0x80 // MSB: OS, write 1 to start, reads 1 when done
	cfgShutdown = 0x01 // MSB: SD
	cfgExtended = 0x10 // LSB: EM, 13-bit mode
)

// Errors returned by the driver.
var (
	ErrTimeout  = errors.New("tmp102: timeout")
	ErrNotReady = errors.New("tmp102: not ready")
)

// Config controls non-hardware behaviour. All fields are optional.
type Config struct {
	// Address defaults to 0x48 if zero.
	Address uint16
	// PollInterval is used by Read() between Collect() attempts for ErrNotReady.
	// Default 5 ms.
	PollInterval time.Duration
	// CollectTimeout bounds the total wait in Read(). Default 100 ms.
	// The datasheet puts a single conversion at 26 ms typical.
	CollectTimeout time.Duration
	// Extended selects 13-bit mode, raising the range above 128 degrees C.
	Extended bool
}

// Device wraps an I2C connection to a TMP102 device.
type Device struct {
	bus     drivers.I2C
	Address uint16

	cfg Config
	buf [3]byte // reuse buffer to avoid allocations
	raw int16   // last raw sample, sixteenths of a degree
}

// New creates a new TMP102 connection. The I2C bus must already be
// configured. This function only creates the Device object; it does not
// touch the device.
func New(bus drivers.I2C) Device {
	return Device{
		bus:     bus,
		Address: Address,
	}
}

// Configure puts the device in shutdown mode so that conversions run
// one-shot under driver control, and applies optional config.
func (d *Device) Configure(cfgs ...Config) error {
	if len(cfgs) > 0 {
		c := cfgs[0]
		if c.Address != 0 {
			d.Address = c.Address
		}
		if c.PollInterval <= 0 {
			c.PollInterval = 5 * time.Millisecond
		}
		if c.CollectTimeout <= 0 {
			c.CollectTimeout = 100 * time.Millisecond
		}
		d.cfg = c
	} else {
		d.cfg = Config{
			Address:        d.Address,
			PollInterval:   5 * time.Millisecond,
			CollectTimeout: 100 * time.Millisecond,
		}
	}

	msb := byte(cfgShutdown)
	lsb := byte(0xA0) // datasheet reset value: 4 Hz, no extras
	if d.cfg.Extended {
		lsb |= cfgExtended
	}
	return d.bus.Tx(d.Address, []byte{regConfig, msb, lsb}, nil)
}

// OneShot starts a single conversion. It is a quick register write with
// no blocking; the device needs ~26 ms to convert.
func (d *Device) OneShot() error {
	if d.cfg.PollInterval == 0 {
		if err := d.Configure(); err != nil {
			return err
		}
	}
	lsb := byte(0xA0)
	if d.cfg.Extended {
		lsb |= cfgExtended
	}
	return d.bus.Tx(d.Address, []byte{regConfig, cfgOneShot | cfgShutdown, lsb}, nil)
}

// Collect attempts to read one measurement into the device cache and
// the provided sample. While the conversion is still running,
// ErrNotReady is returned. Any bus error is returned as-is.
func (d *Device) Collect(out *Sample) error {
	data := d.buf[:2]
	if err := d.bus.Tx(d.Address, []byte{regConfig}, data); err != nil {
		return err
	}
	// OS reads 0 while a one-shot conversion is in progress.
	if data[0]&cfgOneShot == 0 {
		return ErrNotReady
	}

	if err := d.bus.Tx(d.Address, []byte{regTemperature}, data); err != nil {
		return err
	}

	var raw int16
	if d.cfg.Extended {
		// 13-bit: sixteenths arrive in bits 12..0.
		raw = int16(uint16(data[0])<<8|uint16(data[1])) >> 3
	} else {
		raw = int16(uint16(data[0])<<8|uint16(data[1])) >> 4
	}
	d.raw = raw

	if out != nil {
		out.Raw = raw
	}
	return nil
}

// Read performs a full measurement cycle: OneShot followed by bounded
// polling until Collect succeeds or the timeout elapses.
func (d *Device) Read(out *Sample) error {
	if err := d.OneShot(); err != nil {
		return err
	}
	deadline := time.Now().Add(d.cfg.CollectTimeout)
	for {
		err := d.Collect(out)
		switch err {
		case nil:
			return nil
		case ErrNotReady:
			if time.Now().After(deadline) {
				return ErrTimeout
			}
			time.Sleep(d.cfg.PollInterval)
			continue
		default:
			return err
		}
	}
}

// Sample holds one raw reading in sixteenths of a degree Celsius.
type Sample struct {
	Raw int16
}

// Fixed returns the reading as a signed Q8.4 fixed-point value for
// %{8.4}k. In extended mode values past the Q8.4 range saturate.
func (s Sample) Fixed() int16 {
	const max = 1<<11 - 1
	const min = -(1 << 11)
	if s.Raw > max {
		return max
	}
	if s.Raw < min {
		return min
	}
	return s.Raw
}

// DeciCelsius returns tenths of a degree Celsius.
func (s Sample) DeciCelsius() int32 {
	return (int32(s.Raw) * 10) / 16
}

// MilliCelsius returns thousandths of a degree Celsius.
func (s Sample) MilliCelsius() int32 {
	return (int32(s.Raw) * 1000) / 16
}

// Celsius returns degrees C (float). Prefer the fixed-point accessors
// on targets without hardware floating point.
func (s Sample) Celsius() float32 {
	return float32(s.Raw) / 16
}

// Accessors operating on the last cached sample.

func (d *Device) Raw() int16 { return d.raw }

func (d *Device) DeciCelsius() int32 {
	return Sample{Raw: d.raw}.DeciCelsius()
}
