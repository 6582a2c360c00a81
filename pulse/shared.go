package pulse

// Shared is a reference counted handle to a Device. The device is released
// together with the last reference.
//
// Shared is not safe for concurrent use, like the device it wraps it belongs
// to the thread that created it.
type Shared struct {
	device Device
	refs   int
}

// Share wraps the device. The returned handle holds the first reference.
func Share(device Device) *Shared {
	return &Shared{device: device, refs: 1}
}

// Retain adds a reference and returns the handle itself.
func (s *Shared) Retain() *Shared {
	s.alive()
	s.refs++
	return s
}

// Release drops a reference. Dropping the last one releases the device.
func (s *Shared) Release() {
	s.alive()

	s.refs--
	if s.refs == 0 {
		s.device.Release()
		s.device = nil
	}
}

// Refs returns the number of live references.
func (s *Shared) Refs() int {
	return s.refs
}

// Device returns the wrapped device. It must not be used after the last reference
// was released.
func (s *Shared) Device() Device {
	s.alive()
	return s.device
}

func (s *Shared) Clear(color Color) error {
	return s.Device().Clear(color)
}

func (s *Shared) FillRect(rect Rectangle2u, color Color) error {
	return s.Device().FillRect(rect, color)
}

func (s *Shared) Present() error {
	return s.Device().Present()
}

func (s *Shared) alive() {
	if s.refs <= 0 {
		panic("pulse: device used after its last reference was released")
	}
}
