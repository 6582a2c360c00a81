package glimpse

// Payload is attached to a window creation request and handed back with
// the MessageCreate of that window. Ownership of its value is transferred
// exactly once by calling Take.
type Payload struct {
	value any
	taken bool
}

func NewPayload(value any) *Payload {
	return &Payload{value: value}
}

// Take returns the value and marks the payload as consumed.
// Taking a payload twice is a protocol violation and panics.
func (p *Payload) Take() any {
	if p == nil {
		panic("glimpse: window created without payload")
	}

	if p.taken {
		panic("glimpse: payload already taken")
	}

	value := p.value
	p.value = nil
	p.taken = true

	return value
}

// Taken reports whether Take was already called.
func (p *Payload) Taken() bool {
	return p != nil && p.taken
}
