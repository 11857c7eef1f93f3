package crop

// Mode is the interaction mode of the Controller.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDragging
	ModeResizing
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDragging:
		return "dragging"
	case ModeResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// MarshalText lets modes appear by name in JSON output.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }
