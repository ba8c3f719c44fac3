package vm

// State is where the VM is in its lifecycle. Halted and Faulted are terminal.
type State int

const (
	Running State = iota
	Halted
	Faulted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Faulted:
		return "faulted"
	default:
		return "unknown"
	}
}

func (s State) Terminal() bool {
	return s != Running
}
