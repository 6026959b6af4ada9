package types

// ControlType is the function a control performs
type ControlType string

const (
	ControlTypePreventive ControlType = "preventive"
	ControlTypeDetective  ControlType = "detective"
	ControlTypeCorrective ControlType = "corrective"
)

func AllControlTypes() []ControlType {
	return []ControlType{ControlTypePreventive, ControlTypeDetective, ControlTypeCorrective}
}

func (t ControlType) IsValid() bool  { return oneOf(t, AllControlTypes()) }
func (t ControlType) String() string { return string(t) }

func ParseControlType(s string) (ControlType, error) {
	return parseEnum[ControlType]("control type", s)
}

// ControlStatus is the implementation state of a control
type ControlStatus string

const (
	ControlStatusNotImplemented       ControlStatus = "not-implemented"
	ControlStatusPlanned              ControlStatus = "planned"
	ControlStatusPartiallyImplemented ControlStatus = "partially-implemented"
	ControlStatusImplemented          ControlStatus = "implemented"
)

func AllControlStatuses() []ControlStatus {
	return []ControlStatus{
		ControlStatusNotImplemented,
		ControlStatusPlanned,
		ControlStatusPartiallyImplemented,
		ControlStatusImplemented,
	}
}

func (s ControlStatus) IsValid() bool  { return oneOf(s, AllControlStatuses()) }
func (s ControlStatus) String() string { return string(s) }

func ParseControlStatus(s string) (ControlStatus, error) {
	return parseEnum[ControlStatus]("control status", s)
}
