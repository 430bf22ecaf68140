package model

// Status is the outcome of an external attribute dispatch call.
type Status uint8

const (
	// StatusSuccess indicates the value was copied.
	StatusSuccess Status = 0x00

	// StatusFailure indicates the call was not served.
	StatusFailure Status = 0x01
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusFailure:
		return "FAILURE"
	default:
		return "UNKNOWN"
	}
}

// OK returns true for StatusSuccess.
func (s Status) OK() bool {
	return s == StatusSuccess
}
