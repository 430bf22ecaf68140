package humidity

// MeasuredValueNull is the null encoding of the nullable measurement
// attributes.
const MeasuredValueNull uint16 = 0xFFFF

// Measurement bounds in 0.01 %RH.
const (
	DefaultMinMeasuredValue uint16 = 0
	DefaultMaxMeasuredValue uint16 = 10000
)

// State is the Measured Value Store of the sensor.
type State struct {
	MeasuredValue    uint16
	MinMeasuredValue uint16
	MaxMeasuredValue uint16

	IdentifyTime uint16
	IdentifyType uint8
}

// DefaultState returns the load-time defaults.
func DefaultState() State {
	return State{
		MeasuredValue:    0,
		MinMeasuredValue: DefaultMinMeasuredValue,
		MaxMeasuredValue: DefaultMaxMeasuredValue,
	}
}
