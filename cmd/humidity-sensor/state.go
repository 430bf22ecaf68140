package main

import (
	"github.com/Nilao18/matter-ophelia4/pkg/humidity"
	"github.com/Nilao18/matter-ophelia4/pkg/persistence"
)

// restoreState loads saved state into the sensor. It reports false when no
// state file exists yet.
func restoreState(store *persistence.SensorStateStore, sensor *humidity.Sensor) (bool, error) {
	saved, err := store.Load()
	if err != nil || saved == nil {
		return false, err
	}
	sensor.Restore(humidity.State{
		MeasuredValue:    saved.MeasuredValue,
		MinMeasuredValue: saved.MinMeasuredValue,
		MaxMeasuredValue: saved.MaxMeasuredValue,
		IdentifyTime:     saved.IdentifyTime,
		IdentifyType:     saved.IdentifyType,
	})
	return true, nil
}

// saveState writes the current sensor state.
func saveState(store *persistence.SensorStateStore, sensor *humidity.Sensor) error {
	st := sensor.Snapshot()
	return store.Save(&persistence.SensorState{
		MeasuredValue:    st.MeasuredValue,
		MinMeasuredValue: st.MinMeasuredValue,
		MaxMeasuredValue: st.MaxMeasuredValue,
		IdentifyTime:     st.IdentifyTime,
		IdentifyType:     st.IdentifyType,
	})
}
