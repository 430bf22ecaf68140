// Package persistence provides runtime state persistence for the humidity
// sensor.
//
// The sensor keeps its Measured Value Store in memory only. This package
// stores a JSON snapshot of it so the last reading and the Identify
// attributes survive a restart of the sensor process.
package persistence
