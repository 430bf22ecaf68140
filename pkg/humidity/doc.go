// Package humidity implements the dynamic endpoint attribute store of a
// relative humidity sensor.
//
// A Sensor owns everything the host framework needs from the application
// for endpoint 1:
//
//   - the endpoint descriptor (Descriptor, Identify and Relative Humidity
//     Measurement clusters) and its device type (0x0307, revision 2),
//   - the Measured Value Store (State),
//   - the external attribute read/write dispatch (ReadAttribute,
//     WriteAttribute) the host calls for attributes flagged external,
//   - the one-shot endpoint registration (InitEndpoint),
//   - the change notifier (SetMeasuredValue).
//
// # Dispatch
//
// Reads and writes resolve (cluster, attribute) through a static table built
// from the cluster metadata. Each cell knows its byte width and how to load
// (and, for writable attributes, store) the value. Values are copied in
// little-endian order. Dispatch has exactly two outcomes, StatusSuccess and
// StatusFailure.
//
// # Reporting
//
// SetMeasuredValue always reports, even when the value did not change. No
// debouncing, rate limiting or bounds checking is applied; values outside
// [MinMeasuredValue, MaxMeasuredValue] are the caller's responsibility.
//
// # Concurrency
//
// All entry points are synchronous. State is guarded by a mutex so a sensor
// polling goroutine may run beside the host's dispatch thread. The host is
// called without the lock held.
package humidity
