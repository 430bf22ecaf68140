// Package host emulates the parts of a Matter host framework that an
// application endpoint talks to.
//
// A Framework holds a fixed number of dynamic endpoint slots. Applications
// register an endpoint descriptor into a slot and bind an AttributeStore for
// their externally stored attributes. Peers (here the CLI shell and tests)
// read and write attributes by ID. The framework routes each access:
//
//   - Descriptor lists are built by the framework from the registered
//     descriptor and encoded as CBOR.
//   - Attributes flagged ExternalStorage go to the AttributeStore.
//   - Everything else is served from the attribute's metadata default.
//
// ReportingAttributeChange bumps the cluster data version and delivers a
// Report to subscribers synchronously.
package host
