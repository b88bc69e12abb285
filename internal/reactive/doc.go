// Package reactive provides the small set of observable primitives the
// translator view model is built from: value cells with change
// notification, derived streams (map, combine, merge), subscription bags for
// explicit teardown, and a debouncer that can hand its work to an owning
// event loop.
package reactive
