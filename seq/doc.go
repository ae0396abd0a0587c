// Package seq provides pure slice transformations.
//
// Every function allocates its own result and never writes to, or keeps
// a reference into, the slice it is given. The Try variants stop at the
// first error and return it as-is.
package seq
