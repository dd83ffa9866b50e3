// Package types defines the Store and Table interfaces, entity types,
// and standard error values for the kagproj registry.
package types
