// Package store provides the file-backed part store backends. Importing it
// registers the "csv" and "sqlite" types with partstore.
package store
