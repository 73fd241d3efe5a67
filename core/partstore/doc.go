// Package partstore defines the record store contract and the Book that a
// session uses to read, update and insert parts. Backends (CSV file,
// SQLite, memory) register themselves by type name and are selected from
// configuration with New.
package partstore
