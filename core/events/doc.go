// Package events defines the events emitted on the bus after the part
// store has been written.
package events
