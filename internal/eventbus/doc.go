// Package eventbus provides an in-process fan-out bus used to report record
// changes to observers such as the audit log.
package eventbus
