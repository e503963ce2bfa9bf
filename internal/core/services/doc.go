// Package services wires the pipeline packages (fields, validation,
// templating, assembly) to the driven stores and exposes the result
// through the driving ports.
package services
