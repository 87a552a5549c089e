// Package cli implements the patientctl command line tool, which checks
// record files against the same schemas the API enforces.
package cli
