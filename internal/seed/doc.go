// Package seed loads records from YAML or JSON files, either to populate the
// stores at start-up or to check record files offline.
package seed
