// Package types defines the data model shared by every savelink package:
// path classifications, the backup record and operation results.
package types
