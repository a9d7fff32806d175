// Package memory provides in-process implementations of driven ports.
//
// WordStore backs the "memory" storage backend: words live only for the
// lifetime of the process. ConfigStore is used by tests and by runs that
// must not touch the user's configuration file.
package memory
