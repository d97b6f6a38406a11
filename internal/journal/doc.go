// Package journal records every exercise a run solved in a small sqlite
// database, one run per process identified by a UUID.
package journal
