// Package batch reads seed files that pre-populate the translation cache
// before a session starts.
package batch
