// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the embedding service, the source fetchers,
// and the material store. Services depend on these interfaces only,
// never on concrete adapters, so every collaborator can be replaced with
// a fake in tests.
package driven
