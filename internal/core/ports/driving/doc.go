// Package driving provides interfaces for use cases exposed to callers
// (primary/inbound ports): ingesting a source document and retrieving
// the chunks most relevant to a query.
package driving
