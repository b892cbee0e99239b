// Package domain contains the core entities of the context subsystem:
// source materials, their embedded chunks, similarity results, and the
// sentinel errors shared across pipelines and adapters.
//
// The domain layer has no dependencies on adapters or external services.
package domain
