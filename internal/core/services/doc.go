// Package services implements the use cases behind the driving ports:
// the two ingestion pipelines (URL scrape and PDF extract) and the
// retrieval pipeline. Services orchestrate the segmenter, the jargon
// extractor, the similarity ranker, and the injected driven ports.
package services
