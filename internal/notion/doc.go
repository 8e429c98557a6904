// Package notion is a thin facade over the Notion REST API: a bearer-token
// HTTP client with cursor pagination, a run-scoped response cache, plain-text
// extraction for blocks and properties, and builders for the block payloads
// the pipeline writes.
package notion
