// Package artifact traces pipeline stage outputs to a JSONL file. Each entry
// is an envelope carrying the workflow id from the context, so every LLM
// exchange for one note can be replayed or diffed after a run.
package artifact
