// Package llm provides the completion client and response contract layer for
// the triage pipeline. It talks to an OpenAI-compatible chat-completion
// endpoint and hides model-family quirks from the pipeline stages: whether a
// model accepts a JSON-mode parameter, whether it accepts a system role, and
// how to dig a JSON object out of free-form model output.
package llm
