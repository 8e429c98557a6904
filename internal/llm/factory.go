package llm

// NewCompleter creates the completion client for the given configuration.
// When testMode is set the returned client is the offline stub, which answers
// every stage with deterministic payloads and never touches the network.
func NewCompleter(cfg ClientConfig, testMode bool) (Completer, error) {
	if testMode {
		return &StubClient{}, nil
	}
	return newOpenAIClient(cfg)
}
