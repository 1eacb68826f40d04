package summarize

import (
	"context"
	"net/http"
)

const defaultCustomModel = "default"

// customProvider summarizes via a user-supplied OpenAI-compatible endpoint,
// e.g. a self-hosted inference server.
type customProvider struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

func newCustomProvider(endpoint, apiKey, model string, client *http.Client) *customProvider {
	if model == "" {
		model = defaultCustomModel
	}
	return &customProvider{endpoint: endpoint, apiKey: apiKey, model: model, client: client}
}

func (p *customProvider) Name() string {
	return "custom"
}

func (p *customProvider) Summarize(ctx context.Context, report, instructions string) (string, error) {
	text, err := chatCompletion(ctx, p.client, p.endpoint, p.apiKey, p.model,
		buildPrompt(report, instructions))
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: err}
	}
	return text, nil
}
