package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	geminiEndpointFormat = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"
	defaultGeminiModel   = "gemini-1.5-flash"
)

// geminiProvider summarizes via the Google Gemini generateContent API.
type geminiProvider struct {
	apiKey string
	model  string
	client *http.Client
}

func newGeminiProvider(apiKey, model string, client *http.Client) *geminiProvider {
	if model == "" {
		model = defaultGeminiModel
	}
	return &geminiProvider{apiKey: apiKey, model: model, client: client}
}

func (p *geminiProvider) Name() string {
	return "gemini"
}

func (p *geminiProvider) Summarize(ctx context.Context, report, instructions string) (string, error) {
	text, err := p.call(ctx, buildPrompt(report, instructions))
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: err}
	}
	return text, nil
}

func (p *geminiProvider) call(ctx context.Context, prompt string) (string, error) {
	type part struct {
		Text string `json:"text"`
	}
	type content struct {
		Parts []part `json:"parts"`
	}
	payload := struct {
		Contents []content `json:"contents"`
	}{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	endpoint := fmt.Sprintf(geminiEndpointFormat, p.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// the key travels in a header so it never shows up in request logs
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", httpStatusError(resp)
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("response contains no candidates")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}
