package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/kdduha/uml-generator/internal/config"
	"github.com/kdduha/uml-generator/internal/mermaid"
)

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	Temperature  float64 `json:"temperature"`
}

type hfResponse struct {
	GeneratedText string `json:"generated_text"`
}

// HuggingFaceProvider calls the HuggingFace Inference API text-generation task.
type HuggingFaceProvider struct {
	client *http.Client
	url    string
}

func NewHuggingFaceProvider(client *http.Client, cfg config.HuggingFaceConfig) *HuggingFaceProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &HuggingFaceProvider{
		client: client,
		url:    strings.TrimSuffix(cfg.BaseURL, "/") + "/" + cfg.Model,
	}
}

func (p *HuggingFaceProvider) Generate(ctx context.Context, description string, opts Options) (string, error) {
	body, err := sonic.Marshal(hfRequest{
		Inputs: getUserPrompt(description),
		Parameters: hfParameters{
			MaxNewTokens: opts.maxTokens(huggingFaceMaxNewTokens),
			Temperature:  opts.temperature(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+opts.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HuggingFace request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return "", fmt.Errorf("HuggingFace bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out []hfResponse
	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out) == 0 {
		return "", fmt.Errorf("HuggingFace returned empty response")
	}
	return mermaid.ExtractScript(out[0].GeneratedText), nil
}
