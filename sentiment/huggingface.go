package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultHFModelURL = "https://api-inference.huggingface.co/models/ProsusAI/finbert"

// HuggingFace classifies text through the HuggingFace Inference API using a
// financial sentiment model (finbert by default).
type HuggingFace struct {
	token    string
	modelURL string
	client   *http.Client
}

func NewHuggingFace(token string, timeout time.Duration) *HuggingFace {
	return &HuggingFace{
		token:    token,
		modelURL: defaultHFModelURL,
		client:   &http.Client{Timeout: timeout},
	}
}

type hfRequest struct {
	Inputs string `json:"inputs"`
}

type hfScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify posts the (truncated) text and returns the top label with the
// model's own probability for it.
func (h *HuggingFace) Classify(ctx context.Context, text string) (string, float64, error) {
	body, err := json.Marshal(hfRequest{Inputs: Truncate(text)})
	if err != nil {
		return "", 0, fmt.Errorf("hf encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.modelURL, bytes.NewReader(body))
	if err != nil {
		return "", 0, fmt.Errorf("hf request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("hf classify: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("hf classify: unexpected status %d", resp.StatusCode)
	}

	// The inference API wraps text-classification results in one batch per
	// input: [[{label, score}, ...]].
	var result [][]hfScore
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", 0, fmt.Errorf("hf decode: %w", err)
	}
	if len(result) == 0 || len(result[0]) == 0 {
		return "", 0, fmt.Errorf("hf classify: empty result")
	}

	top := result[0][0]
	for _, s := range result[0][1:] {
		if s.Score > top.Score {
			top = s
		}
	}
	return strings.ToUpper(top.Label), top.Score, nil
}
