package bertopic

// driver for a BERTopic sidecar exposing:
// - POST /cluster
// - GET  /topics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakura-notes/sakura/pkg/cluster"
)

const (
	NAME = "bertopic"
)

type Driver struct {
	client   *http.Client
	endpoint string
	token    string
}

func New(endpoint, token string) *Driver {
	return &Driver{
		client:   &http.Client{},
		endpoint: endpoint,
		token:    token,
	}
}

func (s *Driver) applyBaseHeader(req *http.Request) {
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	if s.token != "" {
		req.Header.Add("Authorization", "Bearer "+s.token)
	}
}

type clusterRequestBody struct {
	Documents []cluster.Document `json:"documents"`
}

type clusterResponse struct {
	Assignments []cluster.Assignment `json:"assignments"`
}

func (s *Driver) Cluster(ctx context.Context, docs []cluster.Document) ([]cluster.Assignment, error) {
	slog.Debug("Cluster", slog.String("driver", NAME), slog.Int("docs", len(docs)))

	raw, err := json.Marshal(clusterRequestBody{Documents: docs})
	if err != nil {
		return nil, err
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"/cluster", bytes.NewReader(raw))
	s.applyBaseHeader(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Failed to request topic cluster: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Failed to request topic cluster, %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var result clusterResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("Failed to unmarshal response, %w", err)
	}

	return result.Assignments, nil
}

type topicsResponse struct {
	Topics map[string]string `json:"topics"`
}

func (s *Driver) TopicLabels(ctx context.Context) (map[int]string, error) {
	slog.Debug("TopicLabels", slog.String("driver", NAME))

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"/topics", nil)
	s.applyBaseHeader(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Failed to request topic labels: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Failed to request topic labels, %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var result topicsResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("Failed to unmarshal response, %w", err)
	}

	labels := make(map[int]string, len(result.Topics))
	for k, v := range result.Topics {
		id, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		labels[id] = v
	}

	return labels, nil
}
