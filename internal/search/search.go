// Package search provides the optional Elasticsearch index over harvested
// signals. When the index is disabled in configuration every operation
// returns ErrSearchDisabled.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/jonesrussell/goleads/internal/config"
	"github.com/jonesrussell/goleads/internal/domain"
	"github.com/jonesrussell/goleads/internal/logger"
)

// ErrSearchDisabled is returned when search is not configured.
// Callers should check with errors.Is().
var ErrSearchDisabled = errors.New("search index is disabled")

const defaultSearchSize = 20

// signalMapping is the index mapping for signal documents.
const signalMapping = `{
	"mappings": {
		"properties": {
			"source_name":  {"type": "keyword"},
			"external_id":  {"type": "keyword"},
			"type":         {"type": "keyword"},
			"industry":     {"type": "keyword"},
			"score":        {"type": "float"},
			"title":        {"type": "text"},
			"description":  {"type": "text"},
			"url":          {"type": "keyword"},
			"location":     {"type": "keyword"},
			"value_czk":    {"type": "long"},
			"company_name": {"type": "text"},
			"ico":          {"type": "keyword"},
			"deadline":     {"type": "date"},
			"published_at": {"type": "date"},
			"harvested_at": {"type": "date"}
		}
	}
}`

// Index wraps the Elasticsearch client for signal documents.
// A nil *Index is valid and reports ErrSearchDisabled.
type Index struct {
	client *es.Client
	index  string
	logger logger.Logger
}

// New creates the signal search index. Returns (nil, nil) when search is
// disabled in configuration.
func New(cfg config.ElasticConfig, log logger.Logger) (*Index, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	client, err := es.NewClient(es.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	return &Index{
		client: client,
		index:  cfg.Index,
		logger: log,
	}, nil
}

// Enabled reports whether the index is configured.
func (i *Index) Enabled() bool { return i != nil && i.client != nil }

// EnsureIndex creates the signal index with its mapping when missing.
func (i *Index) EnsureIndex(ctx context.Context) error {
	if !i.Enabled() {
		return ErrSearchDisabled
	}

	res, err := i.client.Indices.Exists(
		[]string{i.index},
		i.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	createRes, err := i.client.Indices.Create(
		i.index,
		i.client.Indices.Create.WithContext(ctx),
		i.client.Indices.Create.WithBody(bytes.NewReader([]byte(signalMapping))),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("error creating index: %s", createRes.String())
	}

	i.logger.Info("Search index created", logger.String("index", i.index))
	return nil
}

// IndexSignals bulk-indexes signals, keyed by their dedup key so repeat
// harvests overwrite rather than duplicate.
func (i *Index) IndexSignals(ctx context.Context, signals []domain.Signal) error {
	if !i.Enabled() {
		return ErrSearchDisabled
	}
	if len(signals) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for idx := range signals {
		s := &signals[idx]
		action := map[string]any{
			"index": map[string]any{"_index": i.index, "_id": s.DedupKey()},
		}
		if err := json.NewEncoder(&buf).Encode(action); err != nil {
			return fmt.Errorf("failed to encode bulk action: %w", err)
		}
		if err := json.NewEncoder(&buf).Encode(s); err != nil {
			return fmt.Errorf("failed to encode signal document: %w", err)
		}
	}

	res, err := i.client.Bulk(
		bytes.NewReader(buf.Bytes()),
		i.client.Bulk.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk index signals: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk index error: %s", res.String())
	}

	i.logger.Debug("Signals indexed", logger.Int("count", len(signals)))
	return nil
}

// searchResponse is the subset of the search reply we decode.
type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source domain.Signal `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// SearchSignals runs a full-text query over title, description and company
// name, best score first.
func (i *Index) SearchSignals(ctx context.Context, text string, size int) ([]domain.Signal, error) {
	if !i.Enabled() {
		return nil, ErrSearchDisabled
	}
	if size <= 0 {
		size = defaultSearchSize
	}

	query := map[string]any{
		"size": size,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  text,
				"fields": []string{"title^2", "description", "company_name"},
			},
		},
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("error marshaling search query: %w", err)
	}

	res, err := i.client.Search(
		i.client.Search.WithContext(ctx),
		i.client.Search.WithIndex(i.index),
		i.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("error executing search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search error: %s", res.String())
	}

	var decoded searchResponse
	if decodeErr := json.NewDecoder(res.Body).Decode(&decoded); decodeErr != nil {
		return nil, fmt.Errorf("error decoding search response: %w", decodeErr)
	}

	out := make([]domain.Signal, 0, len(decoded.Hits.Hits))
	for _, hit := range decoded.Hits.Hits {
		out = append(out, hit.Source)
	}
	return out, nil
}
