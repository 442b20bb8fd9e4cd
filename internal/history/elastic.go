// internal/history/elastic.go
package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// DefaultIndex is used when no index name is configured.
const DefaultIndex = "career-predictions"

// ElasticArchive stores snapshots as documents keyed by snapshot id.
type ElasticArchive struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticArchive(client *elasticsearch.Client, index string) *ElasticArchive {
	if index == "" {
		index = DefaultIndex
	}
	return &ElasticArchive{client: client, index: index}
}

func (a *ElasticArchive) Index() string { return a.index }

func (a *ElasticArchive) Save(ctx context.Context, snap Snapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      a.index,
		DocumentID: snap.ID,
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(ctx, a.client)
	if err != nil {
		return fmt.Errorf("index snapshot: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index snapshot: %s", res.Status())
	}
	return nil
}

// Latest returns the user's newest snapshot by analysis date.
func (a *ElasticArchive) Latest(ctx context.Context, userID string) (*Snapshot, error) {
	snaps, err := a.Recent(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, ErrSnapshotNotFound
	}
	return &snaps[0], nil
}

// Recent returns up to size snapshots for the user, newest first.
func (a *ElasticArchive) Recent(ctx context.Context, userID string, size int) ([]Snapshot, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{
				"userId.keyword": userID,
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"analysisDate": map[string]interface{}{"order": "desc"}},
		},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	res, err := a.client.Search(
		a.client.Search.WithContext(ctx),
		a.client.Search.WithIndex(a.index),
		a.client.Search.WithBody(bytes.NewReader(body)),
		a.client.Search.WithSize(size),
	)
	if err != nil {
		return nil, fmt.Errorf("search snapshots: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("search snapshots: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source Snapshot `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	snaps := make([]Snapshot, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		snaps = append(snaps, hit.Source)
	}
	return snaps, nil
}
