package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/digital-user-report/internal/domain/entity"
)

// ReasonIndex keeps non-affiliation reasons searchable in Elasticsearch.
// Documents are keyed by digital user id.
type ReasonIndex struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

type ReasonHit struct {
	DigitalUserID string  `json:"idUsuarioDigital"`
	Reason        string  `json:"motivo"`
	UpdatedAt     string  `json:"actualizado,omitempty"`
	Score         float64 `json:"score"`
}

// ReasonIndexMapping indexes the reason text for full-text search and keeps ids exact
const ReasonIndexMapping = `{
  "mappings": {
    "properties": {
      "idUsuarioDigital": {"type": "keyword"},
      "motivo": {"type": "text"},
      "actualizado": {"type": "date"}
    }
  }
}`

func NewReasonIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *ReasonIndex {
	if es == nil || index == "" {
		return nil
	}
	return &ReasonIndex{ES: es, Index: index, Logger: logger}
}

// eventVersion orders writes by event time. Events without a time are applied unversioned.
func eventVersion(ev entity.ReasonEvent) (*int, string) {
	if ev.At.IsZero() {
		return nil, ""
	}
	v := int(ev.At.UnixNano())
	return &v, "external"
}

// Apply mirrors one reason event into the index. Writes carry the event time
// as an external version, so an event older than the indexed state (a
// redelivered save arriving after a delete, say) is rejected by Elasticsearch
// with 409 and treated as applied.
func (x *ReasonIndex) Apply(ctx context.Context, ev entity.ReasonEvent) error {
	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	version, versionType := eventVersion(ev)
	var (
		res *esapi.Response
		err error
	)
	switch ev.Type {
	case entity.ReasonSaved:
		doc := map[string]any{
			"idUsuarioDigital": ev.DigitalUserID.String(),
			"motivo":           ev.Reason,
			"actualizado":      ev.At.Format(time.RFC3339Nano),
		}
		b, _ := json.Marshal(doc)
		req := esapi.IndexRequest{
			Index:       x.Index,
			DocumentID:  ev.DigitalUserID.String(),
			Body:        strings.NewReader(string(b)),
			Refresh:     "false",
			Version:     version,
			VersionType: versionType,
		}
		res, err = req.Do(c, x.ES)
	case entity.ReasonDeleted:
		req := esapi.DeleteRequest{Index: x.Index, DocumentID: ev.DigitalUserID.String(), Version: version, VersionType: versionType}
		res, err = req.Do(c, x.ES)
	default:
		return fmt.Errorf("unknown reason event type %q", ev.Type)
	}
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	switch {
	case !res.IsError():
		return nil
	case res.StatusCode == 409 && version != nil:
		if x.Logger != nil {
			x.Logger.WithField("user_id", ev.DigitalUserID.String()).WithField("type", ev.Type).Debug("stale reason event skipped")
		}
		return nil
	case ev.Type == entity.ReasonDeleted && res.StatusCode == 404:
		// a missing document on delete is already the desired state
		return nil
	}
	return fmt.Errorf("es %s response: %s", ev.Type, res.Status())
}

// Search performs a match query on the reason text.
func (x *ReasonIndex) Search(ctx context.Context, q string, size int) ([]ReasonHit, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"match": map[string]any{
				"motivo": map[string]any{"query": q},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := x.ES.Search(x.ES.Search.WithContext(c), x.ES.Search.WithIndex(x.Index), x.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		if x.Logger != nil {
			x.Logger.WithError(err).Warn("es search failed")
		}
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return nil, fmt.Errorf("es search response: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string  `json:"_id"`
				Score  float64 `json:"_score"`
				Source struct {
					Reason    string `json:"motivo"`
					UpdatedAt string `json:"actualizado"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]ReasonHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, ReasonHit{DigitalUserID: h.ID, Reason: h.Source.Reason, UpdatedAt: h.Source.UpdatedAt, Score: h.Score})
	}
	return out, nil
}
