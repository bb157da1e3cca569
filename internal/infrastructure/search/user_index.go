package search

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/identity-service/internal/application"
	"github.com/oksasatya/identity-service/internal/domain/entity"
)

// UserIndex mirrors user records into Elasticsearch for the admin search
// endpoint. Indexing failures are logged and swallowed; Postgres stays the
// source of truth.
type UserIndex struct {
	Client *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewUserIndex(client *elasticsearch.Client, index string, logger *logrus.Logger) *UserIndex {
	return &UserIndex{Client: client, Index: index, Logger: logger}
}

func (x *UserIndex) IndexUser(ctx context.Context, u *entity.User) error {
	if x.Client == nil || x.Index == "" {
		return nil
	}
	doc := map[string]any{
		"id":         u.ID.Value(),
		"email":      u.Email.Value(),
		"status":     string(u.Status),
		"roles":      u.Roles,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: x.Index, DocumentID: u.ID.Value(), Body: strings.NewReader(string(b)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, x.Client)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && x.Logger != nil {
		x.Logger.WithField("status", res.Status()).WithField("user_id", u.ID.Value()).Warn("es index response error")
	}
	return nil
}

// Search performs a multi_match over email and roles.
func (x *UserIndex) Search(ctx context.Context, query string, size int) ([]map[string]any, error) {
	if x.Client == nil || x.Index == "" {
		return []map[string]any{}, nil
	}
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"email^2", "roles"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(body)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := x.Client.Search(
		x.Client.Search.WithContext(c),
		x.Client.Search.WithIndex(x.Index),
		x.Client.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

var _ application.UserIndexer = (*UserIndex)(nil)
