// Package search keeps user views in an Elasticsearch index.
package search

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/samber/oops"

	"github.com/oksasatya/go-user-management/internal/domain/entity"
)

// NewESClient creates an Elasticsearch client with sane defaults and optional basic auth.
func NewESClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}

type UserIndex struct {
	es      *elasticsearch.Client
	index   string
	timeout time.Duration
}

func NewUserIndex(es *elasticsearch.Client, index string) *UserIndex {
	return &UserIndex{es: es, index: index, timeout: 3 * time.Second}
}

func (x *UserIndex) IndexUser(ctx context.Context, u entity.UserView) error {
	b, err := json.Marshal(u)
	if err != nil {
		return oops.Code("SEARCH_INDEX_FAILED").With("user_id", u.ID).Wrap(err)
	}
	c, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	req := esapi.IndexRequest{
		Index:      x.index,
		DocumentID: strconv.FormatInt(u.ID, 10),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}
	res, err := req.Do(c, x.es)
	if err != nil {
		return oops.Code("SEARCH_INDEX_FAILED").With("user_id", u.ID).Wrap(err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return oops.Code("SEARCH_INDEX_FAILED").With("user_id", u.ID).Errorf("elasticsearch: %s", res.Status())
	}
	return nil
}

// DeleteUser removes the document. A document that is already gone is fine.
func (x *UserIndex) DeleteUser(ctx context.Context, id int64) error {
	c, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	req := esapi.DeleteRequest{Index: x.index, DocumentID: strconv.FormatInt(id, 10)}
	res, err := req.Do(c, x.es)
	if err != nil {
		return oops.Code("SEARCH_DELETE_FAILED").With("user_id", id).Wrap(err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return oops.Code("SEARCH_DELETE_FAILED").With("user_id", id).Errorf("elasticsearch: %s", res.Status())
	}
	return nil
}

// SearchUsers runs a multi_match over email and name, email weighted higher.
func (x *UserIndex) SearchUsers(ctx context.Context, q string, size int) ([]entity.UserView, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, oops.Code("SEARCH_QUERY_FAILED").Wrap(err)
	}

	c, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	res, err := x.es.Search(
		x.es.Search.WithContext(c),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, oops.Code("SEARCH_QUERY_FAILED").With("q", q).Wrap(err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, oops.Code("SEARCH_QUERY_FAILED").With("q", q).Errorf("elasticsearch: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source entity.UserView `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, oops.Code("SEARCH_QUERY_FAILED").With("operation", "decode").Wrap(err)
	}

	out := make([]entity.UserView, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
