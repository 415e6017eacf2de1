package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/kmazurek/capstone-shop/services/products/internal/models"
)

// Client indexes products into Elasticsearch and serves full-text
// queries over them. The SQL LIKE fallback lives in the repo.
type Client struct {
	es    *elasticsearch.Client
	index string
}

func New(url, user, password, index string) (*Client, error) {
	esCfg := elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("search: create client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("search: cluster info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("search: cluster error: %s: %s", res.Status(), body)
	}

	return &Client{es: client, index: index}, nil
}

func (c *Client) IndexProduct(ctx context.Context, p *models.Product) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("search: marshal product %d: %w", p.ID, err)
	}

	res, err := c.es.Index(
		c.index,
		bytes.NewReader(data),
		c.es.Index.WithDocumentID(strconv.FormatUint(uint64(p.ID), 10)),
		c.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("search: index product %d: %w", p.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("search: index product %d: %s", p.ID, res.Status())
	}
	return nil
}

func (c *Client) DeleteProduct(ctx context.Context, id uint) error {
	if c == nil {
		return nil
	}

	res, err := c.es.Delete(
		c.index,
		strconv.FormatUint(uint64(id), 10),
		c.es.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("search: delete product %d: %w", id, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("search: delete product %d: %s", id, res.Status())
	}
	return nil
}

func (c *Client) Search(ctx context.Context, q string, limit int) ([]models.Product, error) {
	query := map[string]any{
		"size": limit,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "description"},
			},
		},
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("search: marshal query: %w", err)
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search: query: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search: query: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("search: decode response: %w", err)
	}

	products := make([]models.Product, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		products = append(products, hit.Source)
	}
	return products, nil
}
