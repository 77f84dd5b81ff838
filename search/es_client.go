package search

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	es8 "github.com/elastic/go-elasticsearch/v8"

	"blog-api/models"
)

// ES mirrors published posts into an Elasticsearch index for the
// full-text and related-posts endpoints.
type ES struct {
	Client *es8.Client
	Index  string
}

func New(esURL, index string) (*ES, error) {
	es, err := es8.NewClient(es8.Config{Addresses: []string{esURL}, Transport: &http.Transport{}})
	if err != nil {
		return nil, err
	}
	return &ES{Client: es, Index: index}, nil
}

// EnsureIndex creates the index with its mapping; an already-exists 400
// from ES is ignored by the caller.
func (e *ES) EnsureIndex(ctx context.Context) error {
	mapping := `{
	  "mappings": {
	    "properties": {
	      "title":   {"type":"text"},
	      "content": {"type":"text"},
	      "excerpt": {"type":"text"},
	      "tags":    {"type":"keyword"}
	    }
	  }
	}`
	res, err := e.Client.Indices.Create(e.Index, e.Client.Indices.Create.WithBody(bytes.NewBufferString(mapping)))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	return nil
}

func (e *ES) IndexPost(ctx context.Context, p *models.Post) error {
	doc := map[string]any{
		"id":      p.ID,
		"title":   p.Title,
		"content": p.Content,
		"excerpt": p.Excerpt,
		"tags":    p.Tags,
	}
	b, _ := json.Marshal(doc)
	res, err := e.Client.Index(e.Index, bytes.NewReader(b), e.Client.Index.WithDocumentID(p.ID))
	if err != nil {
		return err
	}
	io.Copy(io.Discard, res.Body)
	res.Body.Close()
	return nil
}

func (e *ES) DeletePost(ctx context.Context, id string) error {
	res, err := e.Client.Delete(e.Index, id)
	if err != nil {
		return err
	}
	io.Copy(io.Discard, res.Body)
	res.Body.Close()
	return nil
}

// SearchPosts runs a multi_match over title and content.
func (e *ES) SearchPosts(ctx context.Context, q string) (map[string]any, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title", "content", "excerpt"},
			},
		},
	}
	return e.search(ctx, body)
}

// RelatedPosts finds posts sharing tags, excluding the post itself.
func (e *ES) RelatedPosts(ctx context.Context, tags []string, excludeID string, size int) (map[string]any, error) {
	body := map[string]any{
		"size": size,
		"query": map[string]any{
			"bool": map[string]any{
				"must_not": []any{
					map[string]any{"term": map[string]any{"_id": excludeID}},
				},
				"should": []any{
					map[string]any{"terms": map[string]any{"tags": tags}},
				},
				"minimum_should_match": 1,
			},
		},
	}
	return e.search(ctx, body)
}

func (e *ES) search(ctx context.Context, body map[string]any) (map[string]any, error) {
	b, _ := json.Marshal(body)
	res, err := e.Client.Search(e.Client.Search.WithIndex(e.Index), e.Client.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
