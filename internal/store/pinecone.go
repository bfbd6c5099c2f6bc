package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pinecone-io/go-pinecone/v2/pinecone"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/crelab/dircrawl/internal/config"
	"github.com/crelab/dircrawl/pkg/records"
)

// searchScoreFloor filters out matches too weak to be worth reporting.
const searchScoreFloor = 0.70

// VectorStore is the Pinecone-backed ContentStore. One gRPC connection is
// opened lazily per namespace and reused for the life of the store.
type VectorStore struct {
	client *pinecone.Client
	host   string
	embed  Embedder
	log    *slog.Logger

	mu    sync.Mutex
	conns map[string]*pinecone.IndexConnection
}

// NewVectorStore connects to the index named in cfg and verifies it exists.
func NewVectorStore(ctx context.Context, cfg config.Store, embed Embedder, log *slog.Logger) (*VectorStore, error) {
	client, err := pinecone.NewClient(pinecone.NewClientParams{ApiKey: cfg.PineconeAPIKey})
	if err != nil {
		return nil, fmt.Errorf("pinecone client: %w", err)
	}
	idx, err := client.DescribeIndex(ctx, cfg.PineconeIndex)
	if err != nil {
		return nil, fmt.Errorf("describe index %q: %w", cfg.PineconeIndex, err)
	}

	return &VectorStore{
		client: client,
		host:   idx.Host,
		embed:  embed,
		log:    log,
		conns:  make(map[string]*pinecone.IndexConnection),
	}, nil
}

// existenceQueryVector is the query vector for metadata-only lookups. The
// value is irrelevant (the filter does the matching) but it must be
// non-zero: cosine-metric indexes reject the zero vector.
func existenceQueryVector() []float32 {
	v := make([]float32, embeddingDim)
	v[0] = 1
	return v
}

func (s *VectorStore) conn(namespace string) (*pinecone.IndexConnection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.conns[namespace]; ok {
		return c, nil
	}
	c, err := s.client.Index(pinecone.NewIndexConnParams{Host: s.host, Namespace: namespace})
	if err != nil {
		return nil, fmt.Errorf("index connection (%s): %w", namespace, err)
	}
	s.conns[namespace] = c
	return c, nil
}

// Exists runs a metadata-filtered query with a fixed query vector; any
// match means the URL has been ingested before. Backend errors read as
// "not present".
func (s *VectorStore) Exists(ctx context.Context, url, namespace string) bool {
	if url == "" {
		return false
	}
	c, err := s.conn(namespace)
	if err != nil {
		s.log.Warn("existence check unavailable", "namespace", namespace, "error", err)
		return false
	}

	filter, err := structpb.NewStruct(map[string]interface{}{
		"url": map[string]interface{}{"$eq": url},
	})
	if err != nil {
		s.log.Warn("existence filter build failed", "error", err)
		return false
	}

	res, err := c.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:         existenceQueryVector(),
		TopK:           1,
		MetadataFilter: filter,
	})
	if err != nil {
		s.log.Warn("existence check failed", "namespace", namespace, "url", url, "error", err)
		return false
	}
	return len(res.Matches) > 0
}

// UpsertPerson embeds and writes one person record. Records without a URL
// are silently skipped: without the dedup key they would be re-ingested on
// every run.
func (s *VectorStore) UpsertPerson(ctx context.Context, rec *records.PersonRecord) error {
	if rec.URL == "" {
		s.log.Warn("person without url, not persisted", "name", rec.Name())
		return nil
	}
	if s.Exists(ctx, rec.URL, NamespacePerson) {
		s.log.Info("person already stored, skipping", "url", rec.URL)
		return nil
	}
	return s.upsert(ctx, NamespacePerson, PersonID(rec), PersonBlob(rec), PersonMetadata(rec))
}

// UpsertProperty embeds and writes one property record.
func (s *VectorStore) UpsertProperty(ctx context.Context, rec *records.PropertyRecord) error {
	if rec.URL == "" {
		s.log.Warn("property without url, not persisted", "name", rec.Name)
		return nil
	}
	if s.Exists(ctx, rec.URL, NamespaceProperty) {
		s.log.Info("property already stored, skipping", "url", rec.URL)
		return nil
	}
	return s.upsert(ctx, NamespaceProperty, PropertyID(rec), PropertyBlob(rec), PropertyMetadata(rec))
}

func (s *VectorStore) upsert(ctx context.Context, namespace, id, blob string, metadata map[string]interface{}) error {
	c, err := s.conn(namespace)
	if err != nil {
		return err
	}

	vec, err := s.embed.Embed(ctx, blob)
	if err != nil {
		return err
	}
	md, err := structpb.NewStruct(metadata)
	if err != nil {
		return fmt.Errorf("metadata: %w", err)
	}

	if _, err := c.UpsertVectors(ctx, []*pinecone.Vector{{
		Id:       id,
		Values:   vec,
		Metadata: md,
	}}); err != nil {
		return fmt.Errorf("upsert %s/%s: %w", namespace, id, err)
	}
	s.log.Info("record stored", "namespace", namespace, "id", id)
	return nil
}

// Search embeds the query and reports the strongest matches above the score
// floor, one formatted block per match.
func (s *VectorStore) Search(ctx context.Context, query string, topK int, typeFilter string) (string, error) {
	namespaces := []string{NamespacePerson, NamespaceProperty}
	switch typeFilter {
	case NamespacePerson:
		namespaces = []string{NamespacePerson}
	case NamespaceProperty:
		namespaces = []string{NamespaceProperty}
	case "":
	default:
		return "", fmt.Errorf("unknown type filter %q", typeFilter)
	}

	vec, err := s.embed.Embed(ctx, query)
	if err != nil {
		return "", err
	}
	if topK <= 0 {
		topK = 5
	}

	var blocks []string
	for _, ns := range namespaces {
		c, err := s.conn(ns)
		if err != nil {
			return "", err
		}
		res, err := c.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
			Vector:          vec,
			TopK:            uint32(topK),
			IncludeMetadata: true,
		})
		if err != nil {
			return "", fmt.Errorf("query %s: %w", ns, err)
		}
		for _, m := range res.Matches {
			if m.Score < searchScoreFloor || m.Vector == nil {
				continue
			}
			blocks = append(blocks, formatMatch(ns, m.Score, m.Vector.Metadata))
		}
	}

	if len(blocks) == 0 {
		return "No matches above the relevance threshold.", nil
	}
	return strings.Join(blocks, "\n\n"), nil
}

func formatMatch(namespace string, score float32, md *pinecone.Metadata) string {
	get := func(key string) string {
		if md == nil {
			return ""
		}
		if v, ok := md.Fields[key]; ok {
			return v.GetStringValue()
		}
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s (score %.2f)\n", namespace, get("name"), score)
	if namespace == NamespacePerson {
		writeField(&b, "Title", get("title"))
		writeField(&b, "Email", get("email"))
		writeField(&b, "Phone", get("phone"))
		writeField(&b, "Listings", get("listings_url"))
	} else {
		writeField(&b, "Address", get("address"))
		writeField(&b, "Size", get("sqft"))
		writeField(&b, "Brochure", get("brochure_url"))
	}
	writeField(&b, "URL", get("url"))
	return strings.TrimRight(b.String(), "\n")
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" || value == records.NotFound || value == records.NotAvail {
		return
	}
	fmt.Fprintf(b, "  %s: %s\n", label, value)
}
