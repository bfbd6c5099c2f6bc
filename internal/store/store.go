// Package store persists crawl records into a vector index so downstream
// search can retrieve them semantically, and answers the duplicate checks
// the pipeline runs before scraping a URL.
package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/crelab/dircrawl/pkg/records"
)

// Namespaces partition the index by record type. Existence checks and
// upserts always address exactly one of them.
const (
	NamespacePerson   = "person"
	NamespaceProperty = "property"
)

// ErrNotConfigured is returned by operations that need backing services
// when the store runs without credentials.
var ErrNotConfigured = errors.New("content store not configured")

// ContentStore is the persistence boundary of the pipeline.
type ContentStore interface {
	// Exists reports whether a record for url is already present in the
	// namespace. Backend errors deliberately read as "not present": a
	// duplicate write is recoverable, a silently skipped record is not.
	Exists(ctx context.Context, url, namespace string) bool

	UpsertPerson(ctx context.Context, rec *records.PersonRecord) error
	UpsertProperty(ctx context.Context, rec *records.PropertyRecord) error

	// Search embeds the query and returns a formatted text report of the
	// best matches. typeFilter narrows to one namespace; empty means both.
	Search(ctx context.Context, query string, topK int, typeFilter string) (string, error)
}

// NopStore satisfies ContentStore without any backend: nothing exists,
// writes log and vanish. Used for dry runs and credential-less setups.
type NopStore struct {
	Log *slog.Logger
}

func (n *NopStore) Exists(context.Context, string, string) bool { return false }

func (n *NopStore) UpsertPerson(_ context.Context, rec *records.PersonRecord) error {
	n.Log.Info("dry run, person not persisted", "name", rec.Name(), "url", rec.URL)
	return nil
}

func (n *NopStore) UpsertProperty(_ context.Context, rec *records.PropertyRecord) error {
	n.Log.Info("dry run, property not persisted", "name", rec.Name, "url", rec.URL)
	return nil
}

func (n *NopStore) Search(context.Context, string, int, string) (string, error) {
	return "", ErrNotConfigured
}
