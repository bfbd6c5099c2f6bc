// Package fetcher abstracts how a page snapshot is obtained. The pipeline
// normally snapshots through the live browser session, but server-rendered
// mirrors of the target site can be fetched over plain HTTP, which is an
// order of magnitude faster and needs no Chrome install.
package fetcher

import "context"

// Snapshotter returns the rendered (or raw, for the static fetcher) HTML
// of one URL.
type Snapshotter interface {
	Fetch(ctx context.Context, url string) (string, error)
}
