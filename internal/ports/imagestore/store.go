package imagestore

import "context"

// ImageStore persists validated post images and hands back the path the
// post row records.
type ImageStore interface {
	Save(ctx context.Context, filename string, data []byte) (string, error)
	Remove(ctx context.Context, path string) error
}
