package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MediaStore hosts uploaded media files and returns publicly reachable URLs.
type MediaStore interface {
	Upload(ctx context.Context, sourceURL string) (string, error)
}

// randomStorageKey produces a date-partitioned object key so buckets stay
// browsable and keys never collide.
func randomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("media/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}
