package reference

import (
	"context"

	"github.com/joseph-ayodele/report-analyzer/internal/entity"
)

// Store is the learned-range repository. The mapping is monotonically
// additive: entries are inserted or overwritten by canonical name,
// never pruned by the resolution engine. Get must observe writes made
// by concurrent processes between calls.
type Store interface {
	// Get returns the learned range for a canonical test name.
	Get(ctx context.Context, canonical string) (entity.LearnedRange, bool, error)
	// Upsert inserts or replaces the entry for a canonical test name.
	Upsert(ctx context.Context, canonical string, lr entity.LearnedRange) error
	// All returns the full mapping, for maintenance and export.
	All(ctx context.Context) (map[string]entity.LearnedRange, error)
	Close() error
}
