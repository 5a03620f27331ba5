package links

import (
	"context"

	"github.com/ThurpatiNainesh/tinylink/internal/domain"
)

// Repo is the link store. Create must report a uniqueness violation on code
// as an error matching domain.ErrCodeExists; the allocator relies on it.
type Repo interface {
	Create(ctx context.Context, link domain.NewLink) (domain.Link, error)
	GetByCode(ctx context.Context, code string) (domain.Link, error)
	List(ctx context.Context, search string) ([]domain.Link, error)
	IncrementClick(ctx context.Context, code string) (domain.Link, error)
	DeleteByCode(ctx context.Context, code string) (bool, error)
	Ping(ctx context.Context) error
}
