package links

import (
	"context"

	"github.com/ThurpatiNainesh/tinylink/internal/domain"
)

// UseCase is an input port for the links application.
type UseCase interface {
	Create(ctx context.Context, targetURL, customCode string) (domain.Link, error)
	Get(ctx context.Context, code string) (domain.Link, error)
	List(ctx context.Context, search string) ([]domain.Link, error)
	Delete(ctx context.Context, code string) error
	Visit(ctx context.Context, code string) (domain.Link, error)
	Ping(ctx context.Context) error
}
