package links

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThurpatiNainesh/tinylink/internal/domain"
)

const (
	maxAllocationAttempts = 5

	allocateErrWrapFmt = "links allocate: %w"
)

// Allocator turns a create request into a persisted, uniquely coded link.
type Allocator struct {
	repo        Repo
	log         Logger
	gen         CodeGenerator
	maxAttempts int
	now         func() time.Time
}

type AllocatorOption func(*Allocator)

func WithCodeGenerator(gen CodeGenerator) AllocatorOption {
	return func(a *Allocator) { a.gen = gen }
}

func WithMaxAttempts(n int) AllocatorOption {
	return func(a *Allocator) {
		if n > 0 {
			a.maxAttempts = n
		}
	}
}

func WithClock(now func() time.Time) AllocatorOption {
	return func(a *Allocator) { a.now = now }
}

func NewAllocator(repo Repo, log Logger, opts ...AllocatorOption) *Allocator {
	if log == nil {
		log = NopLogger{}
	}

	a := &Allocator{
		repo:        repo,
		log:         log,
		gen:         GenerateCode,
		maxAttempts: maxAllocationAttempts,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Allocate validates the input before touching the store. A custom code gets
// exactly one insert; a generated one is retried on collision.
func (a *Allocator) Allocate(ctx context.Context, targetURL, customCode string) (domain.Link, error) {
	target, err := domain.NormalizeTargetURL(targetURL)
	if err != nil {
		return domain.Link{}, err
	}

	if customCode == "" {
		return a.allocateGenerated(ctx, target)
	}

	code, err := domain.NormalizeCode(customCode)
	if err != nil {
		return domain.Link{}, err
	}

	link, err := a.insert(ctx, code, target)
	if err != nil {
		return domain.Link{}, fmt.Errorf(allocateErrWrapFmt, err)
	}

	return link, nil
}

func (a *Allocator) allocateGenerated(ctx context.Context, target string) (domain.Link, error) {
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		code, err := a.gen()
		if err != nil {
			return domain.Link{}, fmt.Errorf("links generate code: %w", err)
		}

		taken, err := a.taken(ctx, code)
		if err != nil {
			return domain.Link{}, fmt.Errorf(allocateErrWrapFmt, err)
		}

		if taken {
			a.log.Info("generated code collision", "code", code, "attempt", attempt, "stage", "precheck")

			continue
		}

		link, err := a.insert(ctx, code, target)
		if errors.Is(err, domain.ErrCodeExists) {
			a.log.Info("generated code collision", "code", code, "attempt", attempt, "stage", "insert")

			continue
		}

		if err != nil {
			return domain.Link{}, fmt.Errorf(allocateErrWrapFmt, err)
		}

		return link, nil
	}

	a.log.Error("code allocation exhausted", "attempts", a.maxAttempts, "target_url", target)

	return domain.Link{}, fmt.Errorf(allocateErrWrapFmt, domain.ErrAllocationExhausted)
}

// taken is only an early exit; the unique constraint behind insert decides.
func (a *Allocator) taken(ctx context.Context, code string) (bool, error) {
	_, err := a.repo.GetByCode(ctx, code)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (a *Allocator) insert(ctx context.Context, code, target string) (domain.Link, error) {
	return a.repo.Create(ctx, domain.NewLink{
		Code:      code,
		TargetURL: target,
		CreatedAt: a.now().UTC(),
	})
}
