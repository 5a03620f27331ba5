package links

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ThurpatiNainesh/tinylink/internal/domain"
)

type Service struct {
	repo  Repo
	alloc *Allocator
	log   Logger
}

func New(repo Repo, log Logger, opts ...AllocatorOption) *Service {
	if log == nil {
		log = NopLogger{}
	}

	return &Service{
		repo:  repo,
		alloc: NewAllocator(repo, log.With("component", "allocator"), opts...),
		log:   log,
	}
}

var _ UseCase = (*Service)(nil)

func (s *Service) Create(ctx context.Context, targetURL, customCode string) (domain.Link, error) {
	link, err := s.alloc.Allocate(ctx, targetURL, strings.TrimSpace(customCode))
	if err != nil {
		return domain.Link{}, fmt.Errorf("links create: %w", err)
	}

	return link, nil
}

func (s *Service) Get(ctx context.Context, code string) (domain.Link, error) {
	link, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return domain.Link{}, fmt.Errorf("links get by code: %w", err)
	}

	return link, nil
}

func (s *Service) List(ctx context.Context, search string) ([]domain.Link, error) {
	items, err := s.repo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("links list: %w", err)
	}

	return items, nil
}

func (s *Service) Delete(ctx context.Context, code string) error {
	deleted, err := s.repo.DeleteByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("links delete: %w", err)
	}

	if !deleted {
		return fmt.Errorf("links delete: %w", domain.ErrNotFound)
	}

	return nil
}

// visitLookupTimeout bounds the fallback read after a failed increment. It
// runs on a fresh context because a timed out increment has already spent
// the caller's deadline.
const visitLookupTimeout = 2 * time.Second

// Visit records a click and returns the link to redirect to. Counting is
// best effort: if the increment fails for any reason other than a missing
// link, the failure is logged and the link is looked up instead.
func (s *Service) Visit(ctx context.Context, code string) (domain.Link, error) {
	link, err := s.repo.IncrementClick(ctx, code)
	if err == nil {
		return link, nil
	}

	if errors.Is(err, domain.ErrNotFound) {
		return domain.Link{}, fmt.Errorf("links visit: %w", err)
	}

	s.log.Warn("click increment failed; redirecting without counting", "code", code, "error", err)

	lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), visitLookupTimeout)
	defer cancel()

	link, lookupErr := s.repo.GetByCode(lookupCtx, code)
	if lookupErr != nil {
		return domain.Link{}, fmt.Errorf("links visit: %w", lookupErr)
	}

	return link, nil
}

func (s *Service) Ping(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return fmt.Errorf("links ping: %w", err)
	}

	return nil
}
