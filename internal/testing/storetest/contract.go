// Package storetest is the behavioral contract every links.Repo must pass.
package storetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ThurpatiNainesh/tinylink/internal/app/links"
	"github.com/ThurpatiNainesh/tinylink/internal/domain"
)

// Factory returns an empty store. clock drives click timestamps.
type Factory func(t *testing.T, clock func() time.Time) links.Repo

const concurrentClicks = 50

var baseTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func RunContract(t *testing.T, newRepo Factory) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, newRepo Factory)
	}{
		{"CreateAndGet", testCreateAndGet},
		{"CreateDuplicateCode", testCreateDuplicateCode},
		{"GetByCodeIsExact", testGetByCodeIsExact},
		{"ListNewestFirst", testListNewestFirst},
		{"ListSearch", testListSearch},
		{"ListSearchLiteralWildcards", testListSearchLiteralWildcards},
		{"IncrementClick", testIncrementClick},
		{"IncrementClickNotFound", testIncrementClickNotFound},
		{"IncrementClickConcurrent", testIncrementClickConcurrent},
		{"DeleteByCode", testDeleteByCode},
		{"Ping", testPing},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.fn(t, newRepo)
		})
	}
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func mustCreate(t *testing.T, repo links.Repo, code, target string, createdAt time.Time) domain.Link {
	t.Helper()

	link, err := repo.Create(context.Background(), domain.NewLink{
		Code:      code,
		TargetURL: target,
		CreatedAt: createdAt,
	})
	require.NoError(t, err)

	return link
}

func codesOf(items []domain.Link) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Code)
	}

	return out
}

func testCreateAndGet(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	repo := newRepo(t, fixedClock(baseTime))

	created := mustCreate(t, repo, "abc123", "https://example.com", baseTime)
	require.Positive(t, created.ID)
	require.Equal(t, "abc123", created.Code)
	require.Equal(t, "https://example.com", created.TargetURL)
	require.Zero(t, created.TotalClicks)
	require.Nil(t, created.LastClickedAt)
	require.True(t, baseTime.Equal(created.CreatedAt), "created_at %s", created.CreatedAt)
	require.True(t, created.CreatedAt.Equal(created.UpdatedAt))

	got, err := repo.GetByCode(ctx, "abc123")
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, created.TargetURL, got.TargetURL)
	require.Nil(t, got.LastClickedAt)

	_, err = repo.GetByCode(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func testCreateDuplicateCode(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	repo := newRepo(t, fixedClock(baseTime))

	mustCreate(t, repo, "dup", "https://example.com/1", baseTime)

	_, err := repo.Create(ctx, domain.NewLink{Code: "dup", TargetURL: "https://example.com/2", CreatedAt: baseTime})
	require.ErrorIs(t, err, domain.ErrCodeExists)

	items, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "https://example.com/1", items[0].TargetURL)
}

func testGetByCodeIsExact(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	repo := newRepo(t, fixedClock(baseTime))

	mustCreate(t, repo, "AbCdEf", "https://example.com", baseTime)

	_, err := repo.GetByCode(ctx, "abcdef")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetByCode(ctx, "AbCdE")
	require.ErrorIs(t, err, domain.ErrNotFound)

	got, err := repo.GetByCode(ctx, "AbCdEf")
	require.NoError(t, err)
	require.Equal(t, "AbCdEf", got.Code)
}

func testListNewestFirst(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	repo := newRepo(t, fixedClock(baseTime))

	items, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Empty(t, items)

	mustCreate(t, repo, "old", "https://example.com/old", baseTime)
	mustCreate(t, repo, "newest", "https://example.com/newest", baseTime.Add(2*time.Hour))
	mustCreate(t, repo, "middle", "https://example.com/middle", baseTime.Add(time.Hour))

	items, err = repo.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{"newest", "middle", "old"}, codesOf(items))
}

func testListSearch(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	repo := newRepo(t, fixedClock(baseTime))

	mustCreate(t, repo, "gh", "https://GitHub.com/golang/go", baseTime)
	mustCreate(t, repo, "docs", "https://go.dev/doc", baseTime.Add(time.Minute))
	mustCreate(t, repo, "hubby", "https://example.com", baseTime.Add(2*time.Minute))

	items, err := repo.List(ctx, "HUB")
	require.NoError(t, err)
	require.Equal(t, []string{"hubby", "gh"}, codesOf(items))

	items, err = repo.List(ctx, "go.dev")
	require.NoError(t, err)
	require.Equal(t, []string{"docs"}, codesOf(items))

	items, err = repo.List(ctx, "nothing-matches")
	require.NoError(t, err)
	require.Empty(t, items)
}

func testListSearchLiteralWildcards(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	repo := newRepo(t, fixedClock(baseTime))

	mustCreate(t, repo, "pct", "https://example.com/?q=100%25", baseTime)
	mustCreate(t, repo, "under_score", "https://example.com/a", baseTime.Add(time.Minute))
	mustCreate(t, repo, "plain", "https://example.com/b", baseTime.Add(2*time.Minute))

	items, err := repo.List(ctx, "%")
	require.NoError(t, err)
	require.Equal(t, []string{"pct"}, codesOf(items))

	items, err = repo.List(ctx, "_")
	require.NoError(t, err)
	require.Equal(t, []string{"under_score"}, codesOf(items))
}

func testIncrementClick(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	clickAt := baseTime.Add(time.Hour)
	repo := newRepo(t, fixedClock(clickAt))

	mustCreate(t, repo, "clicky", "https://example.com", baseTime)

	link, err := repo.IncrementClick(ctx, "clicky")
	require.NoError(t, err)
	require.Equal(t, int64(1), link.TotalClicks)
	require.NotNil(t, link.LastClickedAt)
	require.True(t, clickAt.Equal(*link.LastClickedAt), "last_clicked_at %s", *link.LastClickedAt)
	require.True(t, clickAt.Equal(link.UpdatedAt))
	require.True(t, baseTime.Equal(link.CreatedAt))

	link, err = repo.IncrementClick(ctx, "clicky")
	require.NoError(t, err)
	require.Equal(t, int64(2), link.TotalClicks)

	got, err := repo.GetByCode(ctx, "clicky")
	require.NoError(t, err)
	require.Equal(t, int64(2), got.TotalClicks)
}

func testIncrementClickNotFound(t *testing.T, newRepo Factory) {
	repo := newRepo(t, fixedClock(baseTime))

	_, err := repo.IncrementClick(context.Background(), "ghost")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func testIncrementClickConcurrent(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	repo := newRepo(t, time.Now)

	mustCreate(t, repo, "hot", "https://example.com", baseTime)

	var wg sync.WaitGroup
	errs := make(chan error, concurrentClicks)

	wg.Add(concurrentClicks)
	for i := 0; i < concurrentClicks; i++ {
		go func() {
			defer wg.Done()
			if _, err := repo.IncrementClick(ctx, "hot"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	got, err := repo.GetByCode(ctx, "hot")
	require.NoError(t, err)
	require.Equal(t, int64(concurrentClicks), got.TotalClicks)
}

func testDeleteByCode(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	repo := newRepo(t, fixedClock(baseTime))

	mustCreate(t, repo, "keep", "https://example.com/keep", baseTime)
	mustCreate(t, repo, "drop", "https://example.com/drop", baseTime.Add(time.Minute))

	deleted, err := repo.DeleteByCode(ctx, "nope")
	require.NoError(t, err)
	require.False(t, deleted)

	items, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, items, 2)

	deleted, err = repo.DeleteByCode(ctx, "drop")
	require.NoError(t, err)
	require.True(t, deleted)

	_, err = repo.GetByCode(ctx, "drop")
	require.ErrorIs(t, err, domain.ErrNotFound)

	reused := mustCreate(t, repo, "drop", "https://example.com/again", baseTime.Add(2*time.Minute))
	require.Equal(t, "https://example.com/again", reused.TargetURL)
	require.Zero(t, reused.TotalClicks)

	items, err = repo.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{"drop", "keep"}, codesOf(items))
}

func testPing(t *testing.T, newRepo Factory) {
	repo := newRepo(t, fixedClock(baseTime))
	require.NoError(t, repo.Ping(context.Background()))
}

