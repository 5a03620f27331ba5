//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ThurpatiNainesh/tinylink/internal/adapters/postgres"
	"github.com/ThurpatiNainesh/tinylink/internal/adapters/sqlstore"
	"github.com/ThurpatiNainesh/tinylink/internal/app/links"
	"github.com/ThurpatiNainesh/tinylink/internal/domain"
	"github.com/ThurpatiNainesh/tinylink/internal/testing/dbtest"
	"github.com/ThurpatiNainesh/tinylink/internal/testing/storetest"
)

func startPostgres(t *testing.T) *dbtest.Postgres {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pg, err := dbtest.StartPostgres(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	return pg
}

func TestRepoContract(t *testing.T) {
	pg := startPostgres(t)

	storetest.RunContract(t, func(t *testing.T, clock func() time.Time) links.Repo {
		require.NoError(t, pg.Reset(context.Background()))

		return postgres.NewRepo(pg.DB, sqlstore.WithClock(clock))
	})
}

func TestRepo_ConcurrentCustomCodeOneWinner(t *testing.T) {
	pg := startPostgres(t)
	svc := links.New(postgres.NewRepo(pg.DB), nil)

	const n = 20

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		won      int
		conflict int
	)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			_, err := svc.Create(context.Background(), fmt.Sprintf("https://example.com/%d", i), "racer")

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				won++
			case errors.Is(err, domain.ErrCodeExists):
				conflict++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, won)
	require.Equal(t, n-1, conflict)
}

func TestRepo_ILikeSearch(t *testing.T) {
	pg := startPostgres(t)
	ctx := context.Background()
	repo := postgres.NewRepo(pg.DB)

	_, err := repo.Create(ctx, domain.NewLink{Code: "ghub", TargetURL: "https://GitHub.com"})
	require.NoError(t, err)

	got, err := repo.List(ctx, "github")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "ghub", got[0].Code)
}
