package history

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outreach-backend/internal/jobs"
)

func emailAt(id string, t time.Time) GeneratedEmail {
	return GeneratedEmail{
		ID:             id,
		Subject:        "subject " + id,
		Content:        "body " + id,
		JobListing:     jobs.JobListing{ID: "job-" + id, Title: "DevOps Engineer", Company: "Acme", Skills: []string{"Docker"}},
		PortfolioLinks: []string{"https://example.com/" + id},
		Timestamp:      FormatTimestamp(t),
	}
}

func TestMemoryRepoListsNewestFirstRegardlessOfInsertOrder(t *testing.T) {
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	t1, t2, t3 := emailAt("t1", base), emailAt("t2", base.Add(time.Minute)), emailAt("t3", base.Add(2*time.Minute))

	orders := [][]GeneratedEmail{
		{t1, t2, t3},
		{t3, t1, t2},
		{t2, t3, t1},
	}
	for i, order := range orders {
		t.Run(fmt.Sprintf("order_%d", i), func(t *testing.T) {
			repo := NewMemoryRepo()
			for _, e := range order {
				require.NoError(t, repo.Save(context.Background(), "u1", e))
			}
			got, err := repo.List(context.Background(), "u1")
			require.NoError(t, err)
			require.Len(t, got, 3)
			assert.Equal(t, []string{"t3", "t2", "t1"}, []string{got[0].ID, got[1].ID, got[2].ID})
		})
	}
}

func TestMemoryRepoTiesPutLaterSaveFirst(t *testing.T) {
	at := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	repo := NewMemoryRepo()
	require.NoError(t, repo.Save(context.Background(), "u1", emailAt("first", at)))
	require.NoError(t, repo.Save(context.Background(), "u1", emailAt("second", at)))

	got, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "second", got[0].ID)
	assert.Equal(t, "first", got[1].ID)
}

func TestMemoryRepoUnknownUserIsEmpty(t *testing.T) {
	got, err := NewMemoryRepo().List(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMemoryRepoDeleteMissingReturnsFalse(t *testing.T) {
	removed, err := NewMemoryRepo().Delete(context.Background(), "u1", "missing")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestMemoryRepoDeleteRemovesOnlyMatchingEmail(t *testing.T) {
	now := time.Now()
	repo := NewMemoryRepo()
	require.NoError(t, repo.Save(context.Background(), "u1", emailAt("a", now)))
	require.NoError(t, repo.Save(context.Background(), "u1", emailAt("b", now.Add(time.Second))))
	require.NoError(t, repo.Save(context.Background(), "u2", emailAt("a", now)))

	removed, err := repo.Delete(context.Background(), "u1", "a")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(context.Background(), "u1", "a")
	require.NoError(t, err)
	assert.False(t, removed)

	got, _ := repo.List(context.Background(), "u1")
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)

	other, _ := repo.List(context.Background(), "u2")
	assert.Len(t, other, 1)
}

func TestMemoryRepoListReturnsCopies(t *testing.T) {
	repo := NewMemoryRepo()
	require.NoError(t, repo.Save(context.Background(), "u1", emailAt("a", time.Now())))

	got, _ := repo.List(context.Background(), "u1")
	got[0].PortfolioLinks[0] = "mutated"
	got[0].JobListing.Skills[0] = "mutated"

	again, _ := repo.List(context.Background(), "u1")
	assert.Equal(t, "https://example.com/a", again[0].PortfolioLinks[0])
	assert.Equal(t, "Docker", again[0].JobListing.Skills[0])
}

func TestMemoryRepoConcurrentSaves(t *testing.T) {
	repo := NewMemoryRepo()
	base := time.Now()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				id := fmt.Sprintf("%d-%d", w, i)
				_ = repo.Save(context.Background(), "u1", emailAt(id, base.Add(time.Duration(i)*time.Millisecond)))
				_, _ = repo.List(context.Background(), "u1")
			}
		}(w)
	}
	wg.Wait()

	got, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, got, 400)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].createdAt().After(got[i-1].createdAt()), "not sorted at %d", i)
	}
}

func TestMemoryRepoResaveReplacesAndDeleteClearsIt(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	first := emailAt("e1", base)
	second := emailAt("e1", base.Add(time.Minute))
	second.Subject = "edited"
	require.NoError(t, repo.Save(ctx, "u1", first))
	require.NoError(t, repo.Save(ctx, "u1", second))
	require.NoError(t, repo.Save(ctx, "u1", emailAt("e2", base)))

	got, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "edited", got[0].Subject)

	deleted, err := repo.Delete(ctx, "u1", "e1")
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err = repo.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "e2", got[0].ID)

	deleted, err = repo.Delete(ctx, "u1", "e1")
	require.NoError(t, err)
	assert.False(t, deleted)
}
