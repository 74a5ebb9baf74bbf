package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"civic-reports/internal/apperr"
	"civic-reports/internal/blob"
	"civic-reports/internal/cache"
	"civic-reports/internal/docstore"
	"civic-reports/internal/model"
	"civic-reports/internal/repository"
	"civic-reports/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// noopCache 讓不關心快取的測試不必逐一設定 Fn
func noopCache() *cache.FakeCache {
	return &cache.FakeCache{
		GetFn: func(context.Context, string) *redis.StringCmd {
			return redis.NewStringResult("", redis.Nil)
		},
		SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
			return redis.NewStatusResult("OK", nil)
		},
		DelFn: func(_ context.Context, keys ...string) *redis.IntCmd {
			return redis.NewIntResult(int64(len(keys)), nil)
		},
	}
}

func newReportService(blobs blob.Storage, c cache.Cache) (*ReportService, *repository.Reports, worker.Pool) {
	reports := repository.NewReports(docstore.NewMemoryStore())
	pool := worker.NewPool(1)
	return NewReportService(reports, blobs, c, pool), reports, pool
}

func validInput() SubmitInput {
	return SubmitInput{
		Title:       "streetlight",
		Description: "broken",
		Category:    "Infrastructure",
		Urgency:     "High",
		Lat:         25.03,
		Lng:         121.56,
	}
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	caller := &model.User{ID: "u1"}

	t.Run("without images", func(t *testing.T) {
		svc, reports, _ := newReportService(&blob.FakeStorage{}, noopCache())
		id, err := svc.Submit(ctx, caller, validInput(), nil)
		require.NoError(t, err)

		got, err := reports.GetByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, model.StatusNotStarted, got.Status)
		require.Equal(t, "u1", got.UserID)
		require.Equal(t, &model.Location{Lat: 25.03, Lng: 121.56}, got.Location)
		require.Empty(t, got.Images)
	})

	t.Run("with images", func(t *testing.T) {
		var uploaded []string
		blobs := &blob.FakeStorage{
			UploadFn: func(_ context.Context, filename, contentType string, body io.Reader) (string, error) {
				uploaded = append(uploaded, filename)
				return "http://cdn/" + filename, nil
			},
		}
		svc, reports, _ := newReportService(blobs, noopCache())

		files := []ImageFile{
			{Filename: "a.jpg", ContentType: "image/jpeg", Body: strings.NewReader("jpg")},
			{Filename: "notes.txt", ContentType: "text/plain", Body: strings.NewReader("txt")},
			{Filename: "b.png", ContentType: "image/png", Body: strings.NewReader("png")},
		}
		id, err := svc.Submit(ctx, caller, validInput(), files)
		require.NoError(t, err)
		// 非 image/* 檔案被略過
		require.Equal(t, []string{"a.jpg", "b.png"}, uploaded)

		got, err := reports.GetByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, []string{"http://cdn/a.jpg", "http://cdn/b.png"}, got.Images)
	})

	t.Run("upload failure aborts", func(t *testing.T) {
		blobs := &blob.FakeStorage{
			UploadFn: func(context.Context, string, string, io.Reader) (string, error) {
				return "", errors.New("bucket down")
			},
		}
		svc, reports, _ := newReportService(blobs, noopCache())

		_, err := svc.Submit(ctx, caller, validInput(), []ImageFile{
			{Filename: "a.jpg", ContentType: "image/jpeg", Body: strings.NewReader("jpg")},
		})
		require.Error(t, err)

		// 不留下半完成的通報
		all, err := reports.ListAll(ctx)
		require.NoError(t, err)
		require.Empty(t, all)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc, _, _ := newReportService(&blob.FakeStorage{}, noopCache())
		for _, mutate := range []func(*SubmitInput){
			func(in *SubmitInput) { in.Title = "" },
			func(in *SubmitInput) { in.Description = " " },
			func(in *SubmitInput) { in.Category = "" },
			func(in *SubmitInput) { in.Urgency = "" },
		} {
			in := validInput()
			mutate(&in)
			_, err := svc.Submit(ctx, caller, in, nil)
			require.ErrorIs(t, err, apperr.ErrInvalidArgument)
		}
	})
}

func TestMineAndDetail(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newReportService(&blob.FakeStorage{}, noopCache())

	alice := &model.User{ID: "u1"}
	bob := &model.User{ID: "u2"}

	id, err := svc.Submit(ctx, alice, validInput(), nil)
	require.NoError(t, err)
	_, err = svc.Submit(ctx, bob, validInput(), nil)
	require.NoError(t, err)

	mine, err := svc.Mine(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, id, mine[0].ID)

	got, err := svc.Detail(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, got.ID)

	_, err = svc.Detail(ctx, "missing")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	owner := &model.User{ID: "u1"}
	admin := &model.User{ID: "a1", IsAdmin: true}
	stranger := &model.User{ID: "u2"}

	t.Run("forbidden for stranger", func(t *testing.T) {
		svc, reports, _ := newReportService(&blob.FakeStorage{}, noopCache())
		id, err := svc.Submit(ctx, owner, validInput(), nil)
		require.NoError(t, err)

		require.ErrorIs(t, svc.Remove(ctx, stranger, id), apperr.ErrForbidden)
		_, err = reports.GetByID(ctx, id)
		require.NoError(t, err)
	})

	t.Run("owner removes and blobs cleaned up", func(t *testing.T) {
		var mu sync.Mutex
		var removed []string
		blobs := &blob.FakeStorage{
			UploadFn: func(_ context.Context, filename, _ string, _ io.Reader) (string, error) {
				return "http://cdn/" + filename, nil
			},
			RemoveFn: func(_ context.Context, url string) error {
				mu.Lock()
				removed = append(removed, url)
				mu.Unlock()
				return nil
			},
		}
		svc, reports, pool := newReportService(blobs, noopCache())

		id, err := svc.Submit(ctx, owner, validInput(), []ImageFile{
			{Filename: "a.jpg", ContentType: "image/jpeg", Body: strings.NewReader("jpg")},
		})
		require.NoError(t, err)

		require.NoError(t, svc.Remove(ctx, owner, id))
		_, err = reports.GetByID(ctx, id)
		require.ErrorIs(t, err, apperr.ErrNotFound)

		// 等待背景清理完成
		pool.Stop()
		require.Equal(t, []string{"http://cdn/a.jpg"}, removed)
	})

	t.Run("admin removes any report", func(t *testing.T) {
		svc, _, _ := newReportService(&blob.FakeStorage{}, noopCache())
		id, err := svc.Submit(ctx, owner, validInput(), nil)
		require.NoError(t, err)
		require.NoError(t, svc.Remove(ctx, admin, id))
	})

	t.Run("not found", func(t *testing.T) {
		svc, _, _ := newReportService(&blob.FakeStorage{}, noopCache())
		require.ErrorIs(t, svc.Remove(ctx, owner, "missing"), apperr.ErrNotFound)
	})
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()
	svc, reports, _ := newReportService(&blob.FakeStorage{}, noopCache())

	id, err := svc.Submit(ctx, &model.User{ID: "u1"}, validInput(), nil)
	require.NoError(t, err)

	require.NoError(t, svc.SetStatus(ctx, id, model.StatusDone))
	got, err := reports.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, model.StatusDone, got.Status)

	require.ErrorIs(t, svc.SetStatus(ctx, id, "archived"), apperr.ErrInvalidArgument)
	require.ErrorIs(t, svc.SetStatus(ctx, "missing", model.StatusDone), apperr.ErrNotFound)
}

func TestAdminViews(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newReportService(&blob.FakeStorage{}, noopCache())

	u := &model.User{ID: "u1"}
	_, err := svc.Submit(ctx, u, validInput(), nil)
	require.NoError(t, err)
	in := validInput()
	in.Category = "Trash"
	_, err = svc.Submit(ctx, u, in, nil)
	require.NoError(t, err)

	all, err := svc.AdminAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	filtered, err := svc.AdminFilter(ctx, repository.ReportFilter{Category: "Trash"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)

	points, err := svc.AdminMap(ctx)
	require.NoError(t, err)
	require.Len(t, points, 2)
	require.Equal(t, 25.03, points[0].Lat)
}

func TestAdminMapSkipsMissingLocation(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	reports := repository.NewReports(store)
	pool := worker.NewPool(1)
	svc := NewReportService(reports, &blob.FakeStorage{}, noopCache(), pool)

	_, err := store.Collection("reports").Add(ctx, map[string]any{"title": "no location"})
	require.NoError(t, err)
	_, err = store.Collection("reports").Add(ctx, map[string]any{
		"title":    "located",
		"location": map[string]any{"lat": 1.0, "lng": 2.0},
	})
	require.NoError(t, err)

	points, err := svc.AdminMap(ctx)
	require.NoError(t, err)
	require.Len(t, points, 1)
	require.Equal(t, "located", points[0].Title)
}

func TestAdminStats(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss computes and stores", func(t *testing.T) {
		var storedKey string
		var storedVal []byte
		var storedTTL time.Duration
		c := noopCache()
		c.SetFn = func(_ context.Context, key string, val any, ttl time.Duration) *redis.StatusCmd {
			storedKey = key
			storedVal = val.([]byte)
			storedTTL = ttl
			return redis.NewStatusResult("OK", nil)
		}
		svc, _, _ := newReportService(&blob.FakeStorage{}, c)

		_, err := svc.Submit(ctx, &model.User{ID: "u1"}, validInput(), nil)
		require.NoError(t, err)

		stats, err := svc.AdminStats(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, stats.StatusSummary[model.StatusNotStarted])

		require.Equal(t, "reports:stats", storedKey)
		require.Equal(t, 30*time.Second, storedTTL)
		var cached repository.ReportStats
		require.NoError(t, json.Unmarshal(storedVal, &cached))
		require.Equal(t, stats.StatusSummary, cached.StatusSummary)
	})

	t.Run("cache hit skips recompute", func(t *testing.T) {
		cached, _ := json.Marshal(repository.ReportStats{
			StatusSummary:   map[string]int{"done": 9},
			CategorySummary: map[string]int{"Road": 9},
		})
		c := noopCache()
		c.GetFn = func(_ context.Context, key string) *redis.StringCmd {
			require.Equal(t, "reports:stats", key)
			return redis.NewStringResult(string(cached), nil)
		}
		svc, _, _ := newReportService(&blob.FakeStorage{}, c)

		stats, err := svc.AdminStats(ctx)
		require.NoError(t, err)
		require.Equal(t, 9, stats.StatusSummary["done"])
	})

	t.Run("write invalidates cache", func(t *testing.T) {
		deleted := 0
		c := noopCache()
		c.DelFn = func(_ context.Context, keys ...string) *redis.IntCmd {
			require.Equal(t, []string{"reports:stats"}, keys)
			deleted++
			return redis.NewIntResult(1, nil)
		}
		svc, _, _ := newReportService(&blob.FakeStorage{}, c)

		id, err := svc.Submit(ctx, &model.User{ID: "u1"}, validInput(), nil)
		require.NoError(t, err)
		require.NoError(t, svc.SetStatus(ctx, id, model.StatusDone))
		require.Equal(t, 2, deleted)
	})
}
