package usecases

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/dto"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/entities"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/repositories"
	infrarepo "github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/infrastructure/repositories"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/pkg/config"
	apperrors "github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testBlobPrefix = "https://blob.test/"

type storedBlob struct {
	Key         string
	ContentType string
	Data        []byte
}

type fakeBlobStore struct {
	mu        sync.Mutex
	puts      []storedBlob
	deleted   []string
	putErr    error
	deleteErr error
}

func (f *fakeBlobStore) Put(_ context.Context, obj repositories.BlobObject) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts = append(f.puts, storedBlob{Key: obj.Key, ContentType: obj.ContentType, Data: data})
	return testBlobPrefix + obj.Key, nil
}

func (f *fakeBlobStore) Delete(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, url)
	return nil
}

func (f *fakeBlobStore) Owns(url string) bool {
	return strings.HasPrefix(url, testBlobPrefix)
}

func (f *fakeBlobStore) putCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.puts)
}

type memQueue struct {
	mu   sync.Mutex
	jobs []repositories.CleanupJob
}

func (q *memQueue) Push(_ context.Context, job repositories.CleanupJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *memQueue) Pop(_ context.Context) (repositories.CleanupJob, bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.jobs) == 0 {
		return repositories.CleanupJob{}, false, nil
	}
	job := q.jobs[0]
	q.jobs = q.jobs[1:]
	return job, true, nil
}

func (q *memQueue) snapshot() []repositories.CleanupJob {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]repositories.CleanupJob(nil), q.jobs...)
}

type fakeThumbnails struct {
	link  string
	err   error
	calls int
}

func (f *fakeThumbnails) LookupThumbnail(_ context.Context, id, hash string) (string, error) {
	f.calls++
	return f.link, f.err
}

type memCache struct {
	entries map[string]string
}

func (c *memCache) Get(_ context.Context, id string) (string, bool) {
	v, ok := c.entries[id]
	return v, ok
}

func (c *memCache) Set(_ context.Context, id, link string, _ time.Duration) {
	if c.entries == nil {
		c.entries = map[string]string{}
	}
	c.entries[id] = link
}

type fakeVimeoAPI struct {
	video      *dto.VimeoVideo
	found      bool
	err        error
	page       *dto.VimeoPage
	collection *dto.VimeoCollection
	fetches    int
	lastID     string
	lastHash   string
}

func (f *fakeVimeoAPI) FetchByID(_ context.Context, id, hash string) (*dto.VimeoVideo, bool, error) {
	f.fetches++
	f.lastID, f.lastHash = id, hash
	return f.video, f.found, f.err
}

func (f *fakeVimeoAPI) FetchPage(_ context.Context, perPage, page int) (*dto.VimeoPage, error) {
	return f.page, f.err
}

func (f *fakeVimeoAPI) FetchAll(_ context.Context, perPage, maxPages int) (*dto.VimeoCollection, error) {
	return f.collection, f.err
}

func (f *fakeVimeoAPI) VerifyConnection(_ context.Context) dto.VimeoVerifyResult {
	if f.err != nil {
		return dto.VimeoVerifyResult{OK: false, Message: f.err.Error()}
	}
	return dto.VimeoVerifyResult{OK: true, Message: "ok"}
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "catalog.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return database
}

type videoFixture struct {
	svc   VideoService
	db    *gorm.DB
	store *fakeBlobStore
	queue *memQueue
	thumb *fakeThumbnails
}

func newVideoFixture(t *testing.T) *videoFixture {
	t.Helper()
	database := openTestDB(t)
	if err := database.AutoMigrate(&entities.Video{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return newVideoFixtureWithDB(t, database)
}

func newVideoFixtureWithDB(t *testing.T, database *gorm.DB) *videoFixture {
	t.Helper()
	store := &fakeBlobStore{}
	q := &memQueue{}
	thumb := &fakeThumbnails{}
	gateway := NewBlobGateway(store, testThumbnailConfig())
	cleanup := NewCleanupService(q, store, config.CleanupConfig{MaxAttempts: 3, Workers: 2, BatchSize: 10})
	return &videoFixture{
		svc:   NewVideoService(infrarepo.NewVideoRepository(database), gateway, thumb, cleanup),
		db:    database,
		store: store,
		queue: q,
		thumb: thumb,
	}
}

func testThumbnailConfig() config.ThumbnailConfig {
	return config.ThumbnailConfig{
		MaxBytes:  10 * 1024 * 1024,
		MaxWidth:  1920,
		MaxHeight: 1080,
		Quality:   85,
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError with code %s, got %T: %v", code, err, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, appErr.Code, err)
	}
}

func strPtr(s string) *string { return &s }
