package routers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/entities"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/domain/repositories"
	infrarepo "github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/infrastructure/repositories"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/infrastructure/vimeo"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/pkg/config"
	"github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/internal/usecases"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const blobPrefix = "https://blob.test/"

type recordingStore struct {
	mu      sync.Mutex
	puts    int
	deletes int
}

func (s *recordingStore) Put(_ context.Context, obj repositories.BlobObject) (string, error) {
	if _, err := io.Copy(io.Discard, obj.Body); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	return blobPrefix + obj.Key, nil
}

func (s *recordingStore) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++
	return nil
}

func (s *recordingStore) Owns(url string) bool {
	return strings.HasPrefix(url, blobPrefix)
}

func (s *recordingStore) counts() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puts, s.deletes
}

type testServer struct {
	app   *fiber.App
	db    *gorm.DB
	store *recordingStore
	vimeo *httptest.Server
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "api.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(&entities.Video{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	vimeoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if strings.HasPrefix(r.URL.Path, "/videos/404") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"uri":"/videos/123","name":"Reel","pictures":{"sizes":[
			{"width":640,"height":360,"link":"https://i.vimeocdn.com/small.jpg"},
			{"width":1280,"height":720,"link":"https://i.vimeocdn.com/large.jpg"}]}}`)
	}))
	t.Cleanup(vimeoSrv.Close)

	cfg := &config.Config{
		Server:    config.ServerConfig{BodyLimit: 32 * 1024 * 1024, AllowOrigins: "*"},
		Blob:      config.BlobConfig{Driver: "s3"},
		Thumbnail: config.ThumbnailConfig{MaxBytes: 10 * 1024 * 1024, MaxWidth: 1920, MaxHeight: 1080, Quality: 85},
		Vimeo:     config.VimeoConfig{PerPage: 25, MaxPages: 2},
		Admin:     config.AdminConfig{CookieName: "admin"},
	}

	store := &recordingStore{}
	vimeoClient := vimeo.NewClient(vimeoSrv.URL, cfg.VimeoToken, 5*time.Second)
	vimeoService := usecases.NewVimeoService(vimeoClient, nil, 0, cfg.Vimeo.MaxPages)
	videoService := usecases.NewVideoService(
		infrarepo.NewVideoRepository(database),
		usecases.NewBlobGateway(store, cfg.Thumbnail),
		vimeoService,
		nil,
	)

	app := NewApp(cfg, Dependencies{
		Videos: videoService,
		Vimeo:  vimeoService,
		Admin:  usecases.NewAdminService(cfg.AdminPassword),
	})
	return &testServer{app: app, db: database, store: store, vimeo: vimeoSrv}
}

func (s *testServer) do(t *testing.T, req *http.Request) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	body := map[string]interface{}{}
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
	}
	return resp, body
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartRequest(t *testing.T, path, field, filename, contentType string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	part.Write(data)
	w.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func withAdmin(req *http.Request) *http.Request {
	req.Header.Set("Cookie", "admin=1")
	return req
}

func seedVideo(t *testing.T, s *testServer, title string) *entities.Video {
	t.Helper()
	blob := blobPrefix + "videos/" + strings.ToLower(title) + ".mp4"
	v := &entities.Video{Title: title, BlobURL: &blob}
	if err := s.db.Create(v).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	return v
}

func TestMutatingEndpointsRequireAdmin(t *testing.T) {
	s := newTestServer(t)
	v := seedVideo(t, s, "Seed")
	id := fmt.Sprint(v.ID)

	requests := []*http.Request{
		multipartRequest(t, "/api/videos", "video", "clip.mp4", "video/mp4", []byte("mp4"), map[string]string{"title": "New"}),
		jsonRequest(http.MethodPost, "/api/videos/create-from-blob", `{"title":"New","blobUrl":"https://blob.test/videos/x.mp4"}`),
		jsonRequest(http.MethodPatch, "/api/videos/"+id, `{"title":"Changed"}`),
		httptest.NewRequest(http.MethodDelete, "/api/videos/"+id, nil),
		multipartRequest(t, "/api/videos/"+id+"/thumbnail", "thumbnail", "t.png", "image/png", []byte("png"), nil),
		jsonRequest(http.MethodPost, "/api/videos/reorder", `{"videoIds":[`+id+`]}`),
	}
	for _, req := range requests {
		label := req.Method + " " + req.URL.Path
		resp, body := s.do(t, req)
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", label, resp.StatusCode)
		}
		if body["error"] != "unauthorized" {
			t.Fatalf("%s: expected unauthorized code, got %v", label, body)
		}
	}

	var rows []entities.Video
	if err := s.db.Find(&rows).Error; err != nil {
		t.Fatalf("load rows: %v", err)
	}
	if len(rows) != 1 || rows[0].Title != "Seed" || rows[0].SortOrder != nil || rows[0].ThumbnailURL != nil {
		t.Fatalf("expected the seed row untouched, got %+v", rows)
	}
	if puts, deletes := s.store.counts(); puts != 0 || deletes != 0 {
		t.Fatalf("expected no blob side effects, got %d puts and %d deletes", puts, deletes)
	}
}

func TestLoginSetsCookieAndUnlocksWrites(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "let-me-in")
	s := newTestServer(t)

	resp, body := s.do(t, jsonRequest(http.MethodPost, "/api/admin/login", `{"password":"wrong"}`))
	if resp.StatusCode != fiber.StatusUnauthorized || body["error"] != "unauthorized" {
		t.Fatalf("expected 401 for wrong password, got %d %v", resp.StatusCode, body)
	}

	resp, body = s.do(t, jsonRequest(http.MethodPost, "/api/admin/login", `{"password":"let-me-in"}`))
	if resp.StatusCode != fiber.StatusOK || body["success"] != true {
		t.Fatalf("expected login success, got %d %v", resp.StatusCode, body)
	}
	setCookie := resp.Header.Get("Set-Cookie")
	if !strings.Contains(setCookie, "admin=1") || !strings.Contains(strings.ToLower(setCookie), "httponly") {
		t.Fatalf("unexpected Set-Cookie %q", setCookie)
	}

	_, body = s.do(t, withAdmin(httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)))
	if body["admin"] != true {
		t.Fatalf("expected admin=true, got %v", body)
	}
	_, body = s.do(t, httptest.NewRequest(http.MethodGet, "/api/admin/me", nil))
	if body["admin"] != false {
		t.Fatalf("expected admin=false without cookie, got %v", body)
	}

	resp, body = s.do(t, withAdmin(jsonRequest(http.MethodPost, "/api/videos/create-from-blob",
		`{"title":"Launch","blobUrl":"https://blob.test/videos/launch.mp4","category":"film"}`)))
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d %v", resp.StatusCode, body)
	}
	video := body["video"].(map[string]interface{})
	if video["title"] != "Launch" || video["blob_url"] != "https://blob.test/videos/launch.mp4" || video["description"] != nil {
		t.Fatalf("unexpected video %v", video)
	}
}

func TestLoginWithoutConfiguredPassword(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")
	s := newTestServer(t)

	resp, body := s.do(t, jsonRequest(http.MethodPost, "/api/admin/login", `{"password":"x"}`))
	if resp.StatusCode != fiber.StatusInternalServerError || body["error"] != "configuration_error" {
		t.Fatalf("expected configuration_error, got %d %v", resp.StatusCode, body)
	}
	if hint, _ := body["hint"].(string); !strings.Contains(hint, "ADMIN_PASSWORD") {
		t.Fatalf("expected remediation hint, got %v", body["hint"])
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	s := newTestServer(t)
	resp, _ := s.do(t, httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if c := resp.Header.Get("Set-Cookie"); !strings.Contains(c, "admin=;") {
		t.Fatalf("expected cleared cookie, got %q", c)
	}
}

func TestVideoReadsAndErrors(t *testing.T) {
	s := newTestServer(t)
	v := seedVideo(t, s, "Visible")

	resp, body := s.do(t, httptest.NewRequest(http.MethodGet, "/api/videos", nil))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("list: %d", resp.StatusCode)
	}
	if videos := body["videos"].([]interface{}); len(videos) != 1 {
		t.Fatalf("expected one video, got %v", videos)
	}

	resp, body = s.do(t, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/videos/%d", v.ID), nil))
	if resp.StatusCode != fiber.StatusOK || body["video"].(map[string]interface{})["title"] != "Visible" {
		t.Fatalf("get: %d %v", resp.StatusCode, body)
	}

	resp, body = s.do(t, httptest.NewRequest(http.MethodGet, "/api/videos/999", nil))
	if resp.StatusCode != fiber.StatusNotFound || body["error"] != "not_found" {
		t.Fatalf("expected 404 not_found, got %d %v", resp.StatusCode, body)
	}

	resp, body = s.do(t, httptest.NewRequest(http.MethodGet, "/api/videos/abc", nil))
	if resp.StatusCode != fiber.StatusBadRequest || body["error"] != "validation_error" {
		t.Fatalf("expected 400 validation_error, got %d %v", resp.StatusCode, body)
	}

	resp, body = s.do(t, withAdmin(httptest.NewRequest(http.MethodDelete, "/api/videos/999", nil)))
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 deleting a missing video, got %d %v", resp.StatusCode, body)
	}
}

func TestReorderAndDeleteAsAdmin(t *testing.T) {
	s := newTestServer(t)
	a := seedVideo(t, s, "A")
	b := seedVideo(t, s, "B")
	c := seedVideo(t, s, "C")

	resp, body := s.do(t, withAdmin(jsonRequest(http.MethodPost, "/api/videos/reorder",
		fmt.Sprintf(`{"videoIds":[%d,%d,%d]}`, c.ID, a.ID, b.ID))))
	if resp.StatusCode != fiber.StatusOK || body["success"] != true {
		t.Fatalf("reorder: %d %v", resp.StatusCode, body)
	}

	_, body = s.do(t, httptest.NewRequest(http.MethodGet, "/api/videos", nil))
	var got []string
	for _, item := range body["videos"].([]interface{}) {
		got = append(got, item.(map[string]interface{})["title"].(string))
	}
	if strings.Join(got, ",") != "C,A,B" {
		t.Fatalf("expected C,A,B, got %v", got)
	}

	resp, body = s.do(t, withAdmin(jsonRequest(http.MethodPost, "/api/videos/reorder", `{"videoIds":"nope"}`)))
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for malformed ids, got %d %v", resp.StatusCode, body)
	}

	resp, _ = s.do(t, withAdmin(httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/videos/%d", a.ID), nil)))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("delete: %d", resp.StatusCode)
	}
	if _, deletes := s.store.counts(); deletes != 1 {
		t.Fatalf("expected the owned blob to be deleted, got %d", deletes)
	}
}

func TestThumbnailOverLimitOverHTTP(t *testing.T) {
	s := newTestServer(t)
	v := seedVideo(t, s, "Big")

	data := make([]byte, 10*1024*1024+1024*1024/10)
	req := withAdmin(multipartRequest(t, fmt.Sprintf("/api/videos/%d/thumbnail", v.ID), "thumbnail", "big.jpg", "image/jpeg", data, nil))
	resp, body := s.do(t, req)
	if resp.StatusCode != fiber.StatusBadRequest || body["error"] != "validation_error" {
		t.Fatalf("expected 400 validation_error, got %d %v", resp.StatusCode, body)
	}
	if puts, _ := s.store.counts(); puts != 0 {
		t.Fatalf("expected no blob write, got %d", puts)
	}
}

func TestVimeoThumbnailEndpoint(t *testing.T) {
	t.Setenv("VIMEO_ACCESS_TOKEN", "")
	s := newTestServer(t)

	resp, body := s.do(t, httptest.NewRequest(http.MethodGet, "/api/videos/vimeo-thumbnail?vimeoId=123", nil))
	if resp.StatusCode != fiber.StatusInternalServerError || body["error"] != "configuration_error" {
		t.Fatalf("expected configuration_error without token, got %d %v", resp.StatusCode, body)
	}

	t.Setenv("VIMEO_ACCESS_TOKEN", "test-token")
	resp, body = s.do(t, httptest.NewRequest(http.MethodGet, "/api/videos/vimeo-thumbnail?vimeoId=https://vimeo.com/123", nil))
	if resp.StatusCode != fiber.StatusOK || body["thumbnail_url"] != "https://i.vimeocdn.com/large.jpg" {
		t.Fatalf("expected largest thumbnail, got %d %v", resp.StatusCode, body)
	}

	resp, body = s.do(t, httptest.NewRequest(http.MethodGet, "/api/videos/vimeo-thumbnail?vimeoId=404", nil))
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d %v", resp.StatusCode, body)
	}

	resp, _ = s.do(t, httptest.NewRequest(http.MethodGet, "/api/videos/vimeo-thumbnail", nil))
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 without vimeoId, got %d", resp.StatusCode)
	}
}

func TestVimeoVerifyAlwaysOK(t *testing.T) {
	t.Setenv("VIMEO_ACCESS_TOKEN", "bad-token")
	s := newTestServer(t)

	resp, body := s.do(t, httptest.NewRequest(http.MethodGet, "/api/vimeo/verify", nil))
	if resp.StatusCode != fiber.StatusOK || body["ok"] != false {
		t.Fatalf("expected 200 with ok=false, got %d %v", resp.StatusCode, body)
	}

	resp, body = s.do(t, httptest.NewRequest(http.MethodGet, "/api/vimeo?id=123", nil))
	if resp.StatusCode != fiber.StatusInternalServerError || body["error"] != "provider_auth_error" {
		t.Fatalf("expected provider_auth_error, got %d %v", resp.StatusCode, body)
	}
	if body["upstream_status"] != float64(401) {
		t.Fatalf("expected upstream_status 401, got %v", body["upstream_status"])
	}
}

func TestHealthAndUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))
	if resp.StatusCode != fiber.StatusOK || body["status"] != "ok" {
		t.Fatalf("health: %d %v", resp.StatusCode, body)
	}

	resp, body = s.do(t, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	if resp.StatusCode != fiber.StatusNotFound || body["error"] != "not_found" {
		t.Fatalf("expected json 404, got %d %v", resp.StatusCode, body)
	}
}
