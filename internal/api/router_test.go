// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

package api

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/chesthound/chesthound/internal/config"
	"github.com/chesthound/chesthound/internal/database"
	"github.com/chesthound/chesthound/internal/ingest"
	"github.com/chesthound/chesthound/internal/models"
	"github.com/chesthound/chesthound/internal/savefile"
)

// testDBSemaphore serializes test database usage. Concurrent DuckDB CGO
// access from parallel test binaries can hang under constrained CI runners.
var testDBSemaphore = make(chan struct{}, 1)

func testConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{Path: ":memory:", MaxMemory: "512MB"},
		API: config.APIConfig{
			DefaultPageSize:   100,
			MaxPageSize:       1000,
			RateLimitRequests: 1000,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: true,
		},
		Upload: config.UploadConfig{MaxBodyBytes: 32 << 20},
	}
}

// setupTestServer starts an httptest server backed by an in-memory store.
func setupTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	db, err := database.New(&cfg.Database)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	handler := NewHandler(db, ingest.New(db, savefile.NewJSONParser()), cfg)
	srv := httptest.NewServer(NewRouter(handler, &cfg.API).Setup())
	t.Cleanup(srv.Close)
	return srv
}

type testResponse struct {
	Status string           `json:"status"`
	Data   json.RawMessage  `json:"data"`
	Error  *models.APIError `json:"error"`
}

func doRequest(t *testing.T, method, url string, body io.Reader, contentType string) (*http.Response, *testResponse) {
	t.Helper()

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	decoded := &testResponse{}
	if err := json.NewDecoder(res.Body).Decode(decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return res, decoded
}

func get(t *testing.T, url string) (*http.Response, *testResponse) {
	t.Helper()
	return doRequest(t, http.MethodGet, url, nil, "")
}

// itemBlob base64-encodes a JSON item list the way exported saves carry it.
func itemBlob(itemsJSON string) string {
	return base64.StdEncoding.EncodeToString([]byte(itemsJSON))
}

func worldDataJSON(netTime float64, blobs ...string) string {
	zdos := ""
	for i, blob := range blobs {
		if i > 0 {
			zdos += ","
		}
		zdos += fmt.Sprintf(`{
			"prefabName": "piece_chest_wood",
			"position": {"x": %d, "y": 30, "z": 5},
			"sector": {"x": 0, "y": 0},
			"rotation": {"x": 0, "y": 0, "z": 0},
			"longsByName": {"creator": 7},
			"stringsByName": {"items": %q}
		}`, i*3, blob)
	}
	return fmt.Sprintf(`{
		"meta": {"worldVersion": 34, "netTime": %f, "modified": 1756200000},
		"zdoList": [%s]
	}`, netTime, zdos)
}

const worldMetaJSON = `{"name": "Midgard", "uid": 424242, "seed": 42, "seedName": "HkvPzqsNNG"}`

// uploadBody builds the multipart form for the upload endpoint.
func uploadBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for field, content := range fields {
		fw, err := mw.CreateFormFile(field, field+".json")
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return buf, mw.FormDataContentType()
}

func upload(t *testing.T, srv *httptest.Server, worldData, worldMeta string) (*http.Response, *testResponse) {
	t.Helper()
	body, contentType := uploadBody(t, map[string]string{
		uploadFieldWorldData: worldData,
		uploadFieldWorldMeta: worldMeta,
	})
	return doRequest(t, http.MethodPost, srv.URL+"/api/v1/worlds/upload", body, contentType)
}

func decodeUploadResult(t *testing.T, decoded *testResponse) *models.UploadResult {
	t.Helper()
	result := &models.UploadResult{}
	if err := json.Unmarshal(decoded.Data, result); err != nil {
		t.Fatalf("failed to decode upload result: %v", err)
	}
	return result
}

func TestUploadWorldLifecycle(t *testing.T) {
	srv := setupTestServer(t, testConfig())

	// First upload creates the world.
	data := worldDataJSON(1000,
		itemBlob(`[{"name":"Wood","stack":10},{"name":"Stone","stack":2}]`),
		itemBlob(`[{"name":"Wood","stack":5}]`),
	)
	res, decoded := upload(t, srv, data, worldMetaJSON)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("want 201, got %d (%+v)", res.StatusCode, decoded.Error)
	}
	result := decodeUploadResult(t, decoded)
	if !result.Created || result.WorldName != "Midgard" {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.TotalChests != 2 || result.TotalItems != 3 {
		t.Errorf("want 2 chests / 3 items, got %d / %d", result.TotalChests, result.TotalItems)
	}

	// Newer save updates in place.
	res, decoded = upload(t, srv, worldDataJSON(2000, itemBlob(`[{"name":"Resin","stack":9}]`)), worldMetaJSON)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("want 200 for update, got %d", res.StatusCode)
	}
	result = decodeUploadResult(t, decoded)
	if result.Created || result.TotalChests != 1 {
		t.Errorf("unexpected update result: %+v", result)
	}

	// Stale and equal saves are rejected without touching the store.
	for _, netTime := range []float64{1500, 2000} {
		res, decoded = upload(t, srv, worldDataJSON(netTime, itemBlob(`[]`)), worldMetaJSON)
		if res.StatusCode != http.StatusConflict {
			t.Fatalf("net_time %v: want 409, got %d", netTime, res.StatusCode)
		}
		if decoded.Error == nil || decoded.Error.Code != "WORLD_NOT_NEWER" {
			t.Errorf("net_time %v: unexpected error %+v", netTime, decoded.Error)
		}
	}

	// The replacement inventory is what the summary reports.
	_, decoded = get(t, srv.URL+"/api/v1/worlds")
	var worlds []models.World
	if err := json.Unmarshal(decoded.Data, &worlds); err != nil {
		t.Fatalf("failed to decode worlds: %v", err)
	}
	if len(worlds) != 1 || worlds[0].UID != 424242 {
		t.Fatalf("want single world 424242, got %+v", worlds)
	}

	res, decoded = get(t, srv.URL+"/api/v1/worlds/"+worlds[0].ID.String()+"/items/summary")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("want 200 for summary, got %d", res.StatusCode)
	}
	var summary map[string]int64
	if err := json.Unmarshal(decoded.Data, &summary); err != nil {
		t.Fatalf("failed to decode summary: %v", err)
	}
	if len(summary) != 1 || summary["Resin"] != 9 {
		t.Errorf("want Resin:9 only, got %v", summary)
	}
}

func TestUploadWorldMissingField(t *testing.T) {
	srv := setupTestServer(t, testConfig())

	body, contentType := uploadBody(t, map[string]string{
		uploadFieldWorldData: worldDataJSON(100),
	})
	res, decoded := doRequest(t, http.MethodPost, srv.URL+"/api/v1/worlds/upload", body, contentType)
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", res.StatusCode)
	}
	if decoded.Error == nil || decoded.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("unexpected error: %+v", decoded.Error)
	}
}

func TestUploadWorldUndecodableSave(t *testing.T) {
	srv := setupTestServer(t, testConfig())

	res, decoded := upload(t, srv, "not json at all", worldMetaJSON)
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("want 422, got %d", res.StatusCode)
	}
	if decoded.Error == nil || decoded.Error.Code != "PARSE_ERROR" {
		t.Errorf("unexpected error: %+v", decoded.Error)
	}
}

func TestUploadWorldBodyTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.Upload.MaxBodyBytes = 512
	srv := setupTestServer(t, cfg)

	res, decoded := upload(t, srv, worldDataJSON(100, itemBlob(`[{"name":"Wood","stack":1}]`)), worldMetaJSON)
	if res.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("want 413, got %d", res.StatusCode)
	}
	if decoded.Error == nil || decoded.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("unexpected error: %+v", decoded.Error)
	}
}

func TestUploadWorldChestWithBadBlobSurvives(t *testing.T) {
	srv := setupTestServer(t, testConfig())

	data := worldDataJSON(100, "!!!not-base64!!!", itemBlob(`[{"name":"Coal","stack":4}]`))
	res, decoded := upload(t, srv, data, worldMetaJSON)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("want 201, got %d (%+v)", res.StatusCode, decoded.Error)
	}
	result := decodeUploadResult(t, decoded)
	if result.TotalChests != 2 || result.TotalItems != 1 {
		t.Errorf("bad blob must keep its chest, drop its items: %+v", result)
	}
}

func TestReadEndpoints(t *testing.T) {
	srv := setupTestServer(t, testConfig())

	data := worldDataJSON(100,
		itemBlob(`[{"name":"Wood","stack":10},{"name":"Flint","stack":6},{"name":"Coal","stack":3}]`),
	)
	_, decoded := upload(t, srv, data, worldMetaJSON)
	result := decodeUploadResult(t, decoded)

	res, decoded := get(t, srv.URL+"/api/v1/worlds/"+result.WorldID.String())
	if res.StatusCode != http.StatusOK {
		t.Fatalf("GetWorld: want 200, got %d", res.StatusCode)
	}

	res, decoded = get(t, srv.URL+"/api/v1/worlds/"+result.WorldID.String()+"/chests")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("ListChests: want 200, got %d", res.StatusCode)
	}
	var chests []models.Chest
	if err := json.Unmarshal(decoded.Data, &chests); err != nil {
		t.Fatalf("failed to decode chests: %v", err)
	}
	if len(chests) != 1 {
		t.Fatalf("want 1 chest, got %d", len(chests))
	}

	res, _ = get(t, srv.URL+"/api/v1/chests/"+chests[0].ID.String())
	if res.StatusCode != http.StatusOK {
		t.Fatalf("GetChest: want 200, got %d", res.StatusCode)
	}

	res, decoded = get(t, srv.URL+"/api/v1/chests/"+chests[0].ID.String()+"/items?limit=2&offset=0")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("ListChestItems: want 200, got %d", res.StatusCode)
	}
	var page models.ItemPage
	if err := json.Unmarshal(decoded.Data, &page); err != nil {
		t.Fatalf("failed to decode item page: %v", err)
	}
	if len(page.Items) != 2 || page.Total != 3 || !page.HasMore {
		t.Errorf("unexpected page: items=%d total=%d has_more=%v", len(page.Items), page.Total, page.HasMore)
	}

	res, _ = get(t, srv.URL+"/api/v1/items/"+page.Items[0].ID.String())
	if res.StatusCode != http.StatusOK {
		t.Fatalf("GetItem: want 200, got %d", res.StatusCode)
	}
}

func TestReadEndpointErrors(t *testing.T) {
	srv := setupTestServer(t, testConfig())

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantCode   string
	}{
		{"malformed world ID", "/api/v1/worlds/not-a-uuid", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown world", "/api/v1/worlds/3b9b79f4-43f1-4f42-b9c2-2cd35adbecbb", http.StatusNotFound, "NOT_FOUND"},
		{"unknown chest", "/api/v1/chests/3b9b79f4-43f1-4f42-b9c2-2cd35adbecbb", http.StatusNotFound, "NOT_FOUND"},
		{"unknown chest items", "/api/v1/chests/3b9b79f4-43f1-4f42-b9c2-2cd35adbecbb/items", http.StatusNotFound, "NOT_FOUND"},
		{"unknown item", "/api/v1/items/3b9b79f4-43f1-4f42-b9c2-2cd35adbecbb", http.StatusNotFound, "NOT_FOUND"},
		{"unknown world summary", "/api/v1/worlds/3b9b79f4-43f1-4f42-b9c2-2cd35adbecbb/items/summary", http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, decoded := get(t, srv.URL+tt.path)
			if res.StatusCode != tt.wantStatus {
				t.Errorf("want %d, got %d", tt.wantStatus, res.StatusCode)
			}
			if decoded.Error == nil || decoded.Error.Code != tt.wantCode {
				t.Errorf("want code %s, got %+v", tt.wantCode, decoded.Error)
			}
		})
	}
}

func TestListChestItemsInvalidPagination(t *testing.T) {
	srv := setupTestServer(t, testConfig())

	tests := []struct {
		name  string
		query string
	}{
		{"negative offset", "offset=-1"},
		{"zero limit", "limit=0"},
		{"limit above maximum", "limit=5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, decoded := get(t, srv.URL+"/api/v1/chests/3b9b79f4-43f1-4f42-b9c2-2cd35adbecbb/items?"+tt.query)
			if res.StatusCode != http.StatusBadRequest {
				t.Fatalf("want 400, got %d", res.StatusCode)
			}
			if decoded.Error == nil || decoded.Error.Code != "VALIDATION_ERROR" {
				t.Errorf("unexpected error: %+v", decoded.Error)
			}
		})
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := setupTestServer(t, testConfig())

	for _, path := range []string{"/api/v1/health", "/api/v1/health/live", "/api/v1/health/ready"} {
		res, decoded := get(t, srv.URL+path)
		if res.StatusCode != http.StatusOK {
			t.Errorf("%s: want 200, got %d", path, res.StatusCode)
		}
		if decoded.Status != "success" {
			t.Errorf("%s: unexpected status %q", path, decoded.Status)
		}
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := setupTestServer(t, testConfig())

	res, _ := get(t, srv.URL+"/api/v1/worlds")
	if res.Header.Get("X-Request-ID") == "" {
		t.Error("response must carry X-Request-ID")
	}
}
