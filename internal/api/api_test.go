package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/erazemk/najdeno/internal/db"
	"github.com/erazemk/najdeno/internal/derive"
	"github.com/erazemk/najdeno/internal/geo"
	"github.com/erazemk/najdeno/internal/i18n"
	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/storage"
	"github.com/erazemk/najdeno/internal/store"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gw := storage.New(db.NewTestDB(t), zerolog.Nop())

	// A stored preference keeps the geolocation service out of tests.
	if err := gw.SaveSetting(context.Background(), storage.KeyPreferredLanguage, i18n.LangEnglish); err != nil {
		t.Fatalf("saving language: %v", err)
	}

	s := store.New(context.Background(), gw, zerolog.Nop())
	server := httptest.NewServer(NewRouter(s, gw, geo.New(gw, zerolog.Nop())))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func createItem(t *testing.T, server *httptest.Server, title, date string) model.Item {
	t.Helper()
	resp := doJSON(t, "POST", server.URL+"/api/items", map[string]string{
		"title":    title,
		"category": model.CategoryAccessories,
		"location": "Library",
		"date":     date,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var item model.Item
	json.NewDecoder(resp.Body).Decode(&item)
	return item
}

func TestItemsAPIFlow(t *testing.T) {
	server := setupTestServer(t)

	item := createItem(t, server, "Wallet", "")

	// List.
	resp := doJSON(t, "GET", server.URL+"/api/items", nil)
	var items []model.Item
	json.NewDecoder(resp.Body).Decode(&items)
	resp.Body.Close()
	if len(items) != 1 || items[0].Title != "Wallet" {
		t.Fatalf("list = %+v, want the wallet", items)
	}

	// Toggle.
	resp = doJSON(t, "POST", server.URL+"/api/items/"+item.ID+"/toggle", nil)
	resp.Body.Close()
	resp = doJSON(t, "GET", server.URL+"/api/items?filter=found", nil)
	json.NewDecoder(resp.Body).Decode(&items)
	resp.Body.Close()
	if len(items) != 1 {
		t.Fatalf("found filter returned %d items, want 1", len(items))
	}

	// Edit.
	resp = doJSON(t, "PUT", server.URL+"/api/items/"+item.ID, map[string]string{"title": "Leather wallet"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("edit: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Delete.
	resp = doJSON(t, "DELETE", server.URL+"/api/items/"+item.ID, nil)
	resp.Body.Close()
	resp = doJSON(t, "GET", server.URL+"/api/items", nil)
	json.NewDecoder(resp.Body).Decode(&items)
	resp.Body.Close()
	if len(items) != 0 {
		t.Errorf("expected empty list after delete, got %d items", len(items))
	}
}

func TestCreateItemValidation(t *testing.T) {
	server := setupTestServer(t)

	resp := doJSON(t, "POST", server.URL+"/api/items", map[string]string{"description": "no title"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for missing title, got %d", resp.StatusCode)
	}
}

func TestItemsDayFilter(t *testing.T) {
	server := setupTestServer(t)
	createItem(t, server, "Monday item", "2026-03-02")
	createItem(t, server, "Tuesday item", "2026-03-03")

	resp := doJSON(t, "GET", server.URL+"/api/items?date=2026-03-03", nil)
	defer resp.Body.Close()
	var items []model.Item
	json.NewDecoder(resp.Body).Decode(&items)
	if len(items) != 1 || items[0].Title != "Tuesday item" {
		t.Errorf("day filter = %+v, want only the Tuesday item", items)
	}
}

func TestSearchEndpoint(t *testing.T) {
	server := setupTestServer(t)
	createItem(t, server, "Blue umbrella", "")
	createItem(t, server, "Keys", "")

	resp := doJSON(t, "GET", server.URL+"/api/items/search?q=umbrella", nil)
	defer resp.Body.Close()
	var results []derive.SearchResult
	json.NewDecoder(resp.Body).Decode(&results)
	if len(results) != 1 || results[0].Item.Title != "Blue umbrella" {
		t.Fatalf("search = %+v, want the umbrella", results)
	}
	if len(results[0].MatchedFields) == 0 || results[0].MatchedFields[0] != derive.FieldTitle {
		t.Errorf("matched fields = %v, want title", results[0].MatchedFields)
	}
}

func TestStatsEndpoints(t *testing.T) {
	server := setupTestServer(t)
	createItem(t, server, "Wallet", "")
	item := createItem(t, server, "Keys", "")
	doJSON(t, "POST", server.URL+"/api/items/"+item.ID+"/toggle", nil).Body.Close()

	resp := doJSON(t, "GET", server.URL+"/api/stats", nil)
	var stats derive.Stats
	json.NewDecoder(resp.Body).Decode(&stats)
	resp.Body.Close()
	if stats.Total != 2 || stats.Found != 1 || stats.Pending != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Today != 2 {
		t.Errorf("today = %d, want 2", stats.Today)
	}

	resp = doJSON(t, "GET", server.URL+"/api/stats/trend", nil)
	var series []derive.DayCount
	json.NewDecoder(resp.Body).Decode(&series)
	resp.Body.Close()
	if len(series) != 7 {
		t.Fatalf("default trend has %d days, want 7", len(series))
	}
	last := series[len(series)-1]
	if last.Pending != 1 || last.Found != 1 {
		t.Errorf("today's trend entry = %+v", last)
	}

	resp = doJSON(t, "GET", server.URL+"/api/stats/trend?start=2026-03-05&end=2026-03-01", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("inverted range: expected 400, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestNotificationsFlow(t *testing.T) {
	server := setupTestServer(t)
	item := createItem(t, server, "Wallet", "")
	doJSON(t, "POST", server.URL+"/api/items/"+item.ID+"/toggle", nil).Body.Close()

	resp := doJSON(t, "GET", server.URL+"/api/notifications", nil)
	var notifs []i18n.Rendered
	json.NewDecoder(resp.Body).Decode(&notifs)
	resp.Body.Close()
	if len(notifs) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifs))
	}
	if notifs[1].Title != "Item Retrieved" {
		t.Errorf("rendered title = %q", notifs[1].Title)
	}

	// Same feed in French.
	resp = doJSON(t, "GET", server.URL+"/api/notifications?lang=fr", nil)
	json.NewDecoder(resp.Body).Decode(&notifs)
	resp.Body.Close()
	if notifs[1].Title != "Objet Trouvé" {
		t.Errorf("fr rendered title = %q", notifs[1].Title)
	}

	// Badge resets on click.
	resp = doJSON(t, "GET", server.URL+"/api/notifications/unseen", nil)
	var count map[string]int
	json.NewDecoder(resp.Body).Decode(&count)
	resp.Body.Close()
	if count["count"] != 2 {
		t.Errorf("unseen = %d, want 2", count["count"])
	}
	doJSON(t, "POST", server.URL+"/api/notifications/click", nil).Body.Close()
	resp = doJSON(t, "GET", server.URL+"/api/notifications/unseen", nil)
	json.NewDecoder(resp.Body).Decode(&count)
	resp.Body.Close()
	if count["count"] != 0 {
		t.Errorf("unseen after click = %d, want 0", count["count"])
	}

	// Clear one category, then everything.
	doJSON(t, "DELETE", server.URL+"/api/notifications?category="+model.NotificationNew, nil).Body.Close()
	resp = doJSON(t, "GET", server.URL+"/api/notifications", nil)
	json.NewDecoder(resp.Body).Decode(&notifs)
	resp.Body.Close()
	if len(notifs) != 1 {
		t.Fatalf("expected 1 notification after category clear, got %d", len(notifs))
	}
	doJSON(t, "DELETE", server.URL+"/api/notifications", nil).Body.Close()
	resp = doJSON(t, "GET", server.URL+"/api/notifications", nil)
	json.NewDecoder(resp.Body).Decode(&notifs)
	resp.Body.Close()
	if len(notifs) != 0 {
		t.Errorf("expected empty feed, got %d", len(notifs))
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	server := setupTestServer(t)
	createItem(t, server, "Wallet", "2026-03-02")
	createItem(t, server, "Keys", "2026-03-03")

	resp := doJSON(t, "GET", server.URL+"/api/export?format=csv", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", resp.StatusCode)
	}
	exported, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	// Import the export into a fresh server: both items arrive.
	other := setupTestServer(t)
	resp = uploadFile(t, other.URL+"/api/import", "items.csv", exported)
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("import: expected 200, got %d: %s", resp.StatusCode, body)
	}
	var result map[string]int
	json.NewDecoder(resp.Body).Decode(&result)
	resp.Body.Close()
	if result["imported"] != 2 {
		t.Errorf("imported = %d, want 2", result["imported"])
	}

	// Importing the same file again adds nothing.
	resp = uploadFile(t, other.URL+"/api/import", "items.csv", exported)
	json.NewDecoder(resp.Body).Decode(&result)
	resp.Body.Close()
	if result["imported"] != 0 {
		t.Errorf("re-import added %d, want 0", result["imported"])
	}
}

func TestImportRejectsMalformedFile(t *testing.T) {
	server := setupTestServer(t)
	createItem(t, server, "Wallet", "")

	resp := uploadFile(t, server.URL+"/api/import", "items.json", []byte("{not json"))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// A failed import leaves the collection untouched.
	resp = doJSON(t, "GET", server.URL+"/api/items", nil)
	var items []model.Item
	json.NewDecoder(resp.Body).Decode(&items)
	resp.Body.Close()
	if len(items) != 1 {
		t.Errorf("expected 1 item after failed import, got %d", len(items))
	}
}

func uploadFile(t *testing.T, url, filename string, content []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	part.Write(content)
	mw.Close()

	resp, err := http.Post(url, mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	return resp
}

func TestSettingsFlow(t *testing.T) {
	server := setupTestServer(t)
	old := time.Now().AddDate(0, 0, -40).Format("2006-01-02")
	createItem(t, server, "Old wallet", old)
	createItem(t, server, "Fresh keys", "")

	// Defaults.
	resp := doJSON(t, "GET", server.URL+"/api/settings", nil)
	var settings settingsResponse
	json.NewDecoder(resp.Body).Decode(&settings)
	resp.Body.Close()
	if settings.RetentionValue != storage.DefaultRetentionValue || settings.RetentionUnit != storage.DefaultRetentionUnit {
		t.Errorf("default retention = %d %s", settings.RetentionValue, settings.RetentionUnit)
	}
	if settings.Language != i18n.LangEnglish {
		t.Errorf("language = %q", settings.Language)
	}

	// Saving a shorter window prunes immediately.
	resp = doJSON(t, "PUT", server.URL+"/api/settings/retention", retentionRequest{Value: 30, Unit: store.UnitDays})
	var removed map[string]int
	json.NewDecoder(resp.Body).Decode(&removed)
	resp.Body.Close()
	if removed["removed"] != 1 {
		t.Errorf("removed = %d, want 1", removed["removed"])
	}

	resp = doJSON(t, "PUT", server.URL+"/api/settings/retention", retentionRequest{Value: -1, Unit: store.UnitDays})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for negative retention, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Auto-delete round trip.
	resp = doJSON(t, "PUT", server.URL+"/api/settings/autodelete", storage.AutoDelete{Enabled: true, Value: 90, Unit: store.UnitDays})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("autodelete: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()
	resp = doJSON(t, "GET", server.URL+"/api/settings", nil)
	json.NewDecoder(resp.Body).Decode(&settings)
	resp.Body.Close()
	if !settings.AutoDelete.Enabled || settings.AutoDelete.Value != 90 {
		t.Errorf("auto-delete = %+v", settings.AutoDelete)
	}

	// Language switch.
	resp = doJSON(t, "PUT", server.URL+"/api/settings/language", map[string]string{"language": i18n.LangSpanish})
	resp.Body.Close()
	resp = doJSON(t, "GET", server.URL+"/api/settings", nil)
	json.NewDecoder(resp.Body).Decode(&settings)
	resp.Body.Close()
	if settings.Language != i18n.LangSpanish {
		t.Errorf("language after switch = %q", settings.Language)
	}

	resp = doJSON(t, "PUT", server.URL+"/api/settings/language", map[string]string{"language": "xx"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unsupported language, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestUnknownExportFormat(t *testing.T) {
	server := setupTestServer(t)

	resp := doJSON(t, "GET", server.URL+"/api/export?format=yaml", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}
