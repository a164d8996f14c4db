package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bobmcallan/portdash/internal/app"
	"github.com/bobmcallan/portdash/internal/common"
	"github.com/bobmcallan/portdash/internal/models"
	"github.com/bobmcallan/portdash/internal/services/dashboard"
	"github.com/bobmcallan/portdash/internal/storage"
	"github.com/bobmcallan/portdash/internal/view"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testUsers() []*models.User {
	return []*models.User{
		{
			ID:        "1",
			Profile:   models.Profile{Firstname: "A", Lastname: "B", Address: "1 St", City: "Town", Email: "a@b.c"},
			Portfolio: []models.PortfolioEntry{{Symbol: "XYZ", Owned: 5}},
		},
		{
			ID:      "2",
			Profile: models.Profile{Firstname: "Cal", Lastname: "Cole"},
		},
	}
}

func testStocks() []*models.Stock {
	return []*models.Stock{{Symbol: "XYZ", Name: "XYZ Corp", Sector: "Tech", SubIndustry: "Software", Address: "1 Loop"}}
}

func newTestServer(t *testing.T, tweak func(cfg *common.Config)) *Server {
	t.Helper()
	cfg := common.NewDefaultConfig()
	cfg.Data.LogosDir = ""
	if tweak != nil {
		tweak(cfg)
	}
	logger := common.NewSilentLogger()

	page, err := view.NewPage()
	require.NoError(t, err)
	store := storage.NewMemoryStore(testUsers(), testStocks())
	svc, err := dashboard.NewService(store, page, logger)
	require.NoError(t, err)

	return NewServer(&app.App{
		Config:      cfg,
		Logger:      logger,
		Store:       store,
		Dashboard:   svc,
		StartupTime: time.Now(),
	})
}

func do(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	return rr
}

func postForm(t *testing.T, s *Server, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(t, s, req)
}

func parsePage(t *testing.T, rr *httptest.ResponseRecorder) *view.HTMLDocument {
	t.Helper()
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	doc, err := view.ParseDocument(rr.Body)
	require.NoError(t, err)
	return doc
}

func pageValue(t *testing.T, doc *view.HTMLDocument, field string) string {
	t.Helper()
	v, err := doc.Value(field)
	require.NoError(t, err)
	return v
}

func pageText(t *testing.T, doc *view.HTMLDocument, id string) string {
	t.Helper()
	v, err := doc.Text(id)
	require.NoError(t, err)
	return v
}

func TestHandlePage_InitialState(t *testing.T) {
	s := newTestServer(t, nil)

	rr := do(t, s, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	doc := parsePage(t, rr)

	entries, err := doc.Read(view.RegionUserList)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "B, A", entries[0].Children[0].Text)
	assert.Equal(t, "Cole, Cal", entries[1].Children[0].Text)

	for _, f := range view.FormFields {
		assert.Empty(t, pageValue(t, doc, f), f)
	}

	rows, err := doc.Read(view.RegionPortfolio)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header row only")
	assert.Empty(t, pageText(t, doc, view.StockName))
}

func TestHandlePage_UnknownPath(t *testing.T) {
	s := newTestServer(t, nil)
	rr := do(t, s, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandlePage_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t, nil)
	rr := do(t, s, httptest.NewRequest(http.MethodDelete, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET, HEAD", rr.Header().Get("Allow"))
}

func TestHandleEvent_FormScenario(t *testing.T) {
	s := newTestServer(t, nil)

	// Select user 1.
	rr := postForm(t, s, url.Values{"region": {"user-list"}, "target": {"1"}})
	require.Equal(t, http.StatusOK, rr.Code)
	doc := parsePage(t, rr)
	assert.Equal(t, "1", pageValue(t, doc, view.FieldID))
	assert.Equal(t, "A", pageValue(t, doc, view.FieldFirstname))
	assert.Equal(t, "a@b.c", pageValue(t, doc, view.FieldEmail))

	rows, err := doc.Read(view.RegionPortfolio)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "XYZ", rows[1].Attr("data-symbol"))
	chart, err := doc.Attr(view.PortfolioChart, "src")
	require.NoError(t, err)
	assert.Equal(t, "/charts/portfolio.svg?user=1", chart)

	// View the held stock.
	rr = postForm(t, s, url.Values{"region": {"portfolio"}, "target": {"XYZ"}})
	require.Equal(t, http.StatusOK, rr.Code)
	doc = parsePage(t, rr)
	assert.Equal(t, "XYZ Corp", pageText(t, doc, view.StockName))
	assert.Equal(t, "Software", pageText(t, doc, view.StockIndustry))
	logo, err := doc.Attr(view.StockLogo, "src")
	require.NoError(t, err)
	assert.Equal(t, "logos/XYZ.svg", logo)

	// Delete the selected user with the submitted form.
	rr = postForm(t, s, url.Values{
		"region":    {"edit-form"},
		"target":    {"delete"},
		"userID":    {"1"},
		"firstname": {"A"},
	})
	require.Equal(t, http.StatusOK, rr.Code)
	doc = parsePage(t, rr)
	entries, err := doc.Read(view.RegionUserList)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Cole, Cal", entries[0].Children[0].Text)
	assert.Empty(t, pageValue(t, doc, view.FieldID))
	assert.Equal(t, "XYZ Corp", pageText(t, doc, view.StockName), "stock panel untouched by delete")

	_, ok := s.app.Dashboard.Selected()
	assert.False(t, ok)
}

func TestHandleEvent_SaveFromForm(t *testing.T) {
	s := newTestServer(t, nil)

	rr := postForm(t, s, url.Values{
		"region":    {"edit-form"},
		"target":    {"save"},
		"userID":    {"2.0"},
		"firstname": {"Cal"},
		"lastname":  {"Smith"},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	u, err := s.app.Dashboard.User("2")
	require.NoError(t, err)
	assert.Equal(t, "Smith", u.Profile.Lastname)

	doc := parsePage(t, rr)
	entries, err := doc.Read(view.RegionUserList)
	require.NoError(t, err)
	assert.Equal(t, "Smith, Cal", entries[1].Children[0].Text)
}

func TestHandleEvent_UnknownStock(t *testing.T) {
	s := newTestServer(t, nil)

	rr := postForm(t, s, url.Values{"region": {"portfolio"}, "target": {"NOPE"}})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	doc := parsePage(t, rr)
	assert.Empty(t, pageText(t, doc, view.StockName))
}

func TestHandleEvent_UnknownRegion(t *testing.T) {
	s := newTestServer(t, nil)
	rr := postForm(t, s, url.Values{"region": {"sidebar"}, "target": {"x"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleEvent_ListClickWithoutTarget(t *testing.T) {
	s := newTestServer(t, nil)
	rr := postForm(t, s, url.Values{"region": {"user-list"}})
	assert.Equal(t, http.StatusOK, rr.Code)
	_, ok := s.app.Dashboard.Selected()
	assert.False(t, ok)
}

func TestHandleEvent_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t, nil)
	rr := do(t, s, httptest.NewRequest(http.MethodGet, "/events", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHandleEvent_JSON(t *testing.T) {
	s := newTestServer(t, nil)

	body := `{"region":"user-list","target":"1","tag":"button"}`
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := do(t, s, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "1", resp["selected"])
}

func TestHandleEvent_JSONErrors(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(`{"region":`))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusBadRequest, do(t, s, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(`{"region":"portfolio","target":"NOPE","tag":"button"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := do(t, s, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "stock not found")
}

func TestHandleEvent_RateLimited(t *testing.T) {
	s := newTestServer(t, func(cfg *common.Config) {
		cfg.Server.EventRateLimit = 0.001
		cfg.Server.EventBurst = 1
	})

	form := url.Values{"region": {"user-list"}, "target": {"1"}}
	assert.Equal(t, http.StatusOK, postForm(t, s, form).Code)

	rr := postForm(t, s, form)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
}

func TestHandleUserList(t *testing.T) {
	s := newTestServer(t, nil)

	rr := do(t, s, httptest.NewRequest(http.MethodGet, "/api/users", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Status string        `json:"status"`
		Count  int           `json:"count"`
		Data   []models.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, models.ID("1"), resp.Data[0].ID)
	assert.Equal(t, "Cole", resp.Data[1].Profile.Lastname)
}

func TestHandleUserGet(t *testing.T) {
	s := newTestServer(t, nil)

	rr := do(t, s, httptest.NewRequest(http.MethodGet, "/api/users/1.0", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Data models.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "B", resp.Data.Profile.Lastname)
	require.Len(t, resp.Data.Portfolio, 1)
	assert.Equal(t, 5, resp.Data.Portfolio[0].Owned)

	assert.Equal(t, http.StatusNotFound, do(t, s, httptest.NewRequest(http.MethodGet, "/api/users/99", nil)).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, httptest.NewRequest(http.MethodGet, "/api/users/", nil)).Code)
}

func TestHandleStocks(t *testing.T) {
	s := newTestServer(t, nil)

	rr := do(t, s, httptest.NewRequest(http.MethodGet, "/api/stocks", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"subIndustry":"Software"`)

	rr = do(t, s, httptest.NewRequest(http.MethodGet, "/api/stocks/XYZ", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"logo":"logos/XYZ.svg"`)

	assert.Equal(t, http.StatusNotFound, do(t, s, httptest.NewRequest(http.MethodGet, "/api/stocks/NOPE", nil)).Code)
}

func TestHandleSelection(t *testing.T) {
	s := newTestServer(t, nil)

	rr := do(t, s, httptest.NewRequest(http.MethodGet, "/api/selection", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"selected":false`)

	postForm(t, s, url.Values{"region": {"user-list"}, "target": {"2"}})
	rr = do(t, s, httptest.NewRequest(http.MethodGet, "/api/selection", nil))
	assert.Contains(t, rr.Body.String(), `"user_id":"2"`)
}

func TestHandlePortfolioChart(t *testing.T) {
	s := newTestServer(t, nil)

	rr := do(t, s, httptest.NewRequest(http.MethodGet, "/charts/portfolio.svg?user=1", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/svg+xml", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "<svg")

	// No holdings.
	rr = do(t, s, httptest.NewRequest(http.MethodGet, "/charts/portfolio.svg?user=2", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Unknown user.
	rr = do(t, s, httptest.NewRequest(http.MethodGet, "/charts/portfolio.svg?user=42", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// No user and no selection.
	rr = do(t, s, httptest.NewRequest(http.MethodGet, "/charts/portfolio.svg", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Falls back to the selection.
	postForm(t, s, url.Values{"region": {"user-list"}, "target": {"1"}})
	rr = do(t, s, httptest.NewRequest(http.MethodGet, "/charts/portfolio.svg", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHandleHealthAndVersion(t *testing.T) {
	s := newTestServer(t, nil)

	rr := do(t, s, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	rr = do(t, s, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, common.GetVersion(), resp["version"])
	assert.NotEmpty(t, resp["uptime"])
}

func TestLogosServedFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "XYZ.svg"), []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`), 0o644))

	s := newTestServer(t, func(cfg *common.Config) { cfg.Data.LogosDir = dir })
	rr := do(t, s, httptest.NewRequest(http.MethodGet, "/logos/XYZ.svg", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "<svg")
}
