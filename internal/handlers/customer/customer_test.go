package customer

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"customer-lookup-service/internal/pkg/response"
	"customer-lookup-service/internal/repository/source"
	"customer-lookup-service/internal/repository/sourcestore"
	"customer-lookup-service/internal/service/assistant"
	"customer-lookup-service/internal/service/ingestion"
	"customer-lookup-service/internal/service/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const uploadCSV = "วันที่ขาย,ชื่อผู้รับ,เบอร์โทร,สินค้า,จำนวน,ราคา\n" +
	"2024-06-01,Somchai,0811111111,Soap,2,200\n" +
	"2024-05-01,Somchai,0811111111,Shampoo,1,350\n" +
	"2024-05-20,Somsri,0822222222,Soap,1,100\n"

type stubFetcher struct{}

func (stubFetcher) Fetch(context.Context, string) (*source.Payload, error) {
	return &source.Payload{Name: "sales.csv", Data: []byte(uploadCSV)}, nil
}

type echoGenerator struct{}

func (echoGenerator) Generate(_ context.Context, _, prompt string) (string, error) {
	if strings.Contains(prompt, "Somchai") {
		return "Somchai bought soap", nil
	}
	return "unknown", nil
}

func setupRouter(gen assistant.Generator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	sessionService := session.NewService(stubFetcher{}, ingestion.NewPipeline(logger), sourcestore.NewMemoryStore(), logger)
	h := NewCustomerHandler(sessionService, assistant.NewService(gen, logger), 1<<20, logger)

	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/sources/url", h.LoadFromURL)
	api.POST("/sources/upload", h.Upload)
	api.DELETE("/sources", h.Reset)
	api.GET("/session", h.GetSession)
	api.GET("/records", h.ListRecords)
	api.GET("/suggestions", h.Suggest)
	api.POST("/selection", h.Select)
	api.PUT("/selection/recent", h.SetRecentFilter)
	api.PUT("/selection/page", h.SetPage)
	api.POST("/assistant", h.Ask)
	api.GET("/health", h.Health)
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func upload(t *testing.T, r http.Handler, name, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sources/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) (response.Response, map[string]any) {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, _ := resp.Data.(map[string]any)
	return resp, data
}

func TestCustomerHandler_NoDataset(t *testing.T) {
	r := setupRouter(nil)

	w := doJSON(r, http.MethodGet, "/api/v1/suggestions?q=som", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/records", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/session", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp, data := decode(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, data["dataset"])
}

func TestCustomerHandler_UploadAndBrowse(t *testing.T) {
	r := setupRouter(nil)

	w := upload(t, r, "sales.csv", uploadCSV)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, data := decode(t, w)
	assert.Equal(t, float64(3), data["record_count"])

	w = doJSON(r, http.MethodGet, "/api/v1/suggestions?q=som", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp, _ := decode(t, w)
	assert.Len(t, resp.Data, 2)

	w = doJSON(r, http.MethodPost, "/api/v1/selection", map[string]string{"phone": "0811111111"})
	require.Equal(t, http.StatusOK, w.Code)
	_, data = decode(t, w)
	summary := data["summary"].(map[string]any)
	assert.Equal(t, "Somchai", summary["name"])
	assert.Equal(t, float64(550), summary["totalSpent"])

	w = doJSON(r, http.MethodPut, "/api/v1/selection/page", map[string]int{"page": 7})
	require.Equal(t, http.StatusOK, w.Code)
	_, data = decode(t, w)
	assert.Equal(t, float64(1), data["history"].(map[string]any)["page"])

	w = doJSON(r, http.MethodPut, "/api/v1/selection/recent", map[string]bool{"enabled": true})
	require.Equal(t, http.StatusOK, w.Code)
	_, data = decode(t, w)
	assert.Equal(t, true, data["recent_only"])

	w = doJSON(r, http.MethodDelete, "/api/v1/sources", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodGet, "/api/v1/records", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomerHandler_LoadFromURL(t *testing.T) {
	r := setupRouter(nil)

	w := doJSON(r, http.MethodPost, "/api/v1/sources/url", map[string]string{"url": "not a url"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/sources/url", map[string]string{"url": "https://example.com/sales.csv"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, data := decode(t, w)
	assert.Equal(t, "text", data["kind"])
}

func TestCustomerHandler_UploadRejections(t *testing.T) {
	r := setupRouter(nil)

	w := upload(t, r, "old.xls", "whatever")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = upload(t, r, "empty.csv", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/sources/upload", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerHandler_Ask(t *testing.T) {
	disabled := setupRouter(nil)
	upload(t, disabled, "sales.csv", uploadCSV)
	doJSON(disabled, http.MethodPost, "/api/v1/selection", map[string]string{"phone": "0811111111"})
	w := doJSON(disabled, http.MethodPost, "/api/v1/assistant", map[string]string{"question": "what?"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	r := setupRouter(echoGenerator{})
	upload(t, r, "sales.csv", uploadCSV)

	w = doJSON(r, http.MethodPost, "/api/v1/assistant", map[string]string{"question": "what?"})
	assert.Equal(t, http.StatusNotFound, w.Code, "no customer selected")

	doJSON(r, http.MethodPost, "/api/v1/selection", map[string]string{"phone": "0811111111"})
	w = doJSON(r, http.MethodPost, "/api/v1/assistant", map[string]string{"question": "what?"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, data := decode(t, w)
	assert.Equal(t, "Somchai bought soap", data["answer"])
}

func TestCustomerHandler_HealthReportsFeatures(t *testing.T) {
	var body map[string]any

	r := setupRouter(nil)
	w := doJSON(r, http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, false, body["assistant_enabled"])
	assert.Equal(t, false, body["dataset_loaded"])

	r = setupRouter(echoGenerator{})
	upload(t, r, "sales.csv", uploadCSV)
	w = doJSON(r, http.MethodGet, "/api/v1/health", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["assistant_enabled"])
	assert.Equal(t, true, body["dataset_loaded"])
}
