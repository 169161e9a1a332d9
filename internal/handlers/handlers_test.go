package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/legalease/backend/internal/repos"
	"github.com/legalease/backend/internal/services"
	"github.com/legalease/backend/internal/storage"
	"github.com/legalease/backend/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type handlerFixture struct {
	router  *gin.Engine
	dataset services.DatasetService
}

// newHandlerFixture wires the real services over an isolated database and
// registers the same routes the server mounts.
func newHandlerFixture(t *testing.T, maxUploadBytes int64) *handlerFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	log := testutil.NewTestLogger(t)

	store, err := storage.NewLocalStore(t.TempDir(), log)
	if err != nil {
		t.Fatalf("local store: %v", err)
	}

	contractRepo := repos.NewContractRepo(db, log)
	analysisRepo := repos.NewAnalysisRepo(db, log)
	clauseRepo := repos.NewClauseRepo(db, log)
	datasetRepo := repos.NewDatasetClauseRepo(db, log)

	contracts := services.NewContractService(db, log, store, contractRepo, analysisRepo, clauseRepo)
	analyses := services.NewAnalysisService(db, log, services.NewFixedAnalyzer(), contractRepo, analysisRepo, clauseRepo)
	dataset := services.NewDatasetService(db, log, datasetRepo)

	contractHandler := NewContractHandler(log, contracts, maxUploadBytes)
	analysisHandler := NewAnalysisHandler(log, analyses)
	datasetHandler := NewDatasetHandler(log, dataset)

	router := gin.New()
	api := router.Group("/api/v1")
	{
		c := api.Group("/contracts")
		c.POST("/upload", contractHandler.Upload)
		c.GET("/list", contractHandler.List)
		c.GET("/:id", contractHandler.Get)
		c.DELETE("/:id", contractHandler.Delete)

		a := api.Group("/analysis")
		a.POST("/analyze", analysisHandler.Analyze)
		a.GET("/risk-levels", analysisHandler.RiskLevels)
		a.GET("/clause-types", analysisHandler.ClauseTypes)
		a.GET("/contract/:id/analysis", analysisHandler.GetContractAnalysis)

		d := api.Group("/dataset")
		d.GET("/clauses", datasetHandler.ListClauses)
		d.GET("/clauses/types/list", datasetHandler.ClauseTypes)
		d.GET("/clauses/risk-levels/list", datasetHandler.RiskLevels)
		d.GET("/clauses/:id", datasetHandler.GetClause)
		d.GET("/dataset/stats", datasetHandler.Stats)
		d.POST("/dataset/reload", datasetHandler.Reload)
	}

	return &handlerFixture{
		router:  router,
		dataset: dataset,
	}
}

func (f *handlerFixture) do(t *testing.T, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *handlerFixture) doJSON(t *testing.T, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	return f.do(t, method, path, body, "application/json")
}

// multipartFile builds a multipart form with a single "file" field.
func multipartFile(t *testing.T, filename, content string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func uploadOne(t *testing.T, f *handlerFixture, filename, content string) ContractUploadResponse {
	t.Helper()
	body, contentType := multipartFile(t, filename, content)
	rec := f.do(t, http.MethodPost, "/api/v1/contracts/upload", body, contentType)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload %q: status %d, body %s", filename, rec.Code, rec.Body.String())
	}
	return decode[ContractUploadResponse](t, rec)
}

func loadDataset(t *testing.T, f *handlerFixture) {
	t.Helper()
	if err := f.dataset.Load(context.Background()); err != nil {
		t.Fatalf("load dataset: %v", err)
	}
}
