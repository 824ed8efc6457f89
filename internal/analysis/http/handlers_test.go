package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/camel-tools-api/camel-api/internal/analysis/domain"
	"github.com/camel-tools-api/camel-api/internal/analysis/service"
	"github.com/camel-tools-api/camel-api/internal/nlp/morphology"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T, opts service.Options) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := morphology.BuiltinDB()
	require.NoError(t, err)
	tk, err := service.NewToolkit(db)
	require.NoError(t, err)
	svc, err := service.NewAnalysisService(tk, nil, nil, nil, opts)
	require.NoError(t, err)

	router := gin.New()
	New(svc).Register(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) domain.ErrorBody {
	t.Helper()
	var resp struct {
		Error domain.ErrorBody `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}

func TestAnalyzeHandler(t *testing.T) {
	router := setupRouter(t, service.DefaultOptions())

	tests := []struct {
		name string
		body string
		want string
	}{
		{"dediac bare word", `{"text":"كتب","flag":"dediac"}`, `{"output":"كتب"}`},
		{"dediac strips marks", `{"text":"كَتَبَ","flag":"dediac"}`, `{"output":"كتب"}`},
		{"tokenizer", `{"text":"Hello world","flag":"tokenizer"}`, `{"output":["Hello","world"]}`},
		{"tagger", `{"text":"في","flag":"tagger"}`, `{"output":[["في","prep"]]}`},
		{"root_stem", `{"text":"كتب","flag":"root_stem"}`, `{"output":"root: ك.ت.ب, stem: كَتَب"}`},
		{"disambig empty", `{"text":"","flag":"disambig"}`, `{"output":""}`},
		{"unknown flag", `{"text":"كتب","flag":"Dediac"}`, fmt.Sprintf(`{"output":%q}`, domain.GuidanceMessage)},
		{"empty flag", `{"text":"كتب","flag":""}`, fmt.Sprintf(`{"output":%q}`, domain.GuidanceMessage)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doJSON(t, router, http.MethodPost, "/camel_tools", tt.body)
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.JSONEq(t, tt.want, rr.Body.String())
		})
	}
}

func TestAnalyzeHandler_BadRequest(t *testing.T) {
	router := setupRouter(t, service.DefaultOptions())

	for _, body := range []string{
		`{"text":"كتب"}`,
		`{"flag":"dediac"}`,
		`{"text":5,"flag":"dediac"}`,
		`{"text":"كتب","flag":`,
		``,
	} {
		t.Run(body, func(t *testing.T) {
			rr := doJSON(t, router, http.MethodPost, "/camel_tools", body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, domain.KindInvalidRequest, decodeError(t, rr).Kind)
		})
	}
}

func TestAnalyzeHandler_NoAnalysis(t *testing.T) {
	router := setupRouter(t, service.DefaultOptions())

	rr := doJSON(t, router, http.MethodPost, "/camel_tools", `{"text":"Hello","flag":"root_stem"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, domain.KindNoAnalysis, decodeError(t, rr).Kind)
}

func TestAnalyzeHandler_TextTooLong(t *testing.T) {
	opts := service.DefaultOptions()
	opts.MaxTextRunes = 5
	router := setupRouter(t, opts)

	body := fmt.Sprintf(`{"text":%q,"flag":"dediac"}`, strings.Repeat("ك", 6))
	rr := doJSON(t, router, http.MethodPost, "/camel_tools", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Equal(t, domain.KindTextTooLong, decodeError(t, rr).Kind)
}

func TestAnalyzeHandler_BodyTooLarge(t *testing.T) {
	opts := service.DefaultOptions()
	opts.MaxTextRunes = 5
	router := setupRouter(t, opts)

	// a short text with a large unknown field is cut off while reading
	body := fmt.Sprintf(`{"text":"كتب","flag":"dediac","pad":%q}`, strings.Repeat("x", 8192))
	rr := doJSON(t, router, http.MethodPost, "/camel_tools", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Equal(t, domain.KindTextTooLong, decodeError(t, rr).Kind)

	rr = doJSON(t, router, http.MethodPost, "/camel_tools/batch",
		fmt.Sprintf(`{"requests":[{"text":"كتب","flag":"dediac"}],"pad":%q}`, strings.Repeat("x", 1<<20)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Equal(t, domain.KindTextTooLong, decodeError(t, rr).Kind)
}

func TestAnalyzeHandler_EscapedTextWithinLimit(t *testing.T) {
	opts := service.DefaultOptions()
	opts.MaxTextRunes = 5
	router := setupRouter(t, opts)

	// five runes outside the BMP, each escaped as a surrogate pair
	body := `{"text":"` + strings.Repeat(`\ud83d\ude00`, 5) + `","flag":"dediac"}`
	rr := doJSON(t, router, http.MethodPost, "/camel_tools", body)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"output":"`+strings.Repeat("\U0001F600", 5)+`"}`, rr.Body.String())
}

func TestAnalyzeBatchHandler(t *testing.T) {
	router := setupRouter(t, service.DefaultOptions())

	body := `{"requests":[
		{"text":"كَتَبَ","flag":"dediac"},
		{"text":"Hello","flag":"root_stem"},
		{"text":"a b","flag":"tokenizer"}
	]}`
	rr := doJSON(t, router, http.MethodPost, "/camel_tools/batch", body)
	require.Equal(t, http.StatusOK, rr.Code)

	assert.JSONEq(t, `{"results":[
		{"output":"كتب"},
		{"error":{"kind":"no_analysis","message":"no analysis found for \"Hello\""}},
		{"output":["a","b"]}
	]}`, rr.Body.String())
}

func TestAnalyzeBatchHandler_BadRequest(t *testing.T) {
	opts := service.DefaultOptions()
	opts.BatchMaxItems = 1
	router := setupRouter(t, opts)

	for name, body := range map[string]string{
		"empty":        `{"requests":[]}`,
		"missing":      `{}`,
		"item missing": `{"requests":[{"text":"x"}]}`,
		"over limit":   `{"requests":[{"text":"x","flag":"dediac"},{"text":"y","flag":"dediac"}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			rr := doJSON(t, router, http.MethodPost, "/camel_tools/batch", body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, domain.KindInvalidRequest, decodeError(t, rr).Kind)
		})
	}
}

func TestListOperations(t *testing.T) {
	router := setupRouter(t, service.DefaultOptions())

	rr := doJSON(t, router, http.MethodGet, "/camel_tools/operations", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"operations":["tokenizer","tagger","disambig","dediac","root_stem"]}`, rr.Body.String())
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrInvalidRequest, http.StatusBadRequest},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.ErrTextTooLong, http.StatusRequestEntityTooLarge},
		{fmt.Errorf("%w for %q", domain.ErrNoAnalysis, "x"), http.StatusUnprocessableEntity},
		{domain.ErrRateLimited, http.StatusTooManyRequests},
		{domain.ErrTimeout, http.StatusGatewayTimeout},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{context.Canceled, StatusClientClosedRequest},
		{domain.ErrCapabilityFailed, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}
