package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wyr-server/internal/models"
	"wyr-server/internal/repository"
	"wyr-server/internal/service"
	"wyr-server/internal/testutil"
)

func setupRouter(repo repository.PromptRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	promptHandler := NewPromptHandler(service.NewPromptService(repo, zap.NewNop()))
	promptHandler.RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodePrompt(t *testing.T, w *httptest.ResponseRecorder) models.PromptResponse {
	t.Helper()
	var resp models.PromptResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRootAndHelloEndpoints(t *testing.T) {
	router := setupRouter(testutil.NewMemRepo())

	w := doJSON(t, router, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Family Would You Rather API"}`, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/hello", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Hello from the backend API!"}`, w.Body.String())
}

func TestDiagnosticsEndpointNeverFails(t *testing.T) {
	router := setupRouter(testutil.NewMemRepo())

	w := doJSON(t, router, http.MethodGet, "/test", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var report models.DiagnosticsReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "✅ Running", report.Backend)
	assert.Equal(t, "Connected", report.ConnectionStatus)
	assert.Equal(t, []string{"prompt"}, report.Collections)
}

func TestCreatePrompt(t *testing.T) {
	router := setupRouter(testutil.NewMemRepo())

	w := doJSON(t, router, http.MethodPost, "/api/prompts", gin.H{
		"option_a": "swim with dolphins",
		"option_b": "camp under the stars",
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodePrompt(t, w)
	assert.Len(t, resp.ID, 24, "id must be an ObjectID hex string")
	assert.Equal(t, "swim with dolphins", resp.OptionA)
	assert.Equal(t, "camp under the stars", resp.OptionB)
	assert.Equal(t, "general", resp.Category)
	assert.Nil(t, resp.CreatedBy)
	assert.Equal(t, int64(0), resp.ACount)
	assert.Equal(t, int64(0), resp.BCount)

	// A second creation gets a distinct identifier.
	w = doJSON(t, router, http.MethodPost, "/api/prompts", gin.H{
		"option_a": "swim with dolphins",
		"option_b": "camp under the stars",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, resp.ID, decodePrompt(t, w).ID)
}

func TestCreatePromptValidation(t *testing.T) {
	router := setupRouter(testutil.NewMemRepo())

	cases := []struct {
		name string
		body gin.H
	}{
		{"missing option_b", gin.H{"option_a": "swim with dolphins"}},
		{"option_a too short", gin.H{"option_a": "ab", "option_b": "camp under the stars"}},
		{"option_b too long", gin.H{"option_a": "swim with dolphins", "option_b": strings.Repeat("x", 141)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/prompts", tc.body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		})
	}
}

func TestVoteUpdatesCounts(t *testing.T) {
	router := setupRouter(testutil.NewMemRepo())

	w := doJSON(t, router, http.MethodPost, "/api/prompts", gin.H{
		"option_a": "have a pet dinosaur",
		"option_b": "have a pet dragon",
	})
	require.Equal(t, http.StatusOK, w.Code)
	created := decodePrompt(t, w)

	w = doJSON(t, router, http.MethodPost, "/api/votes", gin.H{
		"prompt_id": created.ID,
		"option":    "a",
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodePrompt(t, w)
	assert.Equal(t, int64(1), resp.ACount)
	assert.Equal(t, int64(0), resp.BCount)

	w = doJSON(t, router, http.MethodPost, "/api/votes", gin.H{
		"prompt_id": created.ID,
		"option":    "b",
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodePrompt(t, w)
	assert.Equal(t, int64(1), resp.ACount)
	assert.Equal(t, int64(1), resp.BCount)
}

func TestVoteMalformedIdentifierIsBadRequest(t *testing.T) {
	router := setupRouter(testutil.NewMemRepo())

	w := doJSON(t, router, http.MethodPost, "/api/votes", gin.H{
		"prompt_id": "definitely-not-an-object-id",
		"option":    "a",
	})
	// Malformed identifiers are rejected before any lookup: 400, never 404.
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid prompt_id"}`, w.Body.String())
}

func TestVoteUnknownIdentifierIsNotFound(t *testing.T) {
	router := setupRouter(testutil.NewMemRepo())

	w := doJSON(t, router, http.MethodPost, "/api/votes", gin.H{
		"prompt_id": "ffffffffffffffffffffffff",
		"option":    "a",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Prompt not found"}`, w.Body.String())
}

func TestVoteRejectsInvalidOption(t *testing.T) {
	router := setupRouter(testutil.NewMemRepo())

	w := doJSON(t, router, http.MethodPost, "/api/votes", gin.H{
		"prompt_id": "ffffffffffffffffffffffff",
		"option":    "c",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRandomPromptSeedsEmptyStore(t *testing.T) {
	repo := testutil.NewMemRepo()
	router := setupRouter(repo)

	w := doJSON(t, router, http.MethodGet, "/api/prompts/random", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodePrompt(t, w)
	require.NotNil(t, resp.CreatedBy)
	assert.Equal(t, "seed", *resp.CreatedBy)
	assert.Equal(t, "general", resp.Category)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(6), count)
}

func TestTopPromptsOrderingAndLimit(t *testing.T) {
	repo := testutil.NewMemRepo()
	router := setupRouter(repo)

	// Insert prompts with known counts, out of order.
	seed := []struct {
		a, b int64
	}{
		{2, 9},
		{7, 1},
		{7, 4},
		{0, 0},
	}
	for _, s := range seed {
		_, err := repo.Insert(context.Background(), &models.Prompt{
			OptionA: "never do homework again",
			OptionB: "never do chores again",
			ACount:  s.a,
			BCount:  s.b,
		})
		require.NoError(t, err)
	}

	w := doJSON(t, router, http.MethodGet, "/api/prompts/top?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []models.PromptResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)

	// a_count descending, ties broken by b_count descending.
	assert.Equal(t, int64(7), resp[0].ACount)
	assert.Equal(t, int64(4), resp[0].BCount)
	assert.Equal(t, int64(7), resp[1].ACount)
	assert.Equal(t, int64(1), resp[1].BCount)
}

func TestTopPromptsEmptyStoreReturnsEmptyArray(t *testing.T) {
	router := setupRouter(testutil.NewMemRepo())

	w := doJSON(t, router, http.MethodGet, "/api/prompts/top", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCreateThenTopRoundTrip(t *testing.T) {
	router := setupRouter(testutil.NewMemRepo())

	creator := "carol"
	w := doJSON(t, router, http.MethodPost, "/api/prompts", gin.H{
		"option_a":   "build a giant pillow fort",
		"option_b":   "have a massive water balloon fight",
		"category":   "party",
		"created_by": creator,
	})
	require.Equal(t, http.StatusOK, w.Code)
	created := decodePrompt(t, w)

	w = doJSON(t, router, http.MethodGet, "/api/prompts/top", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []models.PromptResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)

	assert.Equal(t, created.ID, resp[0].ID)
	assert.Equal(t, created.OptionA, resp[0].OptionA)
	assert.Equal(t, created.OptionB, resp[0].OptionB)
	assert.Equal(t, created.Category, resp[0].Category)
	require.NotNil(t, resp[0].CreatedBy)
	assert.Equal(t, creator, *resp[0].CreatedBy)
}

func TestDataEndpointsWithoutStorage(t *testing.T) {
	router := setupRouter(nil)

	cases := []struct {
		name   string
		method string
		path   string
		body   gin.H
	}{
		{"random", http.MethodGet, "/api/prompts/random", nil},
		{"create", http.MethodPost, "/api/prompts", gin.H{"option_a": "swim with dolphins", "option_b": "camp under the stars"}},
		{"vote", http.MethodPost, "/api/votes", gin.H{"prompt_id": "ffffffffffffffffffffffff", "option": "a"}},
		{"top", http.MethodGet, "/api/prompts/top", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var body any
			if tc.body != nil {
				body = tc.body
			}
			w := doJSON(t, router, tc.method, tc.path, body)
			require.Equal(t, http.StatusInternalServerError, w.Code)
			assert.JSONEq(t, `{"error":"Database not configured"}`, w.Body.String())
		})
	}
}
