package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpctrl "github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/controller/http"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/types"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/repository/memory"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/service/cache"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/service/search"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/service/storage"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/usecase"
	"github.com/m-mizutani/gt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testEnv struct {
	uc     *usecase.UseCases
	server *httpctrl.Server
}

// newTestEnv builds a server with password authentication and two users:
// analyst@example.com (read/write) and viewer@example.com (read only).
func newTestEnv(t *testing.T, opts ...httpctrl.Options) *testEnv {
	t.Helper()
	repo := memory.New()

	authUC, err := usecase.NewAuthUseCase(repo, []byte(testSecret))
	gt.NoError(t, err).Required()
	_, err = authUC.EnsureUser(t.Context(), "analyst@example.com", "Analyst", "analyst-password", types.RoleAnalyst)
	gt.NoError(t, err).Required()
	_, err = authUC.EnsureUser(t.Context(), "viewer@example.com", "Viewer", "viewer-password", types.RoleViewer)
	gt.NoError(t, err).Required()

	blob, err := storage.NewLocal(t.TempDir())
	gt.NoError(t, err).Required()

	uc := usecase.New(repo,
		usecase.WithAuth(authUC),
		usecase.WithBlobStore(blob),
		usecase.WithSearchIndex(search.NewMemory()),
		usecase.WithActivityLog(memory.NewActivityLog()),
	)
	server, err := httpctrl.New(uc, append([]httpctrl.Options{httpctrl.WithEnvironment("test")}, opts...)...)
	gt.NoError(t, err).Required()

	return &testEnv{uc: uc, server: server}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		gt.NoError(t, err).Required()
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
	gt.Value(t, resp.Data.Token).NotEqual("")
	return resp.Data.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v)).Required()
	return v
}

type envelope[T any] struct {
	Data T `json:"data"`
}

type listEnvelope[T any] struct {
	Data       []T                 `json:"data"`
	Pagination httpctrl.Pagination `json:"pagination"`
}

func validRisk(title string) map[string]any {
	return map[string]any{
		"title":      title,
		"category":   "technology",
		"likelihood": 4,
		"impact":     5,
		"owner":      "ciso@example.com",
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, httpctrl.WithVersion("1.2.3"))

	rec := env.do(t, http.MethodGet, "/health", "", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	resp := decode[map[string]any](t, rec)
	gt.Value(t, resp["status"]).Equal("OK")
	gt.Value(t, resp["environment"]).Equal("test")
	gt.Value(t, resp["version"]).Equal("1.2.3")
	gt.Map(t, resp).HasKey("uptime")
	gt.Map(t, resp).HasKey("timestamp")
}

func TestRouterErrors(t *testing.T) {
	env := newTestEnv(t)

	t.Run("unknown route answers JSON 404", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/no/such/route", "", nil)
		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
		gt.Value(t, rec.Header().Get("Content-Type")).Equal("application/json")
	})

	t.Run("wrong method answers 405", func(t *testing.T) {
		rec := env.do(t, http.MethodDelete, "/health", "", nil)
		gt.Value(t, rec.Code).Equal(http.StatusMethodNotAllowed)
	})

	t.Run("unsupported API version is rejected", func(t *testing.T) {
		_, err := httpctrl.New(env.uc, httpctrl.WithAPIVersion("latest"))
		gt.Error(t, err)
	})

	t.Run("slack interaction requires a signing secret", func(t *testing.T) {
		handler := httpctrl.NewSlackInteractionHandler(env.uc.Regulatory, nil)
		_, err := httpctrl.New(env.uc, httpctrl.WithSlackInteraction(handler, ""))
		gt.Error(t, err)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	gt.Value(t, env.do(t, http.MethodGet, "/health", "", nil).Code).Equal(http.StatusOK)

	rec := env.do(t, http.MethodGet, "/metrics", "", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.String(t, rec.Body.String()).Contains("grc_http_requests_total")
}

func TestSecurityHeadersAndCORS(t *testing.T) {
	env := newTestEnv(t, httpctrl.WithCORSOrigin("https://grc.example.com"))

	t.Run("security headers", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/health", "", nil)
		gt.Value(t, rec.Header().Get("X-Content-Type-Options")).Equal("nosniff")
		gt.Value(t, rec.Header().Get("X-Frame-Options")).Equal("DENY")
	})

	t.Run("preflight from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/risks", nil)
		req.Header.Set("Origin", "https://grc.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		env.server.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusNoContent)
		gt.Value(t, rec.Header().Get("Access-Control-Allow-Origin")).Equal("https://grc.example.com")
	})

	t.Run("other origins get no CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		env.server.ServeHTTP(rec, req)

		gt.Value(t, rec.Header().Get("Access-Control-Allow-Origin")).Equal("")
	})
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t)

	t.Run("wrong password", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email":    "analyst@example.com",
			"password": "nope",
		})
		gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("malformed email", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email":    "not-an-email",
			"password": "analyst-password",
		})
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("me and logout", func(t *testing.T) {
		token := env.login(t, "analyst@example.com", "analyst-password")

		rec := env.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		me := decode[envelope[map[string]any]](t, rec)
		gt.Value(t, me.Data["email"]).Equal("analyst@example.com")
		gt.Value(t, me.Data["role"]).Equal("analyst")

		gt.Value(t, env.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil).Code).Equal(http.StatusOK)
		gt.Value(t, env.do(t, http.MethodGet, "/api/v1/auth/me", token, nil).Code).Equal(http.StatusUnauthorized)
	})

	t.Run("missing token", func(t *testing.T) {
		gt.Value(t, env.do(t, http.MethodGet, "/api/v1/risks", "", nil).Code).Equal(http.StatusUnauthorized)
	})

	t.Run("garbage token", func(t *testing.T) {
		gt.Value(t, env.do(t, http.MethodGet, "/api/v1/risks", "garbage", nil).Code).Equal(http.StatusUnauthorized)
	})
}

func TestViewerIsReadOnly(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "viewer@example.com", "viewer-password")

	gt.Value(t, env.do(t, http.MethodGet, "/api/v1/risks", token, nil).Code).Equal(http.StatusOK)
	gt.Value(t, env.do(t, http.MethodPost, "/api/v1/risks", token, validRisk("Blocked")).Code).Equal(http.StatusForbidden)
}

func TestPlaceholderRoutes(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "analyst@example.com", "analyst-password")

	testCases := []struct {
		name    string
		method  string
		path    string
		message string
	}{
		{"control testing", http.MethodPost, "/api/v1/controls/c1/test", "Control testing - Coming soon"},
		{"policy attestations", http.MethodGet, "/api/v1/policies/p1/attestations", "Policy attestations - Coming soon"},
		{"document versions", http.MethodGet, "/api/v1/documents/d1/versions", "Document versions - Coming soon"},
		{"compliance reports", http.MethodGet, "/api/v1/compliance/reports", "Compliance reports - Coming soon"},
		{"user registration", http.MethodPost, "/api/v1/auth/register", "User registration - Coming soon"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Value(t, env.do(t, tc.method, tc.path, "", nil).Code).Equal(http.StatusUnauthorized)

			rec := env.do(t, tc.method, tc.path, token, nil)
			gt.Value(t, rec.Code).Equal(http.StatusOK)

			resp := decode[struct {
				Message string `json:"message"`
				Data    []any  `json:"data"`
			}](t, rec)
			gt.Value(t, resp.Message).Equal(tc.message)
			gt.Array(t, resp.Data).Length(0)
		})
	}
}

func TestRiskCRUD(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "analyst@example.com", "analyst-password")

	rec := env.do(t, http.MethodPost, "/api/v1/risks", token, validRisk("Ransomware on file servers"))
	gt.Value(t, rec.Code).Equal(http.StatusCreated)
	created := decode[envelope[model.Risk]](t, rec).Data
	gt.Value(t, created.ID).NotEqual("")
	gt.Value(t, created.Status).Equal(types.RiskStatusIdentified)
	gt.Number(t, created.InherentScore).Equal(20)

	path := "/api/v1/risks/" + created.ID

	t.Run("get", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, path, token, nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		gt.Value(t, decode[envelope[model.Risk]](t, rec).Data.Title).Equal("Ransomware on file servers")
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, path, token, map[string]any{"status": "mitigating"})
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		updated := decode[envelope[model.Risk]](t, rec).Data
		gt.Value(t, updated.ID).Equal(created.ID)
		gt.Value(t, updated.Status).Equal(types.RiskStatusMitigating)
		gt.Value(t, updated.Title).Equal("Ransomware on file servers")
	})

	t.Run("invalid update", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, path, token, map[string]any{"likelihood": 9})
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("list and stats", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/risks", token, nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		list := decode[listEnvelope[model.Risk]](t, rec)
		gt.Array(t, list.Data).Length(1)
		gt.Number(t, list.Pagination.Total).Equal(1)

		gt.Value(t, env.do(t, http.MethodGet, "/api/v1/risks/stats", token, nil).Code).Equal(http.StatusOK)
	})

	t.Run("delete", func(t *testing.T) {
		gt.Value(t, env.do(t, http.MethodDelete, path, token, nil).Code).Equal(http.StatusNoContent)
		gt.Value(t, env.do(t, http.MethodGet, path, token, nil).Code).Equal(http.StatusNotFound)
	})

	t.Run("create rejects invalid body", func(t *testing.T) {
		risk := validRisk("Bad")
		risk["category"] = "imaginary"
		gt.Value(t, env.do(t, http.MethodPost, "/api/v1/risks", token, risk).Code).Equal(http.StatusBadRequest)

		rec := env.do(t, http.MethodPost, "/api/v1/risks", token, nil)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestListPagination(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "analyst@example.com", "analyst-password")

	for i := range 25 {
		_, err := env.uc.Risk.Create(t.Context(), &model.Risk{
			Title:      "risk " + string(rune('a'+i)),
			Category:   types.RiskCategoryOperational,
			Likelihood: 2,
			Impact:     2,
		})
		gt.NoError(t, err).Required()
	}

	rec := env.do(t, http.MethodGet, "/api/v1/risks?page=3&limit=10", token, nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	list := decode[listEnvelope[model.Risk]](t, rec)
	gt.Array(t, list.Data).Length(5)
	gt.Value(t, list.Pagination).Equal(httpctrl.Pagination{Page: 3, Limit: 10, Total: 25, TotalPages: 3})

	t.Run("page far beyond the last", func(t *testing.T) {
		for _, page := range []string{"4", "92233720368547759", "9223372036854775807"} {
			rec := env.do(t, http.MethodGet, "/api/v1/risks?page="+page+"&limit=100", token, nil)
			gt.Value(t, rec.Code).Equal(http.StatusOK)
			gt.Array(t, decode[listEnvelope[model.Risk]](t, rec).Data).Length(0)
		}
	})
}

func TestParsePage(t *testing.T) {
	testCases := []struct {
		name  string
		query string
		page  int
		limit int
	}{
		{"defaults", "", 1, httpctrl.DefaultPageLimit},
		{"explicit", "page=2&limit=5", 2, 5},
		{"negative page", "page=-1", 1, httpctrl.DefaultPageLimit},
		{"non numeric", "page=x&limit=y", 1, httpctrl.DefaultPageLimit},
		{"clamped limit", "limit=1000", 1, httpctrl.MaxPageLimit},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tc.query, nil)
			page, limit := httpctrl.ParsePage(req.URL.Query())
			gt.Number(t, page).Equal(tc.page)
			gt.Number(t, limit).Equal(tc.limit)
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	page, p := httpctrl.Paginate(items, 2, 2)
	gt.Value(t, page).Equal([]string{"c", "d"})
	gt.Value(t, p).Equal(httpctrl.Pagination{Page: 2, Limit: 2, Total: 5, TotalPages: 3})

	page, p = httpctrl.Paginate(items, 4, 2)
	gt.Array(t, page).Length(0)
	gt.Number(t, p.TotalPages).Equal(3)

	page, p = httpctrl.Paginate(items, math.MaxInt, 100)
	gt.Array(t, page).Length(0)
	gt.Number(t, p.TotalPages).Equal(1)

	page, p = httpctrl.Paginate([]string{}, 1, 20)
	gt.Array(t, page).Length(0)
	gt.Number(t, p.TotalPages).Equal(0)
}

func TestRateLimit(t *testing.T) {
	env := newTestEnv(t, httpctrl.WithRateLimit(0.001, 2))

	gt.Value(t, env.do(t, http.MethodGet, "/api/v1/risks", "", nil).Code).Equal(http.StatusUnauthorized)
	gt.Value(t, env.do(t, http.MethodGet, "/api/v1/risks", "", nil).Code).Equal(http.StatusUnauthorized)

	rec := env.do(t, http.MethodGet, "/api/v1/risks", "", nil)
	gt.Value(t, rec.Code).Equal(http.StatusTooManyRequests)
	gt.Value(t, rec.Header().Get("Retry-After")).NotEqual("")

	// health checks are outside the API limiter
	gt.Value(t, env.do(t, http.MethodGet, "/health", "", nil).Code).Equal(http.StatusOK)
}

func TestIdempotencyKey(t *testing.T) {
	env := newTestEnv(t, httpctrl.WithIdempotencyCache(cache.NewMemory()))
	token := env.login(t, "analyst@example.com", "analyst-password")

	post := func(key string) *httptest.ResponseRecorder {
		raw, err := json.Marshal(validRisk("Idempotent"))
		gt.NoError(t, err).Required()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/risks", bytes.NewReader(raw))
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set(httpctrl.IdempotencyKeyHeader, key)
		rec := httptest.NewRecorder()
		env.server.ServeHTTP(rec, req)
		return rec
	}

	first := post("key-1")
	gt.Value(t, first.Code).Equal(http.StatusCreated)
	gt.Value(t, first.Header().Get(httpctrl.IdempotentReplayHeader)).Equal("")

	second := post("key-1")
	gt.Value(t, second.Code).Equal(http.StatusCreated)
	gt.Value(t, second.Header().Get(httpctrl.IdempotentReplayHeader)).Equal("true")
	gt.Value(t,
		decode[envelope[model.Risk]](t, second).Data.ID,
	).Equal(decode[envelope[model.Risk]](t, first).Data.ID)

	gt.Value(t, post("key-2").Code).Equal(http.StatusCreated)

	risks, err := env.uc.Risk.List(t.Context(), model.RiskFilter{})
	gt.NoError(t, err).Required()
	gt.Array(t, risks).Length(2)
}

func TestIdempotencyOversizedResponse(t *testing.T) {
	chunk := bytes.Repeat([]byte("x"), httpctrl.MaxIdempotencyBodyBytes*2/3)

	calls := 0
	handler := httpctrl.Idempotency(cache.NewMemory())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		// the second chunk passes the cap while the first still fits
		_, _ = w.Write(chunk)
		_, _ = w.Write(chunk)
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", nil)
		req.Header.Set(httpctrl.IdempotencyKeyHeader, "large-1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	first := send()
	gt.Number(t, first.Body.Len()).Equal(2 * len(chunk))

	second := send()
	gt.Value(t, second.Header().Get(httpctrl.IdempotentReplayHeader)).Equal("")
	gt.Number(t, second.Body.Len()).Equal(2 * len(chunk))
	gt.Number(t, calls).Equal(2)
}

func TestDocumentUpload(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "analyst@example.com", "analyst-password")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "policy.txt")
	gt.NoError(t, err).Required()
	_, err = part.Write([]byte("acceptable use policy"))
	gt.NoError(t, err).Required()
	gt.NoError(t, mw.WriteField("tags", "policy, hr")).Required()
	gt.NoError(t, mw.Close()).Required()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	doc := decode[envelope[model.Document]](t, rec).Data
	gt.Value(t, doc.Name).Equal("policy.txt")
	gt.Number(t, doc.Size).Equal(int64(len("acceptable use policy")))
	gt.Value(t, doc.Tags).Equal([]string{"policy", "hr"})
	gt.Value(t, doc.Uploader).Equal("analyst@example.com")

	t.Run("download", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/documents/"+doc.ID+"/download", token, nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		gt.Value(t, rec.Body.String()).Equal("acceptable use policy")
		gt.Value(t, rec.Header().Get("X-Checksum-Sha256")).Equal(doc.Checksum)
		gt.String(t, rec.Header().Get("Content-Disposition")).Contains("policy.txt")
	})

	t.Run("filter by tag", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/documents?tag=hr", token, nil)
		gt.Array(t, decode[listEnvelope[model.Document]](t, rec).Data).Length(1)

		rec = env.do(t, http.MethodGet, "/api/v1/documents?tag=finance", token, nil)
		gt.Array(t, decode[listEnvelope[model.Document]](t, rec).Data).Length(0)
	})

	t.Run("missing file part", func(t *testing.T) {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		gt.NoError(t, mw.WriteField("tags", "x")).Required()
		gt.NoError(t, mw.Close()).Required()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		env.server.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("delete", func(t *testing.T) {
		gt.Value(t, env.do(t, http.MethodDelete, "/api/v1/documents/"+doc.ID, token, nil).Code).Equal(http.StatusNoContent)
		gt.Value(t, env.do(t, http.MethodGet, "/api/v1/documents/"+doc.ID+"/download", token, nil).Code).Equal(http.StatusNotFound)
	})
}

func TestComplianceAlerts(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "analyst@example.com", "analyst-password")

	rec := env.do(t, http.MethodPost, "/api/v1/compliance/regulatory-changes", token, map[string]any{
		"title":     "Data retention amendment",
		"regulator": "ICO",
		"impact":    "critical",
	})
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	rec = env.do(t, http.MethodGet, "/api/v1/compliance/alerts?acknowledged=false", token, nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	alerts := decode[listEnvelope[model.ComplianceAlert]](t, rec).Data
	gt.Array(t, alerts).Length(1).Required()

	rec = env.do(t, http.MethodPost, "/api/v1/compliance/alerts/"+alerts[0].ID+"/acknowledge", token, nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	acked := decode[envelope[model.ComplianceAlert]](t, rec).Data
	gt.Bool(t, acked.Acknowledged).True()
	gt.Value(t, acked.AcknowledgedBy).Equal("analyst@example.com")

	rec = env.do(t, http.MethodGet, "/api/v1/compliance/alerts?acknowledged=false", token, nil)
	gt.Array(t, decode[listEnvelope[model.ComplianceAlert]](t, rec).Data).Length(0)

	rec = env.do(t, http.MethodGet, "/api/v1/compliance/alerts?acknowledged=maybe", token, nil)
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)

	rec = env.do(t, http.MethodPost, "/api/v1/compliance/alerts/evaluate", token, nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.Value(t, decode[envelope[map[string]int]](t, rec).Data["raised"]).Equal(0)
}

func TestDashboardAndSearch(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "analyst@example.com", "analyst-password")

	gt.Value(t, env.do(t, http.MethodPost, "/api/v1/risks", token, validRisk("Phishing campaign")).Code).Equal(http.StatusCreated)

	rec := env.do(t, http.MethodGet, "/api/v1/dashboard", token, nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	dashboard := decode[envelope[model.Dashboard]](t, rec).Data
	gt.Number(t, dashboard.Risks.Total).Equal(1)

	rec = env.do(t, http.MethodGet, "/api/v1/search?q=phishing&kind=risk", token, nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.String(t, strings.ToLower(rec.Body.String())).Contains("phishing campaign")

	rec = env.do(t, http.MethodGet, "/api/v1/activity?kind=risk", token, nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.String(t, rec.Body.String()).Contains("analyst@example.com")
}
