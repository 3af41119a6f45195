package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"user-rest-service/internal/adapter/gin/handler"
	"user-rest-service/internal/adapter/gin/router"
	"user-rest-service/internal/adapter/repository/memory"
	"user-rest-service/internal/config"
	domain "user-rest-service/internal/domain/user"
	"user-rest-service/internal/metrics"
	usecase "user-rest-service/internal/usecase/user"
)

// envelope mirrors the API response wrapper for decoding in assertions.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *string         `json:"error"`
}

type userPayload struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// APITestSuite exercises the assembled router against the seeded memory store.
type APITestSuite struct {
	suite.Suite
	router  *gin.Engine
	tracker *metrics.Tracker
}

func (s *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	log := zaptest.NewLogger(s.T())

	repo := memory.NewUserRepoMem(domain.Seed(), log)
	uc := usecase.New(repo, log)
	s.tracker = metrics.NewTracker()

	cfg := &config.Config{}
	cfg.App.Host = "127.0.0.1"
	cfg.App.Port = "8080"

	userHandler := handler.NewUserHandler(uc, cfg.App.StrictStatusCodes, log)
	systemHandler := handler.NewSystemHandler(uc, s.tracker, log)
	s.router = router.SetupRouter(userHandler, systemHandler, s.tracker, cfg, log)
}

func (s *APITestSuite) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	return w
}

func (s *APITestSuite) post(path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APITestSuite) decodeEnvelope(w *httptest.ResponseRecorder) envelope {
	// Every /api/* response has exactly the three envelope keys
	var raw map[string]json.RawMessage
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &raw))
	s.Require().Len(raw, 3)
	s.Require().Contains(raw, "success")
	s.Require().Contains(raw, "data")
	s.Require().Contains(raw, "error")

	var env envelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// Scenario 1: fresh start returns the three seeded users in order.
func (s *APITestSuite) TestListSeededUsers() {
	w := s.get("/api/users")
	s.Equal(http.StatusOK, w.Code)
	s.Equal("*", w.Header().Get("Access-Control-Allow-Origin"))

	env := s.decodeEnvelope(w)
	s.True(env.Success)
	s.Nil(env.Error)

	var users []userPayload
	s.Require().NoError(json.Unmarshal(env.Data, &users))
	s.Require().Len(users, 3)
	s.Equal(userPayload{ID: 1, Name: "Alice", Email: "alice@example.com"}, users[0])
	s.Equal(userPayload{ID: 2, Name: "Bob", Email: "bob@example.com"}, users[1])
	s.Equal(userPayload{ID: 3, Name: "Charlie", Email: "charlie@example.com"}, users[2])
}

// Scenario 2: get an existing user.
func (s *APITestSuite) TestGetExistingUser() {
	w := s.get("/api/users/2")
	s.Equal(http.StatusOK, w.Code)

	env := s.decodeEnvelope(w)
	s.True(env.Success)
	s.Nil(env.Error)

	var u userPayload
	s.Require().NoError(json.Unmarshal(env.Data, &u))
	s.Equal(userPayload{ID: 2, Name: "Bob", Email: "bob@example.com"}, u)
}

// Scenario 3: a miss is a business failure on a 200.
func (s *APITestSuite) TestGetMissingUserIs200() {
	w := s.get("/api/users/99")
	s.Equal(http.StatusOK, w.Code)

	env := s.decodeEnvelope(w)
	s.False(env.Success)
	s.Equal("null", string(env.Data))
	s.Require().NotNil(env.Error)
	s.Equal("User not found", *env.Error)
}

// Scenario 4: non-integer id is a 400, not a 404.
func (s *APITestSuite) TestGetInvalidID() {
	w := s.get("/api/users/abc")
	s.Equal(http.StatusBadRequest, w.Code)

	env := s.decodeEnvelope(w)
	s.False(env.Success)
	s.Require().NotNil(env.Error)
	s.Equal("Invalid user ID", *env.Error)
}

// Scenario 5: create assigns id 4 and the record is readable afterwards.
func (s *APITestSuite) TestCreateThenGet() {
	w := s.post("/api/users", `{"name":"Dana","email":"dana@example.com"}`)
	s.Equal(http.StatusCreated, w.Code)

	env := s.decodeEnvelope(w)
	s.True(env.Success)
	s.Nil(env.Error)

	var created userPayload
	s.Require().NoError(json.Unmarshal(env.Data, &created))
	s.Equal(int64(4), created.ID)
	s.Equal("Dana", created.Name)

	w = s.get("/api/users/4")
	s.Equal(http.StatusOK, w.Code)

	env = s.decodeEnvelope(w)
	s.True(env.Success)
	var got userPayload
	s.Require().NoError(json.Unmarshal(env.Data, &got))
	s.Equal(created, got)

	// The list now contains four users, the new one last
	w = s.get("/api/users")
	env = s.decodeEnvelope(w)
	var users []userPayload
	s.Require().NoError(json.Unmarshal(env.Data, &users))
	s.Require().Len(users, 4)
	s.Equal(created, users[3])
}

// Scenario 6: an unparseable body is a 400 "Invalid JSON".
func (s *APITestSuite) TestCreateInvalidJSON() {
	w := s.post("/api/users", "not json")
	s.Equal(http.StatusBadRequest, w.Code)

	env := s.decodeEnvelope(w)
	s.False(env.Success)
	s.Require().NotNil(env.Error)
	s.Equal("Invalid JSON", *env.Error)
}

// Monotonic ids: consecutive creates never collide with seeded or prior ids.
func (s *APITestSuite) TestMonotonicIDs() {
	seen := map[int64]bool{1: true, 2: true, 3: true}
	var prev int64 = 3

	for i := 0; i < 5; i++ {
		w := s.post("/api/users", `{}`)
		s.Require().Equal(http.StatusCreated, w.Code)

		env := s.decodeEnvelope(w)
		var u userPayload
		s.Require().NoError(json.Unmarshal(env.Data, &u))
		s.Greater(u.ID, prev)
		s.False(seen[u.ID])
		seen[u.ID] = true
		prev = u.ID
	}
}

// Repeated reads of the same user return identical data.
func (s *APITestSuite) TestGetIsIdempotent() {
	first := s.get("/api/users/1")
	second := s.get("/api/users/1")
	s.Equal(first.Body.String(), second.Body.String())
}

func (s *APITestSuite) TestHealthReflectsState() {
	// Two API requests before the health probe
	s.get("/api/users")
	s.post("/api/users", `{"name":"Dana"}`)

	w := s.get("/health")
	s.Equal(http.StatusOK, w.Code)

	var h metrics.HealthSnapshot
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &h))
	s.Equal("healthy", h.Status)
	s.Equal(int64(4), h.UsersCount)
	// The probe itself is the third counted request
	s.Equal(int64(3), h.RequestsProcessed)
}

func (s *APITestSuite) TestMetricsCountsEveryRequest() {
	s.get("/api/users")
	s.get("/does/not/exist") // unmatched requests count too

	w := s.get("/metrics")
	s.Equal(http.StatusOK, w.Code)

	var m metrics.Snapshot
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &m))
	s.Equal(int64(3), m.RequestsTotal)
	s.Equal(0.2, m.ResponseTimeAvg)
	s.Equal(8.5, m.MemoryUsage)
	s.Equal(2.1, m.CPUUsage)
	s.Equal(1, m.ActiveConnections)
}

func (s *APITestSuite) TestUnknownRouteEnvelope() {
	w := s.get("/api/unknown")
	s.Equal(http.StatusNotFound, w.Code)

	env := s.decodeEnvelope(w)
	s.False(env.Success)
	s.Require().NotNil(env.Error)
	s.Equal("Not found", *env.Error)
}

func (s *APITestSuite) TestWelcomePage() {
	w := s.get("/")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Header().Get("Content-Type"), "text/html")
	s.Contains(w.Body.String(), "GET /api/users")
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
