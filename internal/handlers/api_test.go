package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Unknownlegend09/ff-tournament/internal/auth"
	"github.com/Unknownlegend09/ff-tournament/internal/handlers"
	"github.com/Unknownlegend09/ff-tournament/internal/legacy"
	"github.com/Unknownlegend09/ff-tournament/internal/models"
	"github.com/Unknownlegend09/ff-tournament/internal/repository"
	"github.com/Unknownlegend09/ff-tournament/internal/routes"
	"github.com/Unknownlegend09/ff-tournament/internal/services"
	"github.com/Unknownlegend09/ff-tournament/internal/storage"
)

type testEnv struct {
	app        *fiber.App
	tm         *auth.TokenManager
	users      repository.UserRepository
	csvPath    string
	uploadDir  string
	adminToken string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	uploadDir := filepath.Join(dir, "uploads")
	csvPath := filepath.Join(dir, "registrations.csv")

	sugar := zap.NewNop().Sugar()
	tm := auth.NewTokenManager("test-secret", time.Hour)

	userRepo := repository.NewMemoryUserRepo()
	tournamentRepo := repository.NewMemoryTournamentRepo()
	registrationRepo := repository.NewMemoryRegistrationRepo()
	uploadRepo := repository.NewMemoryUploadRepo()

	store, err := storage.NewLocalStore(uploadDir, "/uploads")
	if err != nil {
		t.Fatalf("local store: %v", err)
	}

	app := fiber.New()
	routes.Setup(app, tm,
		handlers.NewAuthHandler(services.NewAuthService(userRepo, tm, sugar)),
		handlers.NewTournamentHandler(services.NewTournamentService(tournamentRepo, registrationRepo, sugar)),
		handlers.NewUploadHandler(services.NewUploadService(uploadRepo, store, sugar)),
		handlers.NewLegacyHandler(legacy.NewLog(csvPath), sugar),
	)

	env := &testEnv{app: app, tm: tm, users: userRepo, csvPath: csvPath, uploadDir: uploadDir}
	env.adminToken = env.seedAdmin(t)
	return env
}

// seedAdmin mirrors cmd/create-admin: admins never come from the API.
func (e *testEnv) seedAdmin(t *testing.T) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	admin := &models.User{
		ID:           uuid.NewString(),
		Username:     "admin",
		PasswordHash: string(hash),
		MobileNumber: "9999999999",
		Role:         models.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := e.users.Create(t.Context(), admin); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	token, err := e.tm.Generate(admin)
	if err != nil {
		t.Fatalf("admin token: %v", err)
	}
	return token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func (e *testEnv) registerUser(t *testing.T, username string) (token string, userID string) {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username":      username,
		"password":      "secret123",
		"mobile_number": "9876543210",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register %s: status %d", username, resp.StatusCode)
	}
	var out struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decode(t, resp, &out)
	return out.Token, out.User.ID
}

func (e *testEnv) createTournament(t *testing.T) string {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/api/tournaments", e.adminToken, fiber.Map{
		"title":            "Test Championship",
		"description":      "A test tournament",
		"entry_price":      100.0,
		"prize_pool":       5000.0,
		"max_participants": 50,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create tournament: status %d", resp.StatusCode)
	}
	var tour models.Tournament
	decode(t, resp, &tour)
	return tour.ID
}

func TestLiveness(t *testing.T) {
	env := newTestEnv(t)
	resp := env.request(t, http.MethodGet, "/", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	b, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(b), "Tournament Server Running") {
		t.Errorf("unexpected liveness body: %q", b)
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body fiber.Map
	}{
		{"missing username", fiber.Map{"password": "x", "mobile_number": "1"}},
		{"missing password", fiber.Map{"username": "x", "mobile_number": "1"}},
		{"missing mobile", fiber.Map{"username": "x", "password": "y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.request(t, http.MethodPost, "/api/auth/register", "", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status: expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestRegisterDuplicateConflict(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "player1")

	resp := env.request(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username":      "player1",
		"password":      "different",
		"mobile_number": "1231231234",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status: expected 409, got %d", resp.StatusCode)
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "player1")

	resp := env.request(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": "player1",
		"password": "secret123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status %d", resp.StatusCode)
	}
	var out struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decode(t, resp, &out)
	if out.User.Role != models.RoleUser {
		t.Errorf("role: got %q", out.User.Role)
	}
	claims, err := env.tm.Verify(out.Token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.UserID != out.User.ID {
		t.Errorf("token user id mismatch")
	}

	resp = env.request(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": "player1",
		"password": "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("wrong password: expected 401, got %d", resp.StatusCode)
	}
}

// Every admin-only route must 401 without a token and 403 with a
// non-admin token.
func TestAdminGuards(t *testing.T) {
	env := newTestEnv(t)
	userToken, _ := env.registerUser(t, "player1")

	routes := []struct {
		method string
		path   string
		body   fiber.Map
	}{
		{http.MethodPost, "/api/tournaments", fiber.Map{"title": "T", "entry_price": 1, "prize_pool": 1, "max_participants": 2}},
		{http.MethodGet, "/api/registrations", nil},
		{http.MethodPut, "/api/registrations/some-id/status", fiber.Map{"status": "approved"}},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			resp := env.request(t, rt.method, rt.path, "", rt.body)
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("no token: expected 401, got %d", resp.StatusCode)
			}
			resp = env.request(t, rt.method, rt.path, userToken, rt.body)
			if resp.StatusCode != http.StatusForbidden {
				t.Errorf("user token: expected 403, got %d", resp.StatusCode)
			}
		})
	}
}

func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	env := newTestEnv(t)

	expired := auth.NewTokenManager("test-secret", -time.Minute)
	expiredToken, _ := expired.Generate(&models.User{ID: "u1", Role: models.RoleUser})
	foreign := auth.NewTokenManager("other-secret", time.Hour)
	foreignToken, _ := foreign.Generate(&models.User{ID: "u1", Role: models.RoleAdmin})

	for name, token := range map[string]string{
		"garbage": "garbage",
		"expired": expiredToken,
		"foreign": foreignToken,
	} {
		t.Run(name, func(t *testing.T) {
			resp := env.request(t, http.MethodGet, "/api/my-registrations", token, nil)
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", resp.StatusCode)
			}
		})
	}
}

func TestCreateAndListTournaments(t *testing.T) {
	env := newTestEnv(t)
	id := env.createTournament(t)

	// listing is public
	resp := env.request(t, http.MethodGet, "/api/tournaments", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: status %d", resp.StatusCode)
	}
	var tournaments []models.Tournament
	decode(t, resp, &tournaments)
	if len(tournaments) != 1 {
		t.Fatalf("expected 1 tournament, got %d", len(tournaments))
	}
	got := tournaments[0]
	if got.ID != id || got.EntryPrice != 100 || got.PrizePool != 5000 || got.MaxParticipants != 50 {
		t.Errorf("listed tournament mismatch: %+v", got)
	}
}

func TestCreateTournamentValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body fiber.Map
	}{
		{"missing title", fiber.Map{"entry_price": 1, "prize_pool": 1, "max_participants": 2}},
		{"negative entry price", fiber.Map{"title": "T", "entry_price": -1, "prize_pool": 1, "max_participants": 2}},
		{"zero participants", fiber.Map{"title": "T", "entry_price": 1, "prize_pool": 1, "max_participants": 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.request(t, http.MethodPost, "/api/tournaments", env.adminToken, tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestTournamentRegistrationFlow(t *testing.T) {
	env := newTestEnv(t)
	userToken, userID := env.registerUser(t, "player1")
	tourID := env.createTournament(t)

	// payment proof travels as a query parameter, as the original client sends it
	path := fmt.Sprintf("/api/tournaments/%s/register?payment_proof=%s", tourID, "/uploads/proof.png")
	resp := env.request(t, http.MethodPost, path, userToken, fiber.Map{"mobile_number": "9876543210"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register: status %d", resp.StatusCode)
	}
	var reg models.Registration
	decode(t, resp, &reg)
	if reg.Status != models.StatusPending {
		t.Errorf("status: expected pending, got %q", reg.Status)
	}
	if reg.UserID != userID || reg.TournamentID != tourID {
		t.Errorf("references mismatch: %+v", reg)
	}
	if reg.PaymentProof != "/uploads/proof.png" {
		t.Errorf("payment proof: got %q", reg.PaymentProof)
	}

	// duplicate registration is permitted and yields a distinct record
	resp = env.request(t, http.MethodPost, path, userToken, fiber.Map{"mobile_number": "9876543210"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("duplicate register: status %d", resp.StatusCode)
	}
	var dup models.Registration
	decode(t, resp, &dup)
	if dup.ID == reg.ID {
		t.Error("expected a second distinct registration record")
	}

	// unknown tournament
	resp = env.request(t, http.MethodPost, "/api/tournaments/no-such/register", userToken, fiber.Map{"mobile_number": "1"})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown tournament: expected 404, got %d", resp.StatusCode)
	}

	// missing mobile number
	resp = env.request(t, http.MethodPost, path, userToken, fiber.Map{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing mobile: expected 400, got %d", resp.StatusCode)
	}
}

func TestMyRegistrationsOwnership(t *testing.T) {
	env := newTestEnv(t)
	aliceToken, aliceID := env.registerUser(t, "alice")
	bobToken, _ := env.registerUser(t, "bob")
	tourID := env.createTournament(t)

	path := "/api/tournaments/" + tourID + "/register"
	for _, token := range []string{aliceToken, bobToken} {
		resp := env.request(t, http.MethodPost, path, token, fiber.Map{"mobile_number": "1"})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("register: status %d", resp.StatusCode)
		}
		resp.Body.Close()
	}

	resp := env.request(t, http.MethodGet, "/api/my-registrations", aliceToken, nil)
	var mine []models.Registration
	decode(t, resp, &mine)
	if len(mine) != 1 || mine[0].UserID != aliceID {
		t.Errorf("alice should only see her own registration: %+v", mine)
	}

	// admin sees everything
	resp = env.request(t, http.MethodGet, "/api/registrations", env.adminToken, nil)
	var all []models.Registration
	decode(t, resp, &all)
	if len(all) != 2 {
		t.Errorf("admin should see 2 registrations, got %d", len(all))
	}
}

func TestUpdateRegistrationStatus(t *testing.T) {
	env := newTestEnv(t)
	userToken, _ := env.registerUser(t, "player1")
	tourID := env.createTournament(t)

	resp := env.request(t, http.MethodPost, "/api/tournaments/"+tourID+"/register", userToken, fiber.Map{"mobile_number": "1"})
	var reg models.Registration
	decode(t, resp, &reg)

	resp = env.request(t, http.MethodPut, "/api/registrations/"+reg.ID+"/status", env.adminToken, fiber.Map{"status": "approved"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status: status %d", resp.StatusCode)
	}
	var updated models.Registration
	decode(t, resp, &updated)
	if updated.Status != models.StatusApproved {
		t.Errorf("status: got %q", updated.Status)
	}

	resp = env.request(t, http.MethodGet, "/api/registrations", env.adminToken, nil)
	var all []models.Registration
	decode(t, resp, &all)
	if len(all) != 1 || all[0].Status != models.StatusApproved {
		t.Errorf("approved status not visible in listing: %+v", all)
	}

	resp = env.request(t, http.MethodPut, "/api/registrations/"+reg.ID+"/status", env.adminToken, fiber.Map{"status": "cancelled"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid status: expected 400, got %d", resp.StatusCode)
	}
	resp = env.request(t, http.MethodPut, "/api/registrations/missing/status", env.adminToken, fiber.Map{"status": "rejected"})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown id: expected 404, got %d", resp.StatusCode)
	}
}

func (e *testEnv) uploadFile(t *testing.T, token, filename string, content []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	return resp
}

func TestUpload(t *testing.T) {
	env := newTestEnv(t)
	userToken, _ := env.registerUser(t, "player1")

	resp := env.uploadFile(t, userToken, "payment.png", []byte("fake image bytes"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upload: status %d", resp.StatusCode)
	}
	var out struct {
		FileURL string `json:"file_url"`
	}
	decode(t, resp, &out)
	if !strings.HasPrefix(out.FileURL, "/uploads/") {
		t.Fatalf("file_url: got %q", out.FileURL)
	}
	if !strings.HasSuffix(out.FileURL, ".png") {
		t.Errorf("extension not preserved: %q", out.FileURL)
	}

	stored := filepath.Join(env.uploadDir, strings.TrimPrefix(out.FileURL, "/uploads/"))
	b, err := os.ReadFile(stored)
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(b) != "fake image bytes" {
		t.Errorf("stored content mismatch")
	}
}

func TestUploadRequiresAuthAndFile(t *testing.T) {
	env := newTestEnv(t)
	userToken, _ := env.registerUser(t, "player1")

	resp := env.uploadFile(t, "", "x.png", []byte("x"))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("no token: expected 401, got %d", resp.StatusCode)
	}

	// multipart body without a 'file' part
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("note", "no file here")
	w.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp, err := env.app.Test(req, -1)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing file: expected 400, got %d", resp.StatusCode)
	}
}

func TestLegacyEndpoint(t *testing.T) {
	env := newTestEnv(t)

	for _, name := range []string{"Alice", "Bob"} {
		resp := env.request(t, http.MethodPost, "/register", "", fiber.Map{
			"name": name, "uid": "123", "phone": "555", "mode": "solo",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("legacy submit: status %d", resp.StatusCode)
		}
		var out struct {
			Message string `json:"message"`
		}
		decode(t, resp, &out)
		if out.Message != "Registration successful" {
			t.Errorf("message: got %q", out.Message)
		}
	}

	b, err := os.ReadFile(env.csvPath)
	if err != nil {
		t.Fatalf("csv missing: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Name,UID,Phone,Mode" {
		t.Errorf("header: got %q", lines[0])
	}
}

func TestLegacyEndpointValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body fiber.Map
	}{
		{"missing name", fiber.Map{"uid": "1", "phone": "2"}},
		{"missing uid", fiber.Map{"name": "A", "phone": "2"}},
		{"missing phone", fiber.Map{"name": "A", "uid": "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.request(t, http.MethodPost, "/register", "", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", resp.StatusCode)
			}
			var out struct {
				Error string `json:"error"`
			}
			decode(t, resp, &out)
			if out.Error == "" {
				t.Error("expected error payload")
			}
		})
	}

	// nothing was appended; the file must not even exist yet
	if _, err := os.Stat(env.csvPath); !os.IsNotExist(err) {
		t.Errorf("csv file should not exist after rejected submissions")
	}

	// mode stays optional
	resp := env.request(t, http.MethodPost, "/register", "", fiber.Map{"name": "A", "uid": "1", "phone": "2"})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("mode optional: expected 200, got %d", resp.StatusCode)
	}
}
