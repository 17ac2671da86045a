package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"roomease-server/models"
	"roomease-server/storage"
	"roomease-server/utils"

	"github.com/kataras/iris/v12"
)

// buildTestApp wires the moderation routes against an in-memory database
// with the real verifier and admin gate.
func buildTestApp(t *testing.T) *iris.Application {
	t.Helper()
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")

	db, err := storage.OpenTestDB()
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	storage.DB = db
	storage.Redis = nil

	app := iris.New()
	accessTokenVerifierMiddleware := utils.NewAccessTokenVerifier()

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/listings", AdminListListings)
		admin.Put("/listings/{id}/approve", AdminApproveListing)
		admin.Put("/listings/{id}/reject", AdminRejectListing)
	}

	listings := app.Party("/api/listings")
	{
		listings.Use(accessTokenVerifierMiddleware)
		listings.Get("/{id}", GetListing)
	}

	if err := app.Build(); err != nil {
		t.Fatalf("building app: %v", err)
	}
	return app
}

func signTestToken(t *testing.T, id uint, role models.Role) string {
	t.Helper()
	token, err := utils.SignAccessToken(id, role, time.Hour)
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func seedPendingListing(t *testing.T) models.Listing {
	t.Helper()
	landlord := models.User{Name: "L", Email: "l@test.local", Password: "x", Role: models.RoleLandlord}
	if err := storage.DB.Create(&landlord).Error; err != nil {
		t.Fatalf("creating landlord: %v", err)
	}
	listing := models.Listing{
		LandlordID: landlord.ID,
		Title:      "Loft",
		Location:   "Hull",
		Price:      700,
		Status:     models.ListingPending,
	}
	if err := storage.DB.Create(&listing).Error; err != nil {
		t.Fatalf("creating listing: %v", err)
	}
	return listing
}

func doJSON(app *iris.Application, method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func TestModerationRBAC(t *testing.T) {
	app := buildTestApp(t)
	listing := seedPendingListing(t)
	path := "/api/admin/listings/" + itoa(listing.ID) + "/approve"

	// No token is rejected by the verifier.
	if resp := doJSON(app, http.MethodPut, path, "", ""); resp.Code == http.StatusOK {
		t.Fatalf("expected non-200 without token, got %d", resp.Code)
	}

	// A tenant token never passes the admin gate.
	tenantToken := signTestToken(t, 99, models.RoleTenant)
	if resp := doJSON(app, http.MethodPut, path, tenantToken, ""); resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for tenant, got %d", resp.Code)
	}
}

func TestApproveThenRepeatConflicts(t *testing.T) {
	app := buildTestApp(t)
	listing := seedPendingListing(t)
	adminToken := signTestToken(t, 1000, models.RoleAdmin)
	path := "/api/admin/listings/" + itoa(listing.ID) + "/approve"

	resp := doJSON(app, http.MethodPut, path, adminToken, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 on first approve, got %d: %s", resp.Code, resp.Body.String())
	}
	var decided models.Listing
	if err := json.Unmarshal(resp.Body.Bytes(), &decided); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if decided.Status != models.ListingApproved {
		t.Fatalf("want approved, got %s", decided.Status)
	}

	resp = doJSON(app, http.MethodPut, path, adminToken, "")
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 on repeat decision, got %d", resp.Code)
	}
}

func TestRejectNeedsReason(t *testing.T) {
	app := buildTestApp(t)
	listing := seedPendingListing(t)
	adminToken := signTestToken(t, 1000, models.RoleAdmin)
	path := "/api/admin/listings/" + itoa(listing.ID) + "/reject"

	if resp := doJSON(app, http.MethodPut, path, adminToken, `{"reason":""}`); resp.Code == http.StatusOK {
		t.Fatalf("expected failure without reason, got %d", resp.Code)
	}
	resp := doJSON(app, http.MethodPut, path, adminToken, `{"reason":"stock photos"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with reason, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestHiddenListingIs404ForStranger(t *testing.T) {
	app := buildTestApp(t)
	listing := seedPendingListing(t)
	path := "/api/listings/" + itoa(listing.ID)

	tenantToken := signTestToken(t, 500, models.RoleTenant)
	if resp := doJSON(app, http.MethodGet, path, tenantToken, ""); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for stranger on pending listing, got %d", resp.Code)
	}

	ownerToken := signTestToken(t, listing.LandlordID, models.RoleLandlord)
	if resp := doJSON(app, http.MethodGet, path, ownerToken, ""); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d", resp.Code)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
