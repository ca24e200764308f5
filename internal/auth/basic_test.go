package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/maintdesk/maintdesk/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

func testSetup(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.AutoMigrate(&models.Role{}, &models.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return database
}

func createTestUser(t *testing.T, database *gorm.DB, login, password string) *models.User {
	t.Helper()

	role := models.Role{Name: "User", Code: models.RoleUser}
	if err := database.Where("code = ?", role.Code).FirstOrCreate(&role).Error; err != nil {
		t.Fatalf("failed to create role: %v", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{
		Login:        login,
		Name:         login,
		PasswordHash: hash,
		RoleID:       role.ID,
	}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	user.Role = role
	return &user
}

func TestLogin(t *testing.T) {
	database := testSetup(t)
	a := NewBasicAuthenticator(database, testSecret)
	createTestUser(t, database, "ivanov", "user123")

	resp, err := a.Login("ivanov", "user123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.User == nil || resp.User.Login != "ivanov" {
		t.Error("expected the user in the response")
	}
	if resp.User.Role.Code != models.RoleUser {
		t.Error("role should be preloaded")
	}
}

func TestLoginCaseInsensitive(t *testing.T) {
	database := testSetup(t)
	a := NewBasicAuthenticator(database, testSecret)
	createTestUser(t, database, "Ivanov", "user123")

	if _, err := a.Login("IVANOV", "user123"); err != nil {
		t.Errorf("login should match case-insensitively: %v", err)
	}
	if _, err := a.Login("ivanov", "user123"); err != nil {
		t.Errorf("login should match case-insensitively: %v", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	database := testSetup(t)
	a := NewBasicAuthenticator(database, testSecret)
	createTestUser(t, database, "ivanov", "user123")

	if _, err := a.Login("ivanov", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := a.Login("nobody", "user123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown login: got %v, want ErrInvalidCredentials", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	database := testSetup(t)
	a := NewBasicAuthenticator(database, testSecret)
	user := createTestUser(t, database, "ivanov", "user123")

	resp, err := a.Login("ivanov", "user123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	loaded, err := a.validateAndLoadUser(resp.Token)
	if err != nil {
		t.Fatalf("token validation failed: %v", err)
	}
	if loaded.ID != user.ID {
		t.Error("token should resolve to the issuing user")
	}
	if loaded.Role.Code != models.RoleUser {
		t.Error("loaded user should carry the role")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	database := testSetup(t)
	a := NewBasicAuthenticator(database, testSecret)
	user := createTestUser(t, database, "ivanov", "user123")

	claims := Claims{
		UserID: user.ID.String(),
		Login:  user.Login,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
			Issuer:    "maintdesk",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, err := a.validateAndLoadUser(token); err == nil {
		t.Error("expired token should be rejected")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	database := testSetup(t)
	a := NewBasicAuthenticator(database, testSecret)
	createTestUser(t, database, "ivanov", "user123")

	resp, err := a.Login("ivanov", "user123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	tampered := resp.Token[:len(resp.Token)-4] + "xxxx"
	if _, err := a.validateAndLoadUser(tampered); err == nil {
		t.Error("tampered token should be rejected")
	}

	other := NewBasicAuthenticator(database, "another-secret")
	if _, err := other.validateAndLoadUser(resp.Token); err == nil {
		t.Error("token signed with a different secret should be rejected")
	}
}

func TestTokenForDeletedUserRejected(t *testing.T) {
	database := testSetup(t)
	a := NewBasicAuthenticator(database, testSecret)
	user := createTestUser(t, database, "ivanov", "user123")

	resp, err := a.Login("ivanov", "user123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := database.Delete(user).Error; err != nil {
		t.Fatalf("failed to delete user: %v", err)
	}

	if _, err := a.validateAndLoadUser(resp.Token); err == nil {
		t.Error("token for a deleted user should be rejected")
	}
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	database := testSetup(t)
	a := NewBasicAuthenticator(database, testSecret)
	createTestUser(t, database, "ivanov", "user123")

	router := gin.New()
	router.GET("/protected", a.Middleware(), func(c *gin.Context) {
		user, err := a.GetUserFromContext(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"login": user.Login})
	})

	resp, err := a.Login("ivanov", "user123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer " + resp.Token, http.StatusOK},
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + resp.Token, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !VerifyPassword(hash, "secret") {
		t.Error("correct password should verify")
	}
	if VerifyPassword(hash, "wrong") {
		t.Error("wrong password should not verify")
	}
}
