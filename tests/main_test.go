package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"wellness/backend/config"
	"wellness/backend/models"
	"wellness/backend/routes"
	"wellness/backend/utils"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	app      *fiber.App
	db       *gorm.DB
	cfg      *config.Config
	testUser models.User
	jwtToken string
)

func TestMain(m *testing.M) {
	// Setup
	setup()
	// Run tests
	code := m.Run()
	os.Exit(code)
}

func setup() {
	cfg = &config.Config{
		JWTSecret:  "testsecret",
		ServerPort: "8080",
	}

	// In-memory база вместо Postgres, чтобы сьют не требовал сервера
	var err error
	db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic(err)
	}
	if err := utils.Migrate(db); err != nil {
		panic(err)
	}

	app = fiber.New()
	routes.SetupRoutes(app, db, cfg)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	testUser = models.User{
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: string(hash),
	}
	db.Create(&testUser)

	jwtToken, err = utils.GenerateJWTToken(testUser.ID, cfg)
	if err != nil {
		panic(err)
	}
}

// doJSON выполняет запрос к тестовому приложению с токеном testUser.
func doJSON(t *testing.T, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var buf *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		buf = bytes.NewBuffer(data)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", jwtToken)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	return resp, result
}

// data распаковывает поле data из ответа utils.Success.
func data(result map[string]interface{}) map[string]interface{} {
	d, _ := result["data"].(map[string]interface{})
	return d
}
