package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"shareit/internal/app"
	"shareit/internal/identity"
	"shareit/internal/item"
	"shareit/internal/user"
)

var (
	testRouter *gin.Engine
	testPool   *pgxpool.Pool
)

func TestMain(m *testing.M) {
	// Attempt to load .env from parent directory
	if err := godotenv.Load("../.env"); err != nil {
		log.Printf("No .env file found or failed to load: %v", err)
	}

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		log.Println("TEST_DB_DSN is not set; skipping integration tests")
		os.Exit(0)
	}

	ctx := context.Background()
	var err error
	testPool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}

	appContainer := app.NewContainer(app.Config{
		DBPool: testPool,
		Logger: zerolog.Nop(),
	})
	testRouter = appContainer.Router

	gin.SetMode(gin.TestMode)

	exitCode := m.Run()

	testPool.Close()
	os.Exit(exitCode)
}

func clearTables() {
	ctx := context.Background()
	queries := []string{
		"TRUNCATE TABLE public.comments CASCADE",
		"TRUNCATE TABLE public.bookings CASCADE",
		"TRUNCATE TABLE public.items CASCADE",
		"TRUNCATE TABLE public.users CASCADE",
	}
	for _, q := range queries {
		if _, err := testPool.Exec(ctx, q); err != nil {
			log.Printf("Failed to clean table: %v", err)
		}
	}
}

// executeRequest runs a request through the assembled router. A non-zero
// userID is sent in the identity header.
func executeRequest(method, path string, body any, userID int64) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req, _ := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set(identity.HeaderName, strconv.FormatInt(userID, 10))
	}

	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	return w
}

func createTestUser(t *testing.T, name, email string) *user.User {
	t.Helper()

	u := &user.User{Name: name, Email: email}
	repo := user.NewPgxRepository(testPool)
	require.NoError(t, repo.Create(context.Background(), u), "Failed to create test user in DB")
	return u
}

func createTestItem(t *testing.T, ownerID int64, name, description string, available bool) *item.Item {
	t.Helper()

	i := &item.Item{Name: name, Description: description, Available: available, OwnerID: ownerID}
	repo := item.NewPgxRepository(testPool)
	require.NoError(t, repo.Create(context.Background(), i), "Failed to create test item in DB")
	return i
}
