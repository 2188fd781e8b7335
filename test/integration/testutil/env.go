package testutil

import (
	"fmt"
	"os"
	"testing"
	"time"

	"chedoparti/pkg/middleware"
)

type TestEnv struct {
	MongoURI     string
	DatabaseName string
	ServerURL    string
	ServerPort   string
}

func NewTestEnv() *TestEnv {
	mongoURI := getEnv("TEST_MONGO_URI", DefaultMongoURI)
	dbName := getEnv("TEST_DB_NAME", DefaultDatabaseName)
	serverPort := getEnv("TEST_SERVER_PORT", "8080")
	serverURL := getEnv("TEST_SERVER_URL", fmt.Sprintf("http://localhost:%s", serverPort))

	return &TestEnv{
		MongoURI:     mongoURI,
		DatabaseName: dbName,
		ServerURL:    serverURL,
		ServerPort:   serverPort,
	}
}

// Setup connects to Mongo, cleans the platform collections and returns a
// client pointed at the service under test. The test is skipped when the
// service is not reachable, so the suite only runs against a live stack.
func (e *TestEnv) Setup(t *testing.T) (*MongoHelper, *Client) {
	t.Helper()

	client := NewClient(e.ServerURL)
	if !client.Healthy(HealthCheckTimeout) {
		t.Skipf("service at %s is not reachable, skipping integration test", e.ServerURL)
	}

	mongo := NewMongoHelper(t, e.MongoURI, e.DatabaseName)
	mongo.CleanCollections(t)

	return mongo, client
}

func (e *TestEnv) Cleanup(t *testing.T, mongo *MongoHelper) {
	t.Helper()

	if mongo != nil {
		mongo.CleanCollections(t)
		mongo.Close(t)
	}
}

// MemberHeaders returns identity headers for a paying member.
func MemberHeaders(userID string) map[string]string {
	return map[string]string{
		middleware.HeaderUserID:     userID,
		middleware.HeaderUserRole:   "MEMBER",
		middleware.HeaderUserMember: "true",
	}
}

// CoachHeaders returns identity headers for a coach.
func CoachHeaders(userID string) map[string]string {
	return map[string]string{
		middleware.HeaderUserID:     userID,
		middleware.HeaderUserRole:   "COACH",
		middleware.HeaderUserMember: "true",
	}
}

// AdminHeaders returns identity headers for an administrator.
func AdminHeaders(userID string) map[string]string {
	return map[string]string{
		middleware.HeaderUserID:     userID,
		middleware.HeaderUserRole:   "ADMIN",
		middleware.HeaderUserMember: "false",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

const HealthCheckTimeout = 5 * time.Second
