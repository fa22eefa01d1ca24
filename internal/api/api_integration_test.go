// internal/api/api_integration_test.go
package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "moneytrack/internal"
)

// testApp is the global application instance for testing.
var testApp *app.Application

// testServer is the httptest server.
var testServer *httptest.Server

// TestMain is the special entry point for Go tests, executed once before all tests.
func TestMain(m *testing.M) {
	// These tests need a reachable PostgreSQL test database; the variables
	// below point at it. CI provides real values.
	setupEnvVars()

	testApp = app.NewApplication()
	if err := testApp.Initialize(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize test application: %v\n", err)
		os.Exit(1)
	}

	testServer = httptest.NewServer(testApp.HTTPHandler)
	defer testServer.Close()

	code := m.Run()

	if err := testApp.Shutdown(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to shutdown test application: %v\n", err)
		os.Exit(1)
	}

	os.Exit(code)
}

func setupEnvVars() {
	defaults := map[string]string{
		"SERVER_PORT": "8080",
		"JWT_SECRET":  "integration-test-secret",
		"DB_HOST":     "localhost",
		"DB_PORT":     "5432",
		"DB_USER":     "user",
		"DB_PASSWORD": "password",
		"DB_NAME":     "moneytrack_test",
		"DB_SSLMODE":  "disable",
	}
	for key, value := range defaults {
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}

// clearDatabase truncates all tables so each test starts from a clean state.
func clearDatabase(t *testing.T) {
	tables := []string{"transactions", "monthly_budgets", "investments", "categories", "accounts", "users"}
	for _, table := range tables {
		_, err := testApp.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE;", table))
		require.NoError(t, err, "Failed to truncate table %s", table)
	}
}

// doJSON issues a request with an optional bearer token and decodes the JSON
// response body into a generic map.
func doJSON(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, testServer.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	decoded := map[string]interface{}{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

// registerAndLogin creates a user through the API and returns a session token.
func registerAndLogin(t *testing.T, username string) string {
	status, _ := doJSON(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "integration-pass",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username": username,
		"password": "integration-pass",
	})
	require.Equal(t, http.StatusOK, status)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// createAccount creates an account through the API and returns its ID.
func createAccount(t *testing.T, token, name string) int64 {
	status, body := doJSON(t, http.MethodPost, "/accounts/", token, map[string]string{
		"name": name,
		"type": "checking",
	})
	require.Equal(t, http.StatusCreated, status)
	account, _ := body["account"].(map[string]interface{})
	require.NotNil(t, account)
	return int64(account["id"].(float64))
}

// incomeCategoryID finds the seeded Salary category for the session user.
func incomeCategoryID(t *testing.T, token string) int64 {
	status, body := doJSON(t, http.MethodGet, "/categories/", token, nil)
	require.Equal(t, http.StatusOK, status)
	categories, _ := body["categories"].([]interface{})
	for _, raw := range categories {
		category := raw.(map[string]interface{})
		if category["name"] == "Salary" {
			return int64(category["id"].(float64))
		}
	}
	t.Fatal("seeded Salary category not found")
	return 0
}

// accountBalance reads an account's balance through the API.
func accountBalance(t *testing.T, token string, accountID int64) int64 {
	status, body := doJSON(t, http.MethodGet, fmt.Sprintf("/accounts/%d", accountID), token, nil)
	require.Equal(t, http.StatusOK, status)
	account, _ := body["account"].(map[string]interface{})
	require.NotNil(t, account)
	return int64(account["balance_cents"].(float64))
}

func TestRecordAndReverseFlow(t *testing.T) {
	clearDatabase(t)
	token := registerAndLogin(t, "flow_user")
	accountID := createAccount(t, token, "Checking")
	categoryID := incomeCategoryID(t, token)

	// Record an income of 1500.00.
	status, body := doJSON(t, http.MethodPost, "/transactions/", token, map[string]interface{}{
		"account_id":  accountID,
		"category_id": categoryID,
		"amount":      "1500.00",
		"kind":        "income",
		"occurred_on": "2025-03-01",
		"memo":        "salary",
	})
	require.Equal(t, http.StatusCreated, status)
	transaction, _ := body["transaction"].(map[string]interface{})
	require.NotNil(t, transaction)
	transactionID := int64(transaction["id"].(float64))

	assert.Equal(t, int64(150000), accountBalance(t, token, accountID))

	// Amend the amount; the balance follows the edit exactly.
	status, _ = doJSON(t, http.MethodPut, fmt.Sprintf("/transactions/%d", transactionID), token, map[string]interface{}{
		"account_id":  accountID,
		"category_id": categoryID,
		"amount":      "1600.00",
		"kind":        "income",
		"occurred_on": "2025-03-01",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(160000), accountBalance(t, token, accountID))

	// Delete it; the balance returns to zero.
	status, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("/transactions/%d", transactionID), token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(0), accountBalance(t, token, accountID))
}

func TestConcurrentAmendsSerializeOrConflict(t *testing.T) {
	clearDatabase(t)
	token := registerAndLogin(t, "concurrent_user")
	accountID := createAccount(t, token, "Checking")
	categoryID := incomeCategoryID(t, token)

	status, body := doJSON(t, http.MethodPost, "/transactions/", token, map[string]interface{}{
		"account_id":  accountID,
		"category_id": categoryID,
		"amount":      "1500.00",
		"kind":        "income",
	})
	require.Equal(t, http.StatusCreated, status)
	transaction, _ := body["transaction"].(map[string]interface{})
	require.NotNil(t, transaction)
	transactionID := int64(transaction["id"].(float64))

	amend := map[string]interface{}{
		"account_id":  accountID,
		"category_id": categoryID,
		"amount":      "1600.00",
		"kind":        "income",
	}

	// Two simultaneous amends of the same transaction. The row locks force
	// them to serialize; a conflict abort is also acceptable, as long as the
	// final balance reflects exactly one amended effect.
	statuses := make(chan int, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, _ := doJSON(t, http.MethodPut, fmt.Sprintf("/transactions/%d", transactionID), token, amend)
			statuses <- s
		}()
	}
	wg.Wait()
	close(statuses)

	okCount, conflictCount := 0, 0
	for s := range statuses {
		switch s {
		case http.StatusOK:
			okCount++
		case http.StatusConflict:
			conflictCount++
		default:
			t.Errorf("unexpected status %d", s)
		}
	}
	require.GreaterOrEqual(t, okCount, 1)
	require.Equal(t, 2, okCount+conflictCount)

	assert.Equal(t, int64(160000), accountBalance(t, token, accountID))
}

func TestTransferMovesMoneyBetweenAccounts(t *testing.T) {
	clearDatabase(t)
	token := registerAndLogin(t, "transfer_user")
	sourceID := createAccount(t, token, "Checking")
	targetID := createAccount(t, token, "Savings")
	categoryID := incomeCategoryID(t, token)

	status, _ := doJSON(t, http.MethodPost, "/transactions/", token, map[string]interface{}{
		"account_id":  sourceID,
		"category_id": categoryID,
		"amount":      "1000.00",
		"kind":        "income",
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = doJSON(t, http.MethodPost, "/transactions/", token, map[string]interface{}{
		"account_id":             sourceID,
		"transfer_to_account_id": targetID,
		"amount":                 "250.00",
		"kind":                   "transfer",
	})
	require.Equal(t, http.StatusCreated, status)

	assert.Equal(t, int64(75000), accountBalance(t, token, sourceID))
	assert.Equal(t, int64(25000), accountBalance(t, token, targetID))
}

func TestCrossUserAccountsAreInvisible(t *testing.T) {
	clearDatabase(t)
	aliceToken := registerAndLogin(t, "alice_iso")
	bobToken := registerAndLogin(t, "bob_iso")
	aliceAccount := createAccount(t, aliceToken, "Alice Checking")

	// Bob cannot read Alice's account.
	status, _ := doJSON(t, http.MethodGet, fmt.Sprintf("/accounts/%d", aliceAccount), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// Bob cannot transfer into Alice's account.
	bobAccount := createAccount(t, bobToken, "Bob Checking")
	bobCategory := incomeCategoryID(t, bobToken)
	status, _ = doJSON(t, http.MethodPost, "/transactions/", bobToken, map[string]interface{}{
		"account_id":  bobAccount,
		"category_id": bobCategory,
		"amount":      "100.00",
		"kind":        "income",
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = doJSON(t, http.MethodPost, "/transactions/", bobToken, map[string]interface{}{
		"account_id":             bobAccount,
		"transfer_to_account_id": aliceAccount,
		"amount":                 "50.00",
		"kind":                   "transfer",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestBudgetUpsertAndVariance(t *testing.T) {
	clearDatabase(t)
	token := registerAndLogin(t, "budget_user")
	accountID := createAccount(t, token, "Checking")

	// Find the seeded Groceries expense category.
	status, body := doJSON(t, http.MethodGet, "/categories/", token, nil)
	require.Equal(t, http.StatusOK, status)
	var groceriesID int64
	for _, raw := range body["categories"].([]interface{}) {
		category := raw.(map[string]interface{})
		if category["name"] == "Groceries" {
			groceriesID = int64(category["id"].(float64))
		}
	}
	require.NotZero(t, groceriesID)

	status, _ = doJSON(t, http.MethodPut, "/budgets/", token, map[string]interface{}{
		"category_id": groceriesID,
		"year":        2025,
		"month":       3,
		"amount":      "500.00",
	})
	require.Equal(t, http.StatusOK, status)

	// Spend 120.00 and 80.00 in March.
	for _, amount := range []string{"120.00", "80.00"} {
		status, _ = doJSON(t, http.MethodPost, "/transactions/", token, map[string]interface{}{
			"account_id":  accountID,
			"category_id": groceriesID,
			"amount":      amount,
			"kind":        "expense",
			"occurred_on": "2025-03-10",
		})
		require.Equal(t, http.StatusCreated, status)
	}

	status, body = doJSON(t, http.MethodGet, "/reports/budget-variance?year=2025&month=3", token, nil)
	require.Equal(t, http.StatusOK, status)
	rows, _ := body["rows"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, float64(50000), row["budgeted_cents"])
	assert.Equal(t, float64(20000), row["actual_cents"])
	assert.Equal(t, float64(30000), row["variance_cents"])
	assert.Equal(t, false, row["unbudgeted"])
}

func TestUnauthenticatedRequestsAreRejected(t *testing.T) {
	status, _ := doJSON(t, http.MethodGet, "/accounts/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, http.MethodGet, "/reports/net-worth", "invalid-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
