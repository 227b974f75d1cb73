package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/colocmate/backend/internal/auth"
	"github.com/colocmate/backend/internal/models"
	"github.com/colocmate/backend/internal/notify"
	"github.com/colocmate/backend/internal/reminder"
	"github.com/colocmate/backend/internal/service"
	"github.com/colocmate/backend/internal/storage/sqlite"
)

type testServer struct {
	server   *httptest.Server
	verifier *auth.Verifier
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "colocmate-api-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	expenses := service.NewExpenseService(store)
	shares := service.NewShareService(store)
	colocations := service.NewColocationService(store)
	reminders := reminder.New(store, notify.LogNotifier{}, 9)

	verifier := auth.NewVerifier("test-secret")
	mux := chi.NewRouter()
	RegisterRouters(mux, NewHandler(expenses, shares, colocations, reminders), verifier, []string{"*"})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testServer{server: server, verifier: verifier}
}

// do sends an authenticated JSON request and decodes the response into out
// when out is non-nil.
func (ts *testServer) do(t *testing.T, method, path, userID, email string, body, out interface{}) int {
	t.Helper()

	var payload *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		payload = bytes.NewBuffer(data)
	} else {
		payload = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, ts.server.URL+path, payload)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if userID != "" {
		token, err := ts.verifier.Sign(userID, email, []string{"user"}, time.Hour)
		if err != nil {
			t.Fatalf("Failed to sign token: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func (ts *testServer) createColocation(t *testing.T, publisherID string) *models.Colocation {
	t.Helper()

	var coloc models.Colocation
	status := ts.do(t, http.MethodPost, "/api/colocations", publisherID, publisherID+"@example.com",
		service.ColocationInput{Name: "Test flat", Price: 1000}, &coloc)
	if status != http.StatusCreated {
		t.Fatalf("create colocation: status = %d, want 201", status)
	}
	return &coloc
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	t.Run("missing token is unauthorized", func(t *testing.T) {
		if status := ts.do(t, http.MethodGet, "/api/expenses", "", "", nil, nil); status != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", status)
		}
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, ts.server.URL+"/api/expenses", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
	})

	t.Run("health endpoint needs no token", func(t *testing.T) {
		resp, err := http.Get(ts.server.URL + "/healthz")
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want 200", resp.StatusCode)
		}
	})
}

func TestExpenseEndpoints(t *testing.T) {
	ts := newTestServer(t)
	coloc := ts.createColocation(t, "alice")

	dueDate := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	input := service.ExpenseInput{
		Label:           "Electricity",
		TotalAmount:     90,
		DueDate:         dueDate,
		ColocationID:    coloc.ID,
		PaidByUserID:    "alice",
		PaidByUserEmail: "alice@example.com",
		Shares: []service.ShareInput{
			{UserID: "alice", UserEmail: "alice@example.com", Amount: 45, Paid: true},
			{UserID: "bob", UserEmail: "bob@example.com", Amount: 45},
		},
	}

	var created models.Expense
	if status := ts.do(t, http.MethodPost, "/api/expenses", "alice", "alice@example.com", input, &created); status != http.StatusCreated {
		t.Fatalf("create expense: status = %d, want 201", status)
	}
	if created.ID == "" || len(created.Shares) != 2 {
		t.Fatalf("created = %+v, want an id and 2 shares", created)
	}

	t.Run("get round-trips", func(t *testing.T) {
		var got models.Expense
		if status := ts.do(t, http.MethodGet, "/api/expenses/"+created.ID, "alice", "", nil, &got); status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if got.Label != "Electricity" || !got.DueDate.Equal(dueDate) {
			t.Errorf("got %q/%v, want Electricity/%v", got.Label, got.DueDate, dueDate)
		}
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		if status := ts.do(t, http.MethodGet, "/api/expenses/nope", "alice", "", nil, nil); status != http.StatusNotFound {
			t.Errorf("status = %d, want 404", status)
		}
	})

	t.Run("invalid payload is 400", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, ts.server.URL+"/api/expenses", bytes.NewBufferString("{not json"))
		token, _ := ts.verifier.Sign("alice", "", nil, time.Hour)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})

	t.Run("negative amount is 400", func(t *testing.T) {
		bad := input
		bad.TotalAmount = -5
		if status := ts.do(t, http.MethodPost, "/api/expenses", "alice", "", bad, nil); status != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", status)
		}
	})

	t.Run("patch shares with empty list is 400", func(t *testing.T) {
		if status := ts.do(t, http.MethodPatch, "/api/expenses/"+created.ID+"/shares", "alice", "", []service.ShareInput{}, nil); status != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", status)
		}
	})

	t.Run("patch shares upserts", func(t *testing.T) {
		var updated models.Expense
		status := ts.do(t, http.MethodPatch, "/api/expenses/"+created.ID+"/shares", "alice", "",
			[]service.ShareInput{{UserID: "bob", UserEmail: "bob@example.com", Amount: 45, Paid: true}}, &updated)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if updated.DatePaid == nil {
			t.Error("DatePaid = nil, want stamped once every share is paid")
		}
	})

	t.Run("balances", func(t *testing.T) {
		var balances map[string]float64
		status := ts.do(t, http.MethodGet, fmt.Sprintf("/api/expenses/colocation/%s/balance", coloc.ID), "alice", "", nil, &balances)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if balances["alice"] != 45 || balances["bob"] != -45 {
			t.Errorf("balances = %v, want alice 45, bob -45", balances)
		}
	})

	t.Run("stats by email", func(t *testing.T) {
		var stats []service.ExpenseStats
		status := ts.do(t, http.MethodGet, "/api/expenses/byUserEmail?userEmail=bob%40example.com", "alice", "", nil, &stats)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if len(stats) != 1 || stats[0].Label != "Electricity" {
			t.Errorf("stats = %+v, want the electricity bill", stats)
		}

		if status := ts.do(t, http.MethodGet, "/api/expenses/byUserEmail", "alice", "", nil, nil); status != http.StatusBadRequest {
			t.Errorf("missing userEmail: status = %d, want 400", status)
		}
	})

	t.Run("delete by non-payer is 403", func(t *testing.T) {
		if status := ts.do(t, http.MethodDelete, "/api/expenses/"+created.ID, "bob", "", nil, nil); status != http.StatusForbidden {
			t.Errorf("status = %d, want 403", status)
		}
	})

	t.Run("delete by payer is 204", func(t *testing.T) {
		if status := ts.do(t, http.MethodDelete, "/api/expenses/"+created.ID, "alice", "", nil, nil); status != http.StatusNoContent {
			t.Errorf("status = %d, want 204", status)
		}
		if status := ts.do(t, http.MethodGet, "/api/expenses/"+created.ID, "alice", "", nil, nil); status != http.StatusNotFound {
			t.Errorf("status after delete = %d, want 404", status)
		}
	})
}

func TestShareEndpoints(t *testing.T) {
	ts := newTestServer(t)
	coloc := ts.createColocation(t, "alice")

	var created models.Expense
	status := ts.do(t, http.MethodPost, "/api/expenses", "alice", "alice@example.com", service.ExpenseInput{
		Label:        "Rent",
		TotalAmount:  600,
		DueDate:      time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		ColocationID: coloc.ID,
		PaidByUserID: "alice",
		Shares: []service.ShareInput{
			{UserID: "alice", UserEmail: "alice@example.com", Amount: 300, Paid: true},
			{UserID: "bob", UserEmail: "bob@example.com", Amount: 300},
		},
	}, &created)
	if status != http.StatusCreated {
		t.Fatalf("create expense: status = %d, want 201", status)
	}

	var bobShare *models.ExpenseShare
	for i := range created.Shares {
		if created.Shares[i].UserID == "bob" {
			bobShare = &created.Shares[i]
		}
	}
	if bobShare == nil {
		t.Fatal("bob's share missing from the created expense")
	}

	t.Run("paid without a value is 400", func(t *testing.T) {
		if status := ts.do(t, http.MethodPut, "/api/shares/"+bobShare.ID+"/paid", "bob", "", nil, nil); status != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", status)
		}
	})

	t.Run("owner marks the share paid", func(t *testing.T) {
		if status := ts.do(t, http.MethodPut, "/api/shares/"+bobShare.ID+"/paid?paid=true", "bob", "", nil, nil); status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}

		var got models.Expense
		if status := ts.do(t, http.MethodGet, "/api/expenses/"+created.ID, "alice", "", nil, &got); status != http.StatusOK {
			t.Fatalf("get expense: status = %d, want 200", status)
		}
		if got.DatePaid == nil {
			t.Error("expense DatePaid = nil, want stamped after the last share was paid")
		}
	})

	t.Run("someone else's share is 404", func(t *testing.T) {
		if status := ts.do(t, http.MethodPut, "/api/shares/"+bobShare.ID+"/paid?paid=true", "mallory", "", nil, nil); status != http.StatusNotFound {
			t.Errorf("status = %d, want 404, never 403", status)
		}
	})

	t.Run("owner deletes the share", func(t *testing.T) {
		if status := ts.do(t, http.MethodDelete, "/api/shares/"+bobShare.ID, "bob", "", nil, nil); status != http.StatusNoContent {
			t.Errorf("status = %d, want 204", status)
		}
	})
}

func TestColocationEndpoints(t *testing.T) {
	ts := newTestServer(t)
	coloc := ts.createColocation(t, "alice")

	t.Run("list includes the listing", func(t *testing.T) {
		var colocs []models.Colocation
		if status := ts.do(t, http.MethodGet, "/api/colocations", "bob", "", nil, &colocs); status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if len(colocs) != 1 || colocs[0].ID != coloc.ID {
			t.Errorf("colocs = %+v, want exactly the created listing", colocs)
		}
	})

	t.Run("update by non-publisher is 403", func(t *testing.T) {
		status := ts.do(t, http.MethodPut, "/api/colocations/"+coloc.ID, "bob", "",
			service.ColocationInput{Name: "Taken over"}, nil)
		if status != http.StatusForbidden {
			t.Errorf("status = %d, want 403", status)
		}
	})

	t.Run("delete by publisher is 204", func(t *testing.T) {
		if status := ts.do(t, http.MethodDelete, "/api/colocations/"+coloc.ID, "alice", "", nil, nil); status != http.StatusNoContent {
			t.Errorf("status = %d, want 204", status)
		}
	})
}

func TestReminderTrigger(t *testing.T) {
	ts := newTestServer(t)

	if status := ts.do(t, http.MethodPost, "/api/reminders/run", "alice", "", nil, nil); status != http.StatusAccepted {
		t.Errorf("status = %d, want 202", status)
	}
}
