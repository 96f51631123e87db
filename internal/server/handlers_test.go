package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/aditi/profilecore/internal/domain"
	"github.com/aditi/profilecore/internal/service"
	"github.com/aditi/profilecore/internal/store"
)

type stubTables struct {
	partners map[string]domain.Partner
	roles    map[string][]domain.RoleRecord
	links    map[string][]domain.AccountLink
	accounts map[string]domain.Account
	txs      []domain.Transaction
}

func (s *stubTables) Partner(id string) (domain.Partner, bool) {
	partner, ok := s.partners[id]
	return partner, ok
}

func (s *stubTables) OnboardingNote(string) (string, bool) { return "", false }

func (s *stubTables) RolesByPartner(partnerID string) []domain.RoleRecord {
	return s.roles[partnerID]
}

func (s *stubTables) AccountLinksByBR(brID string) []domain.AccountLink {
	return s.links[brID]
}

func (s *stubTables) Account(id string) (domain.Account, bool) {
	account, ok := s.accounts[id]
	return account, ok
}

func (s *stubTables) TransactionsForAccounts(accountIDs []string) []domain.Transaction {
	wanted := make(map[string]struct{}, len(accountIDs))
	for _, id := range accountIDs {
		wanted[id] = struct{}{}
	}
	var out []domain.Transaction
	for _, tx := range s.txs {
		if _, ok := wanted[tx.AccountID]; ok {
			out = append(out, tx)
		}
	}
	return out
}

type stubHealth struct {
	err error
}

func (s stubHealth) Probe(context.Context) error { return s.err }

func (s stubHealth) TableCounts() store.Counts {
	return store.Counts{Partners: 2, Transactions: 1}
}

func newTestRouter(health HealthService) http.Handler {
	tables := &stubTables{
		partners: map[string]domain.Partner{
			"P-1": {ID: "P-1", Name: "Jane Doe", OpenDate: "2019-06-01"},
		},
		roles: map[string][]domain.RoleRecord{
			"P-1": {{PartnerID: "P-1", EntityType: "BR", EntityID: "BR-1"}},
		},
		links: map[string][]domain.AccountLink{
			"BR-1": {{BRID: "BR-1", AccountID: "ACC-1"}},
		},
		accounts: map[string]domain.Account{
			"ACC-1": {ID: "ACC-1", Balance: "100.00", Currency: "USD"},
		},
		txs: []domain.Transaction{
			{AccountID: "ACC-1", RawDate: "2026-02-14 09:30:00", Amount: "40", DebitCredit: "debit"},
		},
	}

	logger := zerolog.Nop()
	assembler := service.NewAssembler(tables, 0)
	bulk := service.NewBulkBuilder(assembler, 2)
	api := NewAPIHandlers(logger, assembler, bulk)

	return NewRouter(logger, RouterDependencies{
		Health: health,
		API:    api,
	})
}

func TestHealthzOK(t *testing.T) {
	router := newTestRouter(stubHealth{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["status"] != "ok" {
		t.Fatalf("expected ok status, got %v", payload["status"])
	}
	tables, ok := payload["tables"].(map[string]any)
	if !ok || tables["partners"] != float64(2) {
		t.Fatalf("expected table counts, got %v", payload["tables"])
	}
}

func TestHealthzDegraded(t *testing.T) {
	router := newTestRouter(stubHealth{err: errors.New("store down")})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestHandleProfile(t *testing.T) {
	router := newTestRouter(stubHealth{})

	req := httptest.NewRequest(http.MethodPost, "/api/profile", strings.NewReader(`{"partner_id":"P-1"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var payload struct {
		PartnerID   string         `json:"partner_id"`
		Profile     map[string]any `json:"profile"`
		ProfileText string         `json:"profile_text"`
		Status      string         `json:"status"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Status != "success" || payload.PartnerID != "P-1" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.Profile["canonical_id"] != "P-1" {
		t.Fatalf("expected profile document, got %v", payload.Profile)
	}
	if !strings.Contains(payload.ProfileText, "=== CANONICAL IDENTITY ===") {
		t.Fatalf("expected text rendering, got %q", payload.ProfileText)
	}
}

func TestHandleProfileValidation(t *testing.T) {
	router := newTestRouter(stubHealth{})

	cases := []struct {
		name string
		body string
	}{
		{"missing id", `{}`},
		{"blank id", `{"partner_id":"   "}`},
		{"bad json", `{`},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/profile", strings.NewReader(tc.body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.name, rec.Code)
		}
	}
}

func TestHandleProfileMethodNotAllowed(t *testing.T) {
	router := newTestRouter(stubHealth{})

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Fatalf("expected Allow header POST, got %q", allow)
	}
}

func TestHandleProfiles(t *testing.T) {
	router := newTestRouter(stubHealth{})

	req := httptest.NewRequest(http.MethodPost, "/api/profiles", strings.NewReader(`{"partner_ids":["P-1","GHOST"]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var payload struct {
		Profiles []map[string]any `json:"profiles"`
		Count    int              `json:"count"`
		Status   string           `json:"status"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Count != 2 || len(payload.Profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %+v", payload)
	}
	if payload.Profiles[0]["canonical_id"] != "P-1" || payload.Profiles[1]["canonical_id"] != "GHOST" {
		t.Fatalf("profiles must keep request order, got %v", payload.Profiles)
	}
}

func TestHandleProfilesValidation(t *testing.T) {
	router := newTestRouter(stubHealth{})

	req := httptest.NewRequest(http.MethodPost, "/api/profiles", strings.NewReader(`{"partner_ids":[]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty list, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/profiles", strings.NewReader(`{"partner_ids":["P-1",""]}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank id, got %d", rec.Code)
	}
}
