package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"planter-care/internal/domain/caretakers"
	"planter-care/internal/platform/config"
	"planter-care/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	deps, err := router.NewDeps(config.Default())
	if err != nil {
		t.Fatalf("new deps: %v", err)
	}
	t.Cleanup(func() { _ = deps.Close() })

	return httptest.NewServer(router.NewRouter(deps, router.Options{AuthVerifier: nil}))
}

func TestHTTP_EndToEnd_CaretakerScopes(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	ownerID := "owner-1"
	sitterID := "sitter-1"

	entryID := createCatalogEntry(t, ts.URL, ownerID)

	// 1) Owner registra su planta con recordatorio de riego semanal.
	// Adquirida días atrás para que el riego rezagado del paso 7 caiga
	// dentro de la vida de la planta.
	plantID := createPlant(t, ts.URL, ownerID, map[string]any{
		"catalog_id":  entryID,
		"nickname":    "Fernanda",
		"location":    "living",
		"acquired_at": time.Now().UTC().AddDate(0, 0, -3).Format(time.RFC3339),
		"watering_reminder": map[string]any{
			"enabled":             true,
			"frequency":           "weekly",
			"notification_method": "in_app",
		},
	})

	// 2) Cuidador NO puede ver la planta aún
	{
		st, _ := doReq(t, ts.URL, "GET", "/plants/"+plantID, sitterID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 before grant, got %d", st)
		}
	}

	// 3) Owner invita cuidador con scopes de lectura y registro
	grantID := inviteCaretaker(t, ts.URL, ownerID, plantID, sitterID, []string{
		string(caretakers.ScopePlantRead),
		string(caretakers.ScopeLogsRead),
		string(caretakers.ScopeLogsCreate),
	})

	// 4) Cuidador ve su invitación
	{
		st, body := doReq(t, ts.URL, "GET", "/me/caretaking", sitterID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 listing my caretaking, got %d body=%s", st, string(body))
		}
	}

	// 5) Cuidador acepta
	{
		st, body := doReq(t, ts.URL, "POST", "/caretakers/"+grantID+"/accept", sitterID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 accept grant, got %d body=%s", st, string(body))
		}
	}

	// 6) Cuidador ya puede ver la planta
	{
		st, body := doReq(t, ts.URL, "GET", "/plants/"+plantID, sitterID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get plant by sitter, got %d body=%s", st, string(body))
		}
	}

	// 7) Cuidador registra un riego
	{
		st, body := doReq(t, ts.URL, "POST", "/plants/"+plantID+"/logs", sitterID, map[string]any{
			"activity_type": "watering",
			"performed_at":  time.Now().UTC().Add(-time.Hour).Format(time.RFC3339),
			"notes":         "suelo seco",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create log by sitter, got %d body=%s", st, string(body))
		}
	}

	// 8) Cuidador lista el historial
	{
		st, body := doReq(t, ts.URL, "GET", "/plants/"+plantID+"/logs", sitterID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list logs by sitter, got %d body=%s", st, string(body))
		}
	}

	// 9) Cuidador NO puede editar el perfil (no tiene plants:edit)
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/plants/"+plantID, sitterID, map[string]any{
			"nickname": "otro nombre",
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 patch without plants:edit, got %d", st)
		}
	}

	// 10) Owner revoca el grant
	{
		st, body := doReq(t, ts.URL, "POST", "/caretakers/"+grantID+"/revoke", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 revoke grant by owner, got %d body=%s", st, string(body))
		}
	}

	// 11) Cuidador pierde acceso inmediatamente
	{
		st, _ := doReq(t, ts.URL, "GET", "/plants/"+plantID, sitterID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 get plant after revoke, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "POST", "/plants/"+plantID+"/logs", sitterID, map[string]any{
			"activity_type": "watering",
			"performed_at":  time.Now().UTC().Format(time.RFC3339),
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 create log after revoke, got %d", st)
		}
	}
}

func TestHTTP_Reminders_OverdueWatering(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	ownerID := "owner-2"
	entryID := createCatalogEntry(t, ts.URL, ownerID)

	// Planta adquirida hace 10 días, riego semanal, nunca regada:
	// el vencimiento quedó hace ~3 días => overdue.
	plantID := createPlant(t, ts.URL, ownerID, map[string]any{
		"catalog_id":  entryID,
		"nickname":    "Suculenta",
		"acquired_at": time.Now().UTC().AddDate(0, 0, -10).Format(time.RFC3339),
		"watering_reminder": map[string]any{
			"enabled":             true,
			"frequency":           "weekly",
			"notification_method": "push",
		},
	})

	st, body := doReq(t, ts.URL, "GET", "/me/reminders", ownerID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 reminders, got %d body=%s", st, string(body))
	}

	var reminders []struct {
		PlantID     string `json:"plant_id"`
		Activity    string `json:"activity_type"`
		Status      string `json:"status"`
		DaysOverdue int    `json:"days_overdue"`
	}
	if err := json.Unmarshal(body, &reminders); err != nil {
		t.Fatalf("unmarshal reminders: %v body=%s", err, string(body))
	}
	if len(reminders) != 1 {
		t.Fatalf("expected 1 reminder, got %d body=%s", len(reminders), string(body))
	}
	r := reminders[0]
	if r.PlantID != plantID || r.Activity != "watering" {
		t.Fatalf("unexpected reminder %+v", r)
	}
	if r.Status != "overdue" {
		t.Fatalf("expected overdue, got %q", r.Status)
	}
	if r.DaysOverdue < 2 {
		t.Fatalf("expected at least 2 days overdue, got %d", r.DaysOverdue)
	}

	// Tras regar hoy, el recordatorio sale de la vista (próximo vencimiento
	// queda fuera del lookahead).
	{
		st, body := doReq(t, ts.URL, "POST", "/plants/"+plantID+"/logs", ownerID, map[string]any{
			"activity_type": "watering",
			"performed_at":  time.Now().UTC().Add(-time.Minute).Format(time.RFC3339),
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 watering log, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/me/reminders", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 reminders, got %d", st)
		}
		var after []json.RawMessage
		if err := json.Unmarshal(body, &after); err != nil {
			t.Fatalf("unmarshal reminders: %v", err)
		}
		if len(after) != 0 {
			t.Fatalf("expected no reminders after watering, got %d body=%s", len(after), string(body))
		}
	}
}

func TestHTTP_CreateLog_RejectsFutureTimestamp(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	ownerID := "owner-3"
	entryID := createCatalogEntry(t, ts.URL, ownerID)
	plantID := createPlant(t, ts.URL, ownerID, map[string]any{
		"catalog_id": entryID,
		"nickname":   "Pilea",
	})

	st, body := doReq(t, ts.URL, "POST", "/plants/"+plantID+"/logs", ownerID, map[string]any{
		"activity_type": "watering",
		"performed_at":  time.Now().UTC().Add(48 * time.Hour).Format(time.RFC3339),
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for future log, got %d body=%s", st, string(body))
	}
}

func TestHTTP_CreatePlant_UnknownCatalogEntry(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	st, _ := doReq(t, ts.URL, "POST", "/plants", "owner-4", map[string]any{
		"catalog_id": "no-such-entry",
		"nickname":   "fantasma",
	})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown catalog entry, got %d", st)
	}
}

func TestHTTP_InviteCaretaker_RejectsUnknownScope(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	ownerID := "owner-5"
	entryID := createCatalogEntry(t, ts.URL, ownerID)
	plantID := createPlant(t, ts.URL, ownerID, map[string]any{
		"catalog_id": entryID,
		"nickname":   "Monstera",
	})

	// scope inválido => 400
	st, _ := doReq(t, ts.URL, "POST", "/plants/"+plantID+"/caretakers", ownerID, map[string]any{
		"caretaker_user_id": "sitter-5",
		"scopes":            []string{"logs:read", "logs:unknown"},
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown scope, got %d", st)
	}
}

func createCatalogEntry(t *testing.T, baseURL, userID string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/catalog", userID, map[string]any{
		"name":               "Ficus lyrata",
		"scientific_name":    "Ficus lyrata",
		"category":           "foliage",
		"difficulty":         "intermediate",
		"watering_frequency": "weekly",
		"light_requirement":  "indirect",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create catalog entry, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create catalog entry: missing id body=%s", string(body))
	}
	return resp.ID
}

func createPlant(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/plants", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create plant, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create plant: missing id body=%s", string(body))
	}
	return resp.ID
}

func inviteCaretaker(t *testing.T, baseURL, ownerID, plantID, sitterID string, scopes []string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/plants/"+plantID+"/caretakers", ownerID, map[string]any{
		"caretaker_user_id": sitterID,
		"scopes":            scopes,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 invite caretaker, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("invite caretaker: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, raw
}
