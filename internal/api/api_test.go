package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cuesplit/internal/storage/sqlite"
	"cuesplit/internal/upload"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	media := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"url":"https://img.example/hosted.jpg"}}`))
	}))
	t.Cleanup(media.Close)

	uploader := upload.New(upload.Config{URL: media.URL, APIKey: "test-key"})
	server := httptest.NewServer(NewHandler(store, uploader).Routes())
	t.Cleanup(server.Close)

	return server
}

// doJSON issues a JSON request and decodes the JSON response body.
func doJSON(t *testing.T, method, url string, body any) (int, map[string]any) {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

// doJSONList is doJSON for endpoints that return a JSON array.
func doJSONList(t *testing.T, url string) []map[string]any {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var decoded []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return decoded
}

func createMember(t *testing.T, base, name, phone string) string {
	t.Helper()
	status, body := doJSON(t, http.MethodPost, base+"/members", map[string]any{
		"name": name, "phone": phone,
	})
	require.Equal(t, http.StatusCreated, status)
	member := body["member"].(map[string]any)
	return member["id"].(string)
}

func createTable(t *testing.T, base, name string) string {
	t.Helper()
	status, body := doJSON(t, http.MethodPost, base+"/tables", map[string]any{
		"name": name, "type": "pool", "hourly_rate": 60000,
	})
	require.Equal(t, http.StatusCreated, status)
	table := body["table"].(map[string]any)
	return table["id"].(string)
}

func TestMemberEndpoints(t *testing.T) {
	server := newTestServer(t)
	base := server.URL

	// Name alone is not enough to register.
	status, _ := doJSON(t, http.MethodPost, base+"/members", map[string]any{"name": "A"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := doJSON(t, http.MethodPost, base+"/members", map[string]any{
		"name": "A", "phone": "0900000000",
	})
	require.Equal(t, http.StatusCreated, status)
	member := body["member"].(map[string]any)
	assert.NotEmpty(t, member["id"])

	// Duplicate phone is rejected.
	status, _ = doJSON(t, http.MethodPost, base+"/members", map[string]any{
		"name": "B", "phone": "0900000000",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// Partial update keeps the phone.
	id := member["id"].(string)
	status, body = doJSON(t, http.MethodPut, base+"/members/"+id, map[string]any{"name": "A2"})
	require.Equal(t, http.StatusOK, status)
	updated := body["member"].(map[string]any)
	assert.Equal(t, "A2", updated["name"])
	assert.Equal(t, "0900000000", updated["phone"])

	status, _ = doJSON(t, http.MethodPut, base+"/members/no-such-id", map[string]any{"name": "X"})
	assert.Equal(t, http.StatusNotFound, status)

	members := doJSONList(t, base+"/members")
	assert.Len(t, members, 1)

	status, body = doJSON(t, http.MethodDelete, base+"/members/"+id, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	status, _ = doJSON(t, http.MethodDelete, base+"/members/"+id, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBillLifecycle(t *testing.T) {
	server := newTestServer(t)
	base := server.URL

	a := createMember(t, base, "A", "0900000001")
	b := createMember(t, base, "B", "0900000002")
	tableID := createTable(t, base, "Table 1")

	billReq := map[string]any{
		"date":         "2026-08-30",
		"total_amount": 100000,
		"table_id":     tableID,
		"payer_id":     a,
		"participants": []string{a, b},
	}

	// Missing fields are rejected before anything is written.
	status, _ := doJSON(t, http.MethodPost, base+"/bills", map[string]any{"date": "2026-08-30"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := doJSON(t, http.MethodPost, base+"/bills", billReq)
	require.Equal(t, http.StatusCreated, status)
	billID := body["billId"].(string)
	require.NotEmpty(t, billID)

	// The payer is paid immediately, the other participant is not.
	bills := doJSONList(t, base+"/bills")
	require.Len(t, bills, 1)
	payments := bills[0]["payments"].(map[string]any)
	assert.Equal(t, true, payments[a])
	assert.Equal(t, false, payments[b])
	organizer := bills[0]["organizer"].(map[string]any)
	assert.Equal(t, a, organizer["id"])

	// The table is now occupied.
	tables := doJSONList(t, base+"/tables")
	require.Len(t, tables, 1)
	assert.Equal(t, "occupied", tables[0]["status"])

	// B settles their 50000 share; repeating the call changes nothing.
	payReq := map[string]any{"participantId": b, "status": true, "method": "cash"}
	status, _ = doJSON(t, http.MethodPost, base+"/bills/"+billID+"/payment", payReq)
	require.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, http.MethodPost, base+"/bills/"+billID+"/payment", payReq)
	require.Equal(t, http.StatusOK, status)

	log := doJSONList(t, base+"/payments")
	require.Len(t, log, 1)
	assert.Equal(t, float64(50000), log[0]["amount"])

	// Payment against an unknown bill or with a missing flag fails.
	status, _ = doJSON(t, http.MethodPost, base+"/bills/no-such-bill/payment", payReq)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = doJSON(t, http.MethodPost, base+"/bills/"+billID+"/payment", map[string]any{"participantId": b})
	assert.Equal(t, http.StatusBadRequest, status)

	// Unknown status values never mutate the bill.
	status, _ = doJSON(t, http.MethodPut, base+"/bills/"+billID, map[string]any{"status": "paid"})
	assert.Equal(t, http.StatusBadRequest, status)
	bills = doJSONList(t, base+"/bills")
	assert.Equal(t, "active", bills[0]["status"])

	// Cancelling frees the table again.
	status, _ = doJSON(t, http.MethodPut, base+"/bills/"+billID, map[string]any{"status": "cancelled"})
	require.Equal(t, http.StatusOK, status)
	tables = doJSONList(t, base+"/tables")
	assert.Equal(t, "available", tables[0]["status"])

	status, _ = doJSON(t, http.MethodPut, base+"/bills/no-such-bill", map[string]any{"status": "cancelled"})
	assert.Equal(t, http.StatusNotFound, status)

	// Deleting removes the bill and its participants.
	status, _ = doJSON(t, http.MethodDelete, base+"/bills/"+billID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, doJSONList(t, base+"/bills"))

	status, _ = doJSON(t, http.MethodDelete, base+"/bills/"+billID, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTableEndpoints(t *testing.T) {
	server := newTestServer(t)
	base := server.URL

	status, _ := doJSON(t, http.MethodPost, base+"/tables", map[string]any{"name": "T1"})
	assert.Equal(t, http.StatusBadRequest, status)

	id := createTable(t, base, "T1")

	status, body := doJSON(t, http.MethodPatch, base+"/tables/"+id, map[string]any{"hourly_rate": 80000})
	require.Equal(t, http.StatusOK, status)
	table := body["table"].(map[string]any)
	assert.Equal(t, float64(80000), table["hourly_rate"])
	assert.Equal(t, "T1", table["name"])

	status, _ = doJSON(t, http.MethodPatch, base+"/tables/no-such-id", map[string]any{"name": "X"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUploadEndpoint(t *testing.T) {
	server := newTestServer(t)
	base := server.URL

	status, body := doJSON(t, http.MethodPost, base+"/upload", map[string]any{
		"image": "data:image/png;base64,iVBORw0KGgo=",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "https://img.example/hosted.jpg", body["url"])

	status, _ = doJSON(t, http.MethodPost, base+"/upload", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, http.MethodPost, base+"/upload", map[string]any{"image": "not-an-image"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t)

	status, body := doJSON(t, http.MethodGet, server.URL+"/healthz", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}
