package httpServices

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchBookingsCSVPostsCredentialsAndWindow(t *testing.T) {
	var gotPath string
	var gotForm url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotPath = r.URL.Path
		gotForm = r.PostForm
		w.Write([]byte("Master ID,Status\n"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "operator", "secret")
	body, err := client.FetchBookingsCSV(
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	assert.Equal(t, "Master ID,Status\n", body)
	assert.Equal(t, "/api/csv/getbookingscsv", gotPath)
	assert.Equal(t, "operator", gotForm.Get("username"))
	assert.Equal(t, "secret", gotForm.Get("password"))
	assert.Equal(t, "2025-01-01", gotForm.Get("datefrom"))
	assert.Equal(t, "2025-12-31", gotForm.Get("dateto"))
	assert.Equal(t, "true", gotForm.Get("includeInvoiceItems"))
}

func TestFetchBookingsCSVRejectsNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "operator", "wrong")
	_, err := client.FetchBookingsCSV(time.Now(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-OK status")
}

func TestNewClientDefaultsBaseURL(t *testing.T) {
	client := NewClient("", "operator", "secret")
	assert.Equal(t, DefaultBaseURL, client.baseURL)
}
