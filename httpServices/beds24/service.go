package httpServices

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the public Beds24 endpoint root.
const DefaultBaseURL = "https://www.beds24.com"

const bookingsCSVPath = "/api/csv/getbookingscsv"

type Beds24Client struct {
	httpClient *http.Client
	baseURL    string
	username   string
	password   string
}

func NewClient(baseURL, username, password string) *Beds24Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Beds24Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:  baseURL,
		username: username,
		password: password,
	}
}

// FetchBookingsCSV requests the bookings export for the date range
// (inclusive) and returns the raw CSV body. Transport failures and
// non-2xx responses come back as plain errors; the sync service wraps
// them into its typed error.
func (c *Beds24Client) FetchBookingsCSV(start, end time.Time) (string, error) {
	form := url.Values{}
	form.Set("username", c.username)
	form.Set("password", c.password)
	form.Set("datefrom", start.Format("2006-01-02"))
	form.Set("dateto", end.Format("2006-01-02"))
	form.Set("includeInvoiceItems", "true")

	resp, err := c.httpClient.PostForm(c.baseURL+bookingsCSVPath, form)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", errors.New("Beds24 API returned non-OK status: " + resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}
