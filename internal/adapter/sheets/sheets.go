// Package sheets mirrors measurements to a Google spreadsheet.
package sheets

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"growthchart/internal/domain"
)

// Scope grants read/write access to spreadsheets.
const Scope = "https://www.googleapis.com/auth/spreadsheets"

// ErrWorksheetNotFound indicates the spreadsheet has no tab with the configured name.
var ErrWorksheetNotFound = errors.New("worksheet not found")

// DecodeCredentials accepts a service-account key as raw JSON or as its
// base64 encoding.
func DecodeCredentials(s string) ([]byte, error) {
	raw := bytes.TrimSpace([]byte(s))
	if len(raw) == 0 {
		return nil, errors.New("empty credentials")
	}
	if raw[0] == '{' {
		return raw, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(string(raw))
	if err != nil {
		return nil, fmt.Errorf("credentials are neither JSON nor base64: %w", err)
	}
	return decoded, nil
}

// NewService authenticates with a service-account key and builds a Sheets client.
// Token requests use their own HTTP client limited to timeout, since they do not
// see the context of the call that triggers them.
func NewService(ctx context.Context, credentials string, timeout time.Duration, opts ...option.ClientOption) (*sheets.Service, error) {
	credBytes, err := DecodeCredentials(credentials)
	if err != nil {
		return nil, err
	}

	config, err := google.JWTConfigFromJSON(credBytes, Scope)
	if err != nil {
		return nil, fmt.Errorf("failed to get config from json: %w", err)
	}

	tokenCtx := context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: timeout})
	opts = append([]option.ClientOption{option.WithHTTPClient(config.Client(tokenCtx))}, opts...)
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return srv, nil
}

// Mirror appends measurements to one worksheet of one spreadsheet.
type Mirror struct {
	srv           *sheets.Service
	spreadsheetID string
	worksheet     string
}

var _ domain.Mirror = (*Mirror)(nil)

// New creates a Mirror writing to worksheet in spreadsheetID.
func New(srv *sheets.Service, spreadsheetID, worksheet string) *Mirror {
	return &Mirror{srv: srv, spreadsheetID: spreadsheetID, worksheet: worksheet}
}

// AppendMeasurement appends a [date, weight] row after the last filled row.
func (m *Mirror) AppendMeasurement(ctx context.Context, ms domain.Measurement) error {
	row := &sheets.ValueRange{
		Values: [][]interface{}{{ms.Date, ms.Weight}},
	}

	var response *sheets.AppendValuesResponse
	err := withDeadline(ctx, func() (err error) {
		response, err = m.srv.Spreadsheets.Values.Append(m.spreadsheetID, m.worksheet, row).
			ValueInputOption("USER_ENTERED").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("append to %s/%s: %w", m.spreadsheetID, m.worksheet, err)
	}
	if response.HTTPStatusCode != http.StatusOK {
		return fmt.Errorf("append to %s/%s: invalid http status code: %v", m.spreadsheetID, m.worksheet, response.HTTPStatusCode)
	}
	return nil
}

// Verify checks that the spreadsheet is reachable and has the worksheet.
func (m *Mirror) Verify(ctx context.Context) error {
	var ss *sheets.Spreadsheet
	err := withDeadline(ctx, func() (err error) {
		ss, err = m.srv.Spreadsheets.Get(m.spreadsheetID).
			Fields("sheets.properties.title").
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("open spreadsheet %s: %w", m.spreadsheetID, err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == m.worksheet {
			return nil
		}
	}
	return fmt.Errorf("%s in %s: %w", m.worksheet, m.spreadsheetID, ErrWorksheetNotFound)
}

// withDeadline runs call and stops waiting for it once ctx is done. The oauth2
// transport fetches tokens outside ctx, so Context(ctx) alone does not bound a
// call.
func withDeadline(ctx context.Context, call func() error) error {
	errc := make(chan error, 1)
	go func() { errc <- call() }()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
