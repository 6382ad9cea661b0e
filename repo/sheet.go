package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"LeadBot/model"

	"github.com/rs/zerolog/log"
)

// SheetWebhook appends rows by posting them to a spreadsheet web app
// (for example a Google Apps Script deployment).
type SheetWebhook struct {
	URL        string
	HTTPClient *http.Client
}

func NewSheetWebhook(url string, timeout time.Duration) *SheetWebhook {
	return &SheetWebhook{
		URL:        url,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

func (s *SheetWebhook) AppendRow(ctx context.Context, row model.SheetRow) error {
	payload, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("error marshaling row: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("error building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("error posting row: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sheet webhook: unexpected status %d: %s", resp.StatusCode, body)
	}
	return nil
}

// LogSheet only logs the row. Used when no spreadsheet is configured.
type LogSheet struct{}

func (LogSheet) AppendRow(ctx context.Context, row model.SheetRow) error {
	log.Info().
		Int64("user_id", row.UserID).
		Str("email", row.Email).
		Str("services", row.Services).
		Str("timestamp", row.Timestamp).
		Msg("logging lead row")
	return nil
}
