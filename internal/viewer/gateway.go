package viewer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ehiview/ehiview/internal/record"
)

// Gateway pulls the full patient set from the records API. One fetch
// happens per view activation; the result is normalized before it is
// handed to the session.
type Gateway struct {
	url    string
	client *http.Client
	log    zerolog.Logger
}

// NewGateway returns a Gateway for the given patients endpoint URL.
func NewGateway(url string, log zerolog.Logger) *Gateway {
	return &Gateway{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log,
	}
}

// FetchAll issues the single blocking fetch for a view activation and
// returns the normalized records. A 404 is treated identically to an
// empty 200 array: the legacy store variant reported "no patients
// found" that way. Transport and server failures return an error; there
// is no retry here.
func (g *Gateway) FetchAll(ctx context.Context) ([]*record.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build patients request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch patients: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetch patients: %s", serverMessage(resp))
	}

	var raws []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raws); err != nil {
		return nil, fmt.Errorf("decode patients response: %w", err)
	}

	records := record.NormalizeAll(raws)
	g.log.Debug().Int("count", len(records)).Msg("fetched patient records")
	return records, nil
}

// serverMessage extracts the {message} body the API uses for failures,
// falling back to the HTTP status text.
func serverMessage(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
			return payload.Message
		}
	}
	return resp.Status
}
