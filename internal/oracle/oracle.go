// Package oracle is the HTTP client for the external play-advisory
// service. The service is consulted for postflop decisions only; every
// failure is surfaced as a typed *Error so callers can fall back to
// their local heuristic without ever propagating the failure.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single advisory round trip. Advice that
// arrives late is worth less than a heuristic action taken on time.
const DefaultTimeout = 2 * time.Second

// Query is the game-state payload sent to the advisory service.
type Query struct {
	GameVariant    string   `json:"gameVariant"`
	Street         string   `json:"street"`
	HoleCards      []string `json:"holeCards"`
	Board          []string `json:"board"`
	Position       string   `json:"position"`
	PlayersInHand  int      `json:"playersInHand"`
	PotSize        int      `json:"potSize"`
	ToCall         int      `json:"toCall"`
	StackSize      int      `json:"stackSize"`
	VillainActions []string `json:"villainActions"`
	Style          string   `json:"style"`
}

// Advice is the parsed recommendation. Confidence is a fraction in
// [0,1]; a missing recommendation parses as fold with zero confidence.
type Advice struct {
	Action        string
	Confidence    float64
	OptimalSizing int
	HasSizing     bool
}

// Error wraps any advisory failure (transport, timeout, bad payload).
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("oracle %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wire shapes of the advisory response
type response struct {
	Recommendation *recommendation `json:"recommendation"`
}

type recommendation struct {
	Action     string  `json:"action"`
	Confidence string  `json:"confidence"`
	Sizing     *sizing `json:"sizing"`
}

type sizing struct {
	Optimal int `json:"optimal"`
}

// Client talks to one advisory endpoint.
type Client struct {
	url    string
	client *http.Client
	log    zerolog.Logger
}

// NewClient creates an advisory client with the default bounded timeout.
func NewClient(url string, log zerolog.Logger) *Client {
	return NewClientWithTimeout(url, DefaultTimeout, log)
}

// NewClientWithTimeout creates an advisory client with an explicit timeout.
func NewClientWithTimeout(url string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
		log: log.With().Str("client", "oracle").Logger(),
	}
}

// Advise sends a game-state query and parses the recommendation.
// Failures return a *Error; callers fall back to their heuristic.
func (c *Client) Advise(ctx context.Context, q Query) (*Advice, error) {
	body, err := json.Marshal(q)
	if err != nil {
		return nil, &Error{Op: "marshal", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Op: "request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug().
		Str("street", q.Street).
		Str("style", q.Style).
		Int("pot", q.PotSize).
		Msg("Requesting advice")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &Error{Op: "post", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &Error{Op: "status", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var wire response
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, &Error{Op: "decode", Err: err}
	}

	return parseAdvice(wire), nil
}

// parseAdvice applies the safe defaults: a missing recommendation or
// action means fold, a missing confidence means zero.
func parseAdvice(wire response) *Advice {
	adv := &Advice{Action: "fold"}
	rec := wire.Recommendation
	if rec == nil {
		return adv
	}

	if a := strings.ToLower(strings.TrimSpace(rec.Action)); a != "" {
		adv.Action = a
	}
	adv.Confidence = ParseConfidence(rec.Confidence)
	if rec.Sizing != nil {
		adv.OptimalSizing = rec.Sizing.Optimal
		adv.HasSizing = true
	}
	return adv
}

// ParseConfidence parses a percentage string like "72%" into a fraction,
// clamped to [0,1]. Anything unparsable is zero confidence.
func ParseConfidence(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	v /= 100
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// PadHoleCards fits a wire-form hole-card list to the variant's card
// count: longer hands are truncated, shorter hands are padded by
// repeating the final card so the service always sees a full hand.
func PadHoleCards(cards []string, variant int) []string {
	if variant <= 0 || len(cards) == 0 {
		return cards
	}
	if len(cards) >= variant {
		return cards[:variant]
	}
	out := make([]string, variant)
	copy(out, cards)
	for i := len(cards); i < variant; i++ {
		out[i] = cards[len(cards)-1]
	}
	return out
}
