package oracle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuery() Query {
	return Query{
		GameVariant:   "omaha4",
		Street:        "flop",
		HoleCards:     []string{"Ah", "Kh", "10c", "9d"},
		Board:         []string{"Qh", "Jh", "2s"},
		Position:      "BTN",
		PlayersInHand: 6,
		PotSize:       120,
		ToCall:        40,
		StackSize:     880,
		Style:         "tag",
	}
}

func TestAdviseParsesRecommendation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var q Query
		require.NoError(t, json.NewDecoder(r.Body).Decode(&q))
		assert.Equal(t, "omaha4", q.GameVariant)
		assert.Equal(t, []string{"Ah", "Kh", "10c", "9d"}, q.HoleCards)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"recommendation":{"action":"Raise","confidence":"72%","sizing":{"optimal":90}}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zerolog.Nop())
	adv, err := c.Advise(context.Background(), testQuery())
	require.NoError(t, err)

	assert.Equal(t, "raise", adv.Action)
	assert.InDelta(t, 0.72, adv.Confidence, 1e-9)
	assert.True(t, adv.HasSizing)
	assert.Equal(t, 90, adv.OptimalSizing)
}

func TestAdviseMissingRecommendationDefaultsToFold(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zerolog.Nop())
	adv, err := c.Advise(context.Background(), testQuery())
	require.NoError(t, err)

	assert.Equal(t, "fold", adv.Action)
	assert.Equal(t, 0.0, adv.Confidence)
	assert.False(t, adv.HasSizing)
}

func TestAdviseErrorsAreTyped(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"bad status", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"malformed payload", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewClient(srv.URL, zerolog.Nop())
			_, err := c.Advise(context.Background(), testQuery())
			require.Error(t, err)

			var oerr *Error
			assert.ErrorAs(t, err, &oerr)
		})
	}
}

func TestAdviseTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClientWithTimeout(srv.URL, 20*time.Millisecond, zerolog.Nop())
	_, err := c.Advise(context.Background(), testQuery())
	require.Error(t, err)

	var oerr *Error
	assert.ErrorAs(t, err, &oerr)
	assert.Equal(t, "post", oerr.Op)
}

func TestParseConfidence(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"72%", 0.72},
		{" 100% ", 1.0},
		{"0%", 0},
		{"", 0},
		{"high", 0},
		{"150%", 1.0},
		{"-5%", 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ParseConfidence(tt.in), 1e-9, "input %q", tt.in)
	}
}

func TestPadHoleCards(t *testing.T) {
	assert.Equal(t, []string{"Ah", "Kh"},
		PadHoleCards([]string{"Ah", "Kh", "Qh"}, 2))
	assert.Equal(t, []string{"Ah", "Kh", "Kh", "Kh"},
		PadHoleCards([]string{"Ah", "Kh"}, 4))
	assert.Empty(t, PadHoleCards(nil, 4))
}
