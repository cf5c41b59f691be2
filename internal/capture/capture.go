// Package capture records what happened at the table. Betting actions
// accumulate per hand, are sealed into an immutable HandRecord at hand
// end, and append to a session log that persists as JSON for
// cross-session analysis.
package capture

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/danieldrasin/poker-scenario-analyzer/internal/fileutil"
)

// BettingAction is one betting opportunity: what was advised (if the
// oracle was consulted), what was actually done, and what it cost.
type BettingAction struct {
	Street string `json:"street"`
	Action string `json:"action"`
	Amount int    `json:"amount"`

	PotBefore int `json:"potBefore"`

	Advised          string  `json:"advised,omitempty"`
	AdvisedConfidence float64 `json:"advisedConfidence,omitempty"`
	OracleConsulted  bool    `json:"oracleConsulted,omitempty"`
	OracleError      bool    `json:"oracleError,omitempty"`
}

// PlayerHandResult is one seat's view of a finished hand.
type PlayerHandResult struct {
	AgentID  int    `json:"agentId"`
	Style    string `json:"style"`
	Seat     int    `json:"seat"`
	Position string `json:"position"`

	HoleCards   []string `json:"holeCards"`
	StackBefore int      `json:"stackBefore"`
	StackAfter  int      `json:"stackAfter"`
	Profit      int      `json:"profit"`

	Actions    []BettingAction `json:"actions"`
	VPIP       bool            `json:"vpip"`
	Showdown   bool            `json:"showdown"`
	FoldStreet string          `json:"foldStreet,omitempty"`
	Won        bool            `json:"won"`
}

// HandRecord is one sealed hand. Never mutated after Seal.
type HandRecord struct {
	SessionID string    `json:"sessionId"`
	HandIndex int       `json:"handIndex"`
	Timestamp time.Time `json:"timestamp"`

	Variant int      `json:"variant"`
	Button  int      `json:"button"`
	Board   []string `json:"board"`
	Pot     int      `json:"pot"`

	Players []PlayerHandResult `json:"players"`
	Winners []int              `json:"winners"` // agent IDs
}

// SessionConfig describes how a session was produced.
type SessionConfig struct {
	Variant       int            `json:"variant"`
	NumPlayers    int            `json:"numPlayers"`
	SmallBlind    int            `json:"smallBlind"`
	BigBlind      int            `json:"bigBlind"`
	StartingStack int            `json:"startingStack"`
	TargetHands   int            `json:"targetHands"`
	Seed          int64          `json:"seed"`
	Styles        map[int]string `json:"styles"` // agent ID -> style ID
	OracleURL     string         `json:"oracleUrl,omitempty"`
}

// Session is the persisted unit: config plus the ordered hand log.
type Session struct {
	SessionID    string       `json:"sessionId"`
	CreatedAt    time.Time    `json:"createdAt"`
	Config       SessionConfig `json:"config"`
	Hands        []HandRecord `json:"hands"`
	AbortedHands int          `json:"abortedHands"`
}

// Recorder accumulates one session's hand records. Constructed once
// per simulation and handed to each agent explicitly; there is no
// shared global collector.
type Recorder struct {
	sessionID string
	clock     quartz.Clock
	config    SessionConfig
	hands     []HandRecord
	aborted   int
	log       zerolog.Logger
}

// NewRecorder creates a recorder for one session.
func NewRecorder(sessionID string, config SessionConfig, clock quartz.Clock, log zerolog.Logger) *Recorder {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Recorder{
		sessionID: sessionID,
		clock:     clock,
		config:    config,
		log:       log.With().Str("session", sessionID).Logger(),
	}
}

// SessionID returns the recorder's session identifier.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Seal stamps and appends a finished hand. The record is copied in;
// later mutation of the caller's slices cannot reach the log.
func (r *Recorder) Seal(h HandRecord) {
	h.SessionID = r.sessionID
	h.HandIndex = len(r.hands) + r.aborted
	h.Timestamp = r.clock.Now()
	h.Board = append([]string(nil), h.Board...)
	h.Players = append([]PlayerHandResult(nil), h.Players...)
	for i := range h.Players {
		h.Players[i].Actions = append([]BettingAction(nil), h.Players[i].Actions...)
		h.Players[i].HoleCards = append([]string(nil), h.Players[i].HoleCards...)
	}
	h.Winners = append([]int(nil), h.Winners...)
	r.hands = append(r.hands, h)
}

// Abort counts a hand that failed mid-play. It occupies a hand index
// but contributes no record and no statistical sample.
func (r *Recorder) Abort(err error) {
	r.aborted++
	r.log.Warn().Err(err).Int("hand", len(r.hands)+r.aborted-1).
		Msg("Hand aborted, excluded from statistics")
}

// Hands returns the sealed records in order.
func (r *Recorder) Hands() []HandRecord {
	return r.hands
}

// Aborted returns the count of abandoned hands.
func (r *Recorder) Aborted() int {
	return r.aborted
}

// Session assembles the persistable session.
func (r *Recorder) Session() Session {
	return Session{
		SessionID:    r.sessionID,
		CreatedAt:    r.clock.Now(),
		Config:       r.config,
		Hands:        r.hands,
		AbortedHands: r.aborted,
	}
}

// SaveSession writes a session to dir as <sessionID>.json atomically.
func SaveSession(dir string, s Session) (string, error) {
	path := filepath.Join(dir, s.SessionID+".json")
	if err := fileutil.WriteJSONAtomic(path, s, 0o644); err != nil {
		return "", fmt.Errorf("save session %s: %w", s.SessionID, err)
	}
	return path, nil
}

// LoadSession reads one session file.
func LoadSession(path string) (Session, error) {
	var s Session
	if err := fileutil.ReadJSON(path, &s); err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	return s, nil
}

// LoadSessions reads every session JSON in a directory, ordered by
// session ID (and therefore by creation time).
func LoadSessions(dir string) ([]Session, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	var sessions []Session
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		s, err := LoadSession(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].SessionID < sessions[j].SessionID
	})
	return sessions, nil
}
