// Package style defines the playing-style archetypes that calibrate agent
// behavior. Every behavioral difference between archetypes is data in the
// Profile struct; the decision policy never branches on the style ID.
package style

// OverrideMode selects the postflop post-processing applied to an advised
// action before the legality clamp.
type OverrideMode string

const (
	// OverrideNone leaves the advised action untouched.
	OverrideNone OverrideMode = "none"
	// OverridePassiveDowngrade turns raises and bets into calls.
	OverridePassiveDowngrade OverrideMode = "passive-downgrade"
	// OverrideAggressiveUpgrade turns calls into raises with probability
	// scaled off the profile's aggression, when confidence is adequate
	// and a raise is legal.
	OverrideAggressiveUpgrade OverrideMode = "aggressive-upgrade"
	// OverrideValueUpgrade bumps high-confidence raise advice to at least
	// the minimum legal raise.
	OverrideValueUpgrade OverrideMode = "value-upgrade"
	// OverrideConfidenceGate collapses sub-threshold-confidence advice to
	// check when free, otherwise fold.
	OverrideConfidenceGate OverrideMode = "confidence-gate"
)

// Profile holds the full behavioral calibration of one style archetype.
//
// Rates are probabilities in [0,1]. Thresholds map the variant's hole-card
// count (4, 5 or 6) to the minimum hand score that plays; they are
// calibrated per variant because the scorer produces higher averages with
// more hole cards.
type Profile struct {
	ID         string
	Name       string
	VPIPTarget float64
	PFRRatio   float64
	Aggression float64

	CBet        float64
	FoldToCBet  float64
	RaiseSizing float64
	PostflopAgg float64
	BarrelTurn  float64
	BarrelRiver float64

	Thresholds map[int]float64

	// MarginalBand widens the calling range below the threshold;
	// MaxCallFraction caps the price of a marginal call as a fraction
	// of the remaining stack.
	MarginalBand    float64
	MaxCallFraction float64

	Override        OverrideMode
	ConfidenceFloor float64
}

// Threshold returns the play threshold for a variant, falling back to the
// 4-card value for unknown variants.
func (p *Profile) Threshold(variant int) float64 {
	if t, ok := p.Thresholds[variant]; ok {
		return t
	}
	return p.Thresholds[4]
}

// PositionTable maps position labels to additive score offsets. Late
// position plays wider, early position tighter.
type PositionTable map[string]float64

// DefaultPositions is the calibrated position adjustment table.
func DefaultPositions() PositionTable {
	return PositionTable{
		"BTN": 12, "CO": 6, "HJ": 2, "MP": -3,
		"EP": -8, "UTG": -12, "SB": -5, "BB": 0,
	}
}

// Adjust returns the offset for a position label, zero for unknown labels.
func (t PositionTable) Adjust(pos string) float64 {
	return t[pos]
}

// PositionLabels returns the seat labels for a table of the given size,
// ordered by seat index relative to the button.
func PositionLabels(numPlayers int) []string {
	switch {
	case numPlayers <= 3:
		return []string{"BTN", "SB", "BB"}
	case numPlayers <= 6:
		return []string{"UTG", "MP", "CO", "BTN", "SB", "BB"}
	default:
		return []string{"UTG", "UTG", "EP", "MP", "HJ", "CO", "BTN", "SB", "BB"}
	}
}

// PositionForSeat names a seat's position given the button seat. Seats
// past the table's label count reuse early-position labels.
func PositionForSeat(seatIdx, button, numPlayers int) string {
	labels := PositionLabels(numPlayers)
	btnIdx := len(labels) - 3
	if numPlayers <= 3 {
		btnIdx = 0
	}
	rel := (seatIdx - button + numPlayers) % numPlayers
	return labels[(rel+btnIdx)%len(labels)]
}

// Builtin returns the built-in archetype table, keyed by style ID. The
// values are calibrated against real-world PLO population statistics;
// thresholds were tuned by Monte Carlo to hit each archetype's VPIP
// target across 6-max positions.
func Builtin() map[string]*Profile {
	return map[string]*Profile{
		"nit": {
			ID: "nit", Name: "Nit (Ultra-Tight)",
			VPIPTarget: 0.20, PFRRatio: 0.70, Aggression: 0.45,
			CBet: 0.50, FoldToCBet: 0.55, RaiseSizing: 0.5,
			PostflopAgg: 0.35, BarrelTurn: 0.40, BarrelRiver: 0.30,
			Thresholds:      map[int]float64{4: 55.0, 5: 65.5, 6: 73.0},
			MarginalBand:    0, MaxCallFraction: 0.03,
			Override: OverrideConfidenceGate, ConfidenceFloor: 0.55,
		},
		"rock": {
			ID: "rock", Name: "Rock (Tight-Passive)",
			VPIPTarget: 0.20, PFRRatio: 0.45, Aggression: 0.25,
			CBet: 0.45, FoldToCBet: 0.55, RaiseSizing: 0.5,
			PostflopAgg: 0.15, BarrelTurn: 0.35, BarrelRiver: 0.25,
			Thresholds:      map[int]float64{4: 55.0, 5: 65.5, 6: 73.0},
			MarginalBand:    0, MaxCallFraction: 0.03,
			Override: OverridePassiveDowngrade,
		},
		"reg": {
			ID: "reg", Name: "Reg (Solid Regular)",
			VPIPTarget: 0.25, PFRRatio: 0.75, Aggression: 0.60,
			CBet: 0.58, FoldToCBet: 0.42, RaiseSizing: 0.75,
			PostflopAgg: 0.30, BarrelTurn: 0.50, BarrelRiver: 0.40,
			Thresholds:      map[int]float64{4: 53.6, 5: 63.9, 6: 71.3},
			MarginalBand:    3, MaxCallFraction: 0.03,
			Override: OverrideNone,
		},
		"tag": {
			ID: "tag", Name: "TAG (Tight-Aggressive)",
			VPIPTarget: 0.28, PFRRatio: 0.72, Aggression: 0.65,
			CBet: 0.62, FoldToCBet: 0.38, RaiseSizing: 0.75,
			PostflopAgg: 0.35, BarrelTurn: 0.55, BarrelRiver: 0.42,
			Thresholds:      map[int]float64{4: 52.0, 5: 62.0, 6: 69.5},
			MarginalBand:    3, MaxCallFraction: 0.03,
			Override: OverrideValueUpgrade, ConfidenceFloor: 0.75,
		},
		"lag": {
			ID: "lag", Name: "LAG (Loose-Aggressive)",
			VPIPTarget: 0.35, PFRRatio: 0.65, Aggression: 0.75,
			CBet: 0.65, FoldToCBet: 0.30, RaiseSizing: 1.0,
			PostflopAgg: 0.40, BarrelTurn: 0.60, BarrelRiver: 0.50,
			Thresholds:      map[int]float64{4: 50.5, 5: 61.0, 6: 68.5},
			MarginalBand:    5, MaxCallFraction: 0.05,
			Override: OverrideAggressiveUpgrade, ConfidenceFloor: 0.40,
		},
		"fish": {
			ID: "fish", Name: "Fish (Loose-Passive)",
			VPIPTarget: 0.50, PFRRatio: 0.25, Aggression: 0.20,
			CBet: 0.40, FoldToCBet: 0.25, RaiseSizing: 0.5,
			PostflopAgg: 0.10, BarrelTurn: 0.30, BarrelRiver: 0.20,
			Thresholds:      map[int]float64{4: 46.5, 5: 56.7, 6: 64.3},
			MarginalBand:    5, MaxCallFraction: 0.08,
			Override: OverridePassiveDowngrade,
		},
	}
}
