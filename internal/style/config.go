package style

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog/log"
)

// Config represents a style-profile configuration file.
type Config struct {
	Styles    []StyleBlock   `hcl:"style,block"`
	Positions *PositionBlock `hcl:"positions,block"`
}

// StyleBlock is the HCL shape of one style profile.
type StyleBlock struct {
	ID         string  `hcl:"id,label"`
	Name       string  `hcl:"name"`
	VPIPTarget float64 `hcl:"vpip_target"`
	PFRRatio   float64 `hcl:"pfr_ratio"`
	Aggression float64 `hcl:"aggression"`

	CBet        float64 `hcl:"cbet"`
	FoldToCBet  float64 `hcl:"fold_cbet"`
	RaiseSizing float64 `hcl:"raise_sizing"`
	PostflopAgg float64 `hcl:"postflop_agg"`
	BarrelTurn  float64 `hcl:"barrel_turn,optional"`
	BarrelRiver float64 `hcl:"barrel_river,optional"`

	Thresholds ThresholdBlock `hcl:"thresholds,block"`

	MarginalBand    float64 `hcl:"marginal_band,optional"`
	MaxCallFraction float64 `hcl:"max_call_fraction,optional"`

	Override        string  `hcl:"override,optional"`
	ConfidenceFloor float64 `hcl:"confidence_floor,optional"`
}

// ThresholdBlock holds per-variant play thresholds.
type ThresholdBlock struct {
	Omaha4 float64 `hcl:"omaha4"`
	Omaha5 float64 `hcl:"omaha5,optional"`
	Omaha6 float64 `hcl:"omaha6,optional"`
}

// PositionBlock holds the position adjustment table.
type PositionBlock struct {
	BTN float64 `hcl:"btn,optional"`
	CO  float64 `hcl:"co,optional"`
	HJ  float64 `hcl:"hj,optional"`
	MP  float64 `hcl:"mp,optional"`
	EP  float64 `hcl:"ep,optional"`
	UTG float64 `hcl:"utg,optional"`
	SB  float64 `hcl:"sb,optional"`
	BB  float64 `hcl:"bb,optional"`
}

// Load loads style profiles from an HCL file. A missing, unparsable or
// invalid file is not fatal: the built-in table is returned instead and a
// warning is logged, so a simulation never silently runs without styles.
func Load(filename string) (map[string]*Profile, PositionTable) {
	profiles, positions, err := loadFile(filename)
	if err != nil {
		log.Warn().Err(err).Str("file", filename).
			Msg("Could not load style profiles, falling back to built-in table")
		return Builtin(), DefaultPositions()
	}
	return profiles, positions
}

func loadFile(filename string) (map[string]*Profile, PositionTable, error) {
	if _, err := os.Stat(filename); err != nil {
		return nil, nil, err
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if len(config.Styles) == 0 {
		return nil, nil, fmt.Errorf("no style blocks in %s", filename)
	}

	profiles := make(map[string]*Profile, len(config.Styles))
	for _, sb := range config.Styles {
		p, err := sb.toProfile()
		if err != nil {
			return nil, nil, fmt.Errorf("style %q: %w", sb.ID, err)
		}
		profiles[p.ID] = p
	}

	positions := DefaultPositions()
	if config.Positions != nil {
		positions = PositionTable{
			"BTN": config.Positions.BTN, "CO": config.Positions.CO,
			"HJ": config.Positions.HJ, "MP": config.Positions.MP,
			"EP": config.Positions.EP, "UTG": config.Positions.UTG,
			"SB": config.Positions.SB, "BB": config.Positions.BB,
		}
	}

	return profiles, positions, nil
}

func (sb StyleBlock) toProfile() (*Profile, error) {
	for field, v := range map[string]float64{
		"vpip_target": sb.VPIPTarget, "pfr_ratio": sb.PFRRatio,
		"aggression": sb.Aggression, "cbet": sb.CBet,
		"fold_cbet": sb.FoldToCBet, "postflop_agg": sb.PostflopAgg,
		"barrel_turn": sb.BarrelTurn, "barrel_river": sb.BarrelRiver,
		"confidence_floor": sb.ConfidenceFloor,
	} {
		if v < 0 || v > 1 {
			return nil, fmt.Errorf("%s must be in [0,1], got %v", field, v)
		}
	}

	override := OverrideMode(sb.Override)
	switch override {
	case "":
		override = OverrideNone
	case OverrideNone, OverridePassiveDowngrade, OverrideAggressiveUpgrade,
		OverrideValueUpgrade, OverrideConfidenceGate:
	default:
		return nil, fmt.Errorf("unknown override mode %q", sb.Override)
	}

	thresholds := map[int]float64{4: sb.Thresholds.Omaha4}
	if sb.Thresholds.Omaha5 > 0 {
		thresholds[5] = sb.Thresholds.Omaha5
	}
	if sb.Thresholds.Omaha6 > 0 {
		thresholds[6] = sb.Thresholds.Omaha6
	}

	maxCall := sb.MaxCallFraction
	if maxCall == 0 {
		maxCall = 0.03
	}

	return &Profile{
		ID:         sb.ID,
		Name:       sb.Name,
		VPIPTarget: sb.VPIPTarget,
		PFRRatio:   sb.PFRRatio,
		Aggression: sb.Aggression,

		CBet:        sb.CBet,
		FoldToCBet:  sb.FoldToCBet,
		RaiseSizing: sb.RaiseSizing,
		PostflopAgg: sb.PostflopAgg,
		BarrelTurn:  sb.BarrelTurn,
		BarrelRiver: sb.BarrelRiver,

		Thresholds: thresholds,

		MarginalBand:    sb.MarginalBand,
		MaxCallFraction: maxCall,

		Override:        override,
		ConfidenceFloor: sb.ConfidenceFloor,
	}, nil
}
