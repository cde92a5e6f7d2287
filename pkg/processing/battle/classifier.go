package battle

import "github.com/tanklog/mtreplay-service-go/pkg/model"

// Arena bonus type codes as written by the game client. The enumeration is
// closed; anything outside it classifies as unknown, never as an error.
const (
	codeSpecial       = 0
	codeRandom        = 1
	codeTraining      = 2
	codeRanked        = 17
	codeFrontlineMin  = 21
	codeFrontlineAlt  = 27
	codeOnslaught     = 30
	codeOnslaughtAlt  = 33
	codeOnslaughtLate = 43
)

// UnknownMode is the category label for unrecognized battle types.
const UnknownMode = "Unknown mode"

var gameplayModes = map[string]string{
	"battle_royale":   "Steel hunter",
	"ctf":             "Standard battle",
	"ctf2":            "Conquest",
	"ctf30x30":        "Grand battle",
	"comp7":           "Onslaught",
	"comp7_1":         "Onslaught (base defense)",
	"comp7_2":         "Onslaught (attack)",
	"domination":      "Encounter battle",
	"domination3":     "Clash",
	"domination30x30": "Grand battle",
	"epic":            "Frontline",
	"escort":          "Escort",
	"fallout":         "Steel hunt",
	"fallout1":        "Steel hunt",
	"fallout2":        "Steel hunt",
	"fallout3":        "Steel hunt",
	"fallout4":        "Superiority",
	"fallout5":        "Superiority",
	"fallout6":        "Superiority",
	"maps_training":   "Topography",
	"nations":         "Confrontation",
	"rts":             "Art of strategy",
	"rts_bootcamp":    "Art of strategy",
	"winback":         "Warm-up",
}

var codeModes = map[int]string{
	0:     "Special battle",
	1:     "Random battle",
	2:     "Training battle",
	4:     "Combat training",
	5:     "Team battle",
	6:     "Historical battle",
	7:     "Special game mode",
	8:     "Sorties",
	9:     "Clan battle",
	10:    "Ladder team battle",
	11:    "Tutorial battle",
	12:    "Tutorial battle",
	13:    "Superiority",
	14:    "Steel hunt",
	15:    "Sortie",
	16:    "Offensive",
	17:    "Ranked battle",
	18:    "Superiority",
	19:    "Random battle",
	20:    "Training battle",
	21:    "Frontline",
	22:    "Frontline",
	23:    "Steel hunter",
	24:    "Reconnaissance mission",
	25:    "Map training",
	26:    "Art of strategy",
	27:    "Frontline",
	28:    "Strategy basics",
	29:    "Steel hunter",
	30:    "Onslaught",
	31:    "Warm-up",
	32:    "Bloggers' battle",
	33:    "Onslaught",
	37:    "Reconnaissance mission",
	38:    "Topography",
	42:    "Field testing",
	43:    "Onslaught",
	44:    "Warm-up",
	50:    "Proving ground",
	61:    "Rift",
	31000: "Proving ground",
}

// Classifier answers semantic questions about one battle.
type Classifier struct {
	s *Summary
}

func NewClassifier(s *Summary) *Classifier {
	return &Classifier{s: s}
}

// Label resolves the display name of the battle mode. The string gameplay id
// wins when present; the numeric battle type and bonus type codes are only a
// fallback for recordings without one.
func (c *Classifier) Label() string {
	if gp := c.s.GameplayID; gp != "" {
		if label, ok := gameplayModes[gp]; ok {
			return label
		}
		return UnknownMode
	}
	for _, code := range []int{c.s.BattleType, c.s.Common.ArenaBonusType} {
		if label, ok := codeModes[code]; ok {
			return label
		}
	}
	return UnknownMode
}

// Category maps the arena bonus type against the closed code enumeration.
func (c *Classifier) Category() string {
	if label, ok := codeModes[c.s.Common.ArenaBonusType]; ok {
		return label
	}
	return UnknownMode
}

func (c *Classifier) IsRandom() bool {
	bt := c.s.Common.ArenaBonusType
	return bt == codeRandom || bt == 19
}

func (c *Classifier) IsRanked() bool {
	return c.s.Common.ArenaBonusType == codeRanked || c.s.GameplayID == "ranked"
}

func (c *Classifier) IsEpic() bool {
	bt := c.s.Common.ArenaBonusType
	return bt == codeFrontlineMin || bt == 22 || bt == codeFrontlineAlt || c.s.GameplayID == "epic"
}

func (c *Classifier) IsOnslaught() bool {
	bt := c.s.Common.ArenaBonusType
	return bt == codeOnslaught || bt == codeOnslaughtAlt || bt == codeOnslaughtLate ||
		c.s.GameplayID == "comp7" || c.s.GameplayID == "comp7_1" || c.s.GameplayID == "comp7_2"
}

func (c *Classifier) IsSteelHunter() bool {
	bt := c.s.Common.ArenaBonusType
	return bt == 23 || bt == 29 || c.s.GameplayID == "battle_royale"
}

func (c *Classifier) IsTraining() bool {
	bt := c.s.Common.ArenaBonusType
	return bt == codeTraining || bt == 20
}

// DurationSeconds is the battle duration from the common section.
func (c *Classifier) DurationSeconds() int {
	return c.s.Common.Duration
}

var victoryReasons = map[int]string{
	1: "All enemy vehicles destroyed",
	2: "Our team captured the base",
	3: "Time expired",
}

var defeatReasons = map[int]string{
	1: "All our vehicles destroyed",
	2: "Enemy team captured the base",
	3: "Time expired",
}

// Outcome resolves win/loss/draw for the recording player's team. A winner
// team of 0 means nobody won.
func (c *Classifier) Outcome() model.BattleOutcome {
	winner := c.s.Common.WinnerTeam
	reason := c.s.Common.FinishReason

	out := model.BattleOutcome{}
	switch {
	case winner == 0:
		out.Draw = true
		out.Text = "Draw"
		if reason == 3 {
			out.Reason = "Time expired"
		} else {
			out.Reason = "Battle finished"
		}
	case winner == c.s.Team:
		out.Victory = true
		out.Text = "Victory!"
		out.Reason = reasonOrDefault(victoryReasons, reason)
	default:
		out.Text = "Defeat"
		out.Reason = reasonOrDefault(defeatReasons, reason)
	}
	return out
}

func reasonOrDefault(m map[int]string, reason int) string {
	if r, ok := m[reason]; ok {
		return r
	}
	return "Battle finished"
}
