package stats

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tanklog/mtreplay-service-go/log"
	"github.com/tanklog/mtreplay-service-go/pkg/model"
	"github.com/tanklog/mtreplay-service-go/pkg/processing/util"
	"github.com/tanklog/mtreplay-service-go/pkg/replay"
)

var hundred = decimal.NewFromInt(100)

// factorOrDefault treats a missing factor (0) as the neutral x1.0.
func factorOrDefault(factor100 int) int {
	if factor100 == 0 {
		return 100
	}
	return factor100
}

// applyFactor100 multiplies by a percent factor (150 = x1.5), rounding half
// away from zero. The client rounds the headline income projection.
func applyFactor100(value, factor100 int) int {
	return int(decimal.NewFromInt(int64(value)).
		Mul(decimal.NewFromInt(int64(factor100))).
		DivRound(hundred, 0).
		IntPart())
}

// applyFactor100Trunc multiplies by a percent factor, truncating toward zero.
// The client truncates the itemized premium credit lines, so 21001 x1.5 is
// 31501, not 31502.
func applyFactor100Trunc(value, factor100 int) int {
	return int(decimal.NewFromInt(int64(value)).
		Mul(decimal.NewFromInt(int64(factor100))).
		Div(hundred).
		IntPart())
}

// applyFactor100Ceil multiplies by a percent factor, rounding up. The client
// uses ceiling for the premium XP lines.
func applyFactor100Ceil(value, factor100 int) int {
	return int(decimal.NewFromInt(int64(value)).
		Mul(decimal.NewFromInt(int64(factor100))).
		Div(hundred).
		Ceil().
		IntPart())
}

// dePremium recovers the base share from a value that already has a booster
// factor applied: base = value*100/(100+factor), truncated.
func dePremium(value, factor100 int) int {
	return int(decimal.NewFromInt(int64(value)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(100 + factor100))).
		IntPart())
}

// Economics itemizes the full credit, XP and bond flow of the battle.
func (t *Transformer) Economics(doc *replay.Document) model.Economics {
	p := doc.Personal()

	credFactor := factorOrDefault(p.PremiumCreditsFactor)
	xpFactor := factorOrDefault(p.PremiumXPFactor)

	// the recorded booster credits already include the booster factor
	baseBooster := p.BoosterCredits
	if p.BoosterCreditsFactor > 0 {
		baseBooster = dePremium(p.BoosterCredits, p.BoosterCreditsFactor)
	}

	ammoCost := 0
	if len(p.AutoLoadCost) > 0 {
		ammoCost = p.AutoLoadCost[0]
	}

	equipmentCost := 0
	for _, c := range p.AutoEquipCost {
		equipmentCost += c
	}

	goldSpent := 0
	if p.Gold < p.OriginalGold {
		goldSpent = p.OriginalGold - p.Gold
	}

	teamDamagePenalty := p.OriginalCreditsPenalty
	totalExpenses := p.AutoRepairCost + ammoCost + equipmentCost
	battleEarnings := p.OriginalCredits + p.AchievementCredits + baseBooster +
		p.TeamSubsBonusCredits - teamDamagePenalty

	premOriginal := applyFactor100Trunc(p.OriginalCredits, credFactor)
	premAchievement := p.AchievementCredits
	if premAchievement > 0 {
		premAchievement = applyFactor100Trunc(p.AchievementCredits, credFactor)
	}
	premEarnings := premOriginal + premAchievement + p.BoosterCredits +
		p.TeamSubsBonusCredits - teamDamagePenalty

	credits := model.CreditFlow{
		OriginalCredits:      p.OriginalCredits,
		AchievementCredits:   p.AchievementCredits,
		BoosterCredits:       baseBooster,
		TeamSubsBonusCredits: p.TeamSubsBonusCredits,
		BattleEarnings:       battleEarnings,

		PremiumOriginalCredits:    premOriginal,
		PremiumAchievementCredits: premAchievement,
		PremiumBoosterCredits:     p.BoosterCredits,
		PremiumBattleEarnings:     premEarnings,

		AutoRepairCost: p.AutoRepairCost,
		AmmoCost:       ammoCost,
		EquipmentCost:  equipmentCost,
		GoldSpent:      goldSpent,
		TotalExpenses:  totalExpenses,

		CreditsPenalty:    p.CreditsPenalty,
		TeamDamagePenalty: teamDamagePenalty,

		NetResult:        battleEarnings - totalExpenses,
		PremiumNetResult: premEarnings - totalExpenses,
	}

	xpPenalty := p.OriginalXPPenalty
	firstBloodMult := 1
	if p.IsFirstBlood {
		firstBloodMult = 2
	}

	premXP := applyFactor100Ceil(p.OriginalXP, xpFactor)
	premFreeXP := applyFactor100Ceil(p.OriginalFreeXP, xpFactor)
	premEventXP := applyFactor100Ceil(p.EventXP, xpFactor)
	premEventFreeXP := applyFactor100Ceil(p.EventFreeXP, xpFactor)

	xp := model.XPFlow{
		DailyFactor:    p.DailyXPFactor10 / 10,
		OriginalXP:     p.OriginalXP,
		OriginalFreeXP: p.OriginalFreeXP,
		EventXP:        p.EventXP,
		EventFreeXP:    p.EventFreeXP,
		TotalXP:        (p.OriginalXP + p.EventXP - xpPenalty) * firstBloodMult,
		TotalFreeXP:    (p.OriginalFreeXP + p.EventFreeXP - xpPenalty) * firstBloodMult,

		PremiumXP:          premXP,
		PremiumFreeXP:      premFreeXP,
		PremiumEventXP:     premEventXP,
		PremiumEventFreeXP: premEventFreeXP,
		TotalPremiumXP:     (premXP + premEventXP - xpPenalty) * firstBloodMult,
		TotalPremiumFreeXP: (premFreeXP + premEventXP - xpPenalty) * firstBloodMult,
	}

	achievementCrystal := 0
	if p.Crystal > p.OriginalCrystal {
		achievementCrystal = p.Crystal - p.OriginalCrystal
	}
	specialCrystal := p.OriginalCrystal
	if specialCrystal < 0 {
		specialCrystal = 0
	}

	return model.Economics{
		Credits: credits,
		XP:      xp,
		Crystal: model.CrystalFlow{
			AchievementCrystal:    achievementCrystal,
			SpecialVehicleCrystal: specialCrystal,
			EventCrystal:          p.EventCrystal,
			TotalCrystal:          p.Crystal,
		},
		IsPremium: credFactor > 100,
	}
}

// TimeStats derives the battle timeline. The arena creation timestamp wins;
// recordings without one fall back to the metadata date string.
func (t *Transformer) TimeStats(doc *replay.Document) model.TimeStats {
	p := doc.Personal()
	common := doc.Common()

	lifeTimeText := "-"
	if p.DeathReason >= 0 {
		lifeTimeText = util.FormatClock(p.LifeTime)
	}

	survival := 0.0
	if common.Duration > 0 {
		survival = float64(p.LifeTime) / float64(common.Duration) * 100.0
	}

	return model.TimeStats{
		Duration:        common.Duration,
		DurationText:    util.FormatClock(common.Duration),
		LifeTime:        p.LifeTime,
		LifeTimeText:    lifeTimeText,
		SurvivalPercent: survival,
		StartedAt:       t.battleStart(doc),
	}
}

func (t *Transformer) battleStart(doc *replay.Document) time.Time {
	if created := doc.Common().ArenaCreateTime; created > 0 {
		return time.Unix(created, 0)
	}
	started, err := model.ParseBattleDateTime(doc.Metadata().DateTime)
	if err != nil {
		t.l.Warn("unparseable battle date",
			log.String("dateTime", doc.Metadata().DateTime))
		return time.Time{}
	}
	return started
}

// VehicleStatus reports the end-of-battle state of the recorded tank.
func (t *Transformer) VehicleStatus(doc *replay.Document) model.VehicleStatus {
	meta := doc.Metadata()
	p := doc.Personal()

	nation, tag := "", meta.PlayerVehicle
	if n, rest, ok := strings.Cut(meta.PlayerVehicle, "-"); ok {
		nation, tag = n, rest
	}

	maxHealth := p.MaxHealth
	if maxHealth < 1 {
		maxHealth = 1
	}
	return model.VehicleStatus{
		Tag:             tag,
		Nation:          nation,
		MaxHealth:       p.MaxHealth,
		HealthRemaining: p.Health,
		HealthPercent:   float64(p.Health) / float64(maxHealth) * 100.0,
	}
}

// DetailedReport assembles the complete personal report.
func (t *Transformer) DetailedReport(doc *replay.Document) model.DetailedReport {
	return model.DetailedReport{
		Stats:     t.PersonalStats(doc),
		Economics: t.Economics(doc),
		Time:      t.TimeStats(doc),
		Vehicle:   t.VehicleStatus(doc),
	}
}
