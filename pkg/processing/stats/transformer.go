package stats

import (
	"math/bits"
	"sort"

	"github.com/tanklog/mtreplay-service-go/log"
	"github.com/tanklog/mtreplay-service-go/pkg/model"
	"github.com/tanklog/mtreplay-service-go/pkg/processing/util"
	"github.com/tanklog/mtreplay-service-go/pkg/replay"
)

// Transformer derives the recording player's statistics views from a cached
// document. Tank records arrive prefetched; the transformer itself never
// talks to a catalog.
type Transformer struct {
	l *log.Logger
}

type Option func(*Transformer)

func WithLogger(l *log.Logger) Option {
	return func(t *Transformer) { t.l = l }
}

func NewTransformer(opts ...Option) *Transformer {
	t := &Transformer{l: log.Default().Named("stats")}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Interactions aggregates the per-target details of the recording player.
// Rows and summary come out of the same single pass; the details section is
// read exactly once.
func (t *Transformer) Interactions(
	doc *replay.Document, tanks map[string]model.Tank,
) model.Interactions {
	avatars := doc.Avatars()

	out := model.Interactions{Rows: []model.InteractionRow{}}
	for _, d := range doc.Details() {
		row := model.InteractionRow{
			SessionID:     d.Target,
			Name:          string(d.Target),
			SpottedCount:  d.Spotted,
			AssistDamage:  d.Assist.Total(),
			BlockedEvents: d.RicochetsReceived + d.NoDamageHitsReceived,
			CritsCount:    bits.OnesCount32(d.Crits),
			Piercings:     d.Piercings,
			DamageDealt:   d.DamageDealt,
			TargetKills:   d.TargetKills,
		}
		if avatar, ok := avatars[d.Target]; ok {
			row.Name = avatar.DisplayName()
			row.Team = avatar.Team
			row.VehicleTag = replay.VehicleTag(avatar.VehicleType)
			row.VehicleName = tankName(tanks, row.VehicleTag)
		} else {
			t.l.Warn("interaction target has no avatar entry",
				log.String("sessionId", string(d.Target)))
		}

		if row.SpottedCount > 0 {
			out.Summary.SpottedTanks++
		}
		if row.AssistDamage > 0 {
			out.Summary.AssistTanks++
		}
		if row.BlockedEvents > 0 {
			out.Summary.BlockedTanks++
		}
		out.Summary.CritsTotal += row.CritsCount
		out.Summary.PiercingsTotal += row.Piercings
		if row.TargetKills > 0 {
			out.Summary.DestroyedTanks++
		}
		out.Rows = append(out.Rows, row)
	}
	sort.SliceStable(out.Rows, func(i, j int) bool {
		return out.Rows[i].DamageDealt > out.Rows[j].DamageDealt
	})
	return out
}

// Income computes the headline credits/XP summary, including the premium
// projection and the first-win-of-the-day doubling.
func (t *Transformer) Income(doc *replay.Document) model.IncomeSummary {
	p := doc.Personal()
	common := doc.Common()

	isVictory := doc.Team() != 0 && doc.Team() == common.WinnerTeam
	isFirstWin := isVictory && p.DailyXPFactor10 >= 20

	baseCredits := firstNonZero(p.OriginalCredits, p.SubtotalCredits, p.Credits)
	baseXP := firstNonZero(p.OriginalXP, p.SubtotalXP, p.XP)

	premCredits := applyFactor100(baseCredits, factorOrDefault(p.PremiumCreditsFactor))
	premXP := applyFactor100(baseXP, factorOrDefault(p.PremiumXPFactor))

	mult := 1
	if isFirstWin {
		mult = 2
	}

	hits := p.DirectHits
	if hits == 0 {
		hits = p.DirectEnemyHits
	}
	hitPercent := 0.0
	if p.Shots > 0 {
		hitPercent = float64(hits) / float64(p.Shots) * 100.0
	}

	return model.IncomeSummary{
		BaseCredits:       baseCredits,
		PremiumCredits:    premCredits,
		BaseXP:            baseXP,
		PremiumXP:         premXP,
		FirstWinBaseXP:    baseXP * mult,
		FirstWinPremiumXP: premXP * mult,
		IsFirstWin:        isFirstWin,
		Shots:             p.Shots,
		Hits:              hits,
		HitPercent:        hitPercent,
		AssistTotal:       p.Assist.Total(),
		DamageTotal:       p.DamageDealt,
	}
}

// PersonalStats maps the personal record into the shared combat counters.
func (t *Transformer) PersonalStats(doc *replay.Document) model.CombatStats {
	p := doc.Personal()
	return model.CombatStats{
		Shots:                 p.Shots,
		DirectHits:            p.DirectHits,
		Piercings:             p.Piercings,
		ExplosionHits:         p.ExplosionHits,
		DamageDealt:           p.DamageDealt,
		SniperDamage:          p.SniperDamageDealt,
		HitsReceived:          p.DirectHitsReceived,
		PiercingsReceived:     p.PiercingsReceived,
		NoDamageHitsReceived:  p.NoDamageHitsReceived,
		ExplosionHitsReceived: p.ExplosionHitsReceived,
		DamageBlocked:         p.DamageBlockedByArmor,
		TeamDamage:            p.TeamDamageDealt,
		TeamKills:             p.TeamKills,
		Spotted:               p.Spotted,
		DamagedCount:          p.Damaged,
		Kills:                 p.Kills,
		AssistDamage:          p.Assist.Total(),
		CapturePoints:         p.CapturePoints,
		DefensePoints:         p.DroppedCapturePoints,
		DistanceKM:            roundKM(p.Mileage),
		XP:                    p.XP,
		StunDamage:            p.Assist.Stun,
		StunCount:             p.StunNum,
	}
}

// DeathStatus resolves the recording player's fate, naming the killer from
// the avatars section when one exists.
func (t *Transformer) DeathStatus(doc *replay.Document) model.DeathStatus {
	p := doc.Personal()
	if p.DeathReason == util.DeathAlive {
		return model.DeathStatus{Survived: true, Text: "Survived"}
	}
	killer := ""
	if p.KillerID.Valid() && p.KillerID != "0" {
		if avatar, ok := doc.Avatars()[p.KillerID]; ok {
			killer = avatar.DisplayName()
		} else {
			t.l.Warn("killer session has no avatar entry",
				log.String("sessionId", string(p.KillerID)))
		}
	}
	return model.DeathStatus{
		Text:   util.DeathText(p.DeathReason, killer),
		Killer: killer,
	}
}

// Owner resolves the recording player's identity triplet from the metadata
// and the roster.
func (t *Transformer) Owner(doc *replay.Document) model.Owner {
	meta := doc.Metadata()
	owner := model.Owner{
		AccountID:   meta.AccountID,
		DurableName: meta.PlayerName,
	}
	if entry, ok := doc.Players()[meta.AccountID]; ok {
		if entry.DurableName != "" {
			owner.DurableName = entry.DurableName
		}
		owner.InBattleAlias = entry.InBattleAlias
		owner.ClanTag = entry.ClanTag
	} else {
		t.l.Warn("recording player missing from roster",
			log.String("accountId", meta.AccountID.String()))
	}
	return owner
}

// Roster lists the identity triplets of every rostered player, sorted by
// durable name.
func (t *Transformer) Roster(doc *replay.Document) []model.RosterEntry {
	players := doc.Players()
	out := make([]model.RosterEntry, 0, len(players))
	for _, p := range players {
		out = append(out, model.RosterEntry{
			AccountID:     p.AccountID,
			DurableName:   p.DurableName,
			InBattleAlias: p.InBattleAlias,
			ClanTag:       p.ClanTag,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DurableName < out[j].DurableName
	})
	return out
}

func tankName(tanks map[string]model.Tank, tag string) string {
	if tank, ok := tanks[tag]; ok {
		return tank.Name
	}
	return model.UnknownTank(tag).Name
}

func firstNonZero(vals ...int) int {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}

func roundKM(meters int) float64 {
	return float64(meters/10) / 100.0
}
