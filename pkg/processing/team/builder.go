package team

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/tanklog/mtreplay-service-go/log"
	"github.com/tanklog/mtreplay-service-go/pkg/model"
	"github.com/tanklog/mtreplay-service-go/pkg/processing/util"
	"github.com/tanklog/mtreplay-service-go/pkg/replay"
)

// Builder produces the two team tables of a battle. All catalog data arrives
// prefetched: the per-player loop performs no lookups of its own.
type Builder struct {
	l *log.Logger
}

type Option func(*Builder)

func WithLogger(l *log.Logger) Option {
	return func(b *Builder) { b.l = l }
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{l: log.Default().Named("team")}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CollectVehicleTags gathers the distinct vehicle tags referenced by the
// roster, for one batched catalog fetch.
func (b *Builder) CollectVehicleTags(doc *replay.Document) []string {
	avatars := doc.Avatars()
	tags := make([]string, 0, len(avatars)+1)
	for _, avatar := range avatars {
		if avatar.VehicleType == "" {
			continue
		}
		tags = append(tags, replay.VehicleTag(avatar.VehicleType))
	}
	if own := replay.MetadataVehicleTag(doc.Metadata().PlayerVehicle); own != "" {
		tags = append(tags, own)
	}
	tags = lo.Uniq(tags)
	sort.Strings(tags)
	return tags
}

// CollectAchievementIDs gathers the union of all rostered players'
// achievement ids, for one batched catalog fetch.
func (b *Builder) CollectAchievementIDs(doc *replay.Document) ([]int, error) {
	vehicles, err := doc.Vehicles()
	if err != nil {
		return nil, err
	}
	ids := []int{}
	for _, v := range vehicles {
		ids = append(ids, v.Achievements...)
	}
	ids = lo.Uniq(ids)
	sort.Ints(ids)
	return ids, nil
}

// Build assembles the allies/enemies tables from the avatars, vehicles and
// players sections. Avatars without a vehicle type are not combatants and are
// skipped. Both tables come out sorted by damage dealt descending.
func (b *Builder) Build(
	doc *replay.Document,
	tanks map[string]model.Tank,
	medals map[int]model.Achievement,
) (model.TeamResult, error) {
	vehicles, err := doc.Vehicles()
	if err != nil {
		return model.TeamResult{}, err
	}
	avatars := doc.Avatars()
	players := doc.Players()
	ownTeam := doc.Team()
	if ownTeam == 0 {
		b.l.Warn("defaulting recording player to team 1")
		ownTeam = 1
	}

	result := model.TeamResult{
		Allies:  []model.PlayerRow{},
		Enemies: []model.PlayerRow{},
	}
	for sid, avatar := range avatars {
		if avatar.VehicleType == "" {
			continue
		}
		row := b.buildRow(doc, sid, avatar, vehicles[sid], players, tanks, medals)
		if row.Team == ownTeam {
			result.Allies = append(result.Allies, row)
		} else {
			result.Enemies = append(result.Enemies, row)
		}
	}

	byDamage := func(rows []model.PlayerRow) {
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Stats.DamageDealt > rows[j].Stats.DamageDealt
		})
	}
	byDamage(result.Allies)
	byDamage(result.Enemies)
	return result, nil
}

//nolint:funlen // one row assembly
func (b *Builder) buildRow(
	doc *replay.Document,
	sid model.SessionID,
	avatar *model.AvatarEntry,
	vehicle *model.VehicleEntry,
	players map[model.AccountID]*model.PlayerEntry,
	tanks map[string]model.Tank,
	medals map[int]model.Achievement,
) model.PlayerRow {
	tag := replay.VehicleTag(avatar.VehicleType)
	tank, ok := tanks[tag]
	if !ok {
		b.l.Warn("vehicle tag missing from catalog", log.String("tag", tag))
		tank = model.UnknownTank(tag)
	}

	row := model.PlayerRow{
		SessionID:     sid,
		Name:          avatar.DisplayName(),
		Team:          avatar.Team,
		VehicleTag:    tag,
		VehicleName:   tank.Name,
		VehicleTier:   tank.Tier,
		VehicleType:   tank.Type,
		VehicleNation: tank.Nation,
		IsAlive:       true,
		DeathText:     "Survived",
		Medals:        []model.Achievement{},
	}

	if vehicle == nil {
		b.l.Warn("avatar has no vehicle statistics", log.String("sessionId", string(sid)))
		row.DisplayName = row.Name
		return row
	}

	row.AccountID = vehicle.AccountID
	row.IsOwner = vehicle.AccountID == doc.AccountID()
	if entry, ok := players[vehicle.AccountID]; ok {
		row.ClanTag = entry.ClanTag
	}
	row.DisplayName = util.DisplayName(row.Name, row.ClanTag)

	row.IsAlive = vehicle.DeathReason == util.DeathAlive
	if !row.IsAlive {
		killer := ""
		if killerAvatar, ok := doc.Avatars()[vehicle.KillerID]; ok {
			killer = killerAvatar.DisplayName()
		}
		row.DeathText = util.DeathText(vehicle.DeathReason, killer)
	}

	row.Stats = model.CombatStats{
		Shots:                 vehicle.Shots,
		DirectHits:            vehicle.DirectHits,
		Piercings:             vehicle.Piercings,
		ExplosionHits:         vehicle.ExplosionHits,
		DamageDealt:           vehicle.DamageDealt,
		SniperDamage:          vehicle.SniperDamageDealt,
		HitsReceived:          vehicle.DirectHitsReceived,
		PiercingsReceived:     vehicle.PiercingsReceived,
		NoDamageHitsReceived:  vehicle.NoDamageHitsReceived,
		ExplosionHitsReceived: vehicle.ExplosionHitsReceived,
		DamageBlocked:         vehicle.DamageBlockedByArmor,
		TeamDamage:            vehicle.TeamDamageDealt,
		TeamKills:             vehicle.TeamKills,
		Spotted:               vehicle.Spotted,
		DamagedCount:          vehicle.Damaged,
		Kills:                 vehicle.Kills,
		AssistDamage:          vehicle.Assist.Total(),
		CapturePoints:         vehicle.CapturePoints,
		DefensePoints:         vehicle.DroppedCapturePoints,
		DistanceKM:            float64(vehicle.Mileage/10) / 100.0,
		XP:                    vehicle.XP,
		StunDamage:            vehicle.Assist.Stun,
		StunCount:             vehicle.StunNum,
	}

	for _, id := range vehicle.Achievements {
		if medal, ok := medals[id]; ok {
			row.Medals = append(row.Medals, medal)
		}
	}
	sort.Slice(row.Medals, func(i, j int) bool {
		return row.Medals[i].Order < row.Medals[j].Order
	})
	row.MedalsCount = len(row.Medals)
	row.HasMedals = row.MedalsCount > 0
	row.MedalsTitle = strings.Join(
		lo.Map(row.Medals, func(a model.Achievement, _ int) string { return a.Name }), ", ")
	return row
}
