package replay

import (
	"sort"
	"strings"

	"github.com/tanklog/mtreplay-service-go/log"
	"github.com/tanklog/mtreplay-service-go/pkg/model"
)

// Document wraps one decoded container and exposes typed, memoized views into
// its sections. Every view is computed at most once; repeated calls return the
// identical value. A Document is not safe for concurrent use.
//
// The first battle section is authoritative. The later sections repeat parts
// of it and are never read.
type Document struct {
	meta    map[string]any
	result  map[string]any
	avatars map[string]any

	l *log.Logger

	metadata   *model.Metadata
	common     *model.Common
	personal   *model.Personal
	players    map[model.AccountID]*model.PlayerEntry
	vehicles   map[model.SessionID]*model.VehicleEntry
	avatarsV   map[model.SessionID]*model.AvatarEntry
	details    []*model.DetailEntry
	vehicleErr error
	team       *int
}

// NewDocument validates the top-level shape of a raw document and wraps it.
// Shape violations surface here as a *StructuralError, never as a panic on a
// later accessor call.
func NewDocument(raw *RawDocument) (*Document, error) {
	if raw == nil || raw.Metadata == nil {
		return nil, &StructuralError{Section: "metadata", Reason: "missing"}
	}
	if len(raw.Sections) == 0 {
		return nil, &StructuralError{Section: "sections", Reason: "empty"}
	}
	pair := asSlice(raw.Sections[0])
	if len(pair) < 2 {
		return nil, &StructuralError{Section: "sections", Reason: "first section is not a [result, avatars] pair"}
	}
	result := asMap(pair[0])
	if result == nil {
		return nil, &StructuralError{Section: "sections", Reason: "battle result is not an object"}
	}
	avatars := asMap(pair[1])
	if avatars == nil {
		return nil, &StructuralError{Section: "avatars", Reason: "not an object"}
	}
	return &Document{
		meta:    raw.Metadata,
		result:  result,
		avatars: avatars,
		l:       log.Default().Named("replay.document"),
	}, nil
}

// Metadata returns the typed first block.
func (d *Document) Metadata() *model.Metadata {
	if d.metadata != nil {
		return d.metadata
	}
	m := d.meta
	d.metadata = &model.Metadata{
		AccountID:        model.AccountID(asInt64(m["playerID"])),
		PlayerName:       asString(m["playerName"]),
		PlayerVehicle:    asString(m["playerVehicle"]),
		RegionCode:       asString(m["regionCode"]),
		ServerName:       asString(m["serverName"]),
		MapName:          asString(m["mapName"]),
		MapDisplayName:   asString(m["mapDisplayName"]),
		DateTime:         asString(m["dateTime"]),
		GameplayID:       asString(m["gameplayID"]),
		BattleType:       asInt(m["battleType"]),
		ArenaUniqueID:    asInt64(m["arenaUniqueID"]),
		ClientVersionExe: asString(m["clientVersionFromExe"]),
		ClientVersionXML: asString(m["clientVersionFromXml"]),
		HasMods:          asBool(m["hasMods"]),
	}
	return d.metadata
}

// AccountID is the durable id of the recording player.
func (d *Document) AccountID() model.AccountID {
	return d.Metadata().AccountID
}

// Common returns the battle-wide result facts.
func (d *Document) Common() *model.Common {
	if d.common != nil {
		return d.common
	}
	c := asMap(d.result["common"])
	if c == nil {
		d.l.Warn("common section missing, using defaults")
		c = map[string]any{}
	}
	d.common = &model.Common{
		WinnerTeam:      asInt(c["winnerTeam"]),
		FinishReason:    asInt(c["finishReason"]),
		Duration:        asInt(c["duration"]),
		ArenaBonusType:  asInt(c["bonusType"]),
		ArenaTypeID:     asInt64(c["arenaTypeID"]),
		ArenaCreateTime: asInt64(c["arenaCreateTime"]),
		GuiType:         asInt(c["guiType"]),
		Division:        asInt(c["division"]),
	}
	return d.common
}

// Personal returns the recording player's own result record. The section may
// be flat or keyed by vehicle descriptor; in the keyed form the record whose
// accountDBID matches the document owner wins. A missing record is absorbed
// into a zero value with a logged warning.
func (d *Document) Personal() *model.Personal {
	if d.personal != nil {
		return d.personal
	}
	raw := d.personalRaw()
	if raw == nil {
		d.l.Warn("no personal record for recording player",
			log.String("accountId", d.AccountID().String()))
		d.personal = &model.Personal{AccountID: d.AccountID(), DeathReason: -1}
		return d.personal
	}
	d.personal = convertPersonal(raw)
	return d.personal
}

func (d *Document) personalRaw() map[string]any {
	p := asMap(d.result["personal"])
	if p == nil {
		return nil
	}
	want := int64(d.AccountID())
	if id, ok := p["accountDBID"]; ok && asInt64(id) == want {
		return p
	}
	for _, v := range p {
		if entry := asMap(v); entry != nil && asInt64(entry["accountDBID"]) == want {
			return entry
		}
	}
	return nil
}

// Players returns the roster keyed by durable account id. The raw section
// stores the in-battle alias under "name" and the durable nickname under
// "realName"; this is where that gets straightened out.
func (d *Document) Players() map[model.AccountID]*model.PlayerEntry {
	if d.players != nil {
		return d.players
	}
	d.players = make(map[model.AccountID]*model.PlayerEntry)
	for key, v := range asMap(d.result["players"]) {
		entry := asMap(v)
		if entry == nil {
			continue
		}
		id, ok := model.ParseAccountID(key)
		if !ok {
			d.l.Warn("skipping player with non-numeric key", log.String("key", key))
			continue
		}
		d.players[id] = &model.PlayerEntry{
			AccountID:     id,
			DurableName:   asString(entry["realName"]),
			InBattleAlias: asString(entry["name"]),
			ClanTag:       asString(entry["clanAbbrev"]),
			Team:          asInt(entry["team"]),
			IsTeamKiller:  asBool(entry["isTeamKiller"]),
		}
	}
	return d.players
}

// Vehicles returns the per-session statistics keyed by session id. Each raw
// record is a single-element list; any other arity is a structural error and
// the error sticks for subsequent calls.
func (d *Document) Vehicles() (map[model.SessionID]*model.VehicleEntry, error) {
	if d.vehicles != nil || d.vehicleErr != nil {
		return d.vehicles, d.vehicleErr
	}
	out := make(map[model.SessionID]*model.VehicleEntry)
	for key, v := range asMap(d.result["vehicles"]) {
		wrapper := asSlice(v)
		if len(wrapper) != 1 {
			d.vehicleErr = &StructuralError{
				Section: "vehicles",
				Reason:  "record of session " + key + " is not a single-element list",
			}
			return nil, d.vehicleErr
		}
		entry := asMap(wrapper[0])
		if entry == nil {
			d.vehicleErr = &StructuralError{
				Section: "vehicles",
				Reason:  "record of session " + key + " is not an object",
			}
			return nil, d.vehicleErr
		}
		sid := model.SessionID(key)
		out[sid] = convertVehicle(sid, entry)
	}
	d.vehicles = out
	return d.vehicles, nil
}

// Avatars returns the per-session summary keyed by session id. In this
// section "name" is the durable nickname and "fakeName" the alias, the
// opposite of the players section.
func (d *Document) Avatars() map[model.SessionID]*model.AvatarEntry {
	if d.avatarsV != nil {
		return d.avatarsV
	}
	d.avatarsV = make(map[model.SessionID]*model.AvatarEntry)
	for key, v := range d.avatars {
		entry := asMap(v)
		if entry == nil {
			continue
		}
		sid := model.SessionID(key)
		d.avatarsV[sid] = &model.AvatarEntry{
			SessionID:     sid,
			VehicleType:   asString(entry["vehicleType"]),
			Team:          asInt(entry["team"]),
			DurableName:   asString(entry["name"]),
			InBattleAlias: asString(entry["fakeName"]),
			ClanTag:       asString(entry["clanAbbrev"]),
			IsAlive:       asBool(entry["isAlive"]),
			IsTeamKiller:  asBool(entry["isTeamKiller"]),
		}
	}
	return d.avatarsV
}

// Team is the recording player's team number. The personal record is the
// primary source; a roster lookup covers recordings whose personal section
// could not be resolved.
func (d *Document) Team() int {
	if d.team != nil {
		return *d.team
	}
	team := d.Personal().Team
	if team == 0 {
		if p, ok := d.Players()[d.AccountID()]; ok {
			team = p.Team
		}
	}
	if team == 0 {
		d.l.Warn("could not determine team of recording player",
			log.String("accountId", d.AccountID().String()))
	}
	d.team = &team
	return team
}

// Details returns the recording player's per-target interaction records in a
// stable session-id order. Keys that do not look like a "(sessionId, 0)"
// tuple are skipped.
func (d *Document) Details() []*model.DetailEntry {
	if d.details != nil {
		return d.details
	}
	raw := d.personalRaw()
	d.details = []*model.DetailEntry{}
	for key, v := range asMap(raw["details"]) {
		entry := asMap(v)
		if entry == nil {
			continue
		}
		sid, ok := parseDetailKey(key)
		if !ok {
			d.l.Warn("skipping malformed detail key", log.String("key", key))
			continue
		}
		d.details = append(d.details, convertDetail(sid, entry))
	}
	sort.Slice(d.details, func(i, j int) bool {
		return d.details[i].Target < d.details[j].Target
	})
	return d.details
}

// AchievementIDs lists the recording player's earned achievement ids.
func (d *Document) AchievementIDs() []int {
	return d.Personal().Achievements
}

// parseDetailKey extracts the target session id from a "(46118422, 0)" key.
func parseDetailKey(key string) (model.SessionID, bool) {
	s := strings.TrimSpace(key)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return "", false
	}
	parts := strings.Split(s[1:len(s)-1], ",")
	if len(parts) != 2 {
		return "", false
	}
	first := model.SessionID(strings.TrimSpace(parts[0]))
	second := model.SessionID(strings.TrimSpace(parts[1]))
	if !first.Valid() || !second.Valid() {
		return "", false
	}
	return first, true
}

// VehicleTag extracts the tag from a "<nation>:<tag>" vehicle type. Strings
// without a separator are returned whole.
func VehicleTag(vehicleType string) string {
	if _, tag, ok := strings.Cut(vehicleType, ":"); ok {
		return tag
	}
	return vehicleType
}

// MetadataVehicleTag extracts the tag from the metadata's "<nation>-<tag>"
// vehicle field, which uses a dash instead of the colon of the avatars
// section.
func MetadataVehicleTag(playerVehicle string) string {
	if _, tag, ok := strings.Cut(playerVehicle, "-"); ok {
		return tag
	}
	return playerVehicle
}

func assistFrom(m map[string]any) model.AssistDamage {
	return model.AssistDamage{
		Track:   asInt(m["damageAssistedTrack"]),
		Radio:   asInt(m["damageAssistedRadio"]),
		Stun:    asInt(m["damageAssistedStun"]),
		Smoke:   asInt(m["damageAssistedSmoke"]),
		Inspire: asInt(m["damageAssistedInspire"]),
	}
}

func convertPersonal(p map[string]any) *model.Personal {
	return &model.Personal{
		AccountID: model.AccountID(asInt64(p["accountDBID"])),
		Team:      asInt(p["team"]),

		Shots:                   asInt(p["shots"]),
		DirectHits:              asInt(p["directHits"]),
		DirectEnemyHits:         asInt(p["directEnemyHits"]),
		Piercings:               asInt(p["piercings"]),
		ExplosionHits:           asInt(p["explosionHits"]),
		DamageDealt:             asInt(p["damageDealt"]),
		SniperDamageDealt:       asInt(p["sniperDamageDealt"]),
		DirectHitsReceived:      asInt(p["directHitsReceived"]),
		PiercingsReceived:       asInt(p["piercingsReceived"]),
		NoDamageHitsReceived:    asInt(p["noDamageDirectHitsReceived"]),
		ExplosionHitsReceived:   asInt(p["explosionHitsReceived"]),
		DamageBlockedByArmor:    asInt(p["damageBlockedByArmor"]),
		PotentialDamageReceived: asInt(p["potentialDamageReceived"]),
		TeamDamageDealt:         asInt(p["tdamageDealt"]),
		TeamKills:               asInt(p["tkills"]),
		Spotted:                 asInt(p["spotted"]),
		Damaged:                 asInt(p["damaged"]),
		Kills:                   asInt(p["kills"]),
		Assist:                  assistFrom(p),
		CapturePoints:           asInt(p["capturePoints"]),
		DroppedCapturePoints:    asInt(p["droppedCapturePoints"]),
		Mileage:                 asInt(p["mileage"]),
		StunNum:                 asInt(p["stunNum"]),
		LifeTime:                asInt(p["lifeTime"]),
		MaxHealth:               asInt(p["maxHealth"]),
		Health:                  asInt(p["health"]),
		DeathReason:             deathReason(p),
		KillerID:                model.SessionIDFromInt(asInt64(p["killerID"])),
		MarkOfMastery:           asInt(p["markOfMastery"]),
		IsFirstBlood:            asBool(p["isFirstBlood"]),

		Credits:                asInt(p["credits"]),
		OriginalCredits:        asInt(p["originalCredits"]),
		SubtotalCredits:        asInt(p["subtotalCredits"]),
		AchievementCredits:     asInt(p["achievementCredits"]),
		BoosterCredits:         asInt(p["boosterCredits"]),
		BoosterCreditsFactor:   asInt(p["boosterCreditsFactor100"]),
		TeamSubsBonusCredits:   asInt(p["teamSubsBonusCredits"]),
		CreditsPenalty:         asInt(p["creditsPenalty"]),
		OriginalCreditsPenalty: asInt(p["originalCreditsPenalty"]),
		Repair:                 asInt(p["repair"]),
		AutoRepairCost:         asInt(p["autoRepairCost"]),
		AutoLoadCost:           asIntSlice(p["autoLoadCost"]),
		AutoEquipCost:          asIntSlice(p["autoEquipCost"]),
		Gold:                   asInt(p["gold"]),
		OriginalGold:           asInt(p["originalGold"]),
		XP:                     asInt(p["xp"]),
		OriginalXP:             asInt(p["originalXP"]),
		SubtotalXP:             asInt(p["subtotalXP"]),
		OriginalFreeXP:         asInt(p["originalFreeXP"]),
		EventXP:                asInt(p["eventXP"]),
		EventFreeXP:            asInt(p["eventFreeXP"]),
		OriginalXPPenalty:      asInt(p["originalXPPenalty"]),
		PremiumCreditsFactor:   asInt(p["premiumCreditsFactor100"]),
		PremiumXPFactor:        asInt(p["premiumXPFactor100"]),
		DailyXPFactor10:        asInt(p["dailyXPFactor10"]),
		Crystal:                asInt(p["crystal"]),
		OriginalCrystal:        asInt(p["originalCrystal"]),
		EventCrystal:           asInt(p["eventCrystal"]),
		Achievements:           asIntSlice(p["achievements"]),
	}
}

// deathReason defaults to -1 (survived) when the field is absent, since the
// zero value 0 already means "destroyed by shot".
func deathReason(m map[string]any) int {
	v, ok := m["deathReason"]
	if !ok {
		return -1
	}
	return asInt(v)
}

func convertVehicle(sid model.SessionID, v map[string]any) *model.VehicleEntry {
	return &model.VehicleEntry{
		SessionID: sid,
		AccountID: model.AccountID(asInt64(v["accountDBID"])),
		Team:      asInt(v["team"]),

		DurableName:   asString(v["name"]),
		InBattleAlias: asString(v["fakeName"]),

		Shots:                 asInt(v["shots"]),
		DirectHits:            asInt(v["directHits"]),
		Piercings:             asInt(v["piercings"]),
		ExplosionHits:         asInt(v["explosionHits"]),
		DamageDealt:           asInt(v["damageDealt"]),
		SniperDamageDealt:     asInt(v["sniperDamageDealt"]),
		DirectHitsReceived:    asInt(v["directHitsReceived"]),
		PiercingsReceived:     asInt(v["piercingsReceived"]),
		NoDamageHitsReceived:  asInt(v["noDamageDirectHitsReceived"]),
		ExplosionHitsReceived: asInt(v["explosionHitsReceived"]),
		DamageBlockedByArmor:  asInt(v["damageBlockedByArmor"]),
		TeamDamageDealt:       asInt(v["tdamageDealt"]),
		TeamKills:             asInt(v["tkills"]),
		Spotted:               asInt(v["spotted"]),
		Damaged:               asInt(v["damaged"]),
		Kills:                 asInt(v["kills"]),
		Assist:                assistFrom(v),
		CapturePoints:         asInt(v["capturePoints"]),
		DroppedCapturePoints:  asInt(v["droppedCapturePoints"]),
		Mileage:               asInt(v["mileage"]),
		StunNum:               asInt(v["stunNum"]),
		XP:                    asInt(v["xp"]),
		Health:                asInt(v["health"]),
		MaxHealth:             asInt(v["maxHealth"]),
		DeathReason:           deathReason(v),
		KillerID:              model.SessionIDFromInt(asInt64(v["killerID"])),
		Achievements:          asIntSlice(v["achievements"]),
	}
}

func convertDetail(sid model.SessionID, d map[string]any) *model.DetailEntry {
	return &model.DetailEntry{
		Target:               sid,
		Spotted:              asInt(d["spotted"]),
		Assist:               assistFrom(d),
		RicochetsReceived:    asInt(d["rickochetsReceived"]),
		NoDamageHitsReceived: asInt(d["noDamageDirectHitsReceived"]),
		DamageBlockedByArmor: asInt(d["damageBlockedByArmor"]),
		Crits:                asUint32(d["crits"]),
		Piercings:            asInt(d["piercings"]),
		DamageDealt:          asInt(d["damageDealt"]),
		TargetKills:          asInt(d["targetKills"]),
		DirectHits:           asInt(d["directHits"]),
	}
}
