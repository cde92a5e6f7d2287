package model

import "time"

// Typed views of the decoded battle recording. The raw document uses the field
// names of the game client, which are inconsistent between sections (the players
// section stores the durable nickname in "realName" and the in-battle alias in
// "name", while the vehicles and avatars sections use "name" for the durable
// nickname and "fakeName" for the alias). The conversion into these records
// resolves that once; downstream code only ever sees DurableName/InBattleAlias.

// Metadata is the flat first block of the container.
type Metadata struct {
	AccountID        AccountID `json:"accountId"`
	PlayerName       string    `json:"playerName"`
	PlayerVehicle    string    `json:"playerVehicle"` // "<nation>-<tag>"
	RegionCode       string    `json:"regionCode"`
	ServerName       string    `json:"serverName"`
	MapName          string    `json:"mapName"`
	MapDisplayName   string    `json:"mapDisplayName"`
	DateTime         string    `json:"dateTime"` // "DD.MM.YYYY HH:MM:SS", sometimes without the space
	GameplayID       string    `json:"gameplayId"`
	BattleType       int       `json:"battleType"`
	ArenaUniqueID    int64     `json:"arenaUniqueId"`
	ClientVersionExe string    `json:"clientVersionFromExe"`
	ClientVersionXML string    `json:"clientVersionFromXml"`
	HasMods          bool      `json:"hasMods"`
}

// Common holds the battle-wide facts of the authoritative result block.
type Common struct {
	WinnerTeam      int   `json:"winnerTeam"` // 0 = draw
	FinishReason    int   `json:"finishReason"`
	Duration        int   `json:"duration"` // seconds
	ArenaBonusType  int   `json:"bonusType"`
	ArenaTypeID     int64 `json:"arenaTypeId"`
	ArenaCreateTime int64 `json:"arenaCreateTime"` // unix seconds
	GuiType         int   `json:"guiType"`
	Division        int   `json:"division"`
}

// AssistDamage groups the five assist-damage counters that are always summed
// together.
type AssistDamage struct {
	Track   int `json:"track"`
	Radio   int `json:"radio"`
	Stun    int `json:"stun"`
	Smoke   int `json:"smoke"`
	Inspire int `json:"inspire"`
}

func (a AssistDamage) Total() int {
	return a.Track + a.Radio + a.Stun + a.Smoke + a.Inspire
}

// Personal is the recording player's result record.
type Personal struct {
	AccountID AccountID `json:"accountId"`
	Team      int       `json:"team"`

	// combat
	Shots                   int          `json:"shots"`
	DirectHits              int          `json:"directHits"`
	DirectEnemyHits         int          `json:"directEnemyHits"`
	Piercings               int          `json:"piercings"`
	ExplosionHits           int          `json:"explosionHits"`
	DamageDealt             int          `json:"damageDealt"`
	SniperDamageDealt       int          `json:"sniperDamageDealt"`
	DirectHitsReceived      int          `json:"directHitsReceived"`
	PiercingsReceived       int          `json:"piercingsReceived"`
	NoDamageHitsReceived    int          `json:"noDamageDirectHitsReceived"`
	ExplosionHitsReceived   int          `json:"explosionHitsReceived"`
	DamageBlockedByArmor    int          `json:"damageBlockedByArmor"`
	PotentialDamageReceived int          `json:"potentialDamageReceived"`
	TeamDamageDealt         int          `json:"tdamageDealt"`
	TeamKills               int          `json:"tkills"`
	Spotted                 int          `json:"spotted"`
	Damaged                 int          `json:"damaged"`
	Kills                   int          `json:"kills"`
	Assist                  AssistDamage `json:"assist"`
	CapturePoints           int          `json:"capturePoints"`
	DroppedCapturePoints    int          `json:"droppedCapturePoints"`
	Mileage                 int          `json:"mileage"` // meters
	StunNum                 int          `json:"stunNum"`
	LifeTime                int          `json:"lifeTime"` // seconds
	MaxHealth               int          `json:"maxHealth"`
	Health                  int          `json:"health"`
	DeathReason             int          `json:"deathReason"` // -1 = survived
	KillerID                SessionID    `json:"killerId"`
	MarkOfMastery           int          `json:"markOfMastery"`
	IsFirstBlood            bool         `json:"isFirstBlood"`

	// economy
	Credits                int    `json:"credits"`
	OriginalCredits        int    `json:"originalCredits"`
	SubtotalCredits        int    `json:"subtotalCredits"`
	AchievementCredits     int    `json:"achievementCredits"`
	BoosterCredits         int    `json:"boosterCredits"`
	BoosterCreditsFactor   int    `json:"boosterCreditsFactor100"`
	TeamSubsBonusCredits   int    `json:"teamSubsBonusCredits"`
	CreditsPenalty         int    `json:"creditsPenalty"`
	OriginalCreditsPenalty int    `json:"originalCreditsPenalty"`
	Repair                 int    `json:"repair"`
	AutoRepairCost         int    `json:"autoRepairCost"`
	AutoLoadCost           []int  `json:"autoLoadCost"`  // [ammo, gold ammo]
	AutoEquipCost          []int  `json:"autoEquipCost"` // per consumable slot
	Gold                   int    `json:"gold"`
	OriginalGold           int    `json:"originalGold"`
	XP                     int    `json:"xp"`
	OriginalXP             int    `json:"originalXP"`
	SubtotalXP             int    `json:"subtotalXP"`
	OriginalFreeXP         int    `json:"originalFreeXP"`
	EventXP                int    `json:"eventXP"`
	EventFreeXP            int    `json:"eventFreeXP"`
	OriginalXPPenalty      int    `json:"originalXPPenalty"`
	PremiumCreditsFactor   int    `json:"premiumCreditsFactor100"` // 100 = x1.0
	PremiumXPFactor        int    `json:"premiumXPFactor100"`
	DailyXPFactor10        int    `json:"dailyXPFactor10"` // 20 = first win of the day
	Crystal                int    `json:"crystal"`
	OriginalCrystal        int    `json:"originalCrystal"`
	EventCrystal           int    `json:"eventCrystal"`
	Achievements           []int  `json:"achievements"`
}

// PlayerEntry is one roster entry of the players section, keyed by AccountID.
type PlayerEntry struct {
	AccountID     AccountID `json:"accountId"`
	DurableName   string    `json:"durableName"`   // raw field: realName
	InBattleAlias string    `json:"inBattleAlias"` // raw field: name
	ClanTag       string    `json:"clanTag"`
	Team          int       `json:"team"`
	IsTeamKiller  bool      `json:"isTeamKiller"`
}

// VehicleEntry is one per-session statistics record of the vehicles section.
// In the document each value is a single-element list wrapping this record.
type VehicleEntry struct {
	SessionID SessionID `json:"sessionId"`
	AccountID AccountID `json:"accountId"`
	Team      int       `json:"team"`

	DurableName   string `json:"durableName"`   // raw field: name
	InBattleAlias string `json:"inBattleAlias"` // raw field: fakeName

	Shots                 int          `json:"shots"`
	DirectHits            int          `json:"directHits"`
	Piercings             int          `json:"piercings"`
	ExplosionHits         int          `json:"explosionHits"`
	DamageDealt           int          `json:"damageDealt"`
	SniperDamageDealt     int          `json:"sniperDamageDealt"`
	DirectHitsReceived    int          `json:"directHitsReceived"`
	PiercingsReceived     int          `json:"piercingsReceived"`
	NoDamageHitsReceived  int          `json:"noDamageDirectHitsReceived"`
	ExplosionHitsReceived int          `json:"explosionHitsReceived"`
	DamageBlockedByArmor  int          `json:"damageBlockedByArmor"`
	TeamDamageDealt       int          `json:"tdamageDealt"`
	TeamKills             int          `json:"tkills"`
	Spotted               int          `json:"spotted"`
	Damaged               int          `json:"damaged"`
	Kills                 int          `json:"kills"`
	Assist                AssistDamage `json:"assist"`
	CapturePoints         int          `json:"capturePoints"`
	DroppedCapturePoints  int          `json:"droppedCapturePoints"`
	Mileage               int          `json:"mileage"`
	StunNum               int          `json:"stunNum"`
	XP                    int          `json:"xp"`
	Health                int          `json:"health"`
	MaxHealth             int          `json:"maxHealth"`
	DeathReason           int          `json:"deathReason"`
	KillerID              SessionID    `json:"killerId"`
	Achievements          []int        `json:"achievements"`
}

// AvatarEntry is the per-session summary record of the avatars section.
type AvatarEntry struct {
	SessionID     SessionID `json:"sessionId"`
	VehicleType   string    `json:"vehicleType"` // "<nation>:<tag>"
	Team          int       `json:"team"`
	DurableName   string    `json:"durableName"`   // raw field: name
	InBattleAlias string    `json:"inBattleAlias"` // raw field: fakeName
	ClanTag       string    `json:"clanTag"`
	IsAlive       bool      `json:"isAlive"`
	IsTeamKiller  bool      `json:"isTeamKiller"`
}

// DisplayName picks the durable nickname with the alias as fallback.
func (a *AvatarEntry) DisplayName() string {
	if a.DurableName != "" {
		return a.DurableName
	}
	if a.InBattleAlias != "" {
		return a.InBattleAlias
	}
	return string(a.SessionID)
}

// DetailEntry holds the recording player's interaction counters against one
// target session.
type DetailEntry struct {
	Target               SessionID    `json:"target"`
	Spotted              int          `json:"spotted"`
	Assist               AssistDamage `json:"assist"`
	RicochetsReceived    int          `json:"rickochetsReceived"` // sic, client field name
	NoDamageHitsReceived int          `json:"noDamageDirectHitsReceived"`
	DamageBlockedByArmor int          `json:"damageBlockedByArmor"`
	Crits                uint32       `json:"crits"` // bitmask, one bit per critted module
	Piercings            int          `json:"piercings"`
	DamageDealt          int          `json:"damageDealt"`
	TargetKills          int          `json:"targetKills"`
	DirectHits           int          `json:"directHits"`
}

// RosterEntry is the resolved identity triplet of one rostered player.
type RosterEntry struct {
	AccountID     AccountID `json:"accountId"`
	DurableName   string    `json:"durableName"`
	InBattleAlias string    `json:"inBattleAlias"`
	ClanTag       string    `json:"clanTag"`
}

// Owner describes the recording player.
type Owner struct {
	AccountID     AccountID `json:"accountId"`
	DurableName   string    `json:"durableName"`
	InBattleAlias string    `json:"inBattleAlias"`
	ClanTag       string    `json:"clanTag"`
}

// ParseBattleDateTime parses the metadata timestamp. Some recordings omit the
// space between date and time.
func ParseBattleDateTime(s string) (time.Time, error) {
	if len(s) == 19 && s[10] != ' ' {
		s = s[:10] + " " + s[10:]
	}
	return time.Parse("02.01.2006 15:04:05", s)
}
