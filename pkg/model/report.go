package model

import "time"

// Derived, presentation-ready battle data. Everything here is computed from
// the cached document sections plus the tank and achievement catalogs, and is
// fully detached: no value keeps a reference back into the raw document.

// InteractionRow is one aggregated line of the recording player's actions
// against a single target session.
type InteractionRow struct {
	SessionID     SessionID `json:"sessionId"`
	Name          string    `json:"name"`
	Team          int       `json:"team"`
	VehicleTag    string    `json:"vehicleTag"`
	VehicleName   string    `json:"vehicleName"`
	SpottedCount  int       `json:"spottedCount"`
	AssistDamage  int       `json:"assistDamage"`
	BlockedEvents int       `json:"blockedEvents"` // ricochets + no-damage hits
	CritsCount    int       `json:"critsCount"`    // popcount of the crit bitmask
	Piercings     int       `json:"piercings"`
	DamageDealt   int       `json:"damageDealt"`
	TargetKills   int       `json:"targetKills"`
}

// InteractionsSummary tallies the rows of a battle. The *Tanks counters count
// targets with a nonzero value, the *Total counters sum values.
type InteractionsSummary struct {
	SpottedTanks   int `json:"spottedTanks"`
	AssistTanks    int `json:"assistTanks"`
	BlockedTanks   int `json:"blockedTanks"`
	CritsTotal     int `json:"critsTotal"`
	PiercingsTotal int `json:"piercingsTotal"`
	DestroyedTanks int `json:"destroyedTanks"`
}

// Interactions joins the per-target rows with their aggregate, both produced
// by the same single pass over the details section.
type Interactions struct {
	Rows    []InteractionRow    `json:"rows"`
	Summary InteractionsSummary `json:"summary"`
}

// IncomeSummary is the headline credits/XP view with the premium-account
// variant precomputed.
type IncomeSummary struct {
	BaseCredits       int     `json:"baseCredits"`
	PremiumCredits    int     `json:"premiumCredits"`
	BaseXP            int     `json:"baseXP"`
	PremiumXP         int     `json:"premiumXP"`
	FirstWinBaseXP    int     `json:"firstWinBaseXP"` // base XP with the daily double applied
	FirstWinPremiumXP int     `json:"firstWinPremiumXP"`
	IsFirstWin        bool    `json:"isFirstWin"`
	Shots             int     `json:"shots"`
	Hits              int     `json:"hits"`
	HitPercent        float64 `json:"hitPercent"`
	AssistTotal       int     `json:"assistTotal"`
	DamageTotal       int     `json:"damageTotal"`
}

// CreditFlow itemizes the credit side of the battle economics, with the
// premium-account projection alongside the base numbers.
type CreditFlow struct {
	OriginalCredits      int `json:"originalCredits"`
	AchievementCredits   int `json:"achievementCredits"`
	BoosterCredits       int `json:"boosterCredits"` // de-premiumed base share
	TeamSubsBonusCredits int `json:"teamSubsBonusCredits"`
	BattleEarnings       int `json:"battleEarnings"`

	PremiumOriginalCredits    int `json:"premiumOriginalCredits"`
	PremiumAchievementCredits int `json:"premiumAchievementCredits"`
	PremiumBoosterCredits     int `json:"premiumBoosterCredits"`
	PremiumBattleEarnings     int `json:"premiumBattleEarnings"`

	AutoRepairCost int `json:"autoRepairCost"`
	AmmoCost       int `json:"ammoCost"`
	EquipmentCost  int `json:"equipmentCost"`
	GoldSpent      int `json:"goldSpent"`
	TotalExpenses  int `json:"totalExpenses"`

	CreditsPenalty    int `json:"creditsPenalty"`
	TeamDamagePenalty int `json:"teamDamagePenalty"`

	NetResult        int `json:"netResult"`
	PremiumNetResult int `json:"premiumNetResult"`
}

// XPFlow itemizes the experience side, including event XP and the first-blood
// doubling.
type XPFlow struct {
	DailyFactor    int `json:"dailyFactor"` // 1 = normal, 2 = first win of the day
	OriginalXP     int `json:"originalXP"`
	OriginalFreeXP int `json:"originalFreeXP"`
	EventXP        int `json:"eventXP"`
	EventFreeXP    int `json:"eventFreeXP"`
	TotalXP        int `json:"totalXP"`
	TotalFreeXP    int `json:"totalFreeXP"`

	PremiumXP          int `json:"premiumXP"`
	PremiumFreeXP      int `json:"premiumFreeXP"`
	PremiumEventXP     int `json:"premiumEventXP"`
	PremiumEventFreeXP int `json:"premiumEventFreeXP"`
	TotalPremiumXP     int `json:"totalPremiumXP"`
	TotalPremiumFreeXP int `json:"totalPremiumFreeXP"`
}

// CrystalFlow itemizes the bond income.
type CrystalFlow struct {
	AchievementCrystal    int `json:"achievementCrystal"`
	SpecialVehicleCrystal int `json:"specialVehicleCrystal"`
	EventCrystal          int `json:"eventCrystal"`
	TotalCrystal          int `json:"totalCrystal"`
}

// Economics bundles all three resource flows.
type Economics struct {
	Credits   CreditFlow  `json:"credits"`
	XP        XPFlow      `json:"xp"`
	Crystal   CrystalFlow `json:"crystal"`
	IsPremium bool        `json:"isPremium"`
}

// TimeStats describes the timeline of the battle.
type TimeStats struct {
	Duration        int       `json:"duration"` // seconds
	DurationText    string    `json:"durationText"`
	LifeTime        int       `json:"lifeTime"`
	LifeTimeText    string    `json:"lifeTimeText"` // "-" when the player survived
	SurvivalPercent float64   `json:"survivalPercent"`
	StartedAt       time.Time `json:"startedAt"`
}

// VehicleStatus is the end-of-battle state of the recording player's tank.
type VehicleStatus struct {
	Tag             string  `json:"tag"`
	Nation          string  `json:"nation"`
	MaxHealth       int     `json:"maxHealth"`
	HealthRemaining int     `json:"healthRemaining"`
	HealthPercent   float64 `json:"healthPercent"`
}

// CombatStats are the per-player battle counters shared by the personal
// report and the team tables.
type CombatStats struct {
	Shots                 int     `json:"shots"`
	DirectHits            int     `json:"directHits"`
	Piercings             int     `json:"piercings"`
	ExplosionHits         int     `json:"explosionHits"`
	DamageDealt           int     `json:"damageDealt"`
	SniperDamage          int     `json:"sniperDamage"`
	HitsReceived          int     `json:"hitsReceived"`
	PiercingsReceived     int     `json:"piercingsReceived"`
	NoDamageHitsReceived  int     `json:"noDamageHitsReceived"`
	ExplosionHitsReceived int     `json:"explosionHitsReceived"`
	DamageBlocked         int     `json:"damageBlocked"`
	TeamDamage            int     `json:"teamDamage"`
	TeamKills             int     `json:"teamKills"`
	Spotted               int     `json:"spotted"`
	DamagedCount          int     `json:"damagedCount"`
	Kills                 int     `json:"kills"`
	AssistDamage          int     `json:"assistDamage"`
	CapturePoints         int     `json:"capturePoints"`
	DefensePoints         int     `json:"defensePoints"`
	DistanceKM            float64 `json:"distanceKm"`
	XP                    int     `json:"xp"`
	StunDamage            int     `json:"stunDamage"`
	StunCount             int     `json:"stunCount"`
}

// PlayerRow is one fully resolved line of a team result table. No catalog
// lookups happen while building it; tanks and medals come prefetched.
type PlayerRow struct {
	SessionID   SessionID `json:"sessionId"`
	AccountID   AccountID `json:"accountId"`
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"` // "name [CLAN]"
	ClanTag     string    `json:"clanTag"`
	Team        int       `json:"team"`
	IsOwner     bool      `json:"isOwner"`

	VehicleTag    string `json:"vehicleTag"`
	VehicleName   string `json:"vehicleName"`
	VehicleTier   int    `json:"vehicleTier"`
	VehicleType   string `json:"vehicleType"`
	VehicleNation string `json:"vehicleNation"`

	IsAlive   bool   `json:"isAlive"`
	DeathText string `json:"deathText"`

	Stats       CombatStats   `json:"stats"`
	Medals      []Achievement `json:"medals"`
	MedalsCount int           `json:"medalsCount"`
	MedalsTitle string        `json:"medalsTitle"` // comma-joined medal names
	HasMedals   bool          `json:"hasMedals"`
}

// TeamResult splits the roster into the recording player's team and the
// opposing team, each sorted by damage dealt descending.
type TeamResult struct {
	Allies  []PlayerRow `json:"allies"`
	Enemies []PlayerRow `json:"enemies"`
}

// BattleOutcome says how the battle ended from the recording player's
// perspective.
type BattleOutcome struct {
	Victory bool   `json:"victory"`
	Draw    bool   `json:"draw"`
	Text    string `json:"text"`
	Reason  string `json:"reason"`
}

// DeathStatus resolves the recording player's death reason and killer into
// display text.
type DeathStatus struct {
	Survived bool   `json:"survived"`
	Text     string `json:"text"`
	Killer   string `json:"killer"`
}

// MedalSections partitions resolved achievements by their catalog section.
type MedalSections struct {
	Battle []Achievement `json:"battle"` // battle and epic medals
	Other  []Achievement `json:"other"`
}

// PersonalSummary is the recording player's headline block.
type PersonalSummary struct {
	Owner       Owner         `json:"owner"`
	Vehicle     Tank          `json:"vehicle"`
	Stats       CombatStats   `json:"stats"`
	Death       DeathStatus   `json:"death"`
	Mastery     int           `json:"mastery"`
	MasteryText string        `json:"masteryText"`
	Medals      MedalSections `json:"medals"`
}

// DetailedReport is the in-depth personal view.
type DetailedReport struct {
	Stats     CombatStats   `json:"stats"`
	Economics Economics     `json:"economics"`
	Time      TimeStats     `json:"time"`
	Vehicle   VehicleStatus `json:"vehicle"`
}

// BattleInfo is the battle-level header of a report.
type BattleInfo struct {
	Map           string        `json:"map"`
	TypeLabel     string        `json:"typeLabel"`
	Outcome       BattleOutcome `json:"outcome"`
	StartedAt     time.Time     `json:"startedAt"`
	DurationText  string        `json:"durationText"`
	ClientVersion string        `json:"clientVersion"`
	Server        string        `json:"server"`
	Region        string        `json:"region"`
}

// BattleReport is the complete extraction result for one recording.
type BattleReport struct {
	Battle       BattleInfo      `json:"battle"`
	Personal     PersonalSummary `json:"personal"`
	Interactions Interactions    `json:"interactions"`
	Income       IncomeSummary   `json:"income"`
	Detailed     DetailedReport  `json:"detailed"`
	Teams        TeamResult      `json:"teams"`
}
