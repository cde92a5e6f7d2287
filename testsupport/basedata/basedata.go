package basedata

import (
	"github.com/tanklog/mtreplay-service-go/pkg/model"
	"github.com/tanklog/mtreplay-service-go/pkg/replay"
)

// Shared battle fixture used across package tests: a three-player battle won
// by team 1, recorded by account 12345 driving session 67890. The numbers are
// chosen so the derived views have non-trivial expected values.

func SampleMetadata() map[string]any {
	return map[string]any{
		"playerID":             int64(12345),
		"playerName":           "TestPlayer",
		"playerVehicle":        "ussr-R01_IS",
		"gameplayID":           "ctf",
		"battleType":           int64(1),
		"dateTime":             "15.06.2024 18:30:45",
		"mapName":              "05_prohorovka",
		"mapDisplayName":       "Prokhorovka",
		"serverName":           "EU1",
		"regionCode":           "EU",
		"clientVersionFromExe": "1.24.1.0",
	}
}

//nolint:funlen // fixture
func SamplePersonal() map[string]any {
	return map[string]any{
		"accountDBID":             int64(12345),
		"team":                    int64(1),
		"shots":                   int64(14),
		"directHits":              int64(11),
		"piercings":               int64(9),
		"explosionHits":           int64(0),
		"damageDealt":             int64(1850),
		"sniperDamageDealt":       int64(420),
		"directHitsReceived":      int64(7),
		"piercingsReceived":       int64(4),
		"damageBlockedByArmor":    int64(900),
		"spotted":                 int64(2),
		"damaged":                 int64(3),
		"kills":                   int64(2),
		"capturePoints":           int64(10),
		"droppedCapturePoints":    int64(20),
		"mileage":                 int64(1730),
		"stunNum":                 int64(0),
		"lifeTime":                int64(391),
		"maxHealth":               int64(1500),
		"health":                  int64(320),
		"deathReason":             int64(-1),
		"killerID":                int64(0),
		"markOfMastery":           int64(3),
		"damageAssistedRadio":     int64(310),
		"damageAssistedTrack":     int64(120),
		"xp":                      int64(1200),
		"originalXP":              int64(1000),
		"originalFreeXP":          int64(50),
		"credits":                 int64(25000),
		"originalCredits":         int64(21000),
		"achievementCredits":      int64(1000),
		"boosterCredits":          int64(750),
		"boosterCreditsFactor100": int64(50),
		"repair":                  int64(3200),
		"autoRepairCost":          int64(3200),
		"autoLoadCost":            []any{int64(4000), int64(0)},
		"autoEquipCost":           []any{int64(1500), int64(0), int64(0)},
		"premiumCreditsFactor100": int64(150),
		"premiumXPFactor100":      int64(150),
		"dailyXPFactor10":         int64(20),
		"crystal":                 int64(15),
		"originalCrystal":         int64(10),
		"achievements":            []any{int64(521), int64(39)},
		"details": map[string]any{
			"(67891, 0)": map[string]any{
				"spotted":              int64(1),
				"damageDealt":          int64(900),
				"piercings":            int64(5),
				"crits":                int64(11), // 0b1011
				"targetKills":          int64(1),
				"damageAssistedRadio":  int64(310),
				"rickochetsReceived":   int64(2),
				"damageBlockedByArmor": int64(400),
			},
			"(67892, 0)": map[string]any{
				"spotted":     int64(1),
				"damageDealt": int64(950),
				"piercings":   int64(4),
				"crits":       int64(1),
				"targetKills": int64(1),
			},
		},
	}
}

//nolint:funlen // fixture
func SampleRawDocument() *replay.RawDocument {
	result := map[string]any{
		"common": map[string]any{
			"winnerTeam":      int64(1),
			"finishReason":    int64(1),
			"duration":        int64(420),
			"bonusType":       int64(1),
			"arenaCreateTime": int64(1718472645),
		},
		"personal": map[string]any{
			"17153": SamplePersonal(),
		},
		"players": map[string]any{
			"12345": map[string]any{
				"name":       "Anon_4711",
				"realName":   "TestPlayer",
				"clanAbbrev": "CLAN",
				"team":       int64(1),
			},
			"12346": map[string]any{
				"name":     "Anon_4712",
				"realName": "EnemyPlayer",
				"team":     int64(2),
			},
			"12347": map[string]any{
				"name":     "Anon_4713",
				"realName": "SecondEnemy",
				"team":     int64(2),
			},
		},
		"vehicles": map[string]any{
			"67890": []any{map[string]any{
				"accountDBID":         int64(12345),
				"team":                int64(1),
				"name":                "TestPlayer",
				"fakeName":            "Anon_4711",
				"shots":               int64(14),
				"directHits":          int64(11),
				"piercings":           int64(9),
				"damageDealt":         int64(1850),
				"kills":               int64(2),
				"xp":                  int64(1200),
				"mileage":             int64(1730),
				"damageAssistedRadio": int64(310),
				"deathReason":         int64(-1),
				"achievements":        []any{int64(521), int64(39)},
			}},
			"67891": []any{map[string]any{
				"accountDBID":  int64(12346),
				"team":         int64(2),
				"name":         "EnemyPlayer",
				"fakeName":     "Anon_4712",
				"damageDealt":  int64(600),
				"kills":        int64(1),
				"deathReason":  int64(0),
				"killerID":     int64(67890),
				"achievements": []any{int64(413)},
			}},
			"67892": []any{map[string]any{
				"accountDBID": int64(12347),
				"team":        int64(2),
				"name":        "SecondEnemy",
				"fakeName":    "Anon_4713",
				"damageDealt": int64(1100),
				"deathReason": int64(2),
				"killerID":    int64(67890),
			}},
		},
	}
	avatars := map[string]any{
		"67890": map[string]any{
			"vehicleType": "ussr:R01_IS",
			"team":        int64(1),
			"name":        "TestPlayer",
			"fakeName":    "Anon_4711",
			"clanAbbrev":  "CLAN",
			"isAlive":     true,
		},
		"67891": map[string]any{
			"vehicleType": "germany:G04_PzVI_Tiger_I",
			"team":        int64(2),
			"name":        "EnemyPlayer",
			"fakeName":    "Anon_4712",
		},
		"67892": map[string]any{
			"vehicleType": "usa:A01_T1_Cunningham",
			"team":        int64(2),
			"name":        "SecondEnemy",
			"fakeName":    "Anon_4713",
		},
	}
	return &replay.RawDocument{
		Metadata: SampleMetadata(),
		Sections: []any{
			[]any{result, avatars},
			map[string]any{"dup": "extendedVehicleInfo"},
			[]any{"dup frags"},
		},
	}
}

func SampleDocument() (*replay.Document, error) {
	return replay.NewDocument(SampleRawDocument())
}

func SampleTanks() map[string]model.Tank {
	return map[string]model.Tank{
		"R01_IS": {
			Tag: "R01_IS", Name: "IS", Tier: 7, Type: "heavyTank", Nation: "ussr",
		},
		"G04_PzVI_Tiger_I": {
			Tag: "G04_PzVI_Tiger_I", Name: "Tiger I", Tier: 7, Type: "heavyTank", Nation: "germany",
		},
		"A01_T1_Cunningham": {
			Tag: "A01_T1_Cunningham", Name: "T1 Cunningham", Tier: 1, Type: "lightTank", Nation: "usa",
		},
	}
}

func SampleAchievements() []model.Achievement {
	return []model.Achievement{
		{ID: 39, Name: "Top Gun", Section: "battle", Order: 1, IsActive: true},
		{ID: 413, Name: "Sniper", Section: "battle", Order: 2, IsActive: true},
		{ID: 521, Name: "Kamikaze", Section: "epic", Order: 3, IsActive: true},
	}
}
