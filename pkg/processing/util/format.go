package util

import "fmt"

// FormatClock renders a duration in seconds as "m:ss".
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Death reason codes written by the game client.
const (
	DeathAlive    = -1
	DeathShot     = 0
	DeathRam      = 1
	DeathFire     = 2
	DeathDrowning = 3
)

// DeathText renders a death reason and the killer's name into display text.
func DeathText(reason int, killer string) string {
	if reason == DeathAlive {
		return "Survived"
	}
	switch reason {
	case DeathShot:
		if killer != "" {
			return fmt.Sprintf("Destroyed by shot (%s)", killer)
		}
	case DeathRam:
		if killer != "" {
			return fmt.Sprintf("Destroyed by ramming (%s)", killer)
		}
	case DeathFire:
		if killer != "" {
			return fmt.Sprintf("Destroyed by fire (%s)", killer)
		}
	case DeathDrowning:
		return "Drowned"
	}
	if killer != "" {
		return fmt.Sprintf("Destroyed (%s)", killer)
	}
	return "Destroyed"
}

var masteryLabels = map[int]string{
	4: "Master (beat 100% of players)",
	3: "1st class (beat 95% of players)",
	2: "2nd class (beat 80% of players)",
	1: "3rd class (beat 50% of players)",
}

// MasteryLabel renders the mark-of-mastery code; unknown codes yield "".
func MasteryLabel(mark int) string {
	return masteryLabels[mark]
}

// DisplayName joins a nickname with its clan tag for roster tables.
func DisplayName(name, clanTag string) string {
	if clanTag != "" {
		return fmt.Sprintf("%s [%s]", name, clanTag)
	}
	return name
}
