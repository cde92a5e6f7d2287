package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "0:00", FormatClock(0))
	assert.Equal(t, "0:07", FormatClock(7))
	assert.Equal(t, "6:31", FormatClock(391))
	assert.Equal(t, "12:05", FormatClock(725))
	assert.Equal(t, "0:00", FormatClock(-3))
}

func TestDeathText(t *testing.T) {
	assert.Equal(t, "Survived", DeathText(DeathAlive, ""))
	assert.Equal(t, "Destroyed by shot (Foo)", DeathText(DeathShot, "Foo"))
	assert.Equal(t, "Destroyed by ramming (Foo)", DeathText(DeathRam, "Foo"))
	assert.Equal(t, "Destroyed by fire (Foo)", DeathText(DeathFire, "Foo"))
	assert.Equal(t, "Drowned", DeathText(DeathDrowning, "Foo"))
	assert.Equal(t, "Destroyed", DeathText(DeathShot, ""))
	assert.Equal(t, "Destroyed (Foo)", DeathText(99, "Foo"))
}

func TestMasteryLabel(t *testing.T) {
	assert.Equal(t, "Master (beat 100% of players)", MasteryLabel(4))
	assert.Equal(t, "", MasteryLabel(0))
	assert.Equal(t, "", MasteryLabel(7))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Foo [CLAN]", DisplayName("Foo", "CLAN"))
	assert.Equal(t, "Foo", DisplayName("Foo", ""))
}
