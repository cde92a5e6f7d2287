//nolint:thelper,funlen // ok for tests
package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tanklog/mtreplay-service-go/pkg/model"
)

func summaryWith(gameplayID string, battleType, bonusType int) *Summary {
	return &Summary{
		GameplayID: gameplayID,
		BattleType: battleType,
		Common:     &model.Common{ArenaBonusType: bonusType},
		Personal:   &model.Personal{},
		Team:       1,
	}
}

func TestClassifierLabel(t *testing.T) {
	tests := []struct {
		name       string
		gameplayID string
		battleType int
		bonusType  int
		want       string
	}{
		{name: "gameplay id wins", gameplayID: "ctf", battleType: 17, want: "Standard battle"},
		{name: "grand battle", gameplayID: "ctf30x30", want: "Grand battle"},
		{name: "unknown gameplay id does not fall back", gameplayID: "weird_mode", battleType: 1, want: UnknownMode},
		{name: "battle type code", battleType: 17, want: "Ranked battle"},
		{name: "bonus type fallback", bonusType: 21, want: "Frontline"},
		{name: "proving ground high code", battleType: 31000, want: "Proving ground"},
		{name: "nothing matches", battleType: 999, bonusType: 998, want: UnknownMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(summaryWith(tt.gameplayID, tt.battleType, tt.bonusType))
			assert.Equal(t, tt.want, c.Label())
		})
	}
}

func TestClassifierPredicates(t *testing.T) {
	assert.True(t, NewClassifier(summaryWith("", 0, 1)).IsRandom())
	assert.True(t, NewClassifier(summaryWith("", 0, 19)).IsRandom())
	assert.False(t, NewClassifier(summaryWith("", 0, 17)).IsRandom())

	assert.True(t, NewClassifier(summaryWith("", 0, 17)).IsRanked())
	assert.True(t, NewClassifier(summaryWith("", 0, 22)).IsEpic())
	assert.True(t, NewClassifier(summaryWith("epic", 0, 0)).IsEpic())
	assert.True(t, NewClassifier(summaryWith("comp7", 0, 0)).IsOnslaught())
	assert.True(t, NewClassifier(summaryWith("", 0, 43)).IsOnslaught())
	assert.True(t, NewClassifier(summaryWith("", 0, 20)).IsTraining())
	assert.True(t, NewClassifier(summaryWith("battle_royale", 0, 0)).IsSteelHunter())
	assert.True(t, NewClassifier(summaryWith("", 0, 29)).IsSteelHunter())
	assert.False(t, NewClassifier(summaryWith("ctf", 0, 1)).IsSteelHunter())
}

func TestClassifierOutcome(t *testing.T) {
	tests := []struct {
		name         string
		winnerTeam   int
		finishReason int
		team         int
		wantText     string
		wantReason   string
	}{
		{name: "victory by destruction", winnerTeam: 1, finishReason: 1, team: 1, wantText: "Victory!", wantReason: "All enemy vehicles destroyed"},
		{name: "victory by capture", winnerTeam: 2, finishReason: 2, team: 2, wantText: "Victory!", wantReason: "Our team captured the base"},
		{name: "defeat by capture", winnerTeam: 2, finishReason: 2, team: 1, wantText: "Defeat", wantReason: "Enemy team captured the base"},
		{name: "defeat on time", winnerTeam: 2, finishReason: 3, team: 1, wantText: "Defeat", wantReason: "Time expired"},
		{name: "draw", winnerTeam: 0, finishReason: 3, team: 1, wantText: "Draw", wantReason: "Time expired"},
		{name: "unknown reason", winnerTeam: 1, finishReason: 42, team: 1, wantText: "Victory!", wantReason: "Battle finished"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := summaryWith("", 0, 0)
			s.Common.WinnerTeam = tt.winnerTeam
			s.Common.FinishReason = tt.finishReason
			s.Team = tt.team
			out := NewClassifier(s).Outcome()
			assert.Equal(t, tt.wantText, out.Text)
			assert.Equal(t, tt.wantReason, out.Reason)
			assert.Equal(t, tt.wantText == "Victory!", out.Victory)
			assert.Equal(t, tt.wantText == "Draw", out.Draw)
		})
	}
}

func TestClassifierDuration(t *testing.T) {
	s := summaryWith("", 0, 0)
	s.Common.Duration = 421
	assert.Equal(t, 421, NewClassifier(s).DurationSeconds())
}
