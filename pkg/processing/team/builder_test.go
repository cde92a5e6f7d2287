//nolint:thelper,funlen // ok for tests
package team

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanklog/mtreplay-service-go/pkg/model"
	"github.com/tanklog/mtreplay-service-go/pkg/replay"
	"github.com/tanklog/mtreplay-service-go/testsupport/basedata"
)

func sampleDoc(t *testing.T) *replay.Document {
	t.Helper()
	doc, err := basedata.SampleDocument()
	require.NoError(t, err)
	return doc
}

func medalsByID() map[int]model.Achievement {
	return lo.KeyBy(basedata.SampleAchievements(),
		func(a model.Achievement) int { return a.ID })
}

func TestCollectVehicleTags(t *testing.T) {
	got := NewBuilder().CollectVehicleTags(sampleDoc(t))
	// distinct and sorted; the metadata tag duplicates the owner's avatar tag
	assert.Equal(t, []string{"A01_T1_Cunningham", "G04_PzVI_Tiger_I", "R01_IS"}, got)
}

func TestCollectAchievementIDs(t *testing.T) {
	got, err := NewBuilder().CollectAchievementIDs(sampleDoc(t))
	require.NoError(t, err)
	assert.Equal(t, []int{39, 413, 521}, got)
}

func TestBuild(t *testing.T) {
	doc := sampleDoc(t)
	got, err := NewBuilder().Build(doc, basedata.SampleTanks(), medalsByID())
	require.NoError(t, err)

	require.Len(t, got.Allies, 1)
	require.Len(t, got.Enemies, 2)

	owner := got.Allies[0]
	assert.True(t, owner.IsOwner)
	assert.Equal(t, "TestPlayer", owner.Name)
	assert.Equal(t, "TestPlayer [CLAN]", owner.DisplayName)
	assert.Equal(t, "IS", owner.VehicleName)
	assert.Equal(t, 7, owner.VehicleTier)
	assert.True(t, owner.IsAlive)
	assert.Equal(t, "Survived", owner.DeathText)
	assert.Equal(t, 1850, owner.Stats.DamageDealt)
	assert.Equal(t, 310, owner.Stats.AssistDamage)
	assert.InDelta(t, 1.73, owner.Stats.DistanceKM, 0.001)
	// medals resolved from the prefetched map, sorted by catalog order
	require.Len(t, owner.Medals, 2)
	assert.Equal(t, "Top Gun", owner.Medals[0].Name)
	assert.Equal(t, "Kamikaze", owner.Medals[1].Name)
	assert.Equal(t, 2, owner.MedalsCount)
	assert.True(t, owner.HasMedals)
	assert.Equal(t, "Top Gun, Kamikaze", owner.MedalsTitle)

	// enemies sorted by damage descending
	assert.Equal(t, model.SessionID("67892"), got.Enemies[0].SessionID)
	assert.Equal(t, model.SessionID("67891"), got.Enemies[1].SessionID)

	shot := got.Enemies[1]
	assert.False(t, shot.IsAlive)
	assert.Equal(t, "Destroyed by shot (TestPlayer)", shot.DeathText)

	burned := got.Enemies[0]
	assert.Equal(t, "Destroyed by fire (TestPlayer)", burned.DeathText)
}

func TestBuildSkipsAvatarsWithoutVehicleType(t *testing.T) {
	raw := basedata.SampleRawDocument()
	avatars := raw.Sections[0].([]any)[1].(map[string]any)
	avatars["99999"] = map[string]any{"team": int64(2), "name": "Observer"}
	doc, err := replay.NewDocument(raw)
	require.NoError(t, err)

	got, err := NewBuilder().Build(doc, basedata.SampleTanks(), medalsByID())
	require.NoError(t, err)
	assert.Len(t, got.Allies, 1)
	assert.Len(t, got.Enemies, 2)
}

func TestBuildUnknownTankPlaceholder(t *testing.T) {
	doc := sampleDoc(t)
	got, err := NewBuilder().Build(doc, map[string]model.Tank{}, map[int]model.Achievement{})
	require.NoError(t, err)

	owner := got.Allies[0]
	assert.Equal(t, "Unknown tank (R01_IS)", owner.VehicleName)
	assert.Equal(t, 1, owner.VehicleTier)
	assert.Equal(t, "unknown", owner.VehicleType)
	assert.Empty(t, owner.Medals)
}

func TestBuildAvatarWithoutVehicleStats(t *testing.T) {
	raw := basedata.SampleRawDocument()
	result := raw.Sections[0].([]any)[0].(map[string]any)
	delete(result["vehicles"].(map[string]any), "67892")
	doc, err := replay.NewDocument(raw)
	require.NoError(t, err)

	got, err := NewBuilder().Build(doc, basedata.SampleTanks(), medalsByID())
	require.NoError(t, err)
	require.Len(t, got.Enemies, 2)
	// the degraded row keeps identity but has zero counters
	degraded := got.Enemies[1]
	assert.Equal(t, model.SessionID("67892"), degraded.SessionID)
	assert.Zero(t, degraded.Stats.DamageDealt)
}

func TestBuildPropagatesStructuralError(t *testing.T) {
	raw := basedata.SampleRawDocument()
	result := raw.Sections[0].([]any)[0].(map[string]any)
	result["vehicles"].(map[string]any)["67890"] = []any{}
	doc, err := replay.NewDocument(raw)
	require.NoError(t, err)

	b := NewBuilder()
	_, err = b.Build(doc, basedata.SampleTanks(), medalsByID())
	var structErr *replay.StructuralError
	require.ErrorAs(t, err, &structErr)

	_, err = b.CollectAchievementIDs(doc)
	require.ErrorAs(t, err, &structErr)
}
