//nolint:thelper,funlen // ok for tests
package processing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanklog/mtreplay-service-go/pkg/model"
	"github.com/tanklog/mtreplay-service-go/pkg/replay"
	"github.com/tanklog/mtreplay-service-go/testsupport/basedata"
)

type countingTankCatalog struct {
	calls int
	tags  []string
	err   error
}

func (c *countingTankCatalog) LookupByTags(
	_ context.Context, tags []string,
) (map[string]model.Tank, error) {
	c.calls++
	c.tags = tags
	if c.err != nil {
		return nil, c.err
	}
	return basedata.SampleTanks(), nil
}

type countingAchievementCatalog struct {
	calls int
	ids   [][]int
	err   error
}

func (c *countingAchievementCatalog) LookupByIDs(
	_ context.Context, ids []int,
) ([]model.Achievement, error) {
	c.calls++
	c.ids = append(c.ids, ids)
	if c.err != nil {
		return nil, c.err
	}
	var out []model.Achievement
	for _, a := range basedata.SampleAchievements() {
		for _, id := range ids {
			if a.ID == id {
				out = append(out, a)
			}
		}
	}
	return out, nil
}

func TestProcessorProcess(t *testing.T) {
	doc, err := basedata.SampleDocument()
	require.NoError(t, err)

	tanks := &countingTankCatalog{}
	medals := &countingAchievementCatalog{}
	report, err := NewProcessor(tanks, medals).Process(context.Background(), doc)
	require.NoError(t, err)

	// one tank round-trip, two achievement round-trips, regardless of roster
	assert.Equal(t, 1, tanks.calls)
	assert.Equal(t, []string{"A01_T1_Cunningham", "G04_PzVI_Tiger_I", "R01_IS"}, tanks.tags)
	require.Equal(t, 2, medals.calls)
	assert.Equal(t, []int{521, 39}, medals.ids[0])      // recording player's own list
	assert.Equal(t, []int{39, 413, 521}, medals.ids[1]) // roster union

	assert.Equal(t, "Prokhorovka", report.Battle.Map)
	assert.Equal(t, "Standard battle", report.Battle.TypeLabel)
	assert.True(t, report.Battle.Outcome.Victory)
	assert.Equal(t, "7:00", report.Battle.DurationText)

	assert.Equal(t, "IS", report.Personal.Vehicle.Name)
	assert.Len(t, report.Personal.Medals.Battle, 2)
	assert.Len(t, report.Interactions.Rows, 2)
	assert.True(t, report.Income.IsFirstWin)
	assert.Len(t, report.Teams.Allies, 1)
	assert.Len(t, report.Teams.Enemies, 2)
}

func TestProcessorDegradesOnCatalogFailure(t *testing.T) {
	doc, err := basedata.SampleDocument()
	require.NoError(t, err)

	tanks := &countingTankCatalog{err: errors.New("catalog down")}
	medals := &countingAchievementCatalog{err: errors.New("catalog down")}
	report, err := NewProcessor(tanks, medals).Process(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, "Unknown tank (R01_IS)", report.Personal.Vehicle.Name)
	assert.Empty(t, report.Personal.Medals.Battle)
	assert.Empty(t, report.Teams.Allies[0].Medals)
}

func TestProcessorStructuralErrorAborts(t *testing.T) {
	raw := basedata.SampleRawDocument()
	result := raw.Sections[0].([]any)[0].(map[string]any)
	result["vehicles"].(map[string]any)["67890"] = []any{}
	doc, err := replay.NewDocument(raw)
	require.NoError(t, err)

	_, err = NewProcessor(&countingTankCatalog{}, &countingAchievementCatalog{}).
		Process(context.Background(), doc)
	var structErr *replay.StructuralError
	require.ErrorAs(t, err, &structErr)
}
