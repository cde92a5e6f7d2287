//nolint:funlen,errcheck //ok for this test code
package service

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanklog/mtreplay-service-go/pkg/replay"
	achievementrepos "github.com/tanklog/mtreplay-service-go/pkg/repository/achievement"
	archiverepos "github.com/tanklog/mtreplay-service-go/pkg/repository/archive"
	tankrepos "github.com/tanklog/mtreplay-service-go/pkg/repository/tank"
	"github.com/tanklog/mtreplay-service-go/testsupport/basedata"
	"github.com/tanklog/mtreplay-service-go/testsupport/testdb"
)

func buildContainer(t *testing.T, magic, version uint32) []byte {
	t.Helper()
	raw := basedata.SampleRawDocument()
	meta, err := json.Marshal(raw.Metadata)
	require.NoError(t, err)
	sections, err := json.Marshal(raw.Sections)
	require.NoError(t, err)

	buf := make([]byte, 0, 12+8+len(meta)+len(sections))
	buf = binary.LittleEndian.AppendUint32(buf, magic)
	buf = binary.LittleEndian.AppendUint32(buf, version)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(meta)))
	buf = append(buf, meta...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(sections)))
	buf = append(buf, sections...)
	return buf
}

func seedCatalogs(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()
	for _, tank := range basedata.SampleTanks() {
		require.NoError(t, tankrepos.Create(ctx, pool, &tank))
	}
	for _, medal := range basedata.SampleAchievements() {
		require.NoError(t, achievementrepos.Create(ctx, pool, &medal))
	}
}

func TestExtract(t *testing.T) {
	pool := testdb.InitTestDb()
	seedCatalogs(t, pool)
	srv := NewExtractionService(pool)

	data := buildContainer(t, replay.Magic, replay.SupportedVersion)
	report, err := srv.Extract(context.Background(), "sample.mtreplay", data)
	require.NoError(t, err)

	assert.Equal(t, "Prokhorovka", report.Battle.Map)
	assert.True(t, report.Battle.Outcome.Victory)
	assert.Equal(t, "TestPlayer", report.Personal.Owner.DurableName)
	assert.Equal(t, "IS", report.Personal.Vehicle.Name)
	assert.Len(t, report.Teams.Allies, 1)
	assert.Len(t, report.Teams.Enemies, 2)
}

func TestExtractCreatesPlaceholderTanks(t *testing.T) {
	pool := testdb.InitTestDb()
	srv := NewExtractionService(pool)

	data := buildContainer(t, replay.Magic, replay.SupportedVersion)
	report, err := srv.Extract(context.Background(), "sample.mtreplay", data)
	require.NoError(t, err)
	assert.Equal(t, "Unknown tank (R01_IS)", report.Personal.Vehicle.Name)

	// the placeholder row is persisted for curation
	placeholder, err := tankrepos.LoadByTag(context.Background(), pool, "R01_IS")
	require.NoError(t, err)
	assert.Equal(t, 1, placeholder.Tier)
}

func TestExtractArchivesUnsupportedVersion(t *testing.T) {
	pool := testdb.InitTestDb()
	srv := NewExtractionService(pool, WithArchiveUnsupported(true))

	data := buildContainer(t, replay.Magic, 3)
	_, err := srv.Extract(context.Background(), "future.mtreplay", data)
	var formatErr *replay.FormatError
	require.ErrorAs(t, err, &formatErr)

	entries, err := archiverepos.LoadRecent(context.Background(), pool, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "future.mtreplay", entries[0].FileName)
	assert.Equal(t, uint32(3), entries[0].Version)
	assert.Equal(t, data, entries[0].Payload)
}

func TestExtractNoArchiveByDefault(t *testing.T) {
	pool := testdb.InitTestDb()
	srv := NewExtractionService(pool)

	data := buildContainer(t, 0xdeadbeef, replay.SupportedVersion)
	_, err := srv.Extract(context.Background(), "bad.mtreplay", data)
	var formatErr *replay.FormatError
	require.ErrorAs(t, err, &formatErr)

	entries, err := archiverepos.LoadRecent(context.Background(), pool, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 0)
}
