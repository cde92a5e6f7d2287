//nolint:funlen,errcheck //ok for this test code
package archive

import (
	"context"
	"log"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"gotest.tools/v3/assert"

	"github.com/tanklog/mtreplay-service-go/pkg/model"
	"github.com/tanklog/mtreplay-service-go/testsupport/testdb"
)

func createSampleEntry(db *pgxpool.Pool) *model.UnsupportedReplay {
	entry := &model.UnsupportedReplay{
		FileName: "broken.mtreplay",
		Magic:    0x11343212,
		Version:  3,
		Reason:   "unsupported version 3",
		Payload:  []byte{0x12, 0x32, 0x34, 0x11, 0x03, 0x00, 0x00, 0x00},
	}
	ctx := context.Background()
	err := pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		_, err := Create(ctx, tx, entry)
		return err
	})
	if err != nil {
		log.Fatalf("createSampleEntry: %v\n", err)
	}

	return entry
}

func TestCreate(t *testing.T) {
	pool := testdb.InitTestDb()
	ctx := context.Background()

	entry := &model.UnsupportedReplay{
		FileName: "other.mtreplay",
		Magic:    0xdeadbeef,
		Version:  1,
		Reason:   "bad magic",
		Payload:  []byte{0xef, 0xbe, 0xad, 0xde},
	}
	got, err := Create(ctx, pool, entry)
	assert.NilError(t, err)
	// id and created_at get assigned on insert
	assert.Assert(t, !got.ID.IsNil())
	assert.Assert(t, !got.CreatedAt.IsZero())
}

func TestLoadByID(t *testing.T) {
	pool := testdb.InitTestDb()
	sample := createSampleEntry(pool)
	ctx := context.Background()

	got, err := LoadByID(ctx, pool, sample.ID)
	assert.NilError(t, err)
	assert.Equal(t, got.FileName, sample.FileName)
	assert.Equal(t, got.Magic, sample.Magic)
	assert.Equal(t, got.Version, sample.Version)
	assert.Equal(t, got.Reason, sample.Reason)
	assert.DeepEqual(t, got.Payload, sample.Payload)
}

func TestLoadRecent(t *testing.T) {
	pool := testdb.InitTestDb()
	sample := createSampleEntry(pool)
	ctx := context.Background()

	newer := &model.UnsupportedReplay{
		FileName: "newer.mtreplay",
		Magic:    0x11343212,
		Version:  4,
		Reason:   "unsupported version 4",
		Payload:  []byte{0x01},
	}
	_, err := Create(ctx, pool, newer)
	assert.NilError(t, err)

	got, err := LoadRecent(ctx, pool, 10)
	assert.NilError(t, err)
	assert.Equal(t, len(got), 2)
	ids := []string{got[0].ID.String(), got[1].ID.String()}
	assert.Assert(t, ids[0] == sample.ID.String() || ids[1] == sample.ID.String())

	got, err = LoadRecent(ctx, pool, 1)
	assert.NilError(t, err)
	assert.Equal(t, len(got), 1)
}

func TestDeleteByID(t *testing.T) {
	db := testdb.InitTestDb()
	sample := createSampleEntry(db)

	num, err := DeleteByID(context.Background(), db, sample.ID)
	assert.NilError(t, err)
	assert.Equal(t, num, 1)

	num, err = DeleteByID(context.Background(), db, sample.ID)
	assert.NilError(t, err)
	assert.Equal(t, num, 0)
}
