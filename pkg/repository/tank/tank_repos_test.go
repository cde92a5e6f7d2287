//nolint:dupl,funlen,errcheck //ok for this test code
package tank

import (
	"context"
	"log"
	"reflect"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"gotest.tools/v3/assert"

	"github.com/tanklog/mtreplay-service-go/pkg/model"
	"github.com/tanklog/mtreplay-service-go/testsupport/testdb"
)

var sampleTank = &model.Tank{
	Tag:    "R01_IS",
	Name:   "IS",
	Tier:   7,
	Type:   "heavyTank",
	Nation: "ussr",
}

func createSampleEntry(db *pgxpool.Pool) *model.Tank {
	ctx := context.Background()
	err := pgx.BeginFunc(context.Background(), db, func(tx pgx.Tx) error {
		return Create(ctx, tx, sampleTank)
	})
	if err != nil {
		log.Fatalf("createSampleEntry: %v\n", err)
	}

	return sampleTank
}

func TestCreate(t *testing.T) {
	pool := testdb.InitTestDb()
	type args struct {
		tank *model.Tank
	}
	tests := []struct {
		name    string
		args    args
		wantErr bool
	}{
		{
			name: "new entry",
			args: args{tank: &model.Tank{
				Tag: "G04_PzVI_Tiger_I", Name: "Tiger I", Tier: 7,
				Type: "heavyTank", Nation: "germany",
			}},
		},
		{
			// upsert: creating the same tag again updates in place
			name: "existing entry",
			args: args{tank: &model.Tank{
				Tag: "R01_IS", Name: "IS renamed", Tier: 7,
				Type: "heavyTank", Nation: "ussr",
			}},
		},
	}
	createSampleEntry(pool)
	for _, tt := range tests {
		ctx := context.Background()
		t.Run(tt.name, func(t *testing.T) {
			err := Create(ctx, pool, tt.args.tank)
			if (err != nil) != tt.wantErr {
				t.Errorf("Create error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadByTag(t *testing.T) {
	pool := testdb.InitTestDb()
	sample := createSampleEntry(pool)
	type args struct {
		tag string
	}
	tests := []struct {
		name    string
		args    args
		want    *model.Tank
		wantErr bool
	}{
		{
			name: "existing entry",
			args: args{tag: "R01_IS"},
			want: sample,
		},
		{
			name:    "unknown entry",
			args:    args{tag: "A01_T1_Cunningham"},
			wantErr: true,
			want:    nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			pool.AcquireFunc(ctx, func(c *pgxpool.Conn) error {
				got, err := LoadByTag(ctx, c.Conn(), tt.args.tag)
				if (err != nil) != tt.wantErr {
					t.Errorf("LoadByTag() error = %v, wantErr %v", err, tt.wantErr)
					return err
				}
				if !reflect.DeepEqual(got, tt.want) {
					t.Errorf("LoadByTag() = %v, want %v", got, tt.want)
				}
				return nil
			})
		})
	}
}

func TestLoadByTags(t *testing.T) {
	pool := testdb.InitTestDb()
	sample := createSampleEntry(pool)
	ctx := context.Background()

	got, err := LoadByTags(ctx, pool, []string{"R01_IS", "A01_T1_Cunningham"})
	assert.NilError(t, err)
	assert.Equal(t, len(got), 1)
	assert.DeepEqual(t, got["R01_IS"], *sample)

	// empty input must not hit the database
	got, err = LoadByTags(ctx, pool, []string{})
	assert.NilError(t, err)
	assert.Equal(t, len(got), 0)
}

func TestEnsureUnknown(t *testing.T) {
	pool := testdb.InitTestDb()
	sample := createSampleEntry(pool)
	ctx := context.Background()

	// missing tag gets the placeholder row
	got, err := EnsureUnknown(ctx, pool, "Ch99_Mystery")
	assert.NilError(t, err)
	assert.DeepEqual(t, *got, model.UnknownTank("Ch99_Mystery"))

	// existing rows are left untouched
	got, err = EnsureUnknown(ctx, pool, sample.Tag)
	assert.NilError(t, err)
	assert.DeepEqual(t, *got, *sample)
}

func TestDeleteByTag(t *testing.T) {
	db := testdb.InitTestDb()
	sample := createSampleEntry(db)

	num, err := DeleteByTag(context.Background(), db, sample.Tag)
	assert.NilError(t, err)
	assert.Equal(t, num, 1)

	num, err = DeleteByTag(context.Background(), db, sample.Tag)
	assert.NilError(t, err)
	assert.Equal(t, num, 0)
}
