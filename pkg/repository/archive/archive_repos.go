package archive

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/tanklog/mtreplay-service-go/pkg/model"
	"github.com/tanklog/mtreplay-service-go/pkg/repository"
)

const selector = string(`
select id, file_name, magic, version, reason, payload, created_at
from unsupported_replay`)

// Create archives an unsupported container. A zero ID gets a fresh v7 uuid
// assigned; the stored entry is returned.
func Create(
	ctx context.Context, conn repository.Querier, entry *model.UnsupportedReplay,
) (*model.UnsupportedReplay, error) {
	if entry.ID.IsNil() {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, err
		}
		entry.ID = id
	}
	row := conn.QueryRow(ctx, `
insert into unsupported_replay (id, file_name, magic, version, reason, payload)
values ($1,$2,$3,$4,$5,$6)
returning created_at`,
		entry.ID, entry.FileName, int64(entry.Magic), int64(entry.Version),
		entry.Reason, entry.Payload)
	if err := row.Scan(&entry.CreatedAt); err != nil {
		return nil, err
	}
	return entry, nil
}

func LoadByID(
	ctx context.Context, conn repository.Querier, id uuid.UUID,
) (*model.UnsupportedReplay, error) {
	row := conn.QueryRow(ctx, selector+" where id=$1", id)
	var e model.UnsupportedReplay
	var magic, version int64
	err := row.Scan(&e.ID, &e.FileName, &magic, &version, &e.Reason, &e.Payload, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.Magic = uint32(magic)
	e.Version = uint32(version)
	return &e, nil
}

// LoadRecent lists the newest archive entries, capped by limit.
func LoadRecent(
	ctx context.Context, conn repository.Querier, limit int,
) ([]*model.UnsupportedReplay, error) {
	rows, err := conn.Query(ctx, selector+" order by created_at desc limit $1", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func DeleteByID(ctx context.Context, conn repository.Querier, id uuid.UUID) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from unsupported_replay where id=$1", id)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func collect(rows pgx.Rows) ([]*model.UnsupportedReplay, error) {
	ret := make([]*model.UnsupportedReplay, 0)
	for rows.Next() {
		var e model.UnsupportedReplay
		var magic, version int64
		err := rows.Scan(&e.ID, &e.FileName, &magic, &version, &e.Reason, &e.Payload, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		e.Magic = uint32(magic)
		e.Version = uint32(version)
		ret = append(ret, &e)
	}
	return ret, rows.Err()
}
