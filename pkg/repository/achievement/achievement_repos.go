package achievement

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/tanklog/mtreplay-service-go/pkg/model"
	"github.com/tanklog/mtreplay-service-go/pkg/repository"
)

const selector = string(
	`select achievement_id, name, section, sort_order, is_active from achievement`)

func Create(ctx context.Context, conn repository.Querier, a *model.Achievement) error {
	_, err := conn.Exec(ctx, `
insert into achievement (achievement_id, name, section, sort_order, is_active)
values ($1,$2,$3,$4,$5)
on conflict (achievement_id) do update set name=$2, section=$3, sort_order=$4, is_active=$5`,
		a.ID, a.Name, a.Section, a.Order, a.IsActive)
	return err
}

// LoadActiveByIDs fetches all requested ids in a single round-trip, filtered
// to active records, ordered by the catalog sort order.
func LoadActiveByIDs(
	ctx context.Context, conn repository.Querier, ids []int,
) ([]model.Achievement, error) {
	ret := make([]model.Achievement, 0, len(ids))
	if len(ids) == 0 {
		return ret, nil
	}
	rows, err := conn.Query(ctx,
		selector+" where achievement_id = any($1) and is_active order by sort_order, name",
		ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var item model.Achievement
		if err := scan(&item, rows); err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}

func LoadByID(ctx context.Context, conn repository.Querier, id int) (*model.Achievement, error) {
	row := conn.QueryRow(ctx, selector+" where achievement_id=$1", id)
	var a model.Achievement
	if err := row.Scan(&a.ID, &a.Name, &a.Section, &a.Order, &a.IsActive); err != nil {
		return nil, err
	}
	return &a, nil
}

func DeleteByID(ctx context.Context, conn repository.Querier, id int) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from achievement where achievement_id=$1", id)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func scan(a *model.Achievement, rows pgx.Rows) error {
	return rows.Scan(&a.ID, &a.Name, &a.Section, &a.Order, &a.IsActive)
}
