package tank

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/tanklog/mtreplay-service-go/pkg/model"
	"github.com/tanklog/mtreplay-service-go/pkg/repository"
)

const selector = string(`select tag, name, tier, type, nation from tank`)

func Create(ctx context.Context, conn repository.Querier, t *model.Tank) error {
	_, err := conn.Exec(ctx, `
insert into tank (tag, name, tier, type, nation) values ($1,$2,$3,$4,$5)
on conflict (tag) do update set name=$2, tier=$3, type=$4, nation=$5`,
		t.Tag, t.Name, t.Tier, t.Type, t.Nation)
	return err
}

// LoadByTags fetches all requested tags in a single round-trip. Tags without
// a row are simply absent from the result map.
func LoadByTags(
	ctx context.Context, conn repository.Querier, tags []string,
) (map[string]model.Tank, error) {
	ret := make(map[string]model.Tank, len(tags))
	if len(tags) == 0 {
		return ret, nil
	}
	rows, err := conn.Query(ctx, selector+" where tag = any($1)", tags)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var item model.Tank
		if err := scan(&item, rows); err != nil {
			return nil, err
		}
		ret[item.Tag] = item
	}
	return ret, rows.Err()
}

func LoadByTag(ctx context.Context, conn repository.Querier, tag string) (*model.Tank, error) {
	row := conn.QueryRow(ctx, selector+" where tag=$1", tag)
	var t model.Tank
	if err := row.Scan(&t.Tag, &t.Name, &t.Tier, &t.Type, &t.Nation); err != nil {
		return nil, err
	}
	return &t, nil
}

// EnsureUnknown inserts the placeholder row for a tag that was referenced by
// a battle but is missing from the catalog, so it shows up for curation.
func EnsureUnknown(ctx context.Context, conn repository.Querier, tag string) (*model.Tank, error) {
	t := model.UnknownTank(tag)
	_, err := conn.Exec(ctx, `
insert into tank (tag, name, tier, type, nation) values ($1,$2,$3,$4,$5)
on conflict (tag) do nothing`,
		t.Tag, t.Name, t.Tier, t.Type, t.Nation)
	if err != nil {
		return nil, err
	}
	return LoadByTag(ctx, conn, tag)
}

func DeleteByTag(ctx context.Context, conn repository.Querier, tag string) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from tank where tag=$1", tag)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func scan(t *model.Tank, rows pgx.Rows) error {
	return rows.Scan(&t.Tag, &t.Name, &t.Tier, &t.Type, &t.Nation)
}
