package service

import (
	"context"

	"github.com/samber/lo"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tanklog/mtreplay-service-go/pkg/model"
	achievementrepos "github.com/tanklog/mtreplay-service-go/pkg/repository/achievement"
	tankrepos "github.com/tanklog/mtreplay-service-go/pkg/repository/tank"
	utilsCache "github.com/tanklog/mtreplay-service-go/pkg/utils/cache"
	"github.com/tanklog/mtreplay-service-go/pkg/utils/cache/loadercache"
)

// DbTankCatalog serves tank lookups from the tank table.
type DbTankCatalog struct {
	pool *pgxpool.Pool
}

func NewDbTankCatalog(pool *pgxpool.Pool) *DbTankCatalog {
	return &DbTankCatalog{pool: pool}
}

// LookupByTags resolves all tags with one query. Tags without a catalog row
// get a persistent placeholder record so they show up for curation.
func (c *DbTankCatalog) LookupByTags(
	ctx context.Context, tags []string,
) (map[string]model.Tank, error) {
	ret, err := tankrepos.LoadByTags(ctx, c.pool, tags)
	if err != nil {
		return nil, err
	}
	for _, tag := range tags {
		if _, ok := ret[tag]; ok {
			continue
		}
		placeholder, err := tankrepos.EnsureUnknown(ctx, c.pool, tag)
		if err != nil {
			return nil, err
		}
		ret[tag] = *placeholder
	}
	return ret, nil
}

// DbAchievementCatalog serves achievement lookups from the achievement table.
type DbAchievementCatalog struct {
	pool *pgxpool.Pool
}

func NewDbAchievementCatalog(pool *pgxpool.Pool) *DbAchievementCatalog {
	return &DbAchievementCatalog{pool: pool}
}

func (c *DbAchievementCatalog) LookupByIDs(
	ctx context.Context, ids []int,
) ([]model.Achievement, error) {
	return achievementrepos.LoadActiveByIDs(ctx, c.pool, ids)
}

// CachedTankCatalog keeps resolved tank records in memory; misses are
// fetched with a single batched query.
type CachedTankCatalog struct {
	cache utilsCache.Cache[string, model.Tank]
}

func NewCachedTankCatalog(pool *pgxpool.Pool) *CachedTankCatalog {
	db := NewDbTankCatalog(pool)
	return &CachedTankCatalog{
		cache: loadercache.New(
			loadercache.WithBatchLoader(
				func(tags []string) (map[string]*model.Tank, error) {
					tanks, err := db.LookupByTags(context.Background(), tags)
					if err != nil {
						return nil, err
					}
					return lo.MapValues(tanks,
						func(t model.Tank, _ string) *model.Tank { return &t }), nil
				})),
	}
}

func (c *CachedTankCatalog) LookupByTags(
	ctx context.Context, tags []string,
) (map[string]model.Tank, error) {
	cached, err := c.cache.GetMany(ctx, tags)
	if err != nil {
		return nil, err
	}
	ret := make(map[string]model.Tank, len(cached))
	for tag, tank := range cached {
		ret[tag] = *tank
	}
	return ret, nil
}
