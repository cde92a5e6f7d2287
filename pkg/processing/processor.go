// Package processing turns a cached replay document into the detached report
// objects the application hands out.
package processing

import (
	"context"

	"github.com/samber/lo"

	"github.com/tanklog/mtreplay-service-go/log"
	"github.com/tanklog/mtreplay-service-go/pkg/model"
	"github.com/tanklog/mtreplay-service-go/pkg/processing/battle"
	"github.com/tanklog/mtreplay-service-go/pkg/processing/stats"
	"github.com/tanklog/mtreplay-service-go/pkg/processing/team"
	"github.com/tanklog/mtreplay-service-go/pkg/replay"
)

// TankCatalog resolves vehicle tags to catalog records in one batched call.
// Returned maps may be partial; missing tags degrade to placeholders.
type TankCatalog interface {
	LookupByTags(ctx context.Context, tags []string) (map[string]model.Tank, error)
}

// AchievementCatalog resolves achievement ids, filtered to active records.
type AchievementCatalog interface {
	LookupByIDs(ctx context.Context, ids []int) ([]model.Achievement, error)
}

// Processor drives the full extraction for one document: exactly one tank
// fetch and two achievement fetches per battle, regardless of roster size,
// then the pure transformations.
type Processor struct {
	tanks        TankCatalog
	achievements AchievementCatalog
	stats        *stats.Transformer
	team         *team.Builder
	l            *log.Logger
}

type Option func(*Processor)

func WithLogger(l *log.Logger) Option {
	return func(p *Processor) { p.l = l }
}

func NewProcessor(tanks TankCatalog, achievements AchievementCatalog, opts ...Option) *Processor {
	p := &Processor{
		tanks:        tanks,
		achievements: achievements,
		stats:        stats.NewTransformer(),
		team:         team.NewBuilder(),
		l:            log.Default().Named("processing"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process assembles the complete battle report. Structural problems in the
// document abort with an error; catalog failures only degrade the affected
// fields.
func (p *Processor) Process(ctx context.Context, doc *replay.Document) (*model.BattleReport, error) {
	summary, err := battle.NewSummary(doc)
	if err != nil {
		return nil, err
	}
	classifier := battle.NewClassifier(summary)

	tanks := p.fetchTanks(ctx, doc)
	ownMedals := p.fetchMedals(ctx, doc.AchievementIDs())

	rosterIDs, err := p.team.CollectAchievementIDs(doc)
	if err != nil {
		return nil, err
	}
	rosterMedals := lo.KeyBy(p.fetchMedals(ctx, rosterIDs),
		func(a model.Achievement) int { return a.ID })

	teams, err := p.team.Build(doc, tanks, rosterMedals)
	if err != nil {
		return nil, err
	}

	detailed := p.stats.DetailedReport(doc)
	meta := doc.Metadata()

	report := &model.BattleReport{
		Battle: model.BattleInfo{
			Map:           mapLabel(meta),
			TypeLabel:     classifier.Label(),
			Outcome:       classifier.Outcome(),
			StartedAt:     detailed.Time.StartedAt,
			DurationText:  detailed.Time.DurationText,
			ClientVersion: meta.ClientVersionExe,
			Server:        meta.ServerName,
			Region:        meta.RegionCode,
		},
		Personal:     p.stats.PersonalSummary(doc, tanks, ownMedals),
		Interactions: p.stats.Interactions(doc, tanks),
		Income:       p.stats.Income(doc),
		Detailed:     detailed,
		Teams:        teams,
	}
	return report, nil
}

func (p *Processor) fetchTanks(ctx context.Context, doc *replay.Document) map[string]model.Tank {
	tags := p.team.CollectVehicleTags(doc)
	if len(tags) == 0 {
		return map[string]model.Tank{}
	}
	tanks, err := p.tanks.LookupByTags(ctx, tags)
	if err != nil {
		p.l.Warn("tank catalog fetch failed, using placeholders",
			log.Int("tags", len(tags)), log.ErrorField(err))
		return map[string]model.Tank{}
	}
	return tanks
}

func (p *Processor) fetchMedals(ctx context.Context, ids []int) []model.Achievement {
	if len(ids) == 0 {
		return []model.Achievement{}
	}
	medals, err := p.achievements.LookupByIDs(ctx, ids)
	if err != nil {
		p.l.Warn("achievement catalog fetch failed",
			log.Int("ids", len(ids)), log.ErrorField(err))
		return []model.Achievement{}
	}
	return medals
}

func mapLabel(meta *model.Metadata) string {
	if meta.MapDisplayName != "" {
		return meta.MapDisplayName
	}
	return meta.MapName
}
