package stats

import (
	"github.com/tanklog/mtreplay-service-go/pkg/model"
	"github.com/tanklog/mtreplay-service-go/pkg/processing/util"
	"github.com/tanklog/mtreplay-service-go/pkg/replay"
)

// PartitionMedals splits resolved achievements into the battle/epic block and
// the rest, keeping catalog order within each block.
func PartitionMedals(medals []model.Achievement) model.MedalSections {
	out := model.MedalSections{
		Battle: []model.Achievement{},
		Other:  []model.Achievement{},
	}
	for _, m := range medals {
		switch m.Section {
		case "battle", "epic":
			out.Battle = append(out.Battle, m)
		default:
			out.Other = append(out.Other, m)
		}
	}
	return out
}

// PersonalSummary assembles the recording player's headline block. The tank
// map and the player's own resolved medals arrive prefetched.
func (t *Transformer) PersonalSummary(
	doc *replay.Document,
	tanks map[string]model.Tank,
	ownMedals []model.Achievement,
) model.PersonalSummary {
	p := doc.Personal()

	tag := replay.MetadataVehicleTag(doc.Metadata().PlayerVehicle)
	vehicle, ok := tanks[tag]
	if !ok {
		vehicle = model.UnknownTank(tag)
	}

	return model.PersonalSummary{
		Owner:       t.Owner(doc),
		Vehicle:     vehicle,
		Stats:       t.PersonalStats(doc),
		Death:       t.DeathStatus(doc),
		Mastery:     p.MarkOfMastery,
		MasteryText: util.MasteryLabel(p.MarkOfMastery),
		Medals:      PartitionMedals(ownMedals),
	}
}
