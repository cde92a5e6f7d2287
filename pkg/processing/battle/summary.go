package battle

import (
	"github.com/tanklog/mtreplay-service-go/pkg/model"
	"github.com/tanklog/mtreplay-service-go/pkg/replay"
)

// Summary is the narrowed view of one battle that the classifier works on:
// the already-extracted sections plus the recording player's team. It carries
// no reference back to the document.
type Summary struct {
	GameplayID string
	BattleType int
	Common     *model.Common
	Personal   *model.Personal
	Players    map[model.AccountID]*model.PlayerEntry
	Vehicles   map[model.SessionID]*model.VehicleEntry
	Avatars    map[model.SessionID]*model.AvatarEntry
	Team       int
}

// NewSummary extracts the reusable view from a document.
func NewSummary(doc *replay.Document) (*Summary, error) {
	vehicles, err := doc.Vehicles()
	if err != nil {
		return nil, err
	}
	meta := doc.Metadata()
	return &Summary{
		GameplayID: meta.GameplayID,
		BattleType: meta.BattleType,
		Common:     doc.Common(),
		Personal:   doc.Personal(),
		Players:    doc.Players(),
		Vehicles:   vehicles,
		Avatars:    doc.Avatars(),
		Team:       doc.Team(),
	}, nil
}
