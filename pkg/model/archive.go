package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// UnsupportedReplay is an archived container that failed format validation.
// The raw bytes are kept so a later decoder version can retry it.
type UnsupportedReplay struct {
	ID        uuid.UUID `json:"id"`
	FileName  string    `json:"fileName"`
	Magic     uint32    `json:"magic"`
	Version   uint32    `json:"version"`
	Reason    string    `json:"reason"`
	Payload   []byte    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
