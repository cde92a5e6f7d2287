package model

import "fmt"

// Tank is one catalog entry identified by its client tag.
type Tank struct {
	Tag    string `json:"tag" yaml:"tag"`
	Name   string `json:"name" yaml:"name"`
	Tier   int    `json:"tier" yaml:"tier"`
	Type   string `json:"type" yaml:"type"` // lightTank, mediumTank, heavyTank, AT-SPG, SPG
	Nation string `json:"nation" yaml:"nation"`
}

// UnknownTank is the placeholder used when a tag is missing from the catalog.
func UnknownTank(tag string) Tank {
	return Tank{
		Tag:    tag,
		Name:   fmt.Sprintf("Unknown tank (%s)", tag),
		Tier:   1,
		Type:   "unknown",
		Nation: "unknown",
	}
}

// Achievement is one catalog entry keyed by the numeric client id.
type Achievement struct {
	ID       int    `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Section  string `json:"section" yaml:"section"`
	Order    int    `json:"order" yaml:"order"`
	IsActive bool   `json:"isActive" yaml:"isActive"`
}
