package model

import (
	"strings"
)

// Position is the roster slot a player currently occupies, not the
// player's primary position. "BN" marks a benched player.
type Position string

const (
	POS_UNKNOWN Position = "UNK"
	POS_QB      Position = "QB"
	POS_RB      Position = "RB"
	POS_WR      Position = "WR"
	POS_TE      Position = "TE"
	POS_FLEX    Position = "W/R/T"
	POS_K       Position = "K"
	POS_DEF     Position = "DEF"
	POS_BENCH   Position = "BN"
)

func ParsePosition(pos string) Position {
	switch strings.ToUpper(pos) {
	case "QB":
		return POS_QB
	case "RB":
		return POS_RB
	case "WR":
		return POS_WR
	case "TE":
		return POS_TE
	case "W/R/T", "FLEX":
		return POS_FLEX
	case "K":
		return POS_K
	case "DEF":
		return POS_DEF
	case "BN":
		return POS_BENCH
	default:
		return POS_UNKNOWN
	}
}

func (p Position) IsBench() bool {
	return p == POS_BENCH
}
