package model

import "strconv"

// The document tracks combatants in two unrelated identifier spaces.
// AccountID is the durable per-account id (stable across battles) used by the
// players and personal sections. SessionID is only valid within one battle and
// keys the vehicles and avatars sections. The distinct types keep the two from
// being mixed up; any correlation goes through the resolver helpers.

type AccountID int64

func (a AccountID) String() string {
	return strconv.FormatInt(int64(a), 10)
}

func ParseAccountID(s string) (AccountID, bool) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return AccountID(v), true
}

// SessionID keeps the document's string form ("46118423") since that is how
// the vehicles/avatars sections and the details keys reference it.
type SessionID string

func (s SessionID) Valid() bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func SessionIDFromInt(v int64) SessionID {
	return SessionID(strconv.FormatInt(v, 10))
}
