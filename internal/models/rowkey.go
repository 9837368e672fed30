// rowkey.go — typed identity for leaderboard rows.
// A row is either a team or the floating participant ("Cali"). The original
// product synthesized string keys like "cali_<playerID>" on the fly; here the
// two kinds are an explicit tagged union so the compiler keeps them straight.
package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// RowKind discriminates the two kinds of leaderboard rows.
type RowKind string

const (
	RowTeam RowKind = "team" // Row backed by a 2-person team
	RowCali RowKind = "cali" // Row backed by the floating participant (keyed by player id)
)

// RowKey identifies one leaderboard row: a kind plus the id of the team or
// player behind it. It implements encoding.TextMarshaler/TextUnmarshaler so
// it can be used directly as a JSON map key in the stored document
// (serialized as "team:<uuid>" or "cali:<uuid>").
type RowKey struct {
	Kind RowKind
	ID   uuid.UUID
}

// TeamRow builds the row key for a team.
func TeamRow(teamID uuid.UUID) RowKey {
	return RowKey{Kind: RowTeam, ID: teamID}
}

// CaliRow builds the row key for the floating participant.
func CaliRow(playerID uuid.UUID) RowKey {
	return RowKey{Kind: RowCali, ID: playerID}
}

// String returns the wire form, e.g. "team:7f9c…".
func (k RowKey) String() string {
	return string(k.Kind) + ":" + k.ID.String()
}

// MarshalText implements encoding.TextMarshaler. encoding/json calls this for
// map keys, which is what lets Scores/Adjustments be plain JSON objects.
func (k RowKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *RowKey) UnmarshalText(b []byte) error {
	kind, rest, ok := strings.Cut(string(b), ":")
	if !ok {
		return fmt.Errorf("row key %q: missing kind separator", b)
	}
	switch RowKind(kind) {
	case RowTeam, RowCali:
		// known kinds
	default:
		return fmt.Errorf("row key %q: unknown kind %q", b, kind)
	}
	id, err := uuid.Parse(rest)
	if err != nil {
		return fmt.Errorf("row key %q: %w", b, err)
	}
	k.Kind = RowKind(kind)
	k.ID = id
	return nil
}

// ParseRowKey parses the wire form used by the HTTP layer.
func ParseRowKey(s string) (RowKey, error) {
	var k RowKey
	err := k.UnmarshalText([]byte(s))
	return k, err
}
