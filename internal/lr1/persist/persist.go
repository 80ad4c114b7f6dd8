// Package persist caches a built recognizer's ACTION/GOTO table on disk,
// keyed by a digest of the grammar text it was built from, so that a
// caller which runs the same grammar repeatedly doesn't repay the
// CLOSURE/GOTO fixed-point every time. Grounded on tunaq's
// server/dao/sqlite.convertFromDB_GameStatePtr / sessions.go's
// rezi.EncBinary(s.State) round trip: a Go value implements
// encoding.BinaryMarshaler/Unmarshaler, and rezi.EncBinary/DecBinary do the
// recursive length-prefixed encoding around it.
package persist

import (
	"encoding"
	"encoding/binary"
	"fmt"

	"github.com/dekarrin/lr1/internal/lr1/grammar"
	"github.com/dekarrin/lr1/internal/lr1/table"
	"github.com/dekarrin/rezi"
)

var (
	_ encoding.BinaryMarshaler   = (*Snapshot)(nil)
	_ encoding.BinaryUnmarshaler = (*Snapshot)(nil)
)

// Snapshot is the serializable form of a built table: just enough to
// reconstruct Action/Goto lookups without re-running CLOSURE/GOTO. It does
// not store the full Collection, only the flattened table cells, since
// those are all a Recognizer needs at query time.
type Snapshot struct {
	Terminals    []string
	NonTerminals []string
	StartSymbol  string
	NumStates    int
	Actions      []actionCell
	Gotos        []gotoCell
}

type actionCell struct {
	State       int
	Terminal    string
	Type        int
	ShiftState  int
	NonTerminal string
	Production  []string
}

type gotoCell struct {
	State       int
	NonTerminal string
	NextState   int
}

// FromTable flattens a built Table into a Snapshot suitable for encoding.
func FromTable(t *table.Table) Snapshot {
	g := t.Collection.Grammar
	snap := Snapshot{
		Terminals:    g.Terminals(),
		NonTerminals: g.NonTerminals(),
		StartSymbol:  g.StartSymbol(),
		NumStates:    len(t.Collection.States),
	}

	for state, row := range t.Actions {
		for term, act := range row {
			snap.Actions = append(snap.Actions, actionCell{
				State:       state,
				Terminal:    term,
				Type:        int(act.Type),
				ShiftState:  act.State,
				NonTerminal: act.NonTerminal,
				Production:  []string(act.Production),
			})
		}
	}
	for state, row := range t.Gotos {
		for nt, next := range row {
			snap.Gotos = append(snap.Gotos, gotoCell{State: state, NonTerminal: nt, NextState: next})
		}
	}

	return snap
}

// MarshalBinary implements encoding.BinaryMarshaler using the same
// length-prefixed primitive encoding tunaq's tunascript/binary.go uses for
// its own AST nodes (4-byte big-endian length headers ahead of every
// variable-length field), so that rezi.EncBinary can wrap it uniformly.
func (s Snapshot) MarshalBinary() ([]byte, error) {
	var buf []byte

	buf = appendString(buf, s.StartSymbol)
	buf = appendStringSlice(buf, s.Terminals)
	buf = appendStringSlice(buf, s.NonTerminals)
	buf = appendInt(buf, s.NumStates)

	buf = appendInt(buf, len(s.Actions))
	for _, a := range s.Actions {
		buf = appendInt(buf, a.State)
		buf = appendString(buf, a.Terminal)
		buf = appendInt(buf, a.Type)
		buf = appendInt(buf, a.ShiftState)
		buf = appendString(buf, a.NonTerminal)
		buf = appendStringSlice(buf, a.Production)
	}

	buf = appendInt(buf, len(s.Gotos))
	for _, gc := range s.Gotos {
		buf = appendInt(buf, gc.State)
		buf = appendString(buf, gc.NonTerminal)
		buf = appendInt(buf, gc.NextState)
	}

	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler, the inverse of
// MarshalBinary.
func (s *Snapshot) UnmarshalBinary(data []byte) error {
	var err error
	var rest []byte

	if s.StartSymbol, rest, err = readString(data); err != nil {
		return err
	}
	if s.Terminals, rest, err = readStringSlice(rest); err != nil {
		return err
	}
	if s.NonTerminals, rest, err = readStringSlice(rest); err != nil {
		return err
	}
	if s.NumStates, rest, err = readInt(rest); err != nil {
		return err
	}

	var numActions int
	if numActions, rest, err = readInt(rest); err != nil {
		return err
	}
	s.Actions = make([]actionCell, numActions)
	for i := range s.Actions {
		a := &s.Actions[i]
		if a.State, rest, err = readInt(rest); err != nil {
			return err
		}
		if a.Terminal, rest, err = readString(rest); err != nil {
			return err
		}
		if a.Type, rest, err = readInt(rest); err != nil {
			return err
		}
		if a.ShiftState, rest, err = readInt(rest); err != nil {
			return err
		}
		if a.NonTerminal, rest, err = readString(rest); err != nil {
			return err
		}
		if a.Production, rest, err = readStringSlice(rest); err != nil {
			return err
		}
	}

	var numGotos int
	if numGotos, rest, err = readInt(rest); err != nil {
		return err
	}
	s.Gotos = make([]gotoCell, numGotos)
	for i := range s.Gotos {
		gc := &s.Gotos[i]
		if gc.State, rest, err = readInt(rest); err != nil {
			return err
		}
		if gc.NonTerminal, rest, err = readString(rest); err != nil {
			return err
		}
		if gc.NextState, rest, err = readInt(rest); err != nil {
			return err
		}
	}

	return nil
}

func appendInt(buf []byte, v int) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(v))
	return append(buf, b...)
}

func appendString(buf []byte, s string) []byte {
	buf = appendInt(buf, len(s))
	return append(buf, s...)
}

func appendStringSlice(buf []byte, ss []string) []byte {
	buf = appendInt(buf, len(ss))
	for _, s := range ss {
		buf = appendString(buf, s)
	}
	return buf
}

func readInt(data []byte) (int, []byte, error) {
	if len(data) < 4 {
		return 0, nil, fmt.Errorf("unexpected end of data reading int")
	}
	return int(binary.BigEndian.Uint32(data[:4])), data[4:], nil
}

func readString(data []byte) (string, []byte, error) {
	n, rest, err := readInt(data)
	if err != nil {
		return "", nil, err
	}
	if len(rest) < n {
		return "", nil, fmt.Errorf("unexpected end of data reading string")
	}
	return string(rest[:n]), rest[n:], nil
}

func readStringSlice(data []byte) ([]string, []byte, error) {
	n, rest, err := readInt(data)
	if err != nil {
		return nil, nil, err
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		if out[i], rest, err = readString(rest); err != nil {
			return nil, nil, err
		}
	}
	return out, rest, nil
}

// Encode serializes t with rezi, the way sessions.go's Create encodes a
// dao.Session's game state before it ever reaches the DB.
func Encode(t *table.Table) []byte {
	snap := FromTable(t)
	return rezi.EncBinary(snap)
}

// Decode is the inverse of Encode: rezi.DecBinary into a fresh Snapshot.
func Decode(data []byte) (Snapshot, error) {
	var snap Snapshot
	n, err := rezi.DecBinary(data, &snap)
	if err != nil {
		return Snapshot{}, fmt.Errorf("REZI decode: %w", err)
	}
	if n != len(data) {
		return Snapshot{}, fmt.Errorf("REZI decoded byte count mismatch; only consumed %d/%d bytes", n, len(data))
	}
	return snap, nil
}

// GrammarKey returns a stable cache key for g's text form, so that two
// calls against an unmodified grammar always agree on a key without
// depending on map iteration order anywhere upstream.
func GrammarKey(g grammar.Grammar) string {
	return g.String()
}
