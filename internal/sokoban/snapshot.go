package sokoban

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// Snapshot is the persistable form of a Level: the original grid plus the
// human move history. The live board is reconstructed by replay, which also
// restores the move/push counters.
type Snapshot struct {
	Grid    []string
	History []Direction
}

func (l *Level) Snapshot() Snapshot {
	return Snapshot{Grid: l.Grid(), History: l.History()}
}

func (s Snapshot) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s)
	return s, err
}

// Restore rebuilds a live board from a snapshot.
func Restore(s Snapshot) (*Level, error) {
	l, err := Parse(s.Grid)
	if err != nil {
		return nil, err
	}
	for i, d := range s.History {
		if !l.Move(d) {
			return nil, fmt.Errorf("snapshot history replay failed at move %d (%s)", i, d)
		}
	}
	return l, nil
}
