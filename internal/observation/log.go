// Package observation records, for one phase, which characters each
// character saw in a location and which they saw passing by.
package observation

import "cluegen/internal/town"

type Sighting struct {
	Subject  *town.Character
	Location int
}

type Log struct {
	seen      map[*town.Character][]Sighting
	passingBy map[*town.Character][]Sighting
}

func NewLog() *Log {
	return &Log{
		seen:      make(map[*town.Character][]Sighting),
		passingBy: make(map[*town.Character][]Sighting),
	}
}

func (l *Log) RecordSeen(observer, subject *town.Character, location int) {
	if observer == subject {
		return
	}
	l.seen[observer] = append(l.seen[observer], Sighting{Subject: subject, Location: location})
}

func (l *Log) RecordPassingBy(observer, subject *town.Character, location int) {
	if observer == subject {
		return
	}
	l.passingBy[observer] = append(l.passingBy[observer], Sighting{Subject: subject, Location: location})
}

func (l *Log) Seen(observer *town.Character) []Sighting {
	if l == nil {
		return nil
	}
	return l.seen[observer]
}

func (l *Log) PassingBy(observer *town.Character) []Sighting {
	if l == nil {
		return nil
	}
	return l.passingBy[observer]
}

// Observed reports whether observer saw anyone in a location this phase.
func (l *Log) Observed(observer *town.Character) bool {
	return len(l.Seen(observer)) > 0
}
