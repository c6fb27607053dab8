// Package engine generates each phase's deduction clues.
//
// Once per phase every character is visited in a freshly shuffled order.
// Living characters run a fixed pipeline of observation-based generators
// (saw in location, saw passing by, saw at work, facial features, clothing)
// that share a single lie roll, followed by gossip which never lies. A
// character on its first phase after death instead produces one ghost visual
// clue, sequenced by the GhostSequencer across the whole game.
package engine
