//go:build race

package pixconv

const raceEnabled = true
