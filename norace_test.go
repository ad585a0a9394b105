//go:build !race

package pixconv

const raceEnabled = false
