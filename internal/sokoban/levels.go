package sokoban

import (
	"fmt"
	"sort"
)

// DefaultLevelName is used when a new session names no level.
const DefaultLevelName = "starter"

// Built-in levels, used as defaults for new sessions, by the CLI, and in
// tests. Classic token grid: # wall, space floor, . dock, @ player,
// + player-on-dock, $ box, * box-on-dock.
var builtinLevels = map[string][]string{
	"starter": {
		"######",
		"#    #",
		"# $  #",
		"# .@ #",
		"#    #",
		"######",
	},
	"corridor": {
		"########",
		"#. $ @ #",
		"########",
	},
	"twin": {
		"#######",
		"#.   .#",
		"# $ $ #",
		"#  @  #",
		"#######",
	},
	"cross": {
		"#########",
		"####.####",
		"#   $   #",
		"#.$ @ $.#",
		"#   $   #",
		"####.####",
		"#########",
	},
}

// BuiltinLevel parses one of the named built-in grids.
func BuiltinLevel(name string) (*Level, error) {
	grid, ok := builtinLevels[name]
	if !ok {
		return nil, fmt.Errorf("unknown built-in level %q", name)
	}
	return Parse(grid)
}

// BuiltinLevelNames lists the built-in level names, sorted.
func BuiltinLevelNames() []string {
	names := make([]string, 0, len(builtinLevels))
	for name := range builtinLevels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
