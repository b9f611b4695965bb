package session

// keyBindings maps single keys to actions, vi-style for cursor movement
var keyBindings = map[rune]Action{
	'>': Simple(ActionSpeedUp),
	'<': Simple(ActionSpeedDown),
	' ': Simple(ActionToggleRunning),
	'?': Simple(ActionToggleHelp),
	'x': Simple(ActionToggleFieldActive),
	'k': Cursor(Up),
	'j': Cursor(Down),
	'h': Cursor(Left),
	'l': Cursor(Right),
	's': Simple(ActionSaveToFile),
	'o': Simple(ActionLoadFromFile),
	'q': Simple(ActionQuit),
}

// KeyToAction maps a key press to its Action; unknown keys map to ActionNone
func KeyToAction(r rune) Action {
	if a, ok := keyBindings[r]; ok {
		return a
	}
	return Simple(ActionNone)
}

// HelpLines describes the key bindings for the help overlay
func HelpLines() []string {
	return []string{
		"Game of Life",
		"",
		"  space   start / pause",
		"  h j k l move cursor",
		"  x       toggle cell under cursor",
		"  > <     double / halve speed",
		"  s       save board",
		"  o       load board",
		"  ?       toggle this help",
		"  q       quit",
	}
}
