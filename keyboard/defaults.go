package keyboard

// DefaultTable is a built-in Table producing the standard VT100/xterm
// key sequences (arrows, Home/End, PageUp/Down, Insert/Delete,
// function keys), keyed on StateAppCuKeys to select the cursor-key
// application-mode variant.
type DefaultTable struct{}

func (DefaultTable) Lookup(key Key, mods Modifiers, state StateMask) (Binding, bool) {
	appCursor := state&StateAppCuKeys != 0

	switch key {
	case KeyUp:
		return textBinding(cursorSeq('A', appCursor)), true
	case KeyDown:
		return textBinding(cursorSeq('B', appCursor)), true
	case KeyRight:
		return textBinding(cursorSeq('C', appCursor)), true
	case KeyLeft:
		return textBinding(cursorSeq('D', appCursor)), true
	case KeyHome:
		return textBinding("\x1b[H"), true
	case KeyEnd:
		return textBinding("\x1b[F"), true
	case KeyPageUp:
		return textBinding("\x1b[5~"), true
	case KeyPageDown:
		return textBinding("\x1b[6~"), true
	case KeyInsert:
		return textBinding("\x1b[2~"), true
	case KeyDelete:
		return textBinding("\x1b[3~"), true
	case KeyBackspace:
		return Binding{Command: CommandErase}, true
	case KeyF1:
		return textBinding("\x1bOP"), true
	case KeyF2:
		return textBinding("\x1bOQ"), true
	case KeyF3:
		return textBinding("\x1bOR"), true
	case KeyF4:
		return textBinding("\x1bOS"), true
	case KeyF5:
		return textBinding("\x1b[15~"), true
	case KeyF6:
		return textBinding("\x1b[17~"), true
	case KeyF7:
		return textBinding("\x1b[18~"), true
	case KeyF8:
		return textBinding("\x1b[19~"), true
	case KeyF9:
		return textBinding("\x1b[20~"), true
	case KeyF10:
		return textBinding("\x1b[21~"), true
	case KeyF11:
		return textBinding("\x1b[23~"), true
	case KeyF12:
		return textBinding("\x1b[24~"), true
	}
	return Binding{}, false
}

func cursorSeq(final byte, appCursor bool) string {
	if appCursor {
		return "\x1bO" + string(final)
	}
	return "\x1b[" + string(final)
}

func textBinding(s string) Binding {
	return Binding{Text: s}
}
