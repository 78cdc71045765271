package constants

import "time"

// Name and Version appear in the welcome banner shown for an empty document.
const (
	Name    = "Ted"
	Version = "0.0.1"
)

// TabStop is the render column multiple a tab advances to.
const TabStop = 8

// QuitTimes is how many extra Ctrl-Q presses a dirty document needs before
// the editor exits. Overridable with [editor] quit_times.
const QuitTimes = 3

// MessageTimeout is how long a status message stays on the message bar.
const MessageTimeout = 5 * time.Second

// HelpMessage is shown on the message bar when a session starts.
const HelpMessage = "HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-F = find"

// PositionTTL is how long a remembered cursor position survives without the
// file being reopened.
const PositionTTL = 30 * 24 * time.Hour
