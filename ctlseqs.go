package vaxis

// Control sequences the renderer and terminal commands emit. Kept in one
// place so the byte-exact forms are auditable against ECMA-48 and the
// relevant extensions.
const (
	// Synchronized update (DECSET 2026)
	syncSet   = "\x1b[?2026h"
	syncReset = "\x1b[?2026l"

	// Alternate screen (smcup/rmcup)
	smcup = "\x1b[?1049h"
	rmcup = "\x1b[?1049l"

	cursorHide = "\x1b[?25l"
	cursorShow = "\x1b[?25h"

	sgrReset = "\x1b[m"

	// Cursor movement
	cup          = "\x1b[%d;%dH" // row;col, 1-based
	cuf          = "\x1b[%dC"
	reverseIndex = "\x1bM"
	eraseBelow   = "\x1b[J"

	decscusr = "\x1b[%d q"

	// Hyperlinks (OSC 8)
	osc8      = "\x1b]8;%s;%s\x1b\\"
	osc8Clear = "\x1b]8;;\x1b\\"

	// Window title, notifications, working directory, mouse shape
	osc2Title  = "\x1b]2;%s\x1b\\"
	osc7CWD    = "\x1b]7;%s\x1b\\"
	osc9Notify = "\x1b]9;%s\x1b\\"
	osc777     = "\x1b]777;notify;%s;%s\x1b\\"
	osc22      = "\x1b]22;%s\x1b\\"

	// Clipboard (OSC 52)
	osc52Put   = "\x1b]52;c;%s\x1b\\"
	osc52Query = "\x1b]52;c;?\x1b\\"

	// Color set/query/reset (OSC 4/10/11/12, 104/110/111/112)
	osc4Set      = "\x1b]4;%d;rgb:%02x/%02x/%02x\x1b\\"
	osc4Query    = "\x1b]4;%d;?\x1b\\"
	osc10Set     = "\x1b]10;rgb:%02x/%02x/%02x\x1b\\"
	osc10Query   = "\x1b]10;?\x1b\\"
	osc11Set     = "\x1b]11;rgb:%02x/%02x/%02x\x1b\\"
	osc11Query   = "\x1b]11;?\x1b\\"
	osc12Set     = "\x1b]12;rgb:%02x/%02x/%02x\x1b\\"
	osc12Query   = "\x1b]12;?\x1b\\"
	osc104Reset  = "\x1b]104;%d\x1b\\"
	osc110Reset  = "\x1b]110\x1b\\"
	osc111Reset  = "\x1b]111\x1b\\"
	osc112Reset  = "\x1b]112\x1b\\"

	// Kitty keyboard protocol
	kittyKBPush  = "\x1b[>%du"
	kittyKBPop   = "\x1b[<u"
	kittyKBQuery = "\x1b[?u"

	// Kitty graphics
	kittyGraphicsQuery  = "\x1b_Gi=1,a=q\x1b\\"
	kittyGraphicsDelete = "\x1b_Ga=d,d=A\x1b\\"

	// Mouse reporting: button + motion + SGR encoding, with the pixel
	// variant swapped in when supported.
	mouseSet      = "\x1b[?1003;1004;1006h"
	mouseSetPx    = "\x1b[?1003;1004;1016h"
	mouseReset    = "\x1b[?1003;1004;1006;1016l"
	focusSet      = "\x1b[?1004h"
	focusReset    = "\x1b[?1004l"
	pasteSet      = "\x1b[?2004h"
	pasteReset    = "\x1b[?2004l"

	// Mode queries (DECRQM) and sets
	decrqmSGRPixels   = "\x1b[?1016$p"
	decrqmUnicode     = "\x1b[?2027$p"
	decrqmColorScheme = "\x1b[?2031$p"
	unicodeSet        = "\x1b[?2027h"
	unicodeReset      = "\x1b[?2027l"
	colorSchemeSet    = "\x1b[?2031h"
	colorSchemeReset  = "\x1b[?2031l"
	inBandResizeSet   = "\x1b[?2048h"

	// Color scheme request (reported via DSR 997)
	colorSchemeQuery = "\x1b[?996n"

	// Capability probes
	xtversion = "\x1b[>0q"
	da1       = "\x1b[c"
	dsrCPR    = "\x1b[6n"
	xtgettcapRGB = "\x1bP+q524742\x1b\\"

	// Explicit-width and scaled-text probes: home, echo through the OSC 66
	// form, then ask where the cursor landed.
	explicitWidthQuery = "\x1b[1;1H\x1b]66;w=1;\U0001F600\x1b\\\x1b[6n"
	scaledTextQuery    = "\x1b[1;1H\x1b]66;s=2;a\x1b\\\x1b[6n"

	// Explicit width and scaled text emission (OSC 66)
	explicitWidthFmt = "\x1b]66;w=%d;%s\x1b\\"
)
