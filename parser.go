package vaxis

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// ErrInvalidUTF8 is returned when the input stream contains bytes that do not
// form valid UTF-8. The caller must surface it as a read abort.
var ErrInvalidUTF8 = errors.New("invalid utf-8 in input")

// Result is the outcome of a single Parse call. N is the number of bytes
// consumed. When N is zero no complete event was present: the caller must
// retain its buffer and append more bytes before calling again. A nil Event
// with N > 0 means the sequence was consumed without producing an event.
type Result struct {
	Event Event
	N     int
}

// Parser decodes the byte stream a terminal sends to an application into
// typed events. It holds the interning cache that backs event text, so the
// text of an event is only valid until further bytes are parsed.
type Parser struct {
	cache graphemeCache

	// textBuf re-encodes kitty text-as-codepoints parameter lists into
	// UTF-8.
	textBuf [128]byte

	// capQueriesOutstanding redirects the cursor-position reports produced
	// by the explicit-width and scaled-text probes, which would otherwise
	// decode as modified F3 presses, into capability events.
	capQueriesOutstanding bool
}

// Parse decodes the first event in b.
func (p *Parser) Parse(b []byte) (Result, error) {
	if len(b) == 0 {
		return Result{}, nil
	}
	switch {
	case b[0] == 0x1b:
		return p.parseEscape(b)
	case b[0] < 0x20 || b[0] == 0x7f:
		return Result{Event: controlKey(b[0]), N: 1}, nil
	default:
		return p.parseGround(b)
	}
}

// controlKey maps a single C0 byte (or DEL) to its key event.
func controlKey(b byte) Event {
	var key Key
	switch b {
	case 0x00:
		key = Key{Codepoint: '@', Mods: ModCtrl}
	case 0x08, 0x7f:
		key = Key{Codepoint: KeyBackspace}
	case 0x09:
		key = Key{Codepoint: KeyTab}
	case 0x0d:
		key = Key{Codepoint: KeyEnter}
	case 0x1b:
		key = Key{Codepoint: KeyEscape}
	default:
		if b <= 0x1a {
			key = Key{Codepoint: rune(b) + 0x60, Mods: ModCtrl}
		} else {
			key = Key{Codepoint: rune(b) + 0x40, Mods: ModCtrl}
		}
	}
	return KeyPress(key)
}

// incompleteTailLen returns how many bytes at the end of b form the start of
// an unfinished UTF-8 sequence, or 0 when b ends on a rune boundary.
func incompleteTailLen(b []byte) int {
	for back := 1; back <= 3 && back <= len(b); back++ {
		c := b[len(b)-back]
		if c&0xc0 == 0x80 {
			continue
		}
		var want int
		switch {
		case c < 0x80:
			want = 1
		case c&0xe0 == 0xc0:
			want = 2
		case c&0xf0 == 0xe0:
			want = 3
		case c&0xf8 == 0xf0:
			want = 4
		default:
			return 0
		}
		if want > back {
			return back
		}
		return 0
	}
	return 0
}

// parseGround decodes printable input: single codepoints and grapheme
// clusters collapse into one key press each.
func (p *Parser) parseGround(b []byte) (Result, error) {
	// Printable ASCII that does not begin a larger cluster.
	if asciiPrefixLen(b) >= 1 {
		text := p.cache.put(b[:1])
		return Result{Event: KeyPress(Key{Codepoint: rune(b[0]), Text: text}), N: 1}, nil
	}

	// Hold back an unfinished trailing rune so a cluster is never split on
	// a partial codepoint.
	tail := incompleteTailLen(b)
	search := b[:len(b)-tail]
	if len(search) == 0 {
		return Result{}, nil
	}
	cluster, _, _, _ := uniseg.FirstGraphemeCluster(search, -1)
	if tail > 0 && len(cluster) == len(search) {
		// The cluster may still grow with the pending rune.
		return Result{}, nil
	}
	count := 0
	for i := 0; i < len(cluster); {
		r, size := utf8.DecodeRune(cluster[i:])
		if r == utf8.RuneError && size <= 1 {
			return Result{}, ErrInvalidUTF8
		}
		i += size
		count++
	}
	if count == 0 {
		return Result{}, ErrInvalidUTF8
	}
	cp := KeyMulticodepoint
	if count == 1 {
		cp, _ = utf8.DecodeRune(cluster)
	}
	text := p.cache.put(cluster)
	return Result{Event: KeyPress(Key{Codepoint: cp, Text: text}), N: len(cluster)}, nil
}

func (p *Parser) parseEscape(b []byte) (Result, error) {
	if len(b) == 1 {
		return Result{Event: KeyPress(Key{Codepoint: KeyEscape}), N: 1}, nil
	}
	switch b[1] {
	case '[':
		return p.parseCSI(b)
	case ']':
		return p.parseOSC(b)
	case 'O':
		return p.parseSS3(b)
	case '_':
		return p.parseAPC(b)
	case 'P':
		return p.parseDCS(b)
	case 'X', '^':
		// SOS and PM: skipped up to the string terminator.
		_, n, ok := findST(b, 2)
		if !ok {
			return Result{}, nil
		}
		return Result{N: n}, nil
	default:
		// Alt+key.
		r, size := utf8.DecodeRune(b[1:])
		if r == utf8.RuneError && size <= 1 {
			if !utf8.FullRune(b[1:]) {
				return Result{}, nil
			}
			return Result{}, ErrInvalidUTF8
		}
		return Result{Event: KeyPress(Key{Codepoint: r, Mods: ModAlt}), N: 1 + size}, nil
	}
}

var ss3Keys = map[byte]rune{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'E': KeyKpBegin,
	'F': KeyEnd,
	'H': KeyHome,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
}

func (p *Parser) parseSS3(b []byte) (Result, error) {
	if len(b) < 3 {
		return Result{}, nil
	}
	cp, ok := ss3Keys[b[2]]
	if !ok {
		logger.Debugf("unknown ss3 final %q", b[2])
		return Result{N: 3}, nil
	}
	return Result{Event: KeyPress(Key{Codepoint: cp}), N: 3}, nil
}

// parseParams splits a CSI parameter body into ;-separated parameters, each
// with :-separated subparameters. Empty parts become -1. ok is false when a
// value overflows.
func parseParams(body []byte) (params [][]int, ok bool) {
	if len(body) == 0 {
		return nil, true
	}
	fields := strings.Split(string(body), ";")
	params = make([][]int, len(fields))
	for i, f := range fields {
		subs := strings.Split(f, ":")
		params[i] = make([]int, len(subs))
		for j, s := range subs {
			if s == "" {
				params[i][j] = -1
				continue
			}
			v, err := strconv.Atoi(s)
			if err != nil {
				return nil, false
			}
			params[i][j] = v
		}
	}
	return params, true
}

// param returns parameter i, or def when absent or empty.
func param(params [][]int, i, def int) int {
	if i >= len(params) || len(params[i]) == 0 || params[i][0] < 0 {
		return def
	}
	return params[i][0]
}

// subparam returns subparameter j of parameter i, or def when absent.
func subparam(params [][]int, i, j, def int) int {
	if i >= len(params) || j >= len(params[i]) || params[i][j] < 0 {
		return def
	}
	return params[i][j]
}

var csiKeys = map[byte]rune{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'E': KeyKpBegin,
	'F': KeyEnd,
	'H': KeyHome,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
}

var tildeKeys = map[int]rune{
	2:     KeyInsert,
	3:     KeyDelete,
	5:     KeyPgUp,
	6:     KeyPgDown,
	7:     KeyHome,
	8:     KeyEnd,
	11:    KeyF1,
	12:    KeyF2,
	13:    KeyF3,
	14:    KeyF4,
	15:    KeyF5,
	17:    KeyF6,
	18:    KeyF7,
	19:    KeyF8,
	20:    KeyF9,
	21:    KeyF10,
	23:    KeyF11,
	24:    KeyF12,
	57427: KeyKpBegin,
}

func (p *Parser) parseCSI(b []byte) (Result, error) {
	i := 2
	var private byte
	if i < len(b) && b[i] >= 0x3c && b[i] <= 0x3f {
		private = b[i]
		i++
	}
	paramStart := i
	for i < len(b) && b[i] >= 0x30 && b[i] <= 0x3b {
		i++
	}
	paramEnd := i
	for i < len(b) && b[i] >= 0x20 && b[i] <= 0x2f {
		i++
	}
	if i >= len(b) {
		return Result{}, nil
	}
	final := b[i]
	n := i + 1
	if final < 0x40 || final > 0x7e {
		logger.Debugf("malformed csi sequence: %q", b[:n])
		return Result{N: n}, nil
	}
	params, ok := parseParams(b[paramStart:paramEnd])
	if !ok {
		// Parameter overflow: consume the sequence, emit nothing.
		return Result{N: n}, nil
	}
	inters := b[paramEnd:i]

	switch final {
	case 'A', 'B', 'C', 'D', 'E', 'F', 'H', 'P', 'Q', 'R', 'S':
		if private != 0 {
			break
		}
		if final == 'R' && p.capQueriesOutstanding && param(params, 0, 1) == 1 {
			// Cursor position report from a width probe, not a key.
			switch param(params, 1, 1) {
			case 2:
				return Result{Event: CapExplicitWidth{}, N: n}, nil
			case 3:
				return Result{Event: CapScaledText{}, N: n}, nil
			}
			return Result{N: n}, nil
		}
		key := Key{
			Codepoint: csiKeys[final],
			Mods:      ModifierMask(param(params, 1, 1) - 1),
		}
		if subparam(params, 1, 1, 1) == 3 {
			return Result{Event: KeyRelease(key), N: n}, nil
		}
		return Result{Event: KeyPress(key), N: n}, nil

	case '~':
		v := param(params, 0, 0)
		switch v {
		case 200:
			return Result{Event: PasteStart{}, N: n}, nil
		case 201:
			return Result{Event: PasteEnd{}, N: n}, nil
		}
		cp, found := tildeKeys[v]
		if !found {
			logger.Debugf("unknown csi ~ key %d", v)
			return Result{N: n}, nil
		}
		key := Key{
			Codepoint: cp,
			Mods:      ModifierMask(param(params, 1, 1) - 1),
		}
		if subparam(params, 1, 1, 1) == 3 {
			return Result{Event: KeyRelease(key), N: n}, nil
		}
		return Result{Event: KeyPress(key), N: n}, nil

	case 'u':
		if private == '?' {
			return Result{Event: CapKittyKeyboard{Flags: param(params, 0, 0)}, N: n}, nil
		}
		if private != 0 {
			break
		}
		return p.parseKittyKey(params, n)

	case 'M', 'm':
		if private != '<' {
			break
		}
		return parseSGRMouse(params, final, n)

	case 'I':
		if private == 0 {
			return Result{Event: FocusIn{}, N: n}, nil
		}
	case 'O':
		if private == 0 {
			return Result{Event: FocusOut{}, N: n}, nil
		}

	case 'c':
		if private == '?' {
			return Result{Event: CapDA1{}, N: n}, nil
		}

	case 'y':
		if private == '?' && len(inters) > 0 && inters[len(inters)-1] == '$' {
			mode := param(params, 0, 0)
			val := param(params, 1, 0)
			if val == 0 || val == 4 {
				return Result{N: n}, nil
			}
			switch mode {
			case 1016:
				return Result{Event: CapSGRPixels{}, N: n}, nil
			case 2027:
				return Result{Event: CapUnicode{}, N: n}, nil
			case 2031:
				return Result{Event: CapColorSchemeUpdates{}, N: n}, nil
			}
			return Result{N: n}, nil
		}

	case 'n':
		if private == '?' && param(params, 0, 0) == 997 {
			switch param(params, 1, 0) {
			case 1:
				return Result{Event: ColorSchemeDark, N: n}, nil
			case 2:
				return Result{Event: ColorSchemeLight, N: n}, nil
			}
			return Result{N: n}, nil
		}

	case 't':
		if param(params, 0, 0) == 48 {
			return Result{Event: Winsize{
				Rows:   param(params, 1, 0),
				Cols:   param(params, 2, 0),
				YPixel: param(params, 3, 0),
				XPixel: param(params, 4, 0),
			}, N: n}, nil
		}
	}

	logger.Debugf("unknown csi sequence: %q", b[:n])
	return Result{N: n}, nil
}

// parseKittyKey decodes a CSI u key per the kitty keyboard protocol:
// codepoint[:shifted[:base]] ; modifiers[:event] ; text-codepoints.
func (p *Parser) parseKittyKey(params [][]int, n int) (Result, error) {
	cp := param(params, 0, 0)
	if cp <= 0 {
		return Result{N: n}, nil
	}
	key := Key{
		Codepoint:           rune(cp),
		ShiftedCodepoint:    rune(subparam(params, 0, 1, 0)),
		BaseLayoutCodepoint: rune(subparam(params, 0, 2, 0)),
		Mods:                ModifierMask(param(params, 1, 1) - 1),
	}
	release := subparam(params, 1, 1, 1) == 3

	if len(params) > 2 {
		// Text delivered as codepoints; re-encode as UTF-8.
		w := 0
		for _, tcp := range params[2] {
			if tcp <= 0 || !utf8.ValidRune(rune(tcp)) {
				continue
			}
			if w+utf8.RuneLen(rune(tcp)) > len(p.textBuf) {
				break
			}
			w += utf8.EncodeRune(p.textBuf[w:], rune(tcp))
		}
		if w > 0 {
			key.Text = p.textBuf[:w:w]
		}
	}

	// A shifted printable with no reported text still has deterministic
	// text: its uppercase form.
	if key.Text == nil && !release && key.Mods == ModShift &&
		key.Codepoint >= 0x20 && key.Codepoint <= 0x7e {
		shifted := key.ShiftedCodepoint
		if shifted == 0 {
			shifted = unicode.ToUpper(key.Codepoint)
		}
		w := utf8.EncodeRune(p.textBuf[:], shifted)
		key.Text = p.textBuf[:w:w]
	}

	if release {
		return Result{Event: KeyRelease(key), N: n}, nil
	}
	return Result{Event: KeyPress(key), N: n}, nil
}

// parseSGRMouse decodes CSI < button ; px ; py M/m.
func parseSGRMouse(params [][]int, final byte, n int) (Result, error) {
	mask := param(params, 0, 0)
	col := param(params, 1, 1) - 1
	row := param(params, 2, 1) - 1

	var mods ModifierMask
	if mask&0x04 != 0 {
		mods |= ModShift
	}
	if mask&0x08 != 0 {
		mods |= ModAlt
	}
	if mask&0x10 != 0 {
		mods |= ModCtrl
	}

	var button MouseButton
	switch {
	case mask&0x40 != 0:
		button = MouseButtonWheelUp + MouseButton(mask&0x03)
	case mask&0x80 != 0:
		button = MouseButton8 + MouseButton(mask&0x01)
	default:
		switch mask & 0x03 {
		case 0:
			button = MouseButtonLeft
		case 1:
			button = MouseButtonMiddle
		case 2:
			button = MouseButtonRight
		case 3:
			button = MouseButtonNone
		}
	}

	motion := mask&0x20 != 0
	var typ MouseEventType
	switch {
	case motion && button == MouseButtonNone:
		typ = MouseMotion
	case final == 'm':
		typ = MouseRelease
	case motion:
		typ = MouseDrag
	default:
		typ = MousePress
	}

	return Result{Event: Mouse{
		Col:    col,
		Row:    row,
		Button: button,
		Mods:   mods,
		Type:   typ,
	}, N: n}, nil
}

// findST locates the first string terminator (ESC \) at or after start.
// end is the terminator's offset, n the total length through it.
func findST(b []byte, start int) (end, n int, ok bool) {
	for i := start; i < len(b); i++ {
		if b[i] == 0x1b {
			if i+1 >= len(b) {
				return 0, 0, false
			}
			if b[i+1] == '\\' {
				return i, i + 2, true
			}
		}
	}
	return 0, 0, false
}

func (p *Parser) parseOSC(b []byte) (Result, error) {
	// OSC terminates with BEL or ST.
	end := -1
	n := 0
	for i := 2; i < len(b); i++ {
		if b[i] == 0x07 {
			end = i
			n = i + 1
			break
		}
		if b[i] == 0x1b {
			if i+1 >= len(b) {
				return Result{}, nil
			}
			if b[i+1] == '\\' {
				end = i
				n = i + 2
				break
			}
		}
	}
	if end < 0 {
		return Result{}, nil
	}
	body := string(b[2:end])

	ps, rest, _ := strings.Cut(body, ";")
	switch ps {
	case "4":
		idxStr, spec, found := strings.Cut(rest, ";")
		if !found {
			break
		}
		idx, err := strconv.Atoi(idxStr)
		if err != nil || idx < 0 || idx > 255 {
			break
		}
		c, err := parseXColor(spec)
		if err != nil {
			break
		}
		return Result{Event: ColorReport{Source: ColorSourcePalette, Index: uint8(idx), Color: c}, N: n}, nil
	case "10", "11", "12":
		c, err := parseXColor(rest)
		if err != nil {
			break
		}
		source := ColorSourceForeground
		switch ps {
		case "11":
			source = ColorSourceBackground
		case "12":
			source = ColorSourceCursor
		}
		return Result{Event: ColorReport{Source: source, Color: c}, N: n}, nil
	case "52":
		target, payload, found := strings.Cut(rest, ";")
		if !found || !strings.Contains(target, "c") {
			break
		}
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			break
		}
		return Result{Event: Paste(data), N: n}, nil
	}

	logger.Debugf("unknown osc sequence: %q", body)
	return Result{N: n}, nil
}

// parseXColor parses an XParseColor-style rgb specification
// ("rgb:RRRR/GGGG/BBBB" with 1-4 hex digits per component, or "#RRGGBB").
func parseXColor(spec string) (Color, error) {
	if hexStr, ok := strings.CutPrefix(spec, "#"); ok && len(hexStr) == 6 {
		v, err := strconv.ParseUint(hexStr, 16, 32)
		if err != nil {
			return Color{}, err
		}
		return RGBColor(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}
	body, ok := strings.CutPrefix(spec, "rgb:")
	if !ok {
		return Color{}, errors.New("unrecognized color spec")
	}
	parts := strings.Split(body, "/")
	if len(parts) != 3 {
		return Color{}, errors.New("malformed rgb spec")
	}
	var out [3]uint8
	for i, part := range parts {
		if len(part) == 0 || len(part) > 4 {
			return Color{}, errors.New("malformed rgb component")
		}
		v, err := strconv.ParseUint(part, 16, 32)
		if err != nil {
			return Color{}, err
		}
		max := uint64(1)<<(4*len(part)) - 1
		out[i] = uint8(v * 255 / max)
	}
	return RGBColor(out[0], out[1], out[2]), nil
}

func (p *Parser) parseAPC(b []byte) (Result, error) {
	end, n, ok := findST(b, 2)
	if !ok {
		return Result{}, nil
	}
	if end > 2 && b[2] == 'G' {
		return Result{Event: CapKittyGraphics{}, N: n}, nil
	}
	return Result{N: n}, nil
}

// parseDCS skips device control strings, recognizing only the XTGETTCAP
// reply advertising truecolor support.
func (p *Parser) parseDCS(b []byte) (Result, error) {
	end, n, ok := findST(b, 2)
	if !ok {
		return Result{}, nil
	}
	body := string(b[2:end])
	// DCS 1 + r <hex-name>[=<hex-value>]: 524742 is hex for "RGB".
	if strings.HasPrefix(body, "1+r") && strings.Contains(body, "524742") {
		return Result{Event: CapRGB{}, N: n}, nil
	}
	return Result{N: n}, nil
}
