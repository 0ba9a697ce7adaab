package vaxis

import (
	"errors"
	"fmt"
	"time"
)

// QueryTerminal sends the capability probe bundle and blocks until the DA1
// terminator arrives or the timeout passes. A timeout is not an error:
// discovery finalizes with whatever was observed. The input task must be
// feeding bytes to the parser while this waits.
func (vx *Vaxis) QueryTerminal(timeout time.Duration) error {
	vx.parser.capQueriesOutstanding = true

	bw := vx.bw
	bw.WriteString(decrqmSGRPixels)
	bw.WriteString(decrqmUnicode)
	bw.WriteString(decrqmColorScheme)
	bw.WriteString(inBandResizeSet)
	bw.WriteString(explicitWidthQuery)
	bw.WriteString(scaledTextQuery)
	bw.WriteString(xtversion)
	bw.WriteString(xtgettcapRGB)
	if !vx.noKitty {
		bw.WriteString(kittyKBQuery)
		bw.WriteString(kittyGraphicsQuery)
	}
	bw.WriteString(da1)
	if err := bw.Flush(); err != nil {
		return err
	}

	select {
	case <-vx.queriesDone:
	case <-time.After(timeout):
		logger.Debug("capability query timed out; proceeding with observed features")
		vx.parser.capQueriesOutstanding = false
	}
	return nil
}

// finishQueries latches the discovered capabilities into active features.
// Runs on the first DA1 observation.
func (vx *Vaxis) finishQueries() {
	vx.parser.capQueriesOutstanding = false
	vx.queriesOnce.Do(func() {
		logger.WithField("caps", fmt.Sprintf("%+v", vx.caps)).Debug("capability discovery complete")
		if vx.caps.KittyKeyboard && !vx.noKitty {
			fmt.Fprintf(vx.bw, kittyKBPush, vx.kittyFlags)
		}
		// Explicit width supersedes mode 2027: when both are present the
		// mode stays off and widths ride the OSC 66 form.
		if vx.caps.Unicode && !vx.caps.ExplicitWidth {
			vx.bw.WriteString(unicodeSet)
			if !vx.methodForced {
				vx.method = MethodUnicode
				vx.screen.method = MethodUnicode
			}
		}
		if vx.caps.ColorSchemeUpdates {
			vx.bw.WriteString(colorSchemeSet)
		}
		if err := vx.bw.Flush(); err != nil {
			logger.WithError(err).Debug("flush after capability latch")
		}
		close(vx.queriesDone)
	})
}

// ErrClipboardNotSupported is returned by clipboard operations when no
// transport is available.
var ErrClipboardNotSupported = errors.New("clipboard not supported")
