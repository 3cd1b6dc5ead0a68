package message

import (
	"bytes"
	"strings"
	"testing"
)

func TestMessageOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetNoColor(true)
	defer func() {
		SetQuiet(false)
		SetSilent(false)
	}()

	Info("counting %d projects", 3)
	Success("done")
	if out := buf.String(); !strings.Contains(out, "[*] counting 3 projects") || !strings.Contains(out, "[+] done") {
		t.Errorf("unexpected output: %q", out)
	}

	buf.Reset()
	SetQuiet(true)
	Info("should be suppressed")
	Warning("still visible")
	if out := buf.String(); strings.Contains(out, "suppressed") || !strings.Contains(out, "[!] still visible") {
		t.Errorf("quiet mode output wrong: %q", out)
	}

	buf.Reset()
	SetSilent(true)
	Warning("gone")
	Error("gone")
	Critical("never suppressed")
	if out := buf.String(); strings.Contains(out, "gone") || !strings.Contains(out, "never suppressed") {
		t.Errorf("silent mode output wrong: %q", out)
	}
}
