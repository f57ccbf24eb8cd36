package vtcore

import "testing"

func TestHandleKeypress_ArrowKeys(t *testing.T) {
	e := newTestEngine(5, 3)
	var got []byte
	e.cb.WriteHost = func(b []byte) { got = append(got, b...) }

	cases := []struct {
		key  Keysym
		want string
	}{
		{KeyUp, "\x1b[A"},
		{KeyDown, "\x1b[B"},
		{KeyLeft, "\x1b[D"},
		{KeyRight, "\x1b[C"},
	}
	for _, c := range cases {
		got = nil
		if !e.HandleKeypress(c.key, 0) {
			t.Fatalf("HandleKeypress(%v) = false, want true", c.key)
		}
		if string(got) != c.want {
			t.Errorf("%v -> %q, want %q", c.key, got, c.want)
		}
	}
}

func TestHandleKeypress_HomeEndPageUpPageDown(t *testing.T) {
	e := newTestEngine(5, 3)
	var got []byte
	e.cb.WriteHost = func(b []byte) { got = b }

	cases := []struct {
		key  Keysym
		want string
	}{
		{KeyHome, "\x1b[H"},
		{KeyEnd, "\x1b[F"},
		{KeyPageUp, "\x1b[5~"},
		{KeyPageDown, "\x1b[6~"},
	}
	for _, c := range cases {
		e.HandleKeypress(c.key, 0)
		if string(got) != c.want {
			t.Errorf("%v -> %q, want %q", c.key, got, c.want)
		}
	}
}

func TestHandleKeypress_InsertDeleteBackspace(t *testing.T) {
	e := newTestEngine(5, 3)
	var got []byte
	e.cb.WriteHost = func(b []byte) { got = b }

	e.HandleKeypress(KeyInsert, 0)
	if string(got) != "\x1b[2~" {
		t.Errorf("Insert -> %q, want %q", got, "\x1b[2~")
	}
	e.HandleKeypress(KeyDelete, 0)
	if string(got) != "\x1b[3~" {
		t.Errorf("Delete -> %q, want %q", got, "\x1b[3~")
	}
	e.HandleKeypress(KeyBackspace, 0)
	if string(got) != "\x7f" {
		t.Errorf("Backspace -> %q, want %q", got, "\x7f")
	}
}

func TestHandleKeypress_TabAndShiftTab(t *testing.T) {
	e := newTestEngine(5, 3)
	var got []byte
	e.cb.WriteHost = func(b []byte) { got = b }

	e.HandleKeypress(KeyTab, 0)
	if string(got) != "\t" {
		t.Errorf("Tab -> %q, want %q", got, "\t")
	}
	e.HandleKeypress(KeyTab, ModShift)
	if string(got) != "\x1b[Z" {
		t.Errorf("Shift+Tab -> %q, want %q", got, "\x1b[Z")
	}
}

func TestHandleKeypress_Escape(t *testing.T) {
	e := newTestEngine(5, 3)
	var got []byte
	e.cb.WriteHost = func(b []byte) { got = b }
	e.HandleKeypress(KeyEscape, 0)
	if string(got) != "\x1b" {
		t.Errorf("Escape -> %q, want ESC", got)
	}
}

func TestHandleKeypress_FunctionKeys(t *testing.T) {
	e := newTestEngine(5, 3)
	var got []byte
	e.cb.WriteHost = func(b []byte) { got = b }

	cases := []struct {
		key  Keysym
		want string
	}{
		{KeyF1, "\x1bOP"},
		{KeyF5, "\x1b[15~"},
		{KeyF12, "\x1b[24~"},
	}
	for _, c := range cases {
		e.HandleKeypress(c.key, 0)
		if string(got) != c.want {
			t.Errorf("%v -> %q, want %q", c.key, got, c.want)
		}
	}
}

func TestHandleKeypress_ReturnRespectsLNM(t *testing.T) {
	e := newTestEngine(5, 3)
	var got []byte
	e.cb.WriteHost = func(b []byte) { got = b }

	e.crlf = false
	e.HandleKeypress(KeyReturn, 0)
	if string(got) != "\r" {
		t.Errorf("Return with LNM off -> %q, want \\r", got)
	}

	e.crlf = true
	e.HandleKeypress(KeyReturn, 0)
	if string(got) != "\r\n" {
		t.Errorf("Return with LNM on -> %q, want \\r\\n", got)
	}
}

func TestHandleKeypress_AltPrefixesWithEscape(t *testing.T) {
	e := newTestEngine(5, 3)
	var got []byte
	e.cb.WriteHost = func(b []byte) { got = append(got, b...) }

	e.HandleKeypress(KeyUp, ModAlt)
	if string(got) != "\x1b\x1b[A" {
		t.Errorf("Alt+Up -> %q, want ESC-prefixed %q", got, "\x1b[A")
	}
}

func TestHandleKeypress_UnknownKeyReturnsFalse(t *testing.T) {
	e := newTestEngine(5, 3)
	called := false
	e.cb.WriteHost = func(b []byte) { called = true }
	if e.HandleKeypress(KeyF1, ModControl) {
		t.Error("a key/modifier combination absent from the table should return false")
	}
	if called {
		t.Error("a failed lookup should not write anything to the host")
	}
}
