package vtcore

import "testing"

func TestDecoder_ASCII(t *testing.T) {
	d := newDecoder(nil)
	r, n, ok := d.decodeNext([]byte("A"))
	if !ok || r != 'A' || n != 1 {
		t.Fatalf("got (%q, %d, %v), want ('A', 1, true)", r, n, ok)
	}
}

func TestDecoder_MultiByteWhole(t *testing.T) {
	d := newDecoder(nil)
	r, n, ok := d.decodeNext([]byte("€"))
	if !ok || r != '€' || n != 3 {
		t.Fatalf("got (%q, %d, %v), want ('€', 3, true)", r, n, ok)
	}
}

func TestDecoder_SplitAcrossCalls(t *testing.T) {
	d := newDecoder(nil)
	euro := []byte("€")
	_, n, ok := d.decodeNext(euro[:1])
	if ok || n != 1 {
		t.Fatalf("first call: got (%d, %v), want (1, false)", n, ok)
	}
	r, n, ok := d.decodeNext(euro[1:])
	if !ok || r != '€' || n != 2 {
		t.Fatalf("second call: got (%q, %d, %v), want ('€', 2, true)", r, n, ok)
	}
}

func TestDecoder_InvalidLeadByteSkipsOne(t *testing.T) {
	d := newDecoder(nil)
	r, n, ok := d.decodeNext([]byte{0xFF, 'A'})
	if !ok || r != 0xFFFD || n != 1 {
		t.Fatalf("got (%q, %d, %v), want (RuneError, 1, true)", r, n, ok)
	}
}

func TestDecoder_SplitThenInvalidResyncs(t *testing.T) {
	d := newDecoder(nil)
	_, _, ok := d.decodeNext([]byte{0xE2}) // expects 2 more continuation bytes
	if ok {
		t.Fatalf("expected partial sequence to not yet be ok")
	}
	// Feeding a non-continuation byte should resync, not hang forever.
	r, _, ok := d.decodeNext([]byte{'A'})
	if !ok || r != 0xFFFD {
		t.Fatalf("got (%q, %v), want (RuneError, true) after resync", r, ok)
	}
}
