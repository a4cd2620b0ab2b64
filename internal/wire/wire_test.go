package wire

import (
	"bytes"
	"errors"
	"testing"
)

func roundTrip(t *testing.T, build func(*Encoder)) *Decoder {
	t.Helper()
	enc := NewEncoder(64)
	build(enc)
	raw, err := Encode(5, 7, enc.Bytes())
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	dec := NewDecoder(raw)
	id, opcode, size, err := dec.DecodeHeader()
	if err != nil {
		t.Fatalf("decode header failed: %v", err)
	}
	if id != 5 || opcode != 7 || size != len(raw) {
		t.Fatalf("unexpected header: id=%d opcode=%d size=%d", id, opcode, size)
	}
	return dec
}

func TestRoundTripInt32(t *testing.T) {
	dec := roundTrip(t, func(e *Encoder) { e.PutInt32(-42) })
	v, err := dec.Int32()
	if err != nil || v != -42 {
		t.Fatalf("got %d, %v", v, err)
	}
}

func TestRoundTripFixed(t *testing.T) {
	dec := roundTrip(t, func(e *Encoder) { e.PutFixed(FixedFromFloat(3.5)) })
	v, err := dec.Fixed()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Float() != 3.5 {
		t.Fatalf("got %v want 3.5", v.Float())
	}
}

func TestRoundTripStringEmbeddedNonASCII(t *testing.T) {
	s := "héllo wörld éè"
	dec := roundTrip(t, func(e *Encoder) { e.PutString(s) })
	got, err := dec.String()
	if err != nil || got != s {
		t.Fatalf("got %q, %v want %q", got, err, s)
	}
}

func TestRoundTripEmptyString(t *testing.T) {
	dec := roundTrip(t, func(e *Encoder) { e.PutString("") })
	got, err := dec.String()
	if err != nil || got != "" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestRoundTripZeroLengthArray(t *testing.T) {
	dec := roundTrip(t, func(e *Encoder) { e.PutArray(nil) })
	got, err := dec.Array()
	if err != nil || len(got) != 0 {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestRoundTripArray(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5}
	dec := roundTrip(t, func(e *Encoder) { e.PutArray(payload) })
	got, err := dec.Array()
	if err != nil || !bytes.Equal(got, payload) {
		t.Fatalf("got %v, %v want %v", got, err, payload)
	}
}

func TestRoundTripNewIDMax(t *testing.T) {
	dec := roundTrip(t, func(e *Encoder) { e.PutNewID(0xFFFFFFFF) })
	got, err := dec.NewID()
	if err != nil || got != 0xFFFFFFFF {
		t.Fatalf("got %d, %v", got, err)
	}
}

func TestRoundTripNewIDFull(t *testing.T) {
	dec := roundTrip(t, func(e *Encoder) { e.PutNewIDFull("xdg_wm_base", 3, 10) })
	iface, err := dec.String()
	if err != nil || iface != "xdg_wm_base" {
		t.Fatalf("got %q, %v", iface, err)
	}
	version, err := dec.Uint32()
	if err != nil || version != 3 {
		t.Fatalf("got %d, %v", version, err)
	}
	id, err := dec.NewID()
	if err != nil || id != 10 {
		t.Fatalf("got %d, %v", id, err)
	}
}

func TestDecodeHeaderRejectsTruncatedBuffer(t *testing.T) {
	dec := NewDecoder([]byte{1, 2, 3})
	if _, _, _, err := dec.DecodeHeader(); !errors.Is(err, ErrMessageTooSmall) {
		t.Fatalf("expected ErrMessageTooSmall, got %v", err)
	}
}

func TestDecodeHeaderRejectsUnalignedSize(t *testing.T) {
	raw, err := Encode(1, 2, []byte{0, 0, 0})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	// Size field in the wire header reports headerSize+3 = 11, not a
	// multiple of 4.
	dec := NewDecoder(raw)
	if _, _, _, err := dec.DecodeHeader(); !errors.Is(err, ErrNotWordAligned) {
		t.Fatalf("expected ErrNotWordAligned, got %v", err)
	}
}

func TestStringRejectsMissingNulTerminator(t *testing.T) {
	enc := NewEncoder(16)
	enc.PutUint32(4) // claims a 4-byte string (3 chars + NUL)
	enc.buf = append(enc.buf, 'a', 'b', 'c', 'x') // no NUL, already padded
	raw, err := Encode(1, 0, enc.Bytes())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	dec := NewDecoder(raw)
	if _, _, _, err := dec.DecodeHeader(); err != nil {
		t.Fatalf("header: %v", err)
	}
	if _, err := dec.String(); !errors.Is(err, ErrStringNotTerminated) {
		t.Fatalf("expected ErrStringNotTerminated, got %v", err)
	}
}

func TestFDRequiredButQueueEmpty(t *testing.T) {
	dec := NewDecoder(nil)
	if _, err := dec.FD(); !errors.Is(err, ErrNoFileDescriptor) {
		t.Fatalf("expected ErrNoFileDescriptor, got %v", err)
	}
}

func TestFDConsumedInOrder(t *testing.T) {
	dec := NewDecoder(nil)
	dec.Reset(nil, []int{11, 22, 33})
	for _, want := range []int{11, 22, 33} {
		got, err := dec.FD()
		if err != nil || got != want {
			t.Fatalf("got %d, %v want %d", got, err, want)
		}
	}
}

func TestMessageTooLarge(t *testing.T) {
	_, err := Encode(1, 0, make([]byte, maxMessageSize))
	if !errors.Is(err, ErrMessageTooLarge) {
		t.Fatalf("expected ErrMessageTooLarge, got %v", err)
	}
}
