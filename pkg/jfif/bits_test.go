package jfif

import (
	"bytes"
	"testing"
)

func TestReadBits(t *testing.T) {
	data := []byte{0b10110010, 0b11000011}
	r := NewReader(bytes.NewReader(data))

	// Read 3 bits (101) = 5
	val, err := r.ReadBits(3)
	if err != nil {
		t.Fatalf("ReadBits failed: %v", err)
	}
	if val != 5 {
		t.Errorf("Expected 5, got %d", val)
	}

	// Read 5 bits (10010) = 18
	val, err = r.ReadBits(5)
	if err != nil {
		t.Fatalf("ReadBits failed: %v", err)
	}
	if val != 18 {
		t.Errorf("Expected 18, got %d", val)
	}

	// Read 4 bits (1100) = 12
	val, err = r.ReadBits(4)
	if err != nil {
		t.Fatalf("ReadBits failed: %v", err)
	}
	if val != 12 {
		t.Errorf("Expected 12, got %d", val)
	}
}

func TestReadBit(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0b10110010}))

	want := []bool{true, false, true, true, false, false, true, false}
	for i, w := range want {
		got, err := r.ReadBit()
		if err != nil {
			t.Fatalf("bit %d: %v", i, err)
		}
		if got != w {
			t.Errorf("bit %d: expected %v, got %v", i, w, got)
		}
	}

	if _, err := r.ReadBit(); err != ErrShortStream {
		t.Errorf("expected ErrShortStream past the end, got %v", err)
	}
}

func TestReadBits_ThroughStuffing(t *testing.T) {
	// 0xFF 0x00 feeds a logical 0xFF into the accumulator.
	r := NewReader(bytes.NewReader([]byte{0xFF, 0x00, 0x0F}))

	val, err := r.ReadBits(12)
	if err != nil {
		t.Fatal(err)
	}
	if val != 0xFF0 {
		t.Errorf("expected 0xFF0, got %#x", val)
	}
	if r.BitsHeld() != 4 {
		t.Errorf("expected 4 bits held, got %d", r.BitsHeld())
	}
}

func TestEnsureNBits_MaskInvariant(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x01, 0x02, 0x03}))

	if err := r.EnsureNBits(1); err != nil {
		t.Fatal(err)
	}
	if r.bits.m != 1<<7 || r.bits.n != 8 {
		t.Fatalf("after one byte: m=%#x n=%d", r.bits.m, r.bits.n)
	}

	if err := r.EnsureNBits(9); err != nil {
		t.Fatal(err)
	}
	if r.bits.m != 1<<15 || r.bits.n != 16 {
		t.Fatalf("after two bytes: m=%#x n=%d", r.bits.m, r.bits.n)
	}
}

func TestResetBits(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0xAB, 0xCD}))

	if err := r.EnsureNBits(16); err != nil {
		t.Fatal(err)
	}
	r.ResetBits()
	if r.bits != (bits{}) {
		t.Errorf("expected empty accumulator, got %+v", r.bits)
	}
	if r.BitsHeld() != 0 {
		t.Errorf("expected 0 bits held, got %d", r.BitsHeld())
	}
}
