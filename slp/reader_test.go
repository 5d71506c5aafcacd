package slp

import (
	"errors"
	"math"
	"testing"
)

func TestReadU8(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	v, err := readU8(data, 1)
	if err != nil || v != 0x02 {
		t.Fatalf("got (%v, %v), want (0x02, nil)", v, err)
	}

	if _, err := readU8(data, 3); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestReadBE2U(t *testing.T) {
	data := []byte{0x12, 0x34}
	v, err := readBE2U(data, 0)
	if err != nil || v != 0x1234 {
		t.Fatalf("got (%#x, %v), want (0x1234, nil)", v, err)
	}
}

func TestReadBE4U(t *testing.T) {
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	v, err := readBE4U(data, 0)
	if err != nil || v != 0xDEADBEEF {
		t.Fatalf("got (%#x, %v), want (0xDEADBEEF, nil)", v, err)
	}
}

func TestReadBE4S_Negative(t *testing.T) {
	data := []byte{0xFF, 0xFF, 0xFF, 0x85} // -123
	v, err := readBE4S(data, 0)
	if err != nil || v != -123 {
		t.Fatalf("got (%d, %v), want (-123, nil)", v, err)
	}
}

func TestReadBE4F(t *testing.T) {
	bits := math.Float32bits(3.5)
	data := []byte{byte(bits >> 24), byte(bits >> 16), byte(bits >> 8), byte(bits)}
	v, err := readBE4F(data, 0)
	if err != nil || v != 3.5 {
		t.Fatalf("got (%v, %v), want (3.5, nil)", v, err)
	}
}

func TestSameBytes(t *testing.T) {
	data := []byte{'a', 'b', 'c', 'd'}
	ok, err := sameBytes(data, 1, []byte{'b', 'c'})
	if err != nil || !ok {
		t.Fatalf("expected match, got (%v, %v)", ok, err)
	}

	ok, err = sameBytes(data, 0, []byte{'x'})
	if err != nil || ok {
		t.Fatalf("expected mismatch, got (%v, %v)", ok, err)
	}

	if _, err := sameBytes(data, 2, []byte{'c', 'd', 'e'}); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}
