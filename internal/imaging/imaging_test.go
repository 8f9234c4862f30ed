package imaging

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"
)

func encode(t *testing.T, enc func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	if err := enc(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestSniff_Signatures(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want Format
	}{
		{"png", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0}, PNG},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, JPEG},
		{"gif87", []byte("GIF87a trailing"), GIF},
		{"gif89", []byte("GIF89a trailing"), GIF},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), WEBP},
		{"text", []byte("hello world, definitely text"), Unknown},
		{"empty", nil, Unknown},
		{"short", []byte{0x89, 'P'}, Unknown},
		{"riff-not-webp", []byte("RIFF\x00\x00\x00\x00WAVEfmt "), Unknown},
	}
	for _, tc := range cases {
		if got := Sniff(tc.data); got != tc.want {
			t.Errorf("%s: Sniff = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFormatString(t *testing.T) {
	if PNG.String() != "png" || JPEG.String() != "jpeg" || GIF.String() != "gif" ||
		WEBP.String() != "webp" || Unknown.String() != "unknown" {
		t.Error("unexpected format names")
	}
}

func TestIsImage(t *testing.T) {
	if IsImage([]byte("plain text")) {
		t.Error("expected text rejected")
	}
	if !IsImage([]byte{0xFF, 0xD8, 0xFF, 0xE1}) {
		t.Error("expected jpeg signature accepted")
	}
}

func TestValidate_RealEncodings(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"png", encode(t, func(b *bytes.Buffer, img image.Image) error { return png.Encode(b, img) })},
		{"jpeg", encode(t, func(b *bytes.Buffer, img image.Image) error { return jpeg.Encode(b, img, nil) })},
		{"gif", encode(t, func(b *bytes.Buffer, img image.Image) error { return gif.Encode(b, img, nil) })},
	}
	for _, tc := range cases {
		w, h, err := Validate(tc.data)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
			continue
		}
		if w != 2 || h != 3 {
			t.Errorf("%s: expected 2x3, got %dx%d", tc.name, w, h)
		}
	}
}

func TestValidate_RejectsUnrecognized(t *testing.T) {
	if _, _, err := Validate([]byte("not an image")); err == nil {
		t.Error("expected error for unrecognized payload")
	}
}

func TestValidate_RejectsTruncated(t *testing.T) {
	data := encode(t, func(b *bytes.Buffer, img image.Image) error { return png.Encode(b, img) })
	if _, _, err := Validate(data[:12]); err == nil {
		t.Error("expected error for truncated header")
	}
}
