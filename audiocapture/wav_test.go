package audiocapture

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func TestEncodeWAVHeader(t *testing.T) {
	samples := []float32{0, 0.5, -0.5, 1, -1}
	wav := EncodeWAV(samples, 48000)

	if len(wav) != 44+len(samples)*2 {
		t.Fatalf("payload length = %d, want %d", len(wav), 44+len(samples)*2)
	}

	if !bytes.Equal(wav[0:4], []byte("RIFF")) {
		t.Errorf("missing RIFF marker: %q", wav[0:4])
	}
	if got := binary.LittleEndian.Uint32(wav[4:8]); got != uint32(36+len(samples)*2) {
		t.Errorf("RIFF chunk size = %d, want %d", got, 36+len(samples)*2)
	}
	if !bytes.Equal(wav[8:12], []byte("WAVE")) {
		t.Errorf("missing WAVE marker: %q", wav[8:12])
	}
	if !bytes.Equal(wav[12:16], []byte("fmt ")) {
		t.Errorf("missing fmt chunk: %q", wav[12:16])
	}
	if got := binary.LittleEndian.Uint16(wav[20:22]); got != 1 {
		t.Errorf("audio format = %d, want 1 (PCM)", got)
	}
	if got := binary.LittleEndian.Uint16(wav[22:24]); got != 1 {
		t.Errorf("channels = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint32(wav[24:28]); got != 48000 {
		t.Errorf("sample rate = %d, want 48000", got)
	}
	if got := binary.LittleEndian.Uint32(wav[28:32]); got != 96000 {
		t.Errorf("byte rate = %d, want 96000", got)
	}
	if got := binary.LittleEndian.Uint16(wav[32:34]); got != 2 {
		t.Errorf("block align = %d, want 2", got)
	}
	if got := binary.LittleEndian.Uint16(wav[34:36]); got != 16 {
		t.Errorf("bits per sample = %d, want 16", got)
	}
	if !bytes.Equal(wav[36:40], []byte("data")) {
		t.Errorf("missing data chunk: %q", wav[36:40])
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != uint32(len(samples)*2) {
		t.Errorf("data size = %d, want %d", got, len(samples)*2)
	}
}

func TestPCM16Scaling(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want int16
	}{
		{"zero", 0, 0},
		{"full positive", 1, 32767},
		{"full negative", -1, -32768},
		{"half positive", 0.5, 16384}, // round(0.5 * 32767)
		{"half negative", -0.5, -16384},
		{"clamped above", 1.5, 32767},
		{"clamped below", -1.5, -32768},
		{"small positive", 0.0001, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pcm16(tt.in); got != tt.want {
				t.Errorf("pcm16(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncodeWAVSampleBytes(t *testing.T) {
	wav := EncodeWAV([]float32{1, -1}, 16000)

	data := wav[44:]
	if got := int16(binary.LittleEndian.Uint16(data[0:2])); got != 32767 {
		t.Errorf("sample 0 = %d, want 32767", got)
	}
	if got := int16(binary.LittleEndian.Uint16(data[2:4])); got != -32768 {
		t.Errorf("sample 1 = %d, want -32768", got)
	}
}

func TestRMS(t *testing.T) {
	tests := []struct {
		name    string
		samples []float32
		want    float64
	}{
		{"empty", nil, 0},
		{"silence", make([]float32, 2048), 0},
		{"full scale", []float32{1, -1, 1, -1}, 1},
		{"half scale", []float32{0.5, -0.5}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RMS(tt.samples)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("RMS = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRMSClamped(t *testing.T) {
	// Out-of-range input must still produce a loudness in [0, 1].
	if got := RMS([]float32{4, -4, 4, -4}); got != 1 {
		t.Errorf("RMS of clipped signal = %v, want 1", got)
	}
}
