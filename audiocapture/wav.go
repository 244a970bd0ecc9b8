package audiocapture

import (
	"bytes"
	"math"
)

// wavHeaderSize is the standard RIFF/WAVE header length for 16-bit PCM.
const wavHeaderSize = 44

// EncodeWAV encodes float32 samples in [-1, 1] as a mono 16-bit little-endian
// PCM WAV payload at the given sample rate. The byte shape is normative for
// whisper compatibility: negative samples scale by 32768, non-negative by
// 32767, clamped before scaling.
func EncodeWAV(samples []float32, sampleRate int) []byte {
	dataSize := len(samples) * 2

	buf := bytes.NewBuffer(make([]byte, 0, wavHeaderSize+dataSize))

	buf.WriteString("RIFF")
	writeUint32LE(buf, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	writeUint32LE(buf, 16)                   // fmt chunk size
	writeUint16LE(buf, 1)                    // PCM
	writeUint16LE(buf, 1)                    // mono
	writeUint32LE(buf, uint32(sampleRate))   // sample rate
	writeUint32LE(buf, uint32(sampleRate*2)) // byte rate
	writeUint16LE(buf, 2)                    // block align
	writeUint16LE(buf, 16)                   // bits per sample

	buf.WriteString("data")
	writeUint32LE(buf, uint32(dataSize))

	for _, s := range samples {
		writeInt16LE(buf, pcm16(s))
	}

	return buf.Bytes()
}

// pcm16 converts one float sample to a signed 16-bit value, clamping to
// [-1, 1] and using the asymmetric scale the recognition engine expects.
func pcm16(v float32) int16 {
	clamped := float64(v)
	if clamped > 1 {
		clamped = 1
	} else if clamped < -1 {
		clamped = -1
	}
	if clamped < 0 {
		return int16(math.Round(clamped * 32768))
	}
	return int16(math.Round(clamped * 32767))
}

// RMS computes the root-mean-square loudness of a time-domain sample window,
// clamped to [0, 1].
func RMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}

	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	rms := math.Sqrt(sum / float64(len(samples)))
	return math.Min(1, math.Max(0, rms))
}

func writeUint16LE(w *bytes.Buffer, v uint16) {
	w.WriteByte(byte(v))
	w.WriteByte(byte(v >> 8))
}

func writeUint32LE(w *bytes.Buffer, v uint32) {
	w.WriteByte(byte(v))
	w.WriteByte(byte(v >> 8))
	w.WriteByte(byte(v >> 16))
	w.WriteByte(byte(v >> 24))
}

func writeInt16LE(w *bytes.Buffer, v int16) {
	w.WriteByte(byte(v))
	w.WriteByte(byte(v >> 8))
}
