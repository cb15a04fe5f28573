// ABOUTME: Minimal PCM WAV synthesis for the built-in beep.
// ABOUTME: Writes a mono 16-bit sine tone with a short fade to avoid clicks.
package sound

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
)

const (
	sampleRate = 44100
	beepHz     = 880
	beepMillis = 150
	fadeMillis = 10
)

// WriteBeep writes the beep to path atomically.
func WriteBeep(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".beep-*.wav")
	if err != nil {
		return fmt.Errorf("create asset: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := EncodeTone(tmp, beepHz, beepMillis); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write asset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close asset: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("install asset: %w", err)
	}
	return nil
}

// EncodeTone writes a WAV sine tone of the given frequency and length.
func EncodeTone(w io.Writer, hz float64, millis int) error {
	n := sampleRate * millis / 1000
	fade := sampleRate * fadeMillis / 1000

	pcm := make([]int16, n)
	for i := range pcm {
		amp := 0.5
		switch {
		case i < fade:
			amp *= float64(i) / float64(fade)
		case i > n-fade:
			amp *= float64(n-i) / float64(fade)
		}
		pcm[i] = int16(amp * math.MaxInt16 * math.Sin(2*math.Pi*hz*float64(i)/sampleRate))
	}

	dataSize := uint32(n * 2)
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, struct {
		Size          uint32
		Format        uint16
		Channels      uint16
		SampleRate    uint32
		ByteRate      uint32
		BlockAlign    uint16
		BitsPerSample uint16
	}{16, 1, 1, sampleRate, sampleRate * 2, 2, 16})
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, dataSize)
	_ = binary.Write(&buf, binary.LittleEndian, pcm)

	_, err := w.Write(buf.Bytes())
	return err
}
