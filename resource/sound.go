// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package resource

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gazed/corevu/audiomix"
)

// soundChunkSamples bounds how many samples per channel live in one
// audiomix.Chunk, so a long clip streams in pieces instead of handing
// the mixer one giant allocation.
const soundChunkSamples = 4096

// wavHeader is the 44-byte fixed RIFF/WAVE PCM header.
type wavHeader struct {
	RiffID      [4]byte
	FileSize    uint32
	WaveID      [4]byte
	Fmt         [4]byte
	FmtSize     uint32
	AudioFormat uint16
	Channels    uint16
	Frequency   uint32
	ByteRate    uint32
	BlockAlign  uint16
	SampleBits  uint16
	DataID      [4]byte
	DataSize    uint32
}

// DecodeWav reads a RIFF/WAVE PCM file into an audiomix.Clip, resampling
// 8-bit and 16-bit integer samples to the [-1, 1] float32 range the mixer
// expects. Only uncompressed PCM (AudioFormat == 1) is supported.
func DecodeWav(path string) (*audiomix.Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("resource: open sound %s: %w", path, err)
	}
	defer f.Close()

	var hdr wavHeader
	if err := binary.Read(f, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("resource: wav header %s: %w", path, err)
	}
	if string(hdr.RiffID[:]) != "RIFF" || string(hdr.WaveID[:]) != "WAVE" {
		return nil, fmt.Errorf("resource: %s is not a RIFF/WAVE file", path)
	}
	if hdr.AudioFormat != 1 {
		return nil, fmt.Errorf("resource: %s uses unsupported wav format %d", path, hdr.AudioFormat)
	}
	if hdr.SampleBits != 8 && hdr.SampleBits != 16 {
		return nil, fmt.Errorf("resource: %s has unsupported sample depth %d", path, hdr.SampleBits)
	}

	data := make([]byte, hdr.DataSize)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, fmt.Errorf("resource: %s sample data: %w", path, err)
	}

	channels := int(hdr.Channels)
	bytesPerSample := int(hdr.SampleBits) / 8
	frameSize := bytesPerSample * channels
	frameCount := len(data) / frameSize

	clip := &audiomix.Clip{}
	for start := 0; start < frameCount; start += soundChunkSamples {
		n := soundChunkSamples
		if start+n > frameCount {
			n = frameCount - start
		}
		chunk := audiomix.Chunk{
			Samples:     make([][]float32, channels),
			SampleCount: n,
		}
		for c := 0; c < channels; c++ {
			chunk.Samples[c] = make([]float32, n)
		}
		for i := 0; i < n; i++ {
			frame := data[(start+i)*frameSize : (start+i+1)*frameSize]
			for c := 0; c < channels; c++ {
				sample := frame[c*bytesPerSample : (c+1)*bytesPerSample]
				switch hdr.SampleBits {
				case 8:
					chunk.Samples[c][i] = float32(int16(sample[0])-128) / 128
				case 16:
					v := int16(binary.LittleEndian.Uint16(sample))
					chunk.Samples[c][i] = float32(v) / 32768
				}
			}
		}
		clip.Chunks = append(clip.Chunks, chunk)
	}
	return clip, nil
}

// soundLoader implements Loader for KindSound, decoding WAV files from a
// base directory into audiomix.Clip values.
type soundLoader struct {
	baseDir string
}

// NewSoundLoader creates a Loader that resolves sound names relative to
// baseDir.
func NewSoundLoader(baseDir string) Loader {
	return &soundLoader{baseDir: baseDir}
}

func (l *soundLoader) Load(name string) (any, error) {
	return DecodeWav(filepath.Join(l.baseDir, name))
}

func (l *soundLoader) Release(payload any) {}
