// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package audiomix mixes a set of live voices into a fixed-rate stereo
// PCM ring buffer, a direct Go port of
// original_source/Engine/src/Audio/Audio.cpp's Update/FillBuffer/
// OutputSound, with the hand-rolled SSE intrinsics expressed as plain
// float32 arithmetic.
package audiomix

// Channel selects which settings volume category a voice belongs to,
// matching original_source's AudioType (music vs. sfx).
type Channel int

const (
	ChannelMusic Channel = iota
	ChannelSFX
)

// falloffScale shrinks a positional voice's volume by squared distance,
// matching original_source's FALLOFF_SCALE.
const falloffScale = 0.2

// Clip is a decoded, resampled-to-device-rate mono or stereo sound
// asset split into chunks so long clips can be streamed incrementally;
// each Chunk holds its span's float32 data as one slice per channel.
type Clip struct {
	Chunks []Chunk
}

// Chunk is one contiguous span of a Clip's samples, per channel.
type Chunk struct {
	Samples     [][]float32 // Samples[channel][sampleIndex]
	SampleCount int
}

// Voice is one active playback of a Clip: its own cursor, volume, pitch,
// and spatial position, independent of every other voice playing the
// same clip.
type Voice struct {
	clip    *Clip
	chunk   int // index into clip.Chunks
	channel Channel

	Volume float64
	Pitch  float64

	// Global voices ignore the listener and play at uniform volume
	// across channels; positional voices attenuate and pan based on
	// distance and horizontal offset from the listener.
	Global   bool
	Position [2]float64

	Loop bool

	samplesPlayed float64
	finished      bool
}

// NewGlobalVoice starts a non-positional voice playing clip from its
// first chunk.
func NewGlobalVoice(clip *Clip, channel Channel, volume, pitch float64, loop bool) *Voice {
	return &Voice{clip: clip, channel: channel, Volume: volume, Pitch: pitch, Global: true, Loop: loop}
}

// NewSpatialVoice starts a positional voice at the given world position.
func NewSpatialVoice(clip *Clip, channel Channel, position [2]float64, volume, pitch float64, loop bool) *Voice {
	return &Voice{clip: clip, channel: channel, Volume: volume, Pitch: pitch, Position: position, Loop: loop}
}

// Finished reports whether this voice has played through its clip
// without looping and should be released.
func (v *Voice) Finished() bool { return v.finished }

func (v *Voice) currentChunk() *Chunk {
	if v.chunk < 0 || v.chunk >= len(v.clip.Chunks) {
		return nil
	}
	return &v.clip.Chunks[v.chunk]
}
