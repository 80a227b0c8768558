// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package audiomix

import "math"

const (
	// SampleRate is the fixed output rate.
	SampleRate = 48000
	// Channels is the fixed stereo channel count.
	Channels = 2
	// BytesPerSample is 16-bit PCM times the channel count.
	BytesPerSample = 2 * Channels
	// maxPossibleOverrun pads the sample scratch buffer against the
	// device rounding bytesToWrite up past the nominal buffer size.
	maxPossibleOverrun = 32
)

// Device is the platform audio buffer a Mixer writes into: a
// DirectSound-style secondary buffer with play/write cursor query and a
// two-region lock/unlock pair, matching original_source's
// IDirectSoundBuffer usage.
type Device interface {
	// Cursors returns the device's current play and write byte
	// offsets. ok is false if the device is not ready (e.g. lost).
	Cursors() (play, write uint32, ok bool)

	// Lock reserves bytesToWrite bytes starting at byteToLock for
	// writing, returning up to two regions (the second is used when
	// the reservation wraps the ring buffer).
	Lock(byteToLock, bytesToWrite uint32) (region1, region2 []byte)

	// Unlock releases a previously locked region pair.
	Unlock(region1, region2 []byte)
}

// Mixer owns the live voice list and the per-update resample/pan/sum
// loop that fills a Device's ring buffer, a direct Go port of
// Audio::Update/FillBuffer/OutputSound.
type Mixer struct {
	MasterVolume float64
	MusicVolume  float64
	SfxVolume    float64

	TargetFrametime float64 // seconds per frame, drives byteToLock lookahead

	bufferSize         uint32
	safetyBytes        uint32
	runningSampleIndex uint32
	soundIsValid       bool

	listener *[2]float64
	voices   []*Voice

	scratch [Channels][]float32 // per-channel float accumulation buffer
	samples []int16             // interleaved int16 output scratch
}

// NewMixer returns a Mixer sized for a ringBufferSeconds-long device
// buffer at the fixed sample rate and channel count.
func NewMixer(ringBufferSeconds, targetFrametime float64) *Mixer {
	bufferSize := uint32(float64(SampleRate*BytesPerSample) * ringBufferSeconds)
	return &Mixer{
		MasterVolume:    1,
		MusicVolume:     1,
		SfxVolume:       1,
		TargetFrametime: targetFrametime,
		bufferSize:      bufferSize,
		safetyBytes:     uint32(float64(bufferSize) * targetFrametime / 2.0),
	}
}

// SetListener assigns (or clears, with nil) the spatial-audio listener
// position positional voices attenuate and pan against.
func (m *Mixer) SetListener(position *[2]float64) { m.listener = position }

// Play adds a voice to the mix. Voices are mixed in the order added and
// removed (in place) when they finish without looping.
func (m *Mixer) Play(v *Voice) { m.voices = append(m.voices, v) }

// Voices returns the live voice list, for stats/debugging.
func (m *Mixer) Voices() []*Voice { return m.voices }

// Update queries the device's cursors, computes the write region for
// this frame, mixes every live voice into it, and pushes the result.
// beginAudioTime is the elapsed time since this frame's input/physics
// work started (original_source's Time::TimeSinceLastFrame); deltaTime
// is the frame's total duration. Update is a no-op (soundIsValid clears)
// when the device reports no cursors, matching a lost or not-yet-ready
// buffer.
func (m *Mixer) Update(dev Device, beginAudioTime, deltaTime float64) error {
	play, write, ok := dev.Cursors()
	if !ok {
		m.soundIsValid = false
		return nil
	}
	if !m.soundIsValid {
		m.soundIsValid = true
		m.runningSampleIndex = write / BytesPerSample
	}

	byteToLock := (m.runningSampleIndex * BytesPerSample) % m.bufferSize
	expectedBytesPerFrame := uint32(float64(SampleRate*BytesPerSample) * m.TargetFrametime)

	secondsLeftUntilFlip := deltaTime - beginAudioTime
	if secondsLeftUntilFlip < 0 {
		secondsLeftUntilFlip = 0
	}
	expectedBytesUntilFlip := uint32(0)
	if deltaTime > 0 {
		expectedBytesUntilFlip = uint32((secondsLeftUntilFlip / deltaTime) * float64(expectedBytesPerFrame))
	}
	expectedFrameBoundaryBytes := play + expectedBytesUntilFlip

	safeWriteCursor := write + m.safetyBytes
	if write < play {
		safeWriteCursor += m.bufferSize
	}

	var targetCursor uint32
	if safeWriteCursor < expectedFrameBoundaryBytes {
		targetCursor = expectedFrameBoundaryBytes + expectedBytesPerFrame
	} else {
		targetCursor = write + expectedBytesPerFrame + m.safetyBytes
	}
	targetCursor %= m.bufferSize

	bytesToWrite := targetCursor - byteToLock
	if byteToLock > targetCursor {
		bytesToWrite += m.bufferSize
	}

	sampleCount := align8(bytesToWrite / BytesPerSample)
	bytesToWrite = sampleCount * BytesPerSample

	m.outputSound(int(sampleCount))
	m.fillBuffer(dev, byteToLock, bytesToWrite)
	return nil
}

func align8(v uint32) uint32 { return (v + 7) &^ 7 }

// outputSound mixes every live voice across sampleCount output frames
// into m.scratch, then converts and interleaves into m.samples,
// matching Audio::OutputSound minus its SSE intrinsics.
func (m *Mixer) outputSound(sampleCount int) {
	for c := 0; c < Channels; c++ {
		if cap(m.scratch[c]) < sampleCount {
			m.scratch[c] = make([]float32, sampleCount)
		} else {
			m.scratch[c] = m.scratch[c][:sampleCount]
			for i := range m.scratch[c] {
				m.scratch[c][i] = 0
			}
		}
	}

	live := m.voices[:0]
	for _, v := range m.voices {
		m.mixVoice(v, sampleCount)
		if v.finished {
			continue // non-looping voice played through; drop it from the mix
		}
		live = append(live, v)
	}
	m.voices = live

	need := sampleCount*BytesPerSample + maxPossibleOverrun
	if cap(m.samples) < need/2 {
		m.samples = make([]int16, need/2)
	} else {
		m.samples = m.samples[:need/2]
	}
	for i := range m.samples {
		m.samples[i] = 0
	}
	// Scratch holds [-1, 1] float samples; scale them to the int16 range.
	for i := 0; i < sampleCount; i++ {
		m.samples[i*Channels+0] = saturateInt16(m.scratch[0][i] * 32767)
		m.samples[i*Channels+1] = saturateInt16(m.scratch[1][i] * 32767)
	}
}

// mixVoice resamples one voice in 4-sample blocks with per-sample
// linear interpolation, advancing samplesPlayed by pitch*4 per block,
// and accumulates into m.scratch starting at output index 0.
func (m *Mixer) mixVoice(v *Voice, sampleCount int) {
	blockCount := sampleCount / 4
	remaining := blockCount
	outBlock := 0

	for remaining > 0 {
		chunk := v.currentChunk()
		if chunk == nil {
			break
		}

		volume := m.channelVolume(v.channel) * v.Volume
		var balance [Channels]float64
		var mixedVolume float64
		if v.Global || m.listener == nil {
			balance = [Channels]float64{1, 1}
			mixedVolume = m.MasterVolume * volume
		} else {
			dx := v.Position[0] - m.listener[0]
			dy := v.Position[1] - m.listener[1]
			balance[0] = 1 - boolF(dx > 1)*0.5
			balance[1] = 1 - boolF(dx < -1)*0.5
			distSq := dx*dx + dy*dy
			mixedVolume = m.MasterVolume * volume / math.Max(distSq*falloffScale, 1)
		}

		deltaSampleBlock := v.Pitch * 4
		blocksRemaining := int(math.Round((float64(chunk.SampleCount) - v.samplesPlayed) / deltaSampleBlock))
		blocksToMix := remaining
		if blocksToMix > blocksRemaining {
			blocksToMix = blocksRemaining
		}
		if blocksToMix < 0 {
			blocksToMix = 0
		}

		beginPos := v.samplesPlayed
		for c := 0; c < Channels && c < len(chunk.Samples); c++ {
			for b := 0; b < blocksToMix; b++ {
				base := beginPos + deltaSampleBlock*float64(b)
				for sub := 0; sub < 4; sub++ {
					pos := base + float64(sub)*v.Pitch
					idx := int(pos)
					frac := pos - float64(idx)
					s0 := sampleAt(chunk.Samples[c], idx)
					s1 := sampleAt(chunk.Samples[c], idx+1)
					val := float64(s0)*(1-frac) + float64(s1)*frac

					outIdx := (outBlock+b)*4 + sub
					if outIdx < len(m.scratch[c]) {
						m.scratch[c][outIdx] += float32(mixedVolume * balance[c] * float64(val))
					}
				}
			}
		}

		v.samplesPlayed = beginPos + float64(blocksToMix)*deltaSampleBlock
		remaining -= blocksToMix
		outBlock += blocksToMix

		if blocksToMix == blocksRemaining {
			if v.chunk+1 < len(v.clip.Chunks) {
				v.samplesPlayed -= float64(chunk.SampleCount)
				v.chunk++
				if v.samplesPlayed < 0 {
					v.samplesPlayed = 0
				}
			} else if v.Loop {
				v.chunk = 0
				v.samplesPlayed = 0
			} else {
				v.finished = true
				break
			}
		} else {
			break
		}
	}
}

func (m *Mixer) channelVolume(ch Channel) float64 {
	if ch == ChannelMusic {
		return m.MusicVolume
	}
	return m.SfxVolume
}

func sampleAt(samples []float32, idx int) float32 {
	if idx < 0 || idx >= len(samples) {
		return 0
	}
	return samples[idx]
}

func boolF(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func saturateInt16(v float32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

// fillBuffer locks the device's write region and copies the mixed
// interleaved samples into it, matching Audio::FillBuffer.
func (m *Mixer) fillBuffer(dev Device, byteToLock, bytesToWrite uint32) {
	region1, region2 := dev.Lock(byteToLock, bytesToWrite)
	defer dev.Unlock(region1, region2)

	src := int16sToBytes(m.samples)
	n := copy(region1, src)
	if len(region2) > 0 && n < len(src) {
		copy(region2, src[n:])
	}

	region1Samples := uint32(len(region1)) / BytesPerSample
	region2Samples := uint32(len(region2)) / BytesPerSample
	m.runningSampleIndex += region1Samples + region2Samples
}

func int16sToBytes(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		out[i*2] = byte(s)
		out[i*2+1] = byte(s >> 8)
	}
	return out
}
