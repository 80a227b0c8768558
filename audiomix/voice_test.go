// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package audiomix

import "testing"

func TestNewGlobalVoiceStartsAtFirstChunk(t *testing.T) {
	clip := &Clip{Chunks: []Chunk{{SampleCount: 10}}}
	v := NewGlobalVoice(clip, ChannelMusic, 0.8, 1.0, false)
	if !v.Global {
		t.Errorf("expected global voice")
	}
	if v.Finished() {
		t.Errorf("expected a fresh voice to not be finished")
	}
	if v.currentChunk().SampleCount != 10 {
		t.Errorf("expected current chunk to be the clip's first chunk")
	}
}

func TestNewSpatialVoiceIsNotGlobal(t *testing.T) {
	clip := &Clip{Chunks: []Chunk{{SampleCount: 10}}}
	v := NewSpatialVoice(clip, ChannelSFX, [2]float64{3, 4}, 1.0, 1.0, false)
	if v.Global {
		t.Errorf("expected spatial voice to not be global")
	}
	if v.Position != [2]float64{3, 4} {
		t.Errorf("expected position to be set, got %v", v.Position)
	}
}

func TestCurrentChunkOutOfRangeReturnsNil(t *testing.T) {
	clip := &Clip{Chunks: []Chunk{{SampleCount: 10}}}
	v := NewGlobalVoice(clip, ChannelSFX, 1, 1, false)
	v.chunk = 5
	if v.currentChunk() != nil {
		t.Errorf("expected out-of-range chunk index to return nil")
	}
}
