package main

import (
	"math"
	"sync"
)

// chime is one decaying sine voice triggered by a constellation spawn.
type chime struct {
	freq  float64
	phase float64
	amp   float64
}

// chimeStream implements io.Reader for Ebiten's audio player, mixing the
// currently ringing chimes into 16-bit stereo PCM. Silence is produced when
// nothing rings, so the player never starves.
type chimeStream struct {
	mu     sync.Mutex
	active []chime
}

func newChimeStream() *chimeStream {
	return &chimeStream{}
}

// Trigger starts a new chime voice, dropping the oldest when full.
func (s *chimeStream) Trigger(freq float64) {
	if freq <= 0 {
		return
	}
	s.mu.Lock()
	if len(s.active) >= maxChimes {
		s.active = s.active[1:]
	}
	s.active = append(s.active, chime{freq: freq, amp: chimeVolume})
	s.mu.Unlock()
}

func (s *chimeStream) Read(p []byte) (int, error) {
	// Whole stereo frames only (4 bytes per frame).
	frameBytes := len(p) - len(p)%4
	if frameBytes == 0 {
		return 0, nil
	}
	decay := math.Exp(-chimeDecay / chimeSampleRate)

	s.mu.Lock()
	for i := 0; i < frameBytes; i += 4 {
		var sample float64
		for j := range s.active {
			c := &s.active[j]
			sample += math.Sin(2*math.Pi*c.phase) * c.amp
			c.phase += c.freq / chimeSampleRate
			if c.phase > 1 {
				c.phase -= 1
			}
			c.amp *= decay
		}
		if sample > 1 {
			sample = 1
		} else if sample < -1 {
			sample = -1
		}
		v := int16(sample * 32767)
		p[i] = byte(v)
		p[i+1] = byte(v >> 8)
		p[i+2] = p[i]
		p[i+3] = p[i+1]
	}
	kept := s.active[:0]
	for _, c := range s.active {
		if c.amp > 1e-4 {
			kept = append(kept, c)
		}
	}
	s.active = kept
	s.mu.Unlock()

	return frameBytes, nil
}

func (s *chimeStream) Close() error {
	return nil
}
