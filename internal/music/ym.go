// Package music streams YM chiptunes into the ebiten audio mixer.
package music

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/olivierh59500/ym-player/pkg/stsound"
)

// SampleRate is the rate the YM emulator renders at and the audio context runs at.
const SampleRate = 44100

// YMPlayer renders a YM tune on demand as 16-bit stereo little endian PCM.
type YMPlayer struct {
	player *stsound.StSound
	buffer []int16
	mutex  sync.Mutex
	loop   bool
	volume float64
}

// NewYMPlayer loads a YM file image.
func NewYMPlayer(data []byte, sampleRate int, loop bool) (*YMPlayer, error) {
	player := stsound.CreateWithRate(sampleRate)

	if err := player.LoadMemory(data); err != nil {
		player.Destroy()
		return nil, fmt.Errorf("failed to load YM data: %w", err)
	}

	player.SetLoopMode(loop)

	return &YMPlayer{
		player: player,
		buffer: make([]int16, 4096),
		loop:   loop,
		volume: 0.5,
	}, nil
}

// SetVolume scales the output, clamped to 0..1.
func (y *YMPlayer) SetVolume(v float64) {
	y.mutex.Lock()
	defer y.mutex.Unlock()
	y.volume = min(max(v, 0), 1)
}

// Read fills p with whole stereo frames. It returns io.EOF once a non looping
// tune has ended.
func (y *YMPlayer) Read(p []byte) (int, error) {
	y.mutex.Lock()
	defer y.mutex.Unlock()

	if y.player == nil {
		return 0, io.EOF
	}

	frames := len(p) / 4
	n := 0
	for n < frames {
		chunk := min(frames-n, len(y.buffer))
		if !y.player.Compute(y.buffer[:chunk], chunk) && !y.loop {
			if n == 0 {
				return 0, io.EOF
			}
			break
		}
		for i := 0; i < chunk; i++ {
			s := int16(float64(y.buffer[i]) * y.volume)
			o := (n + i) * 4
			p[o] = byte(s)
			p[o+1] = byte(s >> 8)
			p[o+2] = byte(s)
			p[o+3] = byte(s >> 8)
		}
		n += chunk
	}
	return n * 4, nil
}

// Close releases the emulator.
func (y *YMPlayer) Close() error {
	y.mutex.Lock()
	defer y.mutex.Unlock()

	if y.player != nil {
		y.player.Destroy()
		y.player = nil
	}
	return nil
}

// Soundtrack is a playing tune. The zero value is silent and safe to Close.
type Soundtrack struct {
	ym     *YMPlayer
	player *audio.Player
}

// Play starts path through the shared audio context. An empty path means no
// music; any failure is returned and the caller carries on silent.
func Play(path string, volume float64) (*Soundtrack, error) {
	if path == "" {
		return &Soundtrack{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return &Soundtrack{}, err
	}
	ym, err := NewYMPlayer(data, SampleRate, true)
	if err != nil {
		return &Soundtrack{}, err
	}
	ym.SetVolume(volume)

	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(SampleRate)
	}
	player, err := ctx.NewPlayer(ym)
	if err != nil {
		ym.Close()
		return &Soundtrack{}, fmt.Errorf("failed to create audio player: %w", err)
	}
	player.Play()
	log.Printf("playing %s", path)
	return &Soundtrack{ym: ym, player: player}, nil
}

// Close stops playback.
func (s *Soundtrack) Close() error {
	if s.player != nil {
		s.player.Close()
		s.player = nil
	}
	if s.ym != nil {
		s.ym.Close()
		s.ym = nil
	}
	return nil
}
