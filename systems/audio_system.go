package systems

import (
	"bytes"
	"fmt"
	"io"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"go.uber.org/zap"

	"github.com/VAX325/ArcticLights/config"
	"github.com/VAX325/ArcticLights/data"
	"github.com/VAX325/ArcticLights/ecs"
	"github.com/VAX325/ArcticLights/entities"
)

// BumpSound is played when the player runs into something
const BumpSound = "bump"

// SoundSource provides encoded sounds by name
type SoundSource interface {
	Sound(name string) (*data.Sound, error)
}

// Cooldown rate-limits a repeating effect
type Cooldown struct {
	Duration  float64
	remaining float64
}

// Ready reports whether the cooldown has elapsed
func (c *Cooldown) Ready() bool {
	return c.remaining <= 0
}

// Trigger restarts the cooldown
func (c *Cooldown) Trigger() {
	c.remaining = c.Duration
}

// Advance moves the cooldown forward by seconds
func (c *Cooldown) Advance(seconds float64) {
	if c.remaining > 0 {
		c.remaining -= seconds
	}
}

// AudioSystem handles all audio playback
type AudioSystem struct {
	logger       *zap.Logger
	audioContext *audio.Context
	sounds       SoundSource
	bgmPlayer    *audio.Player
	volume       float64
	sampleRate   int
	// Decoded PCM of sound effects, by name
	sfx  map[string][]byte
	bump Cooldown
}

// NewAudioSystem creates a new audio system on the given context
func NewAudioSystem(logger *zap.Logger, audioContext *audio.Context, sounds SoundSource, cfg config.AudioConfig) *AudioSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AudioSystem{
		logger:       logger,
		audioContext: audioContext,
		sounds:       sounds,
		volume:       cfg.Volume,
		sampleRate:   audioContext.SampleRate(),
		sfx:          make(map[string][]byte),
		bump:         Cooldown{Duration: cfg.BumpCooldown},
	}
}

// decode turns an encoded sound into a PCM stream at the context sample rate
func (s *AudioSystem) decode(sound *data.Sound) (io.ReadSeeker, error) {
	src := bytes.NewReader(sound.Data)
	switch sound.Format {
	case "mp3":
		return mp3.DecodeWithSampleRate(s.sampleRate, src)
	case "ogg":
		return vorbis.DecodeWithSampleRate(s.sampleRate, src)
	case "wav":
		return wav.DecodeWithSampleRate(s.sampleRate, src)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", sound.Format)
	}
}

// PlayBGM starts looping background music
func (s *AudioSystem) PlayBGM(name string) error {
	s.StopBGM()

	sound, err := s.sounds.Sound(name)
	if err != nil {
		return err
	}

	stream, err := s.decode(sound)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}

	length, err := stream.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("failed to measure %s: %w", name, err)
	}
	if _, err := stream.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind %s: %w", name, err)
	}

	player, err := s.audioContext.NewPlayer(audio.NewInfiniteLoop(stream, length))
	if err != nil {
		return fmt.Errorf("failed to create audio player: %w", err)
	}

	s.bgmPlayer = player
	s.bgmPlayer.SetVolume(s.volume)
	s.bgmPlayer.Play()
	return nil
}

// StopBGM stops the background music
func (s *AudioSystem) StopBGM() {
	if s.bgmPlayer != nil {
		s.bgmPlayer.Close()
		s.bgmPlayer = nil
	}
}

// IsBGMPlaying returns whether background music is currently playing
func (s *AudioSystem) IsBGMPlaying() bool {
	return s.bgmPlayer != nil && s.bgmPlayer.IsPlaying()
}

// PlaySFX plays a one-shot sound effect, decoding it on first use
func (s *AudioSystem) PlaySFX(name string) error {
	pcm, ok := s.sfx[name]
	if !ok {
		sound, err := s.sounds.Sound(name)
		if err != nil {
			return err
		}
		stream, err := s.decode(sound)
		if err != nil {
			return fmt.Errorf("failed to decode %s: %w", name, err)
		}
		pcm, err = io.ReadAll(stream)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		s.sfx[name] = pcm
	}

	player := s.audioContext.NewPlayerFromBytes(pcm)
	player.SetVolume(s.volume)
	player.Play()
	return nil
}

// OnContact is a ContactTracker callback that plays the bump sound when
// the player starts touching another entity
func (s *AudioSystem) OnContact(contact Contact) {
	if !contact.A.HasTag(entities.PlayerTag) && !contact.B.HasTag(entities.PlayerTag) {
		return
	}
	if !s.bump.Ready() {
		return
	}
	s.bump.Trigger()

	if err := s.PlaySFX(BumpSound); err != nil {
		s.logger.Debug("bump sound unavailable", zap.Error(err))
	}
}

// Update implements ecs.System
func (s *AudioSystem) Update(_ *ecs.Registry, dt float64) {
	s.bump.Advance(dt / config.ReferenceFPS)
}

// Close stops playback
func (s *AudioSystem) Close() {
	s.StopBGM()
}
