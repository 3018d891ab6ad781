// SPDX-License-Identifier: EPL-2.0

package scenefile

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/ik5/audscene/transform"
)

// Keyframe pins a spatial pose to a point in time.  Times are in
// seconds so a scene stays valid at any sample rate; rotations are
// azimuth, elevation and roll in degrees.
type Keyframe struct {
	Time   float64    `yaml:"time"`
	Pos    [3]float32 `yaml:"pos"`
	Rot    [3]float32 `yaml:"rot"`
	Vol    *float32   `yaml:"vol"`
	Active *bool      `yaml:"active"`
}

// Source describes one scene source.  A source with a file is decoded
// from disk; one without is live and fed by an external transport
// identified by port.
type Source struct {
	ID        string     `yaml:"id"`
	Name      string     `yaml:"name"`
	Model     string     `yaml:"model"`
	Port      string     `yaml:"port"`
	File      string     `yaml:"file"`
	Start     float64    `yaml:"start"`
	Keyframes []Keyframe `yaml:"keyframes"`
}

// Live reports whether the source has no backing file.
func (s *Source) Live() bool {
	return s.File == ""
}

// Scene is the parsed scene description.  Duration is in seconds; zero
// leaves the total length to be computed from the file sources.
type Scene struct {
	Duration  float64    `yaml:"duration"`
	Reference []Keyframe `yaml:"reference"`
	Sources   []Source   `yaml:"sources"`
}

// Load reads and validates a scene description.  Relative source file
// paths are resolved against the scene file's directory, and sources
// without an id get a generated one.
func Load(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}

	var scene Scene
	if err := yaml.Unmarshal(raw, &scene); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}

	if scene.Duration < 0 {
		return nil, ErrNegativeDuration
	}
	if err := checkKeyframes(scene.Reference); err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}

	dir := filepath.Dir(path)
	for i := range scene.Sources {
		src := &scene.Sources[i]
		if src.Start < 0 {
			return nil, fmt.Errorf("source %q: %w", src.Name, ErrNegativeStart)
		}
		if err := checkKeyframes(src.Keyframes); err != nil {
			return nil, fmt.Errorf("source %q: %w", src.Name, err)
		}
		if src.File != "" && !filepath.IsAbs(src.File) {
			src.File = filepath.Join(dir, src.File)
		}
		if src.ID == "" {
			src.ID = uuid.NewString()
		}
	}

	return &scene, nil
}

func checkKeyframes(keys []Keyframe) error {
	for i, k := range keys {
		if k.Time < 0 {
			return fmt.Errorf("keyframe %d: %w", i, ErrNegativeTime)
		}
		if i > 0 && k.Time <= keys[i-1].Time {
			return fmt.Errorf("keyframe %d: %w", i, ErrTimesNotIncreasing)
		}
	}
	return nil
}

// Frame converts a time in seconds to a frame index at samplerate.
func Frame(seconds float64, samplerate int) uint64 {
	return uint64(math.Round(seconds * float64(samplerate)))
}

// Track converts keyframes to a transform track at samplerate.  Vol
// defaults to 1 and Active to true when omitted; rotations become unit
// quaternions at load so lookups never touch trigonometry.
func Track(keys []Keyframe, samplerate int) (*transform.Track, error) {
	frames := make([]transform.Keyframe, len(keys))
	for i, k := range keys {
		vol := float32(1)
		if k.Vol != nil {
			vol = *k.Vol
		}
		active := true
		if k.Active != nil {
			active = *k.Active
		}
		frames[i] = transform.Keyframe{
			Frame: Frame(k.Time, samplerate),
			Transform: transform.Transform{
				Active: active,
				Pos:    k.Pos,
				Rot:    transform.FromEuler(k.Rot[0], k.Rot[1], k.Rot[2]),
				Vol:    vol,
			},
		}
	}

	track, err := transform.NewTrack(frames)
	if err != nil {
		// Distinct times can round to the same frame at low rates.
		return nil, fmt.Errorf("%w", err)
	}
	return track, nil
}
