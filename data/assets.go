package data

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// AssetType names a kind of asset in error messages
type AssetType string

const (
	AssetBundle  AssetType = "Bundle"
	AssetTexture AssetType = "Texture"
	AssetConfig  AssetType = "Config"
	AssetSound   AssetType = "Sound"
	AssetFont    AssetType = "Font"
)

// PlaceholderTexture is substituted for missing textures when allowed
const PlaceholderTexture = "debug_placeholder"

var (
	ErrAssetNotFound  = errors.New("asset not found")
	ErrBundleRegister = errors.New("asset bundle registration failed")
)

// AssetNotFoundError is returned when a bundle or an asset inside it is missing
type AssetNotFoundError struct {
	Type AssetType
	Name string
}

func (e *AssetNotFoundError) Error() string {
	return fmt.Sprintf("asset with type '%s' and name '%s' not found", e.Type, e.Name)
}

func (e *AssetNotFoundError) Is(target error) bool {
	return target == ErrAssetNotFound
}

// BundleRegisterError is returned when a bundle cannot be registered
type BundleRegisterError struct {
	Bundle string
	Reason string
	Err    error
}

func (e *BundleRegisterError) Error() string {
	msg := fmt.Sprintf("failed to register asset bundle with name '%s' due reason: %s", e.Bundle, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *BundleRegisterError) Is(target error) bool {
	return target == ErrBundleRegister
}

func (e *BundleRegisterError) Unwrap() error {
	return e.Err
}

// AssetRef points a named asset at a file
type AssetRef struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// BundleDescriptor lists the assets of one bundle
type BundleDescriptor struct {
	Textures []AssetRef `json:"textures" yaml:"textures"`
	Configs  []AssetRef `json:"configs" yaml:"configs"`
	Sounds   []AssetRef `json:"sounds" yaml:"sounds"`
	Fonts    []AssetRef `json:"fonts" yaml:"fonts"`
}

// Texture is a decoded image. The GPU image is created on first use so
// decoding can happen off the game thread.
type Texture struct {
	Name   string
	Source image.Image

	once  sync.Once
	image *ebiten.Image
}

// Image returns the ebiten image for the texture
func (t *Texture) Image() *ebiten.Image {
	t.once.Do(func() {
		t.image = ebiten.NewImageFromImage(t.Source)
	})
	return t.image
}

// Size returns the pixel dimensions of the texture
func (t *Texture) Size() (width, height int) {
	b := t.Source.Bounds()
	return b.Dx(), b.Dy()
}

// Sound is an encoded audio file; Format is the lower-case extension
type Sound struct {
	Name   string
	Format string
	Data   []byte
}

// Font is a font file that is parsed on first use
type Font struct {
	Name string
	Data []byte

	once   sync.Once
	source *text.GoTextFaceSource
	err    error
}

// Source parses the font into a face source
func (f *Font) Source() (*text.GoTextFaceSource, error) {
	f.once.Do(func() {
		f.source, f.err = text.NewGoTextFaceSource(bytes.NewReader(f.Data))
	})
	return f.source, f.err
}

// Bundle holds the loaded assets of one descriptor
type Bundle struct {
	Name     string
	textures map[string]*Texture
	configs  map[string][]byte
	sounds   map[string]*Sound
	fonts    map[string]*Font
}

func newBundle(name string) *Bundle {
	return &Bundle{
		Name:     name,
		textures: make(map[string]*Texture),
		configs:  make(map[string][]byte),
		sounds:   make(map[string]*Sound),
		fonts:    make(map[string]*Font),
	}
}

// Manager owns every registered asset bundle
type Manager struct {
	logger   *zap.Logger
	fsys     fs.FS
	gameName string

	mu      sync.RWMutex
	bundles map[string]*Bundle
}

// NewManager creates an asset manager reading from fsys. The bundle named
// after the game is the default for lookups.
func NewManager(logger *zap.Logger, fsys fs.FS, gameName string) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		logger:   logger,
		fsys:     fsys,
		gameName: gameName,
		bundles:  make(map[string]*Bundle),
	}
}

// DescriptorPath returns the first of <game>_abundle.json/.yaml/.yml present in the asset root
func (m *Manager) DescriptorPath() (string, error) {
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		name := m.gameName + "_abundle" + ext
		if _, err := fs.Stat(m.fsys, name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no asset bundle descriptor for %s: %w", m.gameName, fs.ErrNotExist)
}

// Initialize loads the game's default bundle descriptor
func (m *Manager) Initialize(ctx context.Context) error {
	descriptorPath, err := m.DescriptorPath()
	if err != nil {
		return err
	}

	descriptor, err := m.LoadDescriptor(descriptorPath)
	if err != nil {
		return err
	}

	return m.RegisterBundle(ctx, m.gameName, descriptor)
}

// LoadDescriptor parses a JSON or YAML bundle descriptor
func (m *Manager) LoadDescriptor(name string) (BundleDescriptor, error) {
	var descriptor BundleDescriptor

	raw, err := fs.ReadFile(m.fsys, name)
	if err != nil {
		return descriptor, fmt.Errorf("read bundle descriptor %s: %w", name, err)
	}

	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &descriptor)
	default:
		err = json.Unmarshal(raw, &descriptor)
	}
	if err != nil {
		return descriptor, fmt.Errorf("parse bundle descriptor %s: %w", name, err)
	}

	return descriptor, nil
}

// RegisterBundle loads every asset of descriptor in parallel and registers
// the result under name. Duplicate bundle names and duplicate asset names
// within one kind fail before anything is loaded.
func (m *Manager) RegisterBundle(ctx context.Context, name string, descriptor BundleDescriptor) error {
	m.mu.RLock()
	_, exists := m.bundles[name]
	m.mu.RUnlock()
	if exists {
		return &BundleRegisterError{Bundle: name, Reason: "bundle with that name already registered"}
	}

	for _, group := range []struct {
		kind string
		refs []AssetRef
	}{
		{"texture", descriptor.Textures},
		{"config", descriptor.Configs},
		{"sound", descriptor.Sounds},
		{"font", descriptor.Fonts},
	} {
		seen := make(map[string]bool, len(group.refs))
		for _, ref := range group.refs {
			if seen[ref.Name] {
				return &BundleRegisterError{Bundle: name, Reason: fmt.Sprintf("duplicated %s '%s'", group.kind, ref.Name)}
			}
			seen[ref.Name] = true
		}
	}

	bundle := newBundle(name)
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)

	load := func(ref AssetRef, store func(raw []byte) error) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := fs.ReadFile(m.fsys, ref.Path)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return store(raw)
		})
	}

	for _, ref := range descriptor.Textures {
		ref := ref
		load(ref, func(raw []byte) error {
			img, _, err := image.Decode(bytes.NewReader(raw))
			if err != nil {
				return fmt.Errorf("decode texture %s: %w", ref.Path, err)
			}
			bundle.textures[ref.Name] = &Texture{Name: ref.Name, Source: img}
			return nil
		})
	}
	for _, ref := range descriptor.Configs {
		ref := ref
		load(ref, func(raw []byte) error {
			bundle.configs[ref.Name] = raw
			return nil
		})
	}
	for _, ref := range descriptor.Sounds {
		ref := ref
		load(ref, func(raw []byte) error {
			bundle.sounds[ref.Name] = &Sound{
				Name:   ref.Name,
				Format: strings.TrimPrefix(strings.ToLower(path.Ext(ref.Path)), "."),
				Data:   raw,
			}
			return nil
		})
	}
	for _, ref := range descriptor.Fonts {
		ref := ref
		load(ref, func(raw []byte) error {
			bundle.fonts[ref.Name] = &Font{Name: ref.Name, Data: raw}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return &BundleRegisterError{Bundle: name, Reason: "failed to load asset", Err: err}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.bundles[name]; exists {
		return &BundleRegisterError{Bundle: name, Reason: "bundle with that name already registered"}
	}
	m.bundles[name] = bundle

	m.logger.Info("asset bundle registered",
		zap.String("bundle", name),
		zap.Int("textures", len(bundle.textures)),
		zap.Int("configs", len(bundle.configs)),
		zap.Int("sounds", len(bundle.sounds)),
		zap.Int("fonts", len(bundle.fonts)),
	)
	return nil
}

func (m *Manager) bundle(name string) (*Bundle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bundle, exists := m.bundles[name]
	if !exists {
		return nil, &AssetNotFoundError{Type: AssetBundle, Name: name}
	}
	return bundle, nil
}

// HasBundle reports whether a bundle is registered
func (m *Manager) HasBundle(name string) bool {
	_, err := m.bundle(name)
	return err == nil
}

// Texture returns a texture from the default bundle, or the placeholder
func (m *Manager) Texture(name string) (*Texture, error) {
	return m.TextureFrom(m.gameName, name, true)
}

// TextureFrom returns a texture from a bundle. When allowPlaceholder is set
// a missing texture is replaced by the default bundle's placeholder.
func (m *Manager) TextureFrom(bundleName, name string, allowPlaceholder bool) (*Texture, error) {
	bundle, err := m.bundle(bundleName)
	if err != nil {
		return nil, err
	}

	if texture, ok := bundle.textures[name]; ok {
		return texture, nil
	}
	if !allowPlaceholder {
		return nil, &AssetNotFoundError{Type: AssetTexture, Name: name}
	}

	m.logger.Debug("texture missing, using placeholder",
		zap.String("bundle", bundleName),
		zap.String("texture", name),
	)
	return m.TextureFrom(m.gameName, PlaceholderTexture, false)
}

// Config returns the raw bytes of a config asset
func (m *Manager) Config(name string) ([]byte, error) {
	return m.ConfigFrom(m.gameName, name)
}

// ConfigFrom returns the raw bytes of a config asset from a bundle
func (m *Manager) ConfigFrom(bundleName, name string) ([]byte, error) {
	bundle, err := m.bundle(bundleName)
	if err != nil {
		return nil, err
	}

	raw, ok := bundle.configs[name]
	if !ok {
		return nil, &AssetNotFoundError{Type: AssetConfig, Name: name}
	}
	return raw, nil
}

// DecodeConfig unmarshals a config asset from the default bundle. YAML is a
// superset of JSON, so both formats decode.
func (m *Manager) DecodeConfig(name string, out any) error {
	raw, err := m.Config(name)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode config %s: %w", name, err)
	}
	return nil
}

// Sound returns a sound from the default bundle
func (m *Manager) Sound(name string) (*Sound, error) {
	return m.SoundFrom(m.gameName, name)
}

// SoundFrom returns a sound from a bundle
func (m *Manager) SoundFrom(bundleName, name string) (*Sound, error) {
	bundle, err := m.bundle(bundleName)
	if err != nil {
		return nil, err
	}

	sound, ok := bundle.sounds[name]
	if !ok {
		return nil, &AssetNotFoundError{Type: AssetSound, Name: name}
	}
	return sound, nil
}

// Font returns a font from the default bundle
func (m *Manager) Font(name string) (*Font, error) {
	return m.FontFrom(m.gameName, name)
}

// FontFrom returns a font from a bundle
func (m *Manager) FontFrom(bundleName, name string) (*Font, error) {
	bundle, err := m.bundle(bundleName)
	if err != nil {
		return nil, err
	}

	font, ok := bundle.fonts[name]
	if !ok {
		return nil, &AssetNotFoundError{Type: AssetFont, Name: name}
	}
	return font, nil
}
