package systems

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// ModifierKey is a set of modifier keys. An action with modifiers fires
// when any one of them is held.
type ModifierKey int

const (
	ModifierNone  ModifierKey = 0
	ModifierShift ModifierKey = 1 << (iota - 1)
	ModifierControl
	ModifierAlt
	ModifierCapsLock
)

var modifierKeys = map[ModifierKey]ebiten.Key{
	ModifierShift:    ebiten.KeyShift,
	ModifierControl:  ebiten.KeyControl,
	ModifierAlt:      ebiten.KeyAlt,
	ModifierCapsLock: ebiten.KeyCapsLock,
}

// ParseModifiers converts config names like "shift" or "ctrl" into a set
func ParseModifiers(names []string) (ModifierKey, error) {
	mods := ModifierNone
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "shift":
			mods |= ModifierShift
		case "control", "ctrl":
			mods |= ModifierControl
		case "alt":
			mods |= ModifierAlt
		case "capslock":
			mods |= ModifierCapsLock
		default:
			return ModifierNone, fmt.Errorf("unknown modifier %q", name)
		}
	}
	return mods, nil
}

// HandlerType selects which key transition a handler listens to
type HandlerType int

const (
	// KeyPress fires every frame while the key is held
	KeyPress HandlerType = iota
	// KeyDown fires once on the frame the key goes down
	KeyDown
	// KeyUp fires once on the frame the key is released
	KeyUp
)

var (
	ErrActionExists  = errors.New("action name already exists")
	ErrActionMissing = errors.New("action name does not exist")
	ErrUnknownKey    = errors.New("unknown key")
)

// ActionRegisterError is returned when an action cannot be registered or extended
type ActionRegisterError struct {
	Action string
	Err    error
}

func (e *ActionRegisterError) Error() string {
	return fmt.Sprintf("failed to register action '%s': %v", e.Action, e.Err)
}

func (e *ActionRegisterError) Unwrap() error {
	return e.Err
}

// KeyState reports keyboard state for the current frame
type KeyState interface {
	IsPressed(key ebiten.Key) bool
	JustPressed(key ebiten.Key) bool
	JustReleased(key ebiten.Key) bool
}

// EbitenKeyState reads the keyboard through ebiten
type EbitenKeyState struct{}

func (EbitenKeyState) IsPressed(key ebiten.Key) bool    { return ebiten.IsKeyPressed(key) }
func (EbitenKeyState) JustPressed(key ebiten.Key) bool  { return inpututil.IsKeyJustPressed(key) }
func (EbitenKeyState) JustReleased(key ebiten.Key) bool { return inpututil.IsKeyJustReleased(key) }

var keyNames = func() map[string]ebiten.Key {
	names := make(map[string]ebiten.Key)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		names[strings.ToLower(k.String())] = k
	}
	return names
}()

// ParseKey resolves a key name such as "a", "Space" or "ArrowLeft"
func ParseKey(name string) (ebiten.Key, error) {
	key, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	return key, nil
}

type actionHandler struct {
	id uint64
	fn func()
}

type inputAction struct {
	name      string
	key       ebiten.Key
	modifiers ModifierKey
	handlers  map[HandlerType][]actionHandler
}

// InputManager maps named actions to keys and dispatches handlers once per frame
type InputManager struct {
	logger  *zap.Logger
	keys    KeyState
	actions map[string]*inputAction
	order   []string
	nextID  uint64
}

// NewInputManager creates an input manager reading from keys
func NewInputManager(logger *zap.Logger, keys KeyState) *InputManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if keys == nil {
		keys = EbitenKeyState{}
	}
	return &InputManager{
		logger:  logger,
		keys:    keys,
		actions: make(map[string]*inputAction),
	}
}

// RegisterAction binds a new action name to a key
func (m *InputManager) RegisterAction(name, keyName string, modifiers ModifierKey) error {
	if _, exists := m.actions[name]; exists {
		return &ActionRegisterError{Action: name, Err: ErrActionExists}
	}

	key, err := ParseKey(keyName)
	if err != nil {
		return &ActionRegisterError{Action: name, Err: err}
	}

	m.actions[name] = &inputAction{
		name:      name,
		key:       key,
		modifiers: modifiers,
		handlers:  make(map[HandlerType][]actionHandler),
	}
	m.order = append(m.order, name)

	m.logger.Debug("action registered",
		zap.String("action", name),
		zap.String("key", key.String()),
		zap.Int("modifiers", int(modifiers)),
	)
	return nil
}

// HasAction reports whether an action is registered
func (m *InputManager) HasAction(name string) bool {
	_, exists := m.actions[name]
	return exists
}

// AppendHandler adds a handler to an existing action and returns a function that removes it
func (m *InputManager) AppendHandler(name string, handlerType HandlerType, handler func()) (func(), error) {
	action, exists := m.actions[name]
	if !exists {
		return nil, &ActionRegisterError{Action: name, Err: ErrActionMissing}
	}

	m.nextID++
	id := m.nextID
	action.handlers[handlerType] = append(action.handlers[handlerType], actionHandler{id: id, fn: handler})

	return func() {
		handlers := action.handlers[handlerType]
		for i, h := range handlers {
			if h.id == id {
				action.handlers[handlerType] = append(handlers[:i:i], handlers[i+1:]...)
				return
			}
		}
	}, nil
}

// Update dispatches handlers for this frame's key transitions.
// Releases are delivered even if the modifier was let go first.
func (m *InputManager) Update() {
	for _, name := range m.order {
		action := m.actions[name]

		if m.keys.JustReleased(action.key) {
			m.dispatch(action, KeyUp)
		}

		if !m.modifiersHeld(action.modifiers) {
			continue
		}
		if m.keys.JustPressed(action.key) {
			m.dispatch(action, KeyDown)
		}
		if m.keys.IsPressed(action.key) {
			m.dispatch(action, KeyPress)
		}
	}
}

func (m *InputManager) modifiersHeld(modifiers ModifierKey) bool {
	if modifiers == ModifierNone {
		return true
	}
	for mod, key := range modifierKeys {
		if modifiers&mod != 0 && m.keys.IsPressed(key) {
			return true
		}
	}
	return false
}

func (m *InputManager) dispatch(action *inputAction, handlerType HandlerType) {
	for _, h := range action.handlers[handlerType] {
		h.fn()
	}
}
