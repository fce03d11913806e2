package service

import (
	"math"
	"sync"
	"time"

	"scene-editor/internal/editor/codec"
	"scene-editor/internal/editor/history"
	"scene-editor/internal/editor/input"
	"scene-editor/internal/editor/scene"
	"scene-editor/internal/editor/sketch"

	"github.com/google/uuid"
)

// ============================================================
// Session Manager
// ============================================================

// Config настройки, с которыми рождается каждая сессия.
type Config struct {
	PickRadius   float64
	Sketch       sketch.Config
	DefaultColor string

	// Шаги клавиатурных операций
	MoveStep   float64
	RotateStep float64 // радианы
	ScaleStep  float64 // множитель
}

func DefaultSessionConfig() Config {
	return Config{
		PickRadius:   0.15,
		Sketch:       sketch.DefaultConfig(),
		DefaultColor: "#8888ff",
		MoveStep:     0.5,
		RotateStep:   math.Pi / 12,
		ScaleStep:    1.1,
	}
}

// Session все состояние одного редактора: модель, выбор, история,
// эскиз. Никаких глобалей — сессия создается на старте работы и
// выбрасывается при закрытии. Мьютекс сериализует операции: одна
// логическая операция завершается до следующей.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	cfg       Config
	model     *scene.Model
	selection *scene.Selection
	engine    *scene.Engine
	history   *history.Manager
	sketch    *sketch.Sketch
	keymap    *input.Keymap
	codec     *codec.Codec

	// Активный драг-жест (максимум один одновременно)
	pull *input.EdgePull
}

func newSession(cfg Config) *Session {
	model := scene.NewModel()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		cfg:       cfg,
		model:     model,
		selection: scene.NewSelection(),
		engine:    scene.NewEngine(model, cfg.PickRadius, cfg.Sketch.CircleSegments),
		history:   history.New(nil),
		sketch:    sketch.New(cfg.Sketch),
		keymap:    input.DefaultKeymap(),
		codec:     codec.New(),
	}
}

// SessionManager выдает и разрешает сессии по uuid-токену.
type SessionManager struct {
	mu       sync.Mutex
	cfg      Config
	sessions map[string]*Session
}

func NewSessionManager(cfg Config) *SessionManager {
	return &SessionManager{
		cfg:      cfg,
		sessions: make(map[string]*Session),
	}
}

func (m *SessionManager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := newSession(m.cfg)
	m.sessions[s.ID] = s
	return s
}

func (m *SessionManager) Resolve(token string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	return s, ok
}

func (m *SessionManager) Close(token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[token]; !ok {
		return false
	}
	delete(m.sessions, token)
	return true
}

func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
