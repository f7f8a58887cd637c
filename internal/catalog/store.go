package catalog

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/google/uuid"

	"lensfit-service/internal/lens/model"
)

var ErrInvalidFrame = errors.New("invalid frame")

// DemoFrames: стартовый каталог салона.
func DemoFrames() []model.Frame {
	return []model.Frame{
		{ID: "d1", Brand: "Round S", Shape: "ラウンド", A: 46, B: 42, DBL: 22, SKU: "RS-46", Color: "BK", Stock: 1},
		{ID: "d2", Brand: "Classic P", Shape: "ボストン", A: 48, B: 43, DBL: 20, SKU: "CP-48", Color: "BR", Stock: 0, Reorder: true},
		{ID: "d3", Brand: "Slim R", Shape: "スクエア", A: 52, B: 36, DBL: 18, SKU: "SR-52", Color: "NV", Stock: 2},
	}
}

// Store: каталог оправ в памяти. Меняется только через Append/Add.
type Store struct {
	mu      sync.RWMutex
	frames  []model.Frame
	version uint64
}

func NewStore(seed []model.Frame) *Store {
	s := &Store{frames: make([]model.Frame, 0, len(seed))}
	s.frames = append(s.frames, seed...)
	return s
}

// List: снимок каталога и его версия.
func (s *Store) List() ([]model.Frame, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Frame, len(s.frames))
	copy(out, s.frames)
	return out, s.version
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.frames)
}

func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Append добавляет результат импорта в конец каталога.
func (s *Store) Append(frames []model.Frame) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(frames) > 0 {
		s.frames = append(s.frames, frames...)
		s.version++
	}
	return len(s.frames)
}

// Add: ручное добавление одной оправы.
func (s *Store) Add(f model.Frame) (model.Frame, error) {
	if err := validateFrame(f); err != nil {
		return model.Frame{}, err
	}
	f.ID = uuid.NewString()
	f.Brand = strings.TrimSpace(f.Brand)
	if f.Brand == "" {
		f.Brand = UnnamedBrand
	}
	if f.Stock < 0 {
		f.Stock = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, f)
	s.version++
	return f, nil
}

func validateFrame(f model.Frame) error {
	for _, d := range []struct {
		name string
		v    float64
		min  float64
	}{
		{"A", f.A, math.SmallestNonzeroFloat64},
		{"DBL", f.DBL, math.SmallestNonzeroFloat64},
		{"B", f.B, 0},
	} {
		if math.IsNaN(d.v) || math.IsInf(d.v, 0) || d.v < d.min {
			return fmt.Errorf("%w: %s=%v", ErrInvalidFrame, d.name, d.v)
		}
	}
	return nil
}
