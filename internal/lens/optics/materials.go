package optics

import (
	"errors"
	"fmt"
	"math"

	"lensfit-service/internal/lens/model"
)

var (
	ErrUnknownMaterial = errors.New("unknown material")
	ErrInvalidMaterial = errors.New("invalid material")
)

// DefaultMaterials: материалы, которые предлагает салон.
func DefaultMaterials() []model.Material {
	return []model.Material{
		{Key: "1.60", Name: "1.60 (MR-8等)", Index: 1.6},
		{Key: "1.67", Name: "1.67 (高屈折)", Index: 1.67},
		{Key: "1.74", Name: "1.74 (超高屈折)", Index: 1.74},
		{Key: "1.76", Name: "1.76 (超高屈折・東海)", Index: 1.76},
	}
}

// MaterialCatalog: неизменяемый набор материалов, проверенный при создании.
type MaterialCatalog struct {
	list  []model.Material
	byKey map[string]model.Material
}

func NewMaterialCatalog(list []model.Material) (*MaterialCatalog, error) {
	c := &MaterialCatalog{
		list:  make([]model.Material, 0, len(list)),
		byKey: make(map[string]model.Material, len(list)),
	}
	for _, m := range list {
		if m.Key == "" {
			return nil, fmt.Errorf("%w: empty key", ErrInvalidMaterial)
		}
		if _, dup := c.byKey[m.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrInvalidMaterial, m.Key)
		}
		// деление на (index-1) в модели: index == 1 не определён
		if math.IsNaN(m.Index) || math.IsInf(m.Index, 0) || m.Index <= 1 {
			return nil, fmt.Errorf("%w: %q has index %v", ErrInvalidMaterial, m.Key, m.Index)
		}
		c.list = append(c.list, m)
		c.byKey[m.Key] = m
	}
	return c, nil
}

// MustMaterialCatalog паникует на невалидной таблице; только для статических данных.
func MustMaterialCatalog(list []model.Material) *MaterialCatalog {
	c, err := NewMaterialCatalog(list)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *MaterialCatalog) Get(key string) (model.Material, error) {
	m, ok := c.byKey[key]
	if !ok {
		return model.Material{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, key)
	}
	return m, nil
}

// List возвращает копию в исходном порядке.
func (c *MaterialCatalog) List() []model.Material {
	out := make([]model.Material, len(c.list))
	copy(out, c.list)
	return out
}
