package catalog_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"lensfit-service/internal/catalog"
	"lensfit-service/internal/lens/model"
)

func TestStoreAppendBumpsVersion(t *testing.T) {
	rq := require.New(t)
	s := catalog.NewStore(catalog.DemoFrames())

	frames, v0 := s.List()
	rq.Len(frames, 3)

	rq.Equal(3, s.Append(nil))
	rq.Equal(v0, s.Version())

	res := catalog.Parse("A,DBL\n50,20\n")
	rq.Equal(4, s.Append(res.Frames))
	rq.Greater(s.Version(), v0)
	rq.Equal(4, s.Len())
}

func TestStoreListIsSnapshot(t *testing.T) {
	s := catalog.NewStore(catalog.DemoFrames())

	frames, _ := s.List()
	frames[0].Brand = "mutated"

	again, _ := s.List()
	require.Equal(t, "Round S", again[0].Brand)
}

func TestStoreAdd(t *testing.T) {
	rq := require.New(t)
	s := catalog.NewStore(nil)

	f, err := s.Add(model.Frame{ID: "ignored", Brand: "  ", A: 48, B: 40, DBL: 20, Stock: -2})
	rq.NoError(err)
	rq.NotEqual("ignored", f.ID)
	rq.Equal(catalog.UnnamedBrand, f.Brand)
	rq.Zero(f.Stock)
	rq.Equal(1, s.Len())
	rq.Equal(uint64(1), s.Version())
}

func TestStoreAddRejectsBadGeometry(t *testing.T) {
	tests := []struct {
		name  string
		frame model.Frame
	}{
		{"zero A", model.Frame{A: 0, DBL: 20}},
		{"negative DBL", model.Frame{A: 50, DBL: -1}},
		{"negative B", model.Frame{A: 50, B: -3, DBL: 20}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := catalog.NewStore(nil)
			_, err := s.Add(tc.frame)
			require.ErrorIs(t, err, catalog.ErrInvalidFrame)
			require.Zero(t, s.Len())
		})
	}
}

func TestStoreConcurrentAppend(t *testing.T) {
	s := catalog.NewStore(nil)
	frames := catalog.Parse("A,DBL\n50,20\n51,20\n").Frames

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Append(frames)
			_, _ = s.List()
		}()
	}
	wg.Wait()

	require.Equal(t, 40, s.Len())
	require.Equal(t, uint64(20), s.Version())
}
