package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/vesaa/sysdash/internal/models"
	"go.uber.org/zap"
)

// Sampler runs one fetch-and-normalize cycle per call.
// It keeps no state between calls.
type Sampler struct {
	provider Provider
	now      func() time.Time
	log      *zap.Logger
}

// NewSampler creates a Sampler over p. A nil logger discards output.
func NewSampler(p Provider, log *zap.Logger) *Sampler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sampler{provider: p, now: time.Now, log: log}
}

// Sample issues the four provider calls concurrently and normalizes the
// result. The first failing call cancels the others and is returned; no
// partial snapshot is produced.
func (s *Sampler) Sample(ctx context.Context) (*models.Snapshot, error) {
	start := s.now()
	r, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	snap := Normalize(r, s.now())
	s.log.Debug("sampled",
		zap.Float64("cpu", snap.CPU.UsagePercent),
		zap.Float64("ram", snap.RAM.UsagePercent),
		zap.Bool("disk", snap.Disk != nil),
		zap.Duration("took", s.now().Sub(start)),
	)
	return &snap, nil
}

func (s *Sampler) read(ctx context.Context) (Readings, error) {
	var r Readings
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()

	// Each goroutine writes a distinct field of r.
	p.Go(func(ctx context.Context) error {
		l, err := s.provider.CurrentLoad(ctx)
		if err != nil {
			return fmt.Errorf("current load: %w", err)
		}
		r.Load = l
		return nil
	})
	p.Go(func(ctx context.Context) error {
		m, err := s.provider.Memory(ctx)
		if err != nil {
			return fmt.Errorf("memory: %w", err)
		}
		r.Memory = m
		return nil
	})
	p.Go(func(ctx context.Context) error {
		fs, err := s.provider.FileSystems(ctx)
		if err != nil {
			return fmt.Errorf("filesystems: %w", err)
		}
		r.FileSystems = fs
		return nil
	})
	p.Go(func(ctx context.Context) error {
		t, err := s.provider.Temperature(ctx)
		if err != nil {
			return fmt.Errorf("temperature: %w", err)
		}
		r.Temperature = t
		return nil
	})

	if err := p.Wait(); err != nil {
		return Readings{}, err
	}
	return r, nil
}
