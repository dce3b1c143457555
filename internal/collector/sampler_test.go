package collector

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider returns canned readings; any non-nil error field fails that call.
type fakeProvider struct {
	mu sync.Mutex

	load  Load
	mem   Memory
	fs    []FileSystem
	temp  Temperature
	fsErr error

	// barrier, when set, blocks each call until all four calls have started.
	barrier *sync.WaitGroup
}

func (f *fakeProvider) wait(ctx context.Context) error {
	if f.barrier == nil {
		return nil
	}
	f.barrier.Done()
	done := make(chan struct{})
	go func() {
		f.barrier.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(2 * time.Second):
		return errors.New("provider calls were not concurrent")
	}
}

func (f *fakeProvider) CurrentLoad(ctx context.Context) (Load, error) {
	if err := f.wait(ctx); err != nil {
		return Load{}, err
	}
	return f.load, nil
}

func (f *fakeProvider) Memory(ctx context.Context) (Memory, error) {
	if err := f.wait(ctx); err != nil {
		return Memory{}, err
	}
	return f.mem, nil
}

func (f *fakeProvider) FileSystems(ctx context.Context) ([]FileSystem, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fsErr != nil {
		return nil, f.fsErr
	}
	return f.fs, nil
}

func (f *fakeProvider) Temperature(ctx context.Context) (Temperature, error) {
	if err := f.wait(ctx); err != nil {
		return Temperature{}, err
	}
	return f.temp, nil
}

func (f *fakeProvider) setFSErr(err error) {
	f.mu.Lock()
	f.fsErr = err
	f.mu.Unlock()
}

func TestSamplerSample(t *testing.T) {
	c := 51.0
	p := &fakeProvider{
		load: Load{Percent: 7.25},
		mem:  Memory{Total: 1000, Used: 400, Free: 500},
		fs:   []FileSystem{{Mount: "/", Size: 100, Used: 30, UsePercent: 30}},
		temp: Temperature{Main: &c},
	}
	s := NewSampler(p, nil)
	s.now = func() time.Time { return testAt }

	snap, err := s.Sample(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7.3, snap.CPU.UsagePercent)
	assert.Equal(t, 40.0, snap.RAM.UsagePercent)
	require.NotNil(t, snap.Disk)
	assert.Equal(t, uint64(70), snap.Disk.FreeBytes)
	require.NotNil(t, snap.Temperature.Celsius)
	assert.Equal(t, 51.0, *snap.Temperature.Celsius)
	assert.True(t, snap.At.Equal(testAt.Truncate(time.Millisecond)))
}

func TestSamplerRunsCallsConcurrently(t *testing.T) {
	var barrier sync.WaitGroup
	barrier.Add(4)
	p := &fakeProvider{mem: Memory{Total: 1}, barrier: &barrier}

	_, err := NewSampler(p, nil).Sample(context.Background())
	require.NoError(t, err)
}

func TestSamplerFailsWhole(t *testing.T) {
	p := &fakeProvider{
		mem:   Memory{Total: 1000, Used: 400},
		fsErr: errors.New("statfs: permission denied"),
	}

	snap, err := NewSampler(p, nil).Sample(context.Background())
	require.Error(t, err)
	assert.Nil(t, snap)
	assert.Contains(t, err.Error(), "filesystems")
	assert.Contains(t, err.Error(), "permission denied")
}

func TestSamplerRecoversAfterFailure(t *testing.T) {
	p := &fakeProvider{
		mem:   Memory{Total: 1000, Used: 400},
		fs:    []FileSystem{{Mount: "/"}},
		fsErr: errors.New("boom"),
	}
	s := NewSampler(p, nil)

	_, err := s.Sample(context.Background())
	require.Error(t, err)

	p.setFSErr(nil)
	snap, err := s.Sample(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 40.0, snap.RAM.UsagePercent)
}
