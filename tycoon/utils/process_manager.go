package utils

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// ProcessManager owns the server's long-running goroutines (the expiry
// sweeper, the ledger archiver) and stops them together on shutdown.
type ProcessManager struct {
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.RWMutex
	processes map[string]*Process
}

// Process describes a running job.
type Process struct {
	Name        string
	Description string
	StartedAt   time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

func NewProcessManager(parent context.Context) *ProcessManager {
	ctx, cancel := context.WithCancel(parent)
	return &ProcessManager{
		ctx:       ctx,
		cancel:    cancel,
		processes: make(map[string]*Process),
	}
}

// Start runs fn in its own goroutine under name. Starting a name that is
// already running replaces the old job after it has stopped. A panic in fn is
// logged and ends only that job.
func (pm *ProcessManager) Start(name, description string, fn func(ctx context.Context) error) {
	pm.mu.Lock()
	if old, ok := pm.processes[name]; ok {
		slog.Warn("Process already running, replacing it",
			slog.String("type", "sys"),
			slog.String("process", name))
		old.cancel()
		delete(pm.processes, name)
		pm.mu.Unlock()
		<-old.done
		pm.mu.Lock()
	}

	ctx, cancel := context.WithCancel(pm.ctx)
	p := &Process{
		Name:        name,
		Description: description,
		StartedAt:   time.Now(),
		cancel:      cancel,
		done:        make(chan struct{}),
	}
	pm.processes[name] = p
	pm.mu.Unlock()

	pm.wg.Add(1)
	go func() {
		defer pm.wg.Done()
		defer close(p.done)
		defer pm.remove(p)
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Background process panicked",
					slog.String("type", "error"),
					slog.String("process", name),
					slog.Any("panic", r))
			}
		}()

		slog.Info("Background process started",
			slog.String("type", "sys"),
			slog.String("process", name),
			slog.String("description", description))

		err := fn(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Background process failed",
				slog.String("type", "error"),
				slog.String("process", name),
				slog.Any("error", err))
			return
		}

		slog.Info("Background process stopped",
			slog.String("type", "sys"),
			slog.String("process", name))
	}()
}

func (pm *ProcessManager) remove(p *Process) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if cur, ok := pm.processes[p.Name]; ok && cur == p {
		delete(pm.processes, p.Name)
	}
}

// Stop cancels one job and waits for it to return.
func (pm *ProcessManager) Stop(name string) bool {
	pm.mu.Lock()
	p, ok := pm.processes[name]
	if ok {
		delete(pm.processes, name)
	}
	pm.mu.Unlock()

	if !ok {
		return false
	}
	p.cancel()
	<-p.done
	return true
}

// Shutdown cancels every job and waits up to timeout for them to return.
func (pm *ProcessManager) Shutdown(timeout time.Duration) error {
	slog.Info("Stopping background processes",
		slog.String("type", "sys"),
		slog.Int("count", pm.Count()))

	pm.cancel()

	done := make(chan struct{})
	go func() {
		pm.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("background processes still running after %s: %w", timeout, context.DeadlineExceeded)
	}
}

func (pm *ProcessManager) Count() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.processes)
}

// List returns the running jobs ordered by name.
func (pm *ProcessManager) List() []Process {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	out := make([]Process, 0, len(pm.processes))
	for _, p := range pm.processes {
		out = append(out, Process{Name: p.Name, Description: p.Description, StartedAt: p.StartedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
