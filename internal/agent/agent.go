package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"github.com/amacleod/pulse/internal/keyring"
	"github.com/amacleod/pulse/internal/logger"
)

// Agent is the device's notification platform: it owns the scheduled
// notification set, fires each one daily at its configured time, and serves a
// loopback HTTP API the CLI consumes. Exactly one agent runs per device,
// advertised through a lockfile of the form "port|pid|secret".
type Agent struct {
	cfg      Config
	registry *Registry
	sched    gocron.Scheduler
	secret   string

	// mu guards the jobs map and keeps registry+scheduler mutations atomic
	// across handlers. The registry carries its own lock for the delivery
	// goroutines' reads.
	mu   sync.Mutex
	jobs map[string]uuid.UUID
}

func New(cfg Config) *Agent {
	return &Agent{
		cfg:      cfg,
		registry: NewRegistry(cfg.ConfigDir),
		jobs:     make(map[string]uuid.UUID),
	}
}

// Run starts the agent and blocks until ctx is cancelled.
func (a *Agent) Run(ctx context.Context) error {
	if err := a.registry.Load(); err != nil {
		return err
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	a.sched = sched

	for _, n := range a.registry.List() {
		if err := a.addJob(n); err != nil {
			logger.Warn("Failed to schedule notification job", "id", n.ID, "error", err)
		}
	}
	a.sched.Start()

	a.secret = uuid.NewString()

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", a.cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port

	lockfile := LockfilePath(a.cfg.ConfigDir)
	if err := a.writeLockfile(lockfile, port); err != nil {
		listener.Close()
		return err
	}
	defer os.Remove(lockfile)

	// Keyring copy lets the CLI recover the secret if the lockfile is ever
	// trimmed to "port|pid" by an older agent build.
	if err := keyring.SetAgentSecret(a.secret); err != nil {
		logger.Debug("Could not store agent secret in keyring", "error", err)
	}

	srv := &http.Server{
		Handler:           a.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()
	logger.Info("Agent listening", "port", port)
	fmt.Printf("pulse agent listening on 127.0.0.1:%d\n", port)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
		return a.sched.Shutdown()
	case err := <-errCh:
		a.sched.Shutdown()
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (a *Agent) writeLockfile(path string, port int) error {
	if err := os.MkdirAll(a.cfg.ConfigDir, 0700); err != nil {
		return fmt.Errorf("failed to create agent config directory: %w", err)
	}
	content := fmt.Sprintf("%d|%d|%s", port, os.Getpid(), a.secret)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write lockfile: %w", err)
	}
	return nil
}

var newJobFunc = func(sched gocron.Scheduler, n Notification, task any) (gocron.Job, error) {
	return sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(n.Hour), uint(n.Minute), 0))),
		gocron.NewTask(task, n),
		gocron.WithName(n.ID),
	)
}

func (a *Agent) addJob(n Notification) error {
	job, err := newJobFunc(a.sched, n, a.deliver)
	if err != nil {
		return err
	}
	a.jobs[n.ID] = job.ID()
	return nil
}

func (a *Agent) removeJob(id string) {
	if jobID, ok := a.jobs[id]; ok {
		if err := a.sched.RemoveJob(jobID); err != nil {
			logger.Debug("Failed to remove job", "id", id, "error", err)
		}
		delete(a.jobs, id)
	}
}

// deliver fires one notification through the configured notify command.
// Delivery failures are logged and never fatal.
func (a *Agent) deliver(n Notification) {
	if !a.registry.PermissionGranted() {
		logger.Debug("Skipping delivery, notifications not permitted", "id", n.ID)
		return
	}

	parts := strings.Fields(a.cfg.NotifyCommand)
	if len(parts) == 0 {
		logger.Warn("No notify command configured")
		return
	}
	args := append(parts[1:], n.Title, n.Body)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := exec.CommandContext(ctx, parts[0], args...).Run(); err != nil {
		logger.Warn("Notification delivery failed", "id", n.ID, "error", err)
		return
	}
	logger.Info("Delivered notification", "id", n.ID, "title", n.Title)
}

func (a *Agent) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/scheduled", a.handleList)
	mux.HandleFunc("POST /api/v1/scheduled", a.handleSchedule)
	mux.HandleFunc("DELETE /api/v1/scheduled/{id}", a.handleCancel)
	mux.HandleFunc("DELETE /api/v1/scheduled", a.handleCancelAll)
	mux.HandleFunc("GET /api/v1/permissions", a.handlePermissions)
	mux.HandleFunc("POST /api/v1/permissions/request", a.handlePermissionRequest)
	return a.requireSecret(mux)
}

func (a *Agent) requireSecret(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Pulse-Secret") != a.secret {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Agent) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.registry.List())
}

type scheduleRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Sound  bool   `json:"sound"`
	Kind   string `json:"kind"`
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
}

func (a *Agent) handleSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Hour < 0 || req.Hour > 23 || req.Minute < 0 || req.Minute > 59 {
		http.Error(w, "hour/minute out of range", http.StatusBadRequest)
		return
	}

	n := Notification{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Body:      req.Body,
		Kind:      req.Kind,
		Sound:     req.Sound,
		Hour:      req.Hour,
		Minute:    req.Minute,
		CreatedAt: time.Now(),
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.registry.Add(n); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := a.addJob(n); err != nil {
		// Without a live job the persisted entry would never fire; roll it
		// back so the client's error reflects the actual state.
		if _, rbErr := a.registry.Remove(n.ID); rbErr != nil {
			logger.Warn("Failed to roll back unscheduled notification", "id", n.ID, "error", rbErr)
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": n.ID})
}

func (a *Agent) handleCancel(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	a.mu.Lock()
	defer a.mu.Unlock()
	found, err := a.registry.Remove(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	a.removeJob(id)
	w.WriteHeader(http.StatusNoContent)
}

func (a *Agent) handleCancelAll(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, n := range a.registry.List() {
		a.removeJob(n.ID)
	}
	removed, err := a.registry.RemoveAll()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

func (a *Agent) handlePermissions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"granted": a.registry.PermissionGranted()})
}

func (a *Agent) handlePermissionRequest(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.registry.PermissionGranted() {
		if err := a.registry.DecidePermission(a.cfg.AutoGrant); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"granted": a.registry.PermissionGranted()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
