package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestRegistryLoadMissingFile(t *testing.T) {
	r := NewRegistry(t.TempDir())
	if err := r.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(r.List()) != 0 {
		t.Errorf("fresh registry has %d notifications, want 0", len(r.List()))
	}
	if r.PermissionGranted() {
		t.Error("fresh registry reports permission granted")
	}
}

func TestRegistryLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "registry.json"), []byte("{corrupt"), 0600); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry(dir)
	if err := r.Load(); err != nil {
		t.Fatalf("Load() error = %v, want corrupt file recreated empty", err)
	}
	if len(r.List()) != 0 {
		t.Errorf("corrupt registry has %d notifications, want 0", len(r.List()))
	}
}

func TestRegistryAddRemoveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	r := NewRegistry(dir)
	if err := r.Load(); err != nil {
		t.Fatal(err)
	}

	if err := r.Add(Notification{ID: "a", Title: "Reminder", Hour: 20}); err != nil {
		t.Fatal(err)
	}
	if err := r.Add(Notification{ID: "b", Title: "Reminder", Hour: 8}); err != nil {
		t.Fatal(err)
	}

	// Reload from disk to verify persistence.
	reloaded := NewRegistry(dir)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}
	if len(reloaded.List()) != 2 {
		t.Fatalf("reloaded registry has %d notifications, want 2", len(reloaded.List()))
	}

	found, err := reloaded.Remove("a")
	if err != nil || !found {
		t.Fatalf("Remove(a) = (%v, %v), want (true, nil)", found, err)
	}
	found, err = reloaded.Remove("a")
	if err != nil || found {
		t.Fatalf("second Remove(a) = (%v, %v), want (false, nil)", found, err)
	}
	if len(reloaded.List()) != 1 || reloaded.List()[0].ID != "b" {
		t.Errorf("registry after remove = %+v, want only b", reloaded.List())
	}
}

func TestRegistryRemoveAll(t *testing.T) {
	r := NewRegistry(t.TempDir())
	if err := r.Load(); err != nil {
		t.Fatal(err)
	}

	removed, err := r.RemoveAll()
	if err != nil || removed != 0 {
		t.Fatalf("RemoveAll() on empty registry = (%d, %v), want (0, nil)", removed, err)
	}

	r.Add(Notification{ID: "a"})
	r.Add(Notification{ID: "b"})
	removed, err = r.RemoveAll()
	if err != nil || removed != 2 {
		t.Fatalf("RemoveAll() = (%d, %v), want (2, nil)", removed, err)
	}
}

// Delivery goroutines read the registry while HTTP handlers mutate it; this
// exercises that interleaving and is meaningful under the race detector.
func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry(t.TempDir())
	if err := r.Load(); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		i := i
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				if err := r.Add(Notification{ID: fmt.Sprintf("n-%d-%d", i, j), Hour: 20}); err != nil {
					t.Error(err)
					return
				}
				if err := r.DecidePermission(j%2 == 0); err != nil {
					t.Error(err)
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				r.PermissionGranted()
				r.List()
			}
		}()
	}
	wg.Wait()

	if got := len(r.List()); got != 100 {
		t.Errorf("registry has %d notifications after concurrent adds, want 100", got)
	}
}

func TestRegistryPermissionDecision(t *testing.T) {
	dir := t.TempDir()
	r := NewRegistry(dir)
	if err := r.Load(); err != nil {
		t.Fatal(err)
	}

	if err := r.DecidePermission(true); err != nil {
		t.Fatal(err)
	}
	if !r.PermissionGranted() {
		t.Error("PermissionGranted() = false after granting")
	}

	reloaded := NewRegistry(dir)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}
	if !reloaded.PermissionGranted() {
		t.Error("grant decision not persisted across reload")
	}

	if err := reloaded.DecidePermission(false); err != nil {
		t.Fatal(err)
	}
	if reloaded.PermissionGranted() {
		t.Error("PermissionGranted() = true after denial")
	}
}
