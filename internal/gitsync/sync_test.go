package gitsync

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

type memStore struct {
	mu      sync.Mutex
	payload []byte
	err     error
}

func (m *memStore) Name() string { return "file" }

func (m *memStore) Load(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.payload, nil
}

func (m *memStore) Save(_ context.Context, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.payload = append([]byte(nil), payload...)
	return nil
}

type fakeRunner struct {
	mu      sync.Mutex
	calls   []string
	status  string
	pushErr error
}

func (f *fakeRunner) Run(_ context.Context, args ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, strings.Join(args, " "))
	switch args[0] {
	case "status":
		return f.status, nil
	case "push":
		return "", f.pushErr
	}
	return "", nil
}

func (f *fakeRunner) count(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func testOptions() Options {
	return Options{Path: "database.json", Remote: "origin", Branch: "main", Interval: time.Millisecond}
}

func TestSyncer_SaveCommitsAndPushes(t *testing.T) {
	store := &memStore{}
	runner := &fakeRunner{status: " M database.json\n"}
	s := Wrap(store, runner, testOptions())
	defer s.Close(context.Background())

	if err := s.Save(context.Background(), []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	waitFor(t, func() bool { return runner.count("push") == 1 })

	if runner.count("add -- database.json") != 1 || runner.count("commit -m") != 1 {
		t.Fatalf("expected add and commit, calls = %v", runner.calls)
	}
	if runner.count("push origin HEAD:main") != 1 {
		t.Fatalf("unexpected push args, calls = %v", runner.calls)
	}
	if got, _ := s.Load(context.Background()); string(got) != `{"a":1}` {
		t.Fatalf("inner store not written: %q", got)
	}
}

func TestSyncer_IdenticalPayloadIsNotPushedTwice(t *testing.T) {
	runner := &fakeRunner{status: " M database.json\n"}
	s := Wrap(&memStore{}, runner, testOptions())

	_ = s.Save(context.Background(), []byte("same"))
	waitFor(t, func() bool { return runner.count("push") == 1 })
	_ = s.Save(context.Background(), []byte("same"))

	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if n := runner.count("push"); n != 1 {
		t.Fatalf("push count = %d; want 1", n)
	}
}

func TestSyncer_CleanTreeSkipsCommit(t *testing.T) {
	runner := &fakeRunner{}
	s := Wrap(&memStore{}, runner, testOptions())
	defer s.Close(context.Background())

	_ = s.Save(context.Background(), []byte("x"))
	waitFor(t, func() bool { return runner.count("push") == 1 })
	if runner.count("commit") != 0 {
		t.Fatalf("commit should be skipped on a clean tree, calls = %v", runner.calls)
	}
}

func TestSyncer_InnerFailureSkipsPush(t *testing.T) {
	boom := errors.New("disk full")
	runner := &fakeRunner{status: " M database.json\n"}
	s := Wrap(&memStore{err: boom}, runner, testOptions())

	if err := s.Save(context.Background(), []byte("x")); !errors.Is(err, boom) {
		t.Fatalf("Save err = %v; want %v", err, boom)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if n := len(runner.calls); n != 0 {
		t.Fatalf("git should not run, calls = %v", runner.calls)
	}
}

func TestSyncer_PushFailureIsRetriedOnClose(t *testing.T) {
	runner := &fakeRunner{status: " M database.json\n", pushErr: errors.New("offline")}
	s := Wrap(&memStore{}, runner, testOptions())

	if err := s.Save(context.Background(), []byte("x")); err != nil {
		t.Fatalf("Save must not surface git errors: %v", err)
	}
	waitFor(t, func() bool { return runner.count("push") == 1 })

	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if n := runner.count("push"); n != 2 {
		t.Fatalf("push count = %d; want a retry on close", n)
	}
}

func TestSyncer_CloseIsIdempotent(t *testing.T) {
	s := Wrap(&memStore{}, &fakeRunner{}, testOptions())
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if s.Name() != "file" {
		t.Fatalf("Name = %q", s.Name())
	}
}
