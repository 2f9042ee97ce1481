package host

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

type echoInterpreter struct {
	props  Properties
	opened bool
	closed bool
}

func (e *echoInterpreter) Open() error {
	e.opened = true
	return nil
}

func (e *echoInterpreter) Close() error {
	e.closed = true
	return nil
}

func (e *echoInterpreter) Interpret(_ context.Context, text string) Result {
	return Result{Code: Success, Message: e.props.Get("echo.prefix", "") + text}
}

func (e *echoInterpreter) Cancel() {}

func (e *echoInterpreter) FormType() FormType { return FormSimple }

func (e *echoInterpreter) Progress() int { return 0 }

func (e *echoInterpreter) Completion(string, int) []string { return nil }

func echoRegistration(last **echoInterpreter) Registration {
	return Registration{
		Group:      "echo",
		Name:       "text",
		Properties: []Property{{Key: "echo.prefix", Default: "> "}, {Key: "echo.unused", Default: "d"}},
		Factory: func(props Properties) (Interpreter, error) {
			e := &echoInterpreter{props: props}
			if last != nil {
				*last = e
			}
			return e, nil
		},
	}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name    string
		reg     Registration
		wantErr string
	}{
		{name: "valid", reg: echoRegistration(nil)},
		{name: "missing name", reg: Registration{Group: "echo", Factory: echoRegistration(nil).Factory}, wantErr: "group and name are required"},
		{name: "nil factory", reg: Registration{Group: "echo", Name: "x"}, wantErr: "factory is nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRegistry().Register(tt.reg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Register() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Register() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(echoRegistration(nil)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.Register(echoRegistration(nil)); !errors.Is(err, ErrDuplicate) {
		t.Errorf("second Register() error = %v, want ErrDuplicate", err)
	}
}

func TestListSorted(t *testing.T) {
	r := NewRegistry()
	factory := echoRegistration(nil).Factory
	for _, k := range [][2]string{{"sql", "b"}, {"md", "z"}, {"sql", "a"}} {
		if err := r.Register(Registration{Group: k[0], Name: k[1], Factory: factory}); err != nil {
			t.Fatal(err)
		}
	}
	var got []string
	for _, reg := range r.List() {
		got = append(got, reg.Key())
	}
	if want := "md.z,sql.a,sql.b"; strings.Join(got, ",") != want {
		t.Errorf("List() = %v, want %s", got, want)
	}
}

func TestResolve(t *testing.T) {
	reg := echoRegistration(nil)
	props := reg.Resolve(func(key string) (string, bool) {
		if key == "echo.prefix" {
			return "$ ", true
		}
		return "", false
	})
	if props["echo.prefix"] != "$ " {
		t.Errorf("echo.prefix = %q, want configured value", props["echo.prefix"])
	}
	if props["echo.unused"] != "d" {
		t.Errorf("echo.unused = %q, want default", props["echo.unused"])
	}
	if got := reg.Resolve(nil)["echo.prefix"]; got != "> " {
		t.Errorf("Resolve(nil) echo.prefix = %q, want default", got)
	}
}

func TestOpenRunClose(t *testing.T) {
	r := NewRegistry()
	var interp *echoInterpreter
	if err := r.Register(echoRegistration(&interp)); err != nil {
		t.Fatal(err)
	}

	if _, err := r.Open("echo", "missing", nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("Open(missing) error = %v, want ErrNotFound", err)
	}

	s, err := r.Open("echo", "text", nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !interp.opened {
		t.Error("Open() did not open the interpreter")
	}
	if !strings.HasPrefix(s.Scheduler().Name(), "echo.text#") {
		t.Errorf("scheduler name = %q", s.Scheduler().Name())
	}

	res := s.Run(context.Background(), "hi")
	if res.Code != Success || res.Message != "> hi" {
		t.Errorf("Run() = %+v", res)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !interp.closed {
		t.Error("Close() did not close the interpreter")
	}
	if res := s.Run(context.Background(), "late"); res.Code != Error || res.Message != ErrSchedulerStopped.Error() {
		t.Errorf("Run() after Close = %+v", res)
	}
}

func TestFIFOOrder(t *testing.T) {
	s := NewFIFOScheduler("order")
	defer s.Stop()

	var mu sync.Mutex
	var order []int
	release := make(chan struct{})

	// The first job blocks so the rest queue up behind it.
	started := make(chan struct{})
	go func() {
		_, _ = s.Submit(context.Background(), func() Result {
			close(started)
			<-release
			mu.Lock()
			order = append(order, 0)
			mu.Unlock()
			return Result{}
		})
	}()
	<-started

	var wg sync.WaitGroup
	for i := 1; i <= 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = s.Submit(context.Background(), func() Result {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return Result{}
			})
		}(i)
		// Give each submitter time to enqueue before the next.
		time.Sleep(10 * time.Millisecond)
	}
	close(release)
	wg.Wait()

	for i, v := range order {
		if v != i {
			t.Fatalf("order = %v, want ascending", order)
		}
	}
	if len(order) != 6 {
		t.Errorf("ran %d jobs, want 6", len(order))
	}
}

func TestSubmitContextCanceled(t *testing.T) {
	s := NewFIFOScheduler("ctx")
	defer s.Stop()

	block := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	_, err := s.Submit(ctx, func() Result {
		<-block
		return Result{}
	})
	close(block)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Submit() error = %v, want context.Canceled", err)
	}
}

// blockingInterpreter holds every paragraph until release is closed and
// reports the context error it sees afterwards.
type blockingInterpreter struct {
	echoInterpreter
	started chan struct{}
	release chan struct{}
	seen    chan error
}

func (b *blockingInterpreter) Interpret(ctx context.Context, text string) Result {
	close(b.started)
	<-b.release
	b.seen <- ctx.Err()
	return Result{Code: Success, Message: text}
}

func TestRunCancelDoesNotAbortInterpret(t *testing.T) {
	b := &blockingInterpreter{
		started: make(chan struct{}),
		release: make(chan struct{}),
		seen:    make(chan error, 1),
	}
	r := NewRegistry()
	err := r.Register(Registration{
		Group: "block",
		Name:  "sql",
		Factory: func(Properties) (Interpreter, error) {
			return b, nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	s, err := r.Open("block", "sql", nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan Result, 1)
	go func() { done <- s.Run(ctx, "select 1") }()

	<-b.started
	cancel()
	if res := <-done; res.Code != Error || res.Message != context.Canceled.Error() {
		t.Errorf("Run() after cancel = %+v, want canceled wait", res)
	}

	close(b.release)
	if err := <-b.seen; err != nil {
		t.Errorf("interpreter context error = %v, want nil", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestCodeString(t *testing.T) {
	if Success.String() != "SUCCESS" || Error.String() != "ERROR" {
		t.Errorf("Code strings = %s, %s", Success, Error)
	}
	if FormSimple.String() != "simple" {
		t.Errorf("FormSimple = %s", FormSimple)
	}
}
