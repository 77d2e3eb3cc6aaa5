package schedule

import (
	"errors"
	"reflect"
	"testing"
)

type trace struct {
	ran []string
}

func record(name string) func(*trace) error {
	return func(t *trace) error {
		t.ran = append(t.ran, name)
		return nil
	}
}

func frameSteps() []Step[*trace] {
	return []Step[*trace]{
		{Name: "flush", After: []string{"show_cursor"}, Run: record("flush")},
		{Name: "draw_status_line", After: []string{"draw_rows"}, Run: record("draw_status_line")},
		{Name: "show_cursor", After: []string{"draw_status_line"}, Run: record("show_cursor")},
		{Name: "clear_screen", Before: []string{"draw_rows"}, Run: record("clear_screen")},
		{Name: "draw_rows", Run: record("draw_rows")},
		{Name: "hide_cursor", Before: []string{"clear_screen"}, Run: record("hide_cursor")},
	}
}

func TestRunHonorsConstraintsRegardlessOfRegistration(t *testing.T) {
	want := []string{"hide_cursor", "clear_screen", "draw_rows", "draw_status_line", "show_cursor", "flush"}

	steps := frameSteps()
	for _, perm := range [][]int{{0, 1, 2, 3, 4, 5}, {5, 4, 3, 2, 1, 0}, {2, 0, 4, 1, 5, 3}} {
		s := New[*trace]()
		for _, i := range perm {
			if err := s.Add(steps[i]); err != nil {
				t.Fatalf("add failed: %v", err)
			}
		}
		tr := &trace{}
		if err := s.Run(tr); err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if !reflect.DeepEqual(tr.ran, want) {
			t.Fatalf("registration %v: expected %v, got %v", perm, want, tr.ran)
		}
	}
}

func TestUnconstrainedStepsKeepRegistrationOrder(t *testing.T) {
	s := New[*trace]()
	s.Add(Step[*trace]{Name: "b", Run: record("b")})
	s.Add(Step[*trace]{Name: "a", Run: record("a")})
	s.Add(Step[*trace]{Name: "c", Before: []string{"b"}, Run: record("c")})

	got, err := s.Order()
	if err != nil {
		t.Fatalf("order failed: %v", err)
	}
	if want := []string{"a", "c", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCycleIsRejected(t *testing.T) {
	s := New[*trace]()
	s.Add(Step[*trace]{Name: "a", After: []string{"b"}})
	s.Add(Step[*trace]{Name: "b", After: []string{"a"}})
	if err := s.Run(&trace{}); !errors.Is(err, ErrCycle) {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestUnknownStepIsRejected(t *testing.T) {
	s := New[*trace]()
	s.Add(Step[*trace]{Name: "a", Before: []string{"missing"}})
	if _, err := s.Order(); !errors.Is(err, ErrUnknownStep) {
		t.Fatalf("expected unknown step error, got %v", err)
	}
}

func TestDuplicateStepIsRejected(t *testing.T) {
	s := New[*trace]()
	if err := s.Add(Step[*trace]{Name: "a"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := s.Add(Step[*trace]{Name: "a"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestRunStopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	s := New[*trace]()
	s.Add(Step[*trace]{Name: "first", Run: record("first")})
	s.Add(Step[*trace]{Name: "second", After: []string{"first"}, Run: func(*trace) error { return boom }})
	s.Add(Step[*trace]{Name: "third", After: []string{"second"}, Run: record("third")})

	tr := &trace{}
	err := s.Run(tr)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if err.Error() != "second: boom" {
		t.Fatalf("expected step name in error, got %q", err.Error())
	}
	if !reflect.DeepEqual(tr.ran, []string{"first"}) {
		t.Fatalf("expected only first to run, got %v", tr.ran)
	}
}

func TestEmptyScheduleRuns(t *testing.T) {
	if err := New[*trace]().Run(&trace{}); err != nil {
		t.Fatalf("expected empty schedule to run, got %v", err)
	}
}
