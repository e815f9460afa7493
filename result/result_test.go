package result_test

import (
	"errors"
	"testing"

	. "github.com/npillmayer/champ/result"
)

func TestResultSimple(t *testing.T) {
	x := Ok(7) // infers type
	y := Err[int](errors.New("not ok"))

	var v int
	var e error

	switch m := x.Match(); m {
	case m.Ok(&v):
		t.Logf("Ok(%d)", v)
	case m.Err(&e):
		t.Logf("Err")
	}
	if v != 7 {
		t.Errorf("expected v to be 7, is %#v", v)
	}

	switch m := y.Match(); m {
	case m.Ok(&v):
		t.Logf("Ok(%d)", v)
	case m.Err(&e):
		t.Logf("Err: %s", e.Error())
	}
	if e == nil {
		t.Errorf("expected error to be non-nil, but it is nil")
	}
}

func TestResultOf(t *testing.T) {
	r := Of(42, nil)
	if v, err := r.Get(); err != nil || v != 42 || !r.IsOk() {
		t.Errorf("expected Of(42, nil) to be Ok(42), is %v / %v", v, err)
	}
	notOk := errors.New("not ok")
	r = Of(0, notOk)
	if _, err := r.Get(); !errors.Is(err, notOk) || r.IsOk() {
		t.Errorf("expected Of(0, err) to be Err, is %v", err)
	}
}

func TestErrWithNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected Err(nil) to panic, didn't")
		}
	}()
	Err[int](nil)
}
