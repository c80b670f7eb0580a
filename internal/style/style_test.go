package style

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/qrsheet/internal/qr"
)

const customURI = "data:image/png;base64,AAAA"

func TestBuiltInLogoClearsCustom(t *testing.T) {
	var s State
	s.SetCustomLogo(customURI)
	s.SetBuiltInLogo(true)

	if s.CustomLogo != "" {
		t.Errorf("custom logo = %q, want none", s.CustomLogo)
	}
	if !s.BuiltInLogo() {
		t.Error("built-in flag should be set")
	}
	if got := ResolveLogo(s); got != qr.BuiltinLogo {
		t.Errorf("resolved logo is not the built-in one")
	}
}

func TestCustomLogoClearsBuiltIn(t *testing.T) {
	s := DefaultState()
	s.SetCustomLogo(customURI)

	if s.BuiltInLogo() {
		t.Error("built-in flag should be cleared")
	}
	if s.LogoMode != LogoCustom || ResolveLogo(s) != customURI {
		t.Errorf("mode = %v, resolved = %q", s.LogoMode, ResolveLogo(s))
	}
}

func TestClearCustomLogoFallsBack(t *testing.T) {
	var s State
	s.SetCustomLogo(customURI)
	s.ClearCustomLogo()
	if s.LogoMode != LogoNone || ResolveLogo(s) != "" {
		t.Errorf("after clearing: mode = %v, resolved = %q", s.LogoMode, ResolveLogo(s))
	}

	s.SetBuiltInLogo(true)
	s.ClearCustomLogo()
	if !s.BuiltInLogo() {
		t.Error("clearing the file selection must keep a checked built-in logo")
	}

	s.SetBuiltInLogo(false)
	if s.LogoMode != LogoNone {
		t.Errorf("unchecking built-in: mode = %v, want none", s.LogoMode)
	}

	s.SetCustomLogo("")
	if s.LogoMode != LogoNone || s.CustomLogo != "" {
		t.Error("empty custom logo should behave like clearing")
	}
}

func TestLogoInvariantHoldsForAnySequence(t *testing.T) {
	ops := []func(*State){
		func(s *State) { s.SetBuiltInLogo(true) },
		func(s *State) { s.SetBuiltInLogo(false) },
		func(s *State) { s.SetCustomLogo(customURI) },
		func(s *State) { s.ClearCustomLogo() },
	}
	// Every sequence of three operations.
	for a := range ops {
		for b := range ops {
			for c := range ops {
				var s State
				for _, i := range []int{a, b, c} {
					ops[i](&s)
					if (s.LogoMode == LogoCustom) != (s.CustomLogo != "") {
						t.Fatalf("sequence %d,%d,%d broke the invariant: %+v", a, b, c, s)
					}
				}
			}
		}
	}
}

func newTestSession() *Session {
	return newSession("test", DefaultState(), qr.NewCanvas(&qr.PlainRenderer{}, 64, 64))
}

func TestLastStartedUploadWins(t *testing.T) {
	sess := newTestSession()

	first := sess.BeginLogoRead()
	second := sess.BeginLogoRead()

	if _, applied := sess.CompleteLogoRead(second, "data:image/png;base64,BBBB"); !applied {
		t.Fatal("newest read should apply")
	}
	if _, applied := sess.CompleteLogoRead(first, customURI); applied {
		t.Fatal("superseded read applied after a newer one")
	}
	if got := sess.State().CustomLogo; got != "data:image/png;base64,BBBB" {
		t.Errorf("custom logo = %q", got)
	}
}

func TestBuiltInToggleSupersedesInFlightUpload(t *testing.T) {
	sess := newTestSession()
	ticket := sess.BeginLogoRead()
	sess.SetBuiltInLogo(true)

	st, applied := sess.CompleteLogoRead(ticket, customURI)
	if applied {
		t.Fatal("upload started before the toggle should be dropped")
	}
	if !st.BuiltInLogo() || st.CustomLogo != "" {
		t.Errorf("state = %+v", st)
	}
}

func TestSessionConcurrentUpdates(t *testing.T) {
	sess := newTestSession()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tk := sess.BeginLogoRead()
			sess.Update(func(st *State) { st.TopCaption = "x" })
			sess.CompleteLogoRead(tk, customURI)
		}()
	}
	wg.Wait()
	st := sess.State()
	if (st.LogoMode == LogoCustom) != (st.CustomLogo != "") {
		t.Errorf("invariant broken: %+v", st)
	}
}

func TestStore(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	store := NewStore(time.Minute, DefaultState(), func() *qr.Canvas {
		return qr.NewCanvas(&qr.PlainRenderer{}, 64, 64)
	}, logger)

	sess, created := store.GetOrCreate("")
	if !created || sess.ID == "" {
		t.Fatalf("expected a new session, got created=%v id=%q", created, sess.ID)
	}
	again, created := store.GetOrCreate(sess.ID)
	if created || again != sess {
		t.Fatal("expected the same session back")
	}
	if _, ok := store.Get("missing"); ok {
		t.Fatal("unknown id should not resolve")
	}
	if store.Count() != 1 {
		t.Errorf("count = %d, want 1", store.Count())
	}
	if sess.State() != DefaultState() {
		t.Error("new session should start from the defaults")
	}
}
