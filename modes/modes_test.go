package modes

import "testing"

type recordingObserver struct {
	mouseTracking      []bool
	altScrolling       []bool
	bracketedPaste     []bool
	columns            []int
	appScreen          []bool
	screenModeCalls    []struct {
		m  Mode
		on bool
	}
}

func (r *recordingObserver) MouseTrackingRequested(enabled bool) {
	r.mouseTracking = append(r.mouseTracking, enabled)
}
func (r *recordingObserver) AlternateScrollingChanged(enabled bool) {
	r.altScrolling = append(r.altScrolling, enabled)
}
func (r *recordingObserver) BracketedPasteChanged(enabled bool) {
	r.bracketedPaste = append(r.bracketedPaste, enabled)
}
func (r *recordingObserver) ColumnsChanged(columns int) {
	r.columns = append(r.columns, columns)
}
func (r *recordingObserver) AppScreenChanged(enabled bool) {
	r.appScreen = append(r.appScreen, enabled)
}
func (r *recordingObserver) SetScreenMode(m Mode, on bool) {
	r.screenModeCalls = append(r.screenModeCalls, struct {
		m  Mode
		on bool
	}{m, on})
}

func TestNewPowerOnDefaults(t *testing.T) {
	s := New(nil)
	if !s.Get(Ansi) {
		t.Fatal("Ansi should be on by default")
	}
	if s.Get(Insert) || s.Get(Cursor) || s.Get(Mouse1000) {
		t.Fatal("non-Ansi modes should be off by default")
	}
}

func TestMouseTrackingMutualExclusion(t *testing.T) {
	obs := &recordingObserver{}
	s := New(obs)
	s.SetMode(Mouse1000)
	s.SetMode(Mouse1002)
	if s.Get(Mouse1000) {
		t.Fatal("Mouse1000 should be cleared when Mouse1002 is set")
	}
	if !s.Get(Mouse1002) {
		t.Fatal("Mouse1002 should be set")
	}
	if len(obs.mouseTracking) != 2 || !obs.mouseTracking[1] {
		t.Fatalf("MouseTrackingRequested not fired as expected: %+v", obs.mouseTracking)
	}
}

func TestMouseEncodingMutualExclusion(t *testing.T) {
	s := New(nil)
	s.SetMode(Mouse1006)
	s.SetMode(Mouse1015)
	if s.Get(Mouse1006) {
		t.Fatal("Mouse1006 should be cleared when Mouse1015 is set")
	}
	if !s.Get(Mouse1015) {
		t.Fatal("Mouse1015 should be set")
	}
}

func TestColumns132GatedByAllow132Columns(t *testing.T) {
	obs := &recordingObserver{}
	s := New(obs)
	s.SetMode(Columns132)
	if s.Get(Columns132) {
		t.Fatal("Columns132 must no-op when Allow132Columns is off")
	}
	s.SetMode(Allow132Columns)
	s.SetMode(Columns132)
	if !s.Get(Columns132) {
		t.Fatal("Columns132 should take effect once Allow132Columns is on")
	}
	if len(obs.columns) != 1 || obs.columns[0] != 132 {
		t.Fatalf("ColumnsChanged(132) not fired: %+v", obs.columns)
	}
}

func TestAppScreenObserverFires(t *testing.T) {
	obs := &recordingObserver{}
	s := New(obs)
	s.SetMode(AppScreen)
	s.ResetMode(AppScreen)
	if len(obs.appScreen) != 2 || !obs.appScreen[0] || obs.appScreen[1] {
		t.Fatalf("AppScreenChanged sequence wrong: %+v", obs.appScreen)
	}
}

func TestScreenForwardedModes(t *testing.T) {
	obs := &recordingObserver{}
	s := New(obs)
	s.SetMode(Insert)
	s.SetMode(Origin)
	s.SetMode(NewLine)
	if len(obs.screenModeCalls) != 3 {
		t.Fatalf("expected 3 forwarded calls, got %d: %+v", len(obs.screenModeCalls), obs.screenModeCalls)
	}
}

func TestSaveRestoreMode(t *testing.T) {
	s := New(nil)
	s.SetMode(Insert)
	s.SaveMode(Insert)
	s.ResetMode(Insert)
	if s.Get(Insert) {
		t.Fatal("Insert should be off after ResetMode")
	}
	s.RestoreMode(Insert)
	if !s.Get(Insert) {
		t.Fatal("RestoreMode should bring Insert back on regardless of intervening changes")
	}
}

func TestResetPreservesSurvivingModes(t *testing.T) {
	s := New(nil)
	s.SetMode(Allow132Columns)
	s.SetMode(Mouse1007)
	s.SetMode(Insert)
	s.SetMode(Mouse1000)
	s.Reset()
	if !s.Get(Ansi) {
		t.Fatal("Reset must force Ansi on")
	}
	if !s.Get(Allow132Columns) {
		t.Fatal("Reset must preserve Allow132Columns across Reset")
	}
	if !s.Get(Mouse1007) {
		t.Fatal("Reset must preserve Mouse1007 across Reset")
	}
	if s.Get(Insert) || s.Get(Mouse1000) {
		t.Fatal("Reset must clear all other modes")
	}
}
