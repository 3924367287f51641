package status

import "testing"

func TestBusy(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{Idle, false},
		{Complete, false},
		{Error, false},
		{GeneratingText, true},
		{GeneratingImages, true},
		{GeneratingVideo, true},
		{GeneratingAudio, true},
		{EditingImage, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.Busy(); got != tt.want {
				t.Errorf("%s.Busy() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestTrackerStartsIdle(t *testing.T) {
	tr := NewTracker()
	if tr.Current() != Idle {
		t.Errorf("Current() = %s, want idle", tr.Current())
	}
}

func TestTrackerSetAndSubscribe(t *testing.T) {
	tr := NewTracker()
	sub := tr.Subscribe()

	tr.Set(GeneratingText)
	tr.Set(GeneratingImages)
	tr.Set(Complete)

	if tr.Current() != Complete {
		t.Errorf("Current() = %s, want complete", tr.Current())
	}

	want := []Status{GeneratingText, GeneratingImages, Complete}
	for i, w := range want {
		select {
		case got := <-sub:
			if got != w {
				t.Errorf("transition %d = %s, want %s", i, got, w)
			}
		default:
			t.Fatalf("missing transition %d (%s)", i, w)
		}
	}
}

func TestTrackerIgnoresNoopTransition(t *testing.T) {
	tr := NewTracker()
	sub := tr.Subscribe()

	tr.Set(Idle)

	select {
	case got := <-sub:
		t.Errorf("unexpected notification %s for no-op transition", got)
	default:
	}
}

func TestTrackerSlowSubscriberDoesNotBlock(t *testing.T) {
	tr := NewTracker()
	tr.Subscribe() // never drained

	// More transitions than the subscriber buffer holds.
	states := []Status{
		GeneratingText, GeneratingImages, Complete, Idle,
		EditingImage, Idle, GeneratingVideo, Idle,
		GeneratingAudio, Idle, Error,
	}
	for _, s := range states {
		tr.Set(s)
	}

	if tr.Current() != Error {
		t.Errorf("Current() = %s, want error", tr.Current())
	}
}
