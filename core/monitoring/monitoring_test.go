package monitoring

import (
	"errors"
	"testing"
	"time"
)

type fakeMonitor struct {
	errs    []error
	tags    []map[string]string
	flushed bool
}

func (f *fakeMonitor) CaptureException(err error, tags map[string]string) {
	f.errs = append(f.errs, err)
	f.tags = append(f.tags, tags)
}

func (f *fakeMonitor) Flush(time.Duration) { f.flushed = true }

func TestCapture(t *testing.T) {
	m := &fakeMonitor{}
	Init(m)
	defer Init(nil)

	CaptureException(nil, nil)
	CaptureException(errors.New("boom"), map[string]string{"route": "/x"})
	err := CapturePanic("bad input", nil)
	Flush(time.Second)

	if len(m.errs) != 2 {
		t.Fatalf("expected 2 captured errors got %d", len(m.errs))
	}
	if m.tags[0]["route"] != "/x" {
		t.Fatalf("tags not forwarded")
	}
	if err == nil || err.Error() != "panic: bad input" {
		t.Fatalf("unexpected panic error %v", err)
	}
	if !m.flushed {
		t.Fatalf("flush not forwarded")
	}
}
