package stimulus

import (
	"os"
	"testing"

	"github.com/mordilloSan/go-logger/logger"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Config{Levels: []logger.Level{logger.ErrorLevel}})
	os.Exit(m.Run())
}

func TestDisplayStartsIdle(t *testing.T) {
	if got := NewDisplay().Current(); got != KindIdle {
		t.Errorf("fresh display shows %q, want %q", got, KindIdle)
	}
}

func TestDisplayShow(t *testing.T) {
	d := NewDisplay()
	for _, k := range Kinds() {
		if err := d.Show(k); err != nil {
			t.Errorf("show %q: %v", k, err)
		}
		if d.Current() != k {
			t.Errorf("current is %q after showing %q", d.Current(), k)
		}
	}
}

func TestDisplayRejectsUnknown(t *testing.T) {
	d := NewDisplay()
	if err := d.Show("strobe"); err == nil {
		t.Fatal("expected an error for an unknown stimulus")
	}
	if d.Current() != KindIdle {
		t.Errorf("failed show changed the display to %q", d.Current())
	}
}
