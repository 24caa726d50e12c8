package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		debug     bool
		wantDebug bool
	}{
		{false, false},
		{true, true},
	}
	for _, tt := range tests {
		log, err := New(tt.debug)
		if err != nil {
			t.Fatalf("New(%v): %v", tt.debug, err)
		}
		got := log.Desugar().Core().Enabled(zapcore.DebugLevel)
		if got != tt.wantDebug {
			t.Errorf("New(%v): debug enabled = %v, want %v", tt.debug, got, tt.wantDebug)
		}
		if !log.Desugar().Core().Enabled(zapcore.InfoLevel) {
			t.Errorf("New(%v): info should always be enabled", tt.debug)
		}
	}
}
