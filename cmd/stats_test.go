package cmd

import (
	"testing"

	"github.com/rionatty/ampower-visualize/internal/config"
)

func TestStatsLimits(t *testing.T) {
	t.Cleanup(func() { statsTopN, statsHubThreshold = 0, 0 })

	tests := []struct {
		name         string
		flagTopN     int
		flagHub      int
		envTopN      string
		envHub       string
		wantTopN     int
		wantHubLimit int
	}{
		{"defaults", 0, 0, "", "", config.DefaultTopN, config.DefaultHubMin},
		{"environment", 0, 0, "3", "8", 3, 8},
		{"flags win", 7, 2, "3", "8", 7, 2},
		{"bad environment", 0, 0, "many", "x", config.DefaultTopN, config.DefaultHubMin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(config.EnvTopN, tt.envTopN)
			t.Setenv(config.EnvHubMin, tt.envHub)
			statsTopN, statsHubThreshold = tt.flagTopN, tt.flagHub

			topN, hub := statsLimits()
			if topN != tt.wantTopN || hub != tt.wantHubLimit {
				t.Errorf("statsLimits() = %d, %d, want %d, %d", topN, hub, tt.wantTopN, tt.wantHubLimit)
			}
		})
	}
}
