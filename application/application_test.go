package application

import (
	"testing"
	"time"

	"superspreader-analytics/models/constants"
	"superspreader-analytics/utils/insights"

	"github.com/go-co-op/gocron/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestRunReturnsSoMainCanWaitForSignals(t *testing.T) {
	viper.Set(constants.ProbePort, 0)

	scheduler, err := gocron.NewScheduler()
	require.NoError(t, err)

	app := &Impl{
		scheduler: scheduler,
		probes:    insights.NewProbes(func() bool { return true }),
	}

	done := make(chan struct{})
	go func() {
		app.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run blocked; the signal wait and graceful shutdown would never execute")
	}

	require.NoError(t, scheduler.Shutdown())
}
