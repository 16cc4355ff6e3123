package insights

import (
	"fmt"
	"net/http"
	"time"

	"superspreader-analytics/models/constants"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Probes interface {
	ListenAndServe()
}

type Impl struct {
	port        int
	isConnected func() bool
}

func NewProbes(isConnected func() bool) *Impl {
	return &Impl{
		port:        viper.GetInt(constants.ProbePort),
		isConnected: isConnected,
	}
}

func (probes *Impl) ListenAndServe() {
	mux := http.NewServeMux()
	mux.HandleFunc("/live", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, _ *http.Request) {
		if probes.isConnected() {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", probes.port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info().Int("port", probes.port).Msg("Probes are listening")
	if err := server.ListenAndServe(); err != nil {
		log.Error().Err(err).Msg("Probe server stopped")
	}
}
