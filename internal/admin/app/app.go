package app

import (
	"net/http"

	"github.com/pktpoint/idec/internal/config"
	"github.com/pktpoint/idec/internal/uplink"
)

// App holds everything the UI screens need: the loaded configuration,
// its path (settings are saved back to it) and the uplink client.
type App struct {
	ConfigPath string
	Config     *config.Config
	Uplink     *uplink.Uplink
}

func New(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	return &App{
		ConfigPath: configPath,
		Config:     cfg,
		Uplink:     newUplink(cfg),
	}, nil
}

// ReloadUplink rebuilds the uplink client after the configuration
// changed (settings screen).
func (a *App) ReloadUplink() {
	a.Uplink = newUplink(a.Config)
}

func newUplink(cfg *config.Config) *uplink.Uplink {
	client := &http.Client{Timeout: cfg.Timeout()}
	return uplink.New(cfg.Uplink.URL, cfg.Uplink.Auth, cfg.Uplink.Areas, client)
}
