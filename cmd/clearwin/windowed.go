package main

import (
	"github.com/gogpu/present"
	"github.com/gogpu/present/app"
	"github.com/gogpu/present/internal/config"
	"github.com/gogpu/present/window"
)

// runWindow opens a window and presents until it is closed.
func runWindow(cfg config.Config, opts []present.Option) (app.Stats, error) {
	mode, err := present.ParsePresentMode(cfg.PresentMode)
	if err != nil {
		return app.Stats{}, err
	}
	power, err := present.ParsePowerPreference(cfg.Power)
	if err != nil {
		return app.Stats{}, err
	}
	win, err := window.New(window.Config{
		Title:           cfg.Title,
		Width:           cfg.Width,
		Height:          cfg.Height,
		Backend:         cfg.Backend,
		PresentMode:     mode,
		PowerPreference: power,
	})
	if err != nil {
		return app.Stats{}, err
	}
	return win.Run(opts, app.WithMaxFrames(cfg.Frames))
}
