package main

import (
	"fmt"

	"github.com/gogpu/present"
	"github.com/gogpu/present/app"
	"github.com/gogpu/present/backend"
	"github.com/gogpu/present/backend/native"
	"github.com/gogpu/present/internal/config"
	"github.com/gogpu/present/internal/snapshot"
)

// runHeadless renders cfg.Frames frames into an offscreen surface.
func runHeadless(cfg config.Config, opts []present.Option) (app.Stats, error) {
	name := cfg.Backend
	if name == "" {
		name = backend.Software
	}
	inst, err := backend.Open(name)
	if err != nil {
		return app.Stats{}, err
	}
	defer inst.Release()

	surface, err := inst.CreateSurface(0, 0)
	if err != nil {
		return app.Stats{}, err
	}
	r, err := present.New(inst, cfg.Size(), surface, append(opts, backend.Options(inst)...)...)
	if err != nil {
		surface.Release()
		return app.Stats{}, err
	}
	defer r.Release()
	present.Logger().Info("clearwin: rendering offscreen",
		"adapter", r.Info().String(), "size", r.Size(), "frames", cfg.Frames)

	events := make([]app.Event, cfg.Frames)
	for i := range events {
		events[i] = app.Event{Kind: app.EventRedrawRequested}
	}
	q := app.NewQueue(events...)
	q.Close()

	stats, err := app.Run(q, r, app.WithMaxFrames(cfg.Frames))
	if err != nil || cfg.Out == "" {
		return stats, err
	}

	ns, ok := surface.(*native.Surface)
	if !ok {
		return stats, fmt.Errorf("backend %s: surface %T cannot be read back", name, surface)
	}
	img, err := ns.Snapshot()
	if err != nil {
		return stats, err
	}
	if err := snapshot.Save(cfg.Out, img); err != nil {
		return stats, err
	}
	present.Logger().Info("clearwin: frame saved", "path", cfg.Out)
	return stats, nil
}
