// Package app wires configuration, assets and the sky controller together
// for the command-line tools.
package app

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/midgard-sky/internal/assets"
	"github.com/Faultbox/midgard-sky/internal/config"
	"github.com/Faultbox/midgard-sky/internal/engine/texture"
	"github.com/Faultbox/midgard-sky/internal/logger"
	"github.com/Faultbox/midgard-sky/internal/sky"
)

// CloudTextureSize is the edge of generated cloud textures.
const CloudTextureSize = 256

// NewAssets creates an asset manager over the configured roots.
func NewAssets(cfg *config.Config) (*assets.Manager, error) {
	mgr := assets.NewManager()
	for _, dir := range cfg.Assets.Roots {
		if err := mgr.AddDir(dir); err != nil {
			return nil, err
		}
		logger.Info("asset root added", zap.String("path", dir))
	}
	return mgr, nil
}

// NewSky builds the sky controller, loading image textures from mgr and
// generating the procedural ones.
func NewSky(cfg *config.Config, mgr *assets.Manager) (*sky.Control, error) {
	params, err := cfg.SkyParams()
	if err != nil {
		return nil, err
	}

	var tex sky.Textures
	var g errgroup.Group
	load := func(path string, wrap texture.WrapMode, dst *texture.Sampler) {
		if path == "" {
			return
		}
		g.Go(func() error {
			s, err := mgr.LoadSampler(path, cfg.Assets.MaxTextureSize, wrap)
			if err != nil {
				return fmt.Errorf("loading %s: %w", path, err)
			}
			*dst = s
			return nil
		})
	}
	load(cfg.Sky.SunTexture, texture.WrapClamp, &tex.Sun)
	load(cfg.Sky.MoonTexture, texture.WrapClamp, &tex.Moon)
	load(cfg.Sky.StarsTexture, texture.WrapRepeat, &tex.Stars)

	for i, cl := range cfg.Sky.Clouds {
		layer := &params.Clouds[i]
		if cl.Texture != "" {
			load(cl.Texture, texture.WrapRepeat, &layer.Texture)
			continue
		}
		g.Go(func() error {
			opts := texture.DefaultCloudOptions()
			opts.Size = CloudTextureSize
			opts.Coverage = cl.Coverage
			layer.Texture = texture.NewImage(layer.Name, texture.Clouds(opts), texture.WrapRepeat)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return sky.New(params, tex)
}
