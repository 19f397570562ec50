package main

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/polkiloo/freshharvest/internal/app"
	"github.com/polkiloo/freshharvest/internal/config"
	"github.com/polkiloo/freshharvest/internal/di"
)

// runtime owns the fx application behind the commands. One-shot commands
// start and stop it around a single action; the shell keeps it running.
type runtime struct {
	out        io.Writer
	fxApp      *fx.App
	storefront *app.Storefront
	persistent bool
	token      string
}

func (r *runtime) start(c *cli.Context) error {
	if r.storefront != nil {
		return nil
	}
	cfg, err := config.FromContext(c)
	if err != nil {
		return err
	}

	ctx := c.Context
	var storefront *app.Storefront
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return ctx }),
		di.Module(cfg),
		fx.Populate(&storefront),
	)
	if err := fxApp.Start(ctx); err != nil {
		return fmt.Errorf("failed to start application: %w", err)
	}
	r.fxApp, r.storefront = fxApp, storefront
	return nil
}

func (r *runtime) stop() error {
	if r.fxApp == nil {
		return nil
	}
	err := r.fxApp.Stop(context.Background())
	r.fxApp, r.storefront = nil, nil
	if err != nil {
		return fmt.Errorf("failed to stop application: %w", err)
	}
	return nil
}

// action adapts fn into a cli action that runs against a started storefront.
func (r *runtime) action(fn func(*cli.Context, *app.Storefront) error) cli.ActionFunc {
	return func(c *cli.Context) (err error) {
		if err := r.start(c); err != nil {
			return err
		}
		if !r.persistent {
			defer func() {
				if stopErr := r.stop(); err == nil {
					err = stopErr
				}
			}()
		}
		return fn(c, r.storefront)
	}
}

// tokenFrom prefers the --token flag and falls back to the shell login.
func (r *runtime) tokenFrom(c *cli.Context) string {
	if token := c.String(flagToken); token != "" {
		return token
	}
	return r.token
}
