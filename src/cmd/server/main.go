package main

import (
	"log/slog"

	"github.com/jackyeh168/club_ledger/src/cmd/fx/configfx"
	"github.com/jackyeh168/club_ledger/src/cmd/fx/dbfx"
	"github.com/jackyeh168/club_ledger/src/cmd/fx/httpfx"
	"github.com/jackyeh168/club_ledger/src/cmd/fx/infrafx"
	"github.com/jackyeh168/club_ledger/src/cmd/fx/repofx"
	"github.com/jackyeh168/club_ledger/src/cmd/fx/usecasefx"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

func main() {
	fx.New(appOptions()).Run()
}

func appOptions() fx.Option {
	return fx.Options(
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		configfx.Module,
		dbfx.Module,
		infrafx.Module,
		repofx.Module,
		usecasefx.Module,
		httpfx.Module,
	)
}
