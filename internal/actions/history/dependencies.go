package history

import (
	"time"

	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/internal/format"
	"github.com/footprint-tools/commands/internal/ui/style"
)

type Deps struct {
	Store     domain.HistoryStore
	SessionID string
	Format    format.Formatter
	Now       func() time.Time
	Printf    func(string, ...any) (int, error)
	Println   func(...any) (int, error)
	Styler    domain.Styler
}

func DefaultDeps(app *domain.Application) Deps {
	styler := app.Styler
	if styler == nil {
		styler = style.NopStyler{}
	}
	return Deps{
		Store:     app.Store,
		SessionID: app.SessionID,
		Format:    format.New(app.Config),
		Now:       time.Now,
		Printf:    app.Output.Printf,
		Println:   app.Output.Println,
		Styler:    styler,
	}
}
