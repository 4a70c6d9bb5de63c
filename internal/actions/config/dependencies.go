package config

import (
	"strings"

	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/internal/ui/style"
)

type Deps struct {
	Get     func(string) (string, bool)
	GetAll  func() (map[string]string, error)
	Set     func(string, string) error
	Unset   func(string) error
	Printf  func(string, ...any) (int, error)
	Println func(...any) (int, error)
	Styler  domain.Styler
	// Restyle re-applies theme and color settings after they change.
	Restyle func(map[string]string)
}

func DefaultDeps(app *domain.Application) Deps {
	styler := app.Styler
	if styler == nil {
		styler = style.NopStyler{}
	}
	return Deps{
		Get:     app.Config.Get,
		GetAll:  app.Config.GetAll,
		Set:     app.Config.Set,
		Unset:   app.Config.Unset,
		Printf:  app.Output.Printf,
		Println: app.Output.Println,
		Styler:  styler,
		Restyle: func(cfg map[string]string) { style.Init(style.Enabled(), cfg) },
	}
}

// affectsStyle reports whether changing key requires new styles.
func affectsStyle(key string) bool {
	return key == "theme" || strings.HasPrefix(key, "color_")
}

func restyle(deps Deps, key string) {
	if deps.Restyle == nil || !affectsStyle(key) {
		return
	}
	if all, err := deps.GetAll(); err == nil {
		deps.Restyle(all)
	}
}
