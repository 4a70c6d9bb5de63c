package theme

import (
	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/internal/ui/style"
)

type Deps struct {
	Get        func(string) (string, bool)
	GetAll     func() (map[string]string, error)
	Set        func(string, string) error
	Printf     func(string, ...any) (int, error)
	Println    func(...any) (int, error)
	Styler     domain.Styler
	ThemeNames []string
	Themes     map[string]style.ColorConfig
	Resolve    func(string) string
	Restyle    func(map[string]string)
}

func DefaultDeps(app *domain.Application) Deps {
	styler := app.Styler
	if styler == nil {
		styler = style.NopStyler{}
	}
	return Deps{
		Get:        app.Config.Get,
		GetAll:     app.Config.GetAll,
		Set:        app.Config.Set,
		Printf:     app.Output.Printf,
		Println:    app.Output.Println,
		Styler:     styler,
		ThemeNames: style.ThemeNames(), // all variants (dark/light) explicitly
		Themes:     style.Themes,
		Resolve:    style.ResolveThemeName,
		Restyle:    func(cfg map[string]string) { style.Init(style.Enabled(), cfg) },
	}
}
