package logs

import (
	"os"

	"github.com/footprint-tools/commands/internal/domain"
	"github.com/footprint-tools/commands/internal/paths"
	"github.com/footprint-tools/commands/internal/ui/style"
)

type Deps struct {
	LogFilePath func() string
	SessionID   string
	Printf      func(string, ...any) (int, error)
	Println     func(...any) (int, error)
	ReadFile    func(string) ([]byte, error)
	WriteFile   func(string, []byte, os.FileMode) error
	Stat        func(string) (os.FileInfo, error)
	Styler      domain.Styler
}

func DefaultDeps(app *domain.Application) Deps {
	styler := app.Styler
	if styler == nil {
		styler = style.NopStyler{}
	}
	return Deps{
		LogFilePath: paths.LogFilePath,
		SessionID:   app.SessionID,
		Printf:      app.Output.Printf,
		Println:     app.Output.Println,
		ReadFile:    os.ReadFile,
		WriteFile:   os.WriteFile,
		Stat:        os.Stat,
		Styler:      styler,
	}
}
