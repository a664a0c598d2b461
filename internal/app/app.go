package app

const (
	Name    = "arbitrum-mcp-tools"
	License = "MIT"

	// PackageName is the published package invoked by generated server
	// entries (npx -y <PackageName> serve).
	PackageName = "arbitrum-mcp-tools"
)

var Version = "0.3.0"

type App struct {
	Name    string
	Version string
	License string
}

func New() *App {
	return &App{
		Name:    Name,
		Version: Version,
		License: License,
	}
}

func (a *App) GetFullVersion() string {
	return a.Name + " version " + a.Version
}
