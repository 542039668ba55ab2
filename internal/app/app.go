package app

import (
	"os"
	"os/signal"
	"syscall"

	runtime "github.com/banzaicloud/logrus-runtime-formatter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/metal-toolbox/rackview/internal/diagnostics"
	"github.com/metal-toolbox/rackview/internal/layout"
	"github.com/metal-toolbox/rackview/internal/model"
)

// App holds attributes for the rackview application
type App struct {
	// Viper loads configuration parameters.
	v *viper.Viper
	// App configuration.
	Config *Configuration
	// Logger is the app logger
	Logger *logrus.Logger
}

// New returns returns a new instance of the rackview app
//
// store is either the path to a YAML inventory file or the inventory API store kind,
// an empty store or logLevel leaves the configured value in place.
func New(store, cfgFile, logLevel string) (*App, <-chan os.Signal, error) {
	app := &App{
		v:      viper.New(),
		Config: &Configuration{},
		Logger: logrus.New(),
	}

	if err := app.LoadConfiguration(cfgFile, store); err != nil {
		return nil, nil, err
	}

	if logLevel != "" {
		app.Config.LogLevel = logLevel
	}

	app.Logger.Level = parseLogLevel(app.Config.LogLevel)

	runtimeFormatter := &runtime.Formatter{
		ChildFormatter: &logrus.JSONFormatter{},
		File:           true,
		Line:           true,
		BaseNameOnly:   true,
	}

	app.Logger.SetFormatter(runtimeFormatter)

	termCh := make(chan os.Signal, 1)

	// register for SIGINT, SIGTERM
	signal.Notify(termCh, syscall.SIGINT, syscall.SIGTERM)

	return app, termCh, nil
}

// Builder returns a layout builder reporting diagnostics to the app logger.
func (a *App) Builder() *layout.Builder {
	return layout.NewBuilder(layout.WithReporter(diagnostics.NewLogReporter(a.Logger)))
}

func parseLogLevel(level string) logrus.Level {
	switch level {
	case model.LogLevelDebug:
		return logrus.DebugLevel
	case model.LogLevelTrace:
		return logrus.TraceLevel
	default:
		return logrus.InfoLevel
	}
}
