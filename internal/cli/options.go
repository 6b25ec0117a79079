package cli

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pborges/logicmin/internal/logic"
)

const (
	envLogLevel = "LOGICMIN_LOG_LEVEL"
	envForm     = "LOGICMIN_FORM"
	envMethod   = "LOGICMIN_METHOD"
)

// Options holds every flag of the command tree.
type Options struct {
	LogLevel  string
	LogFormat string
	NoColor   bool

	Form   string
	Method string
	Vars   []string
	Verify bool
	PLA    string
	Steps  bool
	Output string
}

func defaultOptions(lookup func(string) (string, bool)) Options {
	o := Options{
		LogLevel:  "warn",
		LogFormat: "console",
		Form:      "dnf",
		Method:    "calculus",
	}
	if v, ok := lookup(envLogLevel); ok && v != "" {
		o.LogLevel = v
	}
	if v, ok := lookup(envForm); ok && v != "" {
		o.Form = v
	}
	if v, ok := lookup(envMethod); ok && v != "" {
		o.Method = v
	}
	return o
}

func (o *Options) bindGlobal(fs *pflag.FlagSet) {
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "log level (debug, info, warn, error); env "+envLogLevel)
	fs.StringVar(&o.LogFormat, "log-format", o.LogFormat, "log encoding (console, json)")
	fs.BoolVar(&o.NoColor, "no-color", o.NoColor, "disable colored output")
}

func (o *Options) bindForm(fs *pflag.FlagSet) {
	fs.StringVar(&o.Form, "form", o.Form, "normal form to produce (dnf, cnf); env "+envForm)
}

func (o *Options) bindMethod(fs *pflag.FlagSet) {
	fs.StringVar(&o.Method, "method", o.Method, "minimization method (calculus, table, grid); env "+envMethod)
}

func (o *Options) bindVars(fs *pflag.FlagSet) {
	fs.StringSliceVar(&o.Vars, "vars", o.Vars, "variable order, most significant first (default: sorted names)")
}

// minimizeOptions translates the form and method flags. The "table"
// method runs the calculus method and asks for the coverage chart.
func (o *Options) minimizeOptions() ([]logic.Option, bool, error) {
	form, err := logic.ParseForm(o.Form)
	if err != nil {
		return nil, false, err
	}
	chart := false
	method := o.Method
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "table", "calculus-table":
		method, chart = "calculus", true
	}
	m, err := logic.ParseMethod(method)
	if err != nil {
		return nil, false, err
	}
	return []logic.Option{logic.WithForm(form), logic.WithMethod(m)}, chart, nil
}

// Logger builds the zap logger the flags describe. Logs go to stderr.
func (o *Options) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(o.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}
	var cfg zap.Config
	switch o.LogFormat {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console", "":
		cfg = zap.NewDevelopmentConfig()
		if !o.NoColor {
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
	default:
		return nil, errors.Errorf("unknown log format %q", o.LogFormat)
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
