package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/kbukum/fnkit/catalog"
	"github.com/kbukum/fnkit/definition"
	"github.com/kbukum/fnkit/errors"
	"github.com/kbukum/fnkit/logger"
	"github.com/kbukum/fnkit/observability"
	"github.com/kbukum/fnkit/pipeline"
	"github.com/kbukum/fnkit/validation"
	"github.com/kbukum/fnkit/version"
)

// definitionFlags selects a definition by file or by name.
type definitionFlags struct {
	config string
	file   string
	name   string
	output string
}

func (f *definitionFlags) check() error {
	v := validation.New().
		Custom(f.file != "" || f.name != "", "file", "one of --file or --name is required").
		Custom(f.file == "" || f.name == "", "name", "must not be set together with --file").
		OneOf("output", f.output, outputFormats)
	if err := v.Err(); err != nil {
		return &usageError{err: err}
	}
	return nil
}

// session holds what every command needs once flags are parsed.
type session struct {
	cfg     *Config
	log     *logger.Logger
	catalog *catalog.Catalog
}

func newSession(configPath string, streams IO) (*session, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, errors.InvalidConfig(err)
	}
	log := logger.NewWithWriter(&cfg.Logging, cfg.Name, streams.Stderr)
	logger.SetGlobalLogger(log)
	logger.Reset()
	return &session{cfg: cfg, log: log.WithComponent("cli"), catalog: catalog.Default()}, nil
}

// load reads the selected definition and builds its pipeline. Includes of
// a file are looked up next to it first, then in the configured
// directories.
func (s *session) load(f *definitionFlags) (*definition.Definition, *pipeline.Pipeline[float64], error) {
	dirs := s.cfg.Definitions.Dirs
	var (
		def *definition.Definition
		err error
	)
	if f.file != "" {
		dirs = append([]string{filepath.Dir(f.file)}, dirs...)
		def, err = definition.LoadFile(f.file)
	} else {
		def, err = definition.NewFileLoader(dirs...).Load(f.name)
	}
	if err != nil {
		return nil, nil, err
	}

	p, err := definition.Build(def, s.catalog, definition.NewFileLoader(dirs...))
	if err != nil {
		return nil, nil, err
	}
	s.log.Debug("pipeline built", logger.Fields(
		logger.FieldPipeline, def.Name,
		logger.FieldStages, p.Len(),
	))
	return def, p, nil
}

func runCommand(ctx context.Context, streams IO, args []string) error {
	var (
		flags definitionFlags
		watch bool
	)
	fs := newFlagSet("run", streams, &flags.config)
	fs.StringVarP(&flags.file, "file", "f", "", "definition file")
	fs.StringVarP(&flags.name, "name", "n", "", "definition name, looked up in definitions.dirs")
	fs.StringVarP(&flags.output, "output", "o", outputText, "output format: text or json")
	fs.BoolVarP(&watch, "watch", "w", false, "run again whenever the definition file changes")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(streams.Stdout, "Usage: fnpipe run (-f FILE | -n NAME) [flags] [-- values...]\n\n"+
			"Values are read from stdin when none are given.\n\nFlags:\n%s", fs.FlagUsages())
	}
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := flags.check(); err != nil {
		return err
	}
	if watch && flags.file == "" {
		return &usageError{err: fmt.Errorf("--watch requires --file")}
	}

	s, err := newSession(flags.config, streams)
	if err != nil {
		return withFormat(flags.output, err)
	}

	var values []float64
	if fs.NArg() > 0 {
		values, err = parseValues(fs.Args())
	} else {
		stdinHint(streams)
		values, err = readValues(streams.Stdin)
	}
	if err != nil {
		return withFormat(flags.output, err)
	}

	metrics, shutdown, err := observability.Setup(ctx, s.cfg.Telemetry, observability.Resource{
		ServiceName:    s.cfg.Name,
		ServiceVersion: version.Get().Short(),
		Environment:    s.cfg.Environment,
	})
	if err != nil {
		return withFormat(flags.output, errors.InvalidConfig(err))
	}
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			s.log.Warn("telemetry shutdown failed", logger.ErrorFields("shutdown", err))
		}
	}()

	execute := func() error {
		def, p, err := s.load(&flags)
		if err != nil {
			return err
		}
		run := observability.Instrument[float64](def.Name, p,
			observability.WithMetrics(metrics),
			observability.WithLogger(s.log),
		)
		res, err := run.RunContext(ctx, values)
		if err != nil {
			if !errors.IsAppError(err) {
				err = errors.New(errors.ErrCodeInternal, "pipeline run failed").
					WithCause(err).
					WithDetail("pipeline", def.Name)
			}
			return err
		}
		return writeResult(streams.Stdout, flags.output, def.Name, res)
	}

	if !watch {
		return withFormat(flags.output, execute())
	}
	report := func() {
		if err := execute(); err != nil {
			writeError(streams.Stderr, flags.output, err)
		}
	}
	report()
	return watchDefinition(ctx, flags.file, s.log, report)
}

type validateOutput struct {
	Name    string   `json:"name"`
	Stages  []string `json:"stages"`
	Reduces bool     `json:"reduces"`
}

func validateCommand(_ context.Context, streams IO, args []string) error {
	var flags definitionFlags
	fs := newFlagSet("validate", streams, &flags.config)
	fs.StringVarP(&flags.file, "file", "f", "", "definition file")
	fs.StringVarP(&flags.name, "name", "n", "", "definition name, looked up in definitions.dirs")
	fs.StringVarP(&flags.output, "output", "o", outputText, "output format: text or json")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := flags.check(); err != nil {
		return err
	}

	s, err := newSession(flags.config, streams)
	if err != nil {
		return withFormat(flags.output, err)
	}
	def, p, err := s.load(&flags)
	if err != nil {
		return withFormat(flags.output, err)
	}

	stages := p.Stages()
	names := make([]string, len(stages))
	for i, st := range stages {
		names[i] = st.String()
	}
	if flags.output == outputJSON {
		return withFormat(flags.output, writeJSON(streams.Stdout, validateOutput{
			Name: def.Name, Stages: names, Reduces: p.Reduces(),
		}))
	}

	result := "sequence"
	if p.Reduces() {
		result = "scalar"
	}
	_, _ = fmt.Fprintf(streams.Stdout, "%s: ok, %d stages, returns a %s\n", def.Name, p.Len(), result)
	for i, n := range names {
		_, _ = fmt.Fprintf(streams.Stdout, "  %d. %s\n", i+1, n)
	}
	return nil
}

type listEntry struct {
	Name        string  `json:"name"`
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
	Arg         bool    `json:"arg"`
	Initial     *string `json:"initial,omitempty"`
}

func listCommand(_ context.Context, streams IO, args []string) error {
	var configPath, output string
	fs := newFlagSet("list", streams, &configPath)
	fs.StringVarP(&output, "output", "o", outputText, "output format: text or json")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := checkOutput(output); err != nil {
		return err
	}

	entries := catalog.Default().List()
	if output == outputJSON {
		out := make([]listEntry, len(entries))
		for i, e := range entries {
			out[i] = listEntry{Name: e.Name, Kind: e.Kind.String(), Description: e.Description, Arg: e.Parameterised}
			if e.Kind == pipeline.KindReduce {
				initial := formatNumber(e.Initial())
				out[i].Initial = &initial
			}
		}
		return withFormat(output, writeJSON(streams.Stdout, out))
	}

	for _, kind := range []pipeline.Kind{pipeline.KindFilter, pipeline.KindMap, pipeline.KindReduce} {
		_, _ = fmt.Fprintf(streams.Stdout, "%s:\n", kind)
		for _, e := range entries {
			if e.Kind != kind {
				continue
			}
			desc := e.Description
			if kind == pipeline.KindReduce {
				desc += fmt.Sprintf(" (initial %s)", formatNumber(e.Initial()))
			}
			_, _ = fmt.Fprintf(streams.Stdout, "  %-16s %s\n", e.String(), desc)
		}
	}
	return nil
}

func versionCommand(_ context.Context, streams IO, args []string) error {
	var configPath, output string
	fs := newFlagSet("version", streams, &configPath)
	fs.StringVarP(&output, "output", "o", outputText, "output format: text or json")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := checkOutput(output); err != nil {
		return err
	}

	info := version.Get()
	if output == outputJSON {
		return withFormat(output, writeJSON(streams.Stdout, info))
	}
	_, _ = fmt.Fprintf(streams.Stdout, "fnpipe %s\n", info)
	return nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// stdinHint is printed when run waits on an interactive terminal.
func stdinHint(streams IO) {
	if f, ok := streams.Stdin.(*os.File); ok && isTerminal(f) {
		_, _ = fmt.Fprintln(streams.Stderr, "reading values from stdin (end with Ctrl-D)")
	}
}
