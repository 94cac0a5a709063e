package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	formval "github.com/goliatone/go-formval"
	"github.com/goliatone/go-formval/internal/logging"
	"github.com/goliatone/go-formval/internal/server"
	"github.com/goliatone/go-formval/pkg/config"
	"github.com/goliatone/go-formval/pkg/controller"
	"github.com/goliatone/go-formval/pkg/model"
	pkgopenapi "github.com/goliatone/go-formval/pkg/openapi"
	"github.com/goliatone/go-formval/pkg/persist"
	"github.com/goliatone/go-formval/pkg/render"
	"github.com/goliatone/go-formval/pkg/renderers/tui"
	"github.com/goliatone/go-formval/pkg/renderers/vanilla"
	"github.com/goliatone/go-formval/pkg/submit"
	"github.com/goliatone/go-formval/pkg/suggest"
)

type options struct {
	formPath   string
	openapi    string
	operation  string
	listOps    bool
	configPath string
	envFile    string
	submit     bool
	suggest    string
	html       bool
	validate   bool
	serve      string
	output     string
	redisAddr  string
	logLevel   string
	logEnv     string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "formval: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fl := pflag.NewFlagSet("formval-cli", pflag.ContinueOnError)
	fl.SetOutput(stderr)
	fl.StringVarP(&opts.formPath, "form", "f", "", "form definition (YAML or JSON)")
	fl.StringVar(&opts.openapi, "openapi", "", "OpenAPI document path or URL")
	fl.StringVar(&opts.operation, "operation", "", "operation ID whose request body defines the form")
	fl.BoolVar(&opts.listOps, "list-operations", false, "list the operations of --openapi and exit")
	fl.StringVarP(&opts.configPath, "config", "c", "", "settings file (YAML)")
	fl.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before settings")
	fl.BoolVar(&opts.submit, "submit", false, "submit asynchronously once the form validates")
	fl.StringVar(&opts.suggest, "suggest", "", "print a domain suggestion for an email address and exit")
	fl.BoolVar(&opts.html, "html", false, "render the form as HTML instead of prompting")
	fl.BoolVar(&opts.validate, "validate", false, "with --html, validate before rendering")
	fl.StringVar(&opts.serve, "serve", "", "serve the form over HTTP on this address")
	fl.StringVarP(&opts.output, "output", "o", string(tui.OutputFormatJSON), "output format: json, form or pretty")
	fl.StringVar(&opts.redisAddr, "redis", "", "redis address for persisted inputs (memory when empty)")
	fl.StringVar(&opts.logLevel, "log-level", "warn", "log level")
	fl.StringVar(&opts.logEnv, "log-env", "dev", "log environment: dev or prod")
	if err := fl.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if opts.suggest != "" {
		return printSuggestion(stdout, opts.suggest)
	}

	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load env file: %w", err)
		}
	}

	logger, err := logging.Build(opts.logLevel, opts.logEnv)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// The terminal has no native submission to fall back to, so async mode
	// is only on when asked for.
	cfg, err := config.LoadFile(opts.configPath, config.WithAsyncSubmit(opts.submit))
	if err != nil {
		return err
	}

	if opts.listOps {
		return listOperations(ctx, stdout, opts)
	}

	form, err := loadForm(ctx, opts, cfg)
	if err != nil {
		return err
	}

	switch {
	case opts.serve != "":
		return server.New(form, cfg, server.WithLogger(logger)).ListenAndServe(ctx, opts.serve)
	case opts.html:
		return renderHTML(ctx, stdout, form, cfg, opts.validate, logger)
	default:
		return interactive(ctx, stdout, form, cfg, opts, logger)
	}
}

func printSuggestion(w io.Writer, address string) error {
	s, ok := suggest.Suggest(address)
	if !ok {
		_, err := fmt.Fprintln(w, "no suggestion")
		return err
	}
	_, err := fmt.Fprintln(w, s.Text(config.DefaultSuggestText))
	return err
}

func loadOpenAPI(ctx context.Context, location string) ([]byte, error) {
	src, err := pkgopenapi.SourceFromLocation(location)
	if err != nil {
		return nil, err
	}
	return pkgopenapi.NewLoader(pkgopenapi.WithHTTPFallback(30*time.Second)).Load(ctx, src)
}

func listOperations(ctx context.Context, w io.Writer, opts options) error {
	if opts.openapi == "" {
		return errors.New("--list-operations requires --openapi")
	}
	raw, err := loadOpenAPI(ctx, opts.openapi)
	if err != nil {
		return err
	}
	doc, err := pkgopenapi.Parse(ctx, raw, true)
	if err != nil {
		return err
	}
	for _, op := range pkgopenapi.Operations(doc) {
		fmt.Fprintf(w, "%s\t%s %s\t%s\n", op.ID, op.Method, op.Path, op.Summary)
	}
	return nil
}

func loadForm(ctx context.Context, opts options, cfg config.Config) (model.Form, error) {
	switch {
	case opts.formPath != "":
		raw, err := os.ReadFile(opts.formPath)
		if err != nil {
			return model.Form{}, fmt.Errorf("read form: %w", err)
		}
		return decodeForm(raw)
	case opts.openapi != "":
		if opts.operation == "" {
			return model.Form{}, errors.New("--openapi requires --operation")
		}
		src, err := pkgopenapi.SourceFromLocation(opts.openapi)
		if err != nil {
			return model.Form{}, err
		}
		return formval.FormFromOpenAPI(ctx, src, opts.operation, cfg, pkgopenapi.WithHTTPFallback(30*time.Second))
	default:
		return model.Form{}, errors.New("one of --form or --openapi is required")
	}
}

func decodeForm(raw []byte) (model.Form, error) {
	var form model.Form
	if err := yaml.Unmarshal(raw, &form); err != nil {
		return model.Form{}, fmt.Errorf("decode form: %w", err)
	}
	if len(form.Fields) == 0 {
		return model.Form{}, errors.New("decode form: no fields")
	}
	for i := range form.Fields {
		if form.Fields[i].Name == "" {
			form.Fields[i].Name = form.Fields[i].ID
		}
		if form.Fields[i].Type == "" {
			form.Fields[i].Type = model.FieldTypeText
		}
	}
	return form, nil
}

func renderHTML(ctx context.Context, w io.Writer, form model.Form, cfg config.Config, validate bool, logger *zap.Logger) error {
	renderer, err := vanilla.New(vanilla.WithConfig(cfg))
	if err != nil {
		return err
	}
	ctrl, err := formval.Attach(ctx, form, cfg,
		controller.WithLogger(logger),
		controller.WithSinks(render.Sinks{Markers: renderer, Messages: renderer, Focus: renderer}),
	)
	if err != nil {
		return err
	}
	if validate {
		ctrl.Validate(ctx)
	}
	out, err := renderer.Render(ctx, ctrl.Form())
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func interactive(ctx context.Context, w io.Writer, form model.Form, cfg config.Config, opts options, logger *zap.Logger) error {
	session := tui.New(
		tui.WithOutputFormat(tui.OutputFormat(strings.ToLower(opts.output))),
		tui.WithLogger(logger),
	)

	registry, err := formval.NewRegistry(cfg, session)
	if err != nil {
		return err
	}
	sinks, err := formval.SinksFor(registry, tui.Name)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, opts.redisAddr)
	if err != nil {
		return err
	}
	defer closeStore()

	ctrl, err := formval.Attach(ctx, form, cfg,
		controller.WithLogger(logger),
		controller.WithSinks(sinks),
		controller.WithMirror(persist.NewMirror(store,
			persist.WithLogger(logger),
			persist.WithNamespace(form.ID),
		)),
		controller.WithTransport(submit.NewHTTPTransport()),
		controller.WithNotifier(sessionNotifier{session: session}),
	)
	if err != nil {
		return err
	}

	outcome, err := session.Run(ctx, ctrl)
	if err != nil {
		return err
	}
	if outcome.Pending {
		select {
		case err := <-outcome.Done:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	out, err := session.Encode(ctrl.Form())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func openStore(ctx context.Context, addr string) (persist.Store, func(), error) {
	if addr == "" {
		return persist.NewMemoryStore(), func() {}, nil
	}
	store, err := persist.ConnectRedis(ctx, persist.RedisConfig{Address: addr})
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

// sessionNotifier prints submission results through the terminal session.
type sessionNotifier struct {
	session *tui.Session
}

func (n sessionNotifier) Success(ctx context.Context, msg string) {
	_ = n.session.Notify(ctx, msg)
}

func (n sessionNotifier) Failure(ctx context.Context, err error) {
	_ = n.session.Show(ctx, render.Message{FieldID: "submit", Text: err.Error()})
}
