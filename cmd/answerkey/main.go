package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pavelanni/answerkey/internal/convert"
	"github.com/pavelanni/answerkey/internal/handler"
	appI18n "github.com/pavelanni/answerkey/internal/i18n"
	"github.com/pavelanni/answerkey/internal/library"
	"github.com/pavelanni/answerkey/internal/model"
	"github.com/pavelanni/answerkey/internal/paper"
	"github.com/pavelanni/answerkey/internal/render"
	"github.com/pavelanni/answerkey/internal/store"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "answerkey",
		Short:        "Extract answer keys from ETS listening and speaking exam exports",
		SilenceUsage: true,
	}
	root.AddCommand(listCmd(), extractCmd(), renderCmd(), serveCmd())
	return root
}

// addCommonFlags registers the flags every command reads.
func addCommonFlags(f *pflag.FlagSet) {
	f.StringP("resource-dir", "r", paper.DefaultResourceDir(), "Directory holding the exam client's papers")
	f.String("db", "answerkey.db", "SQLite cache path (empty disables caching)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
}

// addOutputFlags registers the flags of the commands that produce one artifact.
func addOutputFlags(f *pflag.FlagSet, defaultFormat model.Format) {
	f.StringP("format", "f", string(defaultFormat), "Output format (json, yaml, html, pdf)")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	f.StringP("lang", "l", "zh", "Document language (zh, en)")
	f.IntP("concurrency", "c", 1, "Category documents parsed in parallel (1 = sequential)")
	f.Bool("force", false, "Extract again even when the cached result is current")
	f.String("wkhtmltopdf", "", "Path to the wkhtmltopdf binary (default: WKHTMLTOPDF_PATH, then PATH)")
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the papers in the resource directory",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	addCommonFlags(cmd.Flags())
	return cmd
}

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <paper-id|path>",
		Short: "Extract the answer key of a paper as structured data",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	addCommonFlags(cmd.Flags())
	addOutputFlags(cmd.Flags(), model.FormatJSON)
	return cmd
}

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <paper-id|path>",
		Short: "Render the answer key of a paper as an HTML or PDF document",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	addCommonFlags(cmd.Flags())
	addOutputFlags(cmd.Flags(), model.FormatHTML)
	return cmd
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the answer keys of all papers over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	f := cmd.Flags()
	addCommonFlags(f)
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	f.StringP("lang", "l", "zh", "Default document language (zh, en)")
	f.IntP("concurrency", "c", 1, "Category documents parsed in parallel (1 = sequential)")
	f.String("wkhtmltopdf", "", "Path to the wkhtmltopdf binary (default: WKHTMLTOPDF_PATH, then PATH)")
	return cmd
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("ANSWERKEY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("answerkey")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/answerkey")
	v.AddConfigPath("/etc/answerkey")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

// app holds what the commands build from their configuration.
type app struct {
	lib      *library.Library
	renderer *render.Renderer
	tr       *appI18n.Translator
	db       *store.Store
}

func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

func newApp(v *viper.Viper) (*app, error) {
	var db *store.Store
	if path := v.GetString("db"); path != "" {
		var err error
		db, err = store.New(path)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
	}

	lang := v.GetString("lang")
	if lang == "" {
		lang = "zh"
	}
	tr, err := appI18n.New(lang)
	if err != nil {
		return nil, fmt.Errorf("init i18n: %w", err)
	}
	r, err := render.NewRenderer(tr)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	ex := paper.NewExtractor(paper.WithConcurrency(v.GetInt("concurrency")))
	exp := render.NewExporter(r, convert.NewWkhtmltopdf(v.GetString("wkhtmltopdf")))
	return &app{
		lib:      library.New(v.GetString("resource-dir"), ex, exp, db),
		renderer: r,
		tr:       tr,
		db:       db,
	}, nil
}

// resolvePaper accepts either a paper id under the resource dir or a path to a paper directory.
func (a *app) resolvePaper(arg string) (model.Paper, error) {
	if strings.ContainsAny(arg, `/\`) {
		return paper.Open(arg)
	}
	return a.lib.Find(arg)
}

func runList(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	a, err := newApp(v)
	if err != nil {
		return err
	}
	defer a.Close()

	papers, err := a.lib.Papers()
	if err != nil {
		return fmt.Errorf("discover papers: %w", err)
	}
	cached := make(map[string]bool)
	if a.db != nil {
		list, err := a.db.ListPapers()
		if err != nil {
			return fmt.Errorf("list cached papers: %w", err)
		}
		for _, cp := range list {
			cached[cp.Paper.ID] = true
		}
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMODIFIED\tCACHED\tPATH")
	for _, p := range papers {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", p.ID, p.Modified.Format("2006-01-02 15:04"), cached[p.ID], p.Path)
	}
	return tw.Flush()
}

func runExport(cmd *cobra.Command, args []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	format, ok := model.ParseFormat(strings.ToLower(v.GetString("format")))
	if !ok {
		return fmt.Errorf("unknown format %q (want json, yaml, html or pdf)", v.GetString("format"))
	}

	a, err := newApp(v)
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.resolvePaper(args[0])
	if err != nil {
		return err
	}

	outPath := v.GetString("output")
	if outPath == "-" {
		outPath = ""
	}
	data, err := a.lib.Export(cmd.Context(), format, p, outPath, v.GetBool("force"))
	if err != nil {
		return fmt.Errorf("export %s: %w", p.ID, err)
	}
	if outPath != "" {
		slog.Info("wrote answer key", "paper", p.ID, "format", format, "path", outPath)
		return nil
	}

	var w io.Writer = cmd.OutOrStdout()
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	a, err := newApp(v)
	if err != nil {
		return err
	}
	defer a.Close()

	h := handler.New(a.lib, a.renderer)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(a.tr.Middleware)
	h.Routes(r)

	addr := v.GetString("addr")
	slog.Info("starting server",
		"addr", addr,
		"resource_dir", a.lib.Dir(),
		"db", v.GetString("db"),
		"lang", a.tr.Lang(),
		"concurrency", v.GetInt("concurrency"),
	)
	return http.ListenAndServe(addr, r)
}
