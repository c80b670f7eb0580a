package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/qrsheet/internal/config"
	"github.com/cristianadrielbraun/qrsheet/internal/export"
	"github.com/cristianadrielbraun/qrsheet/internal/handlers"
	"github.com/cristianadrielbraun/qrsheet/internal/preview"
	"github.com/cristianadrielbraun/qrsheet/internal/qr"
	"github.com/cristianadrielbraun/qrsheet/internal/style"
)

var version = "v0.1.0"

func main() {
	root := &cobra.Command{
		Use:           "qrsheet",
		Short:         "Design a QR code and print it as a PDF sheet",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var configPath string
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default ./qrsheet.yaml if present)")

	// --- serve command -------------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the web editor",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	})

	// --- export command ------------------------------------------------------
	var opts exportOptions
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write a grid or large PDF without starting the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), configPath, opts)
		},
	}
	f := exportCmd.Flags()
	f.StringVar(&opts.Variant, "variant", "grid", "Layout: grid or large")
	f.StringVar(&opts.URL, "url", "", "Text or URL to encode (default from config)")
	f.StringVar(&opts.Top, "top", "", "Top caption (default from config)")
	f.StringVar(&opts.Bottom, "bottom", "", "Bottom caption (default from config)")
	f.StringVar(&opts.Dots, "dots", "", "Dot style (default from config)")
	f.StringVar(&opts.Corners, "corners", "", "Corner style (default from config)")
	f.StringVar(&opts.Foreground, "fg", "", "Foreground color, e.g. #000000")
	f.StringVar(&opts.Background, "bg", "", "Background color, e.g. #ffffff or transparent")
	f.BoolVar(&opts.BuiltinLogo, "builtin-logo", false, "Use the built-in logo")
	f.BoolVar(&opts.NoLogo, "no-logo", false, "Disable the logo")
	f.StringVar(&opts.Logo, "logo", "", "Path to a PNG, JPEG, GIF or SVG logo")
	f.IntVar(&opts.Rows, "rows", 0, "Grid rows (default from config)")
	f.IntVar(&opts.Cols, "cols", 0, "Grid columns (default from config)")
	f.StringVar(&opts.Renderer, "renderer", "", "Renderer: styled or plain (default from config)")
	f.StringVarP(&opts.Out, "out", "o", "qr-sheet.pdf", "Output file")
	exportCmd.MarkFlagsMutuallyExclusive("builtin-logo", "no-logo", "logo")
	root.AddCommand(exportCmd)

	// --- version command -----------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("qrsheet %s\n", version)
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app is the wiring shared by serve and export.
type app struct {
	cfg      *config.Config
	logger   *logrus.Logger
	renderer qr.Renderer
	exports  *export.Orchestrator
}

func newApp(configPath, rendererKind string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := setupLogger(cfg.LogLevel)

	if rendererKind == "" {
		rendererKind = cfg.Renderer
	}
	renderer, err := qr.NewRenderer(rendererKind)
	if err != nil {
		return nil, err
	}

	exports := export.New(export.Options{
		Orientation: cfg.Page.Orientation,
		Unit:        cfg.Page.Unit,
		PageFormat:  cfg.Page.Format,
		GridRows:    cfg.Grid.Rows,
		GridCols:    cfg.Grid.Cols,
		GridMargin:  cfg.Grid.Margin,
		LargeMargin: cfg.Large.Margin,
	}, logger, export.WithStateObserver(func(key string, s export.State) {
		logger.WithField("key", key).Tracef("Export is %s", s)
	}))

	return &app{cfg: cfg, logger: logger, renderer: renderer, exports: exports}, nil
}

func (a *app) newCanvas() *qr.Canvas {
	return qr.NewCanvas(a.renderer, a.cfg.Preview.Size, a.cfg.Export.Size)
}

// defaultState is the style new sessions start with.
func (a *app) defaultState() style.State {
	d := a.cfg.Defaults
	st := style.DefaultState()
	st.URL = d.URL
	st.TopCaption = d.TopCaption
	st.BottomCaption = d.BottomCaption
	st.Dots = qr.DotStyle(d.Dots)
	st.Corners = qr.CornerStyle(d.Corners)
	st.SetBuiltInLogo(d.BuiltinLogo)
	return st
}

func runServe(configPath string) error {
	a, err := newApp(configPath, "")
	if err != nil {
		return err
	}
	logger := a.logger

	sessions := style.NewStore(a.cfg.Session.TTL, a.defaultState(), a.newCanvas, logger)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	handlers.New(a.cfg, sessions, a.exports, logger).Routes(r)

	srv := &http.Server{
		Addr:         a.cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Infof("qrsheet listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("HTTP server shutdown error")
	}
	a.exports.Wait(ctx)
	return nil
}

type exportOptions struct {
	Variant     string `validate:"oneof=grid large"`
	URL         string
	Top         string `validate:"max=200"`
	Bottom      string `validate:"max=200"`
	Dots        string `validate:"omitempty,oneof=square dots rounded extra-rounded chain hstripe vstripe"`
	Corners     string `validate:"omitempty,oneof=square dot extra-rounded"`
	Foreground  string `validate:"omitempty,len=4|len=7,hexcolor"`
	Background  string `validate:"omitempty,len=4|len=7|eq=transparent,hexcolor|eq=transparent"`
	BuiltinLogo bool
	NoLogo      bool
	Logo        string `validate:"omitempty,file"`
	Rows        int    `validate:"omitempty,min=1,max=10"`
	Cols        int    `validate:"omitempty,min=1,max=10"`
	Renderer    string `validate:"omitempty,oneof=styled plain"`
	Out         string `validate:"required"`
}

// state applies the flags on top of the configured defaults.
func (o exportOptions) state(base style.State) (style.State, error) {
	st := base
	if o.URL != "" {
		st.URL = o.URL
	}
	if o.Top != "" {
		st.TopCaption = o.Top
	}
	if o.Bottom != "" {
		st.BottomCaption = o.Bottom
	}
	if o.Dots != "" {
		st.Dots = qr.DotStyle(o.Dots)
	}
	if o.Corners != "" {
		st.Corners = qr.CornerStyle(o.Corners)
	}
	st.Foreground = qr.ParseColor(o.Foreground, st.Foreground)
	st.Background = qr.ParseColor(o.Background, st.Background)

	switch {
	case o.Logo != "":
		data, err := os.ReadFile(o.Logo)
		if err != nil {
			return st, fmt.Errorf("read logo: %w", err)
		}
		uri, err := qr.SniffDataURI(data)
		if err != nil {
			return st, err
		}
		st.SetCustomLogo(uri)
	case o.BuiltinLogo:
		st.SetBuiltInLogo(true)
	case o.NoLogo:
		st.SetBuiltInLogo(false)
		st.ClearCustomLogo()
	}
	return st, nil
}

func runExport(ctx context.Context, configPath string, opts exportOptions) error {
	if err := validator.New().Struct(opts); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	if err := qr.CheckPayload(opts.URL); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	a, err := newApp(configPath, opts.Renderer)
	if err != nil {
		return err
	}

	st, err := opts.state(a.defaultState())
	if err != nil {
		return err
	}
	variant, err := export.ParseVariant(opts.Variant)
	if err != nil {
		return err
	}

	canvas := a.newCanvas()
	preview.Update(canvas, st)

	err = a.exports.Export(ctx, export.Request{
		Key:           "cli",
		Variant:       variant,
		TopCaption:    st.TopCaption,
		BottomCaption: st.BottomCaption,
		Rows:          opts.Rows,
		Cols:          opts.Cols,
		Source:        canvas,
		Presenter:     export.FilePresenter{Path: opts.Out},
		Notifier:      export.LogNotifier{Logger: a.logger},
	})
	if err != nil {
		return err
	}
	a.logger.Infof("Wrote %s", opts.Out)
	return nil
}

// setupLogger sets up the logger
func setupLogger(logLevel string) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		log.Printf("Invalid log level %s, defaulting to info", logLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return logger
}
