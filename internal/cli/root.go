package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/livecap/livecap/internal/capture"
	"github.com/livecap/livecap/internal/config"
	"github.com/livecap/livecap/internal/logging"
	"github.com/livecap/livecap/internal/recognize"
	"github.com/livecap/livecap/internal/version"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/spf13/cobra"
)

type appState struct {
	verbose    bool
	jsonLogs   bool
	noProgress bool
	backend    string
	input      string
	container  string
	engine     string
	engineCmd  string
	envFile    string
	outputDir  string
	baseName   string
	duration   time.Duration
	immediate  bool

	logger *zap.Logger
	now    func() time.Time
	out    io.Writer

	newRecorderFn func(preferred string) (capture.Recorder, error)
	newEngineFn   func(env config.Env) (recognize.Engine, error)
	waitFn        func(message string) error
}

func NewRootCmd() *cobra.Command {
	app := &appState{
		backend:   "auto",
		container: "webm",
		engine:    "auto",
		now:       time.Now,
		out:       os.Stdout,
	}
	app.newRecorderFn = capture.NewRecorder
	app.newEngineFn = app.buildEngine
	app.waitFn = waitForEnter

	cmd := &cobra.Command{
		Use:           "livecap",
		Short:         "Record audio with live captions and export media plus WebVTT subtitles",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Resolve(),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger, err := logging.New(logging.Options{Verbose: app.verbose, JSON: app.jsonLogs})
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			container, err := sanitizeContainer(app.container)
			if err != nil {
				return err
			}
			app.container = container
			app.logger = logger
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.runLive(cmd.Context())
		},
	}

	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	bindLoggingFlags(cmd, app)
	bindProgressFlag(cmd, app)
	bindCaptureFlags(cmd, app)
	bindEngineFlags(cmd, app)
	bindExportFlags(cmd, app)
	cmd.Flags().DurationVar(&app.duration, "duration", 0, "Record duration, e.g. 30s; 0 means interactive start/stop")
	cmd.Flags().BoolVar(&app.immediate, "immediate", false, "Start recording immediately without waiting for Enter")

	cmd.AddCommand(newDevicesCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func bindLoggingFlags(cmd *cobra.Command, app *appState) {
	cmd.Flags().BoolVar(&app.verbose, "verbose", app.verbose, "Enable verbose logs")
	cmd.Flags().BoolVar(&app.jsonLogs, "json", app.jsonLogs, "Enable JSON logging")
}

func bindProgressFlag(cmd *cobra.Command, app *appState) {
	cmd.Flags().BoolVar(&app.noProgress, "no-progress", app.noProgress, "Disable progress indicators")
}

func bindCaptureFlags(cmd *cobra.Command, app *appState) {
	cmd.Flags().StringVar(&app.backend, "backend", app.backend, "Capture backend: auto|ffmpeg-pulse|ffmpeg-alsa|ffmpeg-avfoundation")
	cmd.Flags().StringVar(&app.input, "input", app.input, "Input device (run \"livecap devices\" to list)")
	cmd.Flags().StringVar(&app.container, "container", app.container, "Media container: webm|mp4")
}

func bindEngineFlags(cmd *cobra.Command, app *appState) {
	cmd.Flags().StringVar(&app.engine, "engine", app.engine, "Recognition engine: auto|stream|deepgram")
	cmd.Flags().StringVar(&app.engineCmd, "engine-cmd", app.engineCmd, "Recognizer command for the stream engine (reads PCM on stdin, emits NDJSON)")
	cmd.Flags().StringVar(&app.envFile, "env-file", app.envFile, "Path to a .env file with engine credentials")
}

func bindExportFlags(cmd *cobra.Command, app *appState) {
	cmd.Flags().StringVar(&app.outputDir, "output-dir", app.outputDir, "Directory for the exported media and subtitle pair")
	cmd.Flags().StringVar(&app.baseName, "name", app.baseName, "Base filename for the export; defaults to a timestamp")
}

func sanitizeContainer(input string) (string, error) {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	switch trimmed {
	case "", "webm":
		return "webm", nil
	case "mp4":
		return "mp4", nil
	default:
		return "", fmt.Errorf("unsupported container %q (want webm or mp4)", input)
	}
}

func (a *appState) log() *zap.Logger {
	if a.logger == nil {
		return zap.NewNop()
	}
	return a.logger
}

func (a *appState) progressEnabled() bool {
	if a.noProgress {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func (a *appState) outWriter() io.Writer {
	if a.out == nil {
		return os.Stdout
	}
	return a.out
}
