package ui

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/aidetect/internal/detect"
	"github.com/yildizm/aidetect/internal/logger"
	"github.com/yildizm/aidetect/internal/ui/components"
)

const (
	defaultCardWidth   = 72
	defaultPickerLines = 10
)

// Options configures the detection model. An empty Hint hides the accepted
// file hint; InitialFile is selected as soon as the model starts.
type Options struct {
	Session      *detect.Session
	Detector     detect.Detector
	TickInterval time.Duration
	StartDir     string
	ShowHidden   bool
	WatchDir     bool
	Hint         string
	InitialFile  string
	Logger       *logger.Logger
}

// Model is the interactive detection screen
type Model struct {
	session  *detect.Session
	detector detect.Detector
	interval time.Duration
	hint     string
	initial  string
	log      *logger.Logger

	picker  filepicker.Model
	spinner spinner.Model
	bar     *components.ProgressBar
	keys    keyMap
	help    help.Model
	styles  *Styles

	watchDir bool
	watcher  *dirWatcher

	ctx    context.Context
	cancel context.CancelFunc

	width    int
	height   int
	quitting bool
	last     *detect.Result
}

// NewModel creates the detection model
func NewModel(opts Options) *Model {
	if opts.Session == nil {
		opts.Session = detect.NewSession()
	}
	if opts.Detector == nil {
		opts.Detector = detect.NewSimulatedDetector(detect.DefaultDelay, 0)
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = detect.DefaultTickInterval
	}
	if opts.StartDir == "" {
		opts.StartDir = "."
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	styles := GetStyles()

	fp := filepicker.New()
	fp.CurrentDirectory = opts.StartDir
	fp.ShowHidden = opts.ShowHidden
	fp.ShowPermissions = false
	fp.ShowSize = true
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.AutoHeight = false
	fp.Height = defaultPickerLines

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styles.Busy

	ctx, cancel := context.WithCancel(context.Background())

	return &Model{
		session:  opts.Session,
		detector: opts.Detector,
		interval: opts.TickInterval,
		hint:     opts.Hint,
		initial:  opts.InitialFile,
		log:      opts.Logger.WithComponent("ui"),
		picker:   fp,
		spinner:  sp,
		bar:      components.NewProgressBar(defaultCardWidth-12, styles.Theme.Primary),
		keys:     defaultKeyMap(),
		help:     help.New(),
		styles:   styles,
		watchDir: opts.WatchDir,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Init loads the picker directory and starts watching it
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.picker.Init()}
	if m.initial != "" {
		cmds = append(cmds, SelectFile(m.initial))
	}

	if m.watchDir {
		watcher, err := newDirWatcher()
		if err != nil {
			m.log.Warn("directory watching disabled: %v", err)
		} else if err := watcher.Watch(m.picker.CurrentDirectory); err != nil {
			m.log.Warn("directory watching disabled: %v", err)
			_ = watcher.Close()
		} else {
			m.watcher = watcher
			cmds = append(cmds, watcher.Next())
		}
	}

	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.shutdown()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Detect):
			return m, m.trigger()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

	case selectFileMsg:
		m.selectPath(msg.path)
		return m, nil

	case progressTickMsg:
		if _, ok := m.session.Tick(msg.runID); ok {
			return m, progressTick(m.interval, msg.runID)
		}
		return m, nil

	case detectionDoneMsg:
		m.finish(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.session.Snapshot().Busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case dirChangedMsg:
		if m.watcher == nil {
			return m, nil
		}
		cmds := []tea.Cmd{m.watcher.Next()}
		if sameDir(msg.dir, m.watcher.Dir()) {
			cmds = append(cmds, m.picker.Init())
		}
		return m, tea.Batch(cmds...)

	case watchErrorMsg:
		m.log.ErrorWithFields("directory watch failed", []logger.Field{logger.Error(msg.err)})
		if m.watcher == nil {
			return m, nil
		}
		return m, m.watcher.Next()
	}

	return m.updatePicker(msg)
}

// updatePicker forwards a message to the file picker and handles selection
func (m *Model) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if selected, path := m.picker.DidSelectFile(msg); selected {
		m.selectPath(path)
	}

	if m.watcher != nil {
		if err := m.watcher.Watch(m.picker.CurrentDirectory); err != nil {
			m.log.Warn("cannot watch %s: %v", m.picker.CurrentDirectory, err)
		}
	}

	return m, cmd
}

// selectPath replaces the selected file
func (m *Model) selectPath(path string) {
	f, err := detect.StatFile(path)
	if err != nil {
		m.log.Warn("stat failed: %v", err)
		f = &detect.SelectedFile{Path: path, Name: filepath.Base(path)}
	}

	if err := m.session.Select(f); err != nil {
		m.log.InfoWithFields("selection rejected", []logger.Field{logger.File(f.Name), logger.Error(err)})
		return
	}
	m.log.DebugWithFields("file selected", []logger.Field{logger.File(f.Name), logger.F("size", f.Size)})
}

// trigger starts a detection run if the action is enabled
func (m *Model) trigger() tea.Cmd {
	run, err := m.session.Begin()
	switch {
	case errors.Is(err, detect.ErrBusy):
		return nil
	case err != nil:
		m.log.Debug("detection not started: %v", err)
		return nil
	}

	m.log.InfoWithFields("detection started", []logger.Field{logger.File(run.File.Name), logger.RunID(run.ID)})
	return tea.Batch(
		progressTick(m.interval, run.ID),
		detectCommand(m.ctx, m.detector, run),
		m.spinner.Tick,
	)
}

// finish publishes a detector outcome
func (m *Model) finish(msg detectionDoneMsg) {
	result, err := m.session.Finish(msg.runID, msg.probability, msg.err)
	if err != nil {
		m.log.ErrorWithFields("detection failed", []logger.Field{logger.RunID(msg.runID), logger.Error(err)})
		return
	}
	if result == nil {
		return
	}

	m.last = result
	m.log.InfoWithFields("detection finished", []logger.Field{
		logger.File(result.File.Name),
		logger.RunID(result.ID),
		logger.F("probability", result.Probability.Percent()),
		logger.Duration(result.Duration()),
	})
}

// resize lays the picker out for the window
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	lines := height - 20
	if lines < 3 {
		lines = 3
	}
	if lines > 15 {
		lines = 15
	}
	m.picker.Height = lines
	m.bar.SetWidth(m.cardWidth() - 12)
}

// shutdown cancels in-flight detection and releases the watcher
func (m *Model) shutdown() {
	m.cancel()
	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			m.log.Warn("failed to close watcher: %v", err)
		}
		m.watcher = nil
	}
}

// Session returns the underlying session
func (m *Model) Session() *detect.Session {
	return m.session
}

// LastResult returns the most recent successful result
func (m *Model) LastResult() *detect.Result {
	return m.last
}

func (m *Model) cardWidth() int {
	if m.width <= 0 {
		return defaultCardWidth
	}
	return minInt(m.width-4, defaultCardWidth)
}

func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Run runs the interactive detection TUI until the user quits
func Run(opts Options) (*Model, error) {
	model := NewModel(opts)
	defer model.shutdown()

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return model, err
}
