package viz

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/castplay/internal/analysis"
	"github.com/san-kum/castplay/internal/clock"
	"github.com/san-kum/castplay/internal/fetch"
	"github.com/san-kum/castplay/internal/player"
	"github.com/san-kum/castplay/internal/screen"
)

const (
	refreshRate     = time.Second / 30
	activityBuckets = 200
)

type TickMsg time.Time

// wakeMsg carries a driver timer callback into the update loop.
type wakeMsg func()

type startMsg struct{}

type restartMsg struct{}

func tick() tea.Cmd {
	return tea.Tick(refreshRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

type Options struct {
	Player  player.Options
	Fetcher fetch.Fetcher
	Logger  *slog.Logger
	Theme   string
	Speed   float64
	Loop    bool
}

// session is the mutable playback state shared by every copy of Model.
type session struct {
	drv      *player.Driver
	screen   *screen.Screen
	finished bool
	loop     bool
}

// Model is the Bubble Tea model of the viewer.
type Model struct {
	ctx      context.Context
	s        *session
	log      *slog.Logger
	info     player.Info
	title    string
	limit    string
	activity []float64
	theme    Theme
	st       styles
	width    int
	height   int
	showHelp bool
	err      error
}

// NewModel loads the recording and returns a viewer that starts playing
// once the program runs. clk must deliver timer callbacks into the same
// program, see Run.
func NewModel(ctx context.Context, opts Options, clk clock.Clock) (Model, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	if opts.Speed > 0 && opts.Speed != 1 {
		clk = clock.NewScaled(clk, opts.Speed)
	}

	s := &session{loop: opts.Loop}
	s.drv = player.New(opts.Player, player.Ports{
		Feed:     func(chunk string) { s.screen.Feed(chunk) },
		Clock:    clk,
		OnFinish: func() { s.finished = true },
		Fetcher:  opts.Fetcher,
		Logger:   log,
	})

	info, err := s.drv.Init(ctx)
	if err != nil {
		return Model{}, err
	}
	s.screen = screen.New(info.Cols, info.Rows)

	theme, ok := GetTheme(opts.Theme)
	if !ok && opts.Theme != "" {
		log.Warn("unknown theme", "theme", opts.Theme, "available", ThemeNames())
	}

	m := Model{
		ctx:    ctx,
		s:      s,
		log:    log,
		info:   info,
		title:  s.drv.Header().Title,
		theme:  theme,
		st:     newStyles(theme),
		width:  info.Cols + 2,
		height: info.Rows + 6,
	}
	if m.title == "" {
		m.title = opts.Player.URL
	}
	if t := s.drv.Table(); t.Limited() {
		m.limit = fmt.Sprintf("idle limit %gs", t.IdleTimeLimit)
	}
	if info.Duration > 0 {
		m.activity = analysis.Activity(s.drv.Table().Frames, info.Duration, info.Duration/activityBuckets)
	}
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(func() tea.Msg { return startMsg{} }, tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startMsg:
		if err := m.s.drv.Start(m.ctx); err != nil {
			m.err = err
			return m, nil
		}
		return m, m.afterDriver()
	case wakeMsg:
		msg()
		return m, m.afterDriver()
	case restartMsg:
		if _, err := m.s.drv.PauseOrResume(); err != nil {
			m.err = err
		}
		return m, m.afterDriver()
	case TickMsg:
		return m, tick()
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error
	switch key := msg.String(); key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ":
		_, err = m.s.drv.PauseOrResume()
	case "left":
		err = m.s.drv.Seek(player.Back)
	case "right":
		err = m.s.drv.Seek(player.Forward)
	case "[":
		err = m.s.drv.Seek(player.BackFar)
	case "]":
		err = m.s.drv.Seek(player.ForwardFar)
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		err = m.s.drv.Seek(player.Percent(float64(key[0]-'0') * 10))
	case "L":
		m.s.loop = !m.s.loop
	case "t":
		m.theme = nextTheme(m.theme)
		m.st = newStyles(m.theme)
	case "?":
		m.showHelp = !m.showHelp
	}
	if err != nil {
		m.log.Warn("key failed", "key", msg.String(), "err", err)
		m.err = err
	}
	return m, m.afterDriver()
}

// afterDriver schedules a replay when playback just finished in loop mode.
func (m Model) afterDriver() tea.Cmd {
	if !m.s.finished {
		return nil
	}
	m.s.finished = false
	if !m.s.loop || m.info.Duration == 0 {
		return nil
	}
	return func() tea.Msg { return restartMsg{} }
}

func (m Model) status() string {
	switch m.s.drv.State() {
	case player.Playing:
		return m.st.playing.Render("▶ PLAYING")
	case player.Paused:
		return m.st.paused.Render("⏸ PAUSED")
	case player.Finished:
		return m.st.finished.Render("■ FINISHED")
	default:
		return m.st.label.Render("· STOPPED")
	}
}

func (m Model) View() string {
	var b strings.Builder

	header := m.st.title.Render(m.title) + m.st.label.Render(fmt.Sprintf("  %dx%d", m.info.Cols, m.info.Rows))
	if m.limit != "" {
		header += m.st.label.Render("  " + m.limit)
	}
	if m.s.loop {
		header += m.st.label.Render("  loop")
	}
	b.WriteString(header + "\n")
	b.WriteString(m.st.frame.Render(m.s.screen.ANSI()) + "\n")

	now := min(m.s.drv.CurrentTime(), m.info.Duration)
	fraction := 0.0
	if m.info.Duration > 0 {
		fraction = now / m.info.Duration
	}
	clockText := fmt.Sprintf("%s / %s", FormatClock(now), FormatClock(m.info.Duration))
	barWidth := max(m.info.Cols-lipgloss.Width(clockText)-16, 10)
	b.WriteString(fmt.Sprintf("%s  %s  %s\n", m.status(), m.st.value.Render(clockText), m.st.progressBar(fraction, barWidth)))

	if len(m.activity) > 0 {
		b.WriteString(m.st.label.Render("activity ") + m.st.spark.Render(analysis.Sparkline(m.activity, m.info.Cols-9)) + "\n")
	}
	if m.err != nil {
		b.WriteString(m.st.err.Render(m.err.Error()) + "\n")
	}
	b.WriteString(m.st.hint.Render("space pause · ←/→ 5s · [/] 10% · 0-9 jump · t theme · ? help · q quit"))

	if m.showHelp {
		return m.st.help.Render(helpText) + "\n\n" + b.String()
	}
	return b.String()
}

const helpText = `KEYBOARD SHORTCUTS

Space  Pause/Resume
←  →   Seek 5s back/forward
[  ]   Seek 10% back/forward
0-9    Jump to 0%..90%
L      Toggle looping
t      Cycle themes
?      Toggle this help
Q      Quit`

// sender posts timer callbacks to a program that is created after the
// clock that needs it.
type sender struct {
	p *tea.Program
}

func (s *sender) post(f func()) {
	if s.p != nil {
		s.p.Send(wakeMsg(f))
	}
}

// Run loads the recording and shows the viewer until the user quits or
// ctx is done.
func Run(ctx context.Context, opts Options) error {
	snd := &sender{}
	m, err := NewModel(ctx, opts, clock.NewReal(snd.post))
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	snd.p = p
	_, err = p.Run()
	m.s.drv.Stop()
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
