package ui

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"jr100/internal/buzzer"
	"jr100/internal/loader"
	"jr100/internal/machine"
)

const sampleRate = 48000

// App wires a Machine into an ebiten window: keyboard input, the
// character-cell renderer and the one-bit buzzer's audio stream.
type App struct {
	cfg Config
	m   *machine.Machine
	gen *buzzer.Generator

	frame *image.RGBA
	tex   *ebiten.Image

	paused   bool
	showMenu bool
	muted    bool

	audioCtx    *audio.Context
	audioPlayer *audio.Player

	programs []string
	progSel  int
	progOff  int

	toastMsg   string
	toastUntil time.Time

	lastTime time.Time
	frameAcc float64
}

// NewApp builds an App around an already-assembled Machine and the
// Generator passed to it as its via.BuzzerSink.
func NewApp(cfg Config, m *machine.Machine, gen *buzzer.Generator) *App {
	cfg.Defaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(ScreenW*cfg.Scale, ScreenH*cfg.Scale)

	a := &App{
		cfg:      cfg,
		m:        m,
		gen:      gen,
		frame:    NewFrameBuffer(),
		tex:      ebiten.NewImage(ScreenW, ScreenH),
		lastTime: time.Now(),
	}
	a.audioCtx = audio.NewContext(sampleRate)
	return a
}

func (a *App) Run() error { return ebiten.RunGame(a) }

func (a *App) Update() error {
	if a.audioPlayer == nil {
		stream := buzzer.NewStream(a.gen, &a.muted)
		if p, err := a.audioCtx.NewPlayer(stream); err == nil {
			a.audioPlayer = p
			a.audioPlayer.Play()
		}
	}

	if !a.showMenu {
		applyKeyboard(a.m.Keyboard)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.showMenu = !a.showMenu
		if a.showMenu {
			a.programs = a.findPrograms()
			a.progSel, a.progOff = 0, 0
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.m.Reset()
	}
	if !a.showMenu && a.paused && inpututil.IsKeyJustPressed(ebiten.KeyN) {
		a.m.StepFrame()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	a.muted = a.paused || a.showMenu

	if a.showMenu {
		a.updateMenu()
		return nil
	}
	if !a.paused {
		a.m.StepFrame()
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	grid := a.m.VideoRAM()
	RenderFrame(a.frame, grid[:], a.m.Font, a.m.FontPlane())
	a.tex.WritePixels(a.frame.Pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(a.cfg.Scale), float64(a.cfg.Scale))
	screen.DrawImage(a.tex, op)

	if a.showMenu {
		a.drawMenu(screen)
	}
	if time.Now().Before(a.toastUntil) {
		ebitenutil.DebugPrintAt(screen, a.toastMsg, 8, ScreenH*a.cfg.Scale-20)
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenW * a.cfg.Scale, ScreenH * a.cfg.Scale
}

func (a *App) toast(msg string) {
	a.toastMsg = msg
	a.toastUntil = time.Now().Add(2 * time.Second)
}

// findPrograms lists .prog/.txt files under cfg.ProgramsDir for the menu.
func (a *App) findPrograms() []string {
	var out []string
	entries, err := os.ReadDir(a.cfg.ProgramsDir)
	if err != nil {
		return out
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.ToLower(e.Name())
		if strings.HasSuffix(name, ".prog") || strings.HasSuffix(name, ".txt") {
			out = append(out, filepath.Join(a.cfg.ProgramsDir, e.Name()))
		}
	}
	sort.Strings(out)
	return out
}

// loadProgram parses path per its extension and writes it into the
// machine's bus, matching spec §6's PROG/BASIC-text external formats.
func (a *App) loadProgram(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if strings.HasSuffix(strings.ToLower(path), ".txt") {
		_, err = loader.LoadBASICText(string(data), a.m.Bus)
		return err
	}
	_, err = loader.LoadPROG(data, a.m.Bus)
	return err
}

func (a *App) updateMenu() {
	n := len(a.programs)
	if n == 0 {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
			a.showMenu = false
		}
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.progSel > 0 {
		a.progSel--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.progSel < n-1 {
		a.progSel++
	}
	const maxRows = 12
	if a.progSel < a.progOff {
		a.progOff = a.progSel
	}
	if a.progSel >= a.progOff+maxRows {
		a.progOff = a.progSel - maxRows + 1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		path := a.programs[a.progSel]
		if err := a.loadProgram(path); err != nil {
			a.toast("Load failed: " + err.Error())
		} else {
			a.toast("Loaded " + filepath.Base(path))
			a.showMenu = false
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.showMenu = false
	}
}

func (a *App) drawMenu(screen *ebiten.Image) {
	if len(a.programs) == 0 {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("No programs found in %s", a.cfg.ProgramsDir), 10, 10)
		ebitenutil.DebugPrintAt(screen, "Enter/Backspace: close", 10, 24)
		return
	}
	ebitenutil.DebugPrintAt(screen, "Programs:", 10, 10)
	const maxRows = 12
	for i := 0; i < maxRows && a.progOff+i < len(a.programs); i++ {
		idx := a.progOff + i
		prefix := "  "
		if idx == a.progSel {
			prefix = "> "
		}
		ebitenutil.DebugPrintAt(screen, prefix+filepath.Base(a.programs[idx]), 10, 24+i*14)
	}
	ebitenutil.DebugPrintAt(screen, "Enter: load  Backspace: close", 10, 24+maxRows*14+10)
}
