// Command jr100 runs the JR-100 emulator inside an ebiten window.
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"jr100/internal/buzzer"
	"jr100/internal/loader"
	"jr100/internal/machine"
	"jr100/internal/ui"
)

func mustRead(path string) []byte {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read %s: %v", path, err)
	}
	return b
}

func main() {
	basicPath := flag.String("basic", "assets/jr100basic.rom", "path to the 8 KiB BASIC ROM image")
	fontPath := flag.String("font", "assets/jr100font.rom", "path to the font ROM image (128 glyphs x 8 bytes)")
	programPath := flag.String("program", "", "optional .prog/.txt file to load before running")
	scale := flag.Int("scale", 3, "window scale")
	title := flag.String("title", "jr100", "window title")
	extRAM := flag.Bool("extram", false, "use 32 KiB main RAM instead of 16 KiB")
	trace := flag.Bool("trace", false, "enable the debug trace ring buffer")
	programsDir := flag.String("programsdir", "programs", "directory browsed by the in-app program menu")
	flag.Parse()

	basicROM := mustRead(*basicPath)
	fontROM := mustRead(*fontPath)

	cfg := machine.Defaults()
	cfg.ExtendedRAM = *extRAM
	cfg.Trace = *trace

	gen := buzzer.New(cfg.ClockHz, 48000)
	m, err := machine.New(cfg, basicROM, fontROM, gen)
	if err != nil {
		log.Fatalf("machine.New: %v", err)
	}

	if *programPath != "" {
		data := mustRead(*programPath)
		if strings.HasSuffix(strings.ToLower(*programPath), ".txt") {
			if _, err := loader.LoadBASICText(string(data), m.Bus); err != nil {
				log.Fatalf("load BASIC text: %v", err)
			}
		} else if _, err := loader.LoadPROG(data, m.Bus); err != nil {
			log.Fatalf("load PROG: %v", err)
		}
	}

	uiCfg := ui.Config{Title: *title, Scale: *scale, ProgramsDir: *programsDir}
	app := ui.NewApp(uiCfg, m, gen)
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
