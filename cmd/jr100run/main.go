// Command jr100run drives the JR-100 core headlessly: load a PROG/BASIC
// file, run it for a fixed number of frames, and optionally dump a trace
// of the last executed instructions or a PNG of the final screen.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"strings"
	"time"

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
	fontPath := flag.String("font", "assets/jr100font.rom", "path to the font ROM image")
	programPath := flag.String("program", "", "path to a .prog/.txt file to load before running")
	frames := flag.Int("frames", 300, "frames to run")
	extRAM := flag.Bool("extram", false, "use 32 KiB main RAM instead of 16 KiB")
	doTrace := flag.Bool("trace", false, "enable the trace ring buffer and dump it on exit")
	traceWindow := flag.Int("tracewindow", 64, "number of recent instructions to dump with -trace")
	pngOut := flag.String("outpng", "", "write the final screen to a PNG at this path")
	flag.Parse()

	basicROM := mustRead(*basicPath)
	fontROM := mustRead(*fontPath)

	cfg := machine.Defaults()
	cfg.ExtendedRAM = *extRAM
	cfg.Trace = *doTrace

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

	start := time.Now()
	for i := 0; i < *frames; i++ {
		if err := m.StepFrame(); err != nil {
			log.Printf("stopped at frame %d: %v", i, err)
			break
		}
	}
	elapsed := time.Since(start)
	fmt.Printf("ran %d frames in %s (clock=%d)\n", *frames, elapsed.Truncate(time.Millisecond), m.Clock())

	if *doTrace && m.Trace != nil {
		lines := m.Trace.Format(*traceWindow)
		for _, l := range lines {
			fmt.Println(l)
		}
	}

	if *pngOut != "" {
		grid := m.VideoRAM()
		img := ui.NewFrameBuffer()
		ui.RenderFrame(img, grid[:], m.Font, m.FontPlane())
		f, err := os.Create(*pngOut)
		if err != nil {
			log.Fatalf("create %s: %v", *pngOut, err)
		}
		defer f.Close()
		if err := png.Encode(f, img); err != nil {
			log.Fatalf("encode PNG: %v", err)
		}
		fmt.Printf("wrote %s\n", *pngOut)
	}
}
