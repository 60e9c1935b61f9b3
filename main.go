package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flag.Parse()

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := newGame(seed)

	if *recordDefaultPGO {
		stop, err := startDefaultPGORecording("default.pgo")
		if err != nil {
			log.Fatalf("PGO recording failed: %v", err)
		}
		log.Printf("Recording default.pgo for %v", pgoRecordDuration)
		time.AfterFunc(pgoRecordDuration, stop)
	}

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("Star Drift")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
