package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"wintercard/pkg/game/config"
	"wintercard/pkg/game/devtools"
	"wintercard/pkg/game/gameplay"
	"wintercard/pkg/game/renderer"
	ebitenrenderer "wintercard/pkg/game/renderer/ebiten"
	"wintercard/pkg/game/renderer/tui"
	"wintercard/pkg/game/rooms"
	"wintercard/pkg/game/session"
	"wintercard/pkg/game/sfx"
	"wintercard/pkg/game/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	flag.StringVar(&cfg.Variant, "variant", cfg.Variant, "card to play ("+strings.Join(rooms.Variants(), ", ")+")")
	flag.StringVar(&cfg.Renderer, "renderer", cfg.Renderer, "tui or ebiten")
	flag.StringVar(&cfg.Store, "store", cfg.Store, "where progress is kept: file, sqlite or memory")
	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory for saved progress and logs")
	flag.StringVar(&cfg.Lang, "lang", cfg.Lang, "interface language ("+strings.Join(renderer.Languages(), ", ")+")")
	flag.BoolVar(&cfg.Mute, "mute", cfg.Mute, "do not open the audio device")
	dump := flag.Bool("dump", false, "write the card and saved progress to catalog.txt in the data dir and exit")
	flag.Parse()

	if err := cfg.Validate(rooms.Variants()); err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("create data dir: %v", err)
	}
	if cfg.Renderer == config.RendererTUI {
		redirectLog(cfg.DataDir)
	}

	if err := renderer.LoadLocale(cfg.Lang); err != nil {
		log.Fatalf("%v", err)
	}

	cat, err := rooms.Load(cfg.Variant)
	if err != nil {
		log.Fatalf("%v", err)
	}

	backend, err := openBackend(cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer backend.Close()

	g := gameplay.New(cat, store.New(backend, cat), gameplay.SystemClock{})
	if *dump {
		path, err := devtools.DumpToFile(cfg.DataDir, cat, g.View())
		if err != nil {
			log.Fatalf("dump: %v", err)
		}
		fmt.Println(path)
		return
	}

	sess := session.New(g)
	defer sess.Close()

	if !cfg.Mute {
		detach := sfx.Attach(g, sfx.NewEbitenPlayer(), func() bool { return g.Settings().Sound })
		defer detach()
	}

	switch cfg.Renderer {
	case config.RendererEbiten:
		if err := runWindow(g, sess); err != nil {
			log.Printf("%v", err)
		}
	default:
		runTerminal(g, sess)
	}
}

// redirectLog keeps log lines from tearing the terminal screen.
func redirectLog(dir string) {
	f, err := os.OpenFile(filepath.Join(dir, "wintercard.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("log file: %v", err)
		return
	}
	log.SetOutput(f)
}

func openBackend(cfg config.Config) (store.Backend, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		b, err := store.OpenSQLite(filepath.Join(cfg.DataDir, "wintercard.db"))
		if err != nil {
			return nil, err
		}
		return b, nil
	case config.StoreMemory:
		return store.NewMemoryBackend(), nil
	default:
		b, err := store.OpenFile(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
}

// runTerminal is the blocking read-eval-draw loop. Holds end on timers between
// keystrokes, so those events redraw the screen too.
func runTerminal(g *gameplay.Game, sess *session.Session) {
	renderer.SetRenderer(tui.New())
	renderer.Init()

	var mu sync.Mutex
	draw := func() {
		mu.Lock()
		defer mu.Unlock()
		renderer.RenderFrame(sess.Frame())
	}

	var handling atomic.Bool
	unsubscribe := g.Subscribe(func(e gameplay.Event) {
		if handling.Load() {
			return
		}
		switch e.Kind {
		case gameplay.EventRoomEntered, gameplay.EventStageChanged, gameplay.EventIdleNudge:
			draw()
		}
	})
	defer unsubscribe()

	for {
		draw()
		in := renderer.GetInput()
		handling.Store(true)
		quit := sess.Handle(in)
		handling.Store(false)
		if quit {
			break
		}
	}
	fmt.Println()
	fmt.Println(renderer.Translate("GOODBYE"))
}

// runWindow gives the main goroutine to Ebiten and runs the card loop beside it.
func runWindow(g *gameplay.Game, sess *session.Session) error {
	w := ebitenrenderer.New()
	renderer.SetRenderer(w)
	renderer.Init()

	unsubscribe := g.Subscribe(func(e gameplay.Event) {
		w.React(e)
		w.RenderFrame(sess.Frame())
	})
	defer unsubscribe()

	go func() {
		defer w.Close()
		for {
			w.RenderFrame(sess.Frame())
			if sess.Handle(w.GetInput()) {
				return
			}
		}
	}()
	return w.Run()
}
