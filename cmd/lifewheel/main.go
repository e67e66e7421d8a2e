// Command lifewheel opens the wheel of life tracker window.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/elektrokombinacija/lifewheel/internal/config"
	"github.com/elektrokombinacija/lifewheel/internal/store"
	"github.com/elektrokombinacija/lifewheel/internal/vis"
)

func main() {
	configFile := flag.String("config", "", "config file (default .lifewheel.yaml in . or $HOME)")
	flag.Parse()

	cfg, err := config.Load(config.New(*configFile))
	if err != nil {
		log.Fatal(err)
	}
	db, err := store.OpenSQLite(context.Background(), cfg.DataPath)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("Wheel of Life"),
			app.Size(unit.Dp(cfg.Size), unit.Dp(cfg.Size+140)),
		)

		application := vis.NewApp(cfg, db)
		err := application.Run(window)
		if cerr := db.Close(); cerr != nil {
			log.Printf("close store: %v", cerr)
		}
		if err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
