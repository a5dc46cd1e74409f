// Copyright (C) 2024 XELIS
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"p2put/api"
	"p2put/cfg"
	"p2put/config"
	"p2put/database"
	"p2put/log"
	"p2put/palette"
	"p2put/pixel"
	"p2put/pixeladdr"
	"p2put/ratelimit"
	"p2put/sync"
	"p2put/util"

	"github.com/gin-gonic/gin"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()

	app.Name = "p2put"
	app.Usage = "Pixel burn address generator"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"P2PUT_CONFIG"},
			Value:   config.DEFAULT_CONFIG_FILE,
			Usage:   "path to the JSON configuration",
		},
		&cli.StringFlag{
			Name:  "hrp",
			Usage: "bech32 human readable part, overrides the configuration",
		},
		&cli.StringFlag{
			Name:  "burn-prefix",
			Usage: "5 byte burn prefix in hex, overrides the configuration",
		},
		&cli.StringFlag{
			Name:  "burn-tag",
			Usage: "derive the burn prefix from this tag, overrides the configuration",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "address",
			Usage:     "Print the burn address painting a pixel",
			ArgsUsage: "X Y COLOUR",
			Action:    addressCmd,
		},
		{
			Name:      "decode",
			Usage:     "Print the pixel painted by a burn address",
			ArgsUsage: "ADDRESS",
			Action:    decodeCmd,
		},
		{
			Name:   "palette",
			Usage:  "List the colour palette",
			Action: paletteCmd,
		},
		{
			Name:   "serve",
			Usage:  "Run the HTTP API",
			Action: serveCmd,
		},
		{
			Name:      "history",
			Usage:     "List addresses generated for a coordinate",
			ArgsUsage: "X Y",
			Action:    historyCmd,
		},
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		log.DisableColors()
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadConfig applies the command line overrides on top of the config file.
// The one-shot commands fall back to the defaults when there is no config
// file; serve writes a blank one and fails.
func loadConfig(c *cli.Context, writeBlank bool) (cfg.Config, error) {
	path := c.String("config")

	conf, err := cfg.Load(path)
	if errors.Is(err, cfg.ErrNoConfig) {
		if writeBlank {
			if err := cfg.WriteBlank(path); err != nil {
				return cfg.Config{}, err
			}
			return cfg.Config{}, fmt.Errorf("%w, blank configuration created at %s", err, path)
		}
		log.Debug(err)
		conf, err = cfg.Default(), nil
	}
	if err != nil {
		return cfg.Config{}, err
	}

	if c.Bool("verbose") && conf.LogLevel < 1 {
		conf.LogLevel = 1
	}
	log.LogLevel = conf.LogLevel

	if c.IsSet("hrp") {
		conf.BechPrefix = c.String("hrp")
	}
	if c.IsSet("burn-prefix") {
		conf.BurnPrefix = c.String("burn-prefix")
	}
	if c.IsSet("burn-tag") {
		conf.BurnPrefix = ""
		conf.BurnTag = c.String("burn-tag")
	}

	return conf, nil
}

func newGenerator(conf cfg.Config) (*pixeladdr.Locked, error) {
	prefix, err := conf.BurnPrefixBytes()
	if err != nil {
		return nil, err
	}
	log.Debugf("burn prefix %s, hrp %s", hex.EncodeToString(prefix), conf.BechPrefix)

	return pixeladdr.NewLocked(conf.BechPrefix, prefix)
}

func parseCoord(c *cli.Context) (pixel.Coord, error) {
	x, err := util.ParseUint[uint16](c.Args().Get(0))
	if err != nil {
		return pixel.Coord{}, fmt.Errorf("x: %w", err)
	}
	y, err := util.ParseUint[uint16](c.Args().Get(1))
	if err != nil {
		return pixel.Coord{}, fmt.Errorf("y: %w", err)
	}
	return pixel.Coord{X: x, Y: y}, nil
}

// parseColour accepts a palette ID or a colour name.
func parseColour(s string) (uint8, error) {
	if col, ok := palette.ByName(s); ok {
		return col.Id, nil
	}
	return util.ParseUint[uint8](s)
}

func addressCmd(c *cli.Context) error {
	if c.NArg() != 3 {
		cli.ShowSubcommandHelpAndExit(c, 1)
	}

	conf, err := loadConfig(c, false)
	if err != nil {
		return err
	}

	coord, err := parseCoord(c)
	if err != nil {
		return err
	}
	id, err := parseColour(c.Args().Get(2))
	if err != nil {
		return fmt.Errorf("colour: %w", err)
	}
	px, err := pixel.New(coord, id)
	if err != nil {
		return err
	}

	gen, err := newGenerator(conf)
	if err != nil {
		return err
	}

	addr, err := gen.ForPixelColour(px.Coord, px.ColourId)
	if err != nil {
		return err
	}

	fmt.Println(addr)
	return nil
}

func decodeCmd(c *cli.Context) error {
	if c.NArg() != 1 {
		cli.ShowSubcommandHelpAndExit(c, 1)
	}

	conf, err := loadConfig(c, false)
	if err != nil {
		return err
	}
	gen, err := newGenerator(conf)
	if err != nil {
		return err
	}

	px, err := gen.Decode(c.Args().First())
	if err != nil {
		return err
	}

	col := px.Colour()
	fmt.Printf("%d %d %d %s %s\n", px.Coord.X, px.Coord.Y, col.Id, palette.Hex(col), col.Name)
	return nil
}

func paletteCmd(c *cli.Context) error {
	for _, col := range palette.Palette() {
		fmt.Printf("%2d %s %s\n", col.Id, palette.Hex(col), col.Name)
	}
	return nil
}

func historyCmd(c *cli.Context) error {
	if c.NArg() != 2 {
		cli.ShowSubcommandHelpAndExit(c, 1)
	}

	conf, err := loadConfig(c, false)
	if err != nil {
		return err
	}
	coord, err := parseCoord(c)
	if err != nil {
		return err
	}

	store, err := database.Open(conf.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.ForCoord(coord)
	if err != nil {
		return err
	}

	fmt.Println(util.DumpJson(recs))
	return nil
}

func serveCmd(c *cli.Context) error {
	conf, err := loadConfig(c, true)
	if err != nil {
		return err
	}

	gen, err := newGenerator(conf)
	if err != nil {
		return err
	}

	if log.LogLevel > 2 {
		sync.SetDeadlockTimeout(config.DEADLOCK_TIMEOUT)
	} else {
		sync.SetDeadlockTimeout(0)
	}

	store, err := database.Open(conf.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter := ratelimit.New()
	go limiter.Run(ctx)

	gin.SetMode("release")

	srv := &api.Server{
		Gen:            gen,
		Limiter:        limiter,
		Store:          store,
		TrustedProxies: conf.Api.TrustedProxies,
	}

	return srv.ListenAndServe(ctx, conf.Api.Host+":"+util.FormatUint(conf.Api.Port))
}
