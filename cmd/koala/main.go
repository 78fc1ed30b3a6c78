package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strings"

	"github.com/bodgit/koala"
	"github.com/bodgit/koala/palette"
	"github.com/bodgit/koala/tile"
	"github.com/urfave/cli/v2"
)

const defaultPalette = "pepto"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version, V",
		Usage: "print the version",
	}
}

func newKoala(c *cli.Context) (*koala.Koala, error) {
	p, err := palette.ByName(c.String("palette"))
	if err != nil {
		return nil, err
	}

	digits := tile.HexDigits
	if c.Bool("legacy-keys") {
		digits = tile.LegacyDigits
	}

	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	return koala.New(p, digits, logger)
}

func printColors(c *cli.Context, used tile.ColorsUsed) {
	for i, n := range used {
		if n > 0 {
			fmt.Fprintf(c.App.Writer, "  %2d: %d\n", i, n)
		}
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "koala"
	app.Usage = "Commodore 64 Koala image utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "palette",
			EnvVars: []string{"KOALA_PALETTE"},
			Value:   defaultPalette,
			Usage:   "color palette, one of " + strings.Join(palette.Names(), ", "),
		},
		&cli.BoolFlag{
			Name:    "legacy-keys",
			EnvVars: []string{"KOALA_LEGACY_KEYS"},
			Usage:   "build character keys with the VChar64 digit table",
		},
		&cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "info",
			Usage:       "Show character and color usage of an image",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "top",
					Value: 10,
					Usage: "number of most used characters to list, 0 for all",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				k, err := newKoala(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				r, err := k.Analyze(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				k.LogReport(r)

				fmt.Fprintf(c.App.Writer, "Unique chars: %d\n", len(r.UniqueChars))
				for _, e := range r.TopChars(c.Int("top")) {
					fmt.Fprintf(c.App.Writer, "  %s %d\n", e.Key, e.Count)
				}
				fmt.Fprintln(c.App.Writer, "Colors used:")
				printColors(c, r.ColorsUsed)

				return nil
			},
		},
		{
			Name:        "convert",
			Usage:       "Convert an image to PNG, GIF, JPEG or BMP",
			Description: "The output format is chosen from the extension of OUTPUT.",
			ArgsUsage:   "FILE OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "scale",
					Value: 2,
					Usage: "pixel size of the output",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				k, err := newKoala(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := k.Convert(c.Args().Get(0), c.Args().Get(1), c.Int("scale")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "thumbnail",
			Usage:       "Create a 16 color thumbnail of an image",
			Description: "The output format is chosen from the extension of OUTPUT.",
			ArgsUsage:   "FILE OUTPUT",
			Flags: []cli.Flag{
				&cli.UintFlag{
					Name:  "width",
					Value: 160,
					Usage: "width of the thumbnail",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				k, err := newKoala(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := k.Thumbnail(c.Args().Get(0), c.Args().Get(1), c.Uint("width")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Scan a directory tree and summarise character and color usage",
			Description: "Files with a .koa, .kla or .koala extension are analysed.",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				k, err := newKoala(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				s, err := k.Scan(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Fprintf(c.App.Writer, "Files: %d (%d skipped)\n", s.Files, s.Skipped)
				fmt.Fprintf(c.App.Writer, "Unique chars: %d\n", len(s.UniqueChars))
				fmt.Fprintln(c.App.Writer, "Colors used:")
				printColors(c, s.ColorsUsed)

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
