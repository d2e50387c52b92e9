package main

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/bodgit/tga"
	"github.com/bodgit/tga/catalog"
	"github.com/urfave/cli/v2"
)

const defaultDB = "tga.db"

var types = map[string]tga.Type{
	"mapped":     tga.Mapped,
	"mapped-rle": tga.MappedRLE,
	"rgb":        tga.RGB,
	"rgb-rle":    tga.RGBRLE,
	"rgb16":      tga.RGB16,
	"rgb16-rle":  tga.RGB16RLE,
	"bw":         tga.BW,
	"bw-rle":     tga.BWRLE,
	"bw8":        tga.BW8,
	"bw8-rle":    tga.BW8RLE,
}

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version, V",
		Usage: "print the version",
	}
}

func readImage(path string) (*tga.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		return tga.DecodeFile(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return tga.FromImage(m), nil
}

func writeImage(path string, m *tga.Image, t tga.Type, colors int) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tga":
		b := new(bytes.Buffer)
		err := tga.Encode(b, m, t)
		if err == tga.ErrPaletteOverflow {
			b.Reset()
			err = tga.Encode(b, tga.Quantized(m, colors), t)
		}
		if err != nil {
			return err
		}
		return ioutil.WriteFile(path, b.Bytes(), 0644)
	case ".png":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := png.Encode(f, m.NRGBA()); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return fmt.Errorf("unsupported output format \"%s\"", filepath.Ext(path))
}

func main() {
	app := cli.NewApp()

	app.Name = "tga"
	app.Usage = "Truevision TGA utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"TGA_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to catalog database",
		},
		&cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "info",
			Usage:       "Print image parameters without decoding",
			Description: "",
			ArgsUsage:   "FILE...",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				for _, file := range c.Args().Slice() {
					f, err := os.Open(file)
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					config, err := tga.DecodeConfig(f)
					f.Close()
					if err != nil {
						return cli.NewExitError(fmt.Errorf("%s: %v", file, err), 1)
					}

					compression := "raw"
					if config.RLE {
						compression = "rle"
					}
					fmt.Printf("%s: %dx%d, %d channels, %d bpp, %s\n", file, config.Width, config.Height, config.Channels, config.BitsPerPixel, compression)
				}

				return nil
			},
		},
		{
			Name:        "convert",
			Usage:       "Convert between TGA and other image formats",
			Description: "",
			ArgsUsage:   "SOURCE DESTINATION",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "type, t",
					Value: "rgb",
					Usage: "TGA encoding to write",
				},
				&cli.IntFlag{
					Name:  "colors, c",
					Value: 256,
					Usage: "palette size when quantizing for mapped output",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				t, ok := types[c.String("type")]
				if !ok {
					return cli.NewExitError(fmt.Errorf("unknown type \"%s\"", c.String("type")), 1)
				}

				m, err := readImage(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := writeImage(c.Args().Get(1), m, t, c.Int("colors")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "flip",
			Usage:       "Mirror an image horizontally and/or vertically",
			Description: "",
			ArgsUsage:   "SOURCE DESTINATION",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "horizontal, x",
					Usage: "mirror left to right",
				},
				&cli.BoolFlag{
					Name:  "vertical, y",
					Usage: "mirror top to bottom",
				},
				&cli.StringFlag{
					Name:  "type, t",
					Value: "rgb",
					Usage: "TGA encoding to write",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				t, ok := types[c.String("type")]
				if !ok {
					return cli.NewExitError(fmt.Errorf("unknown type \"%s\"", c.String("type")), 1)
				}

				m, err := tga.DecodeFile(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if c.Bool("horizontal") {
					m.FlipHorizontal()
				}
				if c.Bool("vertical") {
					m.FlipVertical()
				}

				if err := tga.EncodeFile(c.Args().Get(1), m, t); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Scan filesystem and index TGA files",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := log.New(ioutil.Discard, "", 0)
				if c.Bool("verbose") {
					logger.SetOutput(os.Stderr)
				}

				db, err := catalog.New(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				if err := catalog.NewScanner(db, logger).Scan(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
