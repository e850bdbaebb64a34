package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/tmr232/pandagen/tutorial"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"
)

// runAll renders every tutorial into its own buffer concurrently, then
// writes them to w in order.
func runAll(w io.Writer, tutorials []tutorial.Tutorial) error {
	outputs := make([]bytes.Buffer, len(tutorials))

	var g errgroup.Group
	for i, t := range tutorials {
		g.Go(func() error {
			fmt.Fprintf(&outputs[i], "== %s ==\n", t.Name)
			if err := t.Run(&outputs[i]); err != nil {
				return fmt.Errorf("%s: %w", t.Name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range outputs {
		if _, err := outputs[i].WriteTo(w); err != nil {
			return err
		}
	}
	return nil
}

func newApp(w io.Writer, tutorials []tutorial.Tutorial) *cli.App {
	app := cli.NewApp()
	app.Name = "tutorial"
	app.Usage = "walk through the frame and generator packages"
	app.Action = func(c *cli.Context) error {
		return runAll(w, tutorials)
	}
	for _, t := range tutorials {
		app.Commands = append(app.Commands, cli.Command{
			Name:  t.Name,
			Usage: t.Usage,
			Action: func(c *cli.Context) error {
				return t.Run(w)
			},
		})
	}
	return app
}

func main() {
	if err := newApp(os.Stdout, tutorial.All).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
