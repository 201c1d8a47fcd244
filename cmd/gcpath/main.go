package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leftmike/gcpath"
)

var (
	startLine = flag.Int("start", 1, "first line of the excerpt (1-indexed)")
	endLine   = flag.Int("end", 0, "last line of the excerpt (default: last line of the program)")
	pngDir    = flag.String("png", "", "write a plot of each excerpt to this directory")
	jsonOut   = flag.Bool("json", false, "print the coordinates of each excerpt as JSON")
	plotIn    = flag.String("plot", "", "plot coordinates read from this JSON file instead of analyzing programs")
	plotOut   = flag.String("o", "plot.png", "output file for -plot")
)

func main() {
	flag.Parse()

	if *plotIn != "" {
		if err := plot(*plotIn, *plotOut); err != nil {
			log.Fatal(err)
		}
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: gcpath [flags] file.nc|file.ngc ...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	var failed bool
	for adx := 0; adx < flag.NArg(); adx += 1 {
		fmt.Println(flag.Arg(adx))
		err := analyze(flag.Arg(adx))
		if err != nil {
			log.Print(err)
			failed = true
		}
		fmt.Println()
	}
	if failed {
		os.Exit(1)
	}
}

func analyze(filename string) error {
	d, err := gcpath.DialectFor(filename)
	if err != nil {
		return err
	}

	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	lines, err := gcpath.ReadLines(f)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	end := *endLine
	if end == 0 {
		end = len(lines)
	}
	if err := gcpath.CheckRange(len(lines), *startLine, end); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	res := gcpath.Parse(d, lines, *startLine, end)
	fmt.Printf("dialect: %s\n", d)
	fmt.Printf("records: %d\n", res.Path.Len())

	dist, err := gcpath.TotalDistance(res.Path)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	fmt.Printf("distance: %.4f\n", gcpath.RoundDistance(dist))

	length, width, err := res.Bounds.Extent()
	if errors.Is(err, gcpath.ErrInsufficientData) {
		fmt.Println("extent: undefined")
	} else {
		fmt.Printf("extent: %g x %g\n", length, width)
	}
	fmt.Printf("end of cut: %s\n", res.EndOfCut)

	if *jsonOut {
		b, err := json.Marshal(res.Path)
		if err != nil {
			return err
		}
		fmt.Printf("coordinates: %s\n", b)
	}

	if *pngDir != "" {
		base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		out := filepath.Join(*pngDir, base+".png")
		if err := writePNG(out, res.Path); err != nil {
			return err
		}
		fmt.Printf("plot: %s\n", out)
	}
	return nil
}

func plot(in, out string) error {
	b, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	var p gcpath.Path
	if err := json.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	return writePNG(out, p)
}

func writePNG(filename string, p gcpath.Path) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	err = gcpath.EncodePNG(f, gcpath.Rasterize(p), gcpath.DefaultRenderOptions)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
