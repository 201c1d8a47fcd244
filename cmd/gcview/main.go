package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/leftmike/gcpath"
)

var (
	output = flag.String("o", "", "output HTML file (default: stdout)")
)

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// strokesJS writes the strokes of a drawing as a JavaScript array literal of
// point arrays.
func strokesJS(d gcpath.Drawing) string {
	var buf bytes.Buffer
	for _, s := range d.Strokes {
		buf.WriteString("  [")
		for pdx, pt := range s {
			if pdx > 0 {
				buf.WriteByte(',')
			}
			fmt.Fprintf(&buf, "{x: %s, y: %s}", formatFloat(pt.X), formatFloat(pt.Y))
		}
		buf.WriteString("],\n")
	}
	return buf.String()
}

func configJS(ext gcpath.Bounds) string {
	if !ext.Valid() {
		return "  minPos: {x: 0, y: 0},\n  maxPos: {x: 1, y: 1},\n"
	}
	return fmt.Sprintf("  minPos: {x: %s, y: %s},\n  maxPos: {x: %s, y: %s},\n",
		formatFloat(ext.XMin), formatFloat(ext.YMin), formatFloat(ext.XMax),
		formatFloat(ext.YMax))
}

func view(filename string) (string, error) {
	d, err := gcpath.DialectFor(filename)
	if err != nil {
		return "", err
	}
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	lines, err := gcpath.ReadLines(f)
	if err != nil {
		return "", fmt.Errorf("%s: %w", filename, err)
	}
	res := gcpath.Parse(d, lines, 1, len(lines))
	drawing := gcpath.Rasterize(res.Path)
	return fmt.Sprintf(indexHTML, filepath.Base(filename), configJS(drawing.Extent()),
		strokesJS(drawing)), nil
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("usage: gcview [-o file.html] file.nc|file.ngc")
	}

	html, err := view(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	if *output == "" {
		fmt.Print(html)
		return
	}
	err = os.WriteFile(*output, []byte(html), 0o644)
	if err != nil {
		log.Fatal(err)
	}
}
