package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	_ "image/jpeg"

	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	"golang.org/x/term"

	"github.com/esimov/morph"
	"github.com/esimov/morph/utils"
)

var (
	// Flags
	source      = flag.String("src", "", "Source image (file path or http(s) URL)")
	target      = flag.String("dst", "", "Target image (file path or http(s) URL)")
	points      = flag.String("points", "", "Control point template (CSV)")
	destination = flag.String("out", "morph.gif", "Output GIF")
	frames      = flag.Int("frames", 10, "Number of frames")
	delay       = flag.Int("delay", 5, "Frame delay in 10ms units")
	boomerang   = flag.Bool("boomerang", false, "Append the reversed sequence")
	workers     = flag.Int("workers", 0, "Parallel frame workers (0 = all CPUs)")
	overlay     = flag.String("overlay", "", "Optional PNG dump of the annotated source image")
	corners     = flag.Bool("corners", true, "Anchor the four image corners")
)

var log = logrus.New()

func main() {
	flag.Parse()

	if len(*source) == 0 || len(*target) == 0 || len(*points) == 0 {
		log.Fatal("Usage: morph -src source.jpg -dst target.jpg -points points.csv -out morph.gif")
	}

	srcImg, err := openImage(*source)
	if err != nil {
		log.Fatalf("Unable to open source image: %v", err)
	}
	dstImg, err := openImage(*target)
	if err != nil {
		log.Fatalf("Unable to open target image: %v", err)
	}

	pairs, err := morph.LoadTemplate(*points)
	if err != nil {
		log.Fatalf("Unable to load point template: %v", err)
	}

	src, dst := morph.Normalize(srcImg, dstImg)
	width, height := src.Bounds().Dx(), src.Bounds().Dy()

	srcPts, dstPts := morph.DenormalizePairs(pairs, width, height)
	if *corners {
		srcPts = morph.AnchorCorners(srcPts, width, height)
		dstPts = morph.AnchorCorners(dstPts, width, height)
	}

	corr, err := morph.NewCorrespondence(srcPts, dstPts)
	if err != nil {
		log.Fatalf("Unable to build correspondence: %v", err)
	}

	log.WithFields(logrus.Fields{
		"width":     width,
		"height":    height,
		"points":    len(srcPts),
		"triangles": len(corr.Mesh()),
		"frames":    *frames,
	}).Info("Generating morph sequence")

	if len(*overlay) > 0 {
		annotated := morph.DrawOverlay(src, corr.SourcePoints(), corr.Mesh())
		if err := writePNG(*overlay, annotated); err != nil {
			log.Fatalf("Unable to write overlay image: %v", err)
		}
		log.WithField("file", *overlay).Info("Wrote annotated source image")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	spinner := utils.NewSpinner()
	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if interactive {
		spinner.Start("Generating")
	}

	start := time.Now()
	gen := &morph.Generator{Frames: *frames, Workers: *workers}
	seq, err := gen.Generate(ctx, src, dst, corr)
	if interactive {
		spinner.Stop()
		fmt.Fprint(os.Stderr, "\r")
	}
	if err != nil {
		log.Fatalf("Generation failed: %v", err)
	}

	opts := morph.GIFOptions{Delay: *delay, Boomerang: *boomerang}
	if err := morph.WriteGIF(*destination, seq, opts); err != nil {
		log.Fatalf("Unable to encode GIF: %v", err)
	}

	log.WithFields(logrus.Fields{
		"file": *destination,
		"took": utils.FormatTime(time.Since(start)),
	}).Info("Done")
}

// openImage decodes a local file or, for http(s) sources, downloads the
// image into a temporary file first.
func openImage(src string) (image.Image, error) {
	var r io.ReadCloser

	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		tmp, err := utils.DownloadImage(src)
		if err != nil {
			return nil, err
		}
		defer os.Remove(tmp.Name())
		r = tmp
	} else {
		f, err := os.Open(src)
		if err != nil {
			return nil, err
		}
		r = f
	}
	defer r.Close()

	img, _, err := image.Decode(r)
	return img, err
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
