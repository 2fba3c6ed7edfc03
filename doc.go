/*
Package morph creates image-morph transition animations: two images are
tied together through paired control points, a Delaunay triangulation of
the correspondence drives per-triangle affine warps, and the warped
endpoints are cross-dissolved into evenly spaced intermediate frames,
exported as an animated GIF.

The repository ships two front ends over the library: a batch command
line tool and a desktop editor for placing the control points.

	$ morph -src a.jpg -dst b.jpg -points points.csv -out morph.gif

Example of the library API:

	package main

	import (
		"context"
		"log"

		"github.com/esimov/morph"
	)

	func main() {
		src, dst := morph.Normalize(imgA, imgB)
		w, h := src.Bounds().Dx(), src.Bounds().Dy()

		srcPts, dstPts := morph.DenormalizePairs(pairs, w, h)
		corr, err := morph.NewCorrespondence(
			morph.AnchorCorners(srcPts, w, h),
			morph.AnchorCorners(dstPts, w, h),
		)
		if err != nil {
			log.Fatal(err)
		}

		gen := &morph.Generator{Frames: 10}
		frames, err := gen.Generate(context.Background(), src, dst, corr)
		if err != nil {
			log.Fatal(err)
		}

		if err := morph.WriteGIF("out.gif", frames, morph.GIFOptions{Delay: 5}); err != nil {
			log.Fatal(err)
		}
	}
*/
package morph
