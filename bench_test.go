package morph

import (
	"context"
	"testing"
)

func BenchmarkComposite(b *testing.B) {
	src := gradientImage(256, 256)
	dst := gradientImage(256, 256)

	srcPts := AnchorCorners(PointSet{0: {80, 80}, 1: {180, 120}, 2: {60, 200}}, 256, 256)
	dstPts := AnchorCorners(PointSet{0: {120, 70}, 1: {160, 160}, 2: {90, 180}}, 256, 256)

	c, err := NewCorrespondence(srcPts, dstPts)
	if err != nil {
		b.Fatalf("Failed building correspondence: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Composite(src, dst, c, 0.5); err != nil {
			b.Fatalf("Failed compositing benchmark frame: %v", err)
		}
	}
}

func BenchmarkGenerate(b *testing.B) {
	src := gradientImage(128, 128)
	dst := gradientImage(128, 128)

	srcPts := AnchorCorners(PointSet{0: {40, 40}}, 128, 128)
	dstPts := AnchorCorners(PointSet{0: {90, 70}}, 128, 128)

	c, err := NewCorrespondence(srcPts, dstPts)
	if err != nil {
		b.Fatalf("Failed building correspondence: %v", err)
	}

	gen := &Generator{Frames: 10}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := gen.Generate(context.Background(), src, dst, c); err != nil {
			b.Fatalf("Failed generating benchmark sequence: %v", err)
		}
	}
}
