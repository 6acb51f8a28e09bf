/*
Package hsflow estimates a dense block motion field between two video frames
using the optical flow formulation of Horn & Schunck.

The frames are first reduced to one mean intensity value per block. The spatial
and temporal derivatives of the block intensities are then estimated on a 2x2
neighbourhood averaged across both frames, and the motion field is refined by a
fixed number of Jacobi sweeps of the Horn & Schunck update equations. The final
field is expressed in pixels: every vector is the block unit displacement
multiplied by the block size.

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"context"
		"fmt"

		"github.com/esimov/hsflow"
	)

	func main() {
		cur, _ := hsflow.FrameFromImage(img1)
		ref, _ := hsflow.FrameFromImage(img2)

		cfg := hsflow.DefaultConfig()
		cfg.Alpha = 2

		field, err := hsflow.Estimate(context.Background(), cur, ref, cfg)
		if err != nil {
			fmt.Printf("Error estimating motion: %s", err.Error())
			return
		}
		for _, v := range field.Vectors() {
			fmt.Println(v.V, v.H)
		}
	}
*/
package hsflow
