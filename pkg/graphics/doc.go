// Package graphics provides the drawing primitives shared by the loaders:
// points and sizes, colors, fill paints, vector paths and the Canvas
// surface they are drawn on.
//
// A Canvas is an external collaborator. Loaders paint into whatever Canvas
// the host supplies; [PictureRecorder] captures a frame as a [DisplayList]
// that can be replayed onto another surface later.
package graphics
