// Package filter implements the canvas's drop-shadow pipeline: a
// silhouette coverage mask, offset, colorized, and blurred with a
// three-pass box filter approximating a Gaussian.
package filter
