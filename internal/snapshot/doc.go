// Package snapshot rasterises a toast at its resting position so it can be
// saved as an image without a compositor.
package snapshot
