// Package vision holds the per-frame heuristics: face expression scoring
// from a face mesh or Haar cascades, bruise and red-mark blob detection in
// HSV space, and the nine-way face location buckets.
//
// Haar cascades need OpenCV and are compiled only with -tags opencv. Face
// meshes come from an external helper command so no model is bundled.
package vision
