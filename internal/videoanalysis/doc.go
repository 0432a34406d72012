// Package videoanalysis runs the visual stage: it samples frames with
// ffmpeg, scores facial expressions through a face-mesh helper or Haar
// cascades, and collects bruise and red-mark findings around each face.
package videoanalysis
