// Package reps turns the conditioned hip trajectory into discrete exercise
// repetitions with biomechanical quality metrics.
//
// Two entry points share the same metric and signal layers:
//
//   - DetectReps runs offline over a complete recorded keypoint sequence and
//     segments it via prominence-gated extrema of the conditioned signal.
//   - Detector consumes one frame at a time with bounded memory, running a
//     four-phase state machine with hysteresis over a rolling window, and
//     confirms reps with a minimum inter-rep gap.
//
// Neither is safe for concurrent use; a Detector must be owned by exactly
// one logical session with at most one in-flight Push.
package reps
