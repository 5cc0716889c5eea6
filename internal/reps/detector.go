package reps

import (
	"fmt"
	"log"
	"math"

	"github.com/formlab-data/rep.report/internal/biomech"
	"github.com/formlab-data/rep.report/internal/pose"
	"github.com/formlab-data/rep.report/internal/signal"
)

// Phase is the live detector's position in the movement cycle.
type Phase string

const (
	PhaseTopReady Phase = "top_ready" // standing, ready for a descent
	PhaseDescent  Phase = "descent"   // hip moving down, past the top threshold
	PhaseBottom   Phase = "bottom"    // past the bottom threshold, tracking the deepest frame
	PhaseAscent   Phase = "ascent"    // rising back toward standing
)

// activeRep tracks the repetition in progress between leaving TOP_READY and
// confirmation.
type activeRep struct {
	startFrame    int
	bottomFrame   int
	bottomSample  float64
	bottomMetrics biomech.Metrics
	hasBottom     bool
}

// State is the per-push feedback returned to the caller for overlay or
// coaching use.
type State struct {
	FrameIdx   int
	RepCount   int
	Phase      Phase
	Status     string
	Calibrated bool
	Metrics    biomech.Metrics
	SpeedProxy *float64
}

// Detector is the stateful live-mode rep counter. It accepts one frame at a
// time, calibrates itself from the first standing frames, then runs a
// four-phase state machine over a bounded rolling window of the conditioned
// hip signal.
//
// A Detector is owned by exactly one session and is not safe for concurrent
// pushes; callers must guarantee at most one in-flight Push.
type Detector struct {
	cfg Config

	ring     *signal.Ring
	snapshot []float64 // scratch, reused across pushes

	calibSamples []biomech.Metrics
	baseline     *biomech.Baseline
	calibrated   bool

	phase    Phase
	active   activeRep
	records  []Record
	repCount int

	lastEndFrame int
	hasLastEnd   bool
	lastFrameIdx int
	hasFrame     bool
	fillRun      int
}

// NewDetector returns a Detector with the given configuration.
func NewDetector(cfg Config) *Detector {
	return &Detector{
		cfg:   cfg,
		ring:  signal.NewRing(cfg.WindowSize),
		phase: PhaseTopReady,
	}
}

// Push feeds one frame to the detector and returns the resulting state.
// Keypoints may be nil (no pose this frame). The only errors are
// programming-error preconditions: a keypoint set of the wrong length or a
// non-increasing frame index.
func (d *Detector) Push(frameIdx int, kp pose.Keypoints, fps float64) (State, error) {
	if kp != nil && len(kp) != pose.NumLandmarks {
		return State{}, fmt.Errorf("keypoint set has %d landmarks, want %d", len(kp), pose.NumLandmarks)
	}
	if d.hasFrame && frameIdx <= d.lastFrameIdx {
		return State{}, fmt.Errorf("non-monotonic frame index %d after %d", frameIdx, d.lastFrameIdx)
	}
	d.lastFrameIdx = frameIdx
	d.hasFrame = true

	valid := kp.Valid()
	var usable pose.Keypoints
	if valid {
		usable = kp
	}
	metrics := biomech.ComputeMetrics(usable, d.baseline, d.cfg.Biomech)

	st := State{
		FrameIdx:   frameIdx,
		RepCount:   d.repCount,
		Phase:      d.phase,
		Calibrated: d.calibrated,
		Metrics:    metrics,
		SpeedProxy: d.lastSpeed(),
	}

	if !d.calibrated {
		st.Status = d.calibrate(valid, metrics)
		st.Calibrated = d.calibrated
		return st, nil
	}

	sample := math.NaN()
	if valid {
		sample = signal.NormalizedHipY(kp)
	}
	d.ring.Push(sample)
	if math.IsNaN(sample) {
		d.fillRun++
	} else {
		d.fillRun = 0
	}

	d.snapshot = d.ring.Snapshot(d.snapshot)
	filled := signal.FillGaps(d.snapshot)
	s := filled[len(filled)-1]
	if math.IsNaN(s) {
		st.Status = "Waiting for signal"
		return st, nil
	}

	// A long run of extrapolated samples means the subject was genuinely
	// lost, not briefly occluded; abandon the rep rather than confirm off
	// filled data.
	if d.fillRun > d.cfg.MaxFillRunFrames && d.phase != PhaseTopReady {
		d.phase = PhaseTopReady
		d.active = activeRep{}
		st.Phase = d.phase
		st.Status = "Pose lost"
		return st, nil
	}

	st.Status = d.step(frameIdx, s, filled, metrics, fps)
	st.Phase = d.phase
	st.RepCount = d.repCount
	st.SpeedProxy = d.lastSpeed()
	return st, nil
}

// calibrate accumulates standing frames until the baseline can be computed.
func (d *Detector) calibrate(valid bool, metrics biomech.Metrics) string {
	if !valid {
		return "Waiting for pose"
	}
	if metrics.IsStanding(d.cfg.Biomech) {
		d.calibSamples = append(d.calibSamples, metrics)
	}
	if len(d.calibSamples) < d.cfg.CalibrationFrames {
		return fmt.Sprintf("Calibrating %d/%d", len(d.calibSamples), d.cfg.CalibrationFrames)
	}
	b := biomech.ComputeBaseline(d.calibSamples)
	d.baseline = &b
	d.calibrated = true
	d.calibSamples = nil
	d.ring.Clear()
	if d.cfg.Verbose {
		log.Printf("reps: calibration complete, baseline=%+v", b)
	}
	return "Calibrated"
}

// step advances the phase state machine by one conditioned sample. The
// thresholds are derived per push from the rolling window's own percentile
// band, so they track the subject's amplitude.
func (d *Detector) step(frameIdx int, s float64, filled []float64, metrics biomech.Metrics, fps float64) string {
	band := signal.PercentileBand(filled, 0.10, 0.90)
	span := band.High - band.Low
	if span < d.cfg.MinBandSpan {
		span = d.cfg.MinBandSpan
	}
	top := band.Low + d.cfg.TopFraction*span
	bottom := band.Low + d.cfg.BottomFraction*span
	hyst := d.cfg.HysteresisFraction * span

	switch d.phase {
	case PhaseTopReady:
		if s > top {
			d.phase = PhaseDescent
			d.active = activeRep{startFrame: frameIdx}
			return "Descending"
		}
		return "Standing"

	case PhaseDescent:
		if s > bottom {
			d.phase = PhaseBottom
			d.active.bottomFrame = frameIdx
			d.active.bottomSample = s
			d.active.bottomMetrics = metrics
			d.active.hasBottom = true
			return "Bottom"
		}
		return "Descending"

	case PhaseBottom:
		if s > d.active.bottomSample {
			d.active.bottomFrame = frameIdx
			d.active.bottomSample = s
			d.active.bottomMetrics = metrics
		}
		if s < bottom-hyst {
			d.phase = PhaseAscent
			return "Ascending"
		}
		return "Bottom"

	case PhaseAscent:
		if s < top {
			confirmed := d.confirm(frameIdx, fps)
			// Phase resets regardless: a dropped rep is not re-attempted.
			d.phase = PhaseTopReady
			d.active = activeRep{}
			if confirmed {
				return "Rep confirmed"
			}
			return "Standing"
		}
		return "Ascending"
	}
	return "Tracking"
}

// confirm appends a rep record if the inter-rep gap is satisfied and a
// bottom snapshot exists.
func (d *Detector) confirm(endFrame int, fps float64) bool {
	if !d.active.hasBottom {
		return false
	}
	if d.hasLastEnd && d.active.startFrame < d.lastEndFrame+d.cfg.MinFramesBetweenReps {
		return false
	}
	rec := newRecord(
		d.repCount+1,
		d.active.startFrame, endFrame, d.active.bottomFrame,
		fps, d.active.bottomMetrics, d.cfg.ReviewConfidence,
	)
	d.records = append(d.records, rec)
	d.repCount++
	d.lastEndFrame = endFrame
	d.hasLastEnd = true
	if d.cfg.Verbose {
		log.Printf("reps: rep %d confirmed frames [%d, %d] bottom=%d", rec.Rep, rec.StartFrame, rec.EndFrame, rec.BottomFrame)
	}
	return true
}

// lastSpeed returns the speed proxy of the most recently confirmed rep.
func (d *Detector) lastSpeed() *float64 {
	if len(d.records) == 0 {
		return nil
	}
	return d.records[len(d.records)-1].SpeedProxy
}

// RepCount returns the number of confirmed reps so far.
func (d *Detector) RepCount() int { return d.repCount }

// Baseline returns the session baseline, or nil before calibration.
func (d *Detector) Baseline() *biomech.Baseline { return d.baseline }

// Finalize returns a copy of the confirmed rep records. A rep still in
// progress (phase not TOP_READY) is discarded, not force-completed.
func (d *Detector) Finalize() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Reset returns the detector to its pre-calibration state, clearing all
// buffers, counters, and the baseline. Callable at any time.
func (d *Detector) Reset() {
	d.ring.Clear()
	d.calibSamples = nil
	d.baseline = nil
	d.calibrated = false
	d.phase = PhaseTopReady
	d.active = activeRep{}
	d.records = nil
	d.repCount = 0
	d.lastEndFrame = 0
	d.hasLastEnd = false
	d.lastFrameIdx = 0
	d.hasFrame = false
	d.fillRun = 0
}
