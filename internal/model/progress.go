package model

// StageState is the state of one submission stage
type StageState string

const (
	StagePending StageState = "pending"
	StageActive  StageState = "active"
	StageDone    StageState = "done"
	StageError   StageState = "error"
)

// Stage indexes, in execution order
const (
	StageFee = iota
	StageUpload
	StageConstruct
	StageSubmit
	stageCount
)

var stageLabels = [stageCount]string{
	"Paying service fee",
	"Uploading logo",
	"Preparing mint transaction",
	"Creating token",
}

// Stage is one row of the progress list
type Stage struct {
	Label   string     `json:"label"`
	State   StageState `json:"status"`
	Skipped bool       `json:"skipped,omitempty"`
}

// SubmissionProgress is the ordered list of the four mint stages.
// It only advances left to right; an error freezes it.
type SubmissionProgress struct {
	Stages []Stage `json:"stages"`
}

// NewSubmissionProgress returns all four stages pending.
func NewSubmissionProgress() SubmissionProgress {
	p := SubmissionProgress{Stages: make([]Stage, stageCount)}
	for i := range p.Stages {
		p.Stages[i] = Stage{Label: stageLabels[i], State: StagePending}
	}
	return p
}

// Clone returns a copy safe to hand out.
func (p SubmissionProgress) Clone() SubmissionProgress {
	out := SubmissionProgress{Stages: make([]Stage, len(p.Stages))}
	copy(out.Stages, p.Stages)
	return out
}

// Failed reports whether any stage is in error.
func (p SubmissionProgress) Failed() bool {
	for _, s := range p.Stages {
		if s.State == StageError {
			return true
		}
	}
	return false
}

// Active returns the index of the active stage, or -1.
func (p SubmissionProgress) Active() int {
	for i, s := range p.Stages {
		if s.State == StageActive {
			return i
		}
	}
	return -1
}

// Activate marks stage i active. Ignored if the list is frozen or an earlier stage is not done.
func (p *SubmissionProgress) Activate(i int) {
	if !p.canAdvance(i) {
		return
	}
	p.Stages[i].State = StageActive
}

// Complete marks stage i done.
func (p *SubmissionProgress) Complete(i int) {
	if !p.canAdvance(i) {
		return
	}
	p.Stages[i].State = StageDone
}

// Skip marks stage i done without work.
func (p *SubmissionProgress) Skip(i int) {
	if !p.canAdvance(i) {
		return
	}
	p.Stages[i].State = StageDone
	p.Stages[i].Skipped = true
}

// Fail marks the active stage as error, or stage 0 when nothing is active yet.
func (p *SubmissionProgress) Fail() {
	if p.Failed() || len(p.Stages) == 0 {
		return
	}
	i := p.Active()
	if i < 0 {
		i = 0
		for i < len(p.Stages)-1 && p.Stages[i].State == StageDone {
			i++
		}
	}
	p.Stages[i].State = StageError
}

func (p *SubmissionProgress) canAdvance(i int) bool {
	if i < 0 || i >= len(p.Stages) || p.Failed() {
		return false
	}
	for j := 0; j < i; j++ {
		if p.Stages[j].State != StageDone {
			return false
		}
	}
	return true
}
