package summaries

import "strings"

// Progress records the stages one summarize call went through.
type Progress struct {
	stages []Stage
}

func newProgress() *Progress {
	return &Progress{stages: []Stage{StageIdle}}
}

func (p *Progress) advance(s Stage) {
	p.stages = append(p.stages, s)
}

// Current returns the latest stage.
func (p *Progress) Current() Stage {
	if p == nil || len(p.stages) == 0 {
		return StageIdle
	}
	return p.stages[len(p.stages)-1]
}

// String renders the path as "idle->acquiring->...".
func (p *Progress) String() string {
	if p == nil {
		return ""
	}
	parts := make([]string, len(p.stages))
	for i, s := range p.stages {
		parts[i] = string(s)
	}
	return strings.Join(parts, "->")
}
