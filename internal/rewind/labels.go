package rewind

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"

	"github.com/mysterymarshak/LuckyBlocks-sub000/internal/display"
)

var labelFuncs = sprig.TxtFuncMap()

type labelData struct {
	ID       uint64
	Ago      time.Duration
	Elapsed  time.Duration
	Entities int
}

// Choices describes the retained snapshots, oldest first, with labels
// rendered from the tuning's choice template and fitted to its label width.
func (o *Orchestrator) Choices() []Info {
	now := o.world.Elapsed()
	out := make([]Info, 0, len(o.history))
	for _, s := range o.history {
		info := infoOf(s)
		label, err := renderLabel(o.labels, labelData{
			ID:       s.ID(),
			Ago:      now - s.Elapsed(),
			Elapsed:  s.Elapsed(),
			Entities: s.EntityCount(),
		})
		if err != nil {
			label = fmt.Sprintf("#%d", s.ID())
		}
		info.Label = display.Fit(label, o.tuning.LabelWidth)
		out = append(out, info)
	}
	return out
}

func renderLabel(tmpl *template.Template, data labelData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering label: %w", err)
	}
	return buf.String(), nil
}
