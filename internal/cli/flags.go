package cli

import (
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/JamesPrial/obsctl/internal/vault"
)

var (
	_ flag.Value = (*priorityValue)(nil)
	_ flag.Value = (*statusValue)(nil)
	_ flag.Value = (*outputValue)(nil)
)

// priorityValue is the --priority flag of task add.
type priorityValue struct {
	p vault.Priority
}

func (v *priorityValue) String() string { return v.p.String() }

func (v *priorityValue) Set(s string) error {
	p, err := vault.ParsePriority(s)
	if err != nil {
		return err
	}
	v.p = p
	return nil
}

func (v *priorityValue) Type() string { return "low|medium|high" }

// statusValue is the --status flag of task list. Unset means all tasks.
type statusValue struct {
	f    vault.Filter
	name string
}

func (v *statusValue) String() string { return v.name }

func (v *statusValue) Set(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open":
		v.f, v.name = vault.FilterOpen, "open"
	case "done":
		v.f, v.name = vault.FilterDone, "done"
	case "all":
		v.f, v.name = vault.FilterAll, "all"
	default:
		return fmt.Errorf("unknown status %q: expected open, done or all", s)
	}
	return nil
}

func (v *statusValue) Type() string { return "open|done" }

// outputValue is the --output flag of history.
type outputValue string

const (
	outputText outputValue = "text"
	outputJSON outputValue = "json"
	outputYAML outputValue = "yaml"
)

func (v *outputValue) String() string { return string(*v) }

func (v *outputValue) Set(s string) error {
	switch o := outputValue(strings.ToLower(strings.TrimSpace(s))); o {
	case outputText, outputJSON, outputYAML:
		*v = o
		return nil
	default:
		return fmt.Errorf("unknown output format %q: expected text, json or yaml", s)
	}
}

func (v *outputValue) Type() string { return "text|json|yaml" }
