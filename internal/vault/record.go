package vault

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Marker glyphs that introduce task metadata. Everything before the first
// marker on a task line is the title.
const (
	DueMarker        = "📅"
	RecurrenceMarker = "🔁"
	LowMarker        = "⬇️"
	MediumMarker     = "⏫"
	HighMarker       = "🔥"
)

// Priority is the optional priority of a task. The zero value means the
// task carries no priority marker.
type Priority int

const (
	PriorityNone Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
)

// String returns the lower-case name of the priority, or "" for PriorityNone.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return ""
	}
}

// Marker returns the glyph rendered for the priority.
func (p Priority) Marker() string {
	switch p {
	case PriorityLow:
		return LowMarker
	case PriorityMedium:
		return MediumMarker
	case PriorityHigh:
		return HighMarker
	default:
		return ""
	}
}

// ParsePriority converts "low", "medium" or "high" (any case) to a Priority.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	default:
		return PriorityNone, fmt.Errorf("unknown priority %q: expected low, medium or high", s)
	}
}

// Filter selects records by completion state.
type Filter int

const (
	FilterAll Filter = iota
	FilterOpen
	FilterDone
)

func (f Filter) match(r TaskRecord) bool {
	switch f {
	case FilterOpen:
		return !r.Done
	case FilterDone:
		return r.Done
	default:
		return true
	}
}

// NewTask holds the fields supplied when a task is created. Empty strings
// mean the corresponding marker is omitted.
type NewTask struct {
	Title      string
	DueDate    string
	Recurrence string
	Priority   Priority
}

// lineBreaks folds line terminators so a rendered task stays one line.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func oneLine(s string) string {
	return strings.TrimSpace(lineBreaks.Replace(s))
}

// Render produces the ledger line for the task with the given id. Markers
// are always emitted in due, recurrence, priority order. Line breaks in
// any field become spaces.
func (t NewTask) Render(id uint64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- [ ] (%d) %s", id, oneLine(t.Title))
	if due := oneLine(t.DueDate); due != "" {
		b.WriteString(" " + DueMarker + " " + due)
	}
	if rec := oneLine(t.Recurrence); rec != "" {
		b.WriteString(" " + RecurrenceMarker + " " + rec)
	}
	if t.Priority != PriorityNone {
		b.WriteString(" " + t.Priority.Marker())
	}
	return b.String()
}

// TaskRecord is one ledger line that matched the task grammar.
type TaskRecord struct {
	ID         uint64
	Done       bool
	Title      string
	DueDate    string
	Recurrence string
	Priority   Priority

	// Raw is the trimmed source line.
	Raw string
}

// WithStatus returns Raw with only its status token replaced. A record
// already in the requested state is returned unchanged.
func (r TaskRecord) WithStatus(done bool) string {
	return flipStatus(r.Raw, done)
}

type markerKind int

const (
	markerDue markerKind = iota
	markerRecurrence
	markerPriority
)

type marker struct {
	glyph    string
	kind     markerKind
	priority Priority
}

var markers = []marker{
	{glyph: DueMarker, kind: markerDue},
	{glyph: RecurrenceMarker, kind: markerRecurrence},
	{glyph: LowMarker, kind: markerPriority, priority: PriorityLow},
	{glyph: MediumMarker, kind: markerPriority, priority: PriorityMedium},
	{glyph: HighMarker, kind: markerPriority, priority: PriorityHigh},
}

type markerHit struct {
	pos int
	marker
}

// ParseRecord decodes a ledger line. The second result is false for any line
// that is not a task record; such lines are opaque content, not errors.
//
// Grammar: "- [" <ascii status> "] (" <uint id> ")" <remainder>.
func ParseRecord(line string) (TaskRecord, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 5 || !strings.HasPrefix(trimmed, "- [") {
		return TaskRecord{}, false
	}

	status := trimmed[3]
	if status >= utf8.RuneSelf || status == ']' || trimmed[4] != ']' {
		return TaskRecord{}, false
	}

	after := strings.TrimSpace(trimmed[5:])
	if !strings.HasPrefix(after, "(") {
		return TaskRecord{}, false
	}
	end := strings.IndexByte(after, ')')
	if end < 0 {
		return TaskRecord{}, false
	}
	id, err := strconv.ParseUint(after[1:end], 10, 64)
	if err != nil {
		return TaskRecord{}, false
	}

	rec := TaskRecord{
		ID:   id,
		Done: status == 'x' || status == 'X',
		Raw:  trimmed,
	}
	decodeRemainder(strings.TrimSpace(after[end+1:]), &rec)
	return rec, true
}

// decodeRemainder splits the text after the id into title and metadata.
func decodeRemainder(rem string, rec *TaskRecord) {
	var hits []markerHit
	for _, m := range markers {
		if idx := strings.Index(rem, m.glyph); idx >= 0 {
			hits = append(hits, markerHit{pos: idx, marker: m})
		}
	}
	if len(hits) == 0 {
		rec.Title = rem
		return
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	rec.Title = strings.TrimSpace(rem[:hits[0].pos])
	for i, h := range hits {
		valueEnd := len(rem)
		if i+1 < len(hits) {
			valueEnd = hits[i+1].pos
		}
		value := strings.TrimSpace(rem[h.pos+len(h.glyph) : valueEnd])
		switch h.kind {
		case markerDue:
			rec.DueDate = value
		case markerRecurrence:
			rec.Recurrence = value
		case markerPriority:
			if rec.Priority == PriorityNone {
				rec.Priority = h.priority
			}
		}
	}
}

// flipStatus rewrites the three-byte status token of a task line in place,
// keeping leading indentation and everything after the token byte-for-byte.
// Lines that are not records, or are already in the requested state, are
// returned unchanged.
func flipStatus(line string, done bool) string {
	rec, ok := ParseRecord(line)
	if !ok || rec.Done == done {
		return line
	}
	start := len(line) - len(strings.TrimLeftFunc(line, unicode.IsSpace)) + len("- ")
	token := "[ ]"
	if done {
		token = "[x]"
	}
	return line[:start] + token + line[start+len(token):]
}
