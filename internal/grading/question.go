package grading

// Kind discriminates question variants once, at load time, instead of
// re-sniffing type strings on every evaluation.
type Kind int

const (
	KindFreeText Kind = iota
	KindDefinition
	KindCalculation
	KindImage
	KindSingleChoice
	KindMultiChoice
)

func (k Kind) String() string {
	switch k {
	case KindDefinition:
		return "definition"
	case KindCalculation:
		return "calculation"
	case KindImage:
		return "image"
	case KindSingleChoice:
		return "single_choice"
	case KindMultiChoice:
		return "multi_choice"
	default:
		return "free_text"
	}
}

// IsChoice reports whether k is graded by option selection.
func (k Kind) IsChoice() bool {
	return k == KindSingleChoice || k == KindMultiChoice
}

// Question is the minimal read-only view of a question the grader needs.
// The exam package owns the full model and converts down to this.
type Question struct {
	Topic          string
	Kind           Kind
	Text           string
	GivenAnswer    string // reference answer, the scoring ground truth
	MathBlocks     []string
	Options        []string // choice labels, choice kinds only
	CorrectOptions []string // correct choice letters/indices
	Notes          string
}
