package query

// Node is one node of a parsed query tree. The set of implementations is
// closed: Term, Phrase, Or, and And.
type Node interface {
	isNode()
}

// Term matches documents containing a single analyzed term in one field.
type Term struct {
	Field string
	Term  string
}

// Phrase matches documents containing the analyzed terms at adjacent
// positions in one field.
type Phrase struct {
	Field string
	Terms []string
}

// Or matches documents matching any child.
type Or struct {
	Children []Node
}

// And matches documents matching every child.
type And struct {
	Children []Node
}

func (Term) isNode()   {}
func (Phrase) isNode() {}
func (Or) isNode()     {}
func (And) isNode()    {}
