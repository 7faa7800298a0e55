package owl

type AttributeKind int

const (
	// Resource values reference another individual or class
	Resource AttributeKind = iota
	// Datatype values are literals typed by an xsd datatype
	Datatype
)

// Triple is one property of a node. The subject is the node itself.
type Triple struct {
	Predicate string
	Kind      AttributeKind
	Value     string
	// Datatype reference, only used by Datatype triples
	DatatypeName string
}

// Node is an individual or a class/property definition of the document.
type Node struct {
	NodeType   string
	AboutKey   string
	AboutValue string
	Properties []Triple
	Comment    string
}

func NewNode(nodeType, aboutValue string) Node {
	return Node{
		NodeType:   nodeType,
		AboutKey:   "rdf:about",
		AboutValue: aboutValue,
	}
}

func (n *Node) Add(triples ...Triple) {
	n.Properties = append(n.Properties, triples...)
}

func ResourceTriple(predicate, value string) Triple {
	return Triple{Predicate: predicate, Kind: Resource, Value: value}
}

func DatatypeTriple(predicate, datatype, value string) Triple {
	return Triple{Predicate: predicate, Kind: Datatype, Value: value, DatatypeName: datatype}
}
