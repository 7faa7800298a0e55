package owl

import (
	"log/slog"
)

type TemplateKind string

const (
	TemplateDefault TemplateKind = "Default"
	TemplateIAI     TemplateKind = "IAI"
)

const (
	ontologyIRI    = "http://knowrob.org/kb/ameva_log.owl"
	knowrobImport  = "package://knowrob_common/owl/knowrob.owl"
	robcogImport   = "package://knowrob_robcog/owl/knowrob_u_tasks.owl"
	experimentType = "UnrealExperiment"
)

// Prefix is one doctype entity declaration, e.g. owl -> http://www.w3.org/2002/07/owl#.
type Prefix struct {
	Name  string
	Value string
}

// Attribute is one attribute of the rdf:RDF root element.
type Attribute struct {
	Key   string
	Value string
}

// Document is the semantic graph of one episode. Timepoints and objects are
// deduplicated through their indices and emitted once, in first insertion
// order.
type Document struct {
	ID           string
	OntologyName string
	Template     TemplateKind

	prefixes   []Prefix
	attributes []Attribute
	nodes      []Node

	timepoints     map[float64]Node
	timepointOrder []float64
	objects        map[string]Node
	objectOrder    []string
	eventIDs       []string

	timepointsAdded bool
	objectsAdded    bool
	experimentAdded bool
}

var basePrefixes = []Prefix{
	{Name: "owl", Value: "http://www.w3.org/2002/07/owl#"},
	{Name: "xsd", Value: "http://www.w3.org/2001/XMLSchema#"},
	{Name: "knowrob", Value: "http://knowrob.org/kb/knowrob.owl#"},
	{Name: "rdfs", Value: "http://www.w3.org/2000/01/rdf-schema#"},
	{Name: "rdf", Value: "http://www.w3.org/1999/02/22-rdf-syntax-ns#"},
	{Name: logPrefix, Value: ontologyIRI + "#"},
}

var iaiPrefixes = []Prefix{
	{Name: "computable", Value: "http://knowrob.org/kb/computable.owl#"},
	{Name: "swrl", Value: "http://www.w3.org/2003/11/swrl#"},
}

var objectProperties = []string{
	"startTime",
	"endTime",
	"inContact",
	"isSupported",
	"supports",
	"performedBy",
	"deviceUsed",
	"objectActedOn",
	"outputsCreated",
	"subAction",
}

var datatypeProperties = []string{
	"taskSuccess",
	"graspType",
	"experiment",
	"taskContext",
}

var eventClasses = []string{
	"TouchingSituation",
	"SupportedBySituation",
	"GraspingSomething",
	"PreGraspPositioning",
	"PutDownSituation",
	"SlicingSomething",
}

// CreateFromTemplate creates an empty document for the template. Unknown
// templates produce a document with the namespace table and no ontology
// boilerplate.
func CreateFromTemplate(kind TemplateKind, docID string) *Document {
	doc := &Document{
		ID:         docID,
		Template:   kind,
		timepoints: make(map[float64]Node),
		objects:    make(map[string]Node),
	}

	switch kind {
	case TemplateDefault:
		doc.OntologyName = "Experiment"
		doc.setPrefixes(basePrefixes)
		doc.addBoilerplate(knowrobImport)
	case TemplateIAI:
		doc.OntologyName = "UE-Experiment"
		doc.setPrefixes(append(append([]Prefix{}, basePrefixes...), iaiPrefixes...))
		doc.addBoilerplate(knowrobImport, robcogImport)
	default:
		slog.Warn("Unknown document template, using an empty document", "template", kind)
		doc.setPrefixes(basePrefixes)
	}

	return doc
}

func (d *Document) setPrefixes(prefixes []Prefix) {
	d.prefixes = append(d.prefixes, prefixes...)

	d.attributes = append(d.attributes,
		Attribute{Key: "xmlns", Value: ontologyIRI + "#"},
		Attribute{Key: "xml:base", Value: ontologyIRI})
	for _, p := range prefixes {
		d.attributes = append(d.attributes, Attribute{Key: "xmlns:" + p.Name, Value: "&" + p.Name + ";"})
	}
}

func (d *Document) addBoilerplate(imports ...string) {
	ontology := NewNode("owl:Ontology", ontologyIRI)
	ontology.Comment = "Ontologies"
	for _, imp := range imports {
		ontology.Add(ResourceTriple("owl:imports", imp))
	}
	d.nodes = append(d.nodes, ontology)

	for i, name := range objectProperties {
		node := NewNode("owl:ObjectProperty", ref("knowrob", name))
		if i == 0 {
			node.Comment = "Property Definitions"
		}
		d.nodes = append(d.nodes, node)
	}
	for _, name := range datatypeProperties {
		d.nodes = append(d.nodes, NewNode("owl:DatatypeProperty", ref("knowrob", name)))
	}

	for i, name := range append([]string{experimentType, "TimePoint"}, eventClasses...) {
		node := NewNode("owl:Class", ref("knowrob", name))
		if i == 0 {
			node.Comment = "Class Definitions"
		}
		d.nodes = append(d.nodes, node)
	}
}

// AddIndividual appends the node unconditionally.
func (d *Document) AddIndividual(node Node) {
	d.nodes = append(d.nodes, node)
}

// AddTimepointIndividual registers the timepoint node unless t is already
// indexed. Returns true if the node was inserted.
func (d *Document) AddTimepointIndividual(t float64, node Node) bool {
	if d.timepointsAdded {
		return false
	}

	t = normalizeTime(t)
	if _, ok := d.timepoints[t]; ok {
		return false
	}

	d.timepoints[t] = node
	d.timepointOrder = append(d.timepointOrder, t)

	return true
}

// AddObjectIndividual registers the object node unless the id is already
// indexed. Returns true if the node was inserted.
func (d *Document) AddObjectIndividual(id string, node Node) bool {
	if d.objectsAdded || id == "" {
		return false
	}
	if _, ok := d.objects[id]; ok {
		return false
	}

	d.objects[id] = node
	d.objectOrder = append(d.objectOrder, id)

	return true
}

// AddTimepointIndividuals emits every indexed timepoint once.
func (d *Document) AddTimepointIndividuals() bool {
	if d.timepointsAdded {
		return false
	}

	for i, t := range d.timepointOrder {
		node := d.timepoints[t]
		if i == 0 {
			node.Comment = "Timepoints"
		}
		d.nodes = append(d.nodes, node)
	}
	d.timepointsAdded = true

	return true
}

// AddObjectIndividuals emits every indexed object once.
func (d *Document) AddObjectIndividuals() bool {
	if d.objectsAdded {
		return false
	}

	for i, id := range d.objectOrder {
		node := d.objects[id]
		if i == 0 {
			node.Comment = "Objects"
		}
		d.nodes = append(d.nodes, node)
	}
	d.objectsAdded = true

	return true
}

// AddExperimentIndividual emits the individual describing the whole episode,
// referencing every event added so far. It can only be added once.
func (d *Document) AddExperimentIndividual(taskID string) bool {
	if d.experimentAdded {
		return false
	}

	node := NewNode("owl:NamedIndividual", ref(logPrefix, experimentType+"_"+d.ID))
	node.Comment = "Experiment"
	node.Add(
		ClassProperty(experimentType),
		DatatypeTriple("knowrob:experiment", ref("xsd", "string"), d.ID),
	)
	if taskID != "" {
		node.Add(DatatypeTriple("knowrob:taskContext", ref("xsd", "string"), taskID))
	}
	for _, id := range d.eventIDs {
		node.Add(SubActionProperty(id))
	}

	d.nodes = append(d.nodes, node)
	d.experimentAdded = true

	return true
}

func (d *Document) IsFinalized() bool {
	return d.experimentAdded
}

func (d *Document) Nodes() []Node {
	return d.nodes
}

func (d *Document) Prefixes() []Prefix {
	return d.prefixes
}

func (d *Document) Attributes() []Attribute {
	return d.attributes
}

func (d *Document) TimepointCount() int {
	return len(d.timepointOrder)
}

func (d *Document) ObjectCount() int {
	return len(d.objectOrder)
}

func (d *Document) EventCount() int {
	return len(d.eventIDs)
}
