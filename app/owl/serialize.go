package owl

import (
	"strings"
)

const header = `<?xml version="1.0" encoding="utf-8"?>`

// Serialize renders the document as RDF/XML. Nodes keep their insertion
// order. Literal values are fully escaped. IRIs may start with a reference to
// one of the declared prefixes (&log;Cup_1), which is kept as it is.
func Serialize(doc *Document) string {
	w := &writer{declared: make(map[string]bool)}

	w.sb.WriteString(header)
	w.sb.WriteString("\n\n")

	if prefixes := doc.Prefixes(); len(prefixes) > 0 {
		w.sb.WriteString("<!DOCTYPE rdf:RDF [\n")
		for _, p := range prefixes {
			w.declared[p.Name] = true
			w.sb.WriteString("\t<!ENTITY " + p.Name + " \"" + escape(p.Value) + "\">\n")
		}
		w.sb.WriteString("]>\n\n")
	}

	w.sb.WriteString("<rdf:RDF")
	for i, attr := range doc.Attributes() {
		if i > 0 {
			w.sb.WriteString("\n\t")
		} else {
			w.sb.WriteString(" ")
		}
		w.sb.WriteString(attr.Key + "=\"" + w.iri(attr.Value) + "\"")
	}
	w.sb.WriteString(">\n\n")

	for _, node := range doc.Nodes() {
		w.writeNode(node)
		w.sb.WriteString("\n")
	}

	w.sb.WriteString("</rdf:RDF>\n")

	return w.sb.String()
}

type writer struct {
	sb       strings.Builder
	declared map[string]bool
}

func (w *writer) writeNode(node Node) {
	if node.Comment != "" {
		w.sb.WriteString("\t<!-- " + escapeComment(node.Comment) + " -->\n")
	}

	w.sb.WriteString("\t<" + node.NodeType)
	if node.AboutKey != "" {
		w.sb.WriteString(" " + node.AboutKey + "=\"" + w.iri(node.AboutValue) + "\"")
	}

	if len(node.Properties) == 0 {
		w.sb.WriteString("/>\n")
		return
	}
	w.sb.WriteString(">\n")

	for _, t := range node.Properties {
		w.sb.WriteString("\t\t")
		w.writeTriple(t)
		w.sb.WriteString("\n")
	}

	w.sb.WriteString("\t</" + node.NodeType + ">\n")
}

func (w *writer) writeTriple(t Triple) {
	switch t.Kind {
	case Datatype:
		w.sb.WriteString("<" + t.Predicate)
		if t.DatatypeName != "" {
			w.sb.WriteString(" rdf:datatype=\"" + w.iri(t.DatatypeName) + "\"")
		}
		w.sb.WriteString(">" + escape(t.Value) + "</" + t.Predicate + ">")
	default:
		w.sb.WriteString("<" + t.Predicate + " rdf:resource=\"" + w.iri(t.Value) + "\"/>")
	}
}

// iri escapes s, keeping a leading reference to a declared prefix.
func (w *writer) iri(s string) string {
	if prefix, rest, ok := splitRef(s); ok && w.declared[prefix] {
		return "&" + prefix + ";" + escape(rest)
	}
	return escape(s)
}

// splitRef splits "&prefix;name" into its prefix and name.
func splitRef(s string) (string, string, bool) {
	if !strings.HasPrefix(s, "&") {
		return "", "", false
	}
	end := strings.IndexByte(s, ';')
	if end < 2 {
		return "", "", false
	}
	return s[1:end], s[end+1:], true
}

func escape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		case '"':
			sb.WriteString("&quot;")
		case '\'':
			sb.WriteString("&apos;")
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String()
}

// escapeComment breaks up "--", which may not appear inside a comment. The
// comment text is always padded with spaces, so a trailing dash never
// touches the closing marker.
func escapeComment(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "- -")
	}
	return s
}
