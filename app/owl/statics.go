package owl

import (
	"strconv"
	"strings"
)

const logPrefix = "log"

func ref(prefix, name string) string {
	return "&" + prefix + ";" + name
}

// FormatTime renders a timestamp the way timepoint names carry it, always
// with a fractional part ("2.0", "2.5"). Negative zero is rendered as zero.
func FormatTime(t float64) string {
	s := strconv.FormatFloat(normalizeTime(t), 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}

// normalizeTime folds -0 into 0 so both share one timepoint.
func normalizeTime(t float64) float64 {
	if t == 0 {
		return 0
	}
	return t
}

func TimepointName(t float64) string {
	return "timepoint_" + FormatTime(t)
}

func EventIndividual(id, class string) Node {
	node := NewNode("owl:NamedIndividual", ref(logPrefix, id))
	node.Add(ClassProperty(class))
	return node
}

func TimepointIndividual(t float64) Node {
	node := NewNode("owl:NamedIndividual", ref(logPrefix, TimepointName(t)))
	node.Add(ClassProperty("TimePoint"))
	return node
}

func ObjectIndividual(id, class string) Node {
	node := NewNode("owl:NamedIndividual", ref(logPrefix, id))
	node.Add(ClassProperty(class))
	return node
}

func ClassProperty(class string) Triple {
	return ResourceTriple("rdf:type", ref("knowrob", class))
}

func StartTimeProperty(t float64) Triple {
	return ResourceTriple("knowrob:startTime", ref(logPrefix, TimepointName(t)))
}

func EndTimeProperty(t float64) Triple {
	return ResourceTriple("knowrob:endTime", ref(logPrefix, TimepointName(t)))
}

func InContactProperty(objID string) Triple {
	return ResourceTriple("knowrob:inContact", ref(logPrefix, objID))
}

func IsSupportedProperty(objID string) Triple {
	return ResourceTriple("knowrob:isSupported", ref(logPrefix, objID))
}

func SupportsProperty(objID string) Triple {
	return ResourceTriple("knowrob:supports", ref(logPrefix, objID))
}

func PerformedByProperty(objID string) Triple {
	return ResourceTriple("knowrob:performedBy", ref(logPrefix, objID))
}

func DeviceUsedProperty(objID string) Triple {
	return ResourceTriple("knowrob:deviceUsed", ref(logPrefix, objID))
}

func ObjectActedOnProperty(objID string) Triple {
	return ResourceTriple("knowrob:objectActedOn", ref(logPrefix, objID))
}

func OutputsCreatedProperty(objID string) Triple {
	return ResourceTriple("knowrob:outputsCreated", ref(logPrefix, objID))
}

func TaskSuccessProperty(success bool) Triple {
	return DatatypeTriple("knowrob:taskSuccess", ref("xsd", "boolean"), strconv.FormatBool(success))
}

func GraspTypeProperty(graspType string) Triple {
	return DatatypeTriple("knowrob:graspType", ref("xsd", "string"), graspType)
}

func SubActionProperty(eventID string) Triple {
	return ResourceTriple("knowrob:subAction", ref(logPrefix, eventID))
}
