package event

type Kind int

const (
	KindContact Kind = iota
	KindSupportedBy
	KindGrasp
	KindPreGraspPositioning
	KindPutDown
	KindSlicing
)

var kindNames = map[Kind]string{
	KindContact:             "Contact",
	KindSupportedBy:         "SupportedBy",
	KindGrasp:               "Grasp",
	KindPreGraspPositioning: "PreGraspPositioning",
	KindPutDown:             "PutDown",
	KindSlicing:             "Slicing",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Kinds lists every event kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindContact,
		KindSupportedBy,
		KindGrasp,
		KindPreGraspPositioning,
		KindPutDown,
		KindSlicing,
	}
}
