package semantic

import "fmt"

// Entity is the stable identity a simulated object carries in the log.
type Entity struct {
	ID    string `json:"id" yaml:"id"`
	Class string `json:"class" yaml:"class"`
}

func (e Entity) IsSet() bool {
	return e.ID != "" && e.Class != ""
}

func (e Entity) String() string {
	return fmt.Sprintf("Id:%s Class:%s", e.ID, e.Class)
}

// Lookup resolves a simulation object handle to its semantic entity.
type Lookup interface {
	Resolve(handle string) (Entity, bool)
}
