package memdoc

import (
	"errors"
	"fmt"

	"github.com/alexisbeaulieu97/canvasgen/internal/ports"
	canvaserrors "github.com/alexisbeaulieu97/canvasgen/pkg/errors"
)

// Operations a FaultRule can target.
const (
	OpCreate      = "create"
	OpSet         = "set"
	OpResize      = "resize"
	OpAppend      = "append"
	OpRemove      = "remove"
	OpInstantiate = "instantiate"
	OpVariants    = "set-variants"
	OpLoadFont    = "load-font"
)

// ErrInjected is the cause carried by failures produced from a FaultRule.
var ErrInjected = errors.New("injected host failure")

// FaultRule makes matching host calls fail. Zero-valued fields match
// anything. For OpAppend the node name and type are those of the child being
// appended.
type FaultRule struct {
	Op       string
	NodeName string
	NodeType ports.NodeType
	Field    ports.Field
	Font     ports.FontName
	// Panic makes the call panic instead of returning an error.
	Panic bool
}

type call struct {
	op       string
	nodeID   string
	nodeName string
	nodeType ports.NodeType
	field    ports.Field
	font     ports.FontName
}

func (r FaultRule) matches(c call) bool {
	switch {
	case r.Op != "" && r.Op != c.op:
		return false
	case r.NodeName != "" && r.NodeName != c.nodeName:
		return false
	case r.NodeType != "" && r.NodeType != c.nodeType:
		return false
	case r.Field != "" && r.Field != c.field:
		return false
	case r.Font != (ports.FontName{}) && r.Font != c.font:
		return false
	}
	return true
}

// FailOn installs fault rules. Rules accumulate until ClearFaults.
func (d *Document) FailOn(rules ...FaultRule) {
	d.faults = append(d.faults, rules...)
}

// ClearFaults removes every fault rule.
func (d *Document) ClearFaults() {
	d.faults = nil
}

func (d *Document) fault(c call) error {
	for _, r := range d.faults {
		if !r.matches(c) {
			continue
		}
		op := c.op
		if c.field != "" {
			op = fmt.Sprintf("%s %s", c.op, c.field)
		}
		if r.Panic {
			panic(fmt.Sprintf("memdoc: injected panic during %s", op))
		}
		return canvaserrors.NewHostError(c.nodeID, op, ErrInjected)
	}
	return nil
}
