package structured

import (
	"fmt"

	"github.com/louisbranch/tabletop/internal/services/shared/entity"
)

// InputKind is the classified shape of a payload.
type InputKind int

const (
	InputID InputKind = iota + 1
	InputIDList
	InputObject
	InputObjectList
)

func (k InputKind) String() string {
	switch k {
	case InputID:
		return "id"
	case InputIDList:
		return "id_list"
	case InputObject:
		return "object"
	case InputObjectList:
		return "object_list"
	default:
		return "invalid"
	}
}

// Input is a payload shape accepted by a family. Exactly one field group is
// set, selected by Kind.
type Input struct {
	Kind    InputKind
	ID      entity.ID
	IDs     []entity.ID
	Object  Value
	Objects []Value
}

// Classify maps a parsed value to the input shape its family accepts.
func Classify(family Family, v Value) (Input, error) {
	switch v.Kind {
	case ValueNumber:
		n, ok := v.Integer()
		if !ok {
			return Input{}, invalidShape(fmt.Sprintf("%s id must be an integer, got %s", family, v.Raw()))
		}
		return Input{Kind: InputID, ID: entity.IDFromInt(n)}, nil
	case ValueObject:
		return Input{Kind: InputObject, Object: v}, nil
	case ValueArray:
		if !family.AcceptsArrays() {
			return Input{}, invalidShape(fmt.Sprintf("%s blocks do not accept arrays", family))
		}
		return classifyArray(family, v.Elements())
	default:
		return Input{}, invalidShape(fmt.Sprintf("%s block cannot be a %s", family, v.Kind))
	}
}

func classifyArray(family Family, items []Value) (Input, error) {
	if len(items) == 0 {
		return Input{}, invalidShape(fmt.Sprintf("%s list is empty", family))
	}
	switch items[0].Kind {
	case ValueNumber:
		ids := make([]entity.ID, 0, len(items))
		for i, item := range items {
			n, ok := item.Integer()
			if !ok {
				return Input{}, invalidShape(fmt.Sprintf("%s list item %d is not an integer id", family, i))
			}
			ids = append(ids, entity.IDFromInt(n))
		}
		return Input{Kind: InputIDList, IDs: ids}, nil
	case ValueObject:
		objects := make([]Value, 0, len(items))
		for i, item := range items {
			if item.Kind != ValueObject {
				return Input{}, invalidShape(fmt.Sprintf("%s list item %d is not an object", family, i))
			}
			if !item.Has("id") && !item.Has("name") {
				return Input{}, invalidShape(fmt.Sprintf("%s list item %d needs an id or a name", family, i))
			}
			objects = append(objects, item)
		}
		return Input{Kind: InputObjectList, Objects: objects}, nil
	default:
		return Input{}, invalidShape(fmt.Sprintf("%s list items must be ids or objects", family))
	}
}
