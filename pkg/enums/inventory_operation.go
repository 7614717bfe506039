package enums

import "fmt"

// InventoryOperation identifies how an inventory adjustment mutates the
// stored quantity.
type InventoryOperation string

const (
	InventoryOperationSet       InventoryOperation = "set"
	InventoryOperationIncrement InventoryOperation = "increment"
	InventoryOperationDecrement InventoryOperation = "decrement"
)

var validInventoryOperations = []InventoryOperation{
	InventoryOperationSet,
	InventoryOperationIncrement,
	InventoryOperationDecrement,
}

// String implements fmt.Stringer.
func (o InventoryOperation) String() string {
	return string(o)
}

// IsValid reports whether the value is a known InventoryOperation.
func (o InventoryOperation) IsValid() bool {
	for _, candidate := range validInventoryOperations {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseInventoryOperation converts raw input into an InventoryOperation.
func ParseInventoryOperation(value string) (InventoryOperation, error) {
	for _, candidate := range validInventoryOperations {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inventory operation %q", value)
}
