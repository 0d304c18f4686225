package model

import "fmt"

// Payload is a governance proposal transaction batch.
type Payload struct {
	Transactions []Transaction `json:"transactions"`
}

// Transaction is one raw call in a proposal batch.
type Transaction struct {
	To                   string          `json:"to"`
	ContractMethod       *ContractMethod `json:"contractMethod,omitempty"`
	ContractInputsValues map[string]any  `json:"contractInputsValues,omitempty"`
}

// ContractMethod carries the decoded ABI method name, when the batch builder knew it.
type ContractMethod struct {
	Name string `json:"name"`
}

// MethodName returns the method name or "" when the batch has no ABI for the call.
func (t Transaction) MethodName() string {
	if t.ContractMethod == nil {
		return ""
	}
	return t.ContractMethod.Name
}

// Input returns a call input rendered as a string.
func (t Transaction) Input(key string) (string, bool) {
	if t.ContractInputsValues == nil {
		return "", false
	}
	val, ok := t.ContractInputsValues[key]
	if !ok || val == nil {
		return "", false
	}
	if s, ok := val.(string); ok {
		return s, true
	}
	return fmt.Sprintf("%v", val), true
}
