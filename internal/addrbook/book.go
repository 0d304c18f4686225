package addrbook

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const (
	GaugeControllerKey = "20220325-gauge-controller/GaugeController"
	GaugeAdderKey      = "20230109-gauge-adder-v3/GaugeAdder"
)

var defaults = map[string]string{
	GaugeControllerKey: "0xC128468b7Ce63eA702C1f104D55A2566b13D3ABD",
	GaugeAdderKey:      "0x5efBb12F01f27E1A1A3B11bA9e8Fe5F23BeA31E3",
}

// Book is a flat deployment-name to address mapping.
type Book struct {
	entries map[string]common.Address
}

// Default returns the built-in mainnet entries.
func Default() *Book {
	b := &Book{entries: make(map[string]common.Address, len(defaults))}
	for name, addr := range defaults {
		b.entries[name] = common.HexToAddress(addr)
	}
	return b
}

// Load returns the defaults extended by the JSON book at path. Nested
// objects are flattened with "/" separators; later entries win.
func Load(path string) (*Book, error) {
	b := Default()
	if path == "" {
		return b, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read address book: %w", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse address book %s: %w", path, err)
	}
	if err := b.merge("", doc); err != nil {
		return nil, fmt.Errorf("address book %s: %w", path, err)
	}
	return b, nil
}

func (b *Book) merge(prefix string, doc map[string]interface{}) error {
	for key, value := range doc {
		name := key
		if prefix != "" {
			name = prefix + "/" + key
		}
		switch v := value.(type) {
		case string:
			if !common.IsHexAddress(v) {
				return fmt.Errorf("invalid address for %s: %s", name, v)
			}
			b.entries[name] = common.HexToAddress(v)
		case map[string]interface{}:
			if err := b.merge(name, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *Book) Lookup(name string) (common.Address, bool) {
	addr, ok := b.entries[name]
	return addr, ok
}

// SearchUnique returns the only entry whose name contains fragment.
func (b *Book) SearchUnique(fragment string) (common.Address, error) {
	var matches []string
	for name := range b.entries {
		if strings.Contains(name, fragment) {
			matches = append(matches, name)
		}
	}
	switch len(matches) {
	case 0:
		return common.Address{}, fmt.Errorf("no address book entry matches %q", fragment)
	case 1:
		return b.entries[matches[0]], nil
	default:
		sort.Strings(matches)
		return common.Address{}, fmt.Errorf("%d address book entries match %q: %s", len(matches), fragment, strings.Join(matches, ", "))
	}
}

func (b *Book) Len() int {
	return len(b.entries)
}
