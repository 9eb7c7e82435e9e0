// Package sig renders canonical ABI signatures for the functions and
// events of a parsed contract and derives their keccak-based selectors.
//
// Rendering is purely syntactic. Types that need semantic resolution
// before they can appear in an ABI signature (user-defined names,
// mappings, function types, array lengths that are not number literals)
// fail with ErrNoCanonicalForm rather than guessing.
package sig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"solast/pkg/ast"
)

// ErrNoCanonicalForm reports a type that cannot be rendered into an ABI
// signature from the syntax tree alone.
var ErrNoCanonicalForm = errors.New("sig: type has no canonical ABI form")

// CanonicalType renders a type name the way the ABI writes it inside a
// signature: aliases expanded ("uint" to "uint256", "int" to "int256",
// "byte" to "bytes1"), the payability adjective dropped from addresses,
// array suffixes preserved.
func CanonicalType(typeName ast.TypeName) (string, error) {
	switch t := typeName.(type) {
	case *ast.ElementaryTypeName:
		return canonicalElementary(t.Name), nil
	case *ast.ArrayTypeName:
		base, err := CanonicalType(t.BaseType)
		if err != nil {
			return "", err
		}
		if t.Length == nil {
			return base + "[]", nil
		}
		length, ok := t.Length.(*ast.Literal)
		if !ok || length.Kind != "number" || length.Value == nil {
			return "", fmt.Errorf("%w: array length is not a number literal", ErrNoCanonicalForm)
		}
		return base + "[" + *length.Value + "]", nil
	case *ast.UserDefinedTypeName:
		return "", fmt.Errorf("%w: user-defined type %s", ErrNoCanonicalForm, t.Name)
	case *ast.Mapping:
		return "", fmt.Errorf("%w: mapping", ErrNoCanonicalForm)
	case *ast.FunctionTypeName:
		return "", fmt.Errorf("%w: function type", ErrNoCanonicalForm)
	case nil:
		return "", fmt.Errorf("%w: type name missing", ErrNoCanonicalForm)
	default:
		return "", fmt.Errorf("%w: %s", ErrNoCanonicalForm, t.NodeType())
	}
}

func canonicalElementary(name string) string {
	// "address payable" and plain "address" write the same in the ABI.
	if strings.HasPrefix(name, "address") {
		return "address"
	}
	switch name {
	case "uint":
		return "uint256"
	case "int":
		return "int256"
	case "byte":
		return "bytes1"
	}
	return name
}

// Function renders the canonical signature of a function definition,
// "transfer(address,uint256)". Constructors and the unnamed fallback and
// receive functions have no ABI signature.
func Function(fn *ast.FunctionDefinition) (string, error) {
	switch fn.Kind {
	case "", "function":
	default:
		return "", fmt.Errorf("sig: %s has no ABI signature", fn.Kind)
	}
	if fn.Name == "" {
		return "", errors.New("sig: unnamed function has no ABI signature")
	}
	return render(fn.Name, fn.Parameters)
}

// Selector derives the 4-byte call selector of a function: the leading
// bytes of keccak256 over its canonical signature.
func Selector(fn *ast.FunctionDefinition) ([4]byte, error) {
	var selector [4]byte
	signature, err := Function(fn)
	if err != nil {
		return selector, err
	}
	copy(selector[:], crypto.Keccak256([]byte(signature)))
	return selector, nil
}

// Event renders the canonical signature of an event definition,
// "Transfer(address,address,uint256)".
func Event(ev *ast.EventDefinition) (string, error) {
	if ev.Name == "" {
		return "", errors.New("sig: unnamed event has no ABI signature")
	}
	return render(ev.Name, ev.Parameters)
}

// EventTopic derives the log topic of an event: the full keccak256 hash
// of its canonical signature.
func EventTopic(ev *ast.EventDefinition) (common.Hash, error) {
	signature, err := Event(ev)
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash([]byte(signature)), nil
}

func render(name string, parameters *ast.ParameterList) (string, error) {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	if parameters != nil {
		for i, parameter := range parameters.Parameters {
			if parameter == nil {
				return "", fmt.Errorf("%w: empty parameter slot", ErrNoCanonicalForm)
			}
			canonical, err := CanonicalType(parameter.TypeName)
			if err != nil {
				return "", fmt.Errorf("%w in parameter %d of %s", err, i, name)
			}
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(canonical)
		}
	}
	b.WriteByte(')')
	return b.String(), nil
}
