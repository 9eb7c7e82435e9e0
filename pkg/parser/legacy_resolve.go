package parser

import "strings"

// Version-conditional attribute resolution. Legacy output changed shape
// many times between 0.4.0 and 0.7.6; which fields exist reveals which
// rule applies, so everything here keys on field presence and nothing ever
// looks at a compiler version string.

// resolveFunctionMutability maps the three eras of mutability encoding to
// one value: an explicit stateMutability (0.4.16 on), a payable flag
// (0.4.5 on), or nothing at all. With no information the function is
// assumed payable; the earliest compilers let nominally constant functions
// mutate state, so the permissive reading is the accurate one.
func resolveFunctionMutability(attrs rawNode) (string, error) {
	if attrs.has("stateMutability") {
		return attrs.str("stateMutability")
	}
	if attrs.has("payable") {
		payable, err := attrs.boolean("payable")
		if err != nil {
			return "", err
		}
		if payable {
			return "payable", nil
		}
		return "nonpayable", nil
	}
	return "payable", nil
}

// resolveFunctionKind maps the kind of a function definition: an explicit
// kind (0.5.0 on), an isConstructor flag (0.4.12 on), or nothing, in which
// case a nameless function is the fallback function.
func resolveFunctionKind(attrs rawNode, name string) (string, error) {
	if attrs.has("kind") {
		return attrs.str("kind")
	}
	if attrs.has("isConstructor") {
		isConstructor, err := attrs.boolean("isConstructor")
		if err != nil {
			return "", err
		}
		if isConstructor {
			return "constructor", nil
		}
	}
	if name == "" {
		return "fallback", nil
	}
	return "function", nil
}

// resolveContractKind maps the kind of a contract definition: an explicit
// contractKind (0.4.12 on), or the isLibrary/fullyImplemented flag pair.
// An unimplemented non-library could only be an interface back then.
func resolveContractKind(attrs rawNode) (string, error) {
	if attrs.has("contractKind") {
		return attrs.str("contractKind")
	}
	isLibrary, err := attrs.boolean("isLibrary")
	if err != nil {
		return "", err
	}
	if isLibrary {
		return "library", nil
	}
	fullyImplemented, err := attrs.boolean("fullyImplemented")
	if err != nil {
		return "", err
	}
	if fullyImplemented {
		return "contract", nil
	}
	return "interface", nil
}

// resolveCallKind maps a function call to functionCall, typeConversion or
// structConstructorCall. From 0.4.12 an isStructConstructorCall flag is
// present; before that the only tell for a struct constructor is the
// call's own type string.
func resolveCallKind(attrs rawNode, typeString string) (string, error) {
	if attrs.has("isStructConstructorCall") {
		isStructCall, err := attrs.boolean("isStructConstructorCall")
		if err != nil {
			return "", err
		}
		if isStructCall {
			return "structConstructorCall", nil
		}
		return resolveConversionOr(attrs, "functionCall")
	}
	kind, err := resolveConversionOr(attrs, "")
	if err != nil {
		return "", err
	}
	if kind != "" {
		return kind, nil
	}
	if strings.HasPrefix(typeString, "struct ") {
		return "structConstructorCall", nil
	}
	return "functionCall", nil
}

func resolveConversionOr(attrs rawNode, fallback string) (string, error) {
	conversion, err := attrs.boolean("type_conversion")
	if err != nil {
		return "", err
	}
	if conversion {
		return "typeConversion", nil
	}
	return fallback, nil
}

// resolveCanonicalName distinguishes structs and enums that carry a
// canonical name (0.4.12 on) from those that predate the field.
func resolveCanonicalName(attrs rawNode) (*string, error) {
	if !attrs.has("canonicalName") {
		return nil, nil
	}
	return attrs.nullableStr("canonicalName")
}

// resolveElementaryMutability: explicit stateMutability from 0.5.0; before
// that every address was implicitly payable and other types carry nothing.
func resolveElementaryMutability(attrs rawNode, name string) (*string, error) {
	if attrs.has("stateMutability") {
		return attrs.nullableStr("stateMutability")
	}
	if name == "address" {
		payable := "payable"
		return &payable, nil
	}
	return nil, nil
}

// resolveImportPath: 0.5.0 renamed the import target field from file to
// absolutePath.
func resolveImportPath(attrs rawNode) (string, error) {
	if attrs.has("absolutePath") {
		return attrs.str("absolutePath")
	}
	return attrs.str("file")
}

// resolveCallNames: named-argument call syntax stores names only on the
// versions that support it; absence means a positional call.
func resolveCallNames(attrs rawNode) ([]string, error) {
	if !attrs.has("names") {
		return []string{}, nil
	}
	names, err := attrs.strList("names")
	if err != nil {
		return nil, err
	}
	return names, nil
}
