package stylus

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// abiEntry is the slice of an ABI record the C bindings generator needs.
type abiEntry struct {
	Type            string     `json:"type"`
	Name            string     `json:"name"`
	StateMutability string     `json:"stateMutability"`
	Inputs          []abiParam `json:"inputs"`
	Outputs         []abiParam `json:"outputs"`
}

type abiParam struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ExtractJSON pulls the first complete JSON array or object out of mixed
// CLI output. cargo stylus prints build progress around the ABI, so the
// payload has to be fished out of the noise — including false starts like
// "[optimized]" in cargo's own chatter, which are skipped because they do
// not parse.
func ExtractJSON(output string) (string, error) {
	sawCandidate := false

	for start := 0; start < len(output); start++ {
		opener := output[start]
		if opener != '[' && opener != '{' {
			continue
		}

		sawCandidate = true

		closer := byte('}')
		if opener == '[' {
			closer = ']'
		}

		if candidate, ok := balancedSpan(output, start, opener, closer); ok && json.Valid([]byte(candidate)) {
			return candidate, nil
		}
	}

	if sawCandidate {
		return "", fmt.Errorf("no valid JSON payload found in output")
	}

	return "", fmt.Errorf("no JSON payload found in output")
}

// balancedSpan returns the substring from start through the matching
// closer, honoring JSON string literals and escapes.
func balancedSpan(output string, start int, opener byte, closer byte) (string, bool) {
	depth := 0
	inString := false

	for i := start; i < len(output); i++ {
		ch := output[i]

		if inString {
			switch ch {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return output[start : i+1], true
			}
		}
	}

	return "", false
}

// GenerateCBindings runs the export-abi pipeline for a project and renders
// C header declarations for its external functions.
func (r *Runner) GenerateCBindings(ctx context.Context, projectDir string, contractName string) (string, error) {
	output, err := r.ExportABI(ctx, projectDir, true)
	if err != nil {
		return "", err
	}

	payload, err := ExtractJSON(output.Stdout + "\n" + output.Stderr)
	if err != nil {
		return "", fmt.Errorf("extract ABI from export-abi output: %w", err)
	}

	return RenderCBindings(payload, contractName)
}

// RenderCBindings turns an ABI JSON array into a C header with one
// declaration per external function.
func RenderCBindings(abiJSON string, contractName string) (string, error) {
	entries := []abiEntry{}
	if err := json.Unmarshal([]byte(abiJSON), &entries); err != nil {
		return "", fmt.Errorf("parse ABI: %w", err)
	}

	guard := strings.ToUpper(sanitizeIdentifier(contractName)) + "_BINDINGS_H"

	builder := strings.Builder{}
	fmt.Fprintf(&builder, "// Generated Stylus C bindings for %s. Do not edit.\n", contractName)
	fmt.Fprintf(&builder, "#ifndef %s\n#define %s\n\n", guard, guard)
	builder.WriteString("#include <stylus_types.h>\n\n")

	declared := 0
	for _, entry := range entries {
		if entry.Type != "function" {
			continue
		}

		returnType := "void"
		if len(entry.Outputs) > 0 {
			returnType = cTypeFor(entry.Outputs[0].Type)
		}

		params := make([]string, 0, len(entry.Inputs))
		for i, input := range entry.Inputs {
			paramName := sanitizeIdentifier(input.Name)
			if paramName == "" {
				paramName = fmt.Sprintf("arg%d", i)
			}

			params = append(params, cTypeFor(input.Type)+" "+paramName)
		}

		paramList := strings.Join(params, ", ")
		if paramList == "" {
			paramList = "void"
		}

		if entry.StateMutability == "view" || entry.StateMutability == "pure" {
			fmt.Fprintf(&builder, "// %s (read-only)\n", entry.Name)
		}

		fmt.Fprintf(&builder, "extern %s %s(%s);\n", returnType, sanitizeIdentifier(entry.Name), paramList)
		declared++
	}

	if declared == 0 {
		return "", fmt.Errorf("ABI contains no functions")
	}

	fmt.Fprintf(&builder, "\n#endif // %s\n", guard)

	return builder.String(), nil
}

// cTypeFor maps Solidity ABI types onto the fixed-width types the Stylus C
// SDK uses. Everything word-sized stays a 32-byte buffer.
func cTypeFor(solidityType string) string {
	switch {
	case solidityType == "bool":
		return "bool"
	case solidityType == "address":
		return "bebi20"
	case strings.HasPrefix(solidityType, "uint") || strings.HasPrefix(solidityType, "int"):
		return "bebi32"
	case solidityType == "bytes32":
		return "bebi32"
	case solidityType == "string" || solidityType == "bytes" || strings.HasSuffix(solidityType, "[]"):
		return "uint8_t *"
	default:
		return "bebi32"
	}
}

func sanitizeIdentifier(name string) string {
	builder := strings.Builder{}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			builder.WriteRune(r)
		default:
			builder.WriteRune('_')
		}
	}

	return builder.String()
}
