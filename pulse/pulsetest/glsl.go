package pulsetest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/oliverbestmann/learngl/pulse"
)

// variable is a global in, out or uniform declaration of a shader.
type variable struct {
	Qualifier string
	Type      string
	Name      string
}

type shaderInterface struct {
	Inputs   []variable
	Outputs  []variable
	Uniforms []variable
}

var reDeclaration = regexp.MustCompile(`^(?:layout\s*\([^)]*\)\s*)?(in|out|uniform)\s+(\w+)\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*;$`)
var reMain = regexp.MustCompile(`\bvoid\s+main\s*\(\s*(void)?\s*\)`)
var reLineComment = regexp.MustCompile(`//[^\n]*`)
var reBlockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)

// compileGLSL performs the syntax checks a driver would report for the simple
// shaders of the tutorial programs. It is not a GLSL parser, it understands
// global declarations, brace nesting and statement terminators.
func compileGLSL(stage pulse.ShaderStage, source string) (shaderInterface, string, bool) {
	var iface shaderInterface

	source = reBlockComment.ReplaceAllStringFunc(source, func(comment string) string {
		// keep line numbers intact
		return strings.Repeat("\n", strings.Count(comment, "\n"))
	})

	source = reLineComment.ReplaceAllString(source, "")

	lines := strings.Split(source, "\n")

	first := firstNonEmpty(lines)
	if first < 0 || !strings.HasPrefix(strings.TrimSpace(lines[first]), "#version") {
		return iface, errorf(1, "#version directive missing"), false
	}

	if !reMain.MatchString(source) {
		return iface, errorf(len(lines), "function 'main' not defined in %s shader", stage), false
	}

	var depth, parens int

	for idx, rawLine := range lines {
		lineNo := idx + 1
		line := strings.TrimSpace(rawLine)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		for _, ch := range line {
			switch ch {
			case '{':
				depth++
			case '}':
				depth--
			case '(':
				parens++
			case ')':
				parens--
			}

			if depth < 0 {
				return iface, errorf(lineNo, "syntax error, unexpected '}'"), false
			}

			if parens < 0 {
				return iface, errorf(lineNo, "syntax error, unexpected ')'"), false
			}
		}

		if parens != 0 {
			return iface, errorf(lineNo, "syntax error, unbalanced parentheses"), false
		}

		last := line[len(line)-1]

		switch {
		case depth == 0 && strings.HasSuffix(line, "{"):
			// start of a function definition
		case depth == 0 && last == ';':
			match := reDeclaration.FindStringSubmatch(line)
			if match == nil {
				continue
			}

			v := variable{Qualifier: match[1], Type: match[2], Name: match[3]}
			switch v.Qualifier {
			case "in":
				iface.Inputs = append(iface.Inputs, v)
			case "out":
				iface.Outputs = append(iface.Outputs, v)
			case "uniform":
				iface.Uniforms = append(iface.Uniforms, v)
			}

		case depth == 0 && (last == ')' || last == '}'):
			// function signature followed by a brace on the next line,
			// or the end of a function body

		case depth > 0 && (last == ';' || last == '{' || last == '}'):

		default:
			return iface, errorf(lineNo+1, "syntax error, unexpected token after '%s'", lastToken(line)), false
		}
	}

	if depth != 0 {
		return iface, errorf(len(lines), "syntax error, unexpected end of file"), false
	}

	return iface, "", true
}

// linkGLSL matches the fragment inputs against the vertex outputs and merges
// the uniforms of both stages into a single table of locations.
func linkGLSL(vertex, fragment *shaderInterface) (map[string]int32, string, bool) {
	if vertex == nil || fragment == nil {
		return nil, "error: program requires a vertex and a fragment shader", false
	}

	outputs := map[string]string{}
	for _, out := range vertex.Outputs {
		outputs[out.Name] = out.Type
	}

	var errs []string

	for _, in := range fragment.Inputs {
		typ, ok := outputs[in.Name]

		switch {
		case !ok:
			errs = append(errs, fmt.Sprintf("error: fragment shader input `%s' has no matching output in the vertex shader", in.Name))
		case typ != in.Type:
			errs = append(errs, fmt.Sprintf("error: `%s' declared as type `%s' in vertex shader but `%s' in fragment shader", in.Name, typ, in.Type))
		}
	}

	types := map[string]string{}
	for _, uniform := range append(append([]variable{}, vertex.Uniforms...), fragment.Uniforms...) {
		if typ, ok := types[uniform.Name]; ok && typ != uniform.Type {
			errs = append(errs, fmt.Sprintf("error: uniform `%s' declared as `%s' and `%s'", uniform.Name, typ, uniform.Type))
		}

		types[uniform.Name] = uniform.Type
	}

	if len(errs) > 0 {
		return nil, strings.Join(errs, "\n"), false
	}

	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}

	sort.Strings(names)

	locations := map[string]int32{}
	for idx, name := range names {
		locations[name] = int32(idx)
	}

	return locations, "", true
}

func firstNonEmpty(lines []string) int {
	for idx, line := range lines {
		if strings.TrimSpace(line) != "" {
			return idx
		}
	}

	return -1
}

func lastToken(line string) string {
	fields := strings.Fields(line)
	return fields[len(fields)-1]
}

func errorf(line int, format string, args ...any) string {
	return fmt.Sprintf("0:%d(1): error: %s", line, fmt.Sprintf(format, args...))
}
