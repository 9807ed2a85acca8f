// Package wasmdebug renders a wasm.Module as human-readable text for
// diagnostics. The output is stable, one line per section item.
package wasmdebug

import (
	"fmt"
	"strings"

	"github.com/tarnlang/tarn/internal/wasm"
)

// DumpModule returns a listing of every non-empty section, in the order the
// encoder writes them.
func DumpModule(m *wasm.Module) string {
	var sb strings.Builder
	sb.WriteString("module:\n")
	for i, t := range m.TypeSection {
		fmt.Fprintf(&sb, "  type[%d] %s\n", i, t.String())
	}
	for i, imp := range m.ImportSection {
		fmt.Fprintf(&sb, "  import[%d] %q.%q %s type[%d]\n",
			i, imp.Module, imp.Name, wasm.ExternTypeName(imp.Type), imp.DescFunc)
	}
	for i, typeIndex := range m.FunctionSection {
		// The function index space starts after the imports.
		fmt.Fprintf(&sb, "  func[%d] type[%d]\n", len(m.ImportSection)+i, typeIndex)
	}
	for i, mem := range m.MemorySection {
		if mem.Max != nil {
			fmt.Fprintf(&sb, "  memory[%d] min=%d max=%d\n", i, mem.Min, *mem.Max)
		} else {
			fmt.Fprintf(&sb, "  memory[%d] min=%d\n", i, mem.Min)
		}
	}
	for _, e := range m.ExportSection {
		fmt.Fprintf(&sb, "  export %q %s[%d]\n", e.Name, wasm.ExternTypeName(e.Type), e.Index)
	}
	for i, c := range m.CodeSection {
		fmt.Fprintf(&sb, "  code[%d] %d locals, % x\n", i, len(c.LocalTypes), c.Body)
	}
	for i, d := range m.DataSection {
		fmt.Fprintf(&sb, "  data[%d] memory[%d] %d bytes\n", i, d.MemoryIndex, len(d.Init))
	}
	return sb.String()
}
