package resources

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"trail-recommender/internal/fuzzy"
	"trail-recommender/internal/mcpserver/tools"
)

const (
	RuleBaseURI   = "trails://rulebase"
	MembershipURI = "trails://membership"
)

// RegisterAll registers resources with the MCP server.
func RegisterAll(server *mcp.Server, deps tools.Dependencies) {
	server.AddResource(&mcp.Resource{
		URI:         RuleBaseURI,
		Name:        "rulebase",
		Description: "Fuzzy rules in evaluation order",
		MIMEType:    "text/plain",
	}, textHandler(RuleBaseURI, "text/plain", func() string { return RenderRuleBase(deps.Engine.System()) }))

	server.AddResource(&mcp.Resource{
		URI:         MembershipURI,
		Name:        "membership",
		Description: "Criterion universes and fuzzy set parameters",
		MIMEType:    "text/markdown",
	}, textHandler(MembershipURI, "text/markdown", func() string { return RenderMembership(deps.Engine.System().Model()) }))
}

func textHandler(uri, mime string, render func() string) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{URI: uri, MIMEType: mime, Text: render()}},
		}, nil
	}
}

func RenderRuleBase(s *fuzzy.System) string {
	return fmt.Sprintf("# %d rules\n%s", s.RuleCount(), s.RuleBase().String())
}

// RenderMembership prints one table per criterion plus the output variable.
// Integer points where no set fires are listed under the table.
func RenderMembership(m *fuzzy.Model) string {
	var b strings.Builder
	vars := append(m.Inputs(), m.Output())
	for _, v := range vars {
		b.WriteString(fmt.Sprintf("## %s [%g, %g]\n\n", v.Name, v.Min, v.Max))
		b.WriteString("| label | a | b | c | d |\n|---|---|---|---|---|\n")
		for _, s := range v.Sets {
			b.WriteString(fmt.Sprintf("| %s | %g | %g | %g | %g |\n", s.Label, s.Shape.A, s.Shape.B, s.Shape.C, s.Shape.D))
		}
		if gaps := v.Gaps(); len(gaps) > 0 {
			parts := make([]string, len(gaps))
			for i, g := range gaps {
				parts[i] = fmt.Sprintf("%g", g)
			}
			b.WriteString(fmt.Sprintf("\nNo set fires at: %s\n", strings.Join(parts, ", ")))
		}
		b.WriteString("\n")
	}
	return b.String()
}
