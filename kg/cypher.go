package kg

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ToCypher renders the graph as a Cypher script: index creation, one MERGE
// per node, one MERGE per relationship. Output is deterministic for a given
// graph snapshot.
func (g Graph) ToCypher() string {
	var sb strings.Builder

	sb.WriteString("// Indexes and Constraints\n")
	sb.WriteString("CREATE INDEX entity_id IF NOT EXISTS FOR (n:Entity) ON (n.id);\n")
	sb.WriteString("CREATE INDEX company_name IF NOT EXISTS FOR (n:Company) ON (n.name);\n")
	sb.WriteString("\n// Create Nodes\n")

	for _, node := range g.Nodes {
		props := node.Properties
		if len(node.SourceDocs) > 0 {
			props = make(map[string]any, len(node.Properties)+1)
			for k, v := range node.Properties {
				props[k] = v
			}
			props["source_documents"] = node.SourceDocs
		}
		fmt.Fprintf(&sb, "MERGE (n:%s {id: '%s'}) SET n += %s;\n",
			strings.Join(node.Labels, ":"),
			escapeCypherString(node.ID),
			propsToCypher(props))
	}

	sb.WriteString("\n// Create Relationships\n")
	for _, edge := range g.Edges {
		fmt.Fprintf(&sb, "MATCH (a:Entity {id: '%s'})\nMATCH (b:Entity {id: '%s'})\nMERGE (a)-[r:%s]->(b)\nSET r += %s;\n",
			escapeCypherString(edge.SourceID),
			escapeCypherString(edge.TargetID),
			edge.Type,
			propsToCypher(edge.Properties))
	}

	return sb.String()
}

// propsToCypher renders a property map as a Cypher map literal with sorted
// keys. Unsupported value types are skipped.
func propsToCypher(props map[string]any) string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		rendered, ok := cypherValue(props[k])
		if !ok {
			continue
		}
		parts = append(parts, k+": "+rendered)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func cypherValue(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return "'" + escapeCypherString(val) + "'", true
	case bool:
		return strconv.FormatBool(val), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case []string:
		items := make([]string, len(val))
		for i, s := range val {
			items[i] = "'" + escapeCypherString(s) + "'"
		}
		return "[" + strings.Join(items, ", ") + "]", true
	default:
		return "", false
	}
}

func escapeCypherString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
