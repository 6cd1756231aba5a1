package graphrag

import (
	"fmt"
	"strings"
)

// systemPrompt frames the model as a grounded analyst over the graph.
const systemPrompt = `You are a financial analyst assistant with access to a knowledge graph containing information about companies, financial metrics, risks, and economic indicators.

Your role is to:
1. Analyze the provided knowledge graph context
2. Answer questions accurately based on the available data
3. Cite specific entities and relationships from the graph
4. Acknowledge when information is not available in the graph

When answering:
- Be specific and cite evidence from the graph
- Use financial terminology appropriately
- If the graph doesn't contain enough information, say so
- Format numerical values with appropriate units (millions, billions)`

const contextAnswerTemplate = `Based on the following knowledge graph context, answer the question.

KNOWLEDGE GRAPH CONTEXT:
%s

QUESTION: %s

Provide a comprehensive answer based on the graph data. If the information is not available in the graph, acknowledge this limitation.

ANSWER:`

// contextAnswerPrompt renders the retrieval context and question into the
// answer-synthesis prompt.
func contextAnswerPrompt(context, question string) string {
	return fmt.Sprintf(contextAnswerTemplate, context, question)
}

// cypherTemplate renders the debug Cypher query that corresponds to a
// question category and set of resolved entity IDs. The query is
// informational output for the caller, not executed by the engine.
func cypherTemplate(category string, entityIDs []string) string {
	entityFilter := ""
	if len(entityIDs) > 0 {
		quoted := make([]string, len(entityIDs))
		for i, id := range entityIDs {
			quoted[i] = "'" + id + "'"
		}
		entityFilter = fmt.Sprintf("WHERE n.id IN [%s]", strings.Join(quoted, ", "))
	}

	switch category {
	case CategoryRisk:
		return fmt.Sprintf("MATCH (c:Company)-[r:FACES_RISK]->(risk:Risk)\n%s\nRETURN c.name, risk.name, r.evidence LIMIT 20", entityFilter)
	case CategoryFinancial:
		return fmt.Sprintf("MATCH (c:Company)-[r:REPORTED]->(m:FinancialMetric)\n%s\nRETURN c.name, m.name, m.value LIMIT 20", entityFilter)
	case CategoryCompetitor:
		return fmt.Sprintf("MATCH (c1:Company)-[r:COMPETES_WITH]-(c2:Company)\n%s\nRETURN c1.name, c2.name LIMIT 20", entityFilter)
	case CategoryProduct:
		return fmt.Sprintf("MATCH (c:Company)-[r:MANUFACTURES|SELLS]->(p:Product)\n%s\nRETURN c.name, p.name LIMIT 20", entityFilter)
	default:
		return fmt.Sprintf("MATCH (n)-[r]-(m)\n%s\nRETURN n, r, m LIMIT 30", entityFilter)
	}
}
