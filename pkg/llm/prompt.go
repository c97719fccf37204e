package llm

import (
	"fmt"
	"strings"
)

const scoringSystemPrompt = `You are a senior financial news analyst with expertise in market-moving events. Rate each article's importance (1-10, decimals allowed) based on potential impact on financial markets and global affairs.

IMPORTANCE SCORING GUIDELINES:
- 9-10: Major central bank decisions, significant geopolitical events, major corporate bankruptcies/mergers
- 7-8: Economic data releases, earnings from major companies, regulatory changes
- 5-6: Industry news, moderate corporate announcements, regional economic updates
- 3-4: Routine corporate news, minor policy updates, sector-specific news
- 1-2: General news with minimal market impact, non-English articles

CRITICAL RULES:
1. If an article is NOT in English, set is_english=false and importance_score=1.0
2. Breaking news gets +1 point if it's genuinely market-moving
3. Focus on immediate market impact potential, not long-term trends
4. Summary should be 2 concise sentences focusing on market implications
5. Return one result per article, in the same order, with article_id matching the article number`

func formatArticlesForScoring(articles []ClassifyInput) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Analyze these %d articles:\n\n", len(articles)))
	for i, a := range articles {
		sb.WriteString(fmt.Sprintf("Article %d:\n", i+1))
		sb.WriteString(fmt.Sprintf("Headline: %s\n", a.Headline))
		if a.Summary != "" {
			sb.WriteString(fmt.Sprintf("Summary: %s\n", a.Summary))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
