package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"
)

// retrieveAnalyses polls GET /analyses/{employee_id} for every submitted
// employee until the record appears or the poll budget runs out.
func retrieveAnalyses(ctx context.Context, config *Config, client *HTTPClient, employees []EmployeeDoc, stats *Stats) ([]AnalysisDoc, error) {
	log.Printf("🔎 Retrieving analyses for %d employees...", len(employees))

	pending := make(map[string]bool, len(employees))
	for _, emp := range employees {
		pending[emp.ID] = true
	}

	results := make([]AnalysisDoc, 0, len(employees))
	deadline := time.Now().Add(AnalysisPollBudget)

	for len(pending) > 0 && time.Now().Before(deadline) {
		for id := range pending {
			select {
			case <-ctx.Done():
				return results, ctx.Err()
			default:
			}

			doc, ok, err := fetchAnalysis(ctx, client, config.BaseURL, id)
			if err != nil {
				return results, err
			}
			if ok {
				results = append(results, doc)
				delete(pending, id)
			}
		}
		if len(pending) > 0 {
			time.Sleep(AnalysisPollInterval)
		}
	}

	stats.AnalysesRetrieved = len(results)
	stats.AnalysesMissing = len(pending)

	log.Printf(`✅ Analysis retrieval completed:
   Retrieved: %d
   Missing: %d
`, stats.AnalysesRetrieved, stats.AnalysesMissing)

	return results, nil
}

// fetchAnalysis fetches one analysis record. A 404 means the worker has
// not processed the job yet; that is not an error.
func fetchAnalysis(ctx context.Context, client *HTTPClient, baseURL, employeeID string) (AnalysisDoc, bool, error) {
	url := fmt.Sprintf("%s/analyses/%s", baseURL, employeeID)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return AnalysisDoc{}, false, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return AnalysisDoc{}, false, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return AnalysisDoc{}, false, nil
	}

	var doc AnalysisDoc
	if err := json.Unmarshal(body, &doc); err != nil {
		return AnalysisDoc{}, false, fmt.Errorf("failed to parse response: %w", err)
	}
	return doc, true, nil
}

// verifyResults spot-checks segment distribution and analysis contents.
func verifyResults(ctx context.Context, config *Config, analyses []AnalysisDoc, stats *Stats) error {
	log.Println("🔍 Verifying results...")

	displaySegmentDistribution(stats)

	if config.Analyze {
		if len(analyses) == 0 {
			return fmt.Errorf("no analyses to verify")
		}
		if err := verifyAnalyses(analyses); err != nil {
			return err
		}
		displayReadinessBreakdown(analyses, config.Verbose)
	}

	log.Println("✅ Result verification completed")
	return nil
}

// displaySegmentDistribution prints the nine-box counts observed in the
// stored employee records.
func displaySegmentDistribution(stats *Stats) {
	if len(stats.SegmentsSeen) == 0 {
		return
	}

	names := make([]string, 0, len(stats.SegmentsSeen))
	for name := range stats.SegmentsSeen {
		names = append(names, name)
	}
	sort.Strings(names)

	log.Println("📊 Segment distribution:")
	for _, name := range names {
		log.Printf("   %-20s %d", name, stats.SegmentsSeen[name])
	}
}

// verifyAnalyses checks structural invariants on every retrieved record.
func verifyAnalyses(analyses []AnalysisDoc) error {
	for _, doc := range analyses {
		if doc.TargetRole == "" {
			return fmt.Errorf("analysis for %s has no target role", doc.EmployeeID)
		}
		if doc.Gap.OverallSkillMatch == "" {
			return fmt.Errorf("analysis for %s has no skill match", doc.EmployeeID)
		}
		if doc.Gap.ReadinessLevel == "" {
			return fmt.Errorf("analysis for %s has no readiness level", doc.EmployeeID)
		}
	}
	log.Printf("✅ All %d analyses carry a target role, skill match, and readiness level", len(analyses))
	return nil
}

// displayReadinessBreakdown summarizes readiness labels across analyses.
func displayReadinessBreakdown(analyses []AnalysisDoc, verbose bool) {
	byLabel := make(map[string]int)
	byModel := make(map[string]int)
	for _, doc := range analyses {
		byLabel[doc.Gap.ReadinessLevel]++
		if doc.Readiness != "" {
			byModel[doc.Readiness]++
		}
	}

	log.Println("🏷  Readiness (gap heuristic):")
	for _, label := range sortedKeys(byLabel) {
		log.Printf("   %-15s %d", label, byLabel[label])
	}

	if len(byModel) > 0 {
		log.Println("🏷  Readiness (classifier):")
		for _, label := range sortedKeys(byModel) {
			log.Printf("   %-15s %d", label, byModel[label])
		}
	}

	if verbose {
		sample := analyses
		if len(sample) > 5 {
			sample = sample[:5]
		}
		for _, doc := range sample {
			log.Printf("   sample %s -> %s (match %s, missing %d skills)",
				doc.EmployeeID, doc.TargetRole, doc.Gap.OverallSkillMatch, len(doc.Gap.MissingSkills))
		}
	}
}

// sortedKeys returns map keys in sorted order.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
