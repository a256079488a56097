package ledger

import (
	"testing"

	"github.com/one-front/airesume/pkg/models"
)

func newTestValidationLedger(t *testing.T) ValidationLedger {
	t.Helper()
	l := NewValidationLedger(t.TempDir())
	if err := l.Load(); err != nil {
		t.Fatalf("loading validation ledger: %v", err)
	}
	return l
}

func passManualRules(t *testing.T, l ValidationLedger, id string, overrides map[string]models.ValidationStatus) {
	t.Helper()
	for _, rule := range l.Rules() {
		if rule.Automated {
			continue
		}
		status := models.ValidationPassed
		if s, ok := overrides[rule.ID]; ok {
			status = s
		}
		if err := l.UpdateManualResult(id, rule.ID, status, 0.9, "verified", "docs on file", nil, "reviewer"); err != nil {
			t.Fatalf("manual result %s: %v", rule.ID, err)
		}
	}
}

func TestValidationRuleCatalogSeeded(t *testing.T) {
	l := newTestValidationLedger(t)

	rules := l.Rules()
	if len(rules) != 14 {
		t.Fatalf("expected 14 seeded rules, got %d", len(rules))
	}
	automated := 0
	critical := 0
	for _, rule := range rules {
		if rule.Automated {
			automated++
		}
		if rule.Severity == models.ValidationSeverityCritical {
			critical++
		}
	}
	if automated != 8 {
		t.Errorf("automated rules = %d, want 8", automated)
	}
	if critical != 5 {
		t.Errorf("critical rules = %d, want 5", critical)
	}
}

func TestRunAutomatedChecksFillsOnlyAutomatedRules(t *testing.T) {
	l := newTestValidationLedger(t)

	id, _ := l.CreateValidation(models.ValidationAutomated, "pipeline")
	if err := l.StartValidation(id); err != nil {
		t.Fatal(err)
	}
	if err := l.RunAutomatedChecks(id); err != nil {
		t.Fatalf("RunAutomatedChecks: %v", err)
	}

	v, _ := l.Validation(id)
	for _, result := range v.ValidationResults {
		rule, _ := findRule(l, result.RuleID)
		if rule.Automated {
			if result.Status != models.ValidationPassed || result.Validator != "automated_system" {
				t.Errorf("automated rule %s result = %s/%s", rule.ID, result.Status, result.Validator)
			}
			if result.Score <= 0 {
				t.Errorf("automated rule %s score %v", rule.ID, result.Score)
			}
		} else if result.Status != models.ValidationPending {
			t.Errorf("manual rule %s should stay pending, got %s", rule.ID, result.Status)
		}
	}
}

func findRule(l ValidationLedger, id string) (models.ValidationRule, bool) {
	for _, rule := range l.Rules() {
		if rule.ID == id {
			return rule, true
		}
	}
	return models.ValidationRule{}, false
}

func TestCompleteValidationCertificationReady(t *testing.T) {
	l := newTestValidationLedger(t)

	id, _ := l.CreateValidation(models.ValidationAutomated, "validator")
	if err := l.StartValidation(id); err != nil {
		t.Fatal(err)
	}
	if err := l.RunAutomatedChecks(id); err != nil {
		t.Fatal(err)
	}
	passManualRules(t, l, id, nil)
	if err := l.CompleteValidation(id, nil, []string{"maintain cadence"}); err != nil {
		t.Fatalf("CompleteValidation: %v", err)
	}

	v, _ := l.Validation(id)
	if !v.CertificationReady {
		t.Errorf("all rules passed with high scores, should be certification ready (score %v)", v.OverallScore)
	}
	if v.Status != models.ValidationPassed {
		t.Errorf("status %q, want passed", v.Status)
	}
	if v.NextValidationDate == "" {
		t.Error("completed validation should schedule the next one")
	}
}

func TestFailedCriticalRuleBlocksCertification(t *testing.T) {
	l := newTestValidationLedger(t)

	id, _ := l.CreateValidation(models.ValidationManual, "validator")
	if err := l.StartValidation(id); err != nil {
		t.Fatal(err)
	}
	if err := l.RunAutomatedChecks(id); err != nil {
		t.Fatal(err)
	}
	// VAL-ART15-002 is a critical manual rule.
	passManualRules(t, l, id, map[string]models.ValidationStatus{
		"VAL-ART15-002": models.ValidationFailed,
	})
	if err := l.CompleteValidation(id, []string{"cybersecurity gap"}, nil); err != nil {
		t.Fatal(err)
	}

	v, _ := l.Validation(id)
	if v.CertificationReady {
		t.Error("failed critical rule must block certification readiness")
	}
	if v.Status != models.ValidationRequiresAttention {
		t.Errorf("status %q, want requires_attention", v.Status)
	}
}

func TestStatusByArticleGroupsResults(t *testing.T) {
	l := newTestValidationLedger(t)

	if got := l.StatusByArticle(); got["status"] != "no_completed_validation" {
		t.Errorf("empty ledger status = %v", got["status"])
	}

	id, _ := l.CreateValidation(models.ValidationAutomated, "validator")
	if err := l.StartValidation(id); err != nil {
		t.Fatal(err)
	}
	if err := l.RunAutomatedChecks(id); err != nil {
		t.Fatal(err)
	}
	passManualRules(t, l, id, nil)
	if err := l.CompleteValidation(id, nil, nil); err != nil {
		t.Fatal(err)
	}

	status := l.StatusByArticle()
	articles, ok := status["article_results"].(map[string][]map[string]any)
	if !ok {
		t.Fatalf("article_results has unexpected type %T", status["article_results"])
	}
	// Articles 9 through 15 each contribute two rules.
	if len(articles) != 7 {
		t.Errorf("expected 7 articles, got %d", len(articles))
	}
	if len(articles["Article 9"]) != 2 {
		t.Errorf("Article 9 has %d results, want 2", len(articles["Article 9"]))
	}
}

func TestValidationSummary(t *testing.T) {
	l := newTestValidationLedger(t)

	id, _ := l.CreateValidation(models.ValidationAutomated, "validator")
	summary := l.Summary()
	if summary["total_validations"] != 1 {
		t.Errorf("total_validations = %v, want 1", summary["total_validations"])
	}
	latest, ok := summary["latest_validation"].(map[string]any)
	if !ok || latest["id"] != id {
		t.Errorf("latest_validation = %v", summary["latest_validation"])
	}
}
