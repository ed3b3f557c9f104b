package domain

import "testing"

func TestCategoryToIntent_CoversEveryDictionaryCategory(t *testing.T) {
	for category := range Dictionary {
		if _, ok := CategoryToIntent[category]; !ok {
			t.Errorf("category %q has no entry in CategoryToIntent", category)
		}
	}
}

func TestSynonyms_PreexistingDiseasesIncludesHyphenatedForm(t *testing.T) {
	forms, ok := Synonyms["preexisting diseases"]
	if !ok {
		t.Fatal("expected preexisting diseases synonym entry")
	}
	found := false
	for _, f := range forms {
		if f == "pre-existing disease" {
			found = true
		}
	}
	if !found {
		t.Error("expected 'pre-existing disease' among preexisting diseases surface forms")
	}
}

func TestGeneralLegalTerms_NonEmpty(t *testing.T) {
	if len(GeneralLegalTerms) == 0 {
		t.Error("expected a non-empty general legal term list")
	}
}

func TestRelevantSingleWords_ContainsCoreDomainTokens(t *testing.T) {
	for _, w := range []string{"exclusion", "coverage", "claim", "deductible"} {
		if !RelevantSingleWords[w] {
			t.Errorf("expected %q to be a relevant single word", w)
		}
	}
}

func TestSectionTitleIntents_WaitingPeriodMapsToTemporal(t *testing.T) {
	if intent, ok := SectionTitleIntents["waiting period"]; !ok {
		t.Fatal("expected a waiting period section-title mapping")
	} else if intent != CategoryToIntent[CategoryWaitingPeriods] {
		t.Errorf("waiting period section title intent = %v, want %v", intent, CategoryToIntent[CategoryWaitingPeriods])
	}
}
