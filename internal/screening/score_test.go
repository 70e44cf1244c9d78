package screening

import "testing"

func TestScoreComponents(t *testing.T) {
	b := Score(Signals{
		Length:            1000,
		ResumeKeywords:    4,
		NonResumeKeywords: 1,
		HasContact:        true,
		HasEducation:      true,
		HasDates:          true,
		StructuredLines:   3,
	})

	want := Breakdown{Length: 2, Keywords: 12, Sections: 15, Structure: 11, Penalty: 5, Total: 35}
	if b != want {
		t.Fatalf("expected %+v, got %+v", want, b)
	}
}

func TestScoreIsBounded(t *testing.T) {
	maxed := Score(Signals{
		Length:          1_000_000,
		ResumeKeywords:  10_000,
		HasContact:      true,
		HasExperience:   true,
		HasEducation:    true,
		HasSkills:       true,
		HasDates:        true,
		HasBullets:      true,
		StructuredLines: 10_000,
	})
	if maxed.Total > 100 || maxed.Total != 90 {
		t.Fatalf("expected ceiling total of 90, got %v", maxed.Total)
	}

	penalised := Score(Signals{Length: 10, NonResumeKeywords: 10_000})
	if penalised.Total != 0 {
		t.Fatalf("expected score to clamp at 0, got %v", penalised.Total)
	}
}

func TestScoreMonotonicInKeywords(t *testing.T) {
	base := Signals{Length: 2000, HasContact: true, HasDates: true, StructuredLines: 2, NonResumeKeywords: 2}

	previous := -1.0
	for count := 0; count <= 15; count++ {
		s := base
		s.ResumeKeywords = count
		total := Score(s).Total
		if total < previous {
			t.Fatalf("score decreased from %v to %v at %d resume keywords", previous, total, count)
		}
		previous = total
	}

	previous = 101.0
	for count := 0; count <= 10; count++ {
		s := base
		s.ResumeKeywords = 6
		s.NonResumeKeywords = count
		total := Score(s).Total
		if total > previous {
			t.Fatalf("score increased from %v to %v at %d non-resume keywords", previous, total, count)
		}
		previous = total
	}
}

func TestScoreOfRealTexts(t *testing.T) {
	if got := Score(Collect(sampleResume)).Total; got < 60 {
		t.Fatalf("expected sample resume to score at least 60, got %v", got)
	}
	if got := Score(Collect(sampleInvoice())).Total; got >= 40 {
		t.Fatalf("expected invoice to score below 40, got %v", got)
	}
}
