package match

import "testing"

func TestEvaluateExactMatch(t *testing.T) {
	expected := []string{"dreamer", "one"}
	res := Evaluate(expected, []string{"dreamer", "one"})

	if !res.Correct {
		t.Error("expected aggregate correct")
	}
	if res.Score != 100 {
		t.Errorf("score = %d, want 100", res.Score)
	}
	for i, wr := range res.Words {
		if !wr.Correct {
			t.Errorf("word %d (%q) marked incorrect", i, wr.Word)
		}
	}
}

func TestEvaluateAllWrong(t *testing.T) {
	res := Evaluate([]string{"dreamer", "one"}, []string{"nope", "two"})
	if res.Correct {
		t.Error("aggregate correct for all-wrong attempt")
	}
	if res.Score != 0 {
		t.Errorf("score = %d, want 0", res.Score)
	}
}

func TestEvaluateCaseAndAccentInsensitive(t *testing.T) {
	res := Evaluate([]string{"Été", "Paris"}, []string{"ete", "PARIS"})
	if !res.Correct || res.Score != 100 {
		t.Errorf("normalized match failed: correct=%v score=%d", res.Correct, res.Score)
	}
}

func TestEvaluatePartial(t *testing.T) {
	res := Evaluate([]string{"a", "b", "c"}, []string{"a", "b", "x"})
	if res.Correct {
		t.Error("aggregate correct with one wrong word")
	}
	if res.Score != 67 { // round(200/3)
		t.Errorf("score = %d, want 67", res.Score)
	}
	if !res.Words[0].Correct || !res.Words[1].Correct || res.Words[2].Correct {
		t.Errorf("per-word verdicts wrong: %+v", res.Words)
	}
}

func TestEvaluatePermissiveShape(t *testing.T) {
	// Short attempts: missing entries count as empty and wrong.
	res := Evaluate([]string{"a", "b"}, []string{"a"})
	if res.Correct {
		t.Error("short attempt marked fully correct")
	}
	if res.Words[1].Attempt != "" || res.Words[1].Correct {
		t.Errorf("missing entry verdict: %+v", res.Words[1])
	}
	if res.Score != 50 {
		t.Errorf("score = %d, want 50", res.Score)
	}

	// Long attempts: surplus entries are ignored.
	res = Evaluate([]string{"a"}, []string{"a", "extra", "words"})
	if !res.Correct || res.Score != 100 {
		t.Errorf("surplus entries changed the verdict: correct=%v score=%d", res.Correct, res.Score)
	}
	if len(res.Words) != 1 {
		t.Errorf("len(words) = %d, want 1", len(res.Words))
	}
}

func TestEvaluateEmptyAttemptWord(t *testing.T) {
	res := Evaluate([]string{"dreamer"}, []string{""})
	if res.Correct || res.Words[0].Correct {
		t.Error("empty attempt word marked correct")
	}
}

func TestEvaluateKeepsRawAttempt(t *testing.T) {
	res := Evaluate([]string{"été"}, []string{" ETE "})
	if res.Words[0].Attempt != " ETE " {
		t.Errorf("attempt = %q, want the raw submission", res.Words[0].Attempt)
	}
	if !res.Words[0].Correct {
		t.Error("trimmed+folded attempt marked incorrect")
	}
}

func TestEvaluateNoExpectedWords(t *testing.T) {
	// Invalid song state; never reaches the matcher via the engine, but the
	// function itself must stay deterministic.
	res := Evaluate(nil, []string{"a"})
	if res.Correct || res.Score != 0 || len(res.Words) != 0 {
		t.Errorf("unexpected result for empty expectation: %+v", res)
	}
}
