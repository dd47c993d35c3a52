// internal/match/match.go
//
// Pure word-by-word evaluation of a lyric attempt.
// Responsibilities:
//   - Compare an ordered attempt-word list against the expected hidden words.
//   - Produce per-word verdicts, an aggregate verdict, and a 0–100 score.
//
// Shape handling is permissive: the UI pre-sizes the attempt array to the
// expected length, but if the two lists differ anyway, missing attempt
// entries count as empty (always wrong) and surplus entries are ignored.
// No partial credit within a word: a word is right or it is wrong under
// lyrics.Normalize equality.

package match

import "github.com/mgallois/lyricparty/internal/lyrics"

// WordResult is the verdict for a single expected word.
type WordResult struct {
	Word    string `json:"word"`    // expected word, as written in the lyric
	Attempt string `json:"attempt"` // submitted word, raw and unnormalized
	Correct bool   `json:"correct"`
}

// Result is the outcome of evaluating one attempt.
type Result struct {
	Correct  bool         `json:"correct"` // true iff every word is correct
	Expected []string     `json:"expectedWords"`
	Words    []WordResult `json:"wordResults"`
	Score    int          `json:"score"` // round(100 * correct / total)
}

// Evaluate scores attempt against expected.
// A zero-length expected list never occurs for a valid song (the catalog
// rejects songs without hidden words); it yields Score=0, Correct=false.
func Evaluate(expected, attempt []string) Result {
	res := Result{
		Expected: expected,
		Words:    make([]WordResult, len(expected)),
	}
	if len(expected) == 0 {
		return res
	}

	correct := 0
	for i, want := range expected {
		got := ""
		if i < len(attempt) {
			got = attempt[i]
		}
		ok := lyrics.Normalize(got) == lyrics.Normalize(want)
		if ok {
			correct++
		}
		res.Words[i] = WordResult{Word: want, Attempt: got, Correct: ok}
	}

	res.Correct = correct == len(expected)
	// Round half up to the nearest integer percentage.
	res.Score = (100*correct + len(expected)/2) / len(expected)
	return res
}
