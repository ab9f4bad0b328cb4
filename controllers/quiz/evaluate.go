package quizController

// AnswerSheet maps a question ID to the selected option index in the
// question's canonical (stored) option order. Display shuffling never
// changes these identities, so scoring is shuffle-invariant.
type AnswerSheet map[uint]int

// MissingAnswers returns the 1-based display positions of unanswered
// questions. Completeness is checked against the stored question set, not
// the client-supplied display order, so omitting questions from the order
// cannot shrink the check; the order is only used to report the position
// the user saw. Questions absent from the order fall back to their
// canonical position.
func MissingAnswers(questionIDs, displayOrder []uint, answers AnswerSheet) []int {
	displayPos := make(map[uint]int, len(displayOrder))
	for i, questionID := range displayOrder {
		displayPos[questionID] = i + 1
	}

	var missing []int
	for i, questionID := range questionIDs {
		if _, answered := answers[questionID]; answered {
			continue
		}
		if pos, shown := displayPos[questionID]; shown {
			missing = append(missing, pos)
		} else {
			missing = append(missing, i+1)
		}
	}
	return missing
}

// ScoreAnswers scores an answer sheet against the correct canonical option
// index per question. Unanswered questions count as incorrect.
func ScoreAnswers(correctByQuestion map[uint]int, answers AnswerSheet) (scorePercent, correctCount int) {
	total := len(correctByQuestion)
	if total == 0 {
		return 0, 0
	}

	for questionID, correct := range correctByQuestion {
		if selected, answered := answers[questionID]; answered && selected == correct {
			correctCount++
		}
	}

	scorePercent = (correctCount*100 + total/2) / total
	return scorePercent, correctCount
}
