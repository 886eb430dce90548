// Package scoring computes leaderboards from the recorded answer log.
//
// Every participant with at least one recorded answer gets one base point,
// plus one point per answer that matches the correct choice of a known
// question. Answers for unknown questions are ignored. Duplicate answers for
// the same question are all counted.
package scoring

import (
	"sort"

	"quiz-game-app/internal/domain"
)

// BasePoint is awarded to every participant with at least one answer.
const BasePoint = 1

// Score builds the score table from all answers.
func Score(answers []domain.Answer, questions []domain.Question) domain.ScoreTable {
	byParticipant := make(map[string][]domain.Answer)
	for _, a := range answers {
		byParticipant[a.Participant] = append(byParticipant[a.Participant], a)
	}

	correct := make(map[domain.QuestionID]int, len(questions))
	for _, q := range questions {
		correct[q.ID] = q.CorrectChoice
	}

	scores := make(domain.ScoreTable, len(byParticipant))
	for name, given := range byParticipant {
		points := BasePoint
		for _, a := range given {
			if want, ok := correct[a.QuestionID]; ok && a.Choice == want {
				points++
			}
		}
		scores[name] = points
	}
	return scores
}

// Winners returns every participant holding the top score, sorted by name.
func Winners(scores domain.ScoreTable) []string {
	if len(scores) == 0 {
		return []string{}
	}
	top := TopScore(scores)
	winners := make([]string, 0, 1)
	for name, s := range scores {
		if s == top {
			winners = append(winners, name)
		}
	}
	sort.Strings(winners)
	return winners
}

// Rank orders the table by score desc, then name. Ties share a rank.
func Rank(scores domain.ScoreTable) []domain.ScoreEntry {
	entries := make([]domain.ScoreEntry, 0, len(scores))
	for name, s := range scores {
		entries = append(entries, domain.ScoreEntry{Participant: name, Score: s})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Participant < entries[j].Participant
	})
	for i := range entries {
		if i > 0 && entries[i].Score == entries[i-1].Score {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}
	return entries
}

// Summarize computes count, mean, max and min. Zero value for an empty table.
func Summarize(scores domain.ScoreTable) domain.ScoreStats {
	if len(scores) == 0 {
		return domain.ScoreStats{}
	}
	stats := domain.ScoreStats{Participants: len(scores)}
	first := true
	total := 0
	for _, s := range scores {
		total += s
		if first || s > stats.Max {
			stats.Max = s
		}
		if first || s < stats.Min {
			stats.Min = s
		}
		first = false
	}
	stats.Mean = float64(total) / float64(len(scores))
	return stats
}

// Participants lists the distinct participant names in the answer log.
func Participants(answers []domain.Answer) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, a := range answers {
		if _, ok := seen[a.Participant]; ok {
			continue
		}
		seen[a.Participant] = struct{}{}
		names = append(names, a.Participant)
	}
	sort.Strings(names)
	return names
}

// Report bundles the ranking and statistics for a table.
func Report(scores domain.ScoreTable) domain.ScoreReport {
	return domain.ScoreReport{
		Entries: Rank(scores),
		Stats:   Summarize(scores),
	}
}

// TopScore returns the highest score, or 0 for an empty table.
func TopScore(scores domain.ScoreTable) int {
	top := 0
	first := true
	for _, s := range scores {
		if first || s > top {
			top = s
			first = false
		}
	}
	return top
}
